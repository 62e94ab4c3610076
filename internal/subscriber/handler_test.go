package subscriber_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/weatherlyhq/weatherly/internal/pkg/message"
	"github.com/weatherlyhq/weatherly/internal/pkg/web"
	"github.com/weatherlyhq/weatherly/internal/subscriber"
)

const testEmail = "abc@xyz.com"

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(subscriber.NewContextWithEmail(req.Context(), testEmail))
}

func TestHandler_Me(t *testing.T) {
	svc := &subscriber.StubService{
		FindByEmailFunc: func(_ context.Context, email string) (subscriber.Subscriber, error) {
			if email != testEmail {
				t.Errorf("email = %q, want %q", email, testEmail)
			}
			return subscriber.Subscriber{
				Email:         testEmail,
				City:          "Kolkata",
				PreferredTime: "08:00",
				Timezone:      "Asia/Kolkata",
				Frequency:     "daily",
				Subscribed:    true,
				CreatedAt:     time.Now(),
				UpdatedAt:     time.Now(),
			}, nil
		},
	}
	handler := subscriber.NewHandler(svc)

	rec := httptest.NewRecorder()
	handler.Me(rec, authedRequest(http.MethodGet, "/subscribers/me"))

	if rec.Code != http.StatusOK {
		t.Fatalf(message.FmtErrStatusCode, rec.Code, http.StatusOK)
	}

	var res web.OKResponse[struct {
		Email         string `json:"email"`
		City          string `json:"city"`
		PreferredTime string `json:"preferred_time"`
		Subscribed    bool   `json:"subscribed"`
	}]
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Data.Email != testEmail {
		t.Errorf("res.Data.Email = %q, want %q", res.Data.Email, testEmail)
	}
	if res.Data.City != "Kolkata" {
		t.Errorf("res.Data.City = %q, want %q", res.Data.City, "Kolkata")
	}
	if !res.Data.Subscribed {
		t.Error("res.Data.Subscribed = false, want true")
	}
}

func TestHandler_Me_Unauthenticated(t *testing.T) {
	handler := subscriber.NewHandler(&subscriber.StubService{})

	rec := httptest.NewRecorder()
	handler.Me(rec, httptest.NewRequest(http.MethodGet, "/subscribers/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf(message.FmtErrStatusCode, rec.Code, http.StatusUnauthorized)
	}
}

func TestHandler_Me_NotFound(t *testing.T) {
	svc := &subscriber.StubService{
		FindByEmailFunc: func(_ context.Context, _ string) (subscriber.Subscriber, error) {
			return subscriber.Subscriber{}, subscriber.ErrNotFound
		},
	}
	handler := subscriber.NewHandler(svc)

	rec := httptest.NewRecorder()
	handler.Me(rec, authedRequest(http.MethodGet, "/subscribers/me"))

	if rec.Code != http.StatusNotFound {
		t.Errorf(message.FmtErrStatusCode, rec.Code, http.StatusNotFound)
	}
}

func TestHandler_UpdatePreferences(t *testing.T) {
	var gotParams subscriber.UpdatePreferencesParams
	svc := &subscriber.StubService{
		UpdatePreferencesFunc: func(_ context.Context, email string, params subscriber.UpdatePreferencesParams) error {
			if email != testEmail {
				t.Errorf("email = %q, want %q", email, testEmail)
			}
			gotParams = params
			return nil
		},
	}
	handler := subscriber.NewHandler(svc)

	payload := subscriber.UpdatePreferencesRequest{
		City:          "London",
		PreferredTime: "07:30",
		Timezone:      "Europe/London",
		Frequency:     "daily",
	}
	req := authedRequest(http.MethodPatch, "/subscribers/me")
	req = req.WithContext(web.NewContextWithParams(req.Context(), payload))
	rec := httptest.NewRecorder()

	handler.UpdatePreferences(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf(message.FmtErrStatusCode, rec.Code, http.StatusOK)
	}
	want := subscriber.UpdatePreferencesParams{
		City:          "London",
		PreferredTime: "07:30",
		Timezone:      "Europe/London",
		Frequency:     "daily",
	}
	if gotParams != want {
		t.Errorf("params = %+v, want %+v", gotParams, want)
	}
}

func TestHandler_UpdatePreferences_NotFound(t *testing.T) {
	svc := &subscriber.StubService{
		UpdatePreferencesFunc: func(_ context.Context, _ string, _ subscriber.UpdatePreferencesParams) error {
			return subscriber.ErrNotFound
		},
	}
	handler := subscriber.NewHandler(svc)

	req := authedRequest(http.MethodPatch, "/subscribers/me")
	req = req.WithContext(web.NewContextWithParams(req.Context(), subscriber.UpdatePreferencesRequest{
		City:          "London",
		PreferredTime: "07:30",
	}))
	rec := httptest.NewRecorder()

	handler.UpdatePreferences(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf(message.FmtErrStatusCode, rec.Code, http.StatusNotFound)
	}
}

func TestHandler_Resubscribe(t *testing.T) {
	var gotSubscribed *bool
	svc := &subscriber.StubService{
		SetSubscribedFunc: func(_ context.Context, _ string, subscribed bool) error {
			gotSubscribed = &subscribed
			return nil
		},
	}
	handler := subscriber.NewHandler(svc)

	rec := httptest.NewRecorder()
	handler.Resubscribe(rec, authedRequest(http.MethodPost, "/subscribers/me/resubscribe"))

	if rec.Code != http.StatusOK {
		t.Fatalf(message.FmtErrStatusCode, rec.Code, http.StatusOK)
	}
	if gotSubscribed == nil || !*gotSubscribed {
		t.Errorf("SetSubscribed called with %v, want true", gotSubscribed)
	}

	var res web.OKResponse[struct{}]
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Message != message.Resubscribed {
		t.Errorf("res.Message = %q, want %q", res.Message, message.Resubscribed)
	}
}

func TestHandler_Unsubscribe(t *testing.T) {
	var gotSubscribed *bool
	svc := &subscriber.StubService{
		SetSubscribedFunc: func(_ context.Context, _ string, subscribed bool) error {
			gotSubscribed = &subscribed
			return nil
		},
	}
	handler := subscriber.NewHandler(svc)

	rec := httptest.NewRecorder()
	handler.Unsubscribe(rec, authedRequest(http.MethodPost, "/subscribers/me/unsubscribe"))

	if rec.Code != http.StatusOK {
		t.Fatalf(message.FmtErrStatusCode, rec.Code, http.StatusOK)
	}
	if gotSubscribed == nil || *gotSubscribed {
		t.Errorf("SetSubscribed called with %v, want false", gotSubscribed)
	}
}

func TestHandler_Resubscribe_NotFound(t *testing.T) {
	svc := &subscriber.StubService{
		SetSubscribedFunc: func(_ context.Context, _ string, _ bool) error {
			return subscriber.ErrNotFound
		},
	}
	handler := subscriber.NewHandler(svc)

	rec := httptest.NewRecorder()
	handler.Resubscribe(rec, authedRequest(http.MethodPost, "/subscribers/me/resubscribe"))

	if rec.Code != http.StatusNotFound {
		t.Errorf(message.FmtErrStatusCode, rec.Code, http.StatusNotFound)
	}
}
