package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/weatherlyhq/weatherly/internal/auth"
	"github.com/weatherlyhq/weatherly/internal/pkg/message"
	"github.com/weatherlyhq/weatherly/internal/pkg/web"
	"github.com/weatherlyhq/weatherly/internal/platform/jwt"
	"github.com/weatherlyhq/weatherly/internal/subscriber"
)

func TestHandler_Register(t *testing.T) {
	svc := &auth.StubService{
		RegisterFunc: func(_ context.Context, params auth.RegisterParams) (subscriber.Subscriber, error) {
			return subscriber.Subscriber{
				Email:         params.Email,
				City:          params.City,
				PreferredTime: params.PreferredTime,
				Subscribed:    true,
				CreatedAt:     time.Now(),
			}, nil
		},
	}
	handler := auth.NewHandler(svc, nil, testConfig())

	payload := auth.RegisterRequest{
		Email:           "abc@xyz.com",
		Password:        "hunter2hunter2",
		PasswordConfirm: "hunter2hunter2",
		City:            "Kolkata",
		PreferredTime:   "08:00",
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
	req = req.WithContext(web.NewContextWithParams(req.Context(), payload))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf(message.FmtErrStatusCode, rec.Code, http.StatusCreated)
	}

	var res web.OKResponse[auth.RegisterResponse]
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Message != message.SignupSuccess {
		t.Errorf("res.Message = %q, want %q", res.Message, message.SignupSuccess)
	}
	if res.Data.Email != "abc@xyz.com" {
		t.Errorf("res.Data.Email = %q, want %q", res.Data.Email, "abc@xyz.com")
	}
}

func TestHandler_Register_Exists(t *testing.T) {
	svc := &auth.StubService{
		RegisterFunc: func(_ context.Context, _ auth.RegisterParams) (subscriber.Subscriber, error) {
			return subscriber.Subscriber{}, auth.ErrSubscriberExists
		},
	}
	handler := auth.NewHandler(svc, nil, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
	req = req.WithContext(web.NewContextWithParams(req.Context(), auth.RegisterRequest{Email: "abc@xyz.com"}))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf(message.FmtErrStatusCode, rec.Code, http.StatusConflict)
	}
}

func TestHandler_Register_MissingParams(t *testing.T) {
	handler := auth.NewHandler(&auth.StubService{}, nil, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf(message.FmtErrStatusCode, rec.Code, http.StatusBadRequest)
	}
}

func TestHandler_Login(t *testing.T) {
	svc := &auth.StubService{
		LoginFunc: func(_ context.Context, _ auth.LoginParams) (string, string, error) {
			return "access-token", "refresh-token", nil
		},
	}
	cfg := testConfig()
	handler := auth.NewHandler(svc, nil, cfg)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req = req.WithContext(web.NewContextWithParams(req.Context(),
		auth.LoginRequest{Email: "abc@xyz.com", Password: "hunter2hunter2"}))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf(message.FmtErrStatusCode, rec.Code, http.StatusOK)
	}

	var res web.OKResponse[auth.LoginResponse]
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Data.AccessToken != "access-token" {
		t.Errorf("res.Data.AccessToken = %q, want %q", res.Data.AccessToken, "access-token")
	}

	cookies := rec.Result().Cookies()
	var refreshCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == cfg.Cookie.Name {
			refreshCookie = c
		}
	}
	if refreshCookie == nil {
		t.Fatalf("no %q cookie in response", cfg.Cookie.Name)
	}
	if refreshCookie.Value != "refresh-token" {
		t.Errorf("refreshCookie.Value = %q, want %q", refreshCookie.Value, "refresh-token")
	}
	if !refreshCookie.HttpOnly {
		t.Error("refresh cookie is not HttpOnly")
	}
}

func TestHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &auth.StubService{
		LoginFunc: func(_ context.Context, _ auth.LoginParams) (string, string, error) {
			return "", "", auth.ErrInvalidCredentials
		},
	}
	handler := auth.NewHandler(svc, nil, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req = req.WithContext(web.NewContextWithParams(req.Context(),
		auth.LoginRequest{Email: "abc@xyz.com", Password: "wrong"}))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf(message.FmtErrStatusCode, rec.Code, http.StatusUnauthorized)
	}
}

func TestHandler_Refresh(t *testing.T) {
	cfg := testConfig()
	signer := &jwt.StubSigner{
		VerifyFunc: func(_ string) (string, error) { return "abc@xyz.com", nil },
		SignFunc: func(subject string, _ []string, _ time.Duration) (string, error) {
			if subject != "abc@xyz.com" {
				t.Errorf("subject = %q, want %q", subject, "abc@xyz.com")
			}
			return "new-access-token", nil
		},
	}
	handler := auth.NewHandler(&auth.StubService{}, signer, cfg)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Cookie.Name, Value: "refresh-token"})
	rec := httptest.NewRecorder()

	handler.Refresh(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf(message.FmtErrStatusCode, rec.Code, http.StatusOK)
	}

	var res web.OKResponse[auth.LoginResponse]
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Data.AccessToken != "new-access-token" {
		t.Errorf("res.Data.AccessToken = %q, want %q", res.Data.AccessToken, "new-access-token")
	}
}

func TestHandler_Refresh_InvalidToken(t *testing.T) {
	cfg := testConfig()
	signer := &jwt.StubSigner{
		VerifyFunc: func(_ string) (string, error) { return "", errors.New("token is expired") },
	}
	handler := auth.NewHandler(&auth.StubService{}, signer, cfg)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Cookie.Name, Value: "stale"})
	rec := httptest.NewRecorder()

	handler.Refresh(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf(message.FmtErrStatusCode, rec.Code, http.StatusUnauthorized)
	}
}

func TestHandler_Logout(t *testing.T) {
	cfg := testConfig()
	handler := auth.NewHandler(&auth.StubService{}, nil, cfg)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Cookie.Name, Value: "refresh-token"})
	rec := httptest.NewRecorder()

	handler.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf(message.FmtErrStatusCode, rec.Code, http.StatusOK)
	}

	for _, c := range rec.Result().Cookies() {
		if c.Name == cfg.Cookie.Name && c.MaxAge >= 0 {
			t.Errorf("cookie %q not expired: MaxAge = %d", c.Name, c.MaxAge)
		}
	}
}
