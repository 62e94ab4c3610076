package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/weatherlyhq/weatherly/internal/middleware"
	"github.com/weatherlyhq/weatherly/internal/pkg/message"
	"github.com/weatherlyhq/weatherly/internal/pkg/web"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

const testBodySize = 1 << 20

func TestDecodePayload(t *testing.T) {
	var got loginPayload
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decoded, err := web.ParamsFromContext[loginPayload](r.Context())
		if err != nil {
			t.Errorf("ParamsFromContext() error = %v", err)
		}
		got = decoded
		w.WriteHeader(http.StatusOK)
	})

	body := `{"email": "abc@xyz.com", "password": "hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	middleware.DecodePayload[loginPayload](testBodySize)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf(message.FmtErrStatusCode, rec.Code, http.StatusOK)
	}
	want := loginPayload{Email: "abc@xyz.com", Password: "hunter2hunter2"}
	if got != want {
		t.Errorf("decoded payload = %+v, want %+v", got, want)
	}
}

func TestDecodePayload_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		bodySize   int64
		wantStatus int
	}{
		{"malformed json", `{"email":`, testBodySize, http.StatusBadRequest},
		{"unknown field", `{"email": "abc@xyz.com", "admin": true}`, testBodySize, http.StatusUnprocessableEntity},
		{"trailing data", `{"email": "abc@xyz.com"}{"email": "def@xyz.com"}`, testBodySize, http.StatusBadRequest},
		{"oversized body", `{"email": "abc@xyz.com", "password": "hunter2hunter2"}`, 10, http.StatusRequestEntityTooLarge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
				t.Error("next handler called for a rejected payload")
			})

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			middleware.DecodePayload[loginPayload](tc.bodySize)(next).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tc.wantStatus)
			}
		})
	}
}
