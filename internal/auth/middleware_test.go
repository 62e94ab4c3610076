package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/weatherlyhq/weatherly/internal/auth"
	"github.com/weatherlyhq/weatherly/internal/pkg/message"
	"github.com/weatherlyhq/weatherly/internal/platform/jwt"
	"github.com/weatherlyhq/weatherly/internal/subscriber"
)

func TestRequireToken(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		verifyErr  error
		wantStatus int
	}{
		{"valid token", "Bearer good-token", nil, http.StatusOK},
		{"missing header", "", nil, http.StatusUnauthorized},
		{"not a bearer token", "Basic abc123", nil, http.StatusUnauthorized},
		{"empty token", "Bearer ", nil, http.StatusUnauthorized},
		{"rejected token", "Bearer bad-token", errors.New("token is expired"), http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			signer := &jwt.StubSigner{
				VerifyFunc: func(_ string) (string, error) {
					if tc.verifyErr != nil {
						return "", tc.verifyErr
					}
					return "abc@xyz.com", nil
				},
			}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				email, err := subscriber.EmailFromContext(r.Context())
				if err != nil {
					t.Errorf("EmailFromContext() error = %v", err)
				}
				if email != "abc@xyz.com" {
					t.Errorf("email = %q, want %q", email, "abc@xyz.com")
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/subscribers/me", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()

			auth.RequireToken(signer)(next).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tc.wantStatus)
			}
		})
	}
}
