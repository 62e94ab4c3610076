package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/weatherlyhq/weatherly/internal/pkg/message"
	"github.com/weatherlyhq/weatherly/internal/pkg/web"
	"github.com/weatherlyhq/weatherly/internal/platform/jwt"
	"github.com/weatherlyhq/weatherly/internal/subscriber"
)

var ErrInvalidToken = errors.New("invalid token")

const bearerPrefix = "Bearer "

// RequireToken guards a route with a bearer access token and puts the
// authenticated subscriber email into the request context.
func RequireToken(signer jwt.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, bearerPrefix)
			if !ok || token == "" {
				web.RespondUnauthorized(w, ErrInvalidToken, message.InvalidUser, nil)
				return
			}

			email, err := signer.Verify(token)
			if err != nil {
				web.RespondUnauthorized(w, ErrInvalidToken, message.InvalidUser, nil)
				return
			}

			ctx := subscriber.NewContextWithEmail(r.Context(), email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
