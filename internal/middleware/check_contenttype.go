package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/weatherlyhq/weatherly/internal/pkg/message"
	"github.com/weatherlyhq/weatherly/internal/pkg/web"
)

var errUnsupportedContentType = errors.New("unsupported content type")

// CheckContentType rejects non-JSON bodies before any decoding happens.
func CheckContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			contentType := r.Header.Get(web.HeaderContentType)
			if !strings.HasPrefix(contentType, web.MimeJSON) {
				web.Fail(w, http.StatusUnsupportedMediaType, errUnsupportedContentType, message.InvalidInput, nil)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
