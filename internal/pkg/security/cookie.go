package security

import (
	"net/http"
	"time"
)

// HardenedCookie builds an http-only, secure, strict-same-site cookie.
func HardenedCookie(name, val string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    val,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}
