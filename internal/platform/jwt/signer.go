package jwt

import "time"

// Signer defines methods for signing and verifying JWT tokens.
type Signer interface {
	Sign(subject string, audience []string, duration time.Duration) (token string, err error)
	Verify(tokenString string) (subject string, err error)
}
