package subscriber

import (
	"context"
	"errors"
)

type ctxKey int

const emailCtxKey ctxKey = iota

var ErrNoEmailInContext = errors.New("no subscriber email in context")

//nolint:ireturn //This function needs to return a context.
func NewContextWithEmail(baseCtx context.Context, email string) context.Context {
	return context.WithValue(baseCtx, emailCtxKey, email)
}

func EmailFromContext(ctx context.Context) (string, error) {
	email, ok := ctx.Value(emailCtxKey).(string)
	if !ok || email == "" {
		return "", ErrNoEmailInContext
	}
	return email, nil
}
