package identity

import (
	"context"
	"errors"
)

type StubService struct {
	StatusFunc func(ctx context.Context, email string) (Status, error)
	VerifyFunc func(ctx context.Context, email string) error
}

var _ Service = (*StubService)(nil)

func (s *StubService) Status(ctx context.Context, email string) (Status, error) {
	if s.StatusFunc == nil {
		return "", errors.New("Status not implemented in stub")
	}
	return s.StatusFunc(ctx, email)
}

func (s *StubService) Verify(ctx context.Context, email string) error {
	if s.VerifyFunc == nil {
		return errors.New("Verify not implemented in stub")
	}
	return s.VerifyFunc(ctx, email)
}
