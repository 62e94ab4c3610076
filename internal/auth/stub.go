package auth

import (
	"context"
	"errors"

	"github.com/weatherlyhq/weatherly/internal/subscriber"
)

type StubService struct {
	RegisterFunc func(ctx context.Context, params RegisterParams) (subscriber.Subscriber, error)
	LoginFunc    func(ctx context.Context, params LoginParams) (accessToken, refreshToken string, err error)
}

var _ AuthService = (*StubService)(nil)

func (s *StubService) Register(ctx context.Context, params RegisterParams) (subscriber.Subscriber, error) {
	if s.RegisterFunc == nil {
		return subscriber.Subscriber{}, errors.New("Register not implemented in stub")
	}
	return s.RegisterFunc(ctx, params)
}

func (s *StubService) Login(ctx context.Context, params LoginParams) (accessToken, refreshToken string, err error) {
	if s.LoginFunc == nil {
		return "", "", errors.New("Login not implemented in stub")
	}
	return s.LoginFunc(ctx, params)
}
