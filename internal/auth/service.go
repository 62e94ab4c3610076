package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/weatherlyhq/weatherly/internal/config"
	"github.com/weatherlyhq/weatherly/internal/platform/hash"
	"github.com/weatherlyhq/weatherly/internal/platform/identity"
	"github.com/weatherlyhq/weatherly/internal/platform/jwt"
	"github.com/weatherlyhq/weatherly/internal/subscriber"
)

var (
	ErrSubscriberExists   = errors.New("auth service: subscriber already exists")
	ErrInvalidCredentials = errors.New("auth service: invalid credentials")
)

const verifyTimeout = 10 * time.Second

type Providers struct {
	Hasher   hash.Hasher
	Signer   jwt.Signer
	Identity identity.Service
}

type Service struct {
	subs     subscriber.Service
	hasher   hash.Hasher
	signer   jwt.Signer
	identity identity.Service
	cfg      *config.Config
}

var _ AuthService = (*Service)(nil)

func NewService(subs subscriber.Service, providers *Providers, cfg *config.Config) *Service {
	return &Service{
		subs:     subs,
		hasher:   providers.Hasher,
		signer:   providers.Signer,
		identity: providers.Identity,
		cfg:      cfg,
	}
}

type RegisterParams struct {
	Email         string
	Password      string
	City          string
	PreferredTime string
	Timezone      string
	Frequency     string
}

func (p *RegisterParams) LogValue() slog.Value {
	return slog.AnyValue(nil)
}

type LoginParams struct {
	Email    string
	Password string
}

func (p *LoginParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", "*"),
		slog.String("password", "*"),
	)
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (subscriber.Subscriber, error) {
	hashed, err := s.hasher.Hash(params.Password)
	if err != nil {
		return subscriber.Subscriber{}, fmt.Errorf("hasher hash: %w", err)
	}

	sub, err := s.subs.Create(ctx, subscriber.CreateParams{
		Email:         params.Email,
		PasswordHash:  hashed,
		City:          params.City,
		PreferredTime: params.PreferredTime,
		Timezone:      params.Timezone,
		Frequency:     params.Frequency,
	})
	if err != nil {
		if errors.Is(err, subscriber.ErrExists) {
			return subscriber.Subscriber{}, ErrSubscriberExists
		}
		return subscriber.Subscriber{}, fmt.Errorf("create subscriber %s: %w", params.Email, err)
	}

	// Best effort: signup succeeds even when the challenge cannot be sent;
	// the sweep will retry verification for unverified addresses.
	go s.triggerVerification(sub.Email)

	return sub, nil
}

func (s *Service) triggerVerification(email string) {
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	if err := s.identity.Verify(ctx, email); err != nil {
		slog.Error("failed to trigger verification", "reason", err)
	}
}

func (s *Service) Login(ctx context.Context, params LoginParams) (accessToken, refreshToken string, err error) {
	sub, err := s.subs.FindByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, subscriber.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", fmt.Errorf("find subscriber %q: %w", params.Email, err)
	}

	ok, err := s.hasher.Verify(params.Password, sub.PasswordHash)
	if err != nil {
		return "", "", fmt.Errorf("verify password for %q: %w", sub.Email, err)
	}

	if !ok {
		return "", "", ErrInvalidCredentials
	}

	ttl := s.cfg.JWT.TTL.Duration
	accessToken, err = s.signer.Sign(sub.Email, []string{s.cfg.JWT.Issuer}, ttl)
	if err != nil {
		return "", "", fmt.Errorf("sign access token for %q: %w", sub.Email, err)
	}

	refreshTTL := s.cfg.JWT.RefreshTTL.Duration
	refreshToken, err = s.signer.Sign(sub.Email, []string{s.cfg.JWT.Issuer}, refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token for %q: %w", sub.Email, err)
	}

	return accessToken, refreshToken, nil
}
