package subscriber

import (
	"context"
	"fmt"
)

// Repository is the persistence contract for subscriber records.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Subscriber, error)
	FindByEmail(ctx context.Context, email string) (Subscriber, error)
	ListSubscribed(ctx context.Context) ([]Subscriber, error)
	UpdatePreferences(ctx context.Context, email string, params UpdatePreferencesParams) error
	SetSubscribed(ctx context.Context, email string, subscribed bool) error
	SetVerificationSent(ctx context.Context, email string) error
}

// Service is the subscriber directory consumed by the auth handlers, the
// profile handlers and the notification dispatcher.
type Service interface {
	Create(ctx context.Context, params CreateParams) (Subscriber, error)
	FindByEmail(ctx context.Context, email string) (Subscriber, error)
	ListSubscribed(ctx context.Context) ([]Subscriber, error)
	UpdatePreferences(ctx context.Context, email string, params UpdatePreferencesParams) error
	SetSubscribed(ctx context.Context, email string, subscribed bool) error
	SetVerificationSent(ctx context.Context, email string) error
}

type service struct {
	repo Repository
}

var _ Service = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, params CreateParams) (Subscriber, error) {
	sub, err := s.repo.Create(ctx, params)
	if err != nil {
		return Subscriber{}, fmt.Errorf("create subscriber %s: %w", params.Email, err)
	}
	return sub, nil
}

func (s *service) FindByEmail(ctx context.Context, email string) (Subscriber, error) {
	sub, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return Subscriber{}, fmt.Errorf("find subscriber %s: %w", email, err)
	}
	return sub, nil
}

func (s *service) ListSubscribed(ctx context.Context) ([]Subscriber, error) {
	subs, err := s.repo.ListSubscribed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscribed: %w", err)
	}
	return subs, nil
}

func (s *service) UpdatePreferences(ctx context.Context, email string, params UpdatePreferencesParams) error {
	if err := s.repo.UpdatePreferences(ctx, email, params); err != nil {
		return fmt.Errorf("update preferences for %s: %w", email, err)
	}
	return nil
}

func (s *service) SetSubscribed(ctx context.Context, email string, subscribed bool) error {
	if err := s.repo.SetSubscribed(ctx, email, subscribed); err != nil {
		return fmt.Errorf("set subscribed=%t for %s: %w", subscribed, email, err)
	}
	return nil
}

func (s *service) SetVerificationSent(ctx context.Context, email string) error {
	if err := s.repo.SetVerificationSent(ctx, email); err != nil {
		return fmt.Errorf("set verification sent for %s: %w", email, err)
	}
	return nil
}
