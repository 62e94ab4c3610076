package subscriber

import (
	"context"
	"errors"
)

// StubService is a test double with overridable behavior per method.
type StubService struct {
	CreateFunc              func(ctx context.Context, params CreateParams) (Subscriber, error)
	FindByEmailFunc         func(ctx context.Context, email string) (Subscriber, error)
	ListSubscribedFunc      func(ctx context.Context) ([]Subscriber, error)
	UpdatePreferencesFunc   func(ctx context.Context, email string, params UpdatePreferencesParams) error
	SetSubscribedFunc       func(ctx context.Context, email string, subscribed bool) error
	SetVerificationSentFunc func(ctx context.Context, email string) error
}

var _ Service = (*StubService)(nil)

func (s *StubService) Create(ctx context.Context, params CreateParams) (Subscriber, error) {
	if s.CreateFunc == nil {
		return Subscriber{}, errors.New("Create not implemented in stub")
	}
	return s.CreateFunc(ctx, params)
}

func (s *StubService) FindByEmail(ctx context.Context, email string) (Subscriber, error) {
	if s.FindByEmailFunc == nil {
		return Subscriber{}, errors.New("FindByEmail not implemented in stub")
	}
	return s.FindByEmailFunc(ctx, email)
}

func (s *StubService) ListSubscribed(ctx context.Context) ([]Subscriber, error) {
	if s.ListSubscribedFunc == nil {
		return nil, errors.New("ListSubscribed not implemented in stub")
	}
	return s.ListSubscribedFunc(ctx)
}

func (s *StubService) UpdatePreferences(ctx context.Context, email string, params UpdatePreferencesParams) error {
	if s.UpdatePreferencesFunc == nil {
		return errors.New("UpdatePreferences not implemented in stub")
	}
	return s.UpdatePreferencesFunc(ctx, email, params)
}

func (s *StubService) SetSubscribed(ctx context.Context, email string, subscribed bool) error {
	if s.SetSubscribedFunc == nil {
		return errors.New("SetSubscribed not implemented in stub")
	}
	return s.SetSubscribedFunc(ctx, email, subscribed)
}

func (s *StubService) SetVerificationSent(ctx context.Context, email string) error {
	if s.SetVerificationSentFunc == nil {
		return errors.New("SetVerificationSent not implemented in stub")
	}
	return s.SetVerificationSentFunc(ctx, email)
}
