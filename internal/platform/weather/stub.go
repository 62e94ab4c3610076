package weather

import (
	"context"
	"errors"
)

type StubService struct {
	CurrentFunc func(ctx context.Context, city string) (Snapshot, error)
}

var _ Service = (*StubService)(nil)

func (s *StubService) Current(ctx context.Context, city string) (Snapshot, error) {
	if s.CurrentFunc == nil {
		return Snapshot{}, errors.New("Current not implemented in stub")
	}
	return s.CurrentFunc(ctx, city)
}
