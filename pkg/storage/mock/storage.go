package mock

import (
	"context"
	"time"

	"github.com/fadedpez/handtracker/pkg/storage"
	"github.com/stretchr/testify/mock"
)

// Storage is a mock implementation of storage.Storage
type Storage struct {
	mock.Mock
}

func New() *Storage {
	return &Storage{}
}

func (s *Storage) Quarantine(ctx context.Context, rejected *storage.Rejected) error {
	args := s.Called(ctx, rejected)
	return args.Error(0)
}

func (s *Storage) Load(ctx context.Context, id string) (*storage.Rejected, error) {
	args := s.Called(ctx, id)
	if rejected, ok := args.Get(0).(*storage.Rejected); ok {
		return rejected, args.Error(1)
	}
	return nil, args.Error(1)
}

func (s *Storage) List(ctx context.Context) ([]*storage.Rejected, error) {
	args := s.Called(ctx)
	if rejected, ok := args.Get(0).([]*storage.Rejected); ok {
		return rejected, args.Error(1)
	}
	return nil, args.Error(1)
}

func (s *Storage) Delete(ctx context.Context, id string) error {
	args := s.Called(ctx, id)
	return args.Error(0)
}

func (s *Storage) CleanupOld(ctx context.Context, maxAge time.Duration) (int, error) {
	args := s.Called(ctx, maxAge)
	return args.Int(0), args.Error(1)
}
