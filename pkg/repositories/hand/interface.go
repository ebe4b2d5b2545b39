package hand

import (
	"context"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_hand

// Repository defines storage operations for projected hands
type Repository interface {
	// SaveHand stores every row of a hand in one transaction.
	// Storing an ID twice fails with DUPLICATE_HAND.
	SaveHand(ctx context.Context, records *Records) error

	// HasHand reports whether a hand ID is already stored
	HasHand(ctx context.Context, id int64) (bool, error)

	// GetHand loads every row of a hand, failing with HAND_NOT_FOUND
	GetHand(ctx context.Context, id int64) (*Records, error)

	// ListHands returns up to limit hand summaries, newest first
	ListHands(ctx context.Context, limit int) ([]*Hand, error)

	// SaveBatch records the outcome of an import run
	SaveBatch(ctx context.Context, batch *Batch) error

	// Close closes any resources used by the repository
	Close() error
}
