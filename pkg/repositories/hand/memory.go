package hand

import (
	"context"
	"sort"
	"sync"

	"github.com/fadedpez/handtracker/internal/types"
)

// MemoryRepository implements Repository interface with in-memory storage
type MemoryRepository struct {
	mu      sync.RWMutex
	hands   map[int64]*Records
	batches []*Batch
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		hands: make(map[int64]*Records),
	}
}

// SaveHand stores a copy of the records
func (r *MemoryRepository) SaveHand(ctx context.Context, records *Records) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := records.Hand.ID
	if _, exists := r.hands[id]; exists {
		return types.NewHandError(types.ErrDuplicateHand, "hand already stored").ForHand(id)
	}
	r.hands[id] = cloneRecords(records)
	return nil
}

// HasHand reports whether a hand is stored
func (r *MemoryRepository) HasHand(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.hands[id]
	return exists, nil
}

// GetHand returns a copy of the stored records
func (r *MemoryRepository) GetHand(ctx context.Context, id int64) (*Records, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records, exists := r.hands[id]
	if !exists {
		return nil, types.NewHandError(types.ErrHandNotFound, "hand not found").ForHand(id)
	}
	return cloneRecords(records), nil
}

// ListHands returns the newest hands first, by time then ID
func (r *MemoryRepository) ListHands(ctx context.Context, limit int) ([]*Hand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hands := make([]*Hand, 0, len(r.hands))
	for _, records := range r.hands {
		h := records.Hand
		hands = append(hands, &h)
	}
	sort.Slice(hands, func(i, j int) bool {
		if hands[i].Time != hands[j].Time {
			return hands[i].Time > hands[j].Time
		}
		return hands[i].ID > hands[j].ID
	})

	if limit > 0 && len(hands) > limit {
		hands = hands[:limit]
	}
	return hands, nil
}

// SaveBatch appends a batch record
func (r *MemoryRepository) SaveBatch(ctx context.Context, batch *Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := *batch
	r.batches = append(r.batches, &b)
	return nil
}

// Batches returns every recorded batch in insertion order
func (r *MemoryRepository) Batches() []*Batch {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Batch, len(r.batches))
	copy(out, r.batches)
	return out
}

// Close is a no-op for memory repository since there are no resources to close
func (r *MemoryRepository) Close() error {
	return nil
}

func cloneRecords(in *Records) *Records {
	out := *in
	if in.Actions != nil {
		out.Actions = make([]Action, len(in.Actions))
		copy(out.Actions, in.Actions)
	}
	if in.HoleCards != nil {
		out.HoleCards = make([]HoleCard, len(in.HoleCards))
		copy(out.HoleCards, in.HoleCards)
	}
	return &out
}
