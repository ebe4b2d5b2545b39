package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/coder/quartz"
)

// Common storage errors
var (
	ErrNotFound = errors.New("rejected hand not found")
)

// Rejected is a hand the importer refused to store, kept for inspection
type Rejected struct {
	ID         string          `json:"id"`
	HandID     int64           `json:"hand_id"`
	BatchID    string          `json:"batch_id"`
	Source     string          `json:"source,omitempty"` // file the hand was read from
	Code       string          `json:"code"`
	Reason     string          `json:"reason"`
	Seat       int             `json:"seat"`
	Hand       json.RawMessage `json:"hand"` // interchange document of the hand
	RejectedAt time.Time       `json:"rejected_at"`
}

// Storage defines the interface for quarantined hand persistence
type Storage interface {
	// Quarantine saves a rejected hand, assigning an ID if it has none
	Quarantine(ctx context.Context, rejected *Rejected) error

	// Load loads a rejected hand by ID
	Load(ctx context.Context, id string) (*Rejected, error)

	// List lists rejected hands, oldest first
	List(ctx context.Context) ([]*Rejected, error)

	// Delete deletes a rejected hand
	Delete(ctx context.Context, id string) error

	// CleanupOld removes entries older than maxAge and reports how many went
	CleanupOld(ctx context.Context, maxAge time.Duration) (int, error)
}

// Options represents storage configuration options
type Options struct {
	Path  string
	Clock quartz.Clock
}

// NewOptions creates a new Options with default values
func NewOptions() *Options {
	return &Options{
		Path:  "quarantine.json",
		Clock: quartz.NewReal(),
	}
}
