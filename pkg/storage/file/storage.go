package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/fadedpez/handtracker/pkg/storage"
	"github.com/google/uuid"
)

// Storage implements file-based storage for rejected hands
type Storage struct {
	path     string
	mu       sync.RWMutex
	rejected map[string]*storage.Rejected
	clock    quartz.Clock
}

// New creates a new file storage instance
func New(options *storage.Options) (*Storage, error) {
	if options == nil {
		options = storage.NewOptions()
	}
	clock := options.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	s := &Storage{
		path:     options.Path,
		rejected: make(map[string]*storage.Rejected),
		clock:    clock,
	}

	// Load existing entries from file
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("failed to load quarantine: %w", err)
	}

	return s, nil
}

// Quarantine saves a rejected hand
func (s *Storage) Quarantine(ctx context.Context, rejected *storage.Rejected) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rejected.ID == "" {
		rejected.ID = uuid.NewString()
	}
	if rejected.RejectedAt.IsZero() {
		rejected.RejectedAt = s.clock.Now()
	}

	entry := *rejected
	s.rejected[entry.ID] = &entry
	return s.save()
}

// Load loads a rejected hand by ID
func (s *Storage) Load(ctx context.Context, id string) (*storage.Rejected, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.rejected[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}

	out := *entry
	return &out, nil
}

// List lists rejected hands, oldest first
func (s *Storage) List(ctx context.Context) ([]*storage.Rejected, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*storage.Rejected, 0, len(s.rejected))
	for _, entry := range s.rejected {
		out := *entry
		entries = append(entries, &out)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].RejectedAt.Equal(entries[j].RejectedAt) {
			return entries[i].RejectedAt.Before(entries[j].RejectedAt)
		}
		return entries[i].ID < entries[j].ID
	})

	return entries, nil
}

// Delete deletes a rejected hand
func (s *Storage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rejected[id]; !ok {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	delete(s.rejected, id)
	return s.save()
}

// CleanupOld removes entries rejected more than maxAge ago
func (s *Storage) CleanupOld(ctx context.Context, maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for id, entry := range s.rejected {
		if now.Sub(entry.RejectedAt) > maxAge {
			delete(s.rejected, id)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}

	return removed, s.save()
}

// Helper functions

func (s *Storage) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	return json.Unmarshal(data, &s.rejected)
}

func (s *Storage) save() error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(s.rejected, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal quarantine: %w", err)
	}

	// replaced by rename so readers never see a partial file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}

	return nil
}
