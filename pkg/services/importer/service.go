package importer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coder/quartz"
	"github.com/fadedpez/handtracker/internal/logging"
	"github.com/fadedpez/handtracker/internal/types"
	"github.com/fadedpez/handtracker/pkg/entities"
	"github.com/fadedpez/handtracker/pkg/handfile"
	"github.com/fadedpez/handtracker/pkg/notify"
	"github.com/fadedpez/handtracker/pkg/projection"
	"github.com/fadedpez/handtracker/pkg/repositories/hand"
	"github.com/fadedpez/handtracker/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

// Config holds the optional collaborators of the import service
type Config struct {
	Workers  int
	Clock    quartz.Clock
	Logger   *logging.Logger
	Notifier notify.Notifier
}

// Service projects parsed hands and stores them, setting aside the ones
// that fail structural checks
type Service struct {
	repository hand.Repository
	quarantine storage.Storage
	notifier   notify.Notifier
	clock      quartz.Clock
	log        *logging.Logger
	workers    int
}

// NewService creates a new import service
func NewService(repository hand.Repository, quarantine storage.Storage, cfg Config) *Service {
	s := &Service{
		repository: repository,
		quarantine: quarantine,
		notifier:   cfg.Notifier,
		clock:      cfg.Clock,
		log:        cfg.Logger,
		workers:    cfg.Workers,
	}
	if s.notifier == nil {
		s.notifier = notify.Noop{}
	}
	if s.clock == nil {
		s.clock = quartz.NewReal()
	}
	if s.log == nil {
		s.log = logging.Default
	}
	if s.workers < 1 {
		s.workers = defaultWorkers
	}
	return s
}

type projected struct {
	records   *hand.Records
	err       error
	anomalies []error
}

// ImportFile decodes a hand file and imports every hand in it. Documents
// that do not describe a valid hand are quarantined with their JSON.
func (s *Service) ImportFile(ctx context.Context, path string) (*hand.Batch, error) {
	entries, err := handfile.DecodeFileEntries(path)
	if err != nil {
		return nil, err
	}
	return s.importEntries(ctx, path, entries)
}

// Import projects hands concurrently, then stores them in input order.
// STRUCTURAL_VIOLATION and INVALID_HAND failures are quarantined, hands
// already stored are counted as duplicates; any other failure aborts the
// batch. The source names where the hands came from and may be empty.
func (s *Service) Import(ctx context.Context, source string, hands []*entities.Hand) (*hand.Batch, error) {
	entries := make([]handfile.Entry, len(hands))
	for i, h := range hands {
		entries[i] = handfile.Entry{ID: h.ID, Hand: h}
	}
	return s.importEntries(ctx, source, entries)
}

func (s *Service) importEntries(ctx context.Context, source string, entries []handfile.Entry) (*hand.Batch, error) {
	batch := &hand.Batch{
		ID:        uuid.NewString(),
		StartedAt: s.clock.Now(),
	}
	log := s.log.With("batch", batch.ID)

	results, err := s.project(ctx, entries)
	if err != nil {
		return nil, err
	}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := results[i]
		if result.err != nil {
			if !quarantinable(result.err) {
				return nil, result.err
			}
			if err := s.reject(ctx, batch.ID, source, entry, result.err); err != nil {
				return nil, err
			}
			log.LogError(result.err)
			batch.Quarantined++
			continue
		}

		for _, anomaly := range result.anomalies {
			log.Warn("%v", anomaly)
		}

		stored, err := s.store(ctx, result.records)
		if err != nil {
			return nil, err
		}
		if stored {
			batch.Imported++
		} else {
			log.Debug("Hand %d already stored, skipping", entry.ID)
			batch.Duplicates++
		}
	}

	batch.FinishedAt = s.clock.Now()
	if err := s.repository.SaveBatch(ctx, batch); err != nil {
		return nil, err
	}

	log.Info("Imported %d hands (%d duplicates, %d quarantined)", batch.Imported, batch.Duplicates, batch.Quarantined)

	if err := s.notifier.NotifyBatch(ctx, batch); err != nil {
		log.Warn("Batch notification failed: %v", err)
	}

	return batch, nil
}

// project runs the projections of every decoded hand; entries that failed
// to decode carry their decode error through
func (s *Service) project(ctx context.Context, entries []handfile.Entry) ([]projected, error) {
	results := make([]projected, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, entry := range entries {
		if entry.Hand == nil {
			results[i] = projected{err: entry.Err}
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records, err := projection.Project(entry.Hand)
			results[i] = projected{
				records:   records,
				err:       err,
				anomalies: projection.BlindAnomalies(entry.Hand),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// store saves the records unless the hand is already known
func (s *Service) store(ctx context.Context, records *hand.Records) (bool, error) {
	exists, err := s.repository.HasHand(ctx, records.Hand.ID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := s.repository.SaveHand(ctx, records); err != nil {
		// stored concurrently by another importer
		if types.IsHandError(err, types.ErrDuplicateHand) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) reject(ctx context.Context, batchID, source string, entry handfile.Entry, cause error) error {
	doc := entry.Raw
	if doc == nil {
		encoded, err := json.Marshal(handfile.FromHand(entry.Hand))
		if err != nil {
			return types.WrapError(types.ErrInternalError, "encode rejected hand", err).ForHand(entry.ID)
		}
		doc = encoded
	}

	rejected := &storage.Rejected{
		HandID:  entry.ID,
		BatchID: batchID,
		Source:  source,
		Code:    string(types.ErrInternalError),
		Reason:  cause.Error(),
		Seat:    types.NoSeat,
		Hand:    doc,
	}
	var handErr *types.HandError
	if types.As(cause, &handErr) {
		rejected.Code = string(handErr.Code)
		rejected.Reason = handErr.Message
		rejected.Seat = handErr.Seat
	}

	if err := s.quarantine.Quarantine(ctx, rejected); err != nil {
		return fmt.Errorf("error quarantining hand %d: %w", entry.ID, err)
	}
	return nil
}

func quarantinable(err error) bool {
	return types.IsHandError(err, types.ErrStructuralViolation) || types.IsHandError(err, types.ErrInvalidHand)
}
