package file

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/fadedpez/handtracker/pkg/storage"
	"github.com/stretchr/testify/suite"
)

type StorageTestSuite struct {
	suite.Suite
	tempDir string
	clock   *quartz.Mock
	storage *Storage
	options *storage.Options
}

func TestStorage(t *testing.T) {
	suite.Run(t, new(StorageTestSuite))
}

func (s *StorageTestSuite) SetupTest() {
	s.tempDir = s.T().TempDir()
	s.clock = quartz.NewMock(s.T())

	s.options = &storage.Options{
		Path:  filepath.Join(s.tempDir, "nested", "quarantine.json"),
		Clock: s.clock,
	}
	st, err := New(s.options)
	s.Require().NoError(err)
	s.storage = st
}

func rejectedHand(handID int64) *storage.Rejected {
	return &storage.Rejected{
		HandID:  handID,
		BatchID: "batch-1",
		Source:  "session.json",
		Code:    "STRUCTURAL_VIOLATION",
		Reason:  "hole cards recorded for an unoccupied seat",
		Seat:    5,
		Hand:    json.RawMessage(`{"id":13}`),
	}
}

func (s *StorageTestSuite) TestQuarantineAndLoad() {
	ctx := context.Background()
	entry := rejectedHand(13)

	s.Require().NoError(s.storage.Quarantine(ctx, entry))
	s.NotEmpty(entry.ID, "ID assigned")
	s.True(s.clock.Now().Equal(entry.RejectedAt), "timestamp taken from the clock")

	loaded, err := s.storage.Load(ctx, entry.ID)
	s.Require().NoError(err)
	s.Equal(entry.HandID, loaded.HandID)
	s.Equal(entry.Code, loaded.Code)
	s.Equal(5, loaded.Seat)
	s.JSONEq(`{"id":13}`, string(loaded.Hand))
}

func (s *StorageTestSuite) TestKeepsProvidedIDAndTime() {
	ctx := context.Background()
	at := s.clock.Now().Add(-time.Minute)
	entry := rejectedHand(13)
	entry.ID = "fixed"
	entry.RejectedAt = at

	s.Require().NoError(s.storage.Quarantine(ctx, entry))

	loaded, err := s.storage.Load(ctx, "fixed")
	s.Require().NoError(err)
	s.True(at.Equal(loaded.RejectedAt))
}

func (s *StorageTestSuite) TestLoadMissing() {
	_, err := s.storage.Load(context.Background(), "nope")
	s.True(errors.Is(err, storage.ErrNotFound))
}

func (s *StorageTestSuite) TestPersistsAcrossInstances() {
	ctx := context.Background()
	entry := rejectedHand(13)
	s.Require().NoError(s.storage.Quarantine(ctx, entry))

	reopened, err := New(s.options)
	s.Require().NoError(err)

	loaded, err := reopened.Load(ctx, entry.ID)
	s.Require().NoError(err)
	s.Equal(int64(13), loaded.HandID)

	_, err = os.Stat(s.options.Path + ".tmp")
	s.True(os.IsNotExist(err), "temporary file is renamed away")
}

func (s *StorageTestSuite) TestListOldestFirst() {
	ctx := context.Background()
	first := rejectedHand(1)
	s.Require().NoError(s.storage.Quarantine(ctx, first))
	s.clock.Advance(time.Minute)
	second := rejectedHand(2)
	s.Require().NoError(s.storage.Quarantine(ctx, second))

	listed, err := s.storage.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(listed, 2)
	s.Equal(int64(1), listed[0].HandID)
	s.Equal(int64(2), listed[1].HandID)
}

func (s *StorageTestSuite) TestDelete() {
	ctx := context.Background()
	entry := rejectedHand(13)
	s.Require().NoError(s.storage.Quarantine(ctx, entry))

	s.Require().NoError(s.storage.Delete(ctx, entry.ID))
	_, err := s.storage.Load(ctx, entry.ID)
	s.Error(err, "entry should be deleted")

	s.True(errors.Is(s.storage.Delete(ctx, entry.ID), storage.ErrNotFound))
}

func (s *StorageTestSuite) TestCleanupOld() {
	ctx := context.Background()
	old := rejectedHand(1)
	s.Require().NoError(s.storage.Quarantine(ctx, old))
	s.clock.Advance(2 * time.Hour)
	fresh := rejectedHand(2)
	s.Require().NoError(s.storage.Quarantine(ctx, fresh))

	removed, err := s.storage.CleanupOld(ctx, time.Hour)
	s.Require().NoError(err)
	s.Equal(1, removed)

	listed, err := s.storage.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal(fresh.ID, listed[0].ID)

	removed, err = s.storage.CleanupOld(ctx, time.Hour)
	s.NoError(err)
	s.Zero(removed)
}
