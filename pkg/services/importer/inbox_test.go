package importer

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/coder/quartz"
	"github.com/fadedpez/handtracker/internal/logging"
	"github.com/fadedpez/handtracker/internal/types"
	"github.com/fadedpez/handtracker/pkg/repositories/hand"
	mock_hand "github.com/fadedpez/handtracker/pkg/repositories/hand/mock"
	storagemock "github.com/fadedpez/handtracker/pkg/storage/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func copyFixture(t *testing.T, dir, name string) {
	t.Helper()
	data, err := os.ReadFile("../../handfile/testdata/session.json")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
}

func newTestService(t *testing.T, repo hand.Repository) *Service {
	return NewService(repo, storagemock.New(), Config{
		Clock:  quartz.NewMock(t),
		Logger: logging.NewLoggerWithWriter(io.Discard, logging.ERROR),
	})
}

func TestInboxSweep(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, dir, "a.json")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(`{"id": 9, "players": [`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	repo := hand.NewMemoryRepository()
	inbox := NewInbox(newTestService(t, repo), dir)

	processed, err := inbox.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, processed)

	assert.FileExists(t, filepath.Join(dir, DoneDir, "a.json"))
	assert.FileExists(t, filepath.Join(dir, FailedDir, "b.json"))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "a.json"))

	exists, err := repo.HasHand(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, exists)

	// nothing left to do
	processed, err = inbox.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, processed)
}

func TestInboxSweepLeavesFileOnStorageError(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, dir, "a.json")

	ctrl := gomock.NewController(t)
	repo := mock_hand.NewMockRepository(ctrl)
	repo.EXPECT().HasHand(gomock.Any(), gomock.Any()).Return(false, types.WrapError(types.ErrDatabaseError, "lookup hand", errors.New("locked")))

	processed, err := NewInbox(newTestService(t, repo), dir).Sweep(context.Background())
	assert.True(t, types.IsHandError(err, types.ErrDatabaseError))
	assert.Zero(t, processed)
	assert.FileExists(t, filepath.Join(dir, "a.json"))
}

func TestInboxSweepMissingDirectoryIsCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "inbox")

	processed, err := NewInbox(newTestService(t, hand.NewMemoryRepository()), dir).Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, processed)
	assert.DirExists(t, filepath.Join(dir, DoneDir))
}
