package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fadedpez/handtracker/internal/types"
)

// Inbox subdirectories
const (
	DoneDir   = "done"
	FailedDir = "failed"
)

// Inbox imports hand files dropped into a directory. Imported files move
// to done/, files that are not JSON hand documents move to failed/.
type Inbox struct {
	service *Service
	dir     string
}

// NewInbox creates an inbox over dir
func NewInbox(service *Service, dir string) *Inbox {
	return &Inbox{service: service, dir: dir}
}

// Sweep imports every *.json file currently in the inbox, in name order,
// and returns how many files it moved out. A storage failure stops the
// sweep and leaves the file in place for the next one.
func (i *Inbox) Sweep(ctx context.Context) (int, error) {
	for _, sub := range []string{DoneDir, FailedDir} {
		if err := os.MkdirAll(filepath.Join(i.dir, sub), 0755); err != nil {
			return 0, fmt.Errorf("error creating inbox directory: %w", err)
		}
	}

	entries, err := os.ReadDir(i.dir)
	if err != nil {
		return 0, fmt.Errorf("error reading inbox: %w", err)
	}

	processed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return processed, err
		}

		path := filepath.Join(i.dir, entry.Name())
		target := DoneDir
		if _, err := i.service.ImportFile(ctx, path); err != nil {
			if !types.IsHandError(err, types.ErrInvalidHand) {
				return processed, err
			}
			i.service.log.Error("Rejected inbox file %s: %v", entry.Name(), err)
			target = FailedDir
		}

		if err := os.Rename(path, filepath.Join(i.dir, target, entry.Name())); err != nil {
			return processed, fmt.Errorf("error moving %s to %s: %w", entry.Name(), target, err)
		}
		processed++
	}

	return processed, nil
}
