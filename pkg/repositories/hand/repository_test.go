package hand

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fadedpez/handtracker/internal/types"
	"github.com/stretchr/testify/suite"
)

func sampleRecords(id, unix int64) *Records {
	return &Records{
		Hand: Hand{
			ID:        id,
			Content:   "raw hand text",
			RealMoney: true,
			Time:      unix,
			TableName: "Aludra",
			TableSize: 6,
			Winner:    "Bob",
			Pot:       1.5,
			Player1:   "Alice",
			Player2:   "Bob",
			Card1:     "Qd",
			Card2:     "7s",
			Card3:     "2h",
		},
		Actions: []Action{
			{Player: "Alice", Hand: id, Kind: "raise", Moment: "preflop", Sequence: 0, Amount1: 0.5, Amount2: 1.5},
			{Player: "Bob", Hand: id, Kind: "call", Moment: "preflop", Sequence: 1, Amount1: 1},
			{Player: "Alice", Hand: id, Kind: "bet", Moment: "flop", Sequence: 2, Amount1: 3.25, AllIn: true},
			{Player: "Bob", Hand: id, Kind: "fold", Moment: "flop", Sequence: 3},
		},
		SmallBlind: Blind{Player: "Alice", Hand: id, Amount: 0.5, Kind: BlindSmall},
		BigBlind:   Blind{Player: "Bob", Hand: id, Amount: 1, Kind: BlindBig},
		HoleCards: []HoleCard{
			{Hand: id, Player: "Alice", Card1: "Ah", Card2: "Kd"},
			{Hand: id, Player: "Bob", Card1: "9c", Card2: "9s"},
		},
	}
}

// RepositoryTestSuite runs the same behaviour checks against every Repository implementation
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func() Repository
	repo    Repository
	ctx     context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo()
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.NoError(s.repo.Close())
}

func TestMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{newRepo: func() Repository {
		return NewMemoryRepository()
	}})
}

func TestSQLiteRepository(t *testing.T) {
	rs := &RepositoryTestSuite{}
	rs.newRepo = func() Repository {
		repo, err := NewSQLiteRepository(filepath.Join(rs.T().TempDir(), "nested", "hands.db"))
		rs.Require().NoError(err)
		return repo
	}
	suite.Run(t, rs)
}

func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("HANDTRACKER_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("HANDTRACKER_TEST_POSTGRES_DSN not set")
	}
	rs := &RepositoryTestSuite{}
	rs.newRepo = func() Repository {
		repo, err := NewPostgresRepository(dsn)
		rs.Require().NoError(err)
		_, err = repo.db.Exec(`TRUNCATE hands, import_batches CASCADE`)
		rs.Require().NoError(err)
		return repo
	}
	suite.Run(t, rs)
}

func (s *RepositoryTestSuite) TestSaveAndGetHand() {
	records := sampleRecords(42, 1677957300)
	s.Require().NoError(s.repo.SaveHand(s.ctx, records))

	exists, err := s.repo.HasHand(s.ctx, 42)
	s.Require().NoError(err)
	s.True(exists)

	loaded, err := s.repo.GetHand(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal(records, loaded)
}

func (s *RepositoryTestSuite) TestHasHandMissing() {
	exists, err := s.repo.HasHand(s.ctx, 7)
	s.NoError(err)
	s.False(exists)
}

func (s *RepositoryTestSuite) TestGetHandNotFound() {
	_, err := s.repo.GetHand(s.ctx, 7)
	s.Require().Error(err)
	s.True(types.IsHandError(err, types.ErrHandNotFound))

	var handErr *types.HandError
	s.Require().True(types.As(err, &handErr))
	s.Equal(int64(7), handErr.HandID)
}

func (s *RepositoryTestSuite) TestSaveDuplicateHand() {
	s.Require().NoError(s.repo.SaveHand(s.ctx, sampleRecords(42, 100)))

	err := s.repo.SaveHand(s.ctx, sampleRecords(42, 200))
	s.Require().Error(err)
	s.True(types.IsHandError(err, types.ErrDuplicateHand))

	// the first copy is untouched
	loaded, err := s.repo.GetHand(s.ctx, 42)
	s.Require().NoError(err)
	s.Equal(int64(100), loaded.Hand.Time)
	s.Len(loaded.Actions, 4)
}

func (s *RepositoryTestSuite) TestHandWithoutHoleCards() {
	records := sampleRecords(5, 100)
	records.HoleCards = nil

	s.Require().NoError(s.repo.SaveHand(s.ctx, records))

	loaded, err := s.repo.GetHand(s.ctx, 5)
	s.Require().NoError(err)
	s.Empty(loaded.HoleCards)
	s.Equal(records.SmallBlind, loaded.SmallBlind)
	s.Equal(records.BigBlind, loaded.BigBlind)
}

func (s *RepositoryTestSuite) TestListHandsNewestFirst() {
	s.Require().NoError(s.repo.SaveHand(s.ctx, sampleRecords(1, 100)))
	s.Require().NoError(s.repo.SaveHand(s.ctx, sampleRecords(2, 300)))
	s.Require().NoError(s.repo.SaveHand(s.ctx, sampleRecords(3, 200)))
	s.Require().NoError(s.repo.SaveHand(s.ctx, sampleRecords(4, 300)))

	hands, err := s.repo.ListHands(s.ctx, 0)
	s.Require().NoError(err)
	ids := make([]int64, 0, len(hands))
	for _, h := range hands {
		ids = append(ids, h.ID)
	}
	s.Equal([]int64{4, 2, 3, 1}, ids)

	hands, err = s.repo.ListHands(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(hands, 2)
	s.Equal(int64(4), hands[0].ID)
	s.Equal("Alice", hands[0].Player1)
}

func (s *RepositoryTestSuite) TestListHandsEmpty() {
	hands, err := s.repo.ListHands(s.ctx, 10)
	s.NoError(err)
	s.Empty(hands)
}

func (s *RepositoryTestSuite) TestSaveBatch() {
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	batch := &Batch{
		ID:          "4f7e0b36-2c43-4b63-9d1e-6a6dd0f1f0a1",
		StartedAt:   started,
		FinishedAt:  started.Add(2 * time.Second),
		Imported:    3,
		Duplicates:  1,
		Quarantined: 1,
	}
	s.NoError(s.repo.SaveBatch(s.ctx, batch))
}

func TestMemoryRepositoryBatches(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	batch := &Batch{ID: "a", Imported: 2}
	if err := repo.SaveBatch(ctx, batch); err != nil {
		t.Fatal(err)
	}
	batch.Imported = 9

	batches := repo.Batches()
	if len(batches) != 1 || batches[0].Imported != 2 {
		t.Fatalf("expected stored copy with 2 imported hands, got %+v", batches)
	}
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	records := sampleRecords(1, 100)
	if err := repo.SaveHand(ctx, records); err != nil {
		t.Fatal(err)
	}
	records.Actions[0].Player = "Mallory"

	loaded, err := repo.GetHand(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Actions[0].Player != "Alice" {
		t.Fatalf("stored records were mutated through the caller's slice")
	}
}
