package hand

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fadedpez/handtracker/internal/types"
)

const handColumns = `id, content, real_money, time, table_name, table_size, winner, pot,
	player1, player2, player3, player4, player5, player6, player7, player8, player9,
	card1, card2, card3, card4, card5`

// sqlStore holds the queries shared by the SQLite and PostgreSQL repositories.
// Queries are written with ? placeholders and rebound per driver.
type sqlStore struct {
	db              *sql.DB
	numbered        bool // $1, $2... placeholders
	uniqueViolation func(error) bool
}

func (s *sqlStore) rebind(query string) string {
	if !s.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func dbError(message string, err error) *types.HandError {
	return types.WrapError(types.ErrDatabaseError, message, err)
}

// SaveHand inserts the summary row first so a duplicate ID fails before
// any child row is written
func (s *sqlStore) SaveHand(ctx context.Context, records *Records) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return dbError("begin transaction", err)
	}
	defer tx.Rollback()

	h := records.Hand
	_, err = tx.ExecContext(ctx, s.rebind(`
		INSERT INTO hands (`+handColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		h.ID, h.Content, h.RealMoney, h.Time, h.TableName, h.TableSize, h.Winner, h.Pot,
		h.Player1, h.Player2, h.Player3, h.Player4, h.Player5, h.Player6, h.Player7, h.Player8, h.Player9,
		h.Card1, h.Card2, h.Card3, h.Card4, h.Card5)
	if err != nil {
		if s.uniqueViolation != nil && s.uniqueViolation(err) {
			return types.WrapError(types.ErrDuplicateHand, "hand already stored", err).ForHand(h.ID)
		}
		return dbError("insert hand", err).ForHand(h.ID)
	}

	actionQuery := s.rebind(`
		INSERT INTO actions (player, hand, kind, moment, sequence, amount1, amount2, allin)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	for _, a := range records.Actions {
		if _, err := tx.ExecContext(ctx, actionQuery,
			a.Player, a.Hand, a.Kind, a.Moment, a.Sequence, a.Amount1, a.Amount2, a.AllIn); err != nil {
			return dbError(fmt.Sprintf("insert action %d", a.Sequence), err).ForHand(h.ID)
		}
	}

	blindQuery := s.rebind(`INSERT INTO blinds (player, hand, amount, kind) VALUES (?, ?, ?, ?)`)
	for _, b := range []Blind{records.SmallBlind, records.BigBlind} {
		if _, err := tx.ExecContext(ctx, blindQuery, b.Player, b.Hand, b.Amount, b.Kind); err != nil {
			return dbError("insert "+b.Kind+" blind", err).ForHand(h.ID)
		}
	}

	holeQuery := s.rebind(`INSERT INTO hole_cards (hand, player, card1, card2) VALUES (?, ?, ?, ?)`)
	for _, hc := range records.HoleCards {
		if _, err := tx.ExecContext(ctx, holeQuery, hc.Hand, hc.Player, hc.Card1, hc.Card2); err != nil {
			return dbError("insert hole cards", err).ForHand(h.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return dbError("commit hand", err).ForHand(h.ID)
	}
	return nil
}

func (s *sqlStore) HasHand(ctx context.Context, id int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT 1 FROM hands WHERE id = ?`), id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, dbError("lookup hand", err).ForHand(id)
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHand(row rowScanner) (*Hand, error) {
	var h Hand
	err := row.Scan(&h.ID, &h.Content, &h.RealMoney, &h.Time, &h.TableName, &h.TableSize, &h.Winner, &h.Pot,
		&h.Player1, &h.Player2, &h.Player3, &h.Player4, &h.Player5, &h.Player6, &h.Player7, &h.Player8, &h.Player9,
		&h.Card1, &h.Card2, &h.Card3, &h.Card4, &h.Card5)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *sqlStore) GetHand(ctx context.Context, id int64) (*Records, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+handColumns+` FROM hands WHERE id = ?`), id)
	h, err := scanHand(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.NewHandError(types.ErrHandNotFound, "hand not found").ForHand(id)
	}
	if err != nil {
		return nil, dbError("load hand", err).ForHand(id)
	}

	records := &Records{Hand: *h}

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT player, hand, kind, moment, sequence, amount1, amount2, allin
		FROM actions WHERE hand = ? ORDER BY sequence`), id)
	if err != nil {
		return nil, dbError("load actions", err).ForHand(id)
	}
	defer rows.Close()
	records.Actions = []Action{}
	for rows.Next() {
		var a Action
		if err := rows.Scan(&a.Player, &a.Hand, &a.Kind, &a.Moment, &a.Sequence, &a.Amount1, &a.Amount2, &a.AllIn); err != nil {
			return nil, dbError("scan action", err).ForHand(id)
		}
		records.Actions = append(records.Actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("load actions", err).ForHand(id)
	}

	blindRows, err := s.db.QueryContext(ctx, s.rebind(`SELECT player, hand, amount, kind FROM blinds WHERE hand = ?`), id)
	if err != nil {
		return nil, dbError("load blinds", err).ForHand(id)
	}
	defer blindRows.Close()
	for blindRows.Next() {
		var b Blind
		if err := blindRows.Scan(&b.Player, &b.Hand, &b.Amount, &b.Kind); err != nil {
			return nil, dbError("scan blind", err).ForHand(id)
		}
		switch b.Kind {
		case BlindSmall:
			records.SmallBlind = b
		case BlindBig:
			records.BigBlind = b
		}
	}
	if err := blindRows.Err(); err != nil {
		return nil, dbError("load blinds", err).ForHand(id)
	}

	holeRows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT hand, player, card1, card2 FROM hole_cards WHERE hand = ? ORDER BY id`), id)
	if err != nil {
		return nil, dbError("load hole cards", err).ForHand(id)
	}
	defer holeRows.Close()
	for holeRows.Next() {
		var hc HoleCard
		if err := holeRows.Scan(&hc.Hand, &hc.Player, &hc.Card1, &hc.Card2); err != nil {
			return nil, dbError("scan hole cards", err).ForHand(id)
		}
		records.HoleCards = append(records.HoleCards, hc)
	}
	if err := holeRows.Err(); err != nil {
		return nil, dbError("load hole cards", err).ForHand(id)
	}

	return records, nil
}

func (s *sqlStore) ListHands(ctx context.Context, limit int) ([]*Hand, error) {
	query := `SELECT ` + handColumns + ` FROM hands ORDER BY time DESC, id DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, dbError("list hands", err)
	}
	defer rows.Close()

	hands := []*Hand{}
	for rows.Next() {
		h, err := scanHand(rows)
		if err != nil {
			return nil, dbError("scan hand", err)
		}
		hands = append(hands, h)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list hands", err)
	}
	return hands, nil
}

func (s *sqlStore) SaveBatch(ctx context.Context, batch *Batch) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO import_batches (id, started_at, finished_at, imported, duplicates, quarantined)
		VALUES (?, ?, ?, ?, ?, ?)`),
		batch.ID, batch.StartedAt, batch.FinishedAt, batch.Imported, batch.Duplicates, batch.Quarantined)
	if err != nil {
		return dbError("insert import batch "+batch.ID, err)
	}
	return nil
}

// Close closes the database connection
func (s *sqlStore) Close() error {
	return s.db.Close()
}
