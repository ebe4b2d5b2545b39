package hand

import (
	"time"
)

// Hand is the per-hand summary row of the hands table
type Hand struct {
	ID        int64   `db:"id" json:"id"`
	Content   string  `db:"content" json:"content"`
	RealMoney bool    `db:"real_money" json:"real_money"`
	Time      int64   `db:"time" json:"time"` // Unix seconds
	TableName string  `db:"table_name" json:"table_name"`
	TableSize int32   `db:"table_size" json:"table_size"`
	Winner    string  `db:"winner" json:"winner"`
	Pot       float32 `db:"pot" json:"pot"`
	Player1   string  `db:"player1" json:"player1"`
	Player2   string  `db:"player2" json:"player2"`
	Player3   string  `db:"player3" json:"player3"`
	Player4   string  `db:"player4" json:"player4"`
	Player5   string  `db:"player5" json:"player5"`
	Player6   string  `db:"player6" json:"player6"`
	Player7   string  `db:"player7" json:"player7"`
	Player8   string  `db:"player8" json:"player8"`
	Player9   string  `db:"player9" json:"player9"`
	Card1     string  `db:"card1" json:"card1"`
	Card2     string  `db:"card2" json:"card2"`
	Card3     string  `db:"card3" json:"card3"`
	Card4     string  `db:"card4" json:"card4"`
	Card5     string  `db:"card5" json:"card5"`
}

// Players returns the nine seat name columns in seat order
func (h *Hand) Players() [9]string {
	return [9]string{h.Player1, h.Player2, h.Player3, h.Player4, h.Player5, h.Player6, h.Player7, h.Player8, h.Player9}
}

// Cards returns the five board columns in deal order
func (h *Hand) Cards() [5]string {
	return [5]string{h.Card1, h.Card2, h.Card3, h.Card4, h.Card5}
}

// Action is one row of the actions table.
// Amount1 holds the call/bet/uncalled amount, or the raise-from amount;
// Amount2 holds the raise-to amount.
type Action struct {
	Player   string  `db:"player" json:"player"`
	Hand     int64   `db:"hand" json:"hand"`
	Kind     string  `db:"kind" json:"kind"`
	Moment   string  `db:"moment" json:"moment"`
	Sequence int32   `db:"sequence" json:"sequence"`
	Amount1  float32 `db:"amount1" json:"amount1"`
	Amount2  float32 `db:"amount2" json:"amount2"`
	AllIn    bool    `db:"allin" json:"allin"`
}

// Blind kinds
const (
	BlindSmall = "small"
	BlindBig   = "big"
)

// Blind is one row of the blinds table
type Blind struct {
	Player string  `db:"player" json:"player"`
	Hand   int64   `db:"hand" json:"hand"`
	Amount float32 `db:"amount" json:"amount"`
	Kind   string  `db:"kind" json:"kind"`
}

// HoleCard is one row of the hole_cards table
type HoleCard struct {
	Hand   int64  `db:"hand" json:"hand"`
	Player string `db:"player" json:"player"`
	Card1  string `db:"card1" json:"card1"`
	Card2  string `db:"card2" json:"card2"`
}

// Records bundles every row derived from one hand
type Records struct {
	Hand       Hand       `json:"hand"`
	Actions    []Action   `json:"actions"`
	SmallBlind Blind      `json:"small_blind"`
	BigBlind   Blind      `json:"big_blind"`
	HoleCards  []HoleCard `json:"hole_cards"`
}

// Batch records the outcome of one import run
type Batch struct {
	ID          string    `db:"id" json:"id"`
	StartedAt   time.Time `db:"started_at" json:"started_at"`
	FinishedAt  time.Time `db:"finished_at" json:"finished_at"`
	Imported    int       `db:"imported" json:"imported"`
	Duplicates  int       `db:"duplicates" json:"duplicates"`
	Quarantined int       `db:"quarantined" json:"quarantined"`
}

// Total is the number of hands the batch looked at
func (b *Batch) Total() int {
	return b.Imported + b.Duplicates + b.Quarantined
}
