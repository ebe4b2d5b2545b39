package entities

import "time"

// SeatCount is the number of seats at the largest supported table
const SeatCount = 9

// Player is a player sitting at a seat for one hand
type Player struct {
	Name     string
	Position uint8   // seat index, 0-based
	Bank     float32 // stack at the start of the hand
}

// Blind is a forced small or big blind posting
type Blind struct {
	Player Player
	Amount float32
}

// End holds the end-of-hand summary
type End struct {
	Pot    float32
	Winner Player
}

// Hand is one played hand, as handed over by the hand-history parser.
//
// A Hand is fully populated before it reaches this package and is treated
// as read-only afterwards. Seat-indexed data lives in fixed arrays so that
// index i always means seat i; a nil entry is an empty seat or a seat with
// no known hole cards.
type Hand struct {
	ID             int64
	Content        string // raw hand-history text
	RealMoney      bool
	Date           time.Time
	SmallLimit     float32
	BigLimit       float32
	TableName      string
	TableSize      uint8 // 1 to 9
	ButtonPosition uint8

	Players    [SeatCount]*Player
	SmallBlind Blind
	BigBlind   Blind
	End        End // not consumed downstream

	PlayersCards [SeatCount]*[2]string

	Preflop []Action
	Flop    []Action
	Turn    []Action
	River   []Action

	// Turn and river are only set when the flop is
	FlopCards *[3]string
	TurnCard  *string
	RiverCard *string
}

// Seat returns the player at seat i
func (h *Hand) Seat(i int) (*Player, bool) {
	if i < 0 || i >= SeatCount || h.Players[i] == nil {
		return nil, false
	}
	return h.Players[i], true
}

// SeatOf returns the index of the first seat held by a player called name
func (h *Hand) SeatOf(name string) (int, bool) {
	for i, p := range h.Players {
		if p != nil && p.Name == name {
			return i, true
		}
	}
	return 0, false
}

// OccupiedSeats counts non-empty seats
func (h *Hand) OccupiedSeats() int {
	n := 0
	for _, p := range h.Players {
		if p != nil {
			n++
		}
	}
	return n
}

// StreetActions returns the actions recorded for street s
func (h *Hand) StreetActions(s Street) []Action {
	switch s {
	case Preflop:
		return h.Preflop
	case Flop:
		return h.Flop
	case Turn:
		return h.Turn
	case River:
		return h.River
	default:
		return nil
	}
}

// ActionCount is the number of actions across all streets
func (h *Hand) ActionCount() int {
	return len(h.Preflop) + len(h.Flop) + len(h.Turn) + len(h.River)
}

// BoardCards lists the dealt community cards in order
func (h *Hand) BoardCards() []string {
	var cards []string
	if h.FlopCards != nil {
		cards = append(cards, h.FlopCards[:]...)
	}
	if h.TurnCard != nil {
		cards = append(cards, *h.TurnCard)
	}
	if h.RiverCard != nil {
		cards = append(cards, *h.RiverCard)
	}
	return cards
}
