// Package handfile reads and writes parsed hands as JSON documents.
package handfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fadedpez/handtracker/internal/types"
	"github.com/fadedpez/handtracker/pkg/entities"
)

// Document is the JSON shape of one hand
type Document struct {
	ID             int64      `json:"id"`
	Content        string     `json:"content"`
	RealMoney      bool       `json:"real_money"`
	Date           time.Time  `json:"date"`
	SmallLimit     float32    `json:"small_limit"`
	BigLimit       float32    `json:"big_limit"`
	TableName      string     `json:"table_name"`
	TableSize      uint8      `json:"table_size"`
	ButtonPosition uint8      `json:"button_position"`
	Players        []*Player  `json:"players"`
	SmallBlind     Blind      `json:"small_blind"`
	BigBlind       Blind      `json:"big_blind"`
	End            End        `json:"end"`
	PlayersCards   [][]string `json:"players_cards"`
	Preflop        []Action   `json:"preflop"`
	Flop           []Action   `json:"flop"`
	Turn           []Action   `json:"turn"`
	River          []Action   `json:"river"`
	FlopCards      []string   `json:"flop_cards,omitempty"`
	TurnCard       *string    `json:"turn_card,omitempty"`
	RiverCard      *string    `json:"river_card,omitempty"`
}

// Player is a seated player
type Player struct {
	Name     string  `json:"name"`
	Position uint8   `json:"position"`
	Bank     float32 `json:"bank"`
}

// Blind is a blind posting, naming the player
type Blind struct {
	Player string  `json:"player"`
	Amount float32 `json:"amount"`
}

// End is the end-of-hand summary
type End struct {
	Pot    float32 `json:"pot"`
	Winner string  `json:"winner"`
}

// Action is a tagged action; Type selects which amount fields apply
type Action struct {
	Type   entities.ActionKind `json:"type"`
	Player string              `json:"player"`
	Amount float32             `json:"amount,omitempty"`
	From   float32             `json:"from,omitempty"`
	To     float32             `json:"to,omitempty"`
	AllIn  bool                `json:"all_in,omitempty"`
}

// Entry is one document of a hand file. Raw always holds the document's
// JSON; Err is set instead of Hand when it does not describe a valid hand.
type Entry struct {
	ID   int64
	Raw  json.RawMessage
	Hand *entities.Hand
	Err  error
}

// DecodeEntries reads either a single hand object or an array of them,
// converting each document on its own. Only input that is not a JSON
// object or array fails as a whole.
func DecodeEntries(r io.Reader) ([]Entry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading hands: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, types.NewHandError(types.ErrInvalidHand, "malformed hand JSON")
	}

	var items []json.RawMessage
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, types.WrapError(types.ErrInvalidHand, "malformed hand array", err)
		}
	case '{':
		items = []json.RawMessage{raw}
	default:
		return nil, types.NewHandError(types.ErrInvalidHand, "expected a hand object or an array of them")
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, decodeEntry(item))
	}
	return entries, nil
}

func decodeEntry(item json.RawMessage) Entry {
	entry := Entry{Raw: item}

	var doc Document
	if err := json.Unmarshal(item, &doc); err != nil {
		var peek struct {
			ID int64 `json:"id"`
		}
		_ = json.Unmarshal(item, &peek)
		entry.ID = peek.ID
		entry.Err = types.WrapError(types.ErrInvalidHand, "malformed hand document", err).ForHand(peek.ID)
		return entry
	}

	entry.ID = doc.ID
	entry.Hand, entry.Err = doc.Hand()
	return entry
}

// Decode reads either a single hand object or an array of them, failing
// at the first invalid document
func Decode(r io.Reader) ([]*entities.Hand, error) {
	entries, err := DecodeEntries(r)
	if err != nil {
		return nil, err
	}
	return handsOf(entries)
}

func handsOf(entries []Entry) ([]*entities.Hand, error) {
	hands := make([]*entities.Hand, 0, len(entries))
	for i, e := range entries {
		if e.Err != nil {
			return nil, fmt.Errorf("hand #%d: %w", i, e.Err)
		}
		hands = append(hands, e.Hand)
	}
	return hands, nil
}

// DecodeFileEntries decodes the documents stored in a file
func DecodeFileEntries(path string) ([]Entry, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := DecodeEntries(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// DecodeFile decodes the hands stored in a file
func DecodeFile(path string) ([]*entities.Hand, error) {
	entries, err := DecodeFileEntries(path)
	if err != nil {
		return nil, err
	}
	hands, err := handsOf(entries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return hands, nil
}

// Encode writes hands as an indented JSON array
func Encode(w io.Writer, hands []*entities.Hand) error {
	docs := make([]Document, 0, len(hands))
	for _, h := range hands {
		docs = append(docs, FromHand(h))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

// Hand converts the document to the hand model. Players named by blinds
// and actions are resolved against the seats; names without a seat are
// kept as bare players.
func (d *Document) Hand() (*entities.Hand, error) {
	invalid := func(msg string, args ...interface{}) error {
		return types.NewHandError(types.ErrInvalidHand, fmt.Sprintf(msg, args...)).ForHand(d.ID)
	}

	if d.TableSize > entities.SeatCount {
		return nil, invalid("table size %d exceeds %d seats", d.TableSize, entities.SeatCount)
	}
	if len(d.Players) > entities.SeatCount {
		return nil, invalid("%d player seats exceed %d", len(d.Players), entities.SeatCount)
	}
	if len(d.PlayersCards) > entities.SeatCount {
		return nil, invalid("%d hole card seats exceed %d", len(d.PlayersCards), entities.SeatCount)
	}
	if d.FlopCards != nil && len(d.FlopCards) != 3 {
		return nil, invalid("flop has %d cards", len(d.FlopCards))
	}
	if d.FlopCards == nil && (d.TurnCard != nil || d.RiverCard != nil) {
		return nil, invalid("turn or river dealt without a flop")
	}

	h := &entities.Hand{
		ID:             d.ID,
		Content:        d.Content,
		RealMoney:      d.RealMoney,
		Date:           d.Date,
		SmallLimit:     d.SmallLimit,
		BigLimit:       d.BigLimit,
		TableName:      d.TableName,
		TableSize:      d.TableSize,
		ButtonPosition: d.ButtonPosition,
		TurnCard:       d.TurnCard,
		RiverCard:      d.RiverCard,
	}
	for i, p := range d.Players {
		if p != nil {
			h.Players[i] = &entities.Player{Name: p.Name, Position: p.Position, Bank: p.Bank}
		}
	}
	for i, cards := range d.PlayersCards {
		if cards == nil {
			continue
		}
		if len(cards) != 2 {
			return nil, invalid("seat %d has %d hole cards", i, len(cards))
		}
		h.PlayersCards[i] = &[2]string{cards[0], cards[1]}
	}
	if d.FlopCards != nil {
		h.FlopCards = &[3]string{d.FlopCards[0], d.FlopCards[1], d.FlopCards[2]}
	}

	h.SmallBlind = entities.Blind{Player: lookup(h, d.SmallBlind.Player), Amount: d.SmallBlind.Amount}
	h.BigBlind = entities.Blind{Player: lookup(h, d.BigBlind.Player), Amount: d.BigBlind.Amount}
	h.End = entities.End{Pot: d.End.Pot, Winner: lookup(h, d.End.Winner)}

	streets := []struct {
		src []Action
		dst *[]entities.Action
	}{
		{d.Preflop, &h.Preflop},
		{d.Flop, &h.Flop},
		{d.Turn, &h.Turn},
		{d.River, &h.River},
	}
	for i, st := range streets {
		for j, a := range st.src {
			action, err := a.toEntity(lookup(h, a.Player))
			if err != nil {
				return nil, invalid("%s action %d: %v", entities.Streets()[i], j, err)
			}
			*st.dst = append(*st.dst, action)
		}
	}
	return h, nil
}

func (a Action) toEntity(p entities.Player) (entities.Action, error) {
	if a.Amount < 0 || a.From < 0 || a.To < 0 {
		return nil, fmt.Errorf("negative amount")
	}
	switch a.Type {
	case entities.KindCall:
		return entities.Call{Player: p, Amount: a.Amount, AllIn: a.AllIn}, nil
	case entities.KindBet:
		return entities.Bet{Player: p, Amount: a.Amount, AllIn: a.AllIn}, nil
	case entities.KindRaise:
		return entities.Raise{Player: p, From: a.From, To: a.To, AllIn: a.AllIn}, nil
	case entities.KindCheck:
		return entities.Check{Player: p}, nil
	case entities.KindFold:
		return entities.Fold{Player: p}, nil
	case entities.KindLeave:
		return entities.Leave{Player: p}, nil
	case entities.KindUncalledBet:
		return entities.UncalledBet{Player: p, Amount: a.Amount}, nil
	default:
		return nil, fmt.Errorf("unknown action type %q", a.Type)
	}
}

func lookup(h *entities.Hand, name string) entities.Player {
	if seat, ok := h.SeatOf(name); ok {
		return *h.Players[seat]
	}
	return entities.Player{Name: name}
}

// FromHand converts a hand model to its document form
func FromHand(h *entities.Hand) Document {
	d := Document{
		ID:             h.ID,
		Content:        h.Content,
		RealMoney:      h.RealMoney,
		Date:           h.Date,
		SmallLimit:     h.SmallLimit,
		BigLimit:       h.BigLimit,
		TableName:      h.TableName,
		TableSize:      h.TableSize,
		ButtonPosition: h.ButtonPosition,
		SmallBlind:     Blind{Player: h.SmallBlind.Player.Name, Amount: h.SmallBlind.Amount},
		BigBlind:       Blind{Player: h.BigBlind.Player.Name, Amount: h.BigBlind.Amount},
		End:            End{Pot: h.End.Pot, Winner: h.End.Winner.Name},
		Players:        make([]*Player, entities.SeatCount),
		PlayersCards:   make([][]string, entities.SeatCount),
		TurnCard:       h.TurnCard,
		RiverCard:      h.RiverCard,
	}
	for i, p := range h.Players {
		if p != nil {
			d.Players[i] = &Player{Name: p.Name, Position: p.Position, Bank: p.Bank}
		}
	}
	for i, cards := range h.PlayersCards {
		if cards != nil {
			d.PlayersCards[i] = []string{cards[0], cards[1]}
		}
	}
	if h.FlopCards != nil {
		d.FlopCards = h.FlopCards[:]
	}
	d.Preflop = fromActions(h.Preflop)
	d.Flop = fromActions(h.Flop)
	d.Turn = fromActions(h.Turn)
	d.River = fromActions(h.River)
	return d
}

func fromActions(actions []entities.Action) []Action {
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		doc := Action{Type: a.Kind(), Player: a.Actor().Name}
		switch a := a.(type) {
		case entities.Call:
			doc.Amount, doc.AllIn = a.Amount, a.AllIn
		case entities.Bet:
			doc.Amount, doc.AllIn = a.Amount, a.AllIn
		case entities.Raise:
			doc.From, doc.To, doc.AllIn = a.From, a.To, a.AllIn
		case entities.UncalledBet:
			doc.Amount = a.Amount
		}
		out = append(out, doc)
	}
	return out
}
