// Package projection flattens an entities.Hand into the rows stored for it.
//
// Every function here is pure: it reads the hand, never modifies it, and
// performs no I/O. Hands are independent, so callers may project many
// hands in parallel as long as no one mutates a hand while it is read.
package projection

import (
	"fmt"

	"github.com/fadedpez/handtracker/internal/types"
	"github.com/fadedpez/handtracker/pkg/entities"
	"github.com/fadedpez/handtracker/pkg/repositories/hand"
)

// Actions returns one row per action, preflop through river, numbered
// from 0 across the whole hand.
func Actions(h *entities.Hand) []hand.Action {
	actions := make([]hand.Action, 0, h.ActionCount())
	var sequence int32
	for _, street := range entities.Streets() {
		for _, a := range h.StreetActions(street) {
			actions = append(actions, actionRecord(a, street, sequence, h.ID))
			sequence++
		}
	}
	return actions
}

func actionRecord(a entities.Action, street entities.Street, sequence int32, handID int64) hand.Action {
	rec := hand.Action{
		Hand:     handID,
		Moment:   street.String(),
		Sequence: sequence,
	}
	switch a := a.(type) {
	case entities.Call:
		rec.Amount1 = a.Amount
		rec.AllIn = a.AllIn
	case entities.Bet:
		rec.Amount1 = a.Amount
		rec.AllIn = a.AllIn
	case entities.Raise:
		rec.Amount1 = a.From
		rec.Amount2 = a.To
		rec.AllIn = a.AllIn
	case entities.Check, entities.Fold, entities.Leave:
	case entities.UncalledBet:
		rec.Amount1 = a.Amount
	default:
		panic(fmt.Sprintf("projection: unhandled action %T", a))
	}
	rec.Player = a.Actor().Name
	rec.Kind = string(a.Kind())
	return rec
}

// Summary returns the hands row
func Summary(h *entities.Hand) hand.Hand {
	var seats [entities.SeatCount]string
	for i, p := range h.Players {
		if p != nil {
			seats[i] = p.Name
		}
	}

	var board [5]string
	if h.FlopCards != nil {
		copy(board[:3], h.FlopCards[:])
	}
	if h.TurnCard != nil {
		board[3] = *h.TurnCard
	}
	if h.RiverCard != nil {
		board[4] = *h.RiverCard
	}

	return hand.Hand{
		ID:        h.ID,
		Content:   h.Content,
		RealMoney: h.RealMoney,
		Time:      h.Date.Unix(),
		TableName: h.TableName,
		TableSize: int32(h.TableSize),
		Winner:    h.End.Winner.Name,
		Pot:       h.End.Pot,
		Player1:   seats[0],
		Player2:   seats[1],
		Player3:   seats[2],
		Player4:   seats[3],
		Player5:   seats[4],
		Player6:   seats[5],
		Player7:   seats[6],
		Player8:   seats[7],
		Player9:   seats[8],
		Card1:     board[0],
		Card2:     board[1],
		Card3:     board[2],
		Card4:     board[3],
		Card5:     board[4],
	}
}

// Blinds returns the small and big blind rows. The posting players are
// not checked against the seats; see BlindAnomalies.
func Blinds(h *entities.Hand) (small, big hand.Blind) {
	small = hand.Blind{
		Player: h.SmallBlind.Player.Name,
		Hand:   h.ID,
		Amount: h.SmallBlind.Amount,
		Kind:   hand.BlindSmall,
	}
	big = hand.Blind{
		Player: h.BigBlind.Player.Name,
		Hand:   h.ID,
		Amount: h.BigBlind.Amount,
		Kind:   hand.BlindBig,
	}
	return small, big
}

// HoleCards returns one row per seat with known hole cards, in seat order.
// Hole cards on an empty seat fail the whole call with a
// STRUCTURAL_VIOLATION error naming the hand and seat.
func HoleCards(h *entities.Hand) ([]hand.HoleCard, error) {
	var holes []hand.HoleCard
	for seat, cards := range h.PlayersCards {
		if cards == nil {
			continue
		}
		player, ok := h.Seat(seat)
		if !ok {
			return nil, types.NewStructuralViolation(h.ID, seat)
		}
		holes = append(holes, hand.HoleCard{
			Hand:   h.ID,
			Player: player.Name,
			Card1:  cards[0],
			Card2:  cards[1],
		})
	}
	return holes, nil
}

// Project runs every projection. It returns no records when any
// projection fails.
func Project(h *entities.Hand) (*hand.Records, error) {
	holes, err := HoleCards(h)
	if err != nil {
		return nil, err
	}
	small, big := Blinds(h)
	return &hand.Records{
		Hand:       Summary(h),
		Actions:    Actions(h),
		SmallBlind: small,
		BigBlind:   big,
		HoleCards:  holes,
	}, nil
}

// BlindAnomalies reports blind postings by players who hold no seat.
// These are tolerated: the hand still projects and stores.
func BlindAnomalies(h *entities.Hand) []error {
	var anomalies []error
	for _, b := range []struct {
		kind  string
		blind entities.Blind
	}{
		{hand.BlindSmall, h.SmallBlind},
		{hand.BlindBig, h.BigBlind},
	} {
		if _, ok := h.SeatOf(b.blind.Player.Name); ok {
			continue
		}
		err := types.NewHandError(types.ErrBlindSeatAnomaly,
			fmt.Sprintf("%s blind posted by %q who holds no seat", b.kind, b.blind.Player.Name))
		anomalies = append(anomalies, err.ForHand(h.ID))
	}
	return anomalies
}
