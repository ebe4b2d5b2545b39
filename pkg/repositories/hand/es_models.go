package hand

import (
	"time"
)

// ESHandSummary represents a hand document in Elasticsearch
type ESHandSummary struct {
	HandID       int64     `json:"hand_id"`
	PlayedAt     time.Time `json:"played_at"`
	TableName    string    `json:"table_name"`
	TableSize    int32     `json:"table_size"`
	RealMoney    bool      `json:"real_money"`
	Pot          float32   `json:"pot"`
	Winner       string    `json:"winner"`
	Players      []string  `json:"players"`
	Board        []string  `json:"board"`
	Actions      int       `json:"actions"`
	ShownPlayers []string  `json:"shown_players"` // players whose hole cards were recorded
}

// NewESHandSummary flattens stored records into a search document
func NewESHandSummary(records *Records) *ESHandSummary {
	h := records.Hand
	doc := &ESHandSummary{
		HandID:       h.ID,
		PlayedAt:     time.Unix(h.Time, 0).UTC(),
		TableName:    h.TableName,
		TableSize:    h.TableSize,
		RealMoney:    h.RealMoney,
		Pot:          h.Pot,
		Winner:       h.Winner,
		Players:      []string{},
		Board:        []string{},
		Actions:      len(records.Actions),
		ShownPlayers: []string{},
	}
	for _, name := range h.Players() {
		if name != "" {
			doc.Players = append(doc.Players, name)
		}
	}
	for _, card := range h.Cards() {
		if card != "" {
			doc.Board = append(doc.Board, card)
		}
	}
	for _, hc := range records.HoleCards {
		doc.ShownPlayers = append(doc.ShownPlayers, hc.Player)
	}
	return doc
}
