package models

// Pairing is one proposed match for the next round.
type Pairing struct {
	PlayerAID   int    `json:"player_a_id"`
	PlayerAName string `json:"player_a_name"`
	PlayerBID   int    `json:"player_b_id"`
	PlayerBName string `json:"player_b_name"`
	Table       int    `json:"table"`
	Rematch     bool   `json:"rematch,omitempty"`
}
