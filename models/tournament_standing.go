package models

// ScoreboardEntry is the persisted per-tournament record of a registered player.
type ScoreboardEntry struct {
	TournamentID int    `json:"tournament_id" db:"tournament_id"`
	PlayerID     int    `json:"player_id" db:"player_id"`
	PlayerName   string `json:"player_name" db:"-"`
	Score        int    `json:"score" db:"score"`
	Matches      int    `json:"matches" db:"matches"`
	Byes         int    `json:"byes" db:"byes"`
}

func (e ScoreboardEntry) HasBye() bool {
	return e.Byes > 0
}

// Standing is a derived, never persisted, ranking row.
// OMW is nil for players who have not played a match yet.
type Standing struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Matches  int    `json:"matches"`
	Byes     int    `json:"byes"`
	HasBye   bool   `json:"has_bye"`
	OMW      *int   `json:"omw"`
}

// Snapshot is one consistent read of everything the pairing engine needs for a tournament.
type Snapshot struct {
	TournamentID int               `json:"tournament_id"`
	Entries      []ScoreboardEntry `json:"entries"`
	Matches      []Match           `json:"matches"`
}
