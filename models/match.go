package models

import "time"

// MatchResult describes how a reported match ended from the scoreboard's point of view.
type MatchResult string

const (
	MatchResultWin  MatchResult = "win"
	MatchResultDraw MatchResult = "draw"
)

// Points awarded per outcome.
const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
	PointsBye  = 3
)

// Match is an immutable record of one completed pairing. A draw still fills
// both slots, but both players are scored as drawn.
type Match struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	WinnerID     int       `json:"winner_id" db:"winner_id"`
	LoserID      int       `json:"loser_id" db:"loser_id"`
	IsDraw       bool      `json:"is_draw" db:"is_draw"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (m Match) Result() MatchResult {
	if m.IsDraw {
		return MatchResultDraw
	}
	return MatchResultWin
}

// Involves reports whether playerID occupied either slot.
func (m Match) Involves(playerID int) bool {
	return m.WinnerID == playerID || m.LoserID == playerID
}

// Opponent returns the other slot's player id. ok is false when playerID did not play.
func (m Match) Opponent(playerID int) (int, bool) {
	switch playerID {
	case m.WinnerID:
		return m.LoserID, true
	case m.LoserID:
		return m.WinnerID, true
	}
	return 0, false
}

// PointsFor returns what the match is worth to playerID.
func (m Match) PointsFor(playerID int) int {
	switch {
	case !m.Involves(playerID):
		return 0
	case m.IsDraw:
		return PointsDraw
	case m.WinnerID == playerID:
		return PointsWin
	default:
		return PointsLoss
	}
}
