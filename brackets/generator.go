package brackets

import (
	"context"
	"errors"

	"github.com/Dosada05/swiss-tournament/models"
)

var (
	ErrOddPool              = errors.New("pairing pool must contain an even number of players")
	ErrPlayerCountMismatch  = errors.New("registered player count does not match scoreboard snapshot")
	ErrInconsistentSnapshot = errors.New("tournament snapshot is inconsistent")
)

// Source is the storage capability the pairing engine consumes. Every read and the
// bye award of one NextRound call are expected to run against the same transaction.
type Source interface {
	Snapshot(ctx context.Context, tournamentID int) (*models.Snapshot, error)
	CountPlayers(ctx context.Context, tournamentID int) (int, error)
	RecordBye(ctx context.Context, tournamentID, playerID int) error
}

// Round is the engine's proposal for the next round of a tournament.
type Round struct {
	TournamentID int               `json:"tournament_id"`
	Number       int               `json:"number"`
	Standings    []models.Standing `json:"standings"`
	Bye          *models.Standing  `json:"bye,omitempty"`
	Pairings     []models.Pairing  `json:"pairings"`
}

// Rematches counts pairings that repeat an earlier match.
func (r *Round) Rematches() int {
	n := 0
	for _, p := range r.Pairings {
		if p.Rematch {
			n++
		}
	}
	return n
}
