package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

// NextRound produces the pairings for a tournament's next round from the current
// state of src. On an odd headcount the bye is recorded through src before the
// pairings are computed; the round's matches themselves are not persisted.
func NextRound(ctx context.Context, src Source, tournamentID int) (*Round, error) {
	snap, err := src.Snapshot(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot for tournament %d: %w", tournamentID, err)
	}

	standings, err := CalculateStandings(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate standings for tournament %d: %w", tournamentID, err)
	}

	count, err := src.CountPlayers(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count players for tournament %d: %w", tournamentID, err)
	}
	if count != len(standings) {
		return nil, fmt.Errorf("%w: tournament %d has %d registered players, snapshot has %d",
			ErrPlayerCountMismatch, tournamentID, count, len(standings))
	}

	round := &Round{
		TournamentID: tournamentID,
		Number:       nextRoundNumber(standings),
		Standings:    standings,
	}

	pool := standings
	if count%2 != 0 {
		idx, _ := SelectBye(standings)
		bye := standings[idx]
		if err := src.RecordBye(ctx, tournamentID, bye.PlayerID); err != nil {
			return nil, fmt.Errorf("failed to record bye for player %d in tournament %d: %w", bye.PlayerID, tournamentID, err)
		}
		bye.Score += models.PointsBye
		bye.Byes++
		bye.HasBye = true
		round.Bye = &bye

		pool = make([]models.Standing, 0, len(standings)-1)
		pool = append(pool, standings[:idx]...)
		pool = append(pool, standings[idx+1:]...)
	}

	round.Pairings, err = PairPlayers(pool, NewHistory(snap.Matches))
	if err != nil {
		return nil, fmt.Errorf("failed to pair tournament %d: %w", tournamentID, err)
	}
	return round, nil
}

// nextRoundNumber treats every match or bye as one completed round for that player.
func nextRoundNumber(standings []models.Standing) int {
	played := 0
	for _, s := range standings {
		if n := s.Matches + s.Byes; n > played {
			played = n
		}
	}
	return played + 1
}
