package repositories

import (
	"context"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

type postgresMatchRepository struct {
	exec SQLExecutor
}

func (r *postgresMatchRepository) RecordMatchResult(ctx context.Context, tournamentID, winnerID, loserID int, isDraw bool) (*models.Match, error) {
	if winnerID == loserID {
		return nil, ErrInvalidMatch
	}
	winnerPts, loserPts := matchPoints(isDraw)

	query := `
		WITH m AS (
			INSERT INTO matches (tournament_id, winner_id, loser_id, is_draw)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		), w AS (
			UPDATE scoreboard SET score = score + $5, matches = matches + 1
			WHERE tournament_id = $1 AND player_id = $2
		), l AS (
			UPDATE scoreboard SET score = score + $6, matches = matches + 1
			WHERE tournament_id = $1 AND player_id = $3
		)
		SELECT id, created_at FROM m`

	m := &models.Match{TournamentID: tournamentID, WinnerID: winnerID, LoserID: loserID, IsDraw: isDraw}
	err := r.exec.QueryRowContext(ctx, query, tournamentID, winnerID, loserID, isDraw, winnerPts, loserPts).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, r.handleMatchError(err)
	}
	return m, nil
}

func (r *postgresMatchRepository) HasPriorMatch(ctx context.Context, tournamentID, playerA, playerB int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE tournament_id = $1
			  AND ((winner_id = $2 AND loser_id = $3) OR (winner_id = $3 AND loser_id = $2))
		)`

	var played bool
	if err := r.exec.QueryRowContext(ctx, query, tournamentID, playerA, playerB).Scan(&played); err != nil {
		return false, fmt.Errorf("failed to check prior match: %w", err)
	}
	return played, nil
}

func (r *postgresMatchRepository) ListMatches(ctx context.Context, tournamentID int) ([]models.Match, error) {
	return listMatches(ctx, r.exec, tournamentID)
}

func (r *postgresMatchRepository) DeleteMatches(ctx context.Context) (int64, error) {
	return affectedRows(r.exec.ExecContext(ctx, `DELETE FROM matches`))
}

func listMatches(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Match, error) {
	query := `
		SELECT id, tournament_id, winner_id, loser_id, is_draw, created_at
		FROM matches
		WHERE tournament_id = $1
		ORDER BY id`

	rows, err := exec.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.ID, &m.TournamentID, &m.WinnerID, &m.LoserID, &m.IsDraw, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	pqErr, ok := asPQError(err)
	if !ok {
		return err
	}
	switch pqErr.Code {
	case pqForeignKeyViolation:
		switch pqErr.Constraint {
		case "matches_winner_fkey", "matches_loser_fkey":
			return ErrScoreboardEntryNotFound
		}
	case pqCheckViolation:
		if pqErr.Constraint == "matches_distinct_players" {
			return ErrInvalidMatch
		}
	}
	return err
}
