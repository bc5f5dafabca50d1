package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

type postgresScoreboardRepository struct {
	exec SQLExecutor
}

func (r *postgresScoreboardRepository) GetScoreboardEntry(ctx context.Context, tournamentID, playerID int) (*models.ScoreboardEntry, error) {
	query := `
		SELECT s.tournament_id, s.player_id, p.name, s.score, s.matches, s.byes
		FROM scoreboard s
		JOIN players p ON p.id = s.player_id
		WHERE s.tournament_id = $1 AND s.player_id = $2`

	e := &models.ScoreboardEntry{}
	err := r.exec.QueryRowContext(ctx, query, tournamentID, playerID).Scan(
		&e.TournamentID, &e.PlayerID, &e.PlayerName, &e.Score, &e.Matches, &e.Byes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoreboardEntryNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *postgresScoreboardRepository) HasBye(ctx context.Context, tournamentID, playerID int) (bool, error) {
	var byes int
	err := r.exec.QueryRowContext(ctx,
		`SELECT byes FROM scoreboard WHERE tournament_id = $1 AND player_id = $2`,
		tournamentID, playerID,
	).Scan(&byes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrScoreboardEntryNotFound
		}
		return false, err
	}
	return byes > 0, nil
}

func (r *postgresScoreboardRepository) RecordBye(ctx context.Context, tournamentID, playerID int) error {
	query := `
		UPDATE scoreboard
		SET score = score + $3, byes = byes + 1
		WHERE tournament_id = $1 AND player_id = $2`

	result, err := r.exec.ExecContext(ctx, query, tournamentID, playerID, models.PointsBye)
	if err != nil {
		return fmt.Errorf("failed to record bye: %w", err)
	}
	return checkAffectedRows(result, ErrScoreboardEntryNotFound)
}

func (r *postgresScoreboardRepository) Snapshot(ctx context.Context, tournamentID int) (*models.Snapshot, error) {
	var exists bool
	if err := r.exec.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM tournaments WHERE id = $1)`, tournamentID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check tournament %d: %w", tournamentID, err)
	}
	if !exists {
		return nil, ErrTournamentNotFound
	}

	snap := &models.Snapshot{TournamentID: tournamentID}

	entriesQuery := `
		SELECT s.tournament_id, s.player_id, p.name, s.score, s.matches, s.byes
		FROM scoreboard s
		JOIN players p ON p.id = s.player_id
		WHERE s.tournament_id = $1
		ORDER BY s.enrolled_at, s.player_id
		FOR UPDATE OF s`
	rows, err := r.exec.QueryContext(ctx, entriesQuery, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to read scoreboard: %w", err)
	}
	defer rows.Close()

	snap.Entries = make([]models.ScoreboardEntry, 0)
	for rows.Next() {
		var e models.ScoreboardEntry
		if err := rows.Scan(&e.TournamentID, &e.PlayerID, &e.PlayerName, &e.Score, &e.Matches, &e.Byes); err != nil {
			return nil, fmt.Errorf("failed to scan scoreboard row: %w", err)
		}
		snap.Entries = append(snap.Entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scoreboard rows: %w", err)
	}

	snap.Matches, err = listMatches(ctx, r.exec, tournamentID)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *postgresScoreboardRepository) DeleteScoreboard(ctx context.Context) (int64, error) {
	n, err := affectedRows(r.exec.ExecContext(ctx, `DELETE FROM scoreboard`))
	if err != nil {
		return 0, handleDeleteError(err)
	}
	return n, nil
}
