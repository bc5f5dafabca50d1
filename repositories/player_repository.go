package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

type postgresPlayerRepository struct {
	exec SQLExecutor
}

func (r *postgresPlayerRepository) RegisterPlayer(ctx context.Context, tournamentID int, name string) (*models.Player, error) {
	// one statement so a failed enrollment leaves no orphan player behind
	query := `
		WITH p AS (
			INSERT INTO players (name)
			VALUES ($2)
			RETURNING id, name, created_at
		), s AS (
			INSERT INTO scoreboard (tournament_id, player_id)
			SELECT $1, id FROM p
		)
		SELECT id, name, created_at FROM p`

	p := &models.Player{}
	err := r.exec.QueryRowContext(ctx, query, tournamentID, name).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		return nil, r.handleEnrollError(err)
	}
	return p, nil
}

func (r *postgresPlayerRepository) EnrollPlayer(ctx context.Context, tournamentID, playerID int) (*models.ScoreboardEntry, error) {
	query := `
		WITH s AS (
			INSERT INTO scoreboard (tournament_id, player_id)
			VALUES ($1, $2)
			RETURNING tournament_id, player_id, score, matches, byes
		)
		SELECT s.tournament_id, s.player_id, p.name, s.score, s.matches, s.byes
		FROM s
		JOIN players p ON p.id = s.player_id`

	e := &models.ScoreboardEntry{}
	err := r.exec.QueryRowContext(ctx, query, tournamentID, playerID).Scan(
		&e.TournamentID, &e.PlayerID, &e.PlayerName, &e.Score, &e.Matches, &e.Byes,
	)
	if err != nil {
		return nil, r.handleEnrollError(err)
	}
	return e, nil
}

func (r *postgresPlayerRepository) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT id, name, created_at
		FROM players
		WHERE id = $1`

	p := &models.Player{}
	err := r.exec.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPlayerRepository) CountPlayers(ctx context.Context, tournamentID int) (int, error) {
	var count int
	err := r.exec.QueryRowContext(ctx, `SELECT COUNT(*) FROM scoreboard WHERE tournament_id = $1`, tournamentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count players for tournament %d: %w", tournamentID, err)
	}
	return count, nil
}

func (r *postgresPlayerRepository) DeletePlayers(ctx context.Context) (int64, error) {
	n, err := affectedRows(r.exec.ExecContext(ctx, `DELETE FROM players`))
	if err != nil {
		return 0, handleDeleteError(err)
	}
	return n, nil
}

func (r *postgresPlayerRepository) handleEnrollError(err error) error {
	pqErr, ok := asPQError(err)
	if !ok {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		if pqErr.Constraint == "scoreboard_pkey" {
			return ErrPlayerAlreadyEnrolled
		}
	case pqForeignKeyViolation:
		switch pqErr.Constraint {
		case "scoreboard_tournament_id_fkey":
			return ErrTournamentNotFound
		case "scoreboard_player_id_fkey":
			return ErrPlayerNotFound
		}
	}
	return err
}
