package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

type postgresTournamentRepository struct {
	exec SQLExecutor
}

func (r *postgresTournamentRepository) CreateTournament(ctx context.Context, name string) (*models.Tournament, error) {
	query := `
		INSERT INTO tournaments (name)
		VALUES ($1)
		RETURNING id, name, created_at`

	t := &models.Tournament{}
	if err := r.exec.QueryRowContext(ctx, query, name).Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) GetTournament(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, name, created_at
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	err := r.exec.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	query := `
		SELECT id, name, created_at
		FROM tournaments
		ORDER BY id`

	rows, err := r.exec.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament rows: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) DeleteTournaments(ctx context.Context) (int64, error) {
	n, err := affectedRows(r.exec.ExecContext(ctx, `DELETE FROM tournaments`))
	if err != nil {
		return 0, handleDeleteError(err)
	}
	return n, nil
}
