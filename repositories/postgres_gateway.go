package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type postgresGateway struct {
	*postgresTournamentRepository
	*postgresPlayerRepository
	*postgresScoreboardRepository
	*postgresMatchRepository

	db *sql.DB // nil when bound to a transaction
}

func NewPostgresGateway(db *sql.DB) Gateway {
	return newPostgresGateway(db, db)
}

func newPostgresGateway(db *sql.DB, exec SQLExecutor) *postgresGateway {
	return &postgresGateway{
		postgresTournamentRepository: &postgresTournamentRepository{exec: exec},
		postgresPlayerRepository:     &postgresPlayerRepository{exec: exec},
		postgresScoreboardRepository: &postgresScoreboardRepository{exec: exec},
		postgresMatchRepository:      &postgresMatchRepository{exec: exec},
		db:                           db,
	}
}

func (g *postgresGateway) RunInTx(ctx context.Context, fn func(Gateway) error) (err error) {
	if g.db == nil {
		return fn(g)
	}

	tx, err := g.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			if commitErr := tx.Commit(); commitErr != nil {
				err = handleTxError(fmt.Errorf("failed to commit transaction: %w", commitErr))
			}
		}
	}()

	err = handleTxError(fn(newPostgresGateway(nil, tx)))
	return err
}
