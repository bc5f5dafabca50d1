package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/repositories"
)

type ResetSummary struct {
	Matches           int64 `json:"matches"`
	ScoreboardEntries int64 `json:"scoreboard_entries"`
	Players           int64 `json:"players"`
	Tournaments       int64 `json:"tournaments"`
}

type AdminService interface {
	// Reset deletes every match, scoreboard entry, player and tournament in one
	// transaction.
	Reset(ctx context.Context) (*ResetSummary, error)
}

type adminService struct {
	gateway repositories.Gateway
	logger  *slog.Logger
}

func NewAdminService(gateway repositories.Gateway, logger *slog.Logger) AdminService {
	return &adminService{gateway: gateway, logger: logger}
}

func (s *adminService) Reset(ctx context.Context) (*ResetSummary, error) {
	summary := &ResetSummary{}
	err := s.gateway.RunInTx(ctx, func(tx repositories.Gateway) error {
		var err error
		if summary.Matches, err = tx.DeleteMatches(ctx); err != nil {
			return err
		}
		if summary.ScoreboardEntries, err = tx.DeleteScoreboard(ctx); err != nil {
			return err
		}
		if summary.Players, err = tx.DeletePlayers(ctx); err != nil {
			return err
		}
		summary.Tournaments, err = tx.DeleteTournaments(ctx)
		return err
	})
	if err != nil {
		err = mapRepositoryError(err)
		s.logger.Error("failed to reset records", slog.Any("error", err))
		return nil, err
	}

	s.logger.Warn("all tournament records deleted",
		slog.Int64("matches", summary.Matches),
		slog.Int64("scoreboard_entries", summary.ScoreboardEntries),
		slog.Int64("players", summary.Players),
		slog.Int64("tournaments", summary.Tournaments),
	)
	return summary, nil
}
