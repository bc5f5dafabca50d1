package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

type PlayerService interface {
	RegisterPlayer(ctx context.Context, tournamentID int, name string) (*models.Player, error)
	EnrollPlayer(ctx context.Context, tournamentID, playerID int) (*models.ScoreboardEntry, error)
	GetPlayer(ctx context.Context, id int) (*models.Player, error)
	CountPlayers(ctx context.Context, tournamentID int) (int, error)
	HasBye(ctx context.Context, tournamentID, playerID int) (bool, error)
}

type playerService struct {
	gateway repositories.Gateway
	logger  *slog.Logger
}

func NewPlayerService(gateway repositories.Gateway, logger *slog.Logger) PlayerService {
	return &playerService{gateway: gateway, logger: logger}
}

func (s *playerService) RegisterPlayer(ctx context.Context, tournamentID int, name string) (*models.Player, error) {
	if err := validateIDs(tournamentID); err != nil {
		return nil, err
	}
	name, err := normalizeName(name, ErrPlayerNameNeeded)
	if err != nil {
		return nil, err
	}

	p, err := s.gateway.RegisterPlayer(ctx, tournamentID, name)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	s.logger.Info("player registered",
		slog.Int("tournament_id", tournamentID),
		slog.Int("player_id", p.ID),
		slog.String("name", p.Name),
	)
	return p, nil
}

func (s *playerService) EnrollPlayer(ctx context.Context, tournamentID, playerID int) (*models.ScoreboardEntry, error) {
	if err := validateIDs(tournamentID, playerID); err != nil {
		return nil, err
	}

	entry, err := s.gateway.EnrollPlayer(ctx, tournamentID, playerID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	s.logger.Info("player enrolled", slog.Int("tournament_id", tournamentID), slog.Int("player_id", playerID))
	return entry, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	if err := validateIDs(id); err != nil {
		return nil, err
	}
	p, err := s.gateway.GetPlayer(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return p, nil
}

func (s *playerService) CountPlayers(ctx context.Context, tournamentID int) (int, error) {
	if err := validateIDs(tournamentID); err != nil {
		return 0, err
	}
	if _, err := s.gateway.GetTournament(ctx, tournamentID); err != nil {
		return 0, mapRepositoryError(err)
	}
	count, err := s.gateway.CountPlayers(ctx, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("failed to count players for tournament %d: %w", tournamentID, err)
	}
	return count, nil
}

func (s *playerService) HasBye(ctx context.Context, tournamentID, playerID int) (bool, error) {
	if err := validateIDs(tournamentID, playerID); err != nil {
		return false, err
	}
	has, err := s.gateway.HasBye(ctx, tournamentID, playerID)
	if err != nil {
		return false, mapRepositoryError(err)
	}
	return has, nil
}
