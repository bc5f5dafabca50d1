package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// TournamentOverview is everything a dashboard needs about one tournament.
type TournamentOverview struct {
	Tournament  *models.Tournament `json:"tournament"`
	PlayerCount int                `json:"player_count"`
	Standings   []models.Standing  `json:"standings"`
	Matches     []models.Match     `json:"matches"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, name string) (*models.Tournament, error)
	GetTournament(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	Standings(ctx context.Context, tournamentID int) ([]models.Standing, error)
	Overview(ctx context.Context, tournamentID int) (*TournamentOverview, error)
}

type tournamentService struct {
	gateway repositories.Gateway
	logger  *slog.Logger
}

func NewTournamentService(gateway repositories.Gateway, logger *slog.Logger) TournamentService {
	return &tournamentService{gateway: gateway, logger: logger}
}

func (s *tournamentService) CreateTournament(ctx context.Context, name string) (*models.Tournament, error) {
	name, err := normalizeName(name, ErrTournamentNameNeeded)
	if err != nil {
		return nil, err
	}

	t, err := s.gateway.CreateTournament(ctx, name)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	s.logger.Info("tournament created", slog.Int("tournament_id", t.ID), slog.String("name", t.Name))
	return t, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id int) (*models.Tournament, error) {
	if err := validateIDs(id); err != nil {
		return nil, err
	}
	t, err := s.gateway.GetTournament(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return t, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.gateway.ListTournaments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) Standings(ctx context.Context, tournamentID int) ([]models.Standing, error) {
	if err := validateIDs(tournamentID); err != nil {
		return nil, err
	}
	return loadStandings(ctx, s.gateway, tournamentID)
}

// Overview loads the tournament, its standings, matches and headcount in parallel.
// The parts are separate reads and may straddle a concurrent result report.
func (s *tournamentService) Overview(ctx context.Context, tournamentID int) (*TournamentOverview, error) {
	if err := validateIDs(tournamentID); err != nil {
		return nil, err
	}

	overview := &TournamentOverview{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := s.gateway.GetTournament(gCtx, tournamentID)
		if err != nil {
			return mapRepositoryError(err)
		}
		overview.Tournament = t
		return nil
	})

	g.Go(func() error {
		standings, err := loadStandings(gCtx, s.gateway, tournamentID)
		if err != nil {
			return err
		}
		overview.Standings = standings
		return nil
	})

	g.Go(func() error {
		matches, err := s.gateway.ListMatches(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
		}
		overview.Matches = matches
		return nil
	})

	g.Go(func() error {
		count, err := s.gateway.CountPlayers(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to count players for tournament %d: %w", tournamentID, err)
		}
		overview.PlayerCount = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}
