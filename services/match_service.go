package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// Notifier pushes tournament events to live subscribers.
type Notifier interface {
	BroadcastToRoom(roomID string, message interface{})
}

type ReportMatchInput struct {
	WinnerID int  `json:"winner_id"`
	LoserID  int  `json:"loser_id"`
	IsDraw   bool `json:"is_draw"`
}

type MatchService interface {
	ReportMatch(ctx context.Context, tournamentID int, input ReportMatchInput) (*models.Match, error)
	HasPriorMatch(ctx context.Context, tournamentID, playerA, playerB int) (bool, error)
	ListMatches(ctx context.Context, tournamentID int) ([]models.Match, error)
}

type matchService struct {
	gateway  repositories.Gateway
	notifier Notifier
	metrics  *Metrics
	logger   *slog.Logger
}

func NewMatchService(gateway repositories.Gateway, notifier Notifier, metrics *Metrics, logger *slog.Logger) MatchService {
	return &matchService{gateway: gateway, notifier: notifier, metrics: metrics, logger: logger}
}

func (s *matchService) ReportMatch(ctx context.Context, tournamentID int, input ReportMatchInput) (*models.Match, error) {
	if err := validateIDs(tournamentID, input.WinnerID, input.LoserID); err != nil {
		return nil, err
	}
	if input.WinnerID == input.LoserID {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrSelfMatch)
	}

	match, err := s.gateway.RecordMatchResult(ctx, tournamentID, input.WinnerID, input.LoserID, input.IsDraw)
	if err != nil {
		err = mapRepositoryError(err)
		s.logger.Warn("failed to report match",
			slog.Int("tournament_id", tournamentID),
			slog.Int("winner_id", input.WinnerID),
			slog.Int("loser_id", input.LoserID),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.metrics.observeMatch(match)
	s.logger.Info("match reported",
		slog.Int("tournament_id", tournamentID),
		slog.Int("match_id", match.ID),
		slog.String("result", string(match.Result())),
	)
	if s.notifier != nil {
		room := brackets.RoomForTournament(tournamentID)
		s.notifier.BroadcastToRoom(room, brackets.WebSocketMessage{
			Type:    brackets.EventMatchReported,
			Payload: match,
			RoomID:  room,
		})
	}
	return match, nil
}

func (s *matchService) HasPriorMatch(ctx context.Context, tournamentID, playerA, playerB int) (bool, error) {
	if err := validateIDs(tournamentID, playerA, playerB); err != nil {
		return false, err
	}
	if _, err := s.gateway.GetTournament(ctx, tournamentID); err != nil {
		return false, mapRepositoryError(err)
	}
	played, err := s.gateway.HasPriorMatch(ctx, tournamentID, playerA, playerB)
	if err != nil {
		return false, fmt.Errorf("failed to check prior match: %w", err)
	}
	return played, nil
}

func (s *matchService) ListMatches(ctx context.Context, tournamentID int) ([]models.Match, error) {
	if err := validateIDs(tournamentID); err != nil {
		return nil, err
	}
	if _, err := s.gateway.GetTournament(ctx, tournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}
	matches, err := s.gateway.ListMatches(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	return matches, nil
}
