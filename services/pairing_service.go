package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/repositories"
)

type PairingService interface {
	// NextRound computes the next round's pairings, recording a bye when the
	// headcount is odd. Generated pairings are not stored as matches.
	NextRound(ctx context.Context, tournamentID int) (*brackets.Round, error)
}

type pairingService struct {
	gateway  repositories.Gateway
	notifier Notifier
	metrics  *Metrics
	logger   *slog.Logger
}

func NewPairingService(gateway repositories.Gateway, notifier Notifier, metrics *Metrics, logger *slog.Logger) PairingService {
	return &pairingService{gateway: gateway, notifier: notifier, metrics: metrics, logger: logger}
}

func (s *pairingService) NextRound(ctx context.Context, tournamentID int) (*brackets.Round, error) {
	if err := validateIDs(tournamentID); err != nil {
		return nil, err
	}

	start := time.Now()
	var round *brackets.Round
	err := s.gateway.RunInTx(ctx, func(tx repositories.Gateway) error {
		r, err := brackets.NextRound(ctx, tx, tournamentID)
		if err != nil {
			return err
		}
		round = r
		return nil
	})
	if err != nil {
		err = mapRepositoryError(err)
		s.logger.Error("failed to generate round", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return nil, err
	}
	s.metrics.observeRound(round, time.Since(start))

	attrs := []any{
		slog.Int("tournament_id", tournamentID),
		slog.Int("round", round.Number),
		slog.Int("pairings", len(round.Pairings)),
		slog.Int("rematches", round.Rematches()),
	}
	if round.Bye != nil {
		attrs = append(attrs, slog.Int("bye_player_id", round.Bye.PlayerID))
	}
	s.logger.Info("round generated", attrs...)

	if s.notifier != nil {
		room := brackets.RoomForTournament(tournamentID)
		s.notifier.BroadcastToRoom(room, brackets.WebSocketMessage{
			Type:    brackets.EventPairingsGenerated,
			Payload: round,
			RoomID:  room,
		})
	}
	return round, nil
}
