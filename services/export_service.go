package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/storage"
)

type StandingsExport struct {
	TournamentID int       `json:"tournament_id"`
	Key          string    `json:"key"`
	URL          string    `json:"url"`
	Players      int       `json:"players"`
	ExportedAt   time.Time `json:"exported_at"`
}

type standingsDocument struct {
	Tournament  *models.Tournament `json:"tournament"`
	GeneratedAt time.Time          `json:"generated_at"`
	Standings   []models.Standing  `json:"standings"`
}

type ExportService interface {
	ExportStandings(ctx context.Context, tournamentID int) (*StandingsExport, error)
}

type exportService struct {
	gateway  repositories.Gateway
	uploader storage.FileUploader
	logger   *slog.Logger
	now      func() time.Time
}

// NewExportService builds the exporter. uploader may be nil, in which case every
// export fails with ErrExportUnavailable.
func NewExportService(gateway repositories.Gateway, uploader storage.FileUploader, logger *slog.Logger) ExportService {
	return &exportService{gateway: gateway, uploader: uploader, logger: logger, now: time.Now}
}

func standingsKey(tournamentID int) string {
	return fmt.Sprintf("standings/tournament_%d/%s.json", tournamentID, uuid.NewString())
}

func (s *exportService) ExportStandings(ctx context.Context, tournamentID int) (*StandingsExport, error) {
	if err := validateIDs(tournamentID); err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, ErrExportUnavailable
	}

	t, err := s.gateway.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	standings, err := loadStandings(ctx, s.gateway, tournamentID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	body, err := json.MarshalIndent(standingsDocument{Tournament: t, GeneratedAt: now, Standings: standings}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode standings: %w", err)
	}

	key := standingsKey(tournamentID)
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		s.logger.Error("failed to upload standings", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return nil, err
	}

	s.logger.Info("standings exported", slog.Int("tournament_id", tournamentID), slog.String("key", result.Key))
	return &StandingsExport{
		TournamentID: tournamentID,
		Key:          result.Key,
		URL:          result.Location,
		Players:      len(standings),
		ExportedAt:   now,
	}, nil
}
