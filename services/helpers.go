package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

const maxNameLength = 100

// mapRepositoryError turns gateway sentinels into the errors callers of this
// package match on. Unknown errors pass through unchanged.
func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrScoreboardEntryNotFound):
		return ErrPlayerNotRegistered
	case errors.Is(err, repositories.ErrPlayerAlreadyEnrolled):
		return ErrPlayerAlreadyRegistered
	case errors.Is(err, repositories.ErrInvalidMatch):
		return fmt.Errorf("%w: %w", ErrValidationFailed, ErrSelfMatch)
	case errors.Is(err, repositories.ErrRecordsInUse):
		return fmt.Errorf("%w: %v", ErrResetConflict, err)
	case errors.Is(err, repositories.ErrConcurrentModification):
		return ErrConcurrentUpdate
	}
	return err
}

func normalizeName(name string, missing error) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: %w", ErrValidationFailed, missing)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", fmt.Errorf("%w: %w (max %d characters)", ErrValidationFailed, ErrNameTooLong, maxNameLength)
	}
	return name, nil
}

func validateIDs(ids ...int) error {
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: %w", ErrValidationFailed, ErrInvalidID)
		}
	}
	return nil
}

// loadStandings reads one snapshot of a tournament and ranks it.
func loadStandings(ctx context.Context, store repositories.ScoreboardStore, tournamentID int) ([]models.Standing, error) {
	snap, err := store.Snapshot(ctx, tournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return brackets.CalculateStandings(snap)
}
