package services

import "errors"

var (
	ErrTournamentNotFound      = errors.New("tournament not found")
	ErrPlayerNotFound          = errors.New("player not found")
	ErrPlayerNotRegistered     = errors.New("player is not registered in this tournament")
	ErrPlayerAlreadyRegistered = errors.New("player is already registered in this tournament")

	ErrValidationFailed     = errors.New("validation failed")
	ErrTournamentNameNeeded = errors.New("tournament name is required")
	ErrPlayerNameNeeded     = errors.New("player name is required")
	ErrNameTooLong          = errors.New("name is too long")
	ErrInvalidID            = errors.New("identifiers must be positive")
	ErrSelfMatch            = errors.New("a player cannot play against themselves")

	ErrResetConflict     = errors.New("records could not be reset in reference order")
	ErrConcurrentUpdate  = errors.New("tournament changed while the request was processed, retry")
	ErrExportUnavailable = errors.New("standings export is not configured")
)
