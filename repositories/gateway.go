package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/swiss-tournament/models"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

var (
	ErrTournamentNotFound      = errors.New("tournament not found")
	ErrPlayerNotFound          = errors.New("player not found")
	ErrScoreboardEntryNotFound = errors.New("player is not registered in tournament")
	ErrPlayerAlreadyEnrolled   = errors.New("player already registered in tournament")
	ErrInvalidMatch            = errors.New("match must name two different players")
	ErrRecordsInUse            = errors.New("records are still referenced by other records")
	ErrConcurrentModification  = errors.New("tournament was modified concurrently")
)

type TournamentStore interface {
	CreateTournament(ctx context.Context, name string) (*models.Tournament, error)
	GetTournament(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	DeleteTournaments(ctx context.Context) (int64, error)
}

type PlayerStore interface {
	// RegisterPlayer creates a new player and enrolls it in the tournament.
	RegisterPlayer(ctx context.Context, tournamentID int, name string) (*models.Player, error)
	// EnrollPlayer adds an existing player to another tournament.
	EnrollPlayer(ctx context.Context, tournamentID, playerID int) (*models.ScoreboardEntry, error)
	GetPlayer(ctx context.Context, id int) (*models.Player, error)
	CountPlayers(ctx context.Context, tournamentID int) (int, error)
	DeletePlayers(ctx context.Context) (int64, error)
}

type ScoreboardStore interface {
	GetScoreboardEntry(ctx context.Context, tournamentID, playerID int) (*models.ScoreboardEntry, error)
	HasBye(ctx context.Context, tournamentID, playerID int) (bool, error)
	// RecordBye credits a bye: +3 score and +1 bye count.
	RecordBye(ctx context.Context, tournamentID, playerID int) error
	// Snapshot reads every scoreboard entry (in enrollment order) and every match of
	// a tournament. Inside RunInTx the tournament's scoreboard rows stay locked until
	// the transaction ends.
	Snapshot(ctx context.Context, tournamentID int) (*models.Snapshot, error)
	DeleteScoreboard(ctx context.Context) (int64, error)
}

type MatchStore interface {
	// RecordMatchResult appends a match and updates both scoreboard entries:
	// win +3/+0, draw +1/+1, matches +1 each.
	RecordMatchResult(ctx context.Context, tournamentID, winnerID, loserID int, isDraw bool) (*models.Match, error)
	HasPriorMatch(ctx context.Context, tournamentID, playerA, playerB int) (bool, error)
	ListMatches(ctx context.Context, tournamentID int) ([]models.Match, error)
	DeleteMatches(ctx context.Context) (int64, error)
}

// Gateway is the storage boundary of the pairing service.
type Gateway interface {
	TournamentStore
	PlayerStore
	ScoreboardStore
	MatchStore

	// RunInTx runs fn against a gateway bound to one transaction. fn's error rolls
	// the transaction back. Calling RunInTx on a transaction-bound gateway runs fn
	// in the same transaction.
	RunInTx(ctx context.Context, fn func(Gateway) error) error
}

func matchPoints(isDraw bool) (winner, loser int) {
	if isDraw {
		return models.PointsDraw, models.PointsDraw
	}
	return models.PointsWin, models.PointsLoss
}
