package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FakeNotifier records every broadcast.
type FakeNotifier struct {
	mu       sync.Mutex
	messages []brackets.WebSocketMessage
	rooms    []string
}

func (f *FakeNotifier) BroadcastToRoom(roomID string, message interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms = append(f.rooms, roomID)
	if msg, ok := message.(brackets.WebSocketMessage); ok {
		f.messages = append(f.messages, msg)
	}
}

func (f *FakeNotifier) Messages() []brackets.WebSocketMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]brackets.WebSocketMessage(nil), f.messages...)
}

type fixture struct {
	gateway  *repositories.MemoryGateway
	notifier *FakeNotifier
	metrics  *Metrics

	tournaments TournamentService
	players     PlayerService
	matches     MatchService
	pairing     PairingService
	admin       AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gw := repositories.NewMemoryGateway()
	notifier := &FakeNotifier{}
	metrics := NewMetrics(prometheus.NewRegistry())
	logger := testLogger()

	return &fixture{
		gateway:     gw,
		notifier:    notifier,
		metrics:     metrics,
		tournaments: NewTournamentService(gw, logger),
		players:     NewPlayerService(gw, logger),
		matches:     NewMatchService(gw, notifier, metrics, logger),
		pairing:     NewPairingService(gw, notifier, metrics, logger),
		admin:       NewAdminService(gw, logger),
	}
}

// seed creates a tournament with the named players and returns their ids in order.
func (f *fixture) seed(t *testing.T, names ...string) (int, []int) {
	t.Helper()
	ctx := context.Background()

	tour, err := f.tournaments.CreateTournament(ctx, "Club Night")
	require.NoError(t, err)

	ids := make([]int, len(names))
	for i, name := range names {
		p, err := f.players.RegisterPlayer(ctx, tour.ID, name)
		require.NoError(t, err)
		ids[i] = p.ID
	}
	return tour.ID, ids
}

func (f *fixture) report(t *testing.T, tournamentID, winner, loser int, draw bool) *models.Match {
	t.Helper()
	m, err := f.matches.ReportMatch(context.Background(), tournamentID, ReportMatchInput{WinnerID: winner, LoserID: loser, IsDraw: draw})
	require.NoError(t, err)
	return m
}
