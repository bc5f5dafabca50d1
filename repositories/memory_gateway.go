package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
)

type memoryState struct {
	nextTournamentID int
	nextPlayerID     int
	nextMatchID      int

	tournaments []models.Tournament
	players     map[int]models.Player
	scoreboard  map[int][]models.ScoreboardEntry // by tournament, enrollment order
	matches     []models.Match
}

func (s *memoryState) clone() *memoryState {
	c := &memoryState{
		nextTournamentID: s.nextTournamentID,
		nextPlayerID:     s.nextPlayerID,
		nextMatchID:      s.nextMatchID,
		tournaments:      append([]models.Tournament(nil), s.tournaments...),
		players:          make(map[int]models.Player, len(s.players)),
		scoreboard:       make(map[int][]models.ScoreboardEntry, len(s.scoreboard)),
		matches:          append([]models.Match(nil), s.matches...),
	}
	for id, p := range s.players {
		c.players[id] = p
	}
	for id, entries := range s.scoreboard {
		c.scoreboard[id] = append([]models.ScoreboardEntry(nil), entries...)
	}
	return c
}

type memoryStore struct {
	mu    sync.Mutex
	state *memoryState
	now   func() time.Time
}

// MemoryGateway keeps everything in process memory. Values are copied in and
// out, so callers never share state with the store. A transaction holds the
// store's lock for its whole callback and restores the prior state on error.
type MemoryGateway struct {
	store *memoryStore
	inTx  bool
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		store: &memoryStore{
			state: &memoryState{
				players:    make(map[int]models.Player),
				scoreboard: make(map[int][]models.ScoreboardEntry),
			},
			now: time.Now,
		},
	}
}

func (g *MemoryGateway) lock() func() {
	if g.inTx {
		return func() {}
	}
	g.store.mu.Lock()
	return g.store.mu.Unlock
}

func (g *MemoryGateway) RunInTx(ctx context.Context, fn func(Gateway) error) error {
	if g.inTx {
		return fn(g)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	g.store.mu.Lock()
	defer g.store.mu.Unlock()

	saved := g.store.state.clone()
	committed := false
	defer func() {
		if !committed {
			g.store.state = saved
		}
	}()

	if err := fn(&MemoryGateway{store: g.store, inTx: true}); err != nil {
		return err
	}
	committed = true
	return nil
}

func (g *MemoryGateway) CreateTournament(_ context.Context, name string) (*models.Tournament, error) {
	defer g.lock()()
	s := g.store.state

	s.nextTournamentID++
	t := models.Tournament{ID: s.nextTournamentID, Name: name, CreatedAt: g.store.now()}
	s.tournaments = append(s.tournaments, t)
	return &t, nil
}

func (g *MemoryGateway) GetTournament(_ context.Context, id int) (*models.Tournament, error) {
	defer g.lock()()

	t, ok := g.tournament(id)
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return &t, nil
}

func (g *MemoryGateway) tournament(id int) (models.Tournament, bool) {
	for _, t := range g.store.state.tournaments {
		if t.ID == id {
			return t, true
		}
	}
	return models.Tournament{}, false
}

func (g *MemoryGateway) ListTournaments(_ context.Context) ([]models.Tournament, error) {
	defer g.lock()()
	return append(make([]models.Tournament, 0, len(g.store.state.tournaments)), g.store.state.tournaments...), nil
}

func (g *MemoryGateway) DeleteTournaments(_ context.Context) (int64, error) {
	defer g.lock()()
	s := g.store.state

	for _, entries := range s.scoreboard {
		if len(entries) > 0 {
			return 0, ErrRecordsInUse
		}
	}
	n := int64(len(s.tournaments))
	s.tournaments = nil
	return n, nil
}

func (g *MemoryGateway) RegisterPlayer(_ context.Context, tournamentID int, name string) (*models.Player, error) {
	defer g.lock()()
	s := g.store.state

	if _, ok := g.tournament(tournamentID); !ok {
		return nil, ErrTournamentNotFound
	}
	s.nextPlayerID++
	p := models.Player{ID: s.nextPlayerID, Name: name, CreatedAt: g.store.now()}
	s.players[p.ID] = p
	s.scoreboard[tournamentID] = append(s.scoreboard[tournamentID], models.ScoreboardEntry{
		TournamentID: tournamentID,
		PlayerID:     p.ID,
		PlayerName:   p.Name,
	})
	return &p, nil
}

func (g *MemoryGateway) EnrollPlayer(_ context.Context, tournamentID, playerID int) (*models.ScoreboardEntry, error) {
	defer g.lock()()
	s := g.store.state

	if _, ok := g.tournament(tournamentID); !ok {
		return nil, ErrTournamentNotFound
	}
	p, ok := s.players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	if _, ok := g.entryIndex(tournamentID, playerID); ok {
		return nil, ErrPlayerAlreadyEnrolled
	}
	e := models.ScoreboardEntry{TournamentID: tournamentID, PlayerID: playerID, PlayerName: p.Name}
	s.scoreboard[tournamentID] = append(s.scoreboard[tournamentID], e)
	return &e, nil
}

func (g *MemoryGateway) GetPlayer(_ context.Context, id int) (*models.Player, error) {
	defer g.lock()()

	p, ok := g.store.state.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return &p, nil
}

func (g *MemoryGateway) CountPlayers(_ context.Context, tournamentID int) (int, error) {
	defer g.lock()()
	return len(g.store.state.scoreboard[tournamentID]), nil
}

func (g *MemoryGateway) DeletePlayers(_ context.Context) (int64, error) {
	defer g.lock()()
	s := g.store.state

	for _, entries := range s.scoreboard {
		if len(entries) > 0 {
			return 0, ErrRecordsInUse
		}
	}
	n := int64(len(s.players))
	s.players = make(map[int]models.Player)
	return n, nil
}

func (g *MemoryGateway) entryIndex(tournamentID, playerID int) (int, bool) {
	for i, e := range g.store.state.scoreboard[tournamentID] {
		if e.PlayerID == playerID {
			return i, true
		}
	}
	return -1, false
}

func (g *MemoryGateway) GetScoreboardEntry(_ context.Context, tournamentID, playerID int) (*models.ScoreboardEntry, error) {
	defer g.lock()()

	i, ok := g.entryIndex(tournamentID, playerID)
	if !ok {
		return nil, ErrScoreboardEntryNotFound
	}
	e := g.store.state.scoreboard[tournamentID][i]
	return &e, nil
}

func (g *MemoryGateway) HasBye(_ context.Context, tournamentID, playerID int) (bool, error) {
	defer g.lock()()

	i, ok := g.entryIndex(tournamentID, playerID)
	if !ok {
		return false, ErrScoreboardEntryNotFound
	}
	return g.store.state.scoreboard[tournamentID][i].HasBye(), nil
}

func (g *MemoryGateway) RecordBye(_ context.Context, tournamentID, playerID int) error {
	defer g.lock()()

	i, ok := g.entryIndex(tournamentID, playerID)
	if !ok {
		return ErrScoreboardEntryNotFound
	}
	e := &g.store.state.scoreboard[tournamentID][i]
	e.Score += models.PointsBye
	e.Byes++
	return nil
}

func (g *MemoryGateway) Snapshot(_ context.Context, tournamentID int) (*models.Snapshot, error) {
	defer g.lock()()
	s := g.store.state

	if _, ok := g.tournament(tournamentID); !ok {
		return nil, ErrTournamentNotFound
	}
	snap := &models.Snapshot{
		TournamentID: tournamentID,
		Entries:      append(make([]models.ScoreboardEntry, 0, len(s.scoreboard[tournamentID])), s.scoreboard[tournamentID]...),
		Matches:      g.matchesOf(tournamentID),
	}
	return snap, nil
}

func (g *MemoryGateway) DeleteScoreboard(_ context.Context) (int64, error) {
	defer g.lock()()
	s := g.store.state

	if len(s.matches) > 0 {
		return 0, ErrRecordsInUse
	}
	var n int64
	for _, entries := range s.scoreboard {
		n += int64(len(entries))
	}
	s.scoreboard = make(map[int][]models.ScoreboardEntry)
	return n, nil
}

func (g *MemoryGateway) RecordMatchResult(_ context.Context, tournamentID, winnerID, loserID int, isDraw bool) (*models.Match, error) {
	defer g.lock()()
	s := g.store.state

	if winnerID == loserID {
		return nil, ErrInvalidMatch
	}
	wi, okW := g.entryIndex(tournamentID, winnerID)
	li, okL := g.entryIndex(tournamentID, loserID)
	if !okW || !okL {
		return nil, ErrScoreboardEntryNotFound
	}

	winnerPts, loserPts := matchPoints(isDraw)
	entries := s.scoreboard[tournamentID]
	entries[wi].Score += winnerPts
	entries[wi].Matches++
	entries[li].Score += loserPts
	entries[li].Matches++

	s.nextMatchID++
	m := models.Match{
		ID:           s.nextMatchID,
		TournamentID: tournamentID,
		WinnerID:     winnerID,
		LoserID:      loserID,
		IsDraw:       isDraw,
		CreatedAt:    g.store.now(),
	}
	s.matches = append(s.matches, m)
	return &m, nil
}

func (g *MemoryGateway) HasPriorMatch(_ context.Context, tournamentID, playerA, playerB int) (bool, error) {
	defer g.lock()()

	for _, m := range g.store.state.matches {
		if m.TournamentID != tournamentID {
			continue
		}
		if (m.WinnerID == playerA && m.LoserID == playerB) || (m.WinnerID == playerB && m.LoserID == playerA) {
			return true, nil
		}
	}
	return false, nil
}

func (g *MemoryGateway) ListMatches(_ context.Context, tournamentID int) ([]models.Match, error) {
	defer g.lock()()
	return g.matchesOf(tournamentID), nil
}

func (g *MemoryGateway) matchesOf(tournamentID int) []models.Match {
	matches := make([]models.Match, 0)
	for _, m := range g.store.state.matches {
		if m.TournamentID == tournamentID {
			matches = append(matches, m)
		}
	}
	return matches
}

func (g *MemoryGateway) DeleteMatches(_ context.Context) (int64, error) {
	defer g.lock()()
	s := g.store.state

	n := int64(len(s.matches))
	s.matches = nil
	return n, nil
}
