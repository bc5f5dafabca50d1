package brackets

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/swiss-tournament/models"
)

// FakeSource serves a fixed snapshot; each Func field overrides the default behaviour.
type FakeSource struct {
	snap *models.Snapshot
	byes []int

	SnapshotFunc     func(ctx context.Context, tournamentID int) (*models.Snapshot, error)
	CountPlayersFunc func(ctx context.Context, tournamentID int) (int, error)
	RecordByeFunc    func(ctx context.Context, tournamentID, playerID int) error

	trace []string
}

func (f *FakeSource) Snapshot(ctx context.Context, tournamentID int) (*models.Snapshot, error) {
	f.trace = append(f.trace, "Snapshot")
	if f.SnapshotFunc != nil {
		return f.SnapshotFunc(ctx, tournamentID)
	}
	return f.snap, nil
}

func (f *FakeSource) CountPlayers(ctx context.Context, tournamentID int) (int, error) {
	f.trace = append(f.trace, "CountPlayers")
	if f.CountPlayersFunc != nil {
		return f.CountPlayersFunc(ctx, tournamentID)
	}
	return len(f.snap.Entries), nil
}

func (f *FakeSource) RecordBye(ctx context.Context, tournamentID, playerID int) error {
	f.trace = append(f.trace, fmt.Sprintf("RecordBye(%d)", playerID))
	if f.RecordByeFunc != nil {
		return f.RecordByeFunc(ctx, tournamentID, playerID)
	}
	f.byes = append(f.byes, playerID)
	return nil
}

func players(names ...string) []models.ScoreboardEntry {
	entries := make([]models.ScoreboardEntry, len(names))
	for i, n := range names {
		entries[i] = entry(i+1, n, 0)
	}
	return entries
}

func TestNextRound_EvenFieldFirstRound(t *testing.T) {
	src := &FakeSource{snap: &models.Snapshot{TournamentID: 1, Entries: players("A", "B", "C", "D")}}

	round, err := NextRound(context.Background(), src, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, round.Number)
	assert.Nil(t, round.Bye)
	assert.Empty(t, src.byes)
	assert.Equal(t, []string{"Snapshot", "CountPlayers"}, src.trace)

	want := []models.Pairing{
		{PlayerAID: 1, PlayerAName: "A", PlayerBID: 2, PlayerBName: "B", Table: 1},
		{PlayerAID: 3, PlayerAName: "C", PlayerBID: 4, PlayerBName: "D", Table: 2},
	}
	if diff := cmp.Diff(want, round.Pairings); diff != "" {
		t.Errorf("pairings mismatch (-want +got):\n%s", diff)
	}
}

func TestNextRound_OddFieldAwardsBye(t *testing.T) {
	src := &FakeSource{snap: &models.Snapshot{TournamentID: 1, Entries: players("A", "B", "C", "D", "E")}}

	round, err := NextRound(context.Background(), src, 1)
	require.NoError(t, err)

	require.NotNil(t, round.Bye)
	assert.Equal(t, 5, round.Bye.PlayerID)
	assert.Equal(t, models.PointsBye, round.Bye.Score)
	assert.Equal(t, 1, round.Bye.Byes)
	assert.True(t, round.Bye.HasBye)
	assert.Equal(t, []int{5}, src.byes)

	want := []models.Pairing{
		{PlayerAID: 1, PlayerAName: "A", PlayerBID: 2, PlayerBName: "B", Table: 1},
		{PlayerAID: 3, PlayerAName: "C", PlayerBID: 4, PlayerBName: "D", Table: 2},
	}
	if diff := cmp.Diff(want, round.Pairings); diff != "" {
		t.Errorf("pairings mismatch (-want +got):\n%s", diff)
	}
	// standings are those read before the bye
	assert.Len(t, round.Standings, 5)
	assert.Equal(t, 0, round.Standings[4].Score)
}

func TestNextRound_ByeSkipsPlayersWhoHadOne(t *testing.T) {
	entries := players("A", "B", "C")
	entries[0].Byes = 1 // A: 3 points from the bye
	src := &FakeSource{snap: &models.Snapshot{
		TournamentID: 1,
		Entries:      entries,
		Matches:      []models.Match{win(1, 2, 3)},
	}}

	round, err := NextRound(context.Background(), src, 1)
	require.NoError(t, err)

	// B 3 (omw 0), A 3 (no omw), C 0: C has no bye yet.
	require.NotNil(t, round.Bye)
	assert.Equal(t, 3, round.Bye.PlayerID)
	assert.Equal(t, 2, round.Number)
	require.Len(t, round.Pairings, 1)
	assert.Equal(t, 2, round.Pairings[0].PlayerAID)
	assert.Equal(t, 1, round.Pairings[0].PlayerBID)
}

func TestNextRound_AvoidsRematch(t *testing.T) {
	src := &FakeSource{snap: &models.Snapshot{
		TournamentID: 1,
		Entries:      players("A", "B", "C", "D"),
		Matches:      []models.Match{win(1, 1, 2), win(2, 3, 4)},
	}}

	round, err := NextRound(context.Background(), src, 1)
	require.NoError(t, err)

	// A 3, C 3, B 0, D 0: A and C pair, then B and D.
	require.Len(t, round.Pairings, 2)
	assert.Equal(t, [2]int{1, 3}, [2]int{round.Pairings[0].PlayerAID, round.Pairings[0].PlayerBID})
	assert.Equal(t, [2]int{2, 4}, [2]int{round.Pairings[1].PlayerAID, round.Pairings[1].PlayerBID})
	assert.Zero(t, round.Rematches())
}

func TestNextRound_EmptyAndSinglePlayer(t *testing.T) {
	empty := &FakeSource{snap: &models.Snapshot{TournamentID: 1}}
	round, err := NextRound(context.Background(), empty, 1)
	require.NoError(t, err)
	assert.Empty(t, round.Pairings)
	assert.Nil(t, round.Bye)

	single := &FakeSource{snap: &models.Snapshot{TournamentID: 1, Entries: players("A")}}
	round, err = NextRound(context.Background(), single, 1)
	require.NoError(t, err)
	assert.Empty(t, round.Pairings)
	require.NotNil(t, round.Bye)
	assert.Equal(t, 1, round.Bye.PlayerID)
}

func TestNextRound_Errors(t *testing.T) {
	storageErr := errors.New("connection reset")

	tests := []struct {
		name    string
		src     *FakeSource
		wantErr error
	}{
		{
			name: "snapshot fails",
			src: &FakeSource{SnapshotFunc: func(context.Context, int) (*models.Snapshot, error) {
				return nil, storageErr
			}},
			wantErr: storageErr,
		},
		{
			name: "count disagrees with snapshot",
			src: &FakeSource{
				snap:             &models.Snapshot{TournamentID: 1, Entries: players("A", "B")},
				CountPlayersFunc: func(context.Context, int) (int, error) { return 3, nil },
			},
			wantErr: ErrPlayerCountMismatch,
		},
		{
			name: "bye cannot be recorded",
			src: &FakeSource{
				snap:          &models.Snapshot{TournamentID: 1, Entries: players("A", "B", "C")},
				RecordByeFunc: func(context.Context, int, int) error { return storageErr },
			},
			wantErr: storageErr,
		},
		{
			name: "match names unknown player",
			src: &FakeSource{snap: &models.Snapshot{
				TournamentID: 1,
				Entries:      players("A", "B"),
				Matches:      []models.Match{win(1, 1, 7)},
			}},
			wantErr: ErrInconsistentSnapshot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			round, err := NextRound(context.Background(), tt.src, 1)
			assert.Nil(t, round)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
