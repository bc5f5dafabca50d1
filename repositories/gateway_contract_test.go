package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/swiss-tournament/models"
)

// testGatewayContract runs the behaviour every Gateway implementation shares.
// newGateway must return a gateway over empty storage.
func testGatewayContract(t *testing.T, newGateway func(t *testing.T) Gateway) {
	t.Run("register and count players", func(t *testing.T) {
		ctx := context.Background()
		gw := newGateway(t)

		tour, err := gw.CreateTournament(ctx, "Spring Open")
		require.NoError(t, err)
		assert.Equal(t, "Spring Open", tour.Name)

		got, err := gw.GetTournament(ctx, tour.ID)
		require.NoError(t, err)
		assert.Equal(t, tour.ID, got.ID)

		for _, name := range []string{"Ann", "Bob", "Cyd"} {
			p, err := gw.RegisterPlayer(ctx, tour.ID, name)
			require.NoError(t, err)
			assert.Equal(t, name, p.Name)
		}

		count, err := gw.CountPlayers(ctx, tour.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		_, err = gw.RegisterPlayer(ctx, tour.ID+100, "Ghost")
		assert.ErrorIs(t, err, ErrTournamentNotFound)
	})

	t.Run("enroll existing player", func(t *testing.T) {
		ctx := context.Background()
		gw := newGateway(t)

		first, err := gw.CreateTournament(ctx, "First")
		require.NoError(t, err)
		second, err := gw.CreateTournament(ctx, "Second")
		require.NoError(t, err)

		p, err := gw.RegisterPlayer(ctx, first.ID, "Ann")
		require.NoError(t, err)

		entry, err := gw.EnrollPlayer(ctx, second.ID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ScoreboardEntry{TournamentID: second.ID, PlayerID: p.ID, PlayerName: "Ann"}, *entry)

		_, err = gw.EnrollPlayer(ctx, second.ID, p.ID)
		assert.ErrorIs(t, err, ErrPlayerAlreadyEnrolled)
		_, err = gw.EnrollPlayer(ctx, second.ID, p.ID+100)
		assert.ErrorIs(t, err, ErrPlayerNotFound)
		_, err = gw.EnrollPlayer(ctx, second.ID+100, p.ID)
		assert.ErrorIs(t, err, ErrTournamentNotFound)
	})

	t.Run("record match results", func(t *testing.T) {
		ctx := context.Background()
		gw := newGateway(t)

		tour, err := gw.CreateTournament(ctx, "Results")
		require.NoError(t, err)
		a, err := gw.RegisterPlayer(ctx, tour.ID, "Ann")
		require.NoError(t, err)
		b, err := gw.RegisterPlayer(ctx, tour.ID, "Bob")
		require.NoError(t, err)
		c, err := gw.RegisterPlayer(ctx, tour.ID, "Cyd")
		require.NoError(t, err)

		m, err := gw.RecordMatchResult(ctx, tour.ID, a.ID, b.ID, false)
		require.NoError(t, err)
		assert.Equal(t, a.ID, m.WinnerID)
		assert.False(t, m.IsDraw)

		_, err = gw.RecordMatchResult(ctx, tour.ID, b.ID, c.ID, true)
		require.NoError(t, err)

		expect := map[int][2]int{a.ID: {3, 1}, b.ID: {1, 2}, c.ID: {1, 1}}
		for id, want := range expect {
			e, err := gw.GetScoreboardEntry(ctx, tour.ID, id)
			require.NoError(t, err)
			assert.Equal(t, want[0], e.Score, "score of player %d", id)
			assert.Equal(t, want[1], e.Matches, "matches of player %d", id)
		}

		played, err := gw.HasPriorMatch(ctx, tour.ID, b.ID, a.ID)
		require.NoError(t, err)
		assert.True(t, played)
		played, err = gw.HasPriorMatch(ctx, tour.ID, a.ID, c.ID)
		require.NoError(t, err)
		assert.False(t, played)

		matches, err := gw.ListMatches(ctx, tour.ID)
		require.NoError(t, err)
		assert.Len(t, matches, 2)

		_, err = gw.RecordMatchResult(ctx, tour.ID, a.ID, a.ID, false)
		assert.ErrorIs(t, err, ErrInvalidMatch)
		_, err = gw.RecordMatchResult(ctx, tour.ID, a.ID, c.ID+100, false)
		assert.ErrorIs(t, err, ErrScoreboardEntryNotFound)
	})

	t.Run("byes", func(t *testing.T) {
		ctx := context.Background()
		gw := newGateway(t)

		tour, err := gw.CreateTournament(ctx, "Byes")
		require.NoError(t, err)
		p, err := gw.RegisterPlayer(ctx, tour.ID, "Ann")
		require.NoError(t, err)

		has, err := gw.HasBye(ctx, tour.ID, p.ID)
		require.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, gw.RecordBye(ctx, tour.ID, p.ID))

		has, err = gw.HasBye(ctx, tour.ID, p.ID)
		require.NoError(t, err)
		assert.True(t, has)

		e, err := gw.GetScoreboardEntry(ctx, tour.ID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PointsBye, e.Score)
		assert.Equal(t, 1, e.Byes)
		assert.Zero(t, e.Matches)

		assert.ErrorIs(t, gw.RecordBye(ctx, tour.ID, p.ID+100), ErrScoreboardEntryNotFound)
		_, err = gw.HasBye(ctx, tour.ID, p.ID+100)
		assert.ErrorIs(t, err, ErrScoreboardEntryNotFound)
	})

	t.Run("snapshot", func(t *testing.T) {
		ctx := context.Background()
		gw := newGateway(t)

		tour, err := gw.CreateTournament(ctx, "Snap")
		require.NoError(t, err)
		other, err := gw.CreateTournament(ctx, "Other")
		require.NoError(t, err)

		var ids []int
		for _, name := range []string{"Ann", "Bob", "Cyd"} {
			p, err := gw.RegisterPlayer(ctx, tour.ID, name)
			require.NoError(t, err)
			ids = append(ids, p.ID)
		}
		x, err := gw.RegisterPlayer(ctx, other.ID, "Xan")
		require.NoError(t, err)
		y, err := gw.RegisterPlayer(ctx, other.ID, "Yul")
		require.NoError(t, err)

		_, err = gw.RecordMatchResult(ctx, tour.ID, ids[2], ids[0], false)
		require.NoError(t, err)
		_, err = gw.RecordMatchResult(ctx, other.ID, x.ID, y.ID, false)
		require.NoError(t, err)

		snap, err := gw.Snapshot(ctx, tour.ID)
		require.NoError(t, err)
		assert.Equal(t, tour.ID, snap.TournamentID)
		require.Len(t, snap.Entries, 3)
		for i, e := range snap.Entries {
			assert.Equal(t, ids[i], e.PlayerID, "entries keep enrollment order")
		}
		assert.Equal(t, "Cyd", snap.Entries[2].PlayerName)
		require.Len(t, snap.Matches, 1)
		assert.Equal(t, ids[2], snap.Matches[0].WinnerID)

		_, err = gw.Snapshot(ctx, other.ID+100)
		assert.ErrorIs(t, err, ErrTournamentNotFound)
	})

	t.Run("transaction rolls back on error", func(t *testing.T) {
		ctx := context.Background()
		gw := newGateway(t)

		tour, err := gw.CreateTournament(ctx, "Tx")
		require.NoError(t, err)
		p, err := gw.RegisterPlayer(ctx, tour.ID, "Ann")
		require.NoError(t, err)

		boom := errors.New("boom")
		err = gw.RunInTx(ctx, func(tx Gateway) error {
			if err := tx.RecordBye(ctx, tour.ID, p.ID); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		has, err := gw.HasBye(ctx, tour.ID, p.ID)
		require.NoError(t, err)
		assert.False(t, has)

		err = gw.RunInTx(ctx, func(tx Gateway) error {
			return tx.RunInTx(ctx, func(inner Gateway) error {
				return inner.RecordBye(ctx, tour.ID, p.ID)
			})
		})
		require.NoError(t, err)

		has, err = gw.HasBye(ctx, tour.ID, p.ID)
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("reset respects references", func(t *testing.T) {
		ctx := context.Background()
		gw := newGateway(t)

		tour, err := gw.CreateTournament(ctx, "Reset")
		require.NoError(t, err)
		a, err := gw.RegisterPlayer(ctx, tour.ID, "Ann")
		require.NoError(t, err)
		b, err := gw.RegisterPlayer(ctx, tour.ID, "Bob")
		require.NoError(t, err)
		_, err = gw.RecordMatchResult(ctx, tour.ID, a.ID, b.ID, false)
		require.NoError(t, err)

		_, err = gw.DeletePlayers(ctx)
		assert.ErrorIs(t, err, ErrRecordsInUse)
		_, err = gw.DeleteScoreboard(ctx)
		assert.ErrorIs(t, err, ErrRecordsInUse)

		n, err := gw.DeleteMatches(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
		n, err = gw.DeleteScoreboard(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
		n, err = gw.DeletePlayers(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
		n, err = gw.DeleteTournaments(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		tournaments, err := gw.ListTournaments(ctx)
		require.NoError(t, err)
		assert.Empty(t, tournaments)
	})
}
