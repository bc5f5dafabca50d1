package brackets

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/swiss-tournament/models"
)

func ranked(names ...string) []models.Standing {
	pool := make([]models.Standing, len(names))
	for i, n := range names {
		pool[i] = models.Standing{PlayerID: i + 1, Name: n}
	}
	return pool
}

func TestHistory(t *testing.T) {
	h := NewHistory([]models.Match{win(1, 1, 2), draw(2, 3, 1), win(3, 2, 1)})

	assert.True(t, h.Played(1, 2))
	assert.True(t, h.Played(2, 1))
	assert.True(t, h.Played(1, 3), "draws count as meetings")
	assert.False(t, h.Played(2, 3))
	assert.Equal(t, 2, h.Meetings(2, 1))

	var empty *History
	assert.False(t, empty.Played(1, 2))
}

func TestPairPlayers(t *testing.T) {
	tests := []struct {
		name    string
		pool    []models.Standing
		matches []models.Match
		want    []models.Pairing
	}{
		{
			name: "empty pool",
			pool: nil,
			want: []models.Pairing{},
		},
		{
			name: "no history pairs neighbours",
			pool: []models.Standing{
				{PlayerID: 1, Name: "A", Score: 6, OMW: intPtr(3)},
				{PlayerID: 2, Name: "B", Score: 6, OMW: intPtr(1)},
				{PlayerID: 3, Name: "C", Score: 3, OMW: intPtr(4)},
				{PlayerID: 4, Name: "D", Score: 0, OMW: intPtr(0)},
			},
			want: []models.Pairing{
				{PlayerAID: 1, PlayerAName: "A", PlayerBID: 2, PlayerBName: "B", Table: 1},
				{PlayerAID: 3, PlayerAName: "C", PlayerBID: 4, PlayerBName: "D", Table: 2},
			},
		},
		{
			name:    "top two already met",
			pool:    ranked("A", "B", "C", "D"),
			matches: []models.Match{win(1, 1, 2)},
			want: []models.Pairing{
				{PlayerAID: 1, PlayerAName: "A", PlayerBID: 3, PlayerBName: "C", Table: 1},
				{PlayerAID: 2, PlayerAName: "B", PlayerBID: 4, PlayerBName: "D", Table: 2},
			},
		},
		{
			name:    "anchor has met everyone falls back to next ranked",
			pool:    ranked("A", "B", "C", "D"),
			matches: []models.Match{win(1, 1, 2), draw(2, 1, 3), win(3, 4, 1)},
			want: []models.Pairing{
				{PlayerAID: 1, PlayerAName: "A", PlayerBID: 2, PlayerBName: "B", Table: 1, Rematch: true},
				{PlayerAID: 3, PlayerAName: "C", PlayerBID: 4, PlayerBName: "D", Table: 2},
			},
		},
		{
			name:    "greedy search leaves a forced rematch at the bottom",
			pool:    ranked("A", "B", "C", "D"),
			matches: []models.Match{win(1, 1, 2), win(2, 2, 4)},
			want: []models.Pairing{
				{PlayerAID: 1, PlayerAName: "A", PlayerBID: 3, PlayerBName: "C", Table: 1},
				{PlayerAID: 2, PlayerAName: "B", PlayerBID: 4, PlayerBName: "D", Table: 2, Rematch: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PairPlayers(tt.pool, NewHistory(tt.matches))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("PairPlayers() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPairPlayers_CoversPoolOnce(t *testing.T) {
	pool := ranked("A", "B", "C", "D", "E", "F", "G", "H")
	history := NewHistory([]models.Match{win(1, 1, 2), win(2, 3, 4), win(3, 1, 3), win(4, 5, 6), win(5, 7, 8)})

	got, err := PairPlayers(pool, history)
	require.NoError(t, err)
	require.Len(t, got, len(pool)/2)

	seen := make(map[int]int)
	for i, p := range got {
		assert.Equal(t, i+1, p.Table)
		assert.NotEqual(t, p.PlayerAID, p.PlayerBID)
		assert.Equal(t, p.Rematch, history.Played(p.PlayerAID, p.PlayerBID))
		seen[p.PlayerAID]++
		seen[p.PlayerBID]++
	}
	for _, s := range pool {
		assert.Equal(t, 1, seen[s.PlayerID], "player %d", s.PlayerID)
	}
}

func TestPairPlayers_Deterministic(t *testing.T) {
	pool := ranked("A", "B", "C", "D", "E", "F")
	history := NewHistory([]models.Match{win(1, 1, 2), win(2, 3, 4), draw(3, 5, 6)})

	first, err := PairPlayers(pool, history)
	require.NoError(t, err)
	second, err := PairPlayers(pool, history)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPairPlayers_OddPool(t *testing.T) {
	_, err := PairPlayers(ranked("A", "B", "C"), nil)
	assert.ErrorIs(t, err, ErrOddPool)
}
