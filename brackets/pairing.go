package brackets

import (
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

type pairKey struct{ lo, hi int }

func keyFor(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// History indexes a tournament's matches by unordered player pair. Draws count
// as meetings like any other result. A nil History has no meetings.
type History struct {
	meetings map[pairKey]int
}

func NewHistory(matches []models.Match) *History {
	h := &History{meetings: make(map[pairKey]int, len(matches))}
	for _, m := range matches {
		h.meetings[keyFor(m.WinnerID, m.LoserID)]++
	}
	return h
}

// Played reports whether a and b have already met.
func (h *History) Played(a, b int) bool {
	return h.Meetings(a, b) > 0
}

func (h *History) Meetings(a, b int) int {
	if h == nil {
		return 0
	}
	return h.meetings[keyFor(a, b)]
}

// PairPlayers pairs a ranked, even-sized pool top-down. Each anchor (the best
// remaining player) takes the first lower-ranked player it has not met; if it has
// met all of them it takes the next-ranked player and the pairing is flagged as a
// rematch. Earlier pairs are never revisited.
func PairPlayers(pool []models.Standing, history *History) ([]models.Pairing, error) {
	if len(pool)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrOddPool, len(pool))
	}

	remaining := make([]int, len(pool))
	for i := range remaining {
		remaining[i] = i
	}

	pairings := make([]models.Pairing, 0, len(pool)/2)
	for len(remaining) >= 2 {
		anchor := pool[remaining[0]]

		pick, rematch := 1, true
		for k := 1; k < len(remaining); k++ {
			if !history.Played(anchor.PlayerID, pool[remaining[k]].PlayerID) {
				pick, rematch = k, false
				break
			}
		}

		opponent := pool[remaining[pick]]
		pairings = append(pairings, models.Pairing{
			PlayerAID:   anchor.PlayerID,
			PlayerAName: anchor.Name,
			PlayerBID:   opponent.PlayerID,
			PlayerBName: opponent.Name,
			Table:       len(pairings) + 1,
			Rematch:     rematch,
		})

		next := make([]int, 0, len(remaining)-2)
		next = append(next, remaining[1:pick]...)
		next = append(next, remaining[pick+1:]...)
		remaining = next
	}
	return pairings, nil
}
