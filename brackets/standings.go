package brackets

import (
	"fmt"
	"sort"

	"github.com/Dosada05/swiss-tournament/models"
)

// CalculateStandings ranks every registered player of the snapshot.
//
// Scores are rebuilt from match history and bye counts rather than read from the
// stored scoreboard totals. OMW sums the current score of the opponent of every
// match a player took part in, so an opponent met twice is counted twice.
// Ties on (score, OMW, matches) keep the snapshot's entry order.
func CalculateStandings(snap *models.Snapshot) ([]models.Standing, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: no snapshot", ErrInconsistentSnapshot)
	}

	standings := make([]models.Standing, len(snap.Entries))
	index := make(map[int]int, len(snap.Entries))
	for i, e := range snap.Entries {
		if _, dup := index[e.PlayerID]; dup {
			return nil, fmt.Errorf("%w: player %d has more than one scoreboard entry", ErrInconsistentSnapshot, e.PlayerID)
		}
		index[e.PlayerID] = i
		standings[i] = models.Standing{
			PlayerID: e.PlayerID,
			Name:     e.PlayerName,
			Score:    e.Byes * models.PointsBye,
			Byes:     e.Byes,
			HasBye:   e.HasBye(),
		}
	}

	type slots struct{ winner, loser int }
	played := make([]slots, len(snap.Matches))
	for i, m := range snap.Matches {
		wi, okW := index[m.WinnerID]
		li, okL := index[m.LoserID]
		if !okW || !okL || wi == li {
			return nil, fmt.Errorf("%w: match %d (%d vs %d) does not name two registered players",
				ErrInconsistentSnapshot, m.ID, m.WinnerID, m.LoserID)
		}
		standings[wi].Score += m.PointsFor(m.WinnerID)
		standings[li].Score += m.PointsFor(m.LoserID)
		standings[wi].Matches++
		standings[li].Matches++
		played[i] = slots{winner: wi, loser: li}
	}

	// second pass: opponents' scores are only final once every match is counted
	omw := make([]int, len(standings))
	for _, p := range played {
		omw[p.winner] += standings[p.loser].Score
		omw[p.loser] += standings[p.winner].Score
	}
	for i := range standings {
		if standings[i].Matches > 0 {
			v := omw[i]
			standings[i].OMW = &v
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return ranksAbove(standings[i], standings[j])
	})
	return standings, nil
}

// ranksAbove orders by score, then OMW (missing OMW last), then matches played.
func ranksAbove(a, b models.Standing) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if c := compareOMW(a.OMW, b.OMW); c != 0 {
		return c > 0
	}
	return a.Matches > b.Matches
}

func compareOMW(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a > *b:
		return 1
	case *a < *b:
		return -1
	}
	return 0
}
