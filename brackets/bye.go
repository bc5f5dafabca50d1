package brackets

import "github.com/Dosada05/swiss-tournament/models"

// SelectBye picks the worst-ranked player who has not had a bye yet. When every
// player already has one the worst-ranked player is chosen anyway. ok is false
// only for empty standings.
func SelectBye(standings []models.Standing) (index int, ok bool) {
	if len(standings) == 0 {
		return -1, false
	}
	for i := len(standings) - 1; i >= 0; i-- {
		if !standings[i].HasBye {
			return i, true
		}
	}
	return len(standings) - 1, true
}
