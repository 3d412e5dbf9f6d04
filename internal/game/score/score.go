// Package score computes round results: new team scores, the win
// condition, and card draws for the round to come.
package score

import (
	"math/rand"
	"sort"

	"github.com/palemoky/thirty-seconds/internal/game/room"
)

// Result is the outcome of one score submission.
type Result struct {
	Team     room.Team
	NewScore int
	Finished bool
}

// Evaluate applies a set of word indices marked correct against the
// round held in r. Out-of-range and duplicate indices are ignored, so a
// malformed submission can only ever add fewer points, never negative
// ones. Scores are monotonically non-decreasing.
func Evaluate(r *room.Room, correctIndices []int) Result {
	team := r.CurrentRound.Team
	n := countValid(correctIndices, len(r.CurrentRound.Words))

	newScore := r.Score(team) + n
	return Result{
		Team:     team,
		NewScore: newScore,
		Finished: newScore >= r.Settings.WinningScore,
	}
}

// countValid counts distinct indices inside [0, words).
func countValid(indices []int, words int) int {
	seen := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= words {
			continue
		}
		seen[idx] = struct{}{}
	}
	return len(seen)
}

// Draw picks a card index uniformly from the indices not yet used this
// fill cycle. When every index has been used the cycle resets: reset is
// true and the draw is taken from the full range again. No index
// repeats within a cycle.
func Draw(used []int, total int, rng *rand.Rand) (index int, reset bool) {
	available := availableIndices(used, total)
	if len(available) == 0 {
		reset = true
		available = availableIndices(nil, total)
	}
	return available[rng.Intn(len(available))], reset
}

// availableIndices returns the sorted indices of [0, total) not in used.
func availableIndices(used []int, total int) []int {
	taken := make(map[int]struct{}, len(used))
	for _, idx := range used {
		taken[idx] = struct{}{}
	}

	available := make([]int, 0, total-len(taken))
	for i := 0; i < total; i++ {
		if _, ok := taken[i]; !ok {
			available = append(available, i)
		}
	}
	sort.Ints(available)
	return available
}
