package search

import (
	"fmt"
	"time"

	"github.com/belfry/corvid/pkg/board"
)

// TimeControl represents remaining clock time, as handed to the engine by
// the UCI "go" command. Grounded on
// herohde-morlock/pkg/search/searchctl/timectrl.go's soft/hard deadline
// formula.
type TimeControl struct {
	White, Black time.Duration
	Moves        int // 0 == rest of game
}

// Limits returns a soft and hard deadline for the side to move: after the
// soft deadline, no new iteration starts; the hard deadline forces an
// in-progress iteration to stop.
func (t TimeControl) Limits(c board.Color) (soft, hard time.Duration) {
	remainder := t.White
	if c == board.Black {
		remainder = t.Black
	}

	moves := time.Duration(40)
	if t.Moves > 0 {
		moves = time.Duration(t.Moves) + 1
	}

	soft = remainder / (2 * moves)
	hard = 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}

// Limits bundles the stopping conditions for one search call: a ply depth
// cap, and/or a soft/hard time budget. Zero means "no limit" for each field.
type Limits struct {
	DepthLimit int
	Soft, Hard time.Duration
}

// FromTimeControl derives Limits from a clock and the side to move.
func FromTimeControl(tc TimeControl, turn board.Color) Limits {
	soft, hard := tc.Limits(turn)
	return Limits{Soft: soft, Hard: hard}
}
