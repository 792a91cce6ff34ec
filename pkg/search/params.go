// Package search implements iterative-deepening alpha-beta (negamax) search
// over a board.Board: quiescence, a lockless transposition table, null-move
// pruning, late-move reductions, futility/razoring, move ordering, and time
// management. Grounded on herohde-morlock/pkg/search (alphabeta.go, pvs.go,
// iterative.go), extended with the pruning suite the teacher does not
// implement at all.
package search

import "github.com/belfry/corvid/pkg/board"

// MaxPly bounds search recursion depth: the killer table is indexed by ply up
// to this limit, and quiescence/check-extension recursion cannot
// exceed it regardless of check-extension churn.
const MaxPly = 128

// Params holds the tunable constants governing pruning and reduction
// aggressiveness. Reimplementers are expected to retune these against a
// test suite (spec's Open Questions explicitly disclaim these as tuned,
// not specified, values); DefaultParams gives reasonable starting points
// drawn from common engine literature.
type Params struct {
	// NullMoveMinDepth is the minimum depth at which null-move pruning applies.
	NullMoveMinDepth int
	// NullMoveReduction (R) is the depth reduction applied to the null-move search.
	NullMoveReduction int
	// NullMovePhaseThreshold is the game-phase weight (eval.Phase) that the
	// mover's non-pawn pieces must exceed for null-move pruning to be safe
	// from zugzwang.
	NullMovePhaseThreshold int

	// ReverseFutilityMaxDepth bounds how deep reverse futility pruning applies.
	ReverseFutilityMaxDepth int
	// ReverseFutilityMargin is the per-depth centipawn margin for reverse futility pruning.
	ReverseFutilityMargin board.Score

	// RazorMaxDepth bounds how deep razoring applies.
	RazorMaxDepth int
	// RazorMargin is the centipawn margin for dropping to quiescence.
	RazorMargin board.Score

	// FutilityMaxDepth bounds how deep futility pruning applies in the move loop.
	FutilityMaxDepth int
	// FutilityMargin is the per-depth centipawn margin for move-loop futility pruning.
	FutilityMargin board.Score

	// LateMovePruningMaxDepth bounds how deep late-move pruning applies.
	LateMovePruningMaxDepth int
	// LateMovePruningBase and LateMovePruningSlope define the move-count
	// threshold at depth d: base + slope*d*d.
	LateMovePruningBase  int
	LateMovePruningSlope int

	// LMRMinDepth is the minimum depth at which late-move reduction applies.
	LMRMinDepth int
	// LMRMinMoveIndex is the 0-based move index from which LMR starts reducing.
	LMRMinMoveIndex int

	// IIRMinDepth is the minimum depth at which internal iterative reduction applies.
	IIRMinDepth int

	// AspirationMinDepth is the minimum depth at which aspiration windows are used.
	AspirationMinDepth int
	// AspirationWindow is the initial half-width of the aspiration window, in centipawns.
	AspirationWindow board.Score

	// DeltaPruningMargin is quiescence's delta-pruning margin for captures.
	DeltaPruningMargin board.Score

	// NodesPerStopCheck is how often (in visited nodes) the hard-deadline/stop flag is polled.
	NodesPerStopCheck uint64

	// PawnHashSizeKB sizes the evaluator's pawn hash table.
	PawnHashSizeKB int
}

// DefaultParams returns the engine's default tunable parameter set.
func DefaultParams() Params {
	return Params{
		NullMoveMinDepth:        3,
		NullMoveReduction:       2,
		NullMovePhaseThreshold:  1,
		ReverseFutilityMaxDepth: 6,
		ReverseFutilityMargin:   85,
		RazorMaxDepth:           3,
		RazorMargin:             300,
		FutilityMaxDepth:        2,
		FutilityMargin:          120,
		LateMovePruningMaxDepth: 8,
		LateMovePruningBase:     3,
		LateMovePruningSlope:    2,
		LMRMinDepth:             3,
		LMRMinMoveIndex:         3,
		IIRMinDepth:             4,
		AspirationMinDepth:      3,
		AspirationWindow:        50,
		DeltaPruningMargin:      200,
		NodesPerStopCheck:       2048,
		PawnHashSizeKB:          1024,
	}
}
