package search

import (
	"context"

	"go.uber.org/atomic"

	"github.com/seekerror/stdlib/pkg/util/contextx"

	"github.com/belfry/corvid/pkg/board"
	"github.com/belfry/corvid/pkg/eval"
)

// SearchState owns everything a search needs that outlives a single
// iterative-deepening call: the shared transposition table, the evaluator
// (itself wrapping a pawn hash table), the tunable parameter set, and the
// info sink. Grounded on herohde-morlock's SearchState-equivalent scatter
// across Context/Options; consolidated here per spec.md §3's SearchState
// data-model entry. Not safe for concurrent Launch calls against the same
// board; callers fork a board per concurrent search (spec.md §3's
// single-owner Board semantics).
type SearchState struct {
	TT     *TranspositionTable
	Eval   *eval.Evaluator
	Params Params
	Sink   Sink

	stop atomic.Bool
}

// NewSearchState builds a SearchState around an existing transposition
// table, sized per the UCI Hash option, and a fresh evaluator/pawn hash
// table sized by params.PawnHashSizeKB.
func NewSearchState(tt *TranspositionTable, params Params) *SearchState {
	return &SearchState{
		TT:     tt,
		Eval:   eval.NewEvaluator(params.PawnHashSizeKB),
		Params: params,
		Sink:   NoopSink{},
	}
}

// Stop signals every in-flight search sharing this state to halt at its next
// check point. Idempotent.
func (s *SearchState) Stop() {
	s.stop.Store(true)
}

// Reset clears the shared stop flag, preparing the state for a new search.
func (s *SearchState) Reset() {
	s.stop.Store(false)
}

func (s *SearchState) isStopped() bool {
	return s.stop.Load()
}

// worker holds everything a single search thread owns exclusively: its
// board, move-ordering tables, node counter, and selective-depth high-water
// mark. Spec.md §5: "each worker owns its own Board clone, killer/history/
// counter tables, move-list buffers, and PV vector" — no locking needed on
// any of this.
type worker struct {
	st *SearchState
	b  *board.Board

	killers  KillerTable
	history  HistoryTable
	counters CounterMoveTable

	nodes    uint64
	selDepth int
}

func newWorker(st *SearchState, b *board.Board) *worker {
	return &worker{st: st, b: b}
}

// checkStop reports whether the search should halt, polling the shared stop
// flag and ctx's cancellation only every NodesPerStopCheck nodes per
// spec.md §4.K's cancellation semantics (checking on every node would itself
// cost meaningfully at the leaves). It combines the shared stop flag (set by
// SearchState.Stop) with contextx.IsCancelled(ctx), which reports a Handle.Halt,
// including the hard deadline's Halt armed by enforceTimeControl in
// launcher.go.
func (w *worker) checkStop(ctx context.Context) bool {
	if w.st.Params.NodesPerStopCheck == 0 || w.nodes%w.st.Params.NodesPerStopCheck != 0 {
		return false
	}
	return w.st.isStopped() || contextx.IsCancelled(ctx)
}
