package search

import (
	"context"

	"github.com/belfry/corvid/pkg/board"
)

// negamax searches depth plies from the current position (already made on
// w.b) and returns the score from the perspective of the side to move.
// Implements the full pruning suite of spec.md §4.K: TT cutoffs, check
// extension, internal iterative reduction, reverse futility, null-move,
// razoring, late-move pruning/reduction, and futility pruning. prevMove is
// the move that led to this node (board.NoMove at the root), used for
// counter-move ordering in the move loop below. allowNull disables a second
// consecutive null move, including during null-move verification search.
func (w *worker) negamax(ctx context.Context, depth, ply int, alpha, beta board.Score, prevMove board.Move, allowNull bool) board.Score {
	if w.checkStop(ctx) {
		return 0
	}
	if ply > 0 && w.b.Result().IsDraw() {
		return 0
	}
	if ply >= MaxPly {
		return w.st.Eval.Evaluate(w.b.Position())
	}

	pos := w.b.Position()
	hash := pos.Hash()

	var ttMove board.Move
	if entry, ok := w.st.TT.Probe(hash, ply); ok {
		ttMove = entry.Move
		if entry.Depth >= depth {
			switch entry.Bound {
			case ExactBound:
				return entry.Score
			case LowerBound:
				if entry.Score > alpha {
					alpha = entry.Score
				}
			case UpperBound:
				if entry.Score < beta {
					beta = entry.Score
				}
			}
			if alpha >= beta {
				return entry.Score
			}
		}
	}

	if depth <= 0 {
		return w.quiesce(ctx, ply, alpha, beta)
	}

	w.nodes++
	if ply > w.selDepth {
		w.selDepth = ply
	}

	inCheck := pos.IsChecked(pos.Turn())
	if inCheck {
		depth++ // check extension
	}

	if depth >= w.st.Params.IIRMinDepth && ttMove == board.NoMove {
		depth-- // internal iterative reduction: encourage a shallow TT-populating pass first
	}

	staticEval := w.st.Eval.Evaluate(pos)

	if !inCheck {
		if p := w.st.Params; depth <= p.ReverseFutilityMaxDepth {
			margin := p.ReverseFutilityMargin * board.Score(depth)
			if staticEval-margin >= beta {
				return staticEval
			}
		}

		if allowNull && depth >= w.st.Params.NullMoveMinDepth && staticEval >= beta &&
			nonPawnWeight(pos, pos.Turn()) > w.st.Params.NullMovePhaseThreshold {

			r := w.st.Params.NullMoveReduction
			reduced := depth - 1 - r
			if reduced < 0 {
				reduced = 0
			}

			info := pos.MakeNull()
			score := -w.negamax(ctx, reduced, ply+1, -beta, -beta+1, board.NoMove, false)
			pos.UnmakeNull(info)

			if w.checkStop(ctx) {
				return 0
			}
			if score >= beta {
				verify := w.negamax(ctx, depth-1-r, ply, alpha, beta, prevMove, false)
				if verify >= beta {
					return beta
				}
			}
		}

		if depth <= w.st.Params.RazorMaxDepth && staticEval+w.st.Params.RazorMargin <= alpha {
			return w.quiesce(ctx, ply, alpha, beta)
		}
	}

	var ml board.MoveList
	pos.LegalMoves(&ml)
	if ml.Size() == 0 {
		if inCheck {
			return -(board.MateScore - board.Score(ply))
		}
		return 0
	}

	sc := &scorer{
		pos:     pos,
		ttMove:  ttMove,
		ply:     ply,
		counter: w.counters.Get(prevMove),
		killers: &w.killers,
		history: &w.history,
	}
	ml.Prioritize(sc.priority)

	bestScore := board.MinScore - 1
	bestMove := board.NoMove
	bound := UpperBound
	lmpLimit := lmpThreshold(depth, w.st.Params)

	moveIndex := 0
	for {
		m, ok := ml.Next()
		if !ok {
			break
		}
		isQuiet := !m.IsCapture() && !m.IsPromotion()

		if isQuiet && depth <= w.st.Params.LateMovePruningMaxDepth && moveIndex > lmpLimit {
			moveIndex++
			continue
		}
		if isQuiet && depth <= w.st.Params.FutilityMaxDepth && staticEval+w.st.Params.FutilityMargin < alpha {
			moveIndex++
			continue
		}

		info := w.b.MakeMove(m)

		var score board.Score
		childDepth := depth - 1
		switch {
		case moveIndex == 0:
			score = -w.negamax(ctx, childDepth, ply+1, -beta, -alpha, m, true)
		default:
			reduced := childDepth
			if isQuiet && depth >= w.st.Params.LMRMinDepth && moveIndex >= w.st.Params.LMRMinMoveIndex {
				reduced = childDepth - lmrReduction(depth, moveIndex)
				if reduced < 0 {
					reduced = 0
				}
			}
			score = -w.negamax(ctx, reduced, ply+1, -alpha-1, -alpha, m, true)
			if score > alpha && reduced < childDepth {
				score = -w.negamax(ctx, childDepth, ply+1, -alpha-1, -alpha, m, true)
			}
			if score > alpha && score < beta {
				score = -w.negamax(ctx, childDepth, ply+1, -beta, -alpha, m, true)
			}
		}

		w.b.UnmakeMove(m, info)
		moveIndex++

		if w.checkStop(ctx) {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			bound = ExactBound
		}
		if alpha >= beta {
			bound = LowerBound
			if isQuiet {
				w.killers.Add(ply, m)
				w.history.Add(m, depth)
				w.counters.Set(prevMove, m)
			}
			break
		}
	}

	w.st.TT.Store(hash, ply, depth, bound, bestScore, bestMove, staticEval)
	return bestScore
}

// rootSearch runs one full-width iteration at depth from the board's current
// position, returning the score and best move. The aspiration window is
// chosen by the caller (launcher.go); rootSearch probes the TT for the move
// to order first and runs the move loop with PVS re-search at ply 0 (child
// calls start at ply 1).
func (w *worker) rootSearch(ctx context.Context, depth int, alpha, beta board.Score) (board.Score, board.Move) {
	pos := w.b.Position()

	var ml board.MoveList
	pos.LegalMoves(&ml)
	if ml.Size() == 0 {
		return 0, board.NoMove
	}

	var ttMove board.Move
	if entry, ok := w.st.TT.Probe(pos.Hash(), 0); ok {
		ttMove = entry.Move
	}

	sc := &scorer{pos: pos, ttMove: ttMove, ply: 0, counter: board.NoMove, killers: &w.killers, history: &w.history}
	ml.Prioritize(sc.priority)

	bestScore := board.MinScore - 1
	bestMove := board.NoMove
	bound := UpperBound

	moveIndex := 0
	for {
		m, ok := ml.Next()
		if !ok {
			break
		}

		info := w.b.MakeMove(m)

		var score board.Score
		if moveIndex == 0 {
			score = -w.negamax(ctx, depth-1, 1, -beta, -alpha, m, true)
		} else {
			score = -w.negamax(ctx, depth-1, 1, -alpha-1, -alpha, m, true)
			if score > alpha && score < beta {
				score = -w.negamax(ctx, depth-1, 1, -beta, -alpha, m, true)
			}
		}

		w.b.UnmakeMove(m, info)
		moveIndex++

		if w.checkStop(ctx) {
			break
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			bound = ExactBound
		}
		if alpha >= beta {
			bound = LowerBound
			break
		}
	}

	if bestMove != board.NoMove {
		w.st.TT.Store(pos.Hash(), 0, depth, bound, bestScore, bestMove, w.st.Eval.Evaluate(pos))
	}
	return bestScore, bestMove
}

// nonPawnWeight sums color c's phase weight contribution (knights, bishops,
// rooks, queens), used to guard null-move pruning against zugzwang-prone
// endgames where passing the turn is never actually safe.
func nonPawnWeight(pos *board.Position, c board.Color) int {
	weight := 0
	for p := board.Knight; p <= board.Queen; p++ {
		weight += pos.PieceBB(c, p).PopCount() * p.PhaseWeight()
	}
	return weight
}

// lmpThreshold returns the move-index cutoff beyond which quiet moves are
// skipped outright at shallow depth (spec.md §4.K.9.a).
func lmpThreshold(depth int, p Params) int {
	return p.LateMovePruningBase + p.LateMovePruningSlope*depth*depth
}

// lmrReduction returns the depth reduction for a late, quiet move at the
// given depth and move index. A starting formula, not a tuned constant
// (spec's Open Questions disclaim LMR formulas as empirically tuned).
func lmrReduction(depth, moveIndex int) int {
	r := 1
	if depth >= 6 && moveIndex >= 6 {
		r = 2
	}
	if depth >= 10 && moveIndex >= 12 {
		r = 3
	}
	return r
}

// extractPV reconstructs the principal variation by walking the
// transposition table from pos, replaying each stored best move on a scratch
// copy and stopping at the first missing/illegal/repeated entry. This trades
// perfect PV fidelity (a TT slot can be evicted or collide mid-walk) for
// avoiding a triangular PV array threaded through every negamax call, which
// would cost an allocation-free implementation real complexity for a field
// that's purely diagnostic (spec.md §5's hot-path-is-allocation-free budget
// covers negamax/quiesce, not this post-hoc walk).
func extractPV(pos *board.Position, tt *TranspositionTable, maxLen int) []board.Move {
	cur := *pos
	seen := map[board.ZobristHash]bool{}

	var pv []board.Move
	for i := 0; i < maxLen; i++ {
		h := cur.Hash()
		if seen[h] {
			break
		}
		seen[h] = true

		entry, ok := tt.Probe(h, 0)
		if !ok || entry.Move == board.NoMove {
			break
		}

		var ml board.MoveList
		cur.LegalMoves(&ml)
		if !ml.Contains(entry.Move) {
			break
		}

		cur.Make(entry.Move)
		pv = append(pv, entry.Move)
	}
	return pv
}
