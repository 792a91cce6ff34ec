package search

import (
	"context"

	"github.com/belfry/corvid/pkg/board"
)

// quiesce extends search past the nominal horizon over tactical moves only,
// per spec.md §4.K, so the static evaluation at a leaf is never taken in the
// middle of a capture sequence.
func (w *worker) quiesce(ctx context.Context, ply int, alpha, beta board.Score) board.Score {
	if w.checkStop(ctx) {
		return 0
	}
	if ply > 0 && w.b.Result().IsDraw() {
		return 0
	}

	pos := w.b.Position()
	if ply >= MaxPly {
		return w.st.Eval.Evaluate(pos)
	}

	w.nodes++
	if ply > w.selDepth {
		w.selDepth = ply
	}

	inCheck := pos.IsChecked(pos.Turn())
	if inCheck {
		return w.quiesceEvasions(ctx, ply, alpha, beta)
	}

	standPat := w.st.Eval.Evaluate(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	var ml board.MoveList
	pos.LegalCaptures(&ml)
	ml.Prioritize(tacticalPriority(pos))

	best := standPat
	for {
		m, ok := ml.Next()
		if !ok {
			break
		}

		if !m.IsPromotion() {
			if standPat+captureVictimValue(pos, m)+w.st.Params.DeltaPruningMargin < alpha {
				continue // delta pruning: even winning the whole exchange can't reach alpha
			}
			if staticExchangeEval(pos, m) < 0 {
				continue // losing capture
			}
		}

		info := w.b.MakeMove(m)
		score := -w.quiesce(ctx, ply+1, -beta, -alpha)
		w.b.UnmakeMove(m, info)

		if w.checkStop(ctx) {
			return 0
		}
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// quiesceEvasions handles the in-check case: stand-pat is unsound (the side
// to move might be losing the king), so every legal evasion is searched,
// ordered by MVV-LVA as a cheap proxy for "captures the checking piece or
// the most valuable attacker first".
func (w *worker) quiesceEvasions(ctx context.Context, ply int, alpha, beta board.Score) board.Score {
	pos := w.b.Position()

	var ml board.MoveList
	pos.LegalMoves(&ml)
	if ml.Size() == 0 {
		return -(board.MateScore - board.Score(ply))
	}
	ml.Prioritize(tacticalPriority(pos))

	best := board.MinScore - 1
	for {
		m, ok := ml.Next()
		if !ok {
			break
		}
		info := w.b.MakeMove(m)
		score := -w.quiesce(ctx, ply+1, -beta, -alpha)
		w.b.UnmakeMove(m, info)

		if w.checkStop(ctx) {
			return 0
		}
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// captureVictimValue returns the material value of the piece m captures (the
// pawn one rank behind the target square for en passant).
func captureVictimValue(pos *board.Position, m board.Move) board.Score {
	if m.IsEnPassant() {
		return board.Pawn.Value()
	}
	if _, victim, ok := pos.Square(m.To()); ok {
		return victim.Value()
	}
	return 0
}
