// Package eval scores a position in centipawns. The terms are summed from
// White's point of view, but Evaluate and Evaluator.Evaluate flip the total by
// the side to move: their results are mover-relative (positive favors the
// side to move), not White-relative, and negamax uses them without flipping.
// Grounded on herohde-morlock/pkg/eval/eval.go's Material evaluator, extended
// per spec.md §4.G with tapered piece-square tables, pawn structure, king
// safety, and mobility.
package eval

import "github.com/belfry/corvid/pkg/board"

// MaxPhase is the game-phase scalar at the start of the game: 2 knights (1
// each) + 2 bishops (1 each) + 2 rooks (2 each) + 1 queen (4), per side.
const MaxPhase = 24

// Phase returns the game-phase scalar for pos, MaxPhase at the start of the
// game down toward 0 as major/minor pieces come off the board.
func Phase(pos *board.Position) int {
	phase := 0
	for c := board.White; c < board.NumColors; c++ {
		for p := board.Knight; p <= board.Queen; p++ {
			phase += pos.PieceBB(c, p).PopCount() * p.PhaseWeight()
		}
	}
	if phase > MaxPhase {
		phase = MaxPhase
	}
	return phase
}

// Evaluate scores pos from the perspective of the side to move: positive
// means the mover stands better. Pawn structure is recomputed every call;
// callers inside the hot search path should use an Evaluator instead, which
// caches it by pawn hash.
func Evaluate(pos *board.Position) board.Score {
	score := (whiteScore(pos) + pawnStructure(pos)) * pos.Turn().Unit()
	score = drawishScale(pos, score)
	return score + tempoBonus
}

// Evaluator scores positions with a pawn-structure cache attached. Searches
// should construct one Evaluator per table and reuse it across the whole
// search tree, the way the engine reuses one transposition table.
type Evaluator struct {
	pawns *PawnHashTable
}

// NewEvaluator builds an Evaluator backed by a pawn hash table of
// approximately sizeKB kilobytes.
func NewEvaluator(sizeKB int) *Evaluator {
	return &Evaluator{pawns: NewPawnHashTable(sizeKB)}
}

// Evaluate scores pos from the perspective of the side to move, consulting
// (and populating) the evaluator's pawn hash table for the pawn-structure term.
func (e *Evaluator) Evaluate(pos *board.Position) board.Score {
	hash := PawnHash(pos)

	var pawnScore board.Score
	if mg, eg, ok := e.pawns.Probe(hash); ok {
		phase := Phase(pos)
		pawnScore = board.Score((mg*int32(phase) + eg*int32(MaxPhase-phase)) / MaxPhase)
	} else {
		mg, eg := pawnStructureMgEg(pos)
		e.pawns.Store(hash, mg, eg)
		phase := Phase(pos)
		pawnScore = board.Score((int32(mg)*int32(phase) + int32(eg)*int32(MaxPhase-phase)) / MaxPhase)
	}

	score := (whiteScore(pos) + pawnScore) * pos.Turn().Unit()
	score = drawishScale(pos, score)
	return score + tempoBonus
}

// whiteScore returns the static evaluation from White's perspective,
// excluding the pawn-structure term (computed and cached separately).
func whiteScore(pos *board.Position) board.Score {
	var mg, eg int32

	for c := board.White; c < board.NumColors; c++ {
		sign := int32(c.Unit())
		for p := board.Pawn; p <= board.King; p++ {
			bb := pos.PieceBB(c, p)
			for bb != 0 {
				sq := bb.LSB()
				bb = bb.Clear(sq)
				pmg, peg := pst(p, c, sq)
				mg += sign * (int32(p.Value()) + int32(pmg))
				eg += sign * (int32(p.Value()) + int32(peg))
			}
		}
	}

	phase := Phase(pos)
	tapered := (mg*int32(phase) + eg*int32(MaxPhase-phase)) / MaxPhase

	score := board.Score(tapered)
	score += kingSafety(pos)
	score += mobility(pos)
	score += bishopPair(pos)
	score += rookFileBonus(pos)

	return score
}

// tempoBonus rewards the side to move with a small, fixed bonus reflecting
// the practical value of having the move, applied after the side-to-move
// sign flip so it always favors the mover.
const tempoBonus board.Score = 8

// rookFileBonus awards a rook an open-file or semi-open-file bonus: full
// value when neither side has a pawn on the rook's file, half when only the
// rook's own side lacks a pawn there (the enemy pawn is still a target).
func rookFileBonus(pos *board.Position) board.Score {
	const (
		openBonus     board.Score = 15
		semiOpenBonus board.Score = 7
	)

	var score board.Score
	for c := board.White; c < board.NumColors; c++ {
		sign := board.Score(c.Unit())
		rooks := pos.PieceBB(c, board.Rook)
		own := pos.PieceBB(c, board.Pawn)
		enemy := pos.PieceBB(c.Opponent(), board.Pawn)

		for rooks != 0 {
			sq := rooks.LSB()
			rooks = rooks.Clear(sq)
			file := board.BitFile(sq.File())

			switch {
			case own&file == 0 && enemy&file == 0:
				score += sign * openBonus
			case own&file == 0:
				score += sign * semiOpenBonus
			}
		}
	}
	return score
}

// drawishScale attenuates a material-imbalanced score toward zero when
// neither side has pawns and the remaining material is minor pieces only,
// the classic case (e.g. KBN vs KB) where a nominal edge rarely converts.
func drawishScale(pos *board.Position, score board.Score) board.Score {
	if pos.PieceBB(board.White, board.Pawn) != 0 || pos.PieceBB(board.Black, board.Pawn) != 0 {
		return score
	}
	for c := board.White; c < board.NumColors; c++ {
		if pos.PieceBB(c, board.Rook) != 0 || pos.PieceBB(c, board.Queen) != 0 {
			return score
		}
	}
	return score / 4
}

// bishopPair awards a small bonus to a side holding both bishops, roughly
// compensating for the pair's long-diagonal synergy that flat material and
// per-square PSTs don't capture.
func bishopPair(pos *board.Position) board.Score {
	const bonus board.Score = 30
	var score board.Score
	if pos.PieceBB(board.White, board.Bishop).PopCount() >= 2 {
		score += bonus
	}
	if pos.PieceBB(board.Black, board.Bishop).PopCount() >= 2 {
		score -= bonus
	}
	return score
}
