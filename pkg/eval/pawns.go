package eval

import "github.com/belfry/corvid/pkg/board"

// Doubled/isolated penalties and passed-pawn bonus-by-rank, in centipawns.
// Conventional engine-literature magnitudes, not tuned against any corpus.
const (
	doubledPenaltyMG  = -10
	doubledPenaltyEG  = -20
	isolatedPenaltyMG = -12
	isolatedPenaltyEG = -8
)

// passedBonus is indexed by the pawn's rank from its own perspective (0 =
// own back rank, 7 = promotion rank); a pawn on its own back rank can't
// exist, so index 0/7 are unused placeholders.
var passedBonusMG = [8]int32{0, 5, 10, 15, 30, 55, 90, 0}
var passedBonusEG = [8]int32{0, 10, 20, 35, 60, 100, 150, 0}

// pawnStructure returns the tapered pawn-structure term, White-relative,
// for ad-hoc callers that don't maintain an Evaluator/PawnHashTable.
func pawnStructure(pos *board.Position) board.Score {
	mg, eg := pawnStructureMgEg(pos)
	phase := Phase(pos)
	return board.Score((int32(mg)*int32(phase) + int32(eg)*int32(MaxPhase-phase)) / MaxPhase)
}

// pawnStructureMgEg computes the raw (untapered) mg/eg pawn-structure score,
// White-relative. Cached by PawnHash in Evaluator since it depends only on
// pawn placement.
func pawnStructureMgEg(pos *board.Position) (mg, eg int32) {
	white := pos.PieceBB(board.White, board.Pawn)
	black := pos.PieceBB(board.Black, board.Pawn)

	wmg, weg := sidePawnStructure(white, black, board.White)
	bmg, beg := sidePawnStructure(black, white, board.Black)

	return wmg - bmg, weg - beg
}

func sidePawnStructure(own, enemy board.Bitboard, c board.Color) (mg, eg int32) {
	for f := board.ZeroFile; f < board.NumFiles; f++ {
		fileMask := board.BitFile(f)
		count := (own & fileMask).PopCount()
		if count > 1 {
			mg += int32(doubledPenaltyMG * (count - 1))
			eg += int32(doubledPenaltyEG * (count - 1))
		}
		if count > 0 && !hasAdjacentFilePawn(own, f) {
			mg += isolatedPenaltyMG * int32(count)
			eg += isolatedPenaltyEG * int32(count)
		}
	}

	bb := own
	for bb != 0 {
		sq := bb.LSB()
		bb = bb.Clear(sq)
		if isPassed(sq, enemy, c) {
			rank := relativeRank(sq, c)
			mg += passedBonusMG[rank]
			eg += passedBonusEG[rank]
		}
	}
	return mg, eg
}

// hasAdjacentFilePawn reports whether own has a pawn on either file adjacent to f.
func hasAdjacentFilePawn(own board.Bitboard, f board.File) bool {
	var mask board.Bitboard
	if f > board.FileA {
		mask |= board.BitFile(f - 1)
	}
	if f < board.FileH {
		mask |= board.BitFile(f + 1)
	}
	return own&mask != 0
}

// isPassed reports whether the pawn of color c on sq has no enemy pawn able
// to stop or capture it on its way to promotion: none on its file or the two
// adjacent files, on any rank ahead of it.
func isPassed(sq board.Square, enemy board.Bitboard, c board.Color) bool {
	f := sq.File()
	var files board.Bitboard
	files |= board.BitFile(f)
	if f > board.FileA {
		files |= board.BitFile(f - 1)
	}
	if f < board.FileH {
		files |= board.BitFile(f + 1)
	}

	var ahead board.Bitboard
	if c == board.White {
		for r := sq.Rank().V() + 1; r <= board.Rank8.V(); r++ {
			ahead |= board.BitRank(board.Rank(r))
		}
	} else {
		for r := sq.Rank().V() - 1; r >= 0; r-- {
			ahead |= board.BitRank(board.Rank(r))
		}
	}

	return enemy&files&ahead == 0
}

// relativeRank returns sq's rank from c's own perspective: 0 is c's back rank.
func relativeRank(sq board.Square, c board.Color) int {
	if c == board.White {
		return sq.Rank().V()
	}
	return 7 - sq.Rank().V()
}
