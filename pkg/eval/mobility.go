package eval

import "github.com/belfry/corvid/pkg/board"

// mobilityUnit is the centipawn value of one attacked square not occupied by
// a friendly piece, per piece type. Knights/bishops are weighted heaviest
// since their mobility correlates most strongly with placement quality.
var mobilityUnit = [board.King + 1]int32{
	board.Knight: 4,
	board.Bishop: 4,
	board.Rook:   2,
	board.Queen:  1,
}

// mobility scores each side's non-pawn piece mobility (destination squares
// not occupied by a friendly piece), White-relative.
func mobility(pos *board.Position) board.Score {
	occ := pos.Occupied()
	var score int32

	for c := board.White; c < board.NumColors; c++ {
		sign := int32(c.Unit())
		own := pos.OccupiedBy(c)
		for p := board.Knight; p <= board.Queen; p++ {
			bb := pos.PieceBB(c, p)
			for bb != 0 {
				sq := bb.LSB()
				bb = bb.Clear(sq)
				targets := board.Attacks(p, sq, occ) &^ own
				score += sign * mobilityUnit[p] * int32(targets.PopCount())
			}
		}
	}
	return board.Score(score)
}
