package eval

import "github.com/belfry/corvid/pkg/board"

// attackWeight is the danger contribution of one attacker of a given piece
// type landing on a square in the defending king's zone.
var attackWeight = [board.King + 1]int32{
	board.Knight: 2,
	board.Bishop: 2,
	board.Rook:   3,
	board.Queen:  5,
}

// dangerTable maps a raw weighted attacker count to a centipawn penalty,
// non-linear since a king under fire from several pieces at once is far
// worse than the sum of each attacker in isolation. Common engine-literature
// shape (c.f. the classic "king safety table" used by many open-source
// evaluation functions), clamped at the table's last entry.
var dangerTable = [32]int32{
	0, 0, 1, 2, 3, 5, 7, 9,
	12, 15, 18, 22, 26, 30, 35, 39,
	44, 50, 56, 62, 68, 75, 82, 85,
	89, 97, 105, 113, 122, 131, 140, 150,
}

// kingSafety penalizes each side for enemy pieces bearing on the squares
// around its king, White-relative (a penalty to Black's king is a bonus for
// White and vice versa).
func kingSafety(pos *board.Position) board.Score {
	var score int32
	for c := board.White; c < board.NumColors; c++ {
		enemy := c.Opponent()
		danger := kingDanger(pos, c, enemy)
		// Danger to c's king subtracts from c's score, i.e. adds to the
		// opponent's relative standing.
		score -= int32(c.Unit()) * danger
	}
	return board.Score(score)
}

// kingDanger sums the weighted attacker count landing on defender's king
// zone from attacker's pieces, mapped through dangerTable.
func kingDanger(pos *board.Position, defender, attacker board.Color) int32 {
	zone := kingZone(pos.KingSquare(defender))
	occ := pos.Occupied()

	var units int32
	for p := board.Knight; p <= board.Queen; p++ {
		bb := pos.PieceBB(attacker, p)
		for bb != 0 {
			sq := bb.LSB()
			bb = bb.Clear(sq)
			hits := board.Attacks(p, sq, occ) & zone
			units += attackWeight[p] * int32(hits.PopCount())
		}
	}
	if units >= int32(len(dangerTable)) {
		units = int32(len(dangerTable)) - 1
	}
	return dangerTable[units]
}

// kingZone is the king's own square plus every square a king on it attacks.
func kingZone(kingSq board.Square) board.Bitboard {
	return board.KingAttacks(kingSq).Set(kingSq)
}
