package search

import "github.com/belfry/corvid/pkg/board"

// attackersTo returns every piece of either color attacking sq, given an
// explicit occupancy (rather than pos's live occupancy), so a caller walking
// an exchange sequence can remove captured pieces one at a time and still
// discover the x-ray attackers a slider exposes behind them.
func attackersTo(pos *board.Position, sq board.Square, occ board.Bitboard) board.Bitboard {
	var attackers board.Bitboard
	attackers |= board.KnightAttacks(sq) & (pos.PieceBB(board.White, board.Knight) | pos.PieceBB(board.Black, board.Knight))
	attackers |= board.KingAttacks(sq) & (pos.PieceBB(board.White, board.King) | pos.PieceBB(board.Black, board.King))
	attackers |= board.PawnAttacks(board.Black, sq) & pos.PieceBB(board.White, board.Pawn)
	attackers |= board.PawnAttacks(board.White, sq) & pos.PieceBB(board.Black, board.Pawn)

	bishops := pos.PieceBB(board.White, board.Bishop) | pos.PieceBB(board.Black, board.Bishop) |
		pos.PieceBB(board.White, board.Queen) | pos.PieceBB(board.Black, board.Queen)
	attackers |= board.BishopAttacks(sq, occ) & bishops

	rooks := pos.PieceBB(board.White, board.Rook) | pos.PieceBB(board.Black, board.Rook) |
		pos.PieceBB(board.White, board.Queen) | pos.PieceBB(board.Black, board.Queen)
	attackers |= board.RookAttacks(sq, occ) & rooks

	return attackers & occ
}

// leastValuableAttacker returns the square and piece type of color c's
// cheapest attacker of sq within attackers, and whether one exists.
func leastValuableAttacker(pos *board.Position, attackers board.Bitboard, c board.Color) (board.Square, board.Piece, bool) {
	for p := board.Pawn; p <= board.King; p++ {
		bb := attackers & pos.PieceBB(c, p)
		if bb != 0 {
			return bb.LSB(), p, true
		}
	}
	return 0, board.NoPiece, false
}

// staticExchangeEval estimates the net material gain (centipawns, from the
// mover's perspective) of playing capture m to the end of the exchange on
// m.To(), by iteratively swapping in the least valuable attacker of each
// side. Used by quiescence to skip captures that lose material even after
// all recaptures (spec.md §4.K's quiescence SEE filter).
func staticExchangeEval(pos *board.Position, m board.Move) int {
	from, target := m.From(), m.To()

	_, attacker, _ := pos.Square(from)

	var victim board.Piece
	if m.IsEnPassant() {
		victim = board.Pawn
	} else if _, v, ok := pos.Square(target); ok {
		victim = v
	}

	gain := make([]int, 1, 32)
	gain[0] = int(victim.Value())

	occ := pos.Occupied() &^ board.BitMask(from)
	side := pos.Turn().Opponent()
	curValue := int(attacker.Value())

	for {
		attackers := attackersTo(pos, target, occ)
		sq, piece, ok := leastValuableAttacker(pos, attackers, side)
		if !ok {
			break
		}

		gain = append(gain, curValue-gain[len(gain)-1])
		occ &^= board.BitMask(sq)
		curValue = int(piece.Value())
		side = side.Opponent()

		if piece == board.King {
			break
		}
	}

	// Backtrack: each side chooses whether to continue the exchange or stop
	// one ply earlier, so the gain at depth i-1 is the best the side to move
	// there can force: either stand pat (-gain[i-1]) or capture (gain[i]).
	for i := len(gain) - 1; i > 0; i-- {
		gain[i-1] = -maxInt(-gain[i-1], gain[i])
	}
	return gain[0]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
