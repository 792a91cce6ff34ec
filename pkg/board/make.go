package board

// UnmakeInfo snapshots exactly the state Make cannot otherwise recover when
// reversed: the captured piece (if any) and the pre-move irreversible state
// (castling rights, en passant target, halfmove clock, zobrist hash). Unmake
// restores these directly rather than re-deriving them, so make/unmake is a
// perfect involution regardless of move complexity.
type UnmakeInfo struct {
	CapturedPiece Piece
	PrevCastling  Castling
	PrevEnPassant Square
	PrevHalfmove  int
	PrevHash      ZobristHash
}

// Make applies a pseudo-legal move in place and returns the information
// needed to undo it via Unmake. Make does not check legality (whether the
// mover's own king ends up in check); callers filter that separately (see
// movegen.go) since verifying it requires making the move first.
func (p *Position) Make(m Move) UnmakeInfo {
	from, to := m.From(), m.To()
	turn := p.turn
	_, piece, _ := p.Square(from)

	info := UnmakeInfo{
		CapturedPiece: NoPiece,
		PrevCastling:  p.castling,
		PrevEnPassant: p.enpassant,
		PrevHalfmove:  p.halfmove,
		PrevHash:      p.hash,
	}

	if p.enpassant != InvalidSq {
		p.hash ^= EnPassantKey(p.enpassant.File())
	}
	p.hash ^= CastlingKey(p.castling)

	switch {
	case m.IsEnPassant():
		capSq := NewSquare(to.File(), from.Rank())
		info.CapturedPiece = Pawn
		p.remove(turn.Opponent(), Pawn, capSq)
		p.remove(turn, Pawn, from)
		p.place(turn, Pawn, to)

	case m.IsCastle():
		p.remove(turn, King, from)
		p.place(turn, King, to)
		rookFrom, rookTo := castlingRookSquares(turn, m.Flag())
		p.remove(turn, Rook, rookFrom)
		p.place(turn, Rook, rookTo)

	default:
		if m.IsCapture() {
			_, capPiece, _ := p.Square(to)
			info.CapturedPiece = capPiece
			p.remove(turn.Opponent(), capPiece, to)
		}
		p.remove(turn, piece, from)
		if promo, ok := m.PromotionPiece(); ok {
			p.place(turn, promo, to)
		} else {
			p.place(turn, piece, to)
		}
	}

	lost := rightsClearedBySquare(from)
	if piece == King {
		lost |= Rights(turn)
	}
	if m.IsCapture() {
		lost |= rightsClearedBySquare(to)
	}
	p.castling &^= lost

	if m.IsDoublePawnPush() {
		p.enpassant = NewSquare(from.File(), Rank((int(from.Rank())+int(to.Rank()))/2))
	} else {
		p.enpassant = InvalidSq
	}

	if piece == Pawn || m.IsCapture() || m.IsEnPassant() {
		p.halfmove = 0
	} else {
		p.halfmove++
	}

	p.hash ^= CastlingKey(p.castling)
	if p.enpassant != InvalidSq {
		p.hash ^= EnPassantKey(p.enpassant.File())
	}
	p.hash ^= SideToMoveKey()
	p.turn = turn.Opponent()

	return info
}

// Unmake reverses the most recently applied move, restoring the exact prior
// state. m and info must be the values Make just returned; Unmake does not
// re-derive anything it can instead restore verbatim.
func (p *Position) Unmake(m Move, info UnmakeInfo) {
	turn := p.turn.Opponent()
	from, to := m.From(), m.To()

	switch {
	case m.IsEnPassant():
		capSq := NewSquare(to.File(), from.Rank())
		p.xor(to, turn, Pawn)
		p.xor(from, turn, Pawn)
		p.xor(capSq, turn.Opponent(), Pawn)

	case m.IsCastle():
		p.xor(to, turn, King)
		p.xor(from, turn, King)
		rookFrom, rookTo := castlingRookSquares(turn, m.Flag())
		p.xor(rookTo, turn, Rook)
		p.xor(rookFrom, turn, Rook)

	default:
		if promo, ok := m.PromotionPiece(); ok {
			p.xor(to, turn, promo)
			p.xor(from, turn, Pawn)
		} else {
			_, piece, _ := p.Square(to)
			p.xor(to, turn, piece)
			p.xor(from, turn, piece)
		}
		if info.CapturedPiece != NoPiece {
			p.xor(to, turn.Opponent(), info.CapturedPiece)
		}
	}

	p.turn = turn
	p.castling = info.PrevCastling
	p.enpassant = info.PrevEnPassant
	p.halfmove = info.PrevHalfmove
	p.hash = info.PrevHash
}

// NullMoveInfo snapshots the state a null move touches, for MakeNull/UnmakeNull.
type NullMoveInfo struct {
	PrevEnPassant Square
	PrevHash      ZobristHash
}

// MakeNull passes the turn without moving a piece, used by null-move pruning
// (spec §4.K). Clears any en passant target, since it would no longer be
// reachable by the side that would have had to capture immediately.
func (p *Position) MakeNull() NullMoveInfo {
	info := NullMoveInfo{PrevEnPassant: p.enpassant, PrevHash: p.hash}
	if p.enpassant != InvalidSq {
		p.hash ^= EnPassantKey(p.enpassant.File())
		p.enpassant = InvalidSq
	}
	p.hash ^= SideToMoveKey()
	p.turn = p.turn.Opponent()
	return info
}

// UnmakeNull reverses MakeNull.
func (p *Position) UnmakeNull(info NullMoveInfo) {
	p.turn = p.turn.Opponent()
	p.enpassant = info.PrevEnPassant
	p.hash = info.PrevHash
}

func (p *Position) remove(c Color, piece Piece, sq Square) {
	p.xor(sq, c, piece)
	p.hash ^= PieceKey(c, piece, sq)
}

func (p *Position) place(c Color, piece Piece, sq Square) {
	p.xor(sq, c, piece)
	p.hash ^= PieceKey(c, piece, sq)
}

// castlingRookSquares returns the rook's from/to squares for a castle move by turn.
func castlingRookSquares(turn Color, flag MoveFlag) (Square, Square) {
	if turn == White {
		if flag == KingCastle {
			return H1, F1
		}
		return A1, D1
	}
	if flag == KingCastle {
		return H8, F8
	}
	return A8, D8
}

// rightsClearedBySquare returns the castling right permanently lost when a
// rook moves from, or is captured on, one of the four corner squares.
func rightsClearedBySquare(sq Square) Castling {
	switch sq {
	case A1:
		return WhiteQueenSideCastle
	case H1:
		return WhiteKingSideCastle
	case A8:
		return BlackQueenSideCastle
	case H8:
		return BlackKingSideCastle
	default:
		return NoCastling
	}
}
