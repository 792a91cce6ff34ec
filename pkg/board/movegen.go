package board

// Pseudo-legal-then-filter move generation: generate every move that obeys
// piece-movement rules and board occupancy, then discard the ones that leave
// the mover's own king in check. Grounded on the pseudo-legal/filter split in
// dragontoothmg's movegen.go/apply.go, simplified to a single make-and-check
// legality test (dragontoothmg instead precomputes pins to avoid the extra
// make/unmake per candidate move; this repository trades a little move-gen
// throughput for a generator that is easy to verify against perft).

// GeneratePseudoLegalMoves appends every pseudo-legal move to ml. If
// tacticalOnly is true, only captures, en passant, and promotions are
// generated (the quiescence search's tactical-only frontier); otherwise every
// legal-looking move, including quiet pushes and castling, is generated.
func (p *Position) GeneratePseudoLegalMoves(ml *MoveList, tacticalOnly bool) {
	us := p.turn
	own := p.OccupiedBy(us)
	occ := p.occupied

	// Piece moves may not land on the excluded squares: own pieces, or in
	// tactical-only mode every square not holding an enemy piece.
	exclude := own
	if tacticalOnly {
		exclude = ^p.OccupiedBy(us.Opponent())
	}

	p.genPawnMoves(ml, us, occ, tacticalOnly)
	p.genStepperMoves(ml, us, Knight, exclude)
	p.genSliderMoves(ml, us, Bishop, exclude, occ)
	p.genSliderMoves(ml, us, Rook, exclude, occ)
	p.genSliderMoves(ml, us, Queen, exclude, occ)
	p.genStepperMoves(ml, us, King, exclude)
	if !tacticalOnly {
		p.genCastlingMoves(ml, us)
	}
}

// LegalMoves appends every legal move to ml.
func (p *Position) LegalMoves(ml *MoveList) {
	p.legalMovesFrom(ml, false)
}

// LegalCaptures appends every legal tactical move (captures, en passant,
// promotions) to ml, for quiescence search.
func (p *Position) LegalCaptures(ml *MoveList) {
	p.legalMovesFrom(ml, true)
}

func (p *Position) legalMovesFrom(ml *MoveList, tacticalOnly bool) {
	var pseudo MoveList
	p.GeneratePseudoLegalMoves(&pseudo, tacticalOnly)

	us := p.turn
	for _, m := range pseudo.Moves() {
		info := p.Make(m)
		if !p.IsAttacked(p.KingSquare(us), p.turn) {
			ml.Add(m)
		}
		p.Unmake(m, info)
	}
}

// HasLegalMove reports whether the side to move has at least one legal move,
// without building the full list. Used to detect checkmate/stalemate cheaply.
func (p *Position) HasLegalMove() bool {
	var pseudo MoveList
	p.GeneratePseudoLegalMoves(&pseudo, false)

	us := p.turn
	for _, m := range pseudo.Moves() {
		info := p.Make(m)
		legal := !p.IsAttacked(p.KingSquare(us), p.turn)
		p.Unmake(m, info)
		if legal {
			return true
		}
	}
	return false
}

func (p *Position) genStepperMoves(ml *MoveList, us Color, piece Piece, own Bitboard) {
	bb := p.pieces[us][piece]
	for bb != 0 {
		from := bb.PopLSB()
		var targets Bitboard
		if piece == Knight {
			targets = KnightAttacks(from)
		} else {
			targets = KingAttacks(from)
		}
		p.addTargets(ml, from, targets&^own)
	}
}

func (p *Position) genSliderMoves(ml *MoveList, us Color, piece Piece, own, occ Bitboard) {
	bb := p.pieces[us][piece]
	for bb != 0 {
		from := bb.PopLSB()
		p.addTargets(ml, from, Attacks(piece, from, occ)&^own)
	}
}

// addTargets emits one move per set bit in targets, tagging it Capture iff the destination is occupied.
func (p *Position) addTargets(ml *MoveList, from Square, targets Bitboard) {
	for targets != 0 {
		to := targets.PopLSB()
		flag := Quiet
		if p.occupied.IsSet(to) {
			flag = Capture
		}
		ml.Add(NewMove(from, to, flag))
	}
}

func (p *Position) genPawnMoves(ml *MoveList, us Color, occ Bitboard, tacticalOnly bool) {
	them := us.Opponent()
	pawns := p.pieces[us][Pawn]
	promoRank := us.PromotionRank()
	dir := us.PawnDirection()

	if !tacticalOnly {
		single := PawnPushes(us, pawns, occ)
		quiet := single &^ BitRank(promoRank)
		for t := quiet; t != 0; {
			to := t.PopLSB()
			from := NewSquare(to.File(), Rank(int(to.Rank())-dir))
			ml.Add(NewMove(from, to, Quiet))
		}

		double := PawnPushes(us, single, occ) & PawnDoublePushRank(us)
		for t := double; t != 0; {
			to := t.PopLSB()
			from := NewSquare(to.File(), Rank(int(to.Rank())-2*dir))
			ml.Add(NewMove(from, to, DoublePawnPush))
		}
	}

	promoPushes := PawnPushes(us, pawns, occ) & BitRank(promoRank)
	for t := promoPushes; t != 0; {
		to := t.PopLSB()
		from := NewSquare(to.File(), Rank(int(to.Rank())-dir))
		addPromotions(ml, from, to, false)
	}

	for bb := pawns; bb != 0; {
		from := bb.PopLSB()
		caps := PawnAttacks(us, from) & p.pieces[them][NoPiece]
		for caps != 0 {
			to := caps.PopLSB()
			if to.Rank() == promoRank {
				addPromotions(ml, from, to, true)
			} else {
				ml.Add(NewMove(from, to, Capture))
			}
		}
		if ep, ok := p.EnPassant(); ok && PawnAttacks(us, from).IsSet(ep) {
			ml.Add(NewMove(from, ep, EnPassantCapture))
		}
	}
}

func addPromotions(ml *MoveList, from, to Square, isCapture bool) {
	if isCapture {
		ml.Add(NewMove(from, to, QueenPromoCapture))
		ml.Add(NewMove(from, to, RookPromoCapture))
		ml.Add(NewMove(from, to, BishopPromoCapture))
		ml.Add(NewMove(from, to, KnightPromoCapture))
	} else {
		ml.Add(NewMove(from, to, QueenPromo))
		ml.Add(NewMove(from, to, RookPromo))
		ml.Add(NewMove(from, to, BishopPromo))
		ml.Add(NewMove(from, to, KnightPromo))
	}
}

func (p *Position) genCastlingMoves(ml *MoveList, us Color) {
	opp := us.Opponent()
	if p.IsChecked(us) {
		return
	}
	back := us.BackRank()
	e := NewSquare(FileE, back)

	if p.castling.IsAllowed(KingSide(us)) {
		f, g := NewSquare(FileF, back), NewSquare(FileG, back)
		if p.IsEmpty(f) && p.IsEmpty(g) && !p.IsAttacked(f, opp) && !p.IsAttacked(g, opp) {
			ml.Add(NewMove(e, g, KingCastle))
		}
	}
	if p.castling.IsAllowed(QueenSide(us)) {
		d, c, b := NewSquare(FileD, back), NewSquare(FileC, back), NewSquare(FileB, back)
		if p.IsEmpty(d) && p.IsEmpty(c) && p.IsEmpty(b) && !p.IsAttacked(d, opp) && !p.IsAttacked(c, opp) {
			ml.Add(NewMove(e, c, QueenCastle))
		}
	}
}
