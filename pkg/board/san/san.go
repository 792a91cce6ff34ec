// Package san formats moves in Standard Algebraic Notation.
package san

import (
	"strings"

	"github.com/belfry/corvid/pkg/board"
)

// Parse resolves a SAN string (e.g. "Nf3", "exd5", "O-O", "e8=Q#") against
// pos's legal moves. Matches by formatting each legal move and comparing,
// check/mate suffixes ignored on both sides, so the caller need not supply a
// literal "+"/"#" to match.
func Parse(pos *board.Position, s string) (board.Move, error) {
	target := strings.TrimRight(s, "+#")

	var legal board.MoveList
	pos.LegalMoves(&legal)

	match, found := board.NoMove, false
	for _, m := range legal.Moves() {
		if strings.TrimRight(Format(pos, m), "+#") != target {
			continue
		}
		if found {
			return board.NoMove, Error{Kind: AmbiguousMove, SAN: s}
		}
		match, found = m, true
	}
	if !found {
		return board.NoMove, Error{Kind: NoMatchingMove, SAN: s}
	}
	return match, nil
}

// Format renders m, played from pos, in Standard Algebraic Notation,
// including check/checkmate suffixes. pos must not yet have m applied.
// Grounded on treepeck-chego's Move2SAN: piece letter, file-then-rank
// disambiguation, capture/promotion/check/mate suffixes.
func Format(pos *board.Position, m board.Move) string {
	if m.IsCastle() {
		if m.Flag() == board.QueenCastle {
			return "O-O-O"
		}
		return "O-O"
	}

	_, piece, _ := pos.Square(m.From())

	var sb strings.Builder
	if piece != board.Pawn {
		sb.WriteByte(pieceLetter(piece))
		sb.WriteString(disambiguate(pos, m, piece))
	}

	if m.IsCapture() {
		if piece == board.Pawn {
			sb.WriteString(m.From().File().String())
		}
		sb.WriteByte('x')
	}

	sb.WriteString(m.To().String())

	if promo, ok := m.PromotionPiece(); ok {
		sb.WriteByte('=')
		sb.WriteByte(pieceLetter(promo))
	}

	sb.WriteString(checkSuffix(pos, m))

	return sb.String()
}

// checkSuffix plays m on a scratch copy of pos to determine whether it
// delivers check or checkmate, without disturbing the caller's position.
func checkSuffix(pos *board.Position, m board.Move) string {
	scratch := *pos
	scratch.Make(m)

	if !scratch.IsChecked(scratch.Turn()) {
		return ""
	}
	if !scratch.HasLegalMove() {
		return "#"
	}
	return "+"
}

// disambiguate resolves ambiguity when more than one piece of the same type
// can legally reach m.To(): prefer distinguishing by file, then by rank,
// then (rare: a knight/queen configuration needing both) by full square.
func disambiguate(pos *board.Position, m board.Move, piece board.Piece) string {
	var legal board.MoveList
	pos.LegalMoves(&legal)

	sameFile, sameRank, ambiguous := false, false, false
	for _, other := range legal.Moves() {
		if other == m || other.To() != m.To() {
			continue
		}
		_, op, _ := pos.Square(other.From())
		if op != piece {
			continue
		}
		ambiguous = true
		if other.From().File() == m.From().File() {
			sameFile = true
		}
		if other.From().Rank() == m.From().Rank() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return m.From().File().String()
	case !sameRank:
		return m.From().Rank().String()
	default:
		return m.From().String()
	}
}

func pieceLetter(p board.Piece) byte {
	switch p {
	case board.Knight:
		return 'N'
	case board.Bishop:
		return 'B'
	case board.Rook:
		return 'R'
	case board.Queen:
		return 'Q'
	case board.King:
		return 'K'
	default:
		return '?'
	}
}
