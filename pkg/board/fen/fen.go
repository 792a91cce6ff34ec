// Package fen reads and writes chess positions in Forsyth-Edwards Notation.
package fen

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/belfry/corvid/pkg/board"
)

// Initial is the FEN for the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a Position plus the side to move, halfmove
// clock, and fullmove number (game metadata the Position itself doesn't own).
//
// Example: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(s string) (*board.Position, board.Color, int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), " ")
	if len(parts) != 6 {
		return nil, 0, 0, 0, board.FenError{Kind: board.TooFewParts, FEN: s}
	}

	// (1) Piece placement: ranks 8 down to 1, files a through h within each rank.

	var placements []board.Placement
	rank, file := int(board.Rank8), 0
	for _, r := range parts[0] {
		switch {
		case r == '/':
			if file != 8 {
				return nil, 0, 0, 0, board.FenError{Kind: board.TooManyFiles, Rank: rank, Files: file, FEN: s}
			}
			rank--
			file = 0

		case unicode.IsDigit(r):
			file += int(r - '0')

		default:
			color, piece, ok := parsePiece(r)
			if !ok {
				return nil, 0, 0, 0, board.FenError{Kind: board.InvalidPieceChar, Char: r, FEN: s}
			}
			if rank < 0 || file > 7 {
				return nil, 0, 0, 0, board.FenError{Kind: board.InvalidRank, Rank: rank, FEN: s}
			}
			placements = append(placements, board.Placement{
				Square: board.NewSquare(board.File(file), board.Rank(rank)),
				Color:  color,
				Piece:  piece,
			})
			file++
		}
	}
	if rank != 0 || file != 8 {
		return nil, 0, 0, 0, board.FenError{Kind: board.TooManyFiles, Rank: rank, Files: file, FEN: s}
	}

	// (2) Active color.

	turn, ok := parseColor(parts[1])
	if !ok {
		return nil, 0, 0, 0, board.FenError{Kind: board.InvalidSideToMove, Found: parts[1], FEN: s}
	}

	// (3) Castling availability.

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, 0, 0, 0, board.FenError{Kind: board.InvalidCastlingChar, FEN: s}
	}

	// (4) En passant target square, or "-".

	ep := board.InvalidSq
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, 0, 0, 0, board.FenError{Kind: board.InvalidEnPassant, Found: parts[3], FEN: s}
		}
		ep = sq
	}

	// (5) Halfmove clock: plies since the last pawn move or capture.

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, 0, 0, 0, board.FenError{Kind: board.InvalidMoveCounter, FEN: s}
	}

	// (6) Fullmove number, starting at 1 and incrementing after Black's move.

	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, 0, 0, 0, board.FenError{Kind: board.InvalidMoveCounter, FEN: s}
	}

	pos, perr := board.NewPosition(placements, turn, castling, ep)
	if perr != nil {
		return nil, 0, 0, 0, perr
	}
	pos.SetHalfmove(halfmove)
	return pos, turn, halfmove, fullmove, nil
}

// Encode renders a position and its game metadata as a FEN record.
func Encode(pos *board.Position, turn board.Color, halfmove, fullmove int) string {
	var sb strings.Builder
	for r := int(board.Rank8); r >= int(board.Rank1); r-- {
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			color, piece, ok := pos.Square(board.NewSquare(f, board.Rank(r)))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r > int(board.Rank1) {
			sb.WriteString("/")
		}
	}

	ep := "-"
	if sq, ok := pos.EnPassant(); ok {
		ep = sq.String()
	}

	return strings.Join([]string{
		sb.String(),
		printColor(turn),
		printCastling(pos.Castling()),
		ep,
		strconv.Itoa(halfmove),
		strconv.Itoa(fullmove),
	}, " ")
}

func parseCastling(s string) (board.Castling, bool) {
	var ret board.Castling
	if s == "-" {
		return ret, true
	}
	for _, r := range s {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	return c.String()
}

func parseColor(s string) (board.Color, bool) {
	switch s {
	case "w":
		return board.White, true
	case "b":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	return c.String()
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	color := board.White
	if unicode.IsLower(r) {
		color = board.Black
	}
	piece, ok := board.ParsePiece(r)
	return color, piece, ok
}

func printPiece(c board.Color, p board.Piece) rune {
	s := p.String()
	if c == board.White {
		s = strings.ToUpper(s)
	}
	return []rune(s)[0]
}
