package board

import "math/rand"

// ZobristHash is a position hash based on piece-squares, turn, castling
// rights, and en passant file. Used for transposition table indexing and
// 3-fold repetition detection; positions "identical" under the repetition
// rule hash identically.
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type ZobristHash uint64

// zobristSeed is fixed so every run of the engine (and every test) computes
// the same key table, making hashes and perft/TT behavior reproducible.
const zobristSeed = 20070809

var zobrist struct {
	pieces    [NumColors][NumPieces][NumSquares]ZobristHash
	castling  [NumCastlingStates]ZobristHash
	enpassant [NumFiles]ZobristHash
	turn      ZobristHash
}

func init() {
	r := rand.New(rand.NewSource(zobristSeed))

	for c := ZeroColor; c < NumColors; c++ {
		for p := ZeroPiece; p < NumPieces; p++ {
			for sq := ZeroSquare; sq < NumSquares; sq++ {
				zobrist.pieces[c][p][sq] = ZobristHash(r.Uint64())
			}
		}
	}
	for i := 0; i < int(NumCastlingStates); i++ {
		zobrist.castling[i] = ZobristHash(r.Uint64())
	}
	for f := ZeroFile; f < NumFiles; f++ {
		zobrist.enpassant[f] = ZobristHash(r.Uint64())
	}
	zobrist.turn = ZobristHash(r.Uint64())
}

// PieceKey returns the zobrist key for a piece of the given color on sq.
func PieceKey(c Color, p Piece, sq Square) ZobristHash {
	return zobrist.pieces[c][p][sq]
}

// CastlingKey returns the zobrist key for a castling-rights state.
func CastlingKey(c Castling) ZobristHash {
	return zobrist.castling[c]
}

// EnPassantKey returns the zobrist key for an en passant target on file f.
// Only the file matters: the rank is always implied by whose turn it is.
func EnPassantKey(f File) ZobristHash {
	return zobrist.enpassant[f]
}

// SideToMoveKey returns the zobrist key XORed in whenever it is Black to move.
func SideToMoveKey() ZobristHash {
	return zobrist.turn
}
