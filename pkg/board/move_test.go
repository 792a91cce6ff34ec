package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belfry/corvid/pkg/board"
)

func TestMoveEncodingRoundTrip(t *testing.T) {
	m := board.NewMove(board.E2, board.E4, board.DoublePawnPush)
	assert.Equal(t, board.E2, m.From())
	assert.Equal(t, board.E4, m.To())
	assert.Equal(t, board.DoublePawnPush, m.Flag())
	assert.True(t, m.IsDoublePawnPush())
	assert.False(t, m.IsCapture())
	assert.False(t, m.IsPromotion())
}

func TestMovePredicates(t *testing.T) {
	capture := board.NewMove(board.D4, board.E5, board.Capture)
	assert.True(t, capture.IsCapture())
	assert.False(t, capture.IsPromotion())

	ep := board.NewMove(board.E5, board.D6, board.EnPassantCapture)
	assert.True(t, ep.IsCapture())
	assert.True(t, ep.IsEnPassant())

	ksCastle := board.NewMove(board.E1, board.G1, board.KingCastle)
	assert.True(t, ksCastle.IsCastle())

	qsCastle := board.NewMove(board.E1, board.C1, board.QueenCastle)
	assert.True(t, qsCastle.IsCastle())

	promo := board.NewMove(board.E7, board.E8, board.QueenPromo)
	assert.True(t, promo.IsPromotion())
	assert.False(t, promo.IsCapture())
	piece, ok := promo.PromotionPiece()
	require.True(t, ok)
	assert.Equal(t, board.Queen, piece)

	promoCap := board.NewMove(board.E7, board.D8, board.KnightPromoCapture)
	assert.True(t, promoCap.IsPromotion())
	assert.True(t, promoCap.IsCapture())
	piece, ok = promoCap.PromotionPiece()
	require.True(t, ok)
	assert.Equal(t, board.Knight, piece)

	quiet := board.NewMove(board.G1, board.F3, board.Quiet)
	_, ok = quiet.PromotionPiece()
	assert.False(t, ok)
}

func TestParseMove(t *testing.T) {
	from, to, promo, err := board.ParseMove("e2e4")
	require.NoError(t, err)
	assert.Equal(t, board.E2, from)
	assert.Equal(t, board.E4, to)
	assert.Equal(t, board.NoPiece, promo)

	from, to, promo, err = board.ParseMove("e7e8q")
	require.NoError(t, err)
	assert.Equal(t, board.E7, from)
	assert.Equal(t, board.E8, to)
	assert.Equal(t, board.Queen, promo)

	_, _, _, err = board.ParseMove("e2")
	require.Error(t, err)
	assert.Equal(t, board.InvalidLength, err.(board.MoveParseError).Kind)

	_, _, _, err = board.ParseMove("z2e4")
	require.Error(t, err)
	assert.Equal(t, board.InvalidSquareToken, err.(board.MoveParseError).Kind)

	_, _, _, err = board.ParseMove("e7e8k")
	require.Error(t, err)
	assert.Equal(t, board.InvalidPromotion, err.(board.MoveParseError).Kind)
}

func TestMoveStringFormatsUCILongAlgebraic(t *testing.T) {
	assert.Equal(t, "e2e4", board.NewMove(board.E2, board.E4, board.DoublePawnPush).String())
	assert.Equal(t, "e7e8q", board.NewMove(board.E7, board.E8, board.QueenPromo).String())
}

func TestMoveListBestFirstOrdering(t *testing.T) {
	var ml board.MoveList
	a := board.NewMove(board.A2, board.A3, board.Quiet)
	b := board.NewMove(board.B2, board.B3, board.Quiet)
	c := board.NewMove(board.C2, board.C3, board.Quiet)
	ml.Add(a)
	ml.Add(b)
	ml.Add(c)

	ml.Prioritize(func(m board.Move) board.MovePriority {
		switch m {
		case b:
			return 100
		case c:
			return 50
		default:
			return 0
		}
	})

	first, ok := ml.Next()
	require.True(t, ok)
	assert.Equal(t, b, first)

	second, ok := ml.Next()
	require.True(t, ok)
	assert.Equal(t, c, second)

	third, ok := ml.Next()
	require.True(t, ok)
	assert.Equal(t, a, third)

	_, ok = ml.Next()
	assert.False(t, ok)
}

func TestMoveListContainsAndReset(t *testing.T) {
	var ml board.MoveList
	m := board.NewMove(board.D2, board.D4, board.DoublePawnPush)
	ml.Add(m)

	assert.True(t, ml.Contains(m))
	assert.Equal(t, 1, ml.Size())

	ml.Reset()
	assert.Zero(t, ml.Size())
	assert.False(t, ml.Contains(m))
}
