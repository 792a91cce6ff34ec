package search_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/belfry/corvid/pkg/board"
	"github.com/belfry/corvid/pkg/search"
)

func TestTranspositionTableSizeRoundsDownToPowerOfTwoBuckets(t *testing.T) {
	ctx := context.Background()

	tt := search.NewTranspositionTable(ctx, 1)
	small := search.NewTranspositionTable(ctx, 1)
	assert.Equal(t, tt.Size(), small.Size())

	big := search.NewTranspositionTable(ctx, 64)
	assert.Greater(t, big.Size(), tt.Size())
}

func TestTranspositionTableProbeMiss(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1)

	hash := board.ZobristHash(rand.Uint64())
	_, ok := tt.Probe(hash, 0)
	assert.False(t, ok)
}

func TestTranspositionTableStoreThenProbe(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1)

	hash := board.ZobristHash(rand.Uint64())
	m := board.NewMove(board.E2, board.E4, board.DoublePawnPush)
	tt.Store(hash, 0, 6, search.ExactBound, board.Score(42), m, board.Score(10))

	entry, ok := tt.Probe(hash, 0)
	assert.True(t, ok)
	assert.Equal(t, search.ExactBound, entry.Bound)
	assert.Equal(t, 6, entry.Depth)
	assert.Equal(t, board.Score(42), entry.Score)
	assert.Equal(t, m, entry.Move)
	assert.Equal(t, board.Score(10), entry.StaticEval)
}

func TestTranspositionTableDistinctHashesDoNotCollide(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1)

	a := board.ZobristHash(0x1122334455667788)
	m := board.NewMove(board.A2, board.A4, board.DoublePawnPush)
	tt.Store(a, 0, 4, search.ExactBound, board.Score(100), m, board.Score(0))

	_, ok := tt.Probe(a^0xff00, 0)
	assert.False(t, ok)
}

func TestTranspositionTableMateScoreIsRelativizedToProbingPly(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1)

	hash := board.ZobristHash(rand.Uint64())
	m := board.NewMove(board.D1, board.D8, board.Capture)

	// A mate-in-2-from-here score, stored at ply 3 from the root.
	mateScore := board.MateIn(2)
	tt.Store(hash, 3, 4, search.ExactBound, mateScore, m, board.Score(0))

	// Probed again at the same ply, the score round-trips unchanged.
	entry, ok := tt.Probe(hash, 3)
	assert.True(t, ok)
	assert.Equal(t, mateScore, entry.Score)
}

func TestTranspositionTableUsedTracksOccupancy(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1)
	assert.Zero(t, tt.Used())

	m := board.NewMove(board.G1, board.F3, board.Quiet)
	tt.Store(board.ZobristHash(1), 0, 1, search.ExactBound, board.Score(0), m, board.Score(0))

	assert.Greater(t, tt.Used(), 0.0)
}

func TestBoundString(t *testing.T) {
	assert.Equal(t, "Exact", search.ExactBound.String())
	assert.Equal(t, "Lower", search.LowerBound.String())
	assert.Equal(t, "Upper", search.UpperBound.String())
}
