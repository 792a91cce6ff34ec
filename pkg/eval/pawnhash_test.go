package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/belfry/corvid/pkg/board"
	"github.com/belfry/corvid/pkg/eval"
)

func TestPawnHashTableStoreAndProbe(t *testing.T) {
	tbl := eval.NewPawnHashTable(64)

	var hash board.ZobristHash = 0x1122334455667788
	_, _, ok := tbl.Probe(hash)
	assert.False(t, ok)

	tbl.Store(hash, 123, -45)

	mg, eg, ok := tbl.Probe(hash)
	assert.True(t, ok)
	assert.EqualValues(t, 123, mg)
	assert.EqualValues(t, -45, eg)
}

func TestPawnHashTableMissOnDifferentHash(t *testing.T) {
	tbl := eval.NewPawnHashTable(64)

	tbl.Store(0xabc, 10, 20)
	_, _, ok := tbl.Probe(0xdef)
	assert.False(t, ok)
}
