package eval

import (
	"go.uber.org/atomic"

	"github.com/belfry/corvid/pkg/board"
)

// PawnHash folds pos's pawn placement into a Zobrist-style key, ignoring
// every other feature of the position (turn, castling, non-pawn pieces).
// Pawn structure is expensive to score and changes rarely relative to the
// rest of the position, so it is cached separately from the main search TT.
func PawnHash(pos *board.Position) board.ZobristHash {
	var h board.ZobristHash
	for c := board.White; c < board.NumColors; c++ {
		bb := pos.PieceBB(c, board.Pawn)
		for bb != 0 {
			sq := bb.LSB()
			bb = bb.Clear(sq)
			h ^= board.PieceKey(c, board.Pawn, sq)
		}
	}
	return h
}

// pawnBucketSize is the number of slots per bucket, used for collision
// resolution the way the main transposition table buckets probes.
const pawnBucketSize = 2

// pawnSlot is one lockless cache line: key_xor stores hash^data so a reader
// racing a writer either sees a matching pair or detects the torn read and
// misses, never a corrupted hit. Grounded on original_source/src/pawn_hash.rs.
type pawnSlot struct {
	keyXor atomic.Uint64
	data   atomic.Uint64
}

func (s *pawnSlot) isEmpty() bool {
	return s.data.Load() == 0
}

func (s *pawnSlot) store(hash board.ZobristHash, packed uint64) {
	s.data.Store(packed)
	s.keyXor.Store(uint64(hash) ^ packed)
}

func (s *pawnSlot) probe(hash board.ZobristHash) (mg, eg int32, ok bool) {
	data := s.data.Load()
	if data == 0 || s.keyXor.Load()^data != uint64(hash) {
		return 0, 0, false
	}
	return int32(uint32(data)), int32(uint32(data >> 32)), true
}

type pawnBucket struct {
	slots [pawnBucketSize]pawnSlot
}

// PawnHashTable is a lockless, fixed-size cache of pawn-structure evaluation
// (mg/eg score pair) indexed by PawnHash. Safe for concurrent probe/store
// from multiple search workers without locking.
type PawnHashTable struct {
	buckets []pawnBucket
	mask    uint64
}

// NewPawnHashTable allocates a table sized to approximately sizeKB
// kilobytes, rounded down to a power-of-two bucket count.
func NewPawnHashTable(sizeKB int) *PawnHashTable {
	const bucketBytes = pawnBucketSize * 16 // 2 * (uint64 + uint64)
	count := (sizeKB * 1024) / bucketBytes
	if count < 1 {
		count = 1
	}
	if p := nextPowerOfTwo(count); p > count {
		count = p / 2
	}

	return &PawnHashTable{
		buckets: make([]pawnBucket, count),
		mask:    uint64(count - 1),
	}
}

func (t *PawnHashTable) index(hash board.ZobristHash) uint64 {
	return uint64(hash) & t.mask
}

// Probe returns the cached mg/eg score pair for hash, if present.
func (t *PawnHashTable) Probe(hash board.ZobristHash) (mg, eg int32, ok bool) {
	bucket := &t.buckets[t.index(hash)]
	for i := range bucket.slots {
		if mg, eg, ok := bucket.slots[i].probe(hash); ok {
			return mg, eg, true
		}
	}
	return 0, 0, false
}

// Store caches the mg/eg score pair for hash, replacing an empty or
// matching slot first, falling back to always-replace on slot 0.
func (t *PawnHashTable) Store(hash board.ZobristHash, mg, eg int32) {
	packed := uint64(uint32(mg)) | uint64(uint32(eg))<<32
	bucket := &t.buckets[t.index(hash)]

	for i := range bucket.slots {
		if _, _, ok := bucket.slots[i].probe(hash); ok || bucket.slots[i].isEmpty() {
			bucket.slots[i].store(hash, packed)
			return
		}
	}
	bucket.slots[0].store(hash, packed)
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
