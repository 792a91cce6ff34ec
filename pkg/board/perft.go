package board

// Perft counts the number of leaf nodes reachable by playing every legal move
// to the given depth, the standard move-generator correctness oracle (see
// https://www.chessprogramming.org/Perft). Used in tests against known node
// counts for the start position and tactically dense positions like
// Kiwipete, where a move-generation bug almost always shows up as a count
// mismatch at some depth.
func (p *Position) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var ml MoveList
	p.LegalMoves(&ml)

	if depth == 1 {
		return uint64(ml.Size())
	}

	var nodes uint64
	for _, m := range ml.Moves() {
		info := p.Make(m)
		nodes += p.Perft(depth - 1)
		p.Unmake(m, info)
	}
	return nodes
}

// Divide breaks down Perft by root move, for diagnosing which move's subtree
// disagrees with a reference perft tool.
func (p *Position) Divide(depth int) map[string]uint64 {
	ret := map[string]uint64{}
	if depth == 0 {
		return ret
	}

	var ml MoveList
	p.LegalMoves(&ml)
	for _, m := range ml.Moves() {
		info := p.Make(m)
		ret[m.String()] = p.Perft(depth - 1)
		p.Unmake(m, info)
	}
	return ret
}
