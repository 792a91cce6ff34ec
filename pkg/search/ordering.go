package search

import "github.com/belfry/corvid/pkg/board"

// Move ordering priorities, per spec.md §4.J. Higher sorts first via
// board.MoveList's incremental best-first Next().
const (
	hashMovePriority    board.MovePriority = 1_000_000
	counterMovePriority board.MovePriority = 50_000
	killerPriority      board.MovePriority = 40_000
	captureBase         board.MovePriority = 10_000
	promotionPriority   board.MovePriority = 9_000
)

// KillerTable remembers the two most recent non-capture beta-cutoff moves at
// each ply, on the theory that a quiet move that cut off once nearby is
// likely to cut off again in a sibling position at the same depth.
type KillerTable struct {
	moves [MaxPly][2]board.Move
}

// Add records m as a killer at ply, shifting the existing primary killer
// into the secondary slot. A move already recorded is not duplicated.
func (k *KillerTable) Add(ply int, m board.Move) {
	if ply >= MaxPly {
		return
	}
	if k.moves[ply][0] == m {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

// Contains reports whether m is a killer move at ply.
func (k *KillerTable) Contains(ply int, m board.Move) bool {
	if ply >= MaxPly {
		return false
	}
	return k.moves[ply][0] == m || k.moves[ply][1] == m
}

// HistoryTable tallies depth^2 for quiet moves that caused a beta cutoff,
// indexed by from/to square regardless of position, per spec.md §4.J.
type HistoryTable struct {
	score [board.NumSquares][board.NumSquares]int32
}

func (h *HistoryTable) Add(m board.Move, depth int) {
	bonus := int32(depth * depth)
	h.score[m.From()][m.To()] += bonus
	const cap = 1 << 14
	if h.score[m.From()][m.To()] > cap {
		for f := board.ZeroSquare; f < board.NumSquares; f++ {
			for t := board.ZeroSquare; t < board.NumSquares; t++ {
				h.score[f][t] /= 2
			}
		}
	}
}

func (h *HistoryTable) Priority(m board.Move) board.MovePriority {
	return board.MovePriority(h.score[m.From()][m.To()] / 16)
}

// CounterMoveTable stores the reply that most recently cut off after a given
// opponent move, indexed by that move's from/to squares.
type CounterMoveTable struct {
	reply [board.NumSquares][board.NumSquares]board.Move
}

func (c *CounterMoveTable) Set(prev, reply board.Move) {
	if prev == board.NoMove {
		return
	}
	c.reply[prev.From()][prev.To()] = reply
}

func (c *CounterMoveTable) Get(prev board.Move) board.Move {
	if prev == board.NoMove {
		return board.NoMove
	}
	return c.reply[prev.From()][prev.To()]
}

// scorer bundles the ordering context for one node's move-priority function:
// the TT move, this ply's killers, the counter-reply to the opponent's last
// move, and the running history table.
type scorer struct {
	pos      *board.Position
	ttMove   board.Move
	ply      int
	counter  board.Move
	killers  *KillerTable
	history  *HistoryTable
}

// priority implements board.MovePriorityFn, scoring moves per spec.md §4.J:
// hash move, counter move, killers, MVV-LVA captures, promotions, history.
func (s *scorer) priority(m board.Move) board.MovePriority {
	if m == s.ttMove {
		return hashMovePriority
	}
	if m.IsCapture() {
		return captureBase + mvvlva(s.pos, m)
	}
	if m.IsPromotion() {
		return promotionPriority
	}
	if m == s.counter {
		return counterMovePriority
	}
	if s.killers.Contains(s.ply, m) {
		return killerPriority
	}
	return s.history.Priority(m)
}

// mvvlva scores a capture by Most Valuable Victim minus Least Valuable
// Attacker, so a pawn taking a queen outranks a queen taking a pawn.
func mvvlva(pos *board.Position, m board.Move) board.MovePriority {
	_, attacker, _ := pos.Square(m.From())

	victim := board.Pawn
	if !m.IsEnPassant() {
		if _, v, ok := pos.Square(m.To()); ok {
			victim = v
		}
	}
	return board.MovePriority(int32(victim.Value())*10 - int32(attacker.Value()))
}

// tacticalPriority orders quiescence's tactical-only frontier by MVV-LVA
// alone: there are no quiet moves to rank against killers/history there.
func tacticalPriority(pos *board.Position) board.MovePriorityFn {
	return func(m board.Move) board.MovePriority {
		if m.IsPromotion() {
			return promotionPriority
		}
		return mvvlva(pos, m)
	}
}
