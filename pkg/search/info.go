package search

import (
	"fmt"
	"time"

	"github.com/belfry/corvid/pkg/board"
)

// Info is a structured per-iteration search progress record, consumed by the
// state's Sink. Formatting it to UCI "info ..." text is the external UCI
// layer's job (spec.md §1's Non-goals), not this package's.
type Info struct {
	Depth    int
	SelDepth int
	Score    board.Score
	Nodes    uint64
	NPS      uint64
	HashFull int // per-mille, [0;1000]
	Elapsed  time.Duration
	PV       []board.Move
}

func (i Info) String() string {
	return fmt.Sprintf("depth=%v seldepth=%v score=%v nodes=%v nps=%v hashfull=%v%% time=%v pv=%v",
		i.Depth, i.SelDepth, i.Score, i.Nodes, i.NPS, i.HashFull/10, i.Elapsed, printMoves(i.PV))
}

func printMoves(moves []board.Move) string {
	if len(moves) == 0 {
		return "-"
	}
	s := ""
	for i, m := range moves {
		if i > 0 {
			s += " "
		}
		s += m.String()
	}
	return s
}

// Sink receives Info records as the search progresses, one per completed
// iteration (and, if a caller wants finer granularity, more often). The UCI
// layer implements Sink to format and emit "info ..." lines; tests can use a
// slice-collecting Sink to assert on search behavior.
type Sink interface {
	Notify(Info)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(Info)

func (f SinkFunc) Notify(i Info) { f(i) }

// NoopSink discards every Info record.
type NoopSink struct{}

func (NoopSink) Notify(Info) {}
