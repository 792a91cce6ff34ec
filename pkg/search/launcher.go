package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"

	"github.com/belfry/corvid/pkg/board"
)

// Options hold the dynamic limits for a single search call, per spec.md §6's
// external API. Grounded on herohde-morlock/pkg/search/searchctl.Options.
type Options struct {
	// DepthLimit, if set, caps the search at the given ply depth.
	DepthLimit lang.Optional[int]
	// TimeControl, if set, derives soft/hard deadlines from remaining clock time.
	TimeControl lang.Optional[TimeControl]
}

func (o Options) String() string {
	var parts []string
	if v, ok := o.DepthLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		parts = append(parts, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(parts, ", "))
}

// Launcher manages iterative-deepening searches against a SearchState,
// grounded on herohde-morlock/pkg/search/searchctl.Launcher.
type Launcher interface {
	// Launch starts a new search from b (an exclusive, already-forked board)
	// and returns a Handle to manage it plus a channel of per-iteration Info
	// records. The channel is closed once the search is exhausted or halted.
	Launch(ctx context.Context, b *board.Board, st *SearchState, opt Options) (Handle, <-chan Info)
}

// Handle lets a caller halt an in-flight search and recover its last
// completed iteration.
type Handle interface {
	// Halt stops the search, if running, and returns the last completed
	// iteration's Info. Idempotent and safe to call before the search has
	// produced its first iteration (blocks until it has).
	Halt() Info
}

// Iterative is the engine's default Launcher: classic iterative deepening
// with aspiration windows, re-searching a wider window on fail-high/low.
// Grounded on herohde-morlock/pkg/search/searchctl/iterative.go.
type Iterative struct{}

func (Iterative) Launch(ctx context.Context, b *board.Board, st *SearchState, opt Options) (Handle, <-chan Info) {
	out := make(chan Info, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, st, b, opt, out)
	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	info Info
	mu   sync.Mutex
}

func (h *handle) process(ctx context.Context, st *SearchState, b *board.Board, opt Options, out chan Info) {
	defer h.init.Close()
	defer close(out)

	st.Reset()
	w := newWorker(st, b)

	soft, useSoft := enforceTimeControl(ctx, h, opt.TimeControl, b.Turn())

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	st.TT.NewSearch()

	prevScore := board.Score(0)
	depth := 1
	start := time.Now()
	for !h.quit.IsClosed() {
		alpha, beta := board.MinScore, board.MaxScore
		if depth >= st.Params.AspirationMinDepth {
			alpha = clampScore(prevScore - st.Params.AspirationWindow)
			beta = clampScore(prevScore + st.Params.AspirationWindow)
		}

		var score board.Score
		var move board.Move
		for {
			score, move = w.rootSearch(wctx, depth, alpha, beta)
			if w.checkStop(wctx) || h.quit.IsClosed() {
				return
			}
			if score <= alpha {
				alpha = board.MinScore
				continue // fail low: re-search with the window opened downward
			}
			if score >= beta {
				beta = board.MaxScore
				continue // fail high: re-search with the window opened upward
			}
			break
		}
		if move == board.NoMove {
			return // no legal move: checkmate or stalemate at the root
		}

		pv := extractPV(b.Position(), st.TT, depth)
		if len(pv) == 0 || pv[0] != move {
			pv = append([]board.Move{move}, pv...)
		}

		elapsed := time.Since(start)
		info := Info{
			Depth:    depth,
			SelDepth: w.selDepth,
			Score:    score,
			Nodes:    w.nodes,
			NPS:      nps(w.nodes, elapsed),
			HashFull: int(st.TT.Used() * 1000),
			Elapsed:  elapsed,
			PV:       pv,
		}

		logw.Debugf(ctx, "searched %v: %v", b.Position(), info)
		st.Sink.Notify(info)

		h.mu.Lock()
		h.info = info
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- info

		h.init.Close()
		prevScore = score

		if limit, ok := opt.DepthLimit.V(); ok && depth >= limit {
			return // halt: reached the requested depth
		}
		if md, ok := score.MateDistance(); ok && md <= depth {
			return // halt: forced mate found within full-width search
		}
		if useSoft && soft < time.Since(start) {
			return // halt: exceeded the soft time budget, do not start a deeper iteration
		}
		depth++
		if depth >= MaxPly {
			return
		}
	}
}

func (h *handle) Halt() Info {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.info
}

// enforceTimeControl arms the hard deadline (via time.AfterFunc calling
// Halt) and returns the soft deadline, if a TimeControl was requested.
// Grounded on herohde-morlock/pkg/search/searchctl.EnforceTimeControl.
func enforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], turn board.Color) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(turn)
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "time control limits for %v: [%v; %v]", c, soft, hard)
	return soft, true
}

func clampScore(s board.Score) board.Score {
	if s < board.MinScore {
		return board.MinScore
	}
	if s > board.MaxScore {
		return board.MaxScore
	}
	return s
}

func nps(nodes uint64, elapsed time.Duration) uint64 {
	if elapsed <= 0 {
		return 0
	}
	return uint64(float64(nodes) / elapsed.Seconds())
}

// FindBestMove runs a synchronous search to maxDepth (or until stop is
// closed) and returns the best move found, per spec.md §6's
// find_best_move(board, state, max_depth, stop_flag) operation.
func FindBestMove(ctx context.Context, b *board.Board, st *SearchState, maxDepth int, stop <-chan struct{}) (board.Move, bool) {
	opt := Options{}
	if maxDepth > 0 {
		opt.DepthLimit = lang.Some(maxDepth)
	}
	return launchAndWait(ctx, b, st, opt, stop)
}

// FindBestMoveWithTime runs a synchronous search bounded by tc's soft and
// hard deadlines; no depth cap is applied, per spec.md §6's
// find_best_move_with_time(board, state, limits) operation.
func FindBestMoveWithTime(ctx context.Context, b *board.Board, st *SearchState, tc TimeControl) (board.Move, bool) {
	opt := Options{TimeControl: lang.Some(tc)}
	return launchAndWait(ctx, b, st, opt, nil)
}

func launchAndWait(ctx context.Context, b *board.Board, st *SearchState, opt Options, stop <-chan struct{}) (board.Move, bool) {
	h, out := Iterative{}.Launch(ctx, b, st, opt)

	if stop != nil {
		go func() {
			<-stop
			h.Halt()
		}()
	}

	var last Info
	for info := range out {
		last = info
	}
	if len(last.PV) == 0 {
		return board.NoMove, false
	}
	return last.PV[0], true
}
