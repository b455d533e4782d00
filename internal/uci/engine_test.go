package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"xiangqi/internal/xiangqi"
)

const startFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1"

// fakeEngine answers commands over a pair of pipes the way a UCI engine
// would. reply returns the lines to print and whether to hang up afterwards.
type fakeEngine struct {
	mu    sync.Mutex
	cmds  []string
	done  chan struct{}
	reply func(cmd string) ([]string, bool)
}

func (f *fakeEngine) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.cmds)
}

func (f *fakeEngine) serve(in io.Reader, out io.WriteCloser) {
	defer close(f.done)
	defer out.Close()
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		cmd := sc.Text()
		f.mu.Lock()
		f.cmds = append(f.cmds, cmd)
		f.mu.Unlock()
		if cmd == "quit" {
			// 读完剩下的输入，避免写端阻塞
			go io.Copy(io.Discard, in)
			return
		}
		lines, hangup := f.reply(cmd)
		for _, l := range lines {
			fmt.Fprintln(out, l)
		}
		if hangup {
			go io.Copy(io.Discard, in)
			return
		}
	}
}

func standardReply(cmd string) ([]string, bool) {
	switch {
	case cmd == "uci":
		return []string{"id name fake", "option name UCI_Elo type spin default 2850 min 500 max 2850", "uciok"}, false
	case cmd == "isready":
		return []string{"readyok"}, false
	case len(cmd) > 2 && cmd[:2] == "go":
		return []string{
			"info depth 1 score cp 10 pv h3e3",
			"info string searching",
			"info depth 5 score cp 42 multipv 1 pv b3e3 h10g8",
			"bestmove b3e3 ponder h10g8",
		}, false
	}
	return nil, false
}

func startFake(t *testing.T, reply func(string) ([]string, bool), opts Options) (*Engine, *fakeEngine, *test.Hook) {
	t.Helper()
	cmdR, cmdW := io.Pipe()
	outR, outW := io.Pipe()
	f := &fakeEngine{done: make(chan struct{}), reply: reply}
	go f.serve(cmdR, outW)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	opts.Logger = logrus.NewEntry(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	e, err := Attach(ctx, outR, cmdW, opts)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e, f, hook
}

func TestHandshakeAndBestMove(t *testing.T) {
	e, f, hook := startFake(t, standardReply, Options{MoveTime: 50 * time.Millisecond, Elo: 1500})

	s, err := e.BestMove(context.Background(), startFEN)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if s.Move != xiangqi.NewMove(xiangqi.Sq(2, 3), xiangqi.Sq(5, 3)) || s.Ponder != "h10g8" {
		t.Fatalf("suggestion = %+v", s)
	}
	if s.Depth != 5 || s.Score != 42 || s.ScoreUnit != "cp" || !slices.Equal(s.PV, []string{"b3e3", "h10g8"}) {
		t.Fatalf("info not attached: %+v", s)
	}

	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	<-f.done
	want := []string{
		"uci",
		"setoption name UCI_Variant value xiangqi",
		"setoption name UCI_LimitStrength value true",
		"setoption name UCI_Elo value 1500",
		"isready",
		"ucinewgame",
		"position fen " + startFEN,
		"go movetime 50",
		"quit",
	}
	if got := f.commands(); !slices.Equal(got, want) {
		t.Fatalf("commands = %q\nwant %q", got, want)
	}

	closed := false
	for _, entry := range hook.AllEntries() {
		if entry.Message == "engine closed" {
			closed = true
		}
	}
	if !closed {
		t.Fatalf("close not logged")
	}
}

func TestBestMoveStopsOnDeadline(t *testing.T) {
	reply := func(cmd string) ([]string, bool) {
		switch {
		case len(cmd) > 2 && cmd[:2] == "go":
			return []string{"info depth 3 score cp 5 pv h3e3"}, false
		case cmd == "stop":
			return []string{"bestmove h3e3"}, false
		}
		return standardReply(cmd)
	}
	e, f, _ := startFake(t, reply, Options{MoveTime: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	s, err := e.BestMove(ctx, startFEN)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if s.Move.String() != "h3e3" || s.Depth != 3 {
		t.Fatalf("suggestion = %+v", s)
	}
	if !slices.Contains(f.commands(), "stop") {
		t.Fatalf("stop not sent: %q", f.commands())
	}
	if !slices.Contains(f.commands(), "setoption name UCI_LimitStrength value false") {
		t.Fatalf("strength limit not cleared: %q", f.commands())
	}
}

func TestBestMoveNone(t *testing.T) {
	reply := func(cmd string) ([]string, bool) {
		if len(cmd) > 2 && cmd[:2] == "go" {
			return []string{"bestmove (none)"}, false
		}
		return standardReply(cmd)
	}
	e, _, _ := startFake(t, reply, Options{})
	if _, err := e.BestMove(context.Background(), startFEN); !errors.Is(err, ErrNoBestMove) {
		t.Fatalf("err = %v, want ErrNoBestMove", err)
	}
}

func TestEngineHangsUp(t *testing.T) {
	reply := func(cmd string) ([]string, bool) {
		if len(cmd) > 2 && cmd[:2] == "go" {
			return []string{"info depth 1 score cp 0 pv a1a2"}, true
		}
		return standardReply(cmd)
	}
	e, _, _ := startFake(t, reply, Options{})
	if _, err := e.BestMove(context.Background(), startFEN); !errors.Is(err, ErrEngineClosed) {
		t.Fatalf("err = %v, want ErrEngineClosed", err)
	}
	if _, err := e.BestMove(context.Background(), startFEN); !errors.Is(err, ErrEngineClosed) {
		t.Fatalf("second call err = %v", err)
	}
}

func TestSetLevel(t *testing.T) {
	e, f, _ := startFake(t, standardReply, Options{})
	if err := e.SetLevel(context.Background(), 3); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	if !slices.Contains(f.commands(), "setoption name UCI_Elo value 2200") {
		t.Fatalf("elo not sent: %q", f.commands())
	}
	if err := e.SetLevel(context.Background(), -1); err == nil {
		t.Fatalf("negative level accepted")
	}
	if _, err := e.BestMove(context.Background(), startFEN); err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(f.commands(), "go movetime 2000") {
		t.Fatalf("movetime not updated: %q", f.commands())
	}
}

func TestHandshakeTimeout(t *testing.T) {
	cmdR, cmdW := io.Pipe()
	outR, outW := io.Pipe()
	go io.Copy(io.Discard, cmdR)
	defer outW.Close()

	logger, _ := test.NewNullLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	go func() {
		// 引擎被关闭时结束输出
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		outW.Close()
	}()
	_, err := Attach(ctx, outR, cmdW, Options{Logger: logrus.NewEntry(logger)})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestResolveEnginePath(t *testing.T) {
	if _, err := resolveEnginePath(""); err == nil {
		t.Fatalf("empty path accepted")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "fake-engine")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := resolveEnginePath(bin)
	if err != nil || got != bin {
		t.Fatalf("resolveEnginePath = %q, %v", got, err)
	}
	if _, err := resolveEnginePath(filepath.Join(dir, "missing")); err == nil {
		t.Fatalf("missing engine accepted")
	}
}
