package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"xiangqi/internal/xiangqi"
)

const (
	stopGrace  = time.Second     // 发 stop 之后等 bestmove 的时间
	closeGrace = 2 * time.Second // 发 quit 之后等进程退出的时间
	lineBuffer = 1024
)

// Engine is one running UCI engine. Requests are serialized; BestMove may be
// called from several goroutines.
type Engine struct {
	opts Options
	log  *logrus.Entry

	cmd    *exec.Cmd // 通过管道或 TCP 连接时为 nil
	stderr io.Closer
	r      io.Reader
	w      io.WriteCloser
	wmu    sync.Mutex

	lines chan string
	quit  chan struct{}
	done  chan struct{}
	g     *errgroup.Group

	mu        sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// Start launches the engine binary and completes the UCI handshake. ctx
// bounds the handshake only; the process lives until Close.
func Start(ctx context.Context, opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	path, err := resolveEnginePath(opts.Path)
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(path, opts.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("uci: stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("uci: stdout: %w", err)
	}
	log := opts.Logger.WithField("engine", filepath.Base(path))
	stderr := log.WriterLevel(logrus.WarnLevel)
	cmd.Stderr = stderr
	if err := cmd.Start(); err != nil {
		_ = stderr.Close()
		return nil, fmt.Errorf("uci: start %s: %w", path, err)
	}
	log.WithField("pid", cmd.Process.Pid).Info("engine started")

	e := newEngine(stdout, stdin, cmd, opts, log)
	e.stderr = stderr
	if err := e.handshake(ctx); err != nil {
		_ = e.Close()
		return nil, err
	}
	return e, nil
}

// Dial connects to an engine served over TCP, one session per connection.
func Dial(ctx context.Context, addr string, opts Options) (*Engine, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("uci: dial %s: %w", addr, err)
	}
	opts = opts.withDefaults()
	return attach(ctx, conn, conn, opts, opts.Logger.WithField("engine", addr))
}

// Attach speaks UCI over an already connected reader and writer. Closing the
// Engine closes w; the peer is expected to close r in response.
func Attach(ctx context.Context, r io.Reader, w io.WriteCloser, opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	return attach(ctx, r, w, opts, opts.Logger.WithField("engine", "pipe"))
}

func attach(ctx context.Context, r io.Reader, w io.WriteCloser, opts Options, log *logrus.Entry) (*Engine, error) {
	e := newEngine(r, w, nil, opts, log)
	if err := e.handshake(ctx); err != nil {
		_ = e.Close()
		return nil, err
	}
	return e, nil
}

func newEngine(r io.Reader, w io.WriteCloser, cmd *exec.Cmd, opts Options, log *logrus.Entry) *Engine {
	e := &Engine{
		opts:  opts,
		log:   log,
		cmd:   cmd,
		r:     r,
		w:     w,
		lines: make(chan string, lineBuffer),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	g, gctx := errgroup.WithContext(context.Background())
	e.g = g
	g.Go(func() error {
		defer close(e.done)
		defer close(e.lines)
		return e.readLoop(r)
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			e.kill()
			<-e.done
		case <-e.done:
		}
		return e.wait()
	})
	return e
}

func (e *Engine) readLoop(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		e.log.Debugf("< %s", line)
		select {
		case e.lines <- line:
		case <-e.quit:
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("uci: read: %w", err)
	}
	return nil
}

func (e *Engine) kill() {
	if e.cmd != nil && e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
		return
	}
	e.wmu.Lock()
	_ = e.w.Close()
	e.wmu.Unlock()
	if c, ok := e.r.(io.Closer); ok {
		_ = c.Close()
	}
}

func (e *Engine) wait() error {
	if e.cmd == nil {
		return nil
	}
	return e.cmd.Wait()
}

func (e *Engine) send(cmds ...string) error {
	e.wmu.Lock()
	defer e.wmu.Unlock()
	for _, c := range cmds {
		e.log.Debugf("> %s", c)
		if _, err := io.WriteString(e.w, c+"\n"); err != nil {
			return fmt.Errorf("%w: write %q: %w", ErrEngineClosed, c, err)
		}
	}
	return nil
}

// await reads lines until one starts with token. Other lines go to onLine.
func (e *Engine) await(ctx context.Context, token string, onLine func(string)) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case line, ok := <-e.lines:
			if !ok {
				return "", ErrEngineClosed
			}
			if first, _, _ := strings.Cut(line, " "); first == token {
				return line, nil
			}
			if onLine != nil {
				onLine(line)
			}
		}
	}
}

// drain drops output left over from an earlier, abandoned request.
func (e *Engine) drain() {
	for {
		select {
		case line, ok := <-e.lines:
			if !ok {
				return
			}
			e.log.Debugf("drop %s", line)
		default:
			return
		}
	}
}

func (e *Engine) handshake(ctx context.Context) error {
	if err := e.send("uci"); err != nil {
		return err
	}
	if _, err := e.await(ctx, "uciok", nil); err != nil {
		return fmt.Errorf("uci: waiting for uciok: %w", err)
	}
	cmds := []string{"setoption name UCI_Variant value " + e.opts.Variant}
	cmds = append(cmds, e.strengthOptions(e.opts.Elo)...)
	if err := e.send(cmds...); err != nil {
		return err
	}
	return e.ready(ctx)
}

func (e *Engine) strengthOptions(elo int) []string {
	if elo <= 0 {
		return []string{"setoption name UCI_LimitStrength value false"}
	}
	return []string{
		"setoption name UCI_LimitStrength value true",
		fmt.Sprintf("setoption name UCI_Elo value %d", elo),
	}
}

func (e *Engine) ready(ctx context.Context) error {
	if err := e.send("isready"); err != nil {
		return err
	}
	if _, err := e.await(ctx, "readyok", nil); err != nil {
		return fmt.Errorf("uci: waiting for readyok: %w", err)
	}
	return nil
}

// SetLevel switches to Levels[i] for the following searches.
func (e *Engine) SetLevel(ctx context.Context, i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	opts, err := e.opts.WithLevel(i)
	if err != nil {
		return err
	}
	if err := e.send(e.strengthOptions(opts.Elo)...); err != nil {
		return err
	}
	if err := e.ready(ctx); err != nil {
		return err
	}
	e.opts = opts
	e.log.WithFields(logrus.Fields{"level": i, "elo": opts.Elo, "movetime": opts.MoveTime}).Info("engine level changed")
	return nil
}

// BestMove searches fen for the configured move time. When ctx ends first the
// engine is told to stop and its answer so far is returned.
func (e *Engine) BestMove(ctx context.Context, fen string) (Suggestion, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	select {
	case <-e.done:
		return Suggestion{}, ErrEngineClosed
	default:
	}
	e.drain()

	start := time.Now()
	if err := e.send(
		"ucinewgame",
		"position fen "+fen,
		fmt.Sprintf("go movetime %d", e.opts.MoveTime.Milliseconds()),
	); err != nil {
		return Suggestion{}, err
	}

	var infos []info
	collect := func(line string) {
		if in, ok := parseInfo(line); ok {
			infos = append(infos, in)
		}
	}
	line, err := e.await(ctx, "bestmove", collect)
	if err != nil && ctx.Err() != nil {
		e.log.WithError(ctx.Err()).Debug("search interrupted, sending stop")
		if serr := e.send("stop"); serr != nil {
			return Suggestion{}, serr
		}
		grace, cancel := context.WithTimeout(context.Background(), stopGrace)
		line, err = e.await(grace, "bestmove", collect)
		cancel()
		if err != nil {
			return Suggestion{}, fmt.Errorf("uci: no bestmove after stop: %w", ctx.Err())
		}
	}
	if err != nil {
		return Suggestion{}, err
	}

	best, ponder, _ := parseBestMove(line)
	if best == "(none)" || best == "0000" {
		return Suggestion{}, ErrNoBestMove
	}
	mv, err := xiangqi.ParseMove(best)
	if err != nil {
		return Suggestion{}, fmt.Errorf("uci: bestmove %q: %w", best, err)
	}

	s := Suggestion{
		Move:     mv,
		Ponder:   ponder,
		PV:       []string{best},
		TimeUsed: time.Since(start),
	}
	if sel := pickInfo(infos, best, ponder); sel != nil {
		s.Score, s.ScoreUnit, s.Depth, s.PV = sel.score, sel.scoreUnit, sel.depth, sel.pv
	}
	s.WinProb = winProb(s.ScoreUnit, s.Score)
	e.log.WithFields(logrus.Fields{
		"move":  best,
		"depth": s.Depth,
		"score": s.Score,
		"took":  s.TimeUsed,
	}).Debug("bestmove")
	return s, nil
}

// Close sends quit and waits for the engine to go away, killing it if it
// does not exit in time.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		_ = e.send("quit")
		e.wmu.Lock()
		_ = e.w.Close()
		e.wmu.Unlock()
		close(e.quit)

		select {
		case <-e.done:
		case <-time.After(closeGrace):
			e.log.Warn("engine did not exit, killing it")
			e.kill()
		}
		e.closeErr = e.g.Wait()
		if e.stderr != nil {
			_ = e.stderr.Close()
		}
		e.log.Info("engine closed")
	})
	return e.closeErr
}
