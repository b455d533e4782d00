package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/uci"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 没有图形界面时会失败，忽略
}

func main() {
	addr := flag.String("addr", ":2888", "listen address")
	webDir := flag.String("web", "./web", "directory with the desktop front-end, empty to disable")
	mobileDir := flag.String("web-mobile", "", "directory with the phone front-end (default: -web)")
	enginePath := flag.String("engine", "fairy-stockfish", "UCI engine binary, empty to disable /api/ai_move")
	engineAddr := flag.String("engine-addr", "", "host:port of a UCI engine served over TCP (overrides -engine)")
	level := flag.Int("level", 3, "engine difficulty 0..4")
	idle := flag.Duration("idle", 2*time.Hour, "drop games untouched for this long")
	noBrowser := flag.Bool("no-browser", false, "do not open a browser window")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	log := logrus.WithField("app", "xiangqi-local")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := httpserver.Options{
		Games:  game.NewManager(),
		Logger: log,
		WebDir: *webDir,
		Mobile: *mobileDir,
	}

	if eng := startEngine(ctx, log, *enginePath, *engineAddr, *level); eng != nil {
		defer eng.Close()
		opts.Engine = uci.NewCached(eng)
	}

	srv := httpserver.NewServer(*addr, httpserver.NewHandler(opts), log)

	go pruneLoop(ctx, log, opts.Games, *idle)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithFields(logrus.Fields{"addr": *addr, "web": *webDir}).Info("listening")
	if !*noBrowser {
		// 稍等服务器起来再开浏览器
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + *addr)
		}()
	}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("bye")
}

func startEngine(ctx context.Context, log *logrus.Entry, path, addr string, level int) *uci.Engine {
	opts, err := uci.Options{Path: path, Logger: log}.WithLevel(level)
	if err != nil {
		log.WithError(err).Fatal("bad -level")
	}

	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var eng *uci.Engine
	switch {
	case addr != "":
		eng, err = uci.Dial(startCtx, addr, opts)
	case path != "":
		eng, err = uci.Start(startCtx, opts)
	default:
		log.Info("no engine configured, /api/ai_move disabled")
		return nil
	}
	if err != nil {
		log.WithError(err).Warn("engine unavailable, /api/ai_move disabled")
		return nil
	}
	return eng
}

func pruneLoop(ctx context.Context, log *logrus.Entry, games *game.Manager, idle time.Duration) {
	if idle <= 0 {
		return
	}
	t := time.NewTicker(idle / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := games.Prune(now.Add(-idle)); n > 0 {
				log.WithFields(logrus.Fields{"dropped": n, "left": games.Len()}).Info("pruned idle games")
			}
		}
	}
}
