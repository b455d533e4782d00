package mobile

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/uci"
)

// StartServer starts the local HTTP server for the Android wrapper.
// webDir: physical path to the extracted web assets
// enginePath: physical path to the extracted UCI engine binary, may be empty
// level: engine difficulty 0..4
// port: port to listen on, e.g. "2888"
func StartServer(webDir string, enginePath string, level int, port string) {
	log := logrus.WithField("app", "mobile")
	opts := httpserver.Options{Logger: log, WebDir: webDir}

	if enginePath != "" {
		eopts, err := uci.Options{Path: enginePath, Logger: log}.WithLevel(level)
		if err != nil {
			log.WithError(err).Warn("bad level, using default")
			eopts = uci.Options{Path: enginePath, Logger: log}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		eng, err := uci.Start(ctx, eopts)
		cancel()
		if err != nil {
			log.WithError(err).Warn("engine unavailable")
		} else {
			opts.Engine = uci.NewCached(eng)
		}
	}

	srv := httpserver.NewServer("127.0.0.1:"+port, httpserver.NewHandler(opts), log)

	// 放到后台，避免阻塞 Android UI 线程
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("server error")
		}
	}()
}
