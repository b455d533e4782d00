package httpserver

import (
	stdlog "log"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

func (h *Handler) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/new_game", h.handleNewGame)
	mux.HandleFunc("POST /api/state", h.handleState)
	mux.HandleFunc("POST /api/legal_moves", h.handleLegalMoves)
	mux.HandleFunc("POST /api/play", h.handlePlay)
	mux.HandleFunc("POST /api/undo", h.handleHistory("undo"))
	mux.HandleFunc("POST /api/redo", h.handleHistory("redo"))
	mux.HandleFunc("POST /api/reset", h.handleHistory("reset"))
	mux.HandleFunc("POST /api/ai_move", h.handleAiMove)

	if h.opts.WebDir != "" {
		registerStaticRoutes(mux, h.opts.WebDir, h.opts.Mobile)
	}
	return mux
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// LogRequests wraps next with one debug line per request.
func LogRequests(log *logrus.Entry, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"code":   rec.code,
			"took":   time.Since(start),
		}).Debug("http request")
	})
}

// NewServer returns an http.Server for h with conservative timeouts.
func NewServer(addr string, h http.Handler, log *logrus.Entry) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           LogRequests(log, h),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ErrorLog:          stdlog.New(log.WriterLevel(logrus.ErrorLevel), "", 0),
	}
}
