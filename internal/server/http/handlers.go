package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"xiangqi/internal/notation"
	"xiangqi/internal/server/game"
	"xiangqi/internal/uci"
	"xiangqi/internal/xiangqi"
)

var (
	errNoEngine = errors.New("no engine configured")
	errGameOver = errors.New("game is over")
	errStale    = errors.New("game changed while the engine was thinking")
)

type Options struct {
	Engine  uci.Suggester // nil 时 /api/ai_move 返回 503
	Games   *game.Manager
	Logger  *logrus.Entry
	WebDir  string // 桌面端静态文件，空则不挂载
	Mobile  string // 移动端静态文件，空则用 WebDir
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Games == nil {
		o.Games = game.NewManager()
	}
	if o.Logger == nil {
		o.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return o
}

// Handler serves the JSON API under /api/ and, optionally, the web front-end.
type Handler struct {
	opts  Options
	games *game.Manager
	log   *logrus.Entry
	mux   *http.ServeMux
}

func NewHandler(opts Options) *Handler {
	opts = opts.withDefaults()
	h := &Handler{
		opts:  opts,
		games: opts.Games,
		log:   opts.Logger,
	}
	h.mux = h.routes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("bad json: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, log *logrus.Entry, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("writeJSON failed")
	}
}

// classify 把错误映射成 HTTP 状态码和前端用的 status 字段
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, xiangqi.ErrSelfCheck):
		return http.StatusBadRequest, "in_check"
	case errors.Is(err, xiangqi.ErrIllegalMove):
		return http.StatusBadRequest, "illegal"
	case errors.Is(err, xiangqi.ErrBadMove), errors.Is(err, xiangqi.ErrBadSquare):
		return http.StatusBadRequest, "bad_move"
	case errors.Is(err, notation.ErrInvalidFEN):
		return http.StatusBadRequest, "bad_position"
	case errors.Is(err, xiangqi.ErrNoHistory), errors.Is(err, xiangqi.ErrHalfMoveIndex):
		return http.StatusBadRequest, "no_history"
	case errors.Is(err, game.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errGameOver), errors.Is(err, errStale):
		return http.StatusConflict, "conflict"
	case errors.Is(err, errNoEngine):
		return http.StatusServiceUnavailable, "no_engine"
	case errors.Is(err, uci.ErrEngineClosed), errors.Is(err, uci.ErrNoBestMove),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusBadGateway, "engine_error"
	}
	return http.StatusBadRequest, "bad_request"
}

func (h *Handler) fail(w http.ResponseWriter, log *logrus.Entry, err error) {
	code, status := classify(err)
	entry := log.WithError(err).WithField("status", status)
	if code >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	writeJSON(w, h.log, code, errorResponse{Status: status, Error: err.Error()})
}

func (h *Handler) session(w http.ResponseWriter, id string) (*game.Session, *logrus.Entry, bool) {
	log := h.log.WithField("game_id", id)
	s, err := h.games.Get(id)
	if err != nil {
		h.fail(w, log, err)
		return nil, log, false
	}
	return s, log, true
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.fail(w, h.log, err)
		return
	}

	g := xiangqi.NewGame()
	if req.FEN != "" {
		var err error
		if g, err = notation.NewGameFromFEN(req.FEN); err != nil {
			h.fail(w, h.log, err)
			return
		}
	}
	s := h.games.Add(g)
	var resp StateResponse
	_ = s.Do(func(g *xiangqi.Game) error {
		resp = stateOf(s.ID, g)
		return nil
	})
	h.log.WithFields(logrus.Fields{"game_id": s.ID, "fen": resp.Position}).Info("new game")
	writeJSON(w, h.log, http.StatusOK, resp)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, h.log, err)
		return
	}
	s, _, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	var resp StateResponse
	_ = s.Do(func(g *xiangqi.Game) error {
		resp = stateOf(s.ID, g)
		return nil
	})
	writeJSON(w, h.log, http.StatusOK, resp)
}

func (h *Handler) handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	var req LegalMovesRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, h.log, err)
		return
	}
	s, log, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	sq, err := xiangqi.ParseSquare(req.Square)
	if err != nil {
		h.fail(w, log, err)
		return
	}
	resp := LegalMovesResponse{Square: sq.String(), Moves: []string{}}
	_ = s.Do(func(g *xiangqi.Game) error {
		if moves, ok := g.LegalMovesForSquare(sq); ok {
			resp.Moves = moveTokens(moves)
		}
		return nil
	})
	writeJSON(w, h.log, http.StatusOK, resp)
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, h.log, err)
		return
	}
	s, log, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	mv, err := xiangqi.ParseMove(req.Move)
	if err != nil {
		h.fail(w, log, err)
		return
	}

	var resp PlayResponse
	err = s.Do(func(g *xiangqi.Game) error {
		hm, err := g.TryExecuteMove(mv)
		if err != nil {
			return err
		}
		resp = playResponse(s.ID, g, hm)
		return nil
	})
	if err != nil {
		h.fail(w, log.WithField("move", req.Move), err)
		return
	}
	log.WithFields(logrus.Fields{"move": resp.LastMove, "status": resp.Status}).Info("move played")
	writeJSON(w, h.log, http.StatusOK, resp)
}

func playResponse(id string, g *xiangqi.Game, hm xiangqi.HalfMove) PlayResponse {
	resp := PlayResponse{StateResponse: stateOf(id, g), LastMove: hm.String()}
	if hm.Captured {
		resp.Captured = hm.CapturedKind.String()
	}
	return resp
}

// handleHistory 处理 undo / redo / reset，它们都只移动时间线的游标
func (h *Handler) handleHistory(op string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetRequest
		if err := decode(r, &req); err != nil {
			h.fail(w, h.log, err)
			return
		}
		s, log, ok := h.session(w, req.GameID)
		if !ok {
			return
		}
		var resp StateResponse
		err := s.Do(func(g *xiangqi.Game) error {
			var err error
			switch op {
			case "undo":
				err = g.Undo()
			case "redo":
				err = g.Redo()
			default:
				err = g.ResetToHalfMoveIndex(req.Index)
			}
			if err != nil {
				return err
			}
			resp = stateOf(s.ID, g)
			return nil
		})
		if err != nil {
			h.fail(w, log.WithField("op", op), err)
			return
		}
		log.WithFields(logrus.Fields{"op": op, "index": resp.HalfMoveIndex}).Info("history moved")
		writeJSON(w, h.log, http.StatusOK, resp)
	}
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, h.log, err)
		return
	}
	s, log, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	if h.opts.Engine == nil {
		h.fail(w, log, errNoEngine)
		return
	}

	// 搜索时不持有对局锁；落子前确认对局没有被改动
	var (
		fen   string
		index int
	)
	err := s.Do(func(g *xiangqi.Game) error {
		if g.Status() != xiangqi.Ongoing {
			return errGameOver
		}
		fen, index = notation.EncodeFEN(g), g.HalfMoveIndex()
		return nil
	})
	if err != nil {
		h.fail(w, log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.Timeout)
	defer cancel()
	sug, err := h.opts.Engine.BestMove(ctx, fen)
	if err != nil {
		h.fail(w, log, err)
		return
	}

	resp := AiMoveResponse{
		BestMove:  sug.Move.String(),
		Ponder:    sug.Ponder,
		Score:     sug.Score,
		ScoreUnit: sug.ScoreUnit,
		WinProb:   sug.WinProb,
		Depth:     sug.Depth,
		PV:        sug.PV,
		TimeMs:    sug.TimeUsed.Milliseconds(),
	}
	err = s.Do(func(g *xiangqi.Game) error {
		if g.HalfMoveIndex() != index || notation.EncodeFEN(g) != fen {
			return errStale
		}
		if req.Play {
			if _, err := g.TryExecuteMove(sug.Move); err != nil {
				return err
			}
			resp.Played = true
		}
		resp.State = stateOf(s.ID, g)
		return nil
	})
	if err != nil {
		h.fail(w, log.WithField("move", resp.BestMove), err)
		return
	}
	log.WithFields(logrus.Fields{
		"move":   resp.BestMove,
		"depth":  resp.Depth,
		"score":  resp.Score,
		"played": resp.Played,
	}).Info("engine move")
	writeJSON(w, h.log, http.StatusOK, resp)
}
