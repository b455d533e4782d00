package httpserver

import (
	"xiangqi/internal/notation"
	"xiangqi/internal/xiangqi"
)

// NewGame 请求：fen 为空时从开局开始
type NewGameRequest struct {
	FEN string `json:"fen,omitempty"`
}

// 只带 game_id 的请求：state / undo / redo
type GameRequest struct {
	GameID string `json:"game_id"`
}

// LegalMoves 请求：前端点中一个格子时用来高亮
type LegalMovesRequest struct {
	GameID string `json:"game_id"`
	Square string `json:"square"` // "b3"
}

// Play 请求，move 用坐标串 "b3e3"
type PlayRequest struct {
	GameID string `json:"game_id"`
	Move   string `json:"move"`
}

type ResetRequest struct {
	GameID string `json:"game_id"`
	Index  int    `json:"index"` // -1 = 开局
}

// AiMove 请求；play 为 true 时直接把引擎的着法走到棋盘上
type AiMoveRequest struct {
	GameID string `json:"game_id"`
	Play   bool   `json:"play"`
}

// 大多数接口都返回完整的局面
type StateResponse struct {
	GameID            string   `json:"game_id"`
	Position          string   `json:"position"` // FEN
	Board             string   `json:"board"`    // 文本棋盘，rank 10 在上
	ToMove            string   `json:"to_move"`  // "red" / "black"
	InCheck           bool     `json:"in_check"`
	LegalMoves        []string `json:"legal_moves"` // 不会送将的全部着法
	Moves             []string `json:"moves"`       // 已走的着法
	HalfMoveIndex     int      `json:"half_move_index"`
	RecordedHalfMoves int      `json:"recorded_half_moves"`
	Repetitions       int      `json:"repetitions"`
	Status            string   `json:"status"` // "ongoing" / "checkmate" / "stalemate"
	Winner            string   `json:"winner,omitempty"`
}

type LegalMovesResponse struct {
	Square string   `json:"square"`
	Moves  []string `json:"moves"` // 包括会送将的着法，走的时候才拒绝
}

type PlayResponse struct {
	StateResponse
	LastMove string `json:"last_move"`          // "b1b10#"
	Captured string `json:"captured,omitempty"` // 被吃的棋子种类
}

type AiMoveResponse struct {
	BestMove  string   `json:"best_move"`
	Ponder    string   `json:"ponder,omitempty"`
	Score     int      `json:"score"`
	ScoreUnit string   `json:"score_unit,omitempty"`
	WinProb   float32  `json:"win_prob"` // 走子方胜率
	Depth     int      `json:"depth"`
	PV        []string `json:"pv,omitempty"`
	TimeMs    int64    `json:"time_ms"`
	Played    bool     `json:"played"`

	State StateResponse `json:"state"`
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func moveTokens(ms []xiangqi.Move) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.String()
	}
	return out
}

func stateOf(id string, g *xiangqi.Game) StateResponse {
	resp := StateResponse{
		GameID:            id,
		Position:          notation.EncodeFEN(g),
		Board:             g.Board().String(),
		ToMove:            g.SideToMove().String(),
		InCheck:           g.InCheck(),
		LegalMoves:        moveTokens(g.SafeMoves()),
		Moves:             notation.MoveList(g),
		HalfMoveIndex:     g.HalfMoveIndex(),
		RecordedHalfMoves: g.RecordedHalfMoves(),
		Repetitions:       g.Repetitions(),
		Status:            g.Status().String(),
	}
	if w := g.Winner(); w != xiangqi.NoSide {
		resp.Winner = w.String()
	}
	return resp
}
