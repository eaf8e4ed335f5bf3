package httpserver

import (
	"strconv"

	"checkers/internal/checkers"
)

type NewGameRequest struct {
	Side int `json:"side"` // 0 picks the server default
}

type SquareRequest struct {
	Square string `json:"square"` // e.g. "C3"
}

type CountsDTO struct {
	Dark  int `json:"dark"`
	Light int `json:"light"`
}

// StateResponse is the full view of a game. Board and Highlights are
// row-major from the top rank; Board holds save-file occupant codes.
type StateResponse struct {
	GameID       string    `json:"game_id"`
	Side         int       `json:"side"`
	Position     string    `json:"position"`
	Turn         string    `json:"turn"`
	Phase        string    `json:"phase"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason,omitempty"`
	Winner       string    `json:"winner,omitempty"`
	Counts       CountsDTO `json:"counts"`
	Board        [][]int   `json:"board"`
	Highlights   [][]int   `json:"highlights"`
	Selected     string    `json:"selected,omitempty"`
	Destinations []string  `json:"destinations"`
	Movable      []string  `json:"movable"`
	MustCapture  bool      `json:"must_capture"`
	Hash         string    `json:"hash"`
	Version      uint64    `json:"version"`
}

type HopDTO struct {
	Landing string `json:"landing"`
	Victim  string `json:"victim,omitempty"`
}

type MoveResultDTO struct {
	Mover        string   `json:"mover"`
	From         string   `json:"from"`
	To           string   `json:"to"`
	Hops         []HopDTO `json:"hops"`
	Partial      bool     `json:"partial"`
	Captured     int      `json:"captured"`
	Promoted     bool     `json:"promoted"`
	MustContinue bool     `json:"must_continue"`
	TurnOver     bool     `json:"turn_over"`
}

type MoveResponse struct {
	Result MoveResultDTO `json:"result"`
	State  StateResponse `json:"state"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func squareNames(squares []int, side int) []string {
	out := make([]string, len(squares))
	for i, sq := range squares {
		out[i] = checkers.SquareName(sq, side)
	}
	return out
}

// stateToDTO must run with the game locked.
func stateToDTO(id string, version uint64, g *checkers.Game) StateResponse {
	b := g.Board()
	side := b.Side()
	st := g.Status()
	resp := StateResponse{
		GameID:       id,
		Side:         side,
		Position:     g.Position().Encode(),
		Turn:         g.Turn().String(),
		Phase:        g.Phase().String(),
		Status:       st.Outcome.String(),
		Reason:       st.Reason,
		Counts:       CountsDTO{Dark: g.Count(checkers.Dark), Light: g.Count(checkers.Light)},
		Board:        make([][]int, side),
		Highlights:   make([][]int, side),
		Destinations: squareNames(g.Destinations(), side),
		Movable:      squareNames(g.MovablePieces(), side),
		MustCapture:  g.MustCaptureNow(),
		Hash:         strconv.FormatUint(g.Hash(), 16),
		Version:      version,
	}
	if st.Over() {
		resp.Winner = st.Winner().String()
	}
	if sel := g.SelectedSquare(); sel >= 0 {
		resp.Selected = checkers.SquareName(sel, side)
	}
	for _, v := range g.Squares() {
		row, col := v.Index/side, v.Index%side
		if col == 0 {
			resp.Board[row] = make([]int, side)
			resp.Highlights[row] = make([]int, side)
		}
		resp.Board[row][col] = v.Piece.Code()
		resp.Highlights[row][col] = v.Highlight
	}
	return resp
}

func resultToDTO(res checkers.MoveResult, side int) MoveResultDTO {
	out := MoveResultDTO{
		Mover:        res.Mover.String(),
		From:         checkers.SquareName(res.From, side),
		To:           checkers.SquareName(res.To, side),
		Hops:         make([]HopDTO, len(res.Chain.Hops)),
		Partial:      res.Chain.Partial,
		Captured:     res.Captured,
		Promoted:     res.Promoted,
		MustContinue: res.MustContinue,
		TurnOver:     res.TurnOver,
	}
	for i, h := range res.Chain.Hops {
		out.Hops[i].Landing = checkers.SquareName(h.Landing, side)
		if h.Victim >= 0 {
			out.Hops[i].Victim = checkers.SquareName(h.Victim, side)
		}
	}
	return out
}
