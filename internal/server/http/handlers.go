package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"checkers/internal/checkers"
	"checkers/internal/savefile"
	"checkers/internal/server/game"
	"checkers/internal/server/ws"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

// Handler serves the game API for the games held by a Manager and pushes
// every change to the websocket hub.
type Handler struct {
	games       *game.Manager
	hub         *ws.Hub
	defaultSide int
	log         zerolog.Logger
}

func NewHandler(games *game.Manager, hub *ws.Hub, defaultSide int, log zerolog.Logger) *Handler {
	h := &Handler{
		games:       games,
		hub:         hub,
		defaultSide: defaultSide,
		log:         log,
	}
	games.OnChange(h.publish)
	return h
}

// publish runs under the game lock; Hub.Publish never blocks.
func (h *Handler) publish(s *game.GameState, g *checkers.Game, version uint64) {
	if h.hub == nil {
		return
	}
	h.hub.Publish(s.ID, ws.TypeState, stateToDTO(s.ID, version, g))
}

func (h *Handler) state(s *game.GameState) StateResponse {
	var resp StateResponse
	s.View(func(g *checkers.Game, version uint64) {
		resp = stateToDTO(s.ID, version, g)
	})
	return resp
}

func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			h.writeError(w, err)
			return
		}
	}
	side := req.Side
	if side == 0 {
		side = h.defaultSide
	}
	s, err := h.games.NewGame(side)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.state(s))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	s, err := h.games.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.state(s))
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req SquareRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	s, err := h.games.Do(chi.URLParam(r, "id"), func(g *checkers.Game) error {
		sq, err := checkers.ParseSquare(req.Square, g.Board().Side())
		if err != nil {
			return err
		}
		_, err = g.Select(sq)
		return err
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.state(s))
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	var req SquareRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	var result MoveResultDTO
	s, err := h.games.Do(chi.URLParam(r, "id"), func(g *checkers.Game) error {
		side := g.Board().Side()
		sq, err := checkers.ParseSquare(req.Square, side)
		if err != nil {
			return err
		}
		res, err := g.Choose(sq)
		if err != nil {
			return err
		}
		result = resultToDTO(res, side)
		return nil
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MoveResponse{Result: result, State: h.state(s)})
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	s, err := h.games.Do(chi.URLParam(r, "id"), func(g *checkers.Game) error {
		return g.Cancel()
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.state(s))
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	s, err := h.games.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	var snap checkers.Snapshot
	s.View(func(g *checkers.Game, _ uint64) { snap = g.Snapshot() })

	var buf bytes.Buffer
	if err := savefile.Write(&buf, snap); err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+s.ID+savefile.Extension+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	snap, err := savefile.Read(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, err)
		return
	}
	s, err := h.games.Do(chi.URLParam(r, "id"), func(g *checkers.Game) error {
		return g.Restore(snap)
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.log.Info().Str("game", s.ID).Msg("game loaded from save")
	writeJSON(w, http.StatusOK, h.state(s))
}

func (h *Handler) handleWS(w http.ResponseWriter, r *http.Request) {
	s, err := h.games.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.hub.Serve(w, r, s.ID, func() (any, error) {
		return h.state(s), nil
	})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
