package httpserver

import (
	"errors"
	"net/http"

	"checkers/internal/checkers"
	"checkers/internal/savefile"
	"checkers/internal/server/game"
)

type errorKind struct {
	err    error
	status int
	kind   string
}

// First match wins, so wrapped kinds come before the kinds they wrap.
var errorKinds = []errorKind{
	{game.ErrNotFound, http.StatusNotFound, "not_found"},
	{checkers.ErrBoardSizeMismatch, http.StatusConflict, "board_size_mismatch"},
	{checkers.ErrGameOver, http.StatusConflict, "game_over"},
	{checkers.ErrMustContinue, http.StatusConflict, "must_continue"},
	{checkers.ErrMustCapture, http.StatusBadRequest, "must_capture"},
	{checkers.ErrNoLegalMove, http.StatusBadRequest, "no_legal_move"},
	{checkers.ErrInvalidSelection, http.StatusBadRequest, "invalid_selection"},
	{checkers.ErrAmbiguousDestination, http.StatusBadRequest, "ambiguous_destination"},
	{checkers.ErrIllegalDestination, http.StatusBadRequest, "illegal_destination"},
	{checkers.ErrInvalidSquare, http.StatusBadRequest, "invalid_square"},
	{checkers.ErrInvalidSide, http.StatusBadRequest, "invalid_side"},
	{checkers.ErrInvalidSnapshot, http.StatusBadRequest, "invalid_save"},
	{savefile.ErrFormat, http.StatusBadRequest, "invalid_save"},
	{errBadRequest, http.StatusBadRequest, "bad_request"},
}

func classify(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.status, k.kind
		}
	}
	return http.StatusInternalServerError, "internal"
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status, kind := classify(err)
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("request failed")
	} else {
		h.log.Debug().Err(err).Str("kind", kind).Msg("request rejected")
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: kind})
}
