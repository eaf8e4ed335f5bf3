package checkers

import "errors"

var (
	ErrInvalidSide          = errors.New("invalid board side")
	ErrInvalidSquare        = errors.New("invalid square")
	ErrSquareOccupied       = errors.New("square occupied")
	ErrSquareEmpty          = errors.New("square empty")
	ErrInvalidSelection     = errors.New("invalid selection")
	ErrMustCapture          = errors.New("a capture is available; pick a capturing piece")
	ErrNoLegalMove          = errors.New("piece has no legal move")
	ErrIllegalDestination   = errors.New("illegal destination")
	ErrAmbiguousDestination = errors.New("ambiguous destination, reachable only one hop at a time")
	ErrMustContinue         = errors.New("capture must continue with the same piece")
	ErrGameOver             = errors.New("game over")
	ErrBoardSizeMismatch    = errors.New("board size mismatch")
	ErrInvalidSnapshot      = errors.New("invalid snapshot")
	ErrInvalidPosition      = errors.New("invalid position")
)
