// Package tui is the terminal front-end: a tview application around one
// checkers game.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"checkers/internal/checkers"
	"checkers/internal/savefile"
)

// Session turns typed lines into game actions. It has no terminal
// dependencies so the rules of the prompt can be tested directly.
type Session struct {
	game    *checkers.Game
	saveDir string
}

// Reply is what the prompt shows after a line was handled.
type Reply struct {
	Message string
	Quit    bool
}

func NewSession(g *checkers.Game, saveDir string) *Session {
	return &Session{game: g, saveDir: saveDir}
}

func (s *Session) Game() *checkers.Game { return s.game }

// Handle processes one line: a square name, an empty line (cancel the
// selection) or one of the commands save, load and exit.
func (s *Session) Handle(line string) Reply {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) > 0 {
		switch strings.ToLower(fields[0]) {
		case "exit", "quit":
			return Reply{Message: "bye", Quit: true}
		case "save":
			return s.save(fields[1:])
		case "load":
			return s.load(fields[1:])
		}
	}

	g := s.game
	if g.Phase() == checkers.PhaseGameOver {
		return Reply{Message: s.Prompt()}
	}
	if line == "" {
		if err := g.Cancel(); err != nil {
			return Reply{Message: describe(err)}
		}
		return Reply{Message: s.Prompt()}
	}

	side := g.Board().Side()
	sq, err := checkers.ParseSquare(line, side)
	if err != nil {
		return Reply{Message: describe(err)}
	}

	if g.Phase() == checkers.PhaseSelectPiece || s.reselects(sq) {
		n, err := g.Select(sq)
		if err != nil {
			return Reply{Message: describe(err)}
		}
		return Reply{Message: fmt.Sprintf("%s selected, %d destination(s)", checkers.SquareName(sq, side), n)}
	}

	res, err := g.Choose(sq)
	if err != nil {
		return Reply{Message: describe(err)}
	}
	msg := fmt.Sprintf("%s moved %s to %s", res.Mover, checkers.SquareName(res.From, side), checkers.SquareName(res.To, side))
	if res.Captured > 0 {
		msg += fmt.Sprintf(", captured %d", res.Captured)
	}
	if res.Promoted {
		msg += ", crowned"
	}
	switch {
	case res.MustContinue:
		msg += "; keep capturing"
	case res.Status.Over():
		msg += "; " + s.Prompt()
	}
	return Reply{Message: msg}
}

// reselects reports whether sq names another own piece while no hop of the
// turn has been played yet.
func (s *Session) reselects(sq int) bool {
	g := s.game
	if g.Continuing() || sq == g.SelectedSquare() {
		return false
	}
	pc := g.Board().At(sq)
	return pc != checkers.Empty && pc.Color() == g.Turn()
}

// Prompt describes whose move it is, or who won.
func (s *Session) Prompt() string {
	g := s.game
	if st := g.Status(); st.Over() {
		return fmt.Sprintf("%s wins by %s", strings.ToUpper(st.Winner().String()), st.Reason)
	}
	if g.Continuing() {
		return fmt.Sprintf("%s: continue the capture from %s", g.Turn(), checkers.SquareName(g.SelectedSquare(), g.Board().Side()))
	}
	if g.Phase() == checkers.PhaseAwaitDestination {
		return fmt.Sprintf("%s: choose a destination", g.Turn())
	}
	if g.MustCaptureNow() {
		return fmt.Sprintf("%s to move, capture is mandatory", g.Turn())
	}
	return fmt.Sprintf("%s to move", g.Turn())
}

func (s *Session) save(args []string) Reply {
	if len(args) != 1 {
		return Reply{Message: "usage: save <name>"}
	}
	path, err := savefile.Save(s.saveDir, args[0], s.game.Snapshot())
	if err != nil {
		return Reply{Message: "not saved: " + err.Error()}
	}
	return Reply{Message: "saved to " + path}
}

func (s *Session) load(args []string) Reply {
	if len(args) != 1 {
		return Reply{Message: "usage: load <name>"}
	}
	snap, err := savefile.Load(s.saveDir, args[0])
	if err != nil {
		return Reply{Message: "couldn't open savefile: " + err.Error()}
	}
	if err := s.game.Restore(snap); err != nil {
		if errors.Is(err, checkers.ErrBoardSizeMismatch) {
			return Reply{Message: "savefile has different board size"}
		}
		return Reply{Message: "not loaded: " + err.Error()}
	}
	return Reply{Message: "loaded; " + s.Prompt()}
}

func describe(err error) string {
	switch {
	case errors.Is(err, checkers.ErrAmbiguousDestination):
		return "ambiguous destination: it can only be reached one hop at a time"
	case errors.Is(err, checkers.ErrIllegalDestination):
		return "illegal destination"
	case errors.Is(err, checkers.ErrMustCapture):
		return "a capture is available: pick a piece that can capture"
	case errors.Is(err, checkers.ErrMustContinue):
		return "the capture must be continued with the same piece"
	case errors.Is(err, checkers.ErrNoLegalMove):
		return "that piece cannot move"
	case errors.Is(err, checkers.ErrInvalidSquare):
		return "not a square: " + err.Error()
	case errors.Is(err, checkers.ErrInvalidSelection):
		return "pick one of your own pieces"
	case errors.Is(err, checkers.ErrGameOver):
		return "the game is over"
	}
	return err.Error()
}
