package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"checkers/internal/checkers"
)

// App wires a Session to a tview application: a start menu, the board, a
// status line and the input prompt.
type App struct {
	app     *tview.Application
	pages   *tview.Pages
	board   *BoardView
	status  *tview.TextView
	message *tview.TextView
	input   *tview.InputField
	session *Session
}

func NewApp(g *checkers.Game, saveDir string) *App {
	a := &App{
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		status:  tview.NewTextView().SetDynamicColors(true),
		message: tview.NewTextView(),
		session: NewSession(g, saveDir),
	}
	a.board = NewBoardView(a.session.Game)
	a.input = tview.NewInputField().
		SetLabel("> ").
		SetFieldWidth(24)
	a.input.SetDoneFunc(a.onDone)

	side := g.Board().Side()
	w, h := Size(side)
	game := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(tview.NewFlex().
			AddItem(a.board, w+2, 0, false).
			AddItem(a.status, 0, 1, false), h+2, 0, false).
		AddItem(a.message, 2, 0, false).
		AddItem(a.input, 1, 0, true)

	menu := tview.NewList().
		AddItem("New game", fmt.Sprintf("%dx%d board", side, side), 'n', func() { a.show("game") }).
		AddItem("Load", "type: load <name>", 'l', func() {
			a.show("game")
			a.input.SetText("load ")
		}).
		AddItem("Exit", "", 'q', a.app.Stop)
	menu.SetBorder(true).SetTitle(" checkers ")

	a.pages.AddPage("game", game, true, false)
	a.pages.AddPage("menu", menu, true, true)
	a.app.SetRoot(a.pages, true)
	a.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyCtrlC {
			a.app.Stop()
			return nil
		}
		return ev
	})
	a.refresh(a.session.Prompt())
	return a
}

func (a *App) Run() error { return a.app.Run() }

func (a *App) show(page string) {
	a.pages.SwitchToPage(page)
	if page == "game" {
		a.app.SetFocus(a.input)
	}
}

func (a *App) onDone(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	reply := a.session.Handle(a.input.GetText())
	a.input.SetText("")
	if reply.Quit {
		a.app.Stop()
		return
	}
	a.refresh(reply.Message)
}

func (a *App) refresh(msg string) {
	g := a.session.Game()
	a.status.SetText(statusText(g))
	a.message.SetText(msg)
}

func statusText(g *checkers.Game) string {
	text := fmt.Sprintf("[::b]%s[::-]\n\nDark pieces:  %d\nLight pieces: %d\n",
		turnLine(g), g.Count(checkers.Dark), g.Count(checkers.Light))
	if g.Phase() == checkers.PhaseAwaitDestination {
		text += fmt.Sprintf("\nDestinations: %d", len(g.Destinations()))
	}
	return text
}

func turnLine(g *checkers.Game) string {
	if st := g.Status(); st.Over() {
		return fmt.Sprintf("[green]%s'S VICTORY[-]", strings.ToUpper(st.Winner().String()))
	}
	return fmt.Sprintf("%s's move", g.Turn())
}
