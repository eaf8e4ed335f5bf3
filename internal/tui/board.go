package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"checkers/internal/checkers"
)

const cellWidth = 3 // runes per square

var (
	styleLight     = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	styleDark      = tcell.StyleDefault.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorWhite)
	styleReachable = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	styleAmbiguous = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
	styleSelected  = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	styleBorder    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// pieceRune maps pieces to the letters used by the position encoding.
func pieceRune(pc checkers.Piece) rune {
	switch {
	case pc == checkers.Empty:
		return ' '
	case pc.Color() == checkers.Dark && pc.Rank() == checkers.King:
		return 'D'
	case pc.Color() == checkers.Dark:
		return 'd'
	case pc.Rank() == checkers.King:
		return 'L'
	}
	return 'l'
}

func squareStyle(v checkers.SquareView) tcell.Style {
	switch {
	case !v.Playable:
		return styleLight
	case v.Selected:
		return styleSelected
	case v.Highlight > 1:
		return styleAmbiguous
	case v.Highlight == 1:
		return styleReachable
	}
	return styleDark
}

// BoardView draws the game's board with rank numbers on the left and file
// letters underneath.
type BoardView struct {
	*tview.Box
	game func() *checkers.Game
}

func NewBoardView(game func() *checkers.Game) *BoardView {
	v := &BoardView{Box: tview.NewBox(), game: game}
	v.SetBorder(true).SetTitle(" checkers ")
	v.SetDrawFunc(v.draw)
	return v
}

// Size is the width and height the board needs inside the border.
func Size(side int) (int, int) {
	return 3 + side*cellWidth, side + 1
}

func (v *BoardView) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	g := v.game()
	if g == nil {
		return x, y, width, height
	}
	ix, iy := x+1, y+1
	side := g.Board().Side()
	for _, sq := range g.Squares() {
		row, col := sq.Index/side, sq.Index%side
		if col == 0 {
			for i, r := range rankLabel(side - row) {
				screen.SetContent(ix+i, iy+row, r, nil, styleBorder)
			}
		}
		style := squareStyle(sq)
		cx := ix + 3 + col*cellWidth
		screen.SetContent(cx, iy+row, ' ', nil, style)
		screen.SetContent(cx+1, iy+row, pieceRune(sq.Piece), nil, style)
		screen.SetContent(cx+2, iy+row, ' ', nil, style)
	}
	for col := 0; col < side; col++ {
		screen.SetContent(ix+3+col*cellWidth+1, iy+side, rune('A'+col), nil, styleBorder)
	}
	return ix, iy + side + 1, width - 2, height - side - 2
}

func rankLabel(n int) string {
	if n < 10 {
		return " " + string(rune('0'+n))
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}
