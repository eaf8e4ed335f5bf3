package checkers

type Color int8

const (
	NoColor Color = -1
	Dark    Color = 0 // starts on the bottom ranks, moves first
	Light   Color = 1
)

func (c Color) Opponent() Color {
	switch c {
	case Dark:
		return Light
	case Light:
		return Dark
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case Dark:
		return "dark"
	case Light:
		return "light"
	}
	return "none"
}

type Rank int8

const (
	RankNone Rank = iota
	Man
	King
)

func (r Rank) String() string {
	switch r {
	case Man:
		return "man"
	case King:
		return "king"
	}
	return "none"
}

type Piece int8 // 0=empty; >0 dark; <0 light; abs=Rank

const Empty Piece = 0

func MakePiece(c Color, r Rank) Piece {
	if r == RankNone || c == NoColor {
		return Empty
	}
	if c == Dark {
		return Piece(r)
	}
	return -Piece(r)
}

func (p Piece) Rank() Rank {
	if p < 0 {
		return Rank(-p)
	}
	return Rank(p)
}

func (p Piece) Color() Color {
	if p == Empty {
		return NoColor
	}
	if p > 0 {
		return Dark
	}
	return Light
}

func (p Piece) IsEmpty() bool { return p == Empty }

// Crowned returns the king of the same color.
func (p Piece) Crowned() Piece {
	if p == Empty {
		return Empty
	}
	return MakePiece(p.Color(), King)
}

// Code is the occupant code used by save files:
// 0 empty, 1 light man, 2 dark man, 3 light king, 4 dark king.
func (p Piece) Code() int {
	if p == Empty {
		return 0
	}
	code := 1
	if p.Color() == Dark {
		code = 2
	}
	if p.Rank() == King {
		code += 2
	}
	return code
}

func PieceFromCode(code int) (Piece, bool) {
	switch code {
	case 0:
		return Empty, true
	case 1:
		return MakePiece(Light, Man), true
	case 2:
		return MakePiece(Dark, Man), true
	case 3:
		return MakePiece(Light, King), true
	case 4:
		return MakePiece(Dark, King), true
	}
	return Empty, false
}

// Direction indexes the four diagonal neighbours of a square.
type Direction int8

const (
	NoDirection Direction = -1
	TopLeft     Direction = 0
	TopRight    Direction = 1
	BottomRight Direction = 2
	BottomLeft  Direction = 3
)

var Directions = [4]Direction{TopLeft, TopRight, BottomRight, BottomLeft}

var directionDelta = [4][2]int{
	{-1, -1},
	{-1, +1},
	{+1, +1},
	{+1, -1},
}

func (d Direction) Opposite() Direction {
	if d == NoDirection {
		return NoDirection
	}
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomRight:
		return "bottom-right"
	case BottomLeft:
		return "bottom-left"
	}
	return "none"
}

// forward returns the non-capturing directions of a man.
func forward(c Color) [2]Direction {
	if c == Dark {
		return [2]Direction{TopLeft, TopRight}
	}
	return [2]Direction{BottomRight, BottomLeft}
}

// Hop is one step of a chain. Victim is -1 for a simple move.
type Hop struct {
	Landing int `json:"landing"`
	Victim  int `json:"victim"`
}

// Chain is the concrete route picked for one destination.
// Partial marks a chain that stopped on a junction square; the engine
// rebuilds the tree from the landing square before asking again.
type Chain struct {
	Hops    []Hop
	Partial bool
}

func (c Chain) Captures() int {
	n := 0
	for _, h := range c.Hops {
		if h.Victim >= 0 {
			n++
		}
	}
	return n
}

func (c Chain) Landing() int {
	if len(c.Hops) == 0 {
		return -1
	}
	return c.Hops[len(c.Hops)-1].Landing
}

type Outcome int8

const (
	Ongoing Outcome = iota
	DarkWon
	LightWon
)

func (o Outcome) String() string {
	switch o {
	case DarkWon:
		return "dark_won"
	case LightWon:
		return "light_won"
	}
	return "ongoing"
}

func wonBy(c Color) Outcome {
	if c == Dark {
		return DarkWon
	}
	return LightWon
}

type Status struct {
	Outcome Outcome
	Reason  string // "elimination" or "stuck" once decided
}

func (s Status) Over() bool { return s.Outcome != Ongoing }

func (s Status) Winner() Color {
	switch s.Outcome {
	case DarkWon:
		return Dark
	case LightWon:
		return Light
	}
	return NoColor
}
