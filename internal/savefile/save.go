// Package savefile reads and writes the plain-text save format: the board
// side, one row of occupant digits per rank, the Light and Dark piece
// counts and the side to move.
package savefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"checkers/internal/checkers"
)

const Extension = ".save"

var (
	ErrEmptyName = errors.New("empty save name")
	ErrFormat    = errors.New("malformed save file")
)

// turn codes on disk
const (
	turnLight = 0
	turnDark  = 1
)

func Write(w io.Writer, s checkers.Snapshot) error {
	if len(s.Cells) != s.Side*s.Side {
		return fmt.Errorf("%w: %d cells for side %d", ErrFormat, len(s.Cells), s.Side)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", s.Side)
	for row := 0; row < s.Side; row++ {
		for _, code := range s.Cells[row*s.Side : (row+1)*s.Side] {
			if code < 0 || code > 9 {
				return fmt.Errorf("%w: occupant code %d", ErrFormat, code)
			}
			bw.WriteByte(byte('0' + code))
		}
		bw.WriteByte('\n')
	}
	turn := turnDark
	if s.Turn == checkers.Light {
		turn = turnLight
	}
	fmt.Fprintf(bw, "%d\n%d\n%d\n", s.Counts[checkers.Light], s.Counts[checkers.Dark], turn)
	return bw.Flush()
}

// Read parses a save file. It checks the shape of the file only; whether the
// snapshot fits a game is decided by Game.Restore.
func Read(r io.Reader) (checkers.Snapshot, error) {
	var s checkers.Snapshot
	sc := bufio.NewScanner(r)
	line := 0
	next := func() (string, error) {
		for sc.Scan() {
			line++
			if text := strings.TrimSpace(sc.Text()); text != "" {
				return text, nil
			}
		}
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: unexpected end of file after line %d", ErrFormat, line)
	}
	number := func(what string) (int, error) {
		text, err := next()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(text)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: line %d: bad %s %q", ErrFormat, line, what, text)
		}
		return n, nil
	}

	side, err := number("side")
	if err != nil {
		return s, err
	}
	if !checkers.ValidSide(side) {
		return s, fmt.Errorf("%w: side %d", ErrFormat, side)
	}
	s.Side = side
	s.Cells = make([]int, 0, side*side)
	for row := 0; row < side; row++ {
		text, err := next()
		if err != nil {
			return s, err
		}
		if len(text) != side {
			return s, fmt.Errorf("%w: line %d: %d cells, want %d", ErrFormat, line, len(text), side)
		}
		for _, ch := range text {
			if ch < '0' || ch > '9' {
				return s, fmt.Errorf("%w: line %d: bad cell %q", ErrFormat, line, ch)
			}
			s.Cells = append(s.Cells, int(ch-'0'))
		}
	}
	if s.Counts[checkers.Light], err = number("light count"); err != nil {
		return s, err
	}
	if s.Counts[checkers.Dark], err = number("dark count"); err != nil {
		return s, err
	}
	turn, err := number("turn")
	if err != nil {
		return s, err
	}
	switch turn {
	case turnLight:
		s.Turn = checkers.Light
	case turnDark:
		s.Turn = checkers.Dark
	default:
		return s, fmt.Errorf("%w: line %d: turn %d", ErrFormat, line, turn)
	}
	return s, nil
}

// Path joins dir and name, adding the extension when the name lacks it.
func Path(dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if !strings.HasSuffix(name, Extension) {
		name += Extension
	}
	return filepath.Join(dir, name), nil
}

func Save(dir, name string, s checkers.Snapshot) (string, error) {
	path, err := Path(dir, name)
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create save: %w", err)
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return "", fmt.Errorf("write save: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close save: %w", err)
	}
	return path, nil
}

func Load(dir, name string) (checkers.Snapshot, error) {
	path, err := Path(dir, name)
	if err != nil {
		return checkers.Snapshot{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return checkers.Snapshot{}, fmt.Errorf("open save: %w", err)
	}
	defer f.Close()
	return Read(f)
}
