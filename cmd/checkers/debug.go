package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	"checkers/internal/checkers"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func debugCommand() *cli.Command {
	return &cli.Command{
		Name:      "debug",
		Usage:     "print the move tree of one square",
		ArgsUsage: "<square>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "position",
				Usage: "encoded position; the initial setup of --side when empty",
			},
			&cli.BoolFlag{
				Name:  "dump",
				Usage: "dump the raw tree",
			},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 1 {
				return cli.Exit("debug needs exactly one square, e.g. C3", 2)
			}
			cfg, err := loadConfig(cCtx)
			if err != nil {
				return err
			}
			return debugTree(cCtx.App.Writer, cfg.Side, cCtx.String("position"), cCtx.Args().First(), cCtx.Bool("dump"))
		},
	}
}

func debugTree(w io.Writer, side int, position, square string, dump bool) error {
	var p checkers.Position
	if position == "" {
		b, err := checkers.NewBoard(side)
		if err != nil {
			return err
		}
		b.SetupInitial()
		p = checkers.Position{Board: b, Turn: checkers.Dark}
	} else {
		var err error
		if p, err = checkers.DecodePosition(position); err != nil {
			return err
		}
	}
	b := p.Board
	sq, err := checkers.ParseSquare(square, b.Side())
	if err != nil {
		return err
	}
	tree, err := b.BuildTree(sq)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "position:     %s\n", p.Encode())
	fmt.Fprintf(w, "hash:         %016x\n", b.Hash())
	fmt.Fprintf(w, "square:       %s\n", checkers.SquareName(sq, b.Side()))
	fmt.Fprintf(w, "capture:      %v\n", tree.Capture)
	fmt.Fprintf(w, "nodes:        %d\n", tree.Size())
	names := make([]string, 0)
	for _, d := range tree.Destinations(b) {
		names = append(names, checkers.SquareName(d, b.Side()))
	}
	fmt.Fprintf(w, "destinations: %s\n", strings.Join(names, " "))
	printNode(w, b, tree, tree.Root(), 0)
	if dump {
		dumper.Fdump(w, tree)
	}
	return nil
}

func printNode(w io.Writer, b *checkers.Board, t *checkers.MoveTree, n checkers.MoveNode, depth int) {
	for _, id := range n.Children {
		c := t.Node(id)
		line := strings.Repeat("  ", depth) + checkers.SquareName(c.Square, b.Side())
		if c.Victim >= 0 {
			line += " x" + checkers.SquareName(c.Victim, b.Side())
		}
		fmt.Fprintln(w, line)
		printNode(w, b, t, c, depth+1)
	}
}
