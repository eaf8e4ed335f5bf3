package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"checkers/internal/logging"
	"checkers/internal/selfplay"
)

func selfplayCommand() *cli.Command {
	return &cli.Command{
		Name:  "selfplay",
		Usage: "play random games to soak-test the rules",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "games", Aliases: []string{"n"}, Value: 100, Usage: "number of games"},
			&cli.IntFlag{Name: "max-turns", Value: 500, Usage: "turn cap per game"},
			&cli.IntFlag{Name: "workers", Usage: "parallel games (0 = one per CPU)"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "random seed"},
		},
		Action: func(cCtx *cli.Context) error {
			cfg, err := loadConfig(cCtx)
			if err != nil {
				return err
			}
			report, err := selfplay.Run(cCtx.Context, selfplay.Options{
				Side:     cfg.Side,
				Games:    cCtx.Int("games"),
				MaxTurns: cCtx.Int("max-turns"),
				Workers:  cCtx.Int("workers"),
				Seed:     cCtx.Int64("seed"),
			}, logging.Component("selfplay"))
			if err != nil {
				return err
			}
			w := cCtx.App.Writer
			fmt.Fprintf(w, "games:      %d\n", report.Games)
			fmt.Fprintf(w, "dark wins:  %d\n", report.DarkWins)
			fmt.Fprintf(w, "light wins: %d\n", report.LightWins)
			fmt.Fprintf(w, "draws:      %d\n", report.Draws)
			fmt.Fprintf(w, "captures:   %d\n", report.Captures)
			fmt.Fprintf(w, "elapsed:    %s (%.1f games/sec)\n", report.Elapsed, report.GamesPerSecond())
			return nil
		},
	}
}
