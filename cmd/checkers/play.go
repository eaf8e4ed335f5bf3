package main

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"checkers/internal/checkers"
	"checkers/internal/logging"
	"checkers/internal/tui"
)

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "two players at one terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "position",
				Usage: "start from an encoded position instead of the initial setup",
			},
		},
		Action: func(cCtx *cli.Context) error {
			cfg, err := loadConfig(cCtx)
			if err != nil {
				return err
			}
			// the terminal belongs to tview; keep logs quiet unless asked for
			if !cCtx.IsSet("log-level") {
				logging.Configure("error", false)
			}
			g, err := newPlayGame(cfg.Side, cCtx.String("position"))
			if err != nil {
				return err
			}
			log.Info().Int("side", g.Board().Side()).Msg("starting terminal game")
			return tui.NewApp(g, cfg.SaveDir).Run()
		},
	}
}

func newPlayGame(side int, position string) (*checkers.Game, error) {
	opt := checkers.WithLogger(logging.Component("game"))
	if position == "" {
		return checkers.NewGame(side, opt)
	}
	p, err := checkers.DecodePosition(position)
	if err != nil {
		return nil, err
	}
	return checkers.NewGameFromPosition(p, opt)
}
