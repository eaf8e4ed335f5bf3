package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"checkers/internal/config"
	"checkers/internal/logging"
)

func main() {
	// .env is applied before cli reads EnvVars; set variables win.
	if _, err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if err := newApp().Run(os.Args); err != nil {
		log.Error().Err(err).Msg("checkers failed")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	def := config.Default()
	return &cli.App{
		Name:  "checkers",
		Usage: "play, host and test checkers on boards from 4x4 to 26x26",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "side",
				Aliases: []string{"s"},
				Usage:   "board side length",
				Value:   def.Side,
				EnvVars: []string{config.EnvSide},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "trace, debug, info, warn or error",
				Value:   def.LogLevel,
				EnvVars: []string{config.EnvLogLevel},
			},
			&cli.BoolFlag{
				Name:    "log-pretty",
				Usage:   "human readable log output",
				EnvVars: []string{config.EnvLogPretty},
			},
			&cli.StringFlag{
				Name:    "save-dir",
				Usage:   "directory for save files",
				Value:   def.SaveDir,
				EnvVars: []string{config.EnvSaveDir},
			},
		},
		Before: func(cCtx *cli.Context) error {
			logging.Configure(cCtx.String("log-level"), cCtx.Bool("log-pretty"))
			return nil
		},
		Commands: []*cli.Command{
			playCommand(),
			serveCommand(),
			debugCommand(),
			selfplayCommand(),
		},
	}
}

// loadConfig merges flags (and their env vars) into a validated Config.
func loadConfig(cCtx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	cfg.Side = cCtx.Int("side")
	cfg.LogLevel = cCtx.String("log-level")
	cfg.LogPretty = cCtx.Bool("log-pretty")
	cfg.SaveDir = cCtx.String("save-dir")
	if addr := cCtx.String("addr"); addr != "" {
		cfg.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return cfg, cli.Exit(err.Error(), 2)
	}
	return cfg, nil
}
