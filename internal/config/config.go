// Package config holds the runtime settings shared by the commands.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"checkers/internal/checkers"
)

const (
	EnvSide      = "CHECKERS_SIDE"
	EnvAddr      = "CHECKERS_ADDR"
	EnvLogLevel  = "CHECKERS_LOG_LEVEL"
	EnvLogPretty = "CHECKERS_LOG_PRETTY"
	EnvSaveDir   = "CHECKERS_SAVE_DIR"

	DefaultAddr = ":8080"
)

type Config struct {
	Side      int
	Addr      string
	LogLevel  string
	LogPretty bool
	SaveDir   string
}

func Default() Config {
	return Config{
		Side:     checkers.DefaultSide,
		Addr:     DefaultAddr,
		LogLevel: "info",
		SaveDir:  ".",
	}
}

func (c Config) Validate() error {
	if !checkers.ValidSide(c.Side) {
		return fmt.Errorf("%w: %d not in [%d, %d]", checkers.ErrInvalidSide, c.Side, checkers.MinSide, checkers.MaxSide)
	}
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("config: empty listen address")
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
		}
	}
	if strings.TrimSpace(c.SaveDir) == "" {
		return errors.New("config: empty save directory")
	}
	return nil
}

// LoadDotEnv copies the given env files (".env" when none) into the process
// environment without overriding variables already set. Missing files are
// reported as loaded=false; malformed files are errors.
func LoadDotEnv(files ...string) (loaded bool, err error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := godotenv.Read(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return false, fmt.Errorf("config: read %s: %w", f, err)
		}
		present = append(present, f)
	}
	if len(present) == 0 {
		return false, nil
	}
	if err := godotenv.Load(present...); err != nil {
		return false, fmt.Errorf("config: load env: %w", err)
	}
	return true, nil
}
