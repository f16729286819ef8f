package initialize

import (
	"fmt"
	"io"
	"os"
	"strings"

	"smart-pantry/backend/config"
	"smart-pantry/backend/global"

	"github.com/rs/zerolog"
)

func init() {
	// console writer to stdout until the config is loaded
	global.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
}

// InitLogger points global.Logger at stdout or cfg.Path, in console or JSON
// format. The returned closer releases the log file, if any.
func InitLogger(cfg config.Log) (io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	var closer io.Closer = io.NopCloser(nil)
	if cfg.Path != "" {
		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, NoColor: cfg.Path != ""}
	}
	zerolog.SetGlobalLevel(level)
	global.Logger = zerolog.New(out).With().Timestamp().Logger()
	return closer, nil
}

// SetLogLevel changes the level of the running logger. Safe while serving.
func SetLogLevel(name string) {
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil || level == zerolog.NoLevel {
		return
	}
	zerolog.SetGlobalLevel(level)
}
