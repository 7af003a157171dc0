// snake is a terminal snake game with a round journal, SSH play and a
// websocket spectator feed.
//
// Usage:
//
//	snake list              - List the rule variants
//	snake play [variant]    - Play (menu when no variant is given)
//	snake serve             - Start SSH server for remote play
//	snake scores [variant]  - Show the round journal
//
// Global flags:
//
//	--fps <rate>          - Set frame rate (default: from config, 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Custom snake.yaml
//	--difficulty <name>   - easy, normal or hard
//	--journal <path>      - Round journal database (default: in memory)
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagJournal    string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - steer a growing snake in your terminal",
	Long: `Snake is a grid snake game for the terminal.

Available commands:
  list     - Show the rule variants
  play     - Play locally
  serve    - Start SSH server for remote play
  scores   - View the round journal

Examples:
  snake play
  snake play snake_plus --difficulty hard
  snake serve --ssh :2222 --journal ~/.snake/rounds.db
  snake scores --journal ~/.snake/rounds.db`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagJournal, "journal", storage.InMemory, "Round journal database path (:memory: keeps it in memory)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (play logs nowhere by default)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the process logger. When w is nil logs go to --log-file,
// or nowhere if it is unset.
func newLogger(w io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}
	if w == nil {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "snake",
		Level:           level,
	})
	return logger, closer, nil
}

// loadOptions reads the config, applies the difficulty preset and installs
// the resulting game options. It returns the frame rate to run at.
func loadOptions(logger *log.Logger) (int, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return 0, err
	}

	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return 0, err
	}
	config.ApplySnakePreset(&cfg, preset)

	lo, hi := cfg.Timing.FoodPeriodRange()
	snake.SetOptions(snake.Options{
		Arena:         snake.Arena{Width: cfg.Arena.Width, Height: cfg.Arena.Height},
		SnakeSpeed:    cfg.Timing.SnakeSpeedDuration(),
		FoodPeriodMin: lo,
		FoodPeriodMax: hi,
	})

	rate := cfg.Timing.TickRate
	if flagFPS > 0 {
		rate = min(flagFPS, config.MaxTickRate)
	}
	logger.Debug("config loaded",
		"arena", fmt.Sprintf("%dx%d", cfg.Arena.Width, cfg.Arena.Height),
		"snake_speed", cfg.Timing.SnakeSpeedDuration(),
		"food_period", fmt.Sprintf("%v..%v", lo, hi),
		"fps", rate,
		"difficulty", preset,
	)
	return rate, nil
}

// runtimeConfig builds the per-session config for a w x h screen.
func runtimeConfig(w, h, rate int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  w,
		ScreenH:  h,
		TickRate: rate,
		Seed:     flagSeed,
	}
}
