package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/spectate"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagPlaySpectate string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play snake",
	Long: `Start a local game. Without a variant the menu lets you pick one.

Controls:
  Arrows/WASD  - Steer
  P/Space      - Pause
  R            - Abandon the round and start a new one
  Esc/B        - Back to menu (while paused)
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Difficulty only changes how often the snake moves:
  easy   - every 150ms
  normal - every 120ms
  hard   - every 80ms

Examples:
  snake play
  snake play snake_plus
  snake play --difficulty hard --fps 30
  snake play --spectate :8080
  snake play --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlaySpectate, "spectate", "", "Serve a websocket spectator feed on this address")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown variant %q, run 'snake list' to see available variants", gameID)
		}
	}

	logger, closeLog, err := newLogger(nil)
	if err != nil {
		return err
	}
	defer closeLog()

	rate, err := loadOptions(logger)
	if err != nil {
		return err
	}

	journal, err := storage.Open(flagJournal)
	if err != nil {
		return err
	}
	defer journal.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	env := tui.Env{
		Journal: journal,
		Rounds:  journal,
		Logger:  logger,
	}

	if flagPlaySpectate != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		hub := spectate.NewHub(logger)
		go func() {
			if err := hub.ListenAndServe(ctx, flagPlaySpectate); err != nil {
				logger.Error("spectator feed stopped", "err", err)
			}
		}()
		env.Publisher = hub
	}

	return tui.RunSession(env, runtimeConfig(width, height, rate), gameID)
}
