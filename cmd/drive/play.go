package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/portfolio-drive/internal/core"
	"github.com/vovakirdan/portfolio-drive/internal/games/drive"
	"github.com/vovakirdan/portfolio-drive/internal/platform/tui"
	"github.com/vovakirdan/portfolio-drive/internal/storage"
)

var flagStartLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a drive session in this terminal.

Controls:
  Up         - Drive forward (after a finish: go to the next level now)
  Left/Right - Steer
  Enter      - Start game / confirm popup
  Esc/X      - Close popup
  C          - Contact details
  Tab        - Best times (start screen)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Logs are written to ~/.portfolio-drive/drive.log.

Examples:
  drive play
  drive play --start-level 3
  drive play --config ./my-drive.yaml --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStartLevel, "start-level", 1, "Level to start from (1-3)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if flagStartLevel < 1 || flagStartLevel > drive.LevelCount {
		return fmt.Errorf("--start-level must be between 1 and %d", drive.LevelCount)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	drive.SetStartLevel(flagStartLevel)

	var logOut io.Writer = io.Discard
	if f, logErr := openLogFile(); logErr == nil {
		defer f.Close()
		logOut = f
	} else {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", logErr)
	}
	logger, err := newLogger(logOut, "drive")
	if err != nil {
		return err
	}

	// The game and the platform share the config loaded above
	game := drive.NewWithConfig(cfg)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Storage is optional; the game still works without it
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		store = nil
	}

	runErr := tui.Run(game, rt, tui.Options{
		Store:  store,
		Logger: logger,
		Config: cfg,
		Player: currentPlayer(),
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}

// currentPlayer names the local player after the OS user.
func currentPlayer() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return storage.AnonymousPlayer
}
