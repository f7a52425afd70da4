// drive is a terminal rendition of a portfolio driving game: drive down a
// track, dodge obstacles and reach the finish line of each level to reveal
// a portfolio section.
//
// Usage:
//
//	drive play               - Play in this terminal
//	drive levels             - Show the level layout
//	drive scores [level]     - Show best completion times
//	drive contact            - Print contact details
//	drive serve              - Start SSH server for remote play
//	drive list               - List registered games
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible obstacle layouts
//	--db <path>         - Set database path (default: ~/.portfolio-drive/results.db)
//	--config <path>     - Custom drive config YAML
//	--log-level <level> - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/portfolio-drive/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/portfolio-drive/internal/games/drive"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "drive",
	Short: "Portfolio Drive - a driving game that reveals a portfolio",
	Long: `Portfolio Drive is a terminal driving game. Each of the three levels
ends at a finish line that unlocks a section of the portfolio.

Available commands:
  play     - Play in this terminal
  levels   - Show the level layout
  scores   - View best completion times
  contact  - Print contact details
  serve    - Start SSH server for remote play
  list     - List registered games

Examples:
  drive play
  drive play --start-level 2
  drive scores 3
  drive serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.portfolio-drive/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom drive config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
}

// newLogger creates a logger at the level selected by --log-level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          prefix,
	}), nil
}

// openLogFile opens ~/.portfolio-drive/drive.log for appending. The terminal
// belongs to the TUI while a game runs, so local play logs go there.
func openLogFile() (io.WriteCloser, error) {
	path := config.UserPath("drive.log")
	if path == "" {
		return nil, fmt.Errorf("cannot resolve log path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// loadConfig loads the drive config selected by --config.
func loadConfig() (config.DriveConfig, error) {
	cfg, err := config.LoadDrive(flagConfig)
	if err != nil {
		return config.DriveConfig{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
