package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/portfolio-drive/internal/games/drive"
	"github.com/vovakirdan/portfolio-drive/internal/platform/tui"
	"github.com/vovakirdan/portfolio-drive/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresClear bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best completion times",
	Long: `Display the fastest completions of a level, or a summary of all levels.

Examples:
  drive scores
  drive scores 2
  drive scores --tui
  drive scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded results")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
}

func runScores(_ *cobra.Command, args []string) {
	level := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > drive.LevelCount {
			fmt.Fprintf(os.Stderr, "Error: level must be between 1 and %d\n", drive.LevelCount)
			os.Exit(1)
		}
		level = n
	}

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearResults(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All results cleared.")
	case flagScoresTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, width, height, flagFPS); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case level > 0:
		printLevelResults(store, level)
	default:
		printSummary(store)
	}
}

func printLevelResults(store *storage.Store, level int) {
	results, err := store.BestLevelResults(level, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Times - %s\n", drive.LevelTitle(level))
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No completions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'drive play' to set the first time!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-8s  %-4s  %s\n", "Rank", "Player", "Time", "Hits", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-4s  %s\n", "----", "------", "----", "----", "----")

	for i, r := range results {
		fmt.Printf("  %-4d  %-16s  %-8s  %-4d  %s\n",
			i+1,
			r.Player,
			seconds(r.Ticks),
			r.Collisions,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
}

func printSummary(store *storage.Store) {
	stats, err := store.AllLevelStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Level Summary")
	fmt.Println()

	fmt.Printf("  %-5s  %-6s  %-8s  %-8s  %s\n", "Level", "Runs", "Best", "Average", "Hits")
	fmt.Printf("  %-5s  %-6s  %-8s  %-8s  %s\n", "-----", "----", "----", "-------", "----")

	for level := 1; level <= drive.LevelCount; level++ {
		s, ok := stats[level]
		if !ok {
			fmt.Printf("  %-5d  %-6d  %-8s  %-8s  %d\n", level, 0, "-", "-", 0)
			continue
		}
		fmt.Printf("  %-5d  %-6d  %-8s  %-8s  %d\n",
			level,
			s.Completions,
			seconds(s.BestTicks),
			fmt.Sprintf("%.2fs", s.AvgTicks/float64(tickRate())),
			s.TotalCollisions,
		)
	}
}

// seconds converts a tick count into wall time at the configured --fps.
func seconds(ticks uint64) string {
	return fmt.Sprintf("%.2fs", float64(ticks)/float64(tickRate()))
}

func tickRate() int {
	if flagFPS <= 0 {
		return 60
	}
	return flagFPS
}
