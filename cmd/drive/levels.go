package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/portfolio-drive/internal/games/drive"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the level layout",
	Long: `Shows obstacle count, finish distance and track offset of every level.

Examples:
  drive levels`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	fmt.Println("Levels:")
	fmt.Println()

	fmt.Printf("  %-5s  %-9s  %-6s  %-7s  %s\n", "Level", "Obstacles", "Finish", "Track Z", "Section")
	fmt.Printf("  %-5s  %-9s  %-6s  %-7s  %s\n", "-----", "---------", "------", "-------", "-------")

	for level := 1; level <= drive.LevelCount; level++ {
		fmt.Printf("  %-5d  %-9d  %-6.0f  %-7.0f  %s\n",
			level,
			drive.ObstacleCount(level),
			drive.FinishDistance(level),
			drive.TrackZ(level),
			drive.LevelTitle(level),
		)
	}

	fmt.Println()
	fmt.Println("After level 3 the game starts again at level 1.")
}
