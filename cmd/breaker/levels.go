package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breaker/internal/games/breaker"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List built-in levels",
	Long:  `Shows the built-in campaign levels in play order.`,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	count := breaker.LevelCount()
	if count == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Campaign levels:")
	fmt.Println()

	// Calculate column width
	maxNameLen := 4 // "Name" header
	for i := 0; i < count; i++ {
		lvl := breaker.GetLevel(i)
		if len(lvl.Name) > maxNameLen {
			maxNameLen = len(lvl.Name)
		}
	}

	// Print header
	fmt.Printf("  %-3s  %-*s  %-7s  %s\n", "#", maxNameLen, "Name", "Bricks", "Boss")
	fmt.Printf("  %-3s  %-*s  %-7s  %s\n", "-", maxNameLen, "----", "------", "----")

	// Print levels
	for i := 0; i < count; i++ {
		lvl := breaker.GetLevel(i)
		boss := ""
		if lvl.HasBoss {
			boss = "yes"
		}
		fmt.Printf("  %-3d  %-*s  %-7d  %s\n", i+1, maxNameLen, lvl.Name, lvl.CountAlive(), boss)
	}

	fmt.Println()
	fmt.Println("Run 'breaker play --level <#>' to start from a specific level.")
}
