// breaker is a terminal brick-breaker built on a swept-collision physics core.
//
// Usage:
//
//	breaker play [mode]      - Play (campaign by default, or "endless")
//	breaker menu             - Interactive mode picker
//	breaker levels           - List built-in levels
//	breaker scores <mode>    - Show high scores and recent runs
//	breaker sim              - Run a headless simulation (determinism check)
//	breaker serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.breaker/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import game variants to register them
	_ "github.com/vovakirdan/tui-breaker/internal/games/breaker"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breaker",
	Short: "Breaker - A brick-breaker for your terminal",
	Long: `Breaker is a terminal brick-breaker with continuous collision
detection: the ball never tunnels through bricks or the paddle,
no matter how fast it gets.

Available commands:
  play     - Play campaign or endless mode directly
  menu     - Interactive mode picker
  levels   - List built-in levels
  scores   - View high scores and run history
  sim      - Run a headless simulation
  serve    - Start SSH server for remote play

Examples:
  breaker play
  breaker play endless --difficulty hard
  breaker menu
  breaker serve --ssh :2222
  breaker scores breaker`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.breaker/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
}
