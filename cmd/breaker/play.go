package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breaker/internal/core"
	"github.com/vovakirdan/tui-breaker/internal/games/breaker"
	"github.com/vovakirdan/tui-breaker/internal/platform/tui"
	"github.com/vovakirdan/tui-breaker/internal/registry"
	"github.com/vovakirdan/tui-breaker/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagEndless    bool
	flagDebug      bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play breaker",
	Long: `Start playing. Mode is "campaign" (default) or "endless".

Controls:
  Left/Right or A/D - Move paddle
  Space             - Launch ball
  P/Esc             - Pause
  F3                - Toggle physics telemetry
  R                 - Restart (after game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slower ball, wider paddle, gentle progression
  normal - Default progression
  hard   - Faster ball, narrower paddle, aggressive progression
  fixed  - No progression, stays at config's initial level

Examples:
  breaker play
  breaker play --endless
  breaker play --difficulty hard
  breaker play --level 3
  breaker play --config ./my-breaker.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Starting level (1-based, campaign only)")
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play endless mode")
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Start with the physics telemetry overlay on")
}

// resolveGameID maps the CLI mode argument to a registered game ID.
func resolveGameID(args []string) (string, error) {
	if len(args) == 0 {
		return "breaker", nil
	}
	switch args[0] {
	case "campaign", "breaker":
		return "breaker", nil
	case "endless", "breaker_endless":
		return "breaker_endless", nil
	}
	return "", fmt.Errorf("unknown mode %q (use \"campaign\" or \"endless\")", args[0])
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID, err := resolveGameID(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if flagEndless {
		gameID = "breaker_endless"
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Apply CLI settings before game creation
	breaker.SetConfigPath(flagConfig)
	breaker.SetDifficultyPreset(flagDifficulty)
	breaker.SetDebug(flagDebug)
	if flagLevel > 0 {
		if flagLevel > breaker.LevelCount() {
			fmt.Fprintf(os.Stderr, "Error: level %d does not exist (there are %d levels)\n",
				flagLevel, breaker.LevelCount())
			os.Exit(1)
		}
		breaker.SetStartLevel(flagLevel)
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
