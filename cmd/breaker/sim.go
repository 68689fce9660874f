package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breaker/internal/core"
	"github.com/vovakirdan/tui-breaker/internal/games/breaker"
)

var (
	flagSimTicks  int
	flagSimMode   string
	flagSimVerify bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Run the game headlessly with a scripted input sequence.

Useful for determinism checks and physics regression testing:
the same seed and tick count always produce the same state hash.

Examples:
  breaker sim --ticks 3600 --seed 42
  breaker sim --mode endless --ticks 10000
  breaker sim --seed 42 --verify    # run twice, compare hashes`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Number of ticks to simulate")
	simCmd.Flags().StringVar(&flagSimMode, "mode", "campaign", "Mode: campaign or endless")
	simCmd.Flags().BoolVar(&flagSimVerify, "verify", false, "Run the simulation twice and compare state hashes")
}

// trackingInput generates a deterministic input sequence: launch early, then
// drive the paddle toward the first active ball.
func trackingInput(game *breaker.Game, tick int) core.InputFrame {
	in := core.NewInputFrame()
	if tick >= 10 {
		in.Set(core.ActionLaunch)
	}

	snap := game.Snapshot()
	paddleCenter := snap.PaddleX + snap.PaddleW/2
	for i := 0; i < snap.BallCount; i++ {
		idx := i * 7
		if idx+6 >= len(snap.BallData) || snap.BallData[idx+6] != 1 {
			continue
		}
		ballX := snap.BallData[idx]
		switch {
		case ballX < paddleCenter-snap.PaddleW/4:
			in.Set(core.ActionLeft)
		case ballX > paddleCenter+snap.PaddleW/4:
			in.Set(core.ActionRight)
		}
		break
	}
	return in
}

// simulate runs one full headless game and returns the final snapshot hash.
func simulate(logger *log.Logger, mode string, ticks int, seed int64) uint64 {
	var game *breaker.Game
	if mode == "endless" {
		game = breaker.NewEndless()
	} else {
		game = breaker.New()
	}

	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: flagFPS,
		Seed:     seed,
	}
	game.Reset(cfg)

	start := time.Now()
	for tick := 0; tick < ticks; tick++ {
		result := game.Step(trackingInput(game, tick))
		if result.State.GameOver {
			logger.Info("game over", "tick", tick, "score", result.State.Score, "won", result.State.Won)
			break
		}
		if tick > 0 && tick%600 == 0 {
			stats := game.Stats()
			logger.Debug("progress",
				"tick", tick,
				"score", result.State.Score,
				"lives", result.State.Lives,
				"level", result.State.Level,
				"substeps", stats.Substeps,
				"toi", stats.TOIIterations,
				"hits", stats.Collisions,
				"us", stats.SolveMicros,
			)
		}
	}
	elapsed := time.Since(start)

	snap := game.Snapshot()
	hash := snap.Hash()
	state := game.State()

	logger.Info("simulation finished",
		"ticks", ticks,
		"elapsed", elapsed,
		"score", state.Score,
		"lives", state.Lives,
		"level", state.Level,
		"hash", hash,
	)
	return hash
}

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "breaker-sim",
	})

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Info("using time-based seed", "seed", seed)
	}

	hash := simulate(logger, flagSimMode, flagSimTicks, seed)

	if flagSimVerify {
		second := simulate(logger, flagSimMode, flagSimTicks, seed)
		if second != hash {
			logger.Error("determinism check FAILED", "first", hash, "second", second)
			os.Exit(1)
		}
		logger.Info("determinism check passed", "hash", hash)
	}
}
