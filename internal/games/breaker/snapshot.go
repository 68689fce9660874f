package breaker

import (
	"math"

	"github.com/vovakirdan/tui-breaker/internal/physics"
)

// Snapshot contains the complete game state for replay/save testing.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick            uint64
	PaddleX         float64
	PaddleW         float64
	Score           int
	Lives           int
	LevelIndex      int
	BricksRemaining int
	State           string
	ServeDelay      int

	// Game mode and endless tracking
	Mode         int // 0=Campaign, 1=Endless
	EndlessCycle int
	BallSpeed    float64 // Current base ball speed, px/sec

	// Multi-ball state (each ball is 7 floats: X, Y, VX, VY, Stuck, StickX, Active)
	BallCount int
	BallData  []float64

	// Pickup state (each pickup is 5 floats: Type, X, Y, VY, Active)
	PickupCount int
	PickupData  []float64

	// Effect state (each effect is 2 ints: Type, UntilTick)
	EffectCount int
	EffectData  []int

	// Brick states (flattened: row*width + col = index)
	// Each brick is 2 ints: Alive, HP
	BrickData []int

	// Boss state
	BossHP int
	BossX  float64

	// RNG state for power-up manager
	RNGState uint64
}

func boolF(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	// Flatten brick states
	brickCount := g.level.Width * g.level.Height
	brickData := make([]int, brickCount*2)

	for row := 0; row < g.level.Height; row++ {
		for col := 0; col < g.level.Width; col++ {
			idx := (row*g.level.Width + col) * 2
			brick := g.level.Bricks[row][col]
			if brick.Alive {
				brickData[idx] = 1
			}
			brickData[idx+1] = brick.HP
		}
	}

	// Flatten ball states
	ballData := make([]float64, len(g.balls)*7)
	for i, b := range g.balls {
		idx := i * 7
		ballData[idx] = b.Pos.X
		ballData[idx+1] = b.Pos.Y
		ballData[idx+2] = b.Vel.X
		ballData[idx+3] = b.Vel.Y
		ballData[idx+4] = boolF(b.Stuck)
		ballData[idx+5] = b.stickX
		ballData[idx+6] = boolF(b.Active)
	}

	// Flatten pickup states
	pickupData := make([]float64, len(g.powerups.Pickups)*5)
	for i, pickup := range g.powerups.Pickups {
		idx := i * 5
		pickupData[idx] = float64(pickup.Type)
		pickupData[idx+1] = pickup.Pos.X
		pickupData[idx+2] = pickup.Pos.Y
		pickupData[idx+3] = pickup.VY
		pickupData[idx+4] = boolF(pickup.Active)
	}

	// Flatten effect states
	effectData := make([]int, len(g.powerups.Effects)*2)
	for i, effect := range g.powerups.Effects {
		idx := i * 2
		effectData[idx] = int(effect.Type)
		effectData[idx+1] = effect.UntilTick
	}

	snap := Snapshot{
		Tick:            uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		PaddleX:         g.paddle.Box.X,
		PaddleW:         g.paddle.Box.W,
		Score:           g.score,
		Lives:           g.lives,
		LevelIndex:      g.levelIndex,
		BricksRemaining: g.level.CountAlive(),
		State:           g.state,
		ServeDelay:      g.serveDelay,

		Mode:         int(g.mode),
		EndlessCycle: g.endlessCycle,
		BallSpeed:    g.baseBallSpeed,

		BallCount:   len(g.balls),
		BallData:    ballData,
		PickupCount: len(g.powerups.Pickups),
		PickupData:  pickupData,
		EffectCount: len(g.powerups.Effects),
		EffectData:  effectData,

		BrickData: brickData,
		RNGState:  g.powerups.RNG.state,
	}

	if g.boss != nil {
		snap.BossHP = g.boss.HP
		snap.BossX = g.boss.Obstacle.Box.X
	}

	return snap
}

// ApplySnapshot restores game state from a snapshot.
func (g *Game) ApplySnapshot(snap Snapshot) {
	g.tickCount = int(snap.Tick) //#nosec G115 -- tick count fits in int
	g.paddle.Box.X = snap.PaddleX
	g.paddle.Box.W = snap.PaddleW
	g.score = snap.Score
	g.lives = snap.Lives
	g.levelIndex = snap.LevelIndex
	g.state = snap.State
	g.serveDelay = snap.ServeDelay

	g.mode = GameMode(snap.Mode)
	g.endlessCycle = snap.EndlessCycle
	g.baseBallSpeed = snap.BallSpeed

	// Restore brick states, then rebuild the physics index so visibility
	// matches the restored layout.
	if g.level != nil && len(snap.BrickData) == g.level.Width*g.level.Height*2 {
		for row := 0; row < g.level.Height; row++ {
			for col := 0; col < g.level.Width; col++ {
				idx := (row*g.level.Width + col) * 2
				g.level.Bricks[row][col].Alive = snap.BrickData[idx] == 1
				g.level.Bricks[row][col].HP = snap.BrickData[idx+1]
			}
		}
		g.obstacles = g.level.buildObstacles(g.lay, g.hash, firstBrickID)
	}

	// Restore ball states
	g.balls = make([]*ball, 0, snap.BallCount)
	for i := 0; i < snap.BallCount; i++ {
		idx := i * 7
		if idx+6 >= len(snap.BallData) {
			break
		}
		g.balls = append(g.balls, &ball{
			Ball: physics.Ball{
				Pos:    physics.Vec2{X: snap.BallData[idx], Y: snap.BallData[idx+1]},
				Vel:    physics.Vec2{X: snap.BallData[idx+2], Y: snap.BallData[idx+3]},
				Radius: g.cfg.Physics.BallRadius,
			},
			Stuck:   snap.BallData[idx+4] == 1,
			stickX:  snap.BallData[idx+5],
			Active:  snap.BallData[idx+6] == 1,
			scratch: physics.NewScratch(),
		})
	}

	// Restore pickup states
	g.powerups.Pickups = make([]*Pickup, 0, snap.PickupCount)
	for i := 0; i < snap.PickupCount; i++ {
		idx := i * 5
		if idx+4 >= len(snap.PickupData) {
			break
		}
		g.powerups.Pickups = append(g.powerups.Pickups, &Pickup{
			Type:   PickupType(int(snap.PickupData[idx])),
			Pos:    physics.Vec2{X: snap.PickupData[idx+1], Y: snap.PickupData[idx+2]},
			VY:     snap.PickupData[idx+3],
			Active: snap.PickupData[idx+4] == 1,
		})
	}

	// Restore effect states
	g.powerups.Effects = make([]*Effect, 0, snap.EffectCount)
	for i := 0; i < snap.EffectCount; i++ {
		idx := i * 2
		if idx+1 >= len(snap.EffectData) {
			break
		}
		g.powerups.Effects = append(g.powerups.Effects, &Effect{
			Type:      EffectType(snap.EffectData[idx]),
			UntilTick: snap.EffectData[idx+1],
		})
	}

	// Restore boss state
	if g.boss != nil {
		g.boss.HP = snap.BossHP
		g.boss.Obstacle.Box.X = snap.BossX
		g.boss.Obstacle.Visible = snap.BossHP > 0
	}
	g.refreshDynamic()

	// Restore RNG state
	g.powerups.RNG.state = snap.RNGState
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + math.Float64bits(snap.PaddleX)
	h = h*31 + math.Float64bits(snap.PaddleW)
	h = h*31 + uint64(snap.Score)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BricksRemaining) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Mode)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EndlessCycle)    //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.BallSpeed)
	h = h*31 + uint64(snap.BallCount)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PickupCount) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EffectCount) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BossHP)      //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.BossX)

	for _, v := range snap.BallData {
		h = h*31 + math.Float64bits(v)
	}

	for _, v := range snap.PickupData {
		h = h*31 + math.Float64bits(v)
	}

	for _, v := range snap.EffectData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.BrickData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState

	return h
}
