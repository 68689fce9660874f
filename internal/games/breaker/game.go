package breaker

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
	"github.com/vovakirdan/tui-breaker/internal/physics"
	"github.com/vovakirdan/tui-breaker/internal/registry"
)

// worldScale is the number of world pixels per terminal cell. Physics runs in
// world pixels; rendering divides back down to cells.
const worldScale = 10.0

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
	BossChar   = '█'
	EnemyChar  = '◆'
)

// Brick glyphs by row (cycling through)
var BrickGlyphs = []rune{'█', '▓', '▒', '░', '#', '+', '*', '='}

// Brick colors by row (cycling through)
var BrickColors = []core.Color{
	core.ColorBrightRed,
	core.ColorOrange,
	core.ColorBrightYellow,
	core.ColorBrightGreen,
	core.ColorBrightCyan,
	core.ColorBrightBlue,
	core.ColorBrightMagenta,
}

// Hard brick glyph (while it still has extra HP)
const HardBrickGlyph = '▓'

// Solid brick glyph
const SolidBrickGlyph = '█'

// Game state constants
const (
	StateServe    = "serve"    // Ball on paddle, waiting for launch
	StatePlaying  = "playing"  // Ball in play
	StateGameOver = "gameover" // No lives left
	StateWin      = "win"      // All levels completed (campaign only)
	StatePaused   = "paused"   // Game paused
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Play through levels, win at end
	ModeEndless                  // Play forever, score until game over
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// startLevel stores the 1-based starting level set via CLI (0 = first)
var startLevel int

// debugDefault enables the telemetry overlay from the first tick
var debugDefault bool

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetStartLevel sets the starting level (1-based).
func SetStartLevel(level int) {
	startLevel = level
}

// SetDebug turns the physics telemetry overlay on from game start.
func SetDebug(on bool) {
	debugDefault = on
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// ball is one ball in play: the physics state plus game bookkeeping. Each
// ball owns its own solver scratch so multiball frames never share buffers.
type ball struct {
	physics.Ball
	Stuck   bool
	Active  bool
	stickX  float64 // Offset from paddle center while glued
	scratch *physics.Scratch

	// Per-tick transients between the sweep pass and the rule post-pass.
	events    []physics.CollisionEvent
	paddleHit bool
}

// Game implements the breaker game logic.
type Game struct {
	mode GameMode

	// Game objects
	paddle    physics.Paddle
	balls     []*ball
	level     *Level
	obstacles map[int]*physics.Obstacle
	boss      *Boss
	enemies   []*Enemy

	// Physics index
	hash    *physics.SpatialHash
	broad   *physics.Broadphase
	dynamic []*physics.Obstacle
	rescue  physics.RescueConfig

	// Power-up system
	powerups *PowerUpManager

	// Game state
	state           string
	score           int
	lives           int
	levelIndex      int
	tickCount       int
	serveDelay      int     // Countdown before allowing serve after miss
	bricksTotal     int     // Total bricks at level start
	bricksDestroyed int     // Bricks destroyed this run
	endlessCycle    int     // Number of times levels have cycled (endless mode)
	basePaddleWidth int     // Paddle width in cells before effects
	baseBallSpeed   float64 // Base ball speed including brick-count ramps
	nextEnemyID     int
	lastEnemySpawn  int

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.BreakerConfig
	difficulty *config.DifficultyManager

	// Layout (computed from screen size)
	lay            layout
	worldW         float64
	worldH         float64
	minObstacleDim float64
	minScreenW     int
	minScreenH     int
	screenTooSmall bool

	// Telemetry
	debug     bool
	lastStats physics.FrameStats
}

// New creates a new breaker game instance (campaign mode).
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new breaker game instance in endless mode.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "breaker_endless"
	}
	return "breaker"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Breaker (Endless)"
	}
	return "Breaker"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, err := config.LoadBreaker(configPath)
	if err != nil {
		cfg = config.DefaultBreakerConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyBreakerPreset(&cfg, difficultyPreset)
	}

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.calculateLayout()

	g.minScreenW = 30
	g.minScreenH = 15
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH
	if g.screenTooSmall {
		return
	}

	// Initialize game state
	g.score = 0
	g.lives = cfg.Gameplay.Lives
	g.levelIndex = 0
	if startLevel > 0 && startLevel <= LevelCount() {
		g.levelIndex = startLevel - 1
	}
	g.tickCount = 0
	g.serveDelay = 0
	g.bricksDestroyed = 0
	g.endlessCycle = 0
	g.basePaddleWidth = cfg.Paddle.Width
	g.baseBallSpeed = cfg.Physics.BallSpeed
	g.nextEnemyID = firstEnemyID
	g.lastEnemySpawn = 0
	g.debug = debugDefault
	g.rescue = physics.DefaultRescueConfig()

	// Physics index covering the whole world; cells roughly two bricks wide.
	g.hash = physics.NewSpatialHash(
		physics.NewAABB(0, 0, g.worldW, g.worldH),
		float64(g.lay.brickWidth)*worldScale*2,
	)
	g.broad = physics.NewBroadphase(g.hash)

	// Initialize power-up manager
	g.powerups = NewPowerUpManager(runtime.Seed, DefaultPowerUpConfig())

	// Initialize paddle
	pw := float64(cfg.Paddle.Width) * worldScale
	g.paddle = physics.Paddle{
		ID:           paddleID,
		Box:          physics.NewAABB((g.worldW-pw)/2, float64(g.lay.paddleRow)*worldScale, pw, cfg.Paddle.Height),
		CornerRadius: cfg.Paddle.CornerRadius,
	}

	// Load level
	g.loadLevel(g.levelIndex)

	// Initialize balls slice with one ball on paddle
	g.balls = make([]*ball, 0, 8)
	g.placeBallOnPaddle()
	g.state = StateServe
}

// calculateLayout computes brick and paddle positions based on screen size.
func (g *Game) calculateLayout() {
	g.lay = layout{
		brickAreaTop: 2, // HUD takes top 2 rows
		brickHeight:  1,
		brickWidth:   g.runtime.ScreenW / 20, // 20 columns of bricks
		paddleRow:    g.runtime.ScreenH - 3,
	}
	if g.lay.brickWidth < 2 {
		g.lay.brickWidth = 2
	}

	g.worldW = float64(g.runtime.ScreenW) * worldScale
	g.worldH = float64(g.runtime.ScreenH) * worldScale

	// The thinnest thing a ball can cross: one brick row.
	g.minObstacleDim = float64(g.lay.brickHeight) * worldScale
}

// loadLevel loads a level by index and rebuilds the physics index.
func (g *Game) loadLevel(index int) {
	g.level = GetLevel(index)
	g.obstacles = g.level.buildObstacles(g.lay, g.hash, firstBrickID)
	g.bricksTotal = g.level.CountAlive()

	g.enemies = g.enemies[:0]
	g.boss = nil
	if g.level.HasBoss {
		top := float64(g.lay.brickAreaTop+g.level.Height+1) * worldScale
		g.boss = NewBoss(g.worldW, top, 10)
	}
	g.refreshDynamic()
}

// refreshDynamic rebuilds the dynamic obstacle list scanned by the broadphase.
func (g *Game) refreshDynamic() {
	g.dynamic = g.dynamic[:0]
	if g.boss != nil {
		g.dynamic = append(g.dynamic, &g.boss.Obstacle)
	}
	for _, e := range g.enemies {
		g.dynamic = append(g.dynamic, &e.Obstacle)
	}
	g.broad.SetDynamic(g.dynamic)
}

// placeBallOnPaddle creates a new ball resting on the paddle.
func (g *Game) placeBallOnPaddle() {
	b := &ball{
		Ball: physics.Ball{
			Pos:    physics.Vec2{X: g.paddle.Box.Center().X, Y: g.paddle.Box.Y - g.cfg.Physics.BallRadius - 1},
			Radius: g.cfg.Physics.BallRadius,
		},
		Stuck:   true,
		Active:  true,
		scratch: physics.NewScratch(),
	}
	g.balls = append(g.balls, b)
}

// launchBalls launches all stuck balls.
func (g *Game) launchBalls() {
	speed := g.currentBallSpeed()

	for i, b := range g.balls {
		if !b.Stuck || !b.Active {
			continue
		}
		// Launch upward with a slight alternating horizontal bias. Balls
		// glued off-center leave at the launcher angle for their offset.
		angle := 0.2
		if i%2 == 1 {
			angle = -angle
		}
		if half := g.paddle.Box.W / 2; half > 0 && b.stickX != 0 {
			r := clampUnit(b.stickX / half)
			maxAngle := g.cfg.Physics.MaxAngleDeg * math.Pi / 180
			angle = math.Copysign(math.Pow(math.Abs(r), g.cfg.Physics.CurveExponent), r) * maxAngle
		}
		b.Vel = physics.Vec2{X: speed * math.Sin(angle), Y: -speed * math.Cos(angle)}
		b.Stuck = false
		b.stickX = 0
	}

	g.state = StatePlaying
}

// clampUnit restricts a value to [-1, 1].
func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// glueBall sticks a ball to the paddle at its current horizontal offset.
func (g *Game) glueBall(b *ball) {
	half := g.paddle.Box.W / 2
	off := b.Pos.X - g.paddle.Box.Center().X
	if off > half {
		off = half
	} else if off < -half {
		off = -half
	}
	b.stickX = off
	b.Stuck = true
	b.Vel = physics.Vec2{}
	b.Pos.X = g.paddle.Box.Center().X + off
	b.Pos.Y = g.paddle.Box.Y - b.Radius - 1
}

// currentBallSpeed returns the target ball speed for this tick: the base
// speed plus brick-count ramps, scaled by difficulty, slowed by the slow-down
// effect, clamped to the configured maximum.
func (g *Game) currentBallSpeed() float64 {
	speed := g.difficulty.BallSpeed(g.baseBallSpeed, g.score, g.tickCount)
	if g.powerups.HasEffect(EffectSlowDown) {
		speed *= g.powerups.Config.SlowDownMult
	} else if g.powerups.HasEffect(EffectSpeedUp) {
		speed *= g.powerups.Config.SpeedUpMult
	}
	if limit := g.cfg.Physics.MaxBallSpeed; limit > 0 && speed > limit {
		speed = limit
	}
	if speed < 60 {
		speed = 60
	}
	return speed
}

func (g *Game) countActiveBalls() int {
	count := 0
	for _, b := range g.balls {
		if b.Active {
			count++
		}
	}
	return count
}

func (g *Game) countStuckBalls() int {
	count := 0
	for _, b := range g.balls {
		if b.Active && b.Stuck {
			count++
		}
	}
	return count
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && (g.state == StateGameOver || g.state == StateWin) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StatePlaying
		} else if g.state == StatePlaying {
			g.state = StatePaused
		}
	}

	if in.Has(core.ActionDebug) {
		g.debug = !g.debug
	}

	// Don't update if paused or game over
	if g.state == StatePaused || g.state == StateGameOver || g.state == StateWin {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	// Handle serve delay countdown
	if g.serveDelay > 0 {
		g.serveDelay--
		return core.StepResult{State: g.State()}
	}

	// Expire power-up effects
	expired := g.powerups.ExpireEffects(g.tickCount)
	for _, effectType := range expired {
		g.onEffectExpired(effectType)
	}

	dt := g.tickDT()

	// Handle paddle movement
	g.updatePaddle(in, dt)

	// Update pickups
	g.powerups.Update(dt, g.worldH)

	// Check pickup collection
	collected := g.powerups.CheckPaddleCollision(&g.paddle)
	if collected >= 0 {
		g.activatePickup(collected)
	}

	// Handle ball launch in serve state
	if g.state == StateServe {
		// Stuck balls follow the paddle
		for _, b := range g.balls {
			if b.Active && b.Stuck {
				b.Pos.X = g.paddle.Box.Center().X + b.stickX
				b.Pos.Y = g.paddle.Box.Y - b.Radius - 1
			}
		}

		if in.Has(core.ActionLaunch) {
			g.launchBalls()
		}
		return core.StepResult{State: g.State()}
	}

	// Release balls glued mid-play by the sticky effect
	if in.Has(core.ActionLaunch) && g.countStuckBalls() > 0 {
		g.launchBalls()
	}

	// Update dynamic actors
	g.updateBoss(dt)
	g.updateEnemies(dt)

	// Update all balls through the solver
	g.updateBalls(dt)

	return core.StepResult{State: g.State()}
}

// tickDT returns the fixed frame delta in seconds.
func (g *Game) tickDT() float64 {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	return 1.0 / float64(rate)
}

// updatePaddle handles paddle movement in world pixels.
func (g *Game) updatePaddle(in core.InputFrame, dt float64) {
	speed := g.cfg.Physics.PaddleSpeed

	if in.Has(core.ActionLeft) {
		g.paddle.Box.X -= speed * dt
	}
	if in.Has(core.ActionRight) {
		g.paddle.Box.X += speed * dt
	}

	// Clamp paddle position
	if g.paddle.Box.X < 0 {
		g.paddle.Box.X = 0
	}
	if g.paddle.Box.Right() > g.worldW {
		g.paddle.Box.X = g.worldW - g.paddle.Box.W
	}
}

// refreshPaddleWidth applies the difficulty shrink and active width effects,
// keeping the paddle centered on its previous position.
func (g *Game) refreshPaddleWidth() {
	cells := g.difficulty.PaddleWidth(g.basePaddleWidth, g.score, g.tickCount)

	if g.powerups.HasEffect(EffectWiden) {
		cells = int(float64(cells) * g.cfg.Gameplay.WidePaddleMult)
	} else if g.powerups.HasEffect(EffectShrink) {
		cells -= g.powerups.Config.ShrinkAmount
	}

	if cells < g.powerups.Config.MinPaddleWidth {
		cells = g.powerups.Config.MinPaddleWidth
	}
	if cells > g.powerups.Config.MaxPaddleWidth {
		cells = g.powerups.Config.MaxPaddleWidth
	}

	center := g.paddle.Box.Center().X
	g.paddle.Box.W = float64(cells) * worldScale
	g.paddle.Box.X = center - g.paddle.Box.W/2
	if g.paddle.Box.X < 0 {
		g.paddle.Box.X = 0
	}
	if g.paddle.Box.Right() > g.worldW {
		g.paddle.Box.X = g.worldW - g.paddle.Box.W
	}
}

// updateBoss advances the boss patrol and ejects any ball the patrol slid
// onto. The sweep only sees ball motion, so a moving boss can create overlap
// the solver never reports.
func (g *Game) updateBoss(dt float64) {
	if g.boss == nil || !g.boss.Obstacle.Visible {
		return
	}
	g.boss.Update(dt, g.worldW)

	box := g.boss.Obstacle.Box
	for _, b := range g.balls {
		if !b.Active || b.Stuck {
			continue
		}
		if !box.Expand(b.Radius).Contains(b.Pos) {
			continue
		}
		if b.Pos.Y >= box.Center().Y {
			// Below the boss midline: eject downward, toward the paddle.
			b.Pos.Y = box.Bottom() + b.Radius + 1
			if b.Vel.Y < 0 {
				b.Vel.Y = -b.Vel.Y
			}
		} else {
			// Above: eject upward.
			b.Pos.Y = box.Y - b.Radius - 1
			if b.Vel.Y > 0 {
				b.Vel.Y = -b.Vel.Y
			}
		}
	}
}

// updateEnemies advances enemies, despawns the ones past the paddle, and
// spawns new ones in endless mode.
func (g *Game) updateEnemies(dt float64) {
	despawned := false
	alive := g.enemies[:0]
	for _, e := range g.enemies {
		e.Update(dt, g.worldW)
		if e.Obstacle.Box.Y > g.paddle.Box.Bottom() {
			e.Obstacle.Visible = false
		}
		if e.Obstacle.Visible {
			alive = append(alive, e)
		} else {
			despawned = true
		}
	}
	g.enemies = alive

	spawning := g.mode == ModeEndless || (g.boss != nil && g.boss.Obstacle.Visible)
	if spawning {
		interval := g.difficulty.EnemySpawnInterval(600, g.score, g.tickCount)
		if g.tickCount-g.lastEnemySpawn >= interval {
			g.spawnEnemy()
			g.lastEnemySpawn = g.tickCount
			despawned = true // List changed either way
		}
	}

	if despawned {
		g.refreshDynamic()
	}
}

// spawnEnemy creates an enemy at a random position just below the bricks.
func (g *Game) spawnEnemy() {
	margin := 3.0 * worldScale
	x := margin + g.powerups.RNG.Float64()*(g.worldW-2*margin)
	y := float64(g.lay.brickAreaTop+g.level.Height+1) * worldScale
	e := NewEnemy(g.nextEnemyID, x, y)
	g.nextEnemyID++
	g.enemies = append(g.enemies, e)
}

// updateBalls runs the solver for every ball in play, then applies the
// collected collision events as game rules in a single post-pass.
func (g *Game) updateBalls(dt float64) {
	fireball := g.powerups.HasEffect(EffectFireball)
	speed := g.currentBallSpeed()

	pcfg := physics.Config{
		DT:               dt,
		MaxTOIIterations: g.cfg.Physics.MaxTOIIterations,
		Epsilon:          g.cfg.Physics.Epsilon,
		MinObstacleDim:   g.minObstacleDim,
		TravelFraction:   g.cfg.Physics.TravelFraction,
		Bounds:           physics.NewAABB(0, 0, g.worldW, g.worldH),
		Query:            g.broad.Query,
		Paddle:           &g.paddle,
		Launcher: physics.LauncherConfig{
			Enabled:       true,
			MaxAngle:      g.cfg.Physics.MaxAngleDeg * math.Pi / 180,
			CurveExponent: g.cfg.Physics.CurveExponent,
		},
		Tick: uint64(g.tickCount), //#nosec G115 -- tick counter is non-negative
	}
	pcfg.Substeps = physics.SubstepsFor(speed, dt, g.minObstacleDim, pcfg.TravelFraction)

	sticky := g.powerups.HasEffect(EffectSticky)

	// Sweep pass: every ball solves against the same frame-stable geometry.
	// Brick damage and gluing wait for the post-pass below, so a contact by
	// one ball never alters what a later ball in the same tick sweeps
	// against.
	var stats physics.FrameStats
	for _, b := range g.balls {
		b.events = nil
		b.paddleHit = false
		if !b.Active {
			continue
		}
		if b.Stuck {
			// Glued balls ride the paddle until released.
			b.Pos.X = g.paddle.Box.Center().X + b.stickX
			b.Pos.Y = g.paddle.Box.Y - b.Radius - 1
			continue
		}

		b.Fireball = fireball

		// Hold the ball at the target speed; effects and ramps change the
		// magnitude, never the direction.
		if dir, ok := b.Vel.Normalized(); ok {
			b.Vel = dir.Scale(speed)
		}

		prev := b.Pos
		res := physics.Solve(&b.Ball, &pcfg, b.scratch)
		b.Ball = *res.Ball
		b.events = res.Events

		stats.Substeps = res.Stats.Substeps
		stats.TOIIterations += res.Stats.TOIIterations
		stats.Collisions += res.Stats.Collisions
		stats.Candidates += res.Stats.Candidates
		stats.SolveMicros += res.Stats.SolveMicros

		// Discrete safety net: a fast paddle sliding into a slow ball is
		// invisible to the sweep, so overlaps are resolved after the fact.
		if _, hit := physics.ResolvePaddle(&b.Ball, prev, &g.paddle, g.rescue); hit {
			b.paddleHit = true
		}

		// Bottom is open; leaving it loses the ball.
		if b.Pos.Y-b.Radius > g.worldH {
			b.Active = false
		}
	}
	g.lastStats = stats

	// Rule post-pass: brick and boss damage, scoring, and sticky gluing. A
	// level clear swaps the obstacle set and the ball list, so application
	// stops as soon as the state leaves play.
	for _, b := range g.balls {
		events := b.events
		b.events = nil
		for _, ev := range events {
			g.applyCollision(ev)
			if g.state != StatePlaying {
				return
			}
			if sticky && b.Active && ev.Surface == physics.SurfacePaddleTop {
				g.glueBall(b)
			}
		}
		if sticky && b.Active && !b.Stuck && b.paddleHit {
			g.glueBall(b)
		}
	}

	// Check if all balls are lost
	if g.countActiveBalls() == 0 {
		g.handleMiss()
	} else if g.countStuckBalls() > 0 && g.countStuckBalls() == g.countActiveBalls() {
		g.state = StateServe
	}
}

// applyCollision translates one solver event into game rules: brick damage,
// boss damage, enemy kills, scoring, and power-up drops.
func (g *Game) applyCollision(ev physics.CollisionEvent) {
	switch {
	case ev.ObstacleID == bossID:
		if g.boss != nil && g.boss.Hit(g.tickCount) {
			g.score += g.cfg.Gameplay.BossPoints
			g.refreshDynamic()
			g.checkLevelClear()
		}

	case ev.ObstacleID >= firstEnemyID:
		for _, e := range g.enemies {
			if e.Obstacle.ID == ev.ObstacleID && e.Hit(g.tickCount) {
				g.score += g.cfg.Gameplay.EnemyPoints
				g.refreshDynamic()
				break
			}
		}

	case ev.ObstacleID >= firstBrickID:
		g.hitBrick(ev.ObstacleID)
	}
}

// hitBrick applies one hit of damage to a brick.
func (g *Game) hitBrick(obstacleID int) {
	brick := g.level.brickAt(obstacleID)
	if brick == nil || !brick.Alive || brick.Type == BrickSolid {
		return
	}

	brick.HP--
	if brick.HP > 0 {
		return
	}

	brick.Alive = false
	g.score += brick.Points
	g.bricksDestroyed++

	// Remove from the physics index so the next sweep never sees it.
	if o, ok := g.obstacles[obstacleID]; ok {
		o.Visible = false
		g.hash.Remove(obstacleID)
	}

	// Ramp the ball speed every N bricks.
	if n := g.cfg.Gameplay.SpeedUpEveryN; n > 0 && g.bricksDestroyed%n == 0 {
		g.baseBallSpeed += g.cfg.Gameplay.SpeedUpAmount
	}

	// Try to drop a power-up from the brick's center.
	if o, ok := g.obstacles[obstacleID]; ok {
		chance := g.difficulty.DropChance(g.cfg.Gameplay.DropChance, g.score, g.tickCount)
		g.powerups.TrySpawnPickup(o.Box.Center(), chance)
	}

	g.checkLevelClear()
}

// checkLevelClear advances the level once all destroyable bricks are gone and
// any boss is dead.
func (g *Game) checkLevelClear() {
	if g.level.CountAlive() > 0 {
		return
	}
	if g.boss != nil && g.boss.Obstacle.Visible {
		return
	}
	g.handleLevelClear()
}

// activatePickup activates a collected pickup.
func (g *Game) activatePickup(pickupType PickupType) {
	gameplay := g.cfg.Gameplay

	switch pickupType {
	case PickupWiden:
		g.powerups.AddEffect(EffectWiden, g.tickCount, gameplay.PowerUpTicks)
		g.powerups.RemoveEffect(EffectShrink)
		g.refreshPaddleWidth()

	case PickupShrink:
		g.powerups.AddEffect(EffectShrink, g.tickCount, gameplay.PowerUpTicks)
		g.powerups.RemoveEffect(EffectWiden)
		g.refreshPaddleWidth()

	case PickupMultiball:
		g.spawnMultiballs(g.powerups.Config.MultiballCount)

	case PickupFireball:
		g.powerups.AddEffect(EffectFireball, g.tickCount, gameplay.FireballTicks)

	case PickupSlowDown:
		g.powerups.AddEffect(EffectSlowDown, g.tickCount, gameplay.PowerUpTicks)
		g.powerups.RemoveEffect(EffectSpeedUp)

	case PickupSpeedUp:
		g.powerups.AddEffect(EffectSpeedUp, g.tickCount, gameplay.PowerUpTicks)
		g.powerups.RemoveEffect(EffectSlowDown)

	case PickupSticky:
		g.powerups.AddEffect(EffectSticky, g.tickCount, gameplay.PowerUpTicks)

	case PickupExtraLife:
		g.lives++
	}
}

// onEffectExpired handles effect expiration.
func (g *Game) onEffectExpired(effectType EffectType) {
	switch effectType {
	case EffectWiden, EffectShrink:
		g.refreshPaddleWidth()
	case EffectFireball:
		for _, b := range g.balls {
			b.Fireball = false
			b.Cooldowns = nil
		}
	case EffectSticky:
		if g.state == StatePlaying {
			g.launchBalls()
		}
	}
}

// spawnMultiballs clones an active ball into extra balls at spread angles.
func (g *Game) spawnMultiballs(count int) {
	var source *ball
	for _, b := range g.balls {
		if b.Active && !b.Stuck {
			source = b
			break
		}
	}
	if source == nil {
		return
	}

	for i := 0; i < count; i++ {
		// Rotate the source velocity by an alternating spread angle.
		angle := 0.45 * float64(i/2+1)
		if i%2 == 1 {
			angle = -angle
		}
		sin, cos := math.Sin(angle), math.Cos(angle)
		vel := physics.Vec2{
			X: source.Vel.X*cos - source.Vel.Y*sin,
			Y: source.Vel.X*sin + source.Vel.Y*cos,
		}

		g.balls = append(g.balls, &ball{
			Ball: physics.Ball{
				Pos:      source.Pos,
				Vel:      vel,
				Radius:   source.Radius,
				Fireball: source.Fireball,
			},
			Active:  true,
			scratch: physics.NewScratch(),
		})
	}
}

// handleMiss handles when all balls are lost.
func (g *Game) handleMiss() {
	g.lives--

	if g.lives <= 0 {
		g.state = StateGameOver
		return
	}

	// Clear balls and power-ups; paddle and speed effects reset with them.
	g.balls = g.balls[:0]
	g.powerups.Pickups = g.powerups.Pickups[:0]
	g.powerups.Effects = g.powerups.Effects[:0]
	g.refreshPaddleWidth()

	g.placeBallOnPaddle()
	g.state = StateServe
	g.serveDelay = 60 // 1 second before the player can serve again
}

// handleLevelClear handles when all bricks (and any boss) are destroyed.
func (g *Game) handleLevelClear() {
	g.levelIndex++

	if g.mode == ModeCampaign {
		if g.levelIndex >= LevelCount() {
			g.state = StateWin
			return
		}
	} else {
		if g.levelIndex >= LevelCount() {
			g.levelIndex = 0
			g.endlessCycle++
			// Each cycle starts a little faster.
			g.baseBallSpeed += 20
		}
	}

	g.loadLevel(g.levelIndex)

	// Clear pickups but keep effects
	g.powerups.Pickups = g.powerups.Pickups[:0]

	// Reset balls - keep one on paddle
	g.balls = g.balls[:0]
	g.placeBallOnPaddle()
	g.state = StateServe
	g.serveDelay = 60
}

// Stats returns the solver telemetry aggregated over the most recent tick.
func (g *Game) Stats() physics.FrameStats {
	return g.lastStats
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	level := g.levelIndex + 1
	if g.mode == ModeEndless {
		level = g.endlessCycle*LevelCount() + g.levelIndex + 1
	}
	return core.GameState{
		Score:    g.score,
		Lives:    g.lives,
		Level:    level,
		GameOver: g.state == StateGameOver || g.state == StateWin,
		Won:      g.state == StateWin,
		Paused:   g.state == StatePaused,
	}
}

// cellOf converts a world coordinate to a terminal cell index.
func cellOf(v float64) int {
	return int(v / worldScale)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderHUD(dst)
	g.renderBricks(dst)
	g.renderBoss(dst)
	g.renderEnemies(dst)
	g.renderPickups(dst)
	g.renderPaddle(dst)
	g.renderBalls(dst)
	g.renderOverlay(dst)

	if g.debug {
		g.renderTelemetry(dst)
	}
}

// renderHUD draws the score, lives, and level indicator.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", g.lives))

	var levelText string
	if g.mode == ModeEndless {
		levelText = fmt.Sprintf("Level: %d", g.State().Level)
	} else {
		levelText = fmt.Sprintf("Level: %d/%d", g.levelIndex+1, LevelCount())
	}
	dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)

	// Effects display (compact) on row 1
	effectsStr := g.buildEffectsString()
	if effectsStr != "" {
		dst.DrawTextColored(1, 1, effectsStr, core.ColorBrightCyan)
	} else {
		for x := 0; x < dst.Width(); x++ {
			dst.Set(x, 1, '─')
		}
	}
}

// buildEffectsString creates a compact effects display.
func (g *Game) buildEffectsString() string {
	if len(g.powerups.Effects) == 0 {
		return ""
	}

	result := ""
	for _, e := range g.powerups.Effects {
		secs := e.TicksRemaining(g.tickCount) / 60
		if result != "" {
			result += " "
		}
		result += fmt.Sprintf("%s(%d)", e.Type.String(), secs)
	}
	return result
}

// renderBricks draws all alive bricks.
func (g *Game) renderBricks(dst *core.Screen) {
	for row := 0; row < g.level.Height; row++ {
		for col := 0; col < g.level.Width; col++ {
			brick := g.level.Bricks[row][col]
			if !brick.Alive || brick.Type == BrickEmpty {
				continue
			}

			screenY := g.lay.brickAreaTop + row*g.lay.brickHeight
			screenX := col * g.lay.brickWidth

			var glyph rune
			color := BrickColors[row%len(BrickColors)]
			switch brick.Type {
			case BrickHard:
				if brick.HP > 1 {
					glyph = HardBrickGlyph
					color = core.ColorYellow
				} else {
					glyph = BrickGlyphs[row%len(BrickGlyphs)]
				}
			case BrickSolid:
				glyph = SolidBrickGlyph
				color = core.ColorGray
			default:
				glyph = BrickGlyphs[row%len(BrickGlyphs)]
			}

			for dx := 0; dx < g.lay.brickWidth; dx++ {
				dst.SetCell(screenX+dx, screenY, glyph, color)
			}
		}
	}
}

// renderBoss draws the boss hitbox and its health bar.
func (g *Game) renderBoss(dst *core.Screen) {
	if g.boss == nil || !g.boss.Obstacle.Visible {
		return
	}
	box := g.boss.Obstacle.Box
	x0, x1 := cellOf(box.X), cellOf(box.Right())
	y0, y1 := cellOf(box.Y), cellOf(box.Bottom())
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dst.SetCell(x, y, BossChar, core.ColorBrightRed)
		}
	}

	hp := fmt.Sprintf("HP %d/%d", g.boss.HP, g.boss.MaxHP)
	dst.DrawTextColored(x0+(x1-x0-len(hp))/2, y0-1, hp, core.ColorBrightRed)
}

// renderEnemies draws the drifters.
func (g *Game) renderEnemies(dst *core.Screen) {
	for _, e := range g.enemies {
		if !e.Obstacle.Visible {
			continue
		}
		c := e.Obstacle.Box.Center()
		dst.SetCell(cellOf(c.X), cellOf(c.Y), EnemyChar, core.ColorBrightMagenta)
	}
}

// renderPickups draws falling power-ups.
func (g *Game) renderPickups(dst *core.Screen) {
	for _, pickup := range g.powerups.Pickups {
		if !pickup.Active {
			continue
		}
		dst.SetCell(cellOf(pickup.Pos.X), cellOf(pickup.Pos.Y), pickup.Type.Glyph(), core.ColorBrightGreen)
	}
}

// renderPaddle draws the player's paddle.
func (g *Game) renderPaddle(dst *core.Screen) {
	y := cellOf(g.paddle.Box.Y)
	x0, x1 := cellOf(g.paddle.Box.X), cellOf(g.paddle.Box.Right())
	for x := x0; x <= x1 && x < dst.Width(); x++ {
		dst.SetCell(x, y, PaddleChar, core.ColorBrightWhite)
	}
}

// renderBalls draws all balls.
func (g *Game) renderBalls(dst *core.Screen) {
	fireball := g.powerups.HasEffect(EffectFireball)
	color := core.ColorBrightYellow
	if fireball {
		color = core.ColorBrightRed
	}
	for _, b := range g.balls {
		if !b.Active {
			continue
		}
		dst.SetCell(cellOf(b.Pos.X), cellOf(b.Pos.Y), BallChar, color)
	}
}

// renderTelemetry draws the solver stats row at the bottom of the screen.
func (g *Game) renderTelemetry(dst *core.Screen) {
	s := g.lastStats
	line := fmt.Sprintf("sub:%d toi:%d hit:%d cand:%d us:%d balls:%d",
		s.Substeps, s.TOIIterations, s.Collisions, s.Candidates, s.SolveMicros, g.countActiveBalls())
	dst.DrawTextColored(1, dst.Height()-1, line, core.ColorGray)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StateServe:
		if g.serveDelay <= 0 {
			dst.DrawTextCentered(dst.Height()-1, "Press SPACE to launch")
		} else {
			dst.DrawTextCentered(dst.Height()-1, "Get ready...")
		}

	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case StateGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.score)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)

	case StateWin:
		subtitle := fmt.Sprintf("Final Score: %d  |  Press R to restart", g.score)
		g.drawCenteredBox(dst, "YOU WIN!", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// Register the games with the registry
func init() {
	registry.Register("breaker", func() registry.Game {
		return New()
	})
	registry.Register("breaker_endless", func() registry.Game {
		return NewEndless()
	})
}
