package breaker

import (
	"testing"

	"github.com/vovakirdan/tui-breaker/internal/core"
	"github.com/vovakirdan/tui-breaker/internal/physics"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func TestGameDeterminism(t *testing.T) {
	// Given the same inputs, the game must produce identical results.
	cfg := testRuntime(12345)

	// Launch at tick 10, then alternate left/right movement.
	inputSequence := make([]core.InputFrame, 300)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		if i == 10 {
			inputSequence[i].Set(core.ActionLaunch)
		} else if i > 10 && i%5 < 3 {
			inputSequence[i].Set(core.ActionRight)
		} else if i > 10 {
			inputSequence[i].Set(core.ActionLeft)
		}
	}

	run := func() Snapshot {
		g := New()
		g.Reset(cfg)
		for _, in := range inputSequence {
			result := g.Step(in)
			if result.State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Score, snap2.Score)
	}
	if snap1.Tick != snap2.Tick {
		t.Errorf("Determinism failed: tick counts differ. Run1=%d, Run2=%d", snap1.Tick, snap2.Tick)
	}
	if snap1.PaddleX != snap2.PaddleX {
		t.Errorf("Determinism failed: paddle positions differ. Run1=%v, Run2=%v", snap1.PaddleX, snap2.PaddleX)
	}
}

func TestGameReset(t *testing.T) {
	cfg := testRuntime(42)

	g := New()
	g.Reset(cfg)

	// Play a few ticks
	launch := core.NewInputFrame()
	launch.Set(core.ActionLaunch)
	g.Step(launch)

	for i := 0; i < 50; i++ {
		in := core.NewInputFrame()
		if i%2 == 0 {
			in.Set(core.ActionRight)
		}
		g.Step(in)
	}

	// Reset should clear state
	g.Reset(cfg)

	if g.score != 0 {
		t.Errorf("Reset should clear score, got %d", g.score)
	}
	if g.state != StateServe {
		t.Errorf("Reset should set state to serve, got %s", g.state)
	}
	if g.tickCount != 0 {
		t.Errorf("Reset should clear tickCount, got %d", g.tickCount)
	}
	if g.levelIndex != 0 {
		t.Errorf("Reset should reset levelIndex, got %d", g.levelIndex)
	}
	if len(g.balls) != 1 || !g.balls[0].Stuck {
		t.Error("Reset should leave one stuck ball on the paddle")
	}
}

func TestGameServeState(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	if g.state != StateServe {
		t.Errorf("Game should start in serve state, got %s", g.state)
	}

	b := g.balls[0]
	if b.Vel.X != 0 || b.Vel.Y != 0 {
		t.Errorf("Ball should have zero velocity in serve state, got %v", b.Vel)
	}

	// Stuck ball follows the paddle
	right := core.NewInputFrame()
	right.Set(core.ActionRight)
	g.Step(right)

	if b.Pos.X != g.paddle.Box.Center().X {
		t.Errorf("Stuck ball should follow paddle center, ball X=%v, paddle center=%v",
			b.Pos.X, g.paddle.Box.Center().X)
	}

	// Launch the ball
	launch := core.NewInputFrame()
	launch.Set(core.ActionLaunch)
	g.Step(launch)

	if g.state != StatePlaying {
		t.Errorf("Game should be playing after launch, got %s", g.state)
	}
	if b.Vel.Y >= 0 {
		t.Errorf("Ball should move up after launch, got Vel.Y=%v", b.Vel.Y)
	}
}

func TestPaddleMovement(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	initialX := g.paddle.Box.X

	right := core.NewInputFrame()
	right.Set(core.ActionRight)
	g.Step(right)

	if g.paddle.Box.X <= initialX {
		t.Errorf("Paddle should move right, was %v, now %v", initialX, g.paddle.Box.X)
	}

	newX := g.paddle.Box.X
	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	g.Step(left)

	if g.paddle.Box.X >= newX {
		t.Errorf("Paddle should move left, was %v, now %v", newX, g.paddle.Box.X)
	}
}

func TestPaddleStaysInBounds(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	for i := 0; i < 600; i++ {
		g.Step(left)
	}

	if g.paddle.Box.X < 0 {
		t.Errorf("Paddle left edge clamped at 0, got %v", g.paddle.Box.X)
	}

	right := core.NewInputFrame()
	right.Set(core.ActionRight)
	for i := 0; i < 1200; i++ {
		g.Step(right)
	}

	if g.paddle.Box.Right() > g.worldW {
		t.Errorf("Paddle right edge clamped at %v, got %v", g.worldW, g.paddle.Box.Right())
	}
}

func TestBrickDestruction(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	g.state = StatePlaying

	initialAlive := g.level.CountAlive()

	// Aim the ball straight up at the bottom brick row.
	b := g.balls[0]
	b.Stuck = false
	b.Pos = physics.Vec2{X: 20, Y: 85}
	b.Vel = physics.Vec2{X: 0, Y: -300}

	noInput := core.NewInputFrame()
	for i := 0; i < 20; i++ {
		g.Step(noInput)
	}

	if g.level.CountAlive() >= initialAlive {
		t.Error("Ball moving into the brick field should destroy a brick")
	}
	if g.score <= 0 {
		t.Errorf("Destroying a brick should score points, got %d", g.score)
	}
}

func TestWallBounce(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	g.state = StatePlaying

	b := g.balls[0]
	b.Stuck = false
	b.Pos = physics.Vec2{X: 15, Y: 120}
	b.Vel = physics.Vec2{X: -300, Y: 0}

	noInput := core.NewInputFrame()
	for i := 0; i < 5; i++ {
		g.Step(noInput)
	}

	if b.Vel.X <= 0 {
		t.Errorf("Ball should bounce right off the left wall, Vel.X=%v", b.Vel.X)
	}
}

func TestBallLossDecrementsLives(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	g.state = StatePlaying

	initialLives := g.lives

	// Put the only ball below the open bottom edge.
	b := g.balls[0]
	b.Stuck = false
	b.Pos = physics.Vec2{X: 400, Y: g.worldH + 50}
	b.Vel = physics.Vec2{X: 0, Y: 300}

	g.Step(core.NewInputFrame())

	if g.lives != initialLives-1 {
		t.Errorf("Losing the last ball should cost a life, lives=%d", g.lives)
	}
	if g.state != StateServe {
		t.Errorf("Game should return to serve after a miss, got %s", g.state)
	}
}

func TestGameOverOnLastLife(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	g.state = StatePlaying
	g.lives = 1

	b := g.balls[0]
	b.Stuck = false
	b.Pos = physics.Vec2{X: 400, Y: g.worldH + 50}
	b.Vel = physics.Vec2{X: 0, Y: 300}

	result := g.Step(core.NewInputFrame())

	if !result.State.GameOver {
		t.Error("Game should be over when the last ball falls with one life left")
	}
	if result.State.Won {
		t.Error("Falling off the bottom is a loss, not a win")
	}
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	launch := core.NewInputFrame()
	launch.Set(core.ActionLaunch)
	g.Step(launch)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)

	if g.state != StatePaused {
		t.Errorf("Game should be paused, got %s", g.state)
	}

	b := g.balls[0]
	pos := b.Pos

	g.Step(core.NewInputFrame())

	if b.Pos != pos {
		t.Error("Ball position should not change while paused")
	}

	g.Step(pause)
	if g.state == StatePaused {
		t.Error("Game should be unpaused")
	}
}

func TestFireballPiercesBricks(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	g.state = StatePlaying
	g.powerups.AddEffect(EffectFireball, g.tickCount, 600)

	initialAlive := g.level.CountAlive()

	b := g.balls[0]
	b.Stuck = false
	b.Pos = physics.Vec2{X: 20, Y: 85}
	b.Vel = physics.Vec2{X: 0, Y: -300}

	noInput := core.NewInputFrame()
	for i := 0; i < 6; i++ {
		g.Step(noInput)
	}

	// 30 px of upward travel crosses more than one brick row; a fireball
	// destroys them without ever reflecting.
	if destroyed := initialAlive - g.level.CountAlive(); destroyed < 2 {
		t.Errorf("Fireball should pierce multiple bricks, destroyed %d", destroyed)
	}
	if b.Vel.Y >= 0 {
		t.Errorf("Fireball should keep its course through bricks, Vel.Y=%v", b.Vel.Y)
	}
}

func TestMultiballPickup(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	launch := core.NewInputFrame()
	launch.Set(core.ActionLaunch)
	g.Step(launch)

	g.activatePickup(PickupMultiball)

	if got := len(g.balls); got != 3 {
		t.Errorf("Multiball should add %d balls, total %d", g.powerups.Config.MultiballCount, got)
	}
	for i, b := range g.balls {
		if !b.Active {
			t.Errorf("ball %d should be active", i)
		}
	}
}

func TestWidenPickupGrowsPaddle(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	baseW := g.paddle.Box.W
	g.activatePickup(PickupWiden)

	if g.paddle.Box.W <= baseW {
		t.Errorf("Widen should grow the paddle, was %v, now %v", baseW, g.paddle.Box.W)
	}

	// Expiring the effect restores the base width.
	g.powerups.RemoveEffect(EffectWiden)
	g.onEffectExpired(EffectWiden)
	if g.paddle.Box.W != baseW {
		t.Errorf("Expired widen should restore width %v, got %v", baseW, g.paddle.Box.W)
	}
}

func TestExtraLifePickup(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	lives := g.lives
	g.activatePickup(PickupExtraLife)

	if g.lives != lives+1 {
		t.Errorf("Extra life should add a life, got %d", g.lives)
	}
}

func TestEnemySpawnAndKill(t *testing.T) {
	g := NewEndless()
	g.Reset(testRuntime(1))

	launch := core.NewInputFrame()
	launch.Set(core.ActionLaunch)
	g.Step(launch)

	// Force the spawn timer to fire on the next tick.
	g.lastEnemySpawn = -1000
	g.Step(core.NewInputFrame())

	if len(g.enemies) == 0 {
		t.Fatal("Endless mode should spawn an enemy once the interval elapses")
	}

	e := g.enemies[0]
	score := g.score
	g.applyCollision(physics.CollisionEvent{ObstacleID: e.Obstacle.ID})

	if e.Obstacle.Visible {
		t.Error("Enemy should be destroyed by a ball contact")
	}
	if g.score != score+g.cfg.Gameplay.EnemyPoints {
		t.Errorf("Enemy kill should score %d points, got %d", g.cfg.Gameplay.EnemyPoints, g.score-score)
	}
}

func TestBossLevel(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	// Jump to the boss arena.
	g.levelIndex = LevelCount() - 1
	g.loadLevel(g.levelIndex)

	if g.boss == nil || !g.boss.Obstacle.Visible {
		t.Fatal("Boss level should spawn a visible boss")
	}

	// Clearing the bricks alone must not clear the level.
	for row := range g.level.Bricks {
		for col := range g.level.Bricks[row] {
			g.level.Bricks[row][col].Alive = false
		}
	}
	g.checkLevelClear()
	if g.state == StateWin {
		t.Fatal("Level must not clear while the boss lives")
	}

	// Grind the boss down, one hit per tick.
	killed := false
	for i := 1; i <= g.boss.MaxHP; i++ {
		killed = g.boss.Hit(i)
	}
	if !killed {
		t.Fatal("Boss should die after MaxHP hits")
	}

	g.checkLevelClear()
	if g.state != StateWin {
		t.Errorf("Clearing the final boss level should win the campaign, got %s", g.state)
	}
}

func TestBossHitOncePerTick(t *testing.T) {
	b := NewBoss(800, 100, 10)

	if !b.Obstacle.Visible {
		t.Fatal("new boss should be visible")
	}

	b.Hit(5)
	b.Hit(5) // Same tick: must not double-count
	if b.HP != 9 {
		t.Errorf("Boss should take one hit per tick, HP=%d", b.HP)
	}
}

func TestGameRender(t *testing.T) {
	cfg := testRuntime(1)
	g := New()
	g.Reset(cfg)

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)

	str := screen.String()
	hasContent := false
	for _, ch := range str {
		if ch != ' ' && ch != '\n' {
			hasContent = true
			break
		}
	}
	if !hasContent {
		t.Error("Render should draw something to the screen")
	}

	// Paddle should be drawn at its row
	paddleX := cellOf(g.paddle.Box.Center().X)
	paddleY := cellOf(g.paddle.Box.Y)
	if screen.Get(paddleX, paddleY) != PaddleChar {
		t.Errorf("Paddle should be drawn, got %q at paddle position", screen.Get(paddleX, paddleY))
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	cfg := testRuntime(1)
	g := New()
	g.Reset(cfg)

	launch := core.NewInputFrame()
	launch.Set(core.ActionLaunch)
	g.Step(launch)

	for i := 0; i < 20; i++ {
		in := core.NewInputFrame()
		if i%3 == 0 {
			in.Set(core.ActionRight)
		}
		g.Step(in)
	}

	snap := g.Snapshot()

	if snap.Tick != uint64(g.tickCount) {
		t.Errorf("Snapshot tick should match game tick, got %d, want %d", snap.Tick, g.tickCount)
	}
	if snap.Score != g.score {
		t.Errorf("Snapshot score should match game score, got %d, want %d", snap.Score, g.score)
	}
	if snap.Lives != g.lives {
		t.Errorf("Snapshot lives should match game lives, got %d, want %d", snap.Lives, g.lives)
	}

	g2 := New()
	g2.Reset(cfg)
	g2.ApplySnapshot(snap)

	snap2 := g2.Snapshot()
	if snap.Hash() != snap2.Hash() {
		t.Errorf("Snapshot hash should match after apply, got %d, want %d", snap2.Hash(), snap.Hash())
	}
}

func TestLevelParsing(t *testing.T) {
	levels := BuiltinLevels()
	if len(levels) == 0 {
		t.Fatal("Should have at least one built-in level")
	}

	for i, level := range levels {
		if level.Name == "" {
			t.Errorf("Level %d should have a name", i)
		}
		if level.Width <= 0 || level.Height <= 0 {
			t.Errorf("Level %d should have positive dimensions", i)
		}
		if level.CountAlive() == 0 {
			t.Errorf("Level %d should have some destroyable bricks", i)
		}
	}

	if !levels[len(levels)-1].HasBoss {
		t.Error("The final level should be the boss arena")
	}
}

func TestParseLevelCharacters(t *testing.T) {
	level := ParseLevel("t", "Test", []string{
		"#5HX",
		"..h.",
	})

	if got := level.Bricks[0][0]; got.Type != BrickNormal || got.Points != 10 {
		t.Errorf("'#' should be a normal 10-point brick, got %+v", got)
	}
	if got := level.Bricks[0][1]; got.Type != BrickNormal || got.Points != 50 {
		t.Errorf("'5' should be a normal 50-point brick, got %+v", got)
	}
	if got := level.Bricks[0][2]; got.Type != BrickHard || got.HP != 2 {
		t.Errorf("'H' should be a hard 2-HP brick, got %+v", got)
	}
	if got := level.Bricks[0][3]; got.Type != BrickSolid {
		t.Errorf("'X' should be a solid brick, got %+v", got)
	}
	if got := level.Bricks[1][0]; got.Type != BrickEmpty || got.Alive {
		t.Errorf("'.' should be empty, got %+v", got)
	}
	if got := level.Bricks[1][2]; got.Type != BrickHard {
		t.Errorf("'h' should be a hard brick, got %+v", got)
	}

	// Solid bricks don't count toward level clear.
	if got := level.CountAlive(); got != 4 {
		t.Errorf("CountAlive should skip solid bricks, got %d", got)
	}
}

func TestBuildObstaclesIndexesAliveBricks(t *testing.T) {
	level := ParseLevel("t", "Test", []string{
		"#.#",
	})
	lay := layout{brickAreaTop: 2, brickWidth: 4, brickHeight: 1}
	hash := physics.NewSpatialHash(physics.NewAABB(0, 0, 800, 240), 80)

	obstacles := level.buildObstacles(lay, hash, firstBrickID)

	if len(obstacles) != 2 {
		t.Fatalf("expected 2 obstacles, got %d", len(obstacles))
	}
	if hash.Len() != 2 {
		t.Errorf("hash should index 2 obstacles, got %d", hash.Len())
	}

	// First brick: cells (0,2), 4x1 cells at 10 px per cell.
	o := obstacles[firstBrickID]
	if o == nil {
		t.Fatal("first brick obstacle missing")
	}
	if o.Box.X != 0 || o.Box.Y != 20 || o.Box.W != 40 || o.Box.H != 10 {
		t.Errorf("unexpected first brick box: %+v", o.Box)
	}
	if level.brickAt(firstBrickID) == nil {
		t.Error("brickAt should resolve the obstacle id back to the brick")
	}
}

func TestPowerUpManagerDropRoll(t *testing.T) {
	pm := NewPowerUpManager(7, DefaultPowerUpConfig())

	// Chance 1.0 always drops; chance 0 never does.
	if !pm.TrySpawnPickup(physics.Vec2{X: 100, Y: 50}, 1.0) {
		t.Error("drop chance 1.0 should always spawn")
	}
	if pm.TrySpawnPickup(physics.Vec2{X: 100, Y: 50}, 0.0) {
		t.Error("drop chance 0 should never spawn")
	}
	if len(pm.Pickups) != 1 {
		t.Errorf("expected 1 pickup, got %d", len(pm.Pickups))
	}
}

func TestPickupFallsAndCollects(t *testing.T) {
	pm := NewPowerUpManager(7, DefaultPowerUpConfig())
	paddle := &physics.Paddle{Box: physics.NewAABB(350, 210, 100, 10)}

	pm.Pickups = append(pm.Pickups, &Pickup{
		Type:   PickupWiden,
		Pos:    physics.Vec2{X: 400, Y: 200},
		VY:     120,
		Active: true,
	})

	// Not at the paddle yet
	if got := pm.CheckPaddleCollision(paddle); got >= 0 {
		t.Errorf("pickup above the paddle should not collect, got %v", got)
	}

	// Fall for 10 ticks: 120 px/sec * 10/60 sec = 20 px, reaching y=220.
	for i := 0; i < 10; i++ {
		pm.Update(1.0/60, 240)
	}

	if got := pm.CheckPaddleCollision(paddle); got != PickupWiden {
		t.Errorf("pickup at the paddle should collect, got %v", got)
	}
	if pm.Pickups[0].Active {
		t.Error("collected pickup should deactivate")
	}
}

func TestEffectExpiry(t *testing.T) {
	pm := NewPowerUpManager(7, DefaultPowerUpConfig())

	pm.AddEffect(EffectFireball, 100, 60)
	if !pm.HasEffect(EffectFireball) {
		t.Fatal("effect should be active after AddEffect")
	}
	if got := pm.GetEffectRemaining(EffectFireball, 130); got != 30 {
		t.Errorf("expected 30 ticks remaining, got %d", got)
	}

	expired := pm.ExpireEffects(160)
	if len(expired) != 1 || expired[0] != EffectFireball {
		t.Errorf("expected fireball to expire, got %v", expired)
	}
	if pm.HasEffect(EffectFireball) {
		t.Error("expired effect should be gone")
	}
}

func TestSimpleRNGDeterminism(t *testing.T) {
	a := NewSimpleRNG(99)
	b := NewSimpleRNG(99)

	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatal("same seed should produce the same sequence")
		}
	}

	// Float64 stays in [0, 1)
	r := NewSimpleRNG(7)
	for i := 0; i < 1000; i++ {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
	}
}

func TestStickyEffectCatchesBall(t *testing.T) {
	g := New()
	g.Reset(testRuntime(7))

	launch := core.NewInputFrame()
	launch.Set(core.ActionLaunch)
	g.Step(launch)

	g.powerups.AddEffect(EffectSticky, g.tickCount, 600)

	// Drop the ball straight onto the paddle center
	b := g.balls[0]
	b.Pos = physics.Vec2{X: g.paddle.Box.Center().X, Y: g.paddle.Box.Y - 30}
	b.Vel = physics.Vec2{X: 0, Y: 300}

	for i := 0; i < 10 && !b.Stuck; i++ {
		g.Step(core.NewInputFrame())
	}

	if !b.Stuck {
		t.Fatal("Ball should stick to the paddle while the sticky effect is active")
	}
	if g.state != StateServe {
		t.Errorf("All balls stuck should return to serve state, got %s", g.state)
	}

	// Launch releases the glued ball upward
	g.Step(launch)
	if b.Stuck {
		t.Error("Launch should release the glued ball")
	}
	if b.Vel.Y >= 0 {
		t.Errorf("Released ball should move up, got Vel.Y=%v", b.Vel.Y)
	}
}

func TestSpeedUpEffectRaisesBallSpeed(t *testing.T) {
	g := New()
	g.Reset(testRuntime(3))

	base := g.currentBallSpeed()
	g.powerups.AddEffect(EffectSpeedUp, g.tickCount, 600)
	boosted := g.currentBallSpeed()
	if boosted <= base {
		t.Errorf("Speed-up should raise ball speed: base=%v boosted=%v", base, boosted)
	}

	// Slow-down replaces speed-up
	g.activatePickup(PickupSlowDown)
	if g.powerups.HasEffect(EffectSpeedUp) {
		t.Error("Slow-down pickup should cancel the speed-up effect")
	}
	if g.currentBallSpeed() >= base {
		t.Errorf("Slow-down should cut ball speed below base, got %v", g.currentBallSpeed())
	}
}

func TestBossEjectsOverlappingBall(t *testing.T) {
	g := New()
	g.Reset(testRuntime(5))
	g.loadLevel(LevelCount() - 1)
	if g.boss == nil {
		t.Fatal("Last level should have a boss")
	}

	// Park a ball just below the boss midline; the patrol should push it out.
	b := g.balls[0]
	b.Stuck = false
	box := g.boss.Obstacle.Box
	b.Pos = physics.Vec2{X: box.Center().X, Y: box.Center().Y + 1}
	b.Vel = physics.Vec2{X: 0, Y: -300}

	g.updateBoss(g.tickDT())

	if b.Pos.Y < g.boss.Obstacle.Box.Bottom()+b.Radius {
		t.Errorf("Ball below the boss midline should be ejected downward, got Y=%v", b.Pos.Y)
	}
	if b.Vel.Y < 0 {
		t.Errorf("Ejected ball should move away from the boss, got Vel.Y=%v", b.Vel.Y)
	}
}

func TestBallsSweepFrameStableGeometry(t *testing.T) {
	g := New()
	g.Reset(testRuntime(9))

	launch := core.NewInputFrame()
	launch.Set(core.ActionLaunch)
	g.Step(launch)

	// Topmost one-hit brick: the space above it is open.
	var target *physics.Obstacle
	for id, o := range g.obstacles {
		br := g.level.brickAt(id)
		if br == nil || br.Type != BrickNormal || br.HP != 1 {
			continue
		}
		if target == nil || o.Box.Y < target.Box.Y {
			target = o
		}
	}
	if target == nil {
		t.Fatal("Level should contain a one-hit brick")
	}
	points := g.level.brickAt(target.ID).Points

	// Two balls dropped onto the same brick in the same tick. The second
	// ball must still see the brick during its sweep even though the first
	// ball's contact destroys it.
	b0 := g.balls[0]
	r := b0.Radius
	b0.Pos = physics.Vec2{X: target.Box.Center().X - 1, Y: target.Box.Y - r - 2}
	b0.Vel = physics.Vec2{X: 0, Y: 300}

	b1 := &ball{
		Ball: physics.Ball{
			Pos:    physics.Vec2{X: target.Box.Center().X + 1, Y: target.Box.Y - r - 2},
			Vel:    physics.Vec2{X: 0, Y: 300},
			Radius: r,
		},
		Active:  true,
		scratch: physics.NewScratch(),
	}
	g.balls = append(g.balls, b1)

	scoreBefore := g.score
	g.updateBalls(g.tickDT())

	if b0.Vel.Y >= 0 {
		t.Errorf("First ball should reflect off the brick, got Vel.Y=%v", b0.Vel.Y)
	}
	if b1.Vel.Y >= 0 {
		t.Errorf("Second ball should reflect off the brick, got Vel.Y=%v", b1.Vel.Y)
	}
	if g.level.brickAt(target.ID).Alive {
		t.Error("Brick should be destroyed")
	}
	if got := g.score - scoreBefore; got != points {
		t.Errorf("Brick should score exactly once: want %d points, got %d", points, got)
	}
}
