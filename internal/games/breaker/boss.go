package breaker

import (
	"math"

	"github.com/vovakirdan/tui-breaker/internal/physics"
)

// Reserved obstacle ids for dynamic actors. Brick ids are allocated above
// paddleID and below bossID.
const (
	paddleID     = 1
	firstBrickID = 100
	bossID       = 9000
	firstEnemyID = 9001
)

// Boss is a large patrolling hitbox that soaks multiple hits. It appears on
// boss levels once and must be destroyed to clear the level. Balls reflect
// off it normally; fireballs do not pierce it.
type Boss struct {
	Obstacle physics.Obstacle
	HP       int
	MaxHP    int
	dir      float64 // Patrol direction, -1 or 1
	speed    float64 // Patrol speed, px/sec

	// lastHitTick guards against a single solve reporting several contacts
	// on the same sweep counting as several hits.
	lastHitTick int
}

// NewBoss creates the boss centered horizontally at the given top edge.
func NewBoss(worldW, top float64, hp int) *Boss {
	w := worldW * 0.25
	h := 3.0 * worldScale
	return &Boss{
		Obstacle: physics.Obstacle{
			ID:             bossID,
			Kind:           physics.KindBoss,
			Box:            physics.NewAABB((worldW-w)/2, top, w, h),
			Visible:        true,
			Indestructible: true,
		},
		HP:    hp,
		MaxHP: hp,
		dir:   1,
		speed: 90,
	}
}

// Update advances the patrol, reversing at the world edges.
func (b *Boss) Update(dt, worldW float64) {
	if !b.Obstacle.Visible {
		return
	}
	b.Obstacle.Box.X += b.dir * b.speed * dt
	if b.Obstacle.Box.X < 0 {
		b.Obstacle.Box.X = 0
		b.dir = 1
	}
	if b.Obstacle.Box.Right() > worldW {
		b.Obstacle.Box.X = worldW - b.Obstacle.Box.W
		b.dir = -1
	}
}

// Hit applies one point of damage, at most once per tick. Returns true when
// the hit killed the boss.
func (b *Boss) Hit(tick int) bool {
	if !b.Obstacle.Visible || b.lastHitTick == tick {
		return false
	}
	b.lastHitTick = tick
	b.HP--
	if b.HP <= 0 {
		b.Obstacle.Visible = false
		return true
	}
	return false
}

// Enemy is a small drifter that descends with a horizontal sway. Destroyed by
// one ball contact; despawns harmlessly past the paddle row.
type Enemy struct {
	Obstacle physics.Obstacle
	baseX    float64
	phase    float64
	fall     float64 // Descent speed, px/sec

	lastHitTick int
}

// NewEnemy creates an enemy at the given world position.
func NewEnemy(id int, x, y float64) *Enemy {
	size := 1.5 * worldScale
	return &Enemy{
		Obstacle: physics.Obstacle{
			ID:      id,
			Kind:    physics.KindEnemy,
			Box:     physics.NewAABB(x-size/2, y, size, size),
			Visible: true,
		},
		baseX: x - size/2,
		fall:  40,
	}
}

// Update advances the descent and sway.
func (e *Enemy) Update(dt, worldW float64) {
	if !e.Obstacle.Visible {
		return
	}
	e.phase += dt * 2
	e.Obstacle.Box.Y += e.fall * dt

	sway := 2.0 * worldScale * math.Sin(e.phase)
	x := e.baseX + sway
	if x < 0 {
		x = 0
	}
	if x+e.Obstacle.Box.W > worldW {
		x = worldW - e.Obstacle.Box.W
	}
	e.Obstacle.Box.X = x
}

// Hit destroys the enemy, at most once per tick. Returns true when the enemy
// was destroyed by this call.
func (e *Enemy) Hit(tick int) bool {
	if !e.Obstacle.Visible || e.lastHitTick == tick {
		return false
	}
	e.lastHitTick = tick
	e.Obstacle.Visible = false
	return true
}
