package physics

// ObstacleKind discriminates obstacle categories explicitly. Bricks live in
// the spatial hash; bosses and enemies move every tick and are scanned
// linearly by the broadphase instead of being reindexed.
type ObstacleKind int

const (
	KindBrick ObstacleKind = iota
	KindBoss
	KindEnemy
)

// String returns a human-readable name for the kind.
func (k ObstacleKind) String() string {
	switch k {
	case KindBrick:
		return "brick"
	case KindBoss:
		return "boss"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Obstacle is a rectangular collidable: a brick, a boss hitbox, or an enemy.
// The solver only reads obstacles; destruction and movement happen in the
// game-rule layer after the solver returns.
type Obstacle struct {
	ID             int
	Kind           ObstacleKind
	Box            AABB
	Visible        bool
	Indestructible bool
}

// Ball is the moving circle the solver advances. Velocity is in px/sec.
type Ball struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64

	// Fireball balls pierce destructible bricks instead of reflecting.
	Fireball bool

	// Cooldowns records the tick of the last pass-through contact per
	// obstacle id, so a fireball traversing a brick reports it once
	// rather than on every TOI iteration while inside.
	Cooldowns map[int]uint64
}

// Speed returns the ball's current speed in px/sec.
func (b *Ball) Speed() float64 {
	return b.Vel.Length()
}

// Paddle is the player's paddle: a rectangle with rounded corners. Vel is
// reserved for future paddle-momentum transfer and is not used by the solver.
type Paddle struct {
	ID           int
	Box          AABB
	CornerRadius float64
	Vel          Vec2
}

// SurfaceKind tags which kind of surface produced a collision event. The
// velocity response policy is keyed on this tag.
type SurfaceKind int

const (
	SurfaceWall SurfaceKind = iota
	SurfaceBrick
	SurfacePaddleTop
	SurfacePaddleCorner
	SurfaceCorner
)

// String returns a human-readable name for the surface kind.
func (s SurfaceKind) String() string {
	switch s {
	case SurfaceWall:
		return "wall"
	case SurfaceBrick:
		return "brick"
	case SurfacePaddleTop:
		return "paddleTop"
	case SurfacePaddleCorner:
		return "paddleCorner"
	case SurfaceCorner:
		return "corner"
	default:
		return "unknown"
	}
}

// CollisionEvent describes one resolved contact. T is the fraction of the
// substep consumed when the contact happened, monotonically increasing within
// a substep. Incoming is the ball's velocity before any reflection was
// applied, which sound and analytics consumers need.
type CollisionEvent struct {
	T          float64
	Surface    SurfaceKind
	ObstacleID int
	Point      Vec2 // Contact point on the surface
	Normal     Vec2 // Unit normal pointing away from the surface
	Incoming   Vec2
}

// LauncherConfig tunes the paddle-top launch response: the horizontal impact
// offset, normalized to [-1, 1], is shaped by |r|^CurveExponent and mapped to
// an outgoing angle within ±MaxAngle radians from straight up. Incoming speed
// is preserved exactly; incoming direction is discarded. This is a deliberate
// game-feel decision, not physics.
type LauncherConfig struct {
	Enabled       bool
	MaxAngle      float64 // Radians from vertical, e.g. 75° = 1.309
	CurveExponent float64 // 1 = linear, >1 flattens the center
}

// QueryFunc is the broadphase callback: given a swept bounding box it appends
// candidate obstacles to out and returns the extended slice.
type QueryFunc func(bounds AABB, out []*Obstacle) []*Obstacle

// Config bundles the per-call solver parameters. The zero value is not
// usable; callers fill in at least DT, Bounds, and Query.
type Config struct {
	DT               float64 // Whole-frame delta, seconds
	Substeps         int     // >= 1; externally computed from speed vs. obstacle size
	MaxTOIIterations int     // Bounded collisions per substep; default 3
	Epsilon          float64 // Separation epsilon; default 1e-3
	MinObstacleDim   float64 // Smallest obstacle dimension, for the travel clamp
	TravelFraction   float64 // Max per-substep travel as a fraction of MinObstacleDim; default 0.5

	Bounds AABB // Canvas; left/right/top are walls, bottom is open
	Query  QueryFunc
	Paddle *Paddle

	Launcher LauncherConfig

	// Tick is a monotonic tick counter for cooldown bookkeeping.
	Tick uint64
	// FireballCooldownTicks suppresses repeat pass-through events against
	// the same obstacle for this many ticks. Default 1.
	FireballCooldownTicks uint64
}

// FrameStats aggregates per-call telemetry. Purely observational: nothing in
// here feeds back into solving.
type FrameStats struct {
	Substeps      int
	TOIIterations int
	Collisions    int
	Candidates    int
	SolveMicros   int64
}

// Result is the solver output: the advanced ball (nil only when no ball was
// provided) and the ordered collision events of the frame.
type Result struct {
	Ball   *Ball
	Events []CollisionEvent
	Stats  FrameStats
}

// Scratch holds the solver's reusable buffers. Each call site owns its own
// arena, so concurrent solvers never share hidden state. The event slice in a
// Result aliases the arena and is valid until the next Solve with the same
// Scratch.
type Scratch struct {
	candidates []*Obstacle
	events     []CollisionEvent
	ball       Ball
}

// NewScratch creates a scratch arena with reasonable initial capacity.
func NewScratch() *Scratch {
	return &Scratch{
		candidates: make([]*Obstacle, 0, 32),
		events:     make([]CollisionEvent, 0, 8),
	}
}

// SubstepsFor returns the substep count needed so that per-substep travel
// stays under travelFraction of the smallest obstacle dimension. This is the
// caller-side provisioning policy; the solver additionally clamps travel as a
// safety net in case the caller under-provisions.
func SubstepsFor(speed, dt, minObstacleDim, travelFraction float64) int {
	if speed <= 0 || dt <= 0 || minObstacleDim <= 0 {
		return 1
	}
	if travelFraction <= 0 {
		travelFraction = defaultTravelFraction
	}
	maxTravel := minObstacleDim * travelFraction
	steps := int(speed*dt/maxTravel) + 1
	if steps < 1 {
		steps = 1
	}
	return steps
}
