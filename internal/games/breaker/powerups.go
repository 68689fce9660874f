package breaker

import "github.com/vovakirdan/tui-breaker/internal/physics"

// PickupType represents different types of power-up pickups.
type PickupType int

const (
	PickupWiden     PickupType = iota // Widen paddle
	PickupShrink                      // Shrink paddle
	PickupMultiball                   // Spawn extra balls
	PickupFireball                    // Balls pierce destructible bricks
	PickupSlowDown                    // Slow down balls
	PickupSpeedUp                     // Speed up balls
	PickupSticky                      // Balls stick to the paddle on contact
	PickupExtraLife                   // Extra life
	PickupCount                       // Sentinel for counting types
)

// Glyph returns the display character for a pickup type.
func (p PickupType) Glyph() rune {
	switch p {
	case PickupWiden:
		return 'W'
	case PickupShrink:
		return 'S'
	case PickupMultiball:
		return 'M'
	case PickupFireball:
		return 'F'
	case PickupSlowDown:
		return '-'
	case PickupSpeedUp:
		return '+'
	case PickupSticky:
		return 'G'
	case PickupExtraLife:
		return '♥'
	default:
		return '?'
	}
}

// String returns the name of the pickup type.
func (p PickupType) String() string {
	switch p {
	case PickupWiden:
		return "Widen"
	case PickupShrink:
		return "Shrink"
	case PickupMultiball:
		return "Multi"
	case PickupFireball:
		return "Fire"
	case PickupSlowDown:
		return "Slow"
	case PickupSpeedUp:
		return "Fast"
	case PickupSticky:
		return "Glue"
	case PickupExtraLife:
		return "Life"
	default:
		return "?"
	}
}

// Pickup represents a falling power-up item. Position is in world pixels.
type Pickup struct {
	Type   PickupType
	Pos    physics.Vec2
	VY     float64 // Fall speed in px/sec (positive = down)
	Active bool
}

// EffectType represents active timed effects on the game.
type EffectType int

const (
	EffectWiden    EffectType = iota // Paddle is widened
	EffectShrink                     // Paddle is shrunk
	EffectFireball                   // Balls pierce destructible bricks
	EffectSlowDown                   // Ball speed decreased
	EffectSpeedUp                    // Ball speed increased
	EffectSticky                     // Balls stick to the paddle on contact
	EffectCount                      // Sentinel for counting types
)

// String returns the short name for effect display.
func (e EffectType) String() string {
	switch e {
	case EffectWiden:
		return "W"
	case EffectShrink:
		return "S"
	case EffectFireball:
		return "F"
	case EffectSlowDown:
		return "-"
	case EffectSpeedUp:
		return "+"
	case EffectSticky:
		return "G"
	default:
		return "?"
	}
}

// Effect represents an active timed effect.
type Effect struct {
	Type      EffectType
	UntilTick int // Tick at which effect expires
}

// TicksRemaining returns how many ticks until effect expires.
func (e *Effect) TicksRemaining(currentTick int) int {
	remaining := e.UntilTick - currentTick
	if remaining < 0 {
		return 0
	}
	return remaining
}

// PowerUpConfig holds configuration for power-up spawning and effects.
type PowerUpConfig struct {
	// Spawn weights (relative, higher = more common)
	WeightWiden     int
	WeightShrink    int
	WeightMultiball int
	WeightFireball  int
	WeightSlowDown  int
	WeightSpeedUp   int
	WeightSticky    int
	WeightExtraLife int

	FallSpeed float64 // Pickup fall speed, px/sec

	MinPaddleWidth int // Cells
	MaxPaddleWidth int // Cells
	ShrinkAmount   int // Cells removed while shrunk
	MultiballCount int // Number of extra balls to spawn
	SlowDownMult   float64
	SpeedUpMult    float64
}

// DefaultPowerUpConfig returns default power-up configuration.
func DefaultPowerUpConfig() PowerUpConfig {
	return PowerUpConfig{
		// Positive pickups more common; fireball and extra life are rare.
		WeightWiden:     25,
		WeightShrink:    12,
		WeightMultiball: 20,
		WeightFireball:  8,
		WeightSlowDown:  15,
		WeightSpeedUp:   12,
		WeightSticky:    10,
		WeightExtraLife: 5,

		FallSpeed: 120,

		MinPaddleWidth: 4,
		MaxPaddleWidth: 16,
		ShrinkAmount:   2,
		MultiballCount: 2,
		SlowDownMult:   0.67,
		SpeedUpMult:    1.35,
	}
}

// PowerUpManager handles pickup spawning, falling, collection, and effects.
type PowerUpManager struct {
	Config  PowerUpConfig
	Pickups []*Pickup
	Effects []*Effect
	RNG     *SimpleRNG
}

// NewPowerUpManager creates a new power-up manager with the given seed.
func NewPowerUpManager(seed int64, cfg PowerUpConfig) *PowerUpManager {
	return &PowerUpManager{
		Config:  cfg,
		Pickups: make([]*Pickup, 0),
		Effects: make([]*Effect, 0),
		RNG:     NewSimpleRNG(seed),
	}
}

// Reset clears all pickups and effects and reseeds the RNG.
func (pm *PowerUpManager) Reset(seed int64) {
	pm.Pickups = pm.Pickups[:0]
	pm.Effects = pm.Effects[:0]
	pm.RNG = NewSimpleRNG(seed)
}

// TrySpawnPickup rolls the drop chance and spawns a pickup at the given world
// position. Returns true if a pickup was spawned.
func (pm *PowerUpManager) TrySpawnPickup(pos physics.Vec2, dropChance float64) bool {
	if pm.RNG.Float64() >= dropChance {
		return false
	}

	pickup := &Pickup{
		Type:   pm.rollPickupType(),
		Pos:    pos,
		VY:     pm.Config.FallSpeed,
		Active: true,
	}
	pm.Pickups = append(pm.Pickups, pickup)
	return true
}

// rollPickupType selects a random pickup type based on weights.
func (pm *PowerUpManager) rollPickupType() PickupType {
	weights := []struct {
		Type   PickupType
		Weight int
	}{
		{PickupWiden, pm.Config.WeightWiden},
		{PickupShrink, pm.Config.WeightShrink},
		{PickupMultiball, pm.Config.WeightMultiball},
		{PickupFireball, pm.Config.WeightFireball},
		{PickupSlowDown, pm.Config.WeightSlowDown},
		{PickupSpeedUp, pm.Config.WeightSpeedUp},
		{PickupSticky, pm.Config.WeightSticky},
		{PickupExtraLife, pm.Config.WeightExtraLife},
	}

	totalWeight := 0
	for _, w := range weights {
		totalWeight += w.Weight
	}
	if totalWeight <= 0 {
		return PickupWiden
	}

	roll := pm.RNG.Intn(totalWeight)
	cumulative := 0
	for _, w := range weights {
		cumulative += w.Weight
		if roll < cumulative {
			return w.Type
		}
	}
	return PickupWiden
}

// Update moves all pickups one tick and removes out-of-bounds ones.
func (pm *PowerUpManager) Update(dt, worldH float64) {
	active := pm.Pickups[:0]
	for _, p := range pm.Pickups {
		if !p.Active {
			continue
		}
		p.Pos.Y += p.VY * dt
		if p.Pos.Y <= worldH {
			active = append(active, p)
		}
	}
	pm.Pickups = active
}

// CheckPaddleCollision checks if any pickup reached the paddle.
// Returns the pickup type if collected, or -1 if none.
func (pm *PowerUpManager) CheckPaddleCollision(paddle *physics.Paddle) PickupType {
	for _, p := range pm.Pickups {
		if !p.Active {
			continue
		}
		if p.Pos.Y < paddle.Box.Y || p.Pos.Y > paddle.Box.Bottom() {
			continue
		}
		if p.Pos.X >= paddle.Box.X && p.Pos.X <= paddle.Box.Right() {
			p.Active = false
			return p.Type
		}
	}
	return PickupType(-1)
}

// AddEffect adds or extends an effect.
func (pm *PowerUpManager) AddEffect(effectType EffectType, currentTick, duration int) {
	for _, e := range pm.Effects {
		if e.Type == effectType {
			e.UntilTick = currentTick + duration
			return
		}
	}
	pm.Effects = append(pm.Effects, &Effect{
		Type:      effectType,
		UntilTick: currentTick + duration,
	})
}

// RemoveEffect removes an effect by type.
func (pm *PowerUpManager) RemoveEffect(effectType EffectType) {
	for i, e := range pm.Effects {
		if e.Type == effectType {
			pm.Effects = append(pm.Effects[:i], pm.Effects[i+1:]...)
			return
		}
	}
}

// ExpireEffects removes effects that have expired and returns their types.
func (pm *PowerUpManager) ExpireEffects(currentTick int) []EffectType {
	expired := make([]EffectType, 0)
	active := pm.Effects[:0]

	for _, e := range pm.Effects {
		if e.UntilTick <= currentTick {
			expired = append(expired, e.Type)
		} else {
			active = append(active, e)
		}
	}

	pm.Effects = active
	return expired
}

// HasEffect returns true if the given effect is active.
func (pm *PowerUpManager) HasEffect(effectType EffectType) bool {
	for _, e := range pm.Effects {
		if e.Type == effectType {
			return true
		}
	}
	return false
}

// GetEffectRemaining returns ticks remaining for an effect, or 0 if not active.
func (pm *PowerUpManager) GetEffectRemaining(effectType EffectType, currentTick int) int {
	for _, e := range pm.Effects {
		if e.Type == effectType {
			return e.TicksRemaining(currentTick)
		}
	}
	return 0
}

// SimpleRNG is a deterministic pseudo-random number generator.
// Uses a simple LCG (Linear Congruential Generator).
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	// LCG parameters (same as MINSTD)
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}
