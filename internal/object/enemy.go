package object

import (
	"math"

	"github.com/tomz197/splitfire/internal/config"
)

// Enemy is a destructible block that splits in two when shot.
type Enemy struct {
	X, Y      float64 // Position (center)
	VX, VY    float64 // Constant velocity
	Angle     float64 // Visual rotation
	Spin      float64 // Rotation per tick
	Size      float64
	Destroyed bool // Mark for removal and splitting
}

// NewEnemy creates an enemy of the given size at a random position with a random
// velocity. Smaller enemies get a wider velocity range.
func NewEnemy(rng Rand, screen Screen, size float64) *Enemy {
	size = clampEnemySize(size)
	speed := config.EnemySpeedScale / size
	return &Enemy{
		X:    rng.Float64() * screen.Width,
		Y:    rng.Float64() * screen.Height,
		VX:   (rng.Float64() - 0.5) * speed,
		VY:   (rng.Float64() - 0.5) * speed,
		Spin: config.EnemySpin,
		Size: size,
	}
}

// NewEnemyAwayFrom is NewEnemy with the position redrawn while it falls inside a
// clearance box around (x, y). After config.SpawnAttempts draws the last position is kept.
func NewEnemyAwayFrom(rng Rand, screen Screen, size, x, y, clearance float64) *Enemy {
	e := NewEnemy(rng, screen, size)
	for i := 1; i < config.SpawnAttempts; i++ {
		if math.Abs(e.X-x) >= clearance || math.Abs(e.Y-y) >= clearance {
			break
		}
		e.X = rng.Float64() * screen.Width
		e.Y = rng.Float64() * screen.Height
	}
	return e
}

func clampEnemySize(size float64) float64 {
	if size < config.MinEnemySize || math.IsNaN(size) {
		return config.MinEnemySize
	}
	return size
}

// CanSplit reports whether destroying the enemy produces children.
func (e *Enemy) CanSplit() bool {
	return e.Size > config.SplitThreshold && e.Size/2 >= config.MinEnemySize
}

// Split returns the children spawned by destroying the enemy: exactly two
// half-size enemies jittered around its position, or none if it is too small.
func (e *Enemy) Split(rng Rand, screen Screen) []*Enemy {
	if !e.CanSplit() {
		return nil
	}
	children := make([]*Enemy, 0, config.SplitChildren)
	for i := 0; i < config.SplitChildren; i++ {
		child := NewEnemy(rng, screen, e.Size/2)
		child.X = e.X + (rng.Float64()-0.5)*config.SplitJitter
		child.Y = e.Y + (rng.Float64()-0.5)*config.SplitJitter
		child.VX = (rng.Float64() - 0.5) * config.SplitSpeed
		child.VY = (rng.Float64() - 0.5) * config.SplitSpeed
		screen.WrapPosition(&child.X, &child.Y)
		children = append(children, child)
	}
	return children
}

// EnemyScore returns the points for destroying an enemy of the given size.
// Smaller enemies are worth more. Non-positive sizes score nothing.
func EnemyScore(size float64) int {
	if size <= 0 || math.IsNaN(size) {
		return 0
	}
	return int(math.Floor(config.ScoreNumerator/size)) * config.ScoreMultiplier
}

// Score returns the points for destroying this enemy.
func (e *Enemy) Score() int {
	return EnemyScore(e.Size)
}

// Update moves and spins the enemy.
func (e *Enemy) Update(ctx UpdateContext) {
	e.X += e.VX
	e.Y += e.VY
	e.Angle += e.Spin

	ctx.Screen.WrapPosition(&e.X, &e.Y)
}

// MarkDestroyed marks the enemy for removal.
func (e *Enemy) MarkDestroyed() {
	e.Destroyed = true
}

// IsDestroyed returns true if the enemy is marked for removal.
func (e *Enemy) IsDestroyed() bool {
	return e.Destroyed
}

// Draw renders the enemy as a rotating square.
func (e *Enemy) Draw(ctx DrawContext) error {
	points := ctx.Canvas.BorrowPoints(4)
	rect(points, e.X, e.Y, 0, 0, e.Size, e.Size, e.Angle)
	ctx.Canvas.DrawPolygon(points, true, colorEnemy)
	return nil
}

// GetPosition returns the enemy's center position.
func (e *Enemy) GetPosition() (float64, float64) {
	return e.X, e.Y
}

// GetSize returns the enemy's collision size.
func (e *Enemy) GetSize() float64 {
	return e.Size
}
