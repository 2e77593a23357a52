package object

import (
	"github.com/tomz197/splitfire/internal/config"
	"github.com/tomz197/splitfire/internal/physics"
)

// Projectile is a shell fired by the vehicle.
type Projectile struct {
	X, Y      float64 // Position
	VX, VY    float64 // Velocity, fixed at spawn
	Size      float64
	Life      int  // Ticks remaining before removal
	destroyed bool // Marked for removal by a hit
}

// NewProjectile creates a projectile at (x, y) travelling along angle at the fixed projectile speed.
func NewProjectile(x, y, angle float64) *Projectile {
	vx, vy := physics.Thrust(angle, config.ProjectileSpeed)
	return &Projectile{
		X:    x,
		Y:    y,
		VX:   vx,
		VY:   vy,
		Size: config.ProjectileSize,
		Life: config.ProjectileLife,
	}
}

// Update moves the projectile and ages it by one tick.
// Returns true once its life has run out.
func (p *Projectile) Update(ctx UpdateContext) bool {
	p.X += p.VX
	p.Y += p.VY
	p.Life--

	ctx.Screen.WrapPosition(&p.X, &p.Y)

	return p.Life <= 0
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile hit something or ran out of life.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed || p.Life <= 0
}

// Draw renders the projectile as a small square.
func (p *Projectile) Draw(ctx DrawContext) error {
	points := ctx.Canvas.BorrowPoints(4)
	rect(points, p.X, p.Y, 0, 0, p.Size, p.Size, 0)
	ctx.Canvas.DrawPolygon(points, true, colorProjectile)
	return nil
}

// GetPosition returns the projectile's center position.
func (p *Projectile) GetPosition() (float64, float64) {
	return p.X, p.Y
}

// GetSize returns the projectile's collision size.
func (p *Projectile) GetSize() float64 {
	return p.Size
}
