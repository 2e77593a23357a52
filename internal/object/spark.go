package object

import (
	"math"

	"github.com/tomz197/splitfire/internal/config"
	"github.com/tomz197/splitfire/internal/draw"
)

// Spark is a short-lived particle thrown out by an explosion.
type Spark struct {
	X, Y    float64 // Position
	VX, VY  float64 // Velocity
	Life    int     // Ticks remaining
	MaxLife int     // Initial life (for fade calculation)
	Drag    float64 // Velocity factor per tick (1.0 = no drag)
}

// NewSpark creates a single spark.
func NewSpark(x, y, vx, vy float64, life int) *Spark {
	if life < 1 {
		life = 1
	}
	return &Spark{
		X:       x,
		Y:       y,
		VX:      vx,
		VY:      vy,
		Life:    life,
		MaxLife: life,
		Drag:    config.SparkDrag,
	}
}

// SpawnSparks creates count sparks in a circular burst around (x, y).
// Each spark gets a random direction, 50-150% of the base speed and 50-100% of
// the base life.
func SpawnSparks(rng Rand, x, y float64, count int) []*Spark {
	sparks := make([]*Spark, 0, count)
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := config.SparkSpeed * (0.5 + rng.Float64())
		life := int(float64(config.SparkLife) * (0.5 + rng.Float64()*0.5))

		sparks = append(sparks, NewSpark(x, y, math.Cos(angle)*speed, math.Sin(angle)*speed, life))
	}
	return sparks
}

// Update moves the spark, applies drag and ages it.
// Returns true once the spark has burnt out.
func (s *Spark) Update(ctx UpdateContext) bool {
	s.Life--
	if s.Life <= 0 {
		return true
	}

	s.X += s.VX
	s.Y += s.VY
	s.VX *= s.Drag
	s.VY *= s.Drag

	ctx.Screen.WrapPosition(&s.X, &s.Y)

	return false
}

// Alpha returns the spark's remaining opacity in [0, 1].
func (s *Spark) Alpha() float64 {
	if s.MaxLife <= 0 {
		return 0
	}
	return float64(s.Life) / float64(s.MaxLife)
}

// Draw renders the spark as a single pixel fading from yellow to orange.
func (s *Spark) Draw(ctx DrawContext) error {
	alpha := s.Alpha()
	col := colorOrange.BlendRgb(colorYellow, alpha)
	ctx.Canvas.SetFloat(s.X, s.Y, draw.Fade(col, alpha))
	return nil
}
