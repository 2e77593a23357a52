package object

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/splitfire/internal/draw"
	"github.com/tomz197/splitfire/internal/input"
	"github.com/tomz197/splitfire/internal/physics"
)

// Rand is the random source used for spawn positions, velocities and effect jitter.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Input is an alias for the input package's Input type.
type Input = input.Input

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Input  Input
	Screen Screen
	Rand   Rand
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // Colour canvas in world coordinates
}

// Drawable is an entity the render step can draw.
type Drawable interface {
	Draw(ctx DrawContext) error
}

// Screen holds the world dimensions.
type Screen struct {
	Width  float64
	Height float64
}

// NewScreen returns a screen of the given size.
func NewScreen(width, height float64) Screen {
	return Screen{Width: width, Height: height}
}

// Center returns the middle of the screen.
func (s Screen) Center() (float64, float64) {
	return s.Width / 2, s.Height / 2
}

// WrapPosition moves a position that crossed an edge to the opposite edge.
func (s Screen) WrapPosition(x, y *float64) {
	physics.Wrap(x, y, s.Width, s.Height)
}

// Palette
var (
	colorVehicle     = colorful.Color{R: 0, G: 0.5, B: 0}
	colorVehicleNose = colorful.Color{R: 0, G: 0.39, B: 0}
	colorProjectile  = colorful.Color{R: 1, G: 1, B: 0}
	colorEnemy       = colorful.Color{R: 1, G: 0, B: 0}
	colorStar        = colorful.Color{R: 1, G: 1, B: 1}
	colorYellow      = colorful.Color{R: 1, G: 1, B: 0}
	colorOrange      = colorful.Color{R: 1, G: 0.65, B: 0}
	colorRed         = colorful.Color{R: 1, G: 0, B: 0}
)

// rect writes the corners of a w x h rectangle into points. The rectangle is
// centered at local offset (lx, ly) in a frame rotated by angle around (cx, cy).
func rect(points []draw.Point, cx, cy, lx, ly, w, h, angle float64) {
	hw, hh := w/2, h/2
	corners := [4][2]float64{{lx - hw, ly - hh}, {lx + hw, ly - hh}, {lx + hw, ly + hh}, {lx - hw, ly + hh}}
	sin, cos := math.Sincos(angle)
	for i, c := range corners {
		points[i] = draw.Point{
			X: cx + c[0]*cos - c[1]*sin,
			Y: cy + c[0]*sin + c[1]*cos,
		}
	}
}
