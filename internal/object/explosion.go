package object

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/splitfire/internal/config"
	"github.com/tomz197/splitfire/internal/draw"
)

// Explosion is an expanding ring left where an enemy was destroyed.
type Explosion struct {
	X, Y    float64
	Size    float64 // Size of the destroyed enemy
	Life    int     // Ticks remaining
	MaxLife int
}

// NewExplosion creates an explosion for an enemy of the given size.
func NewExplosion(x, y, size float64) *Explosion {
	return &Explosion{
		X:       x,
		Y:       y,
		Size:    size,
		Life:    config.ExplosionLife,
		MaxLife: config.ExplosionLife,
	}
}

// Update ages the explosion. Returns true once it has faded out.
func (e *Explosion) Update() bool {
	e.Life--
	return e.Life <= 0
}

// Progress returns how far the explosion is through its life, from 0 (new) to 1 (gone).
func (e *Explosion) Progress() float64 {
	if e.MaxLife <= 0 {
		return 1
	}
	p := 1 - float64(e.Life)/float64(e.MaxLife)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Radius grows from half the origin size to one and a half times it over the explosion's life.
func (e *Explosion) Radius() float64 {
	return e.Size/2 + e.Progress()*e.Size
}

// Color moves from yellow through orange to red as the explosion ages, fading out as it goes.
func (e *Explosion) Color() colorful.Color {
	p := e.Progress()
	var col colorful.Color
	if p < 0.5 {
		col = colorYellow.BlendRgb(colorOrange, p*2)
	} else {
		col = colorOrange.BlendRgb(colorRed, (p-0.5)*2)
	}
	return draw.Fade(col, 1-p)
}

// Draw renders the explosion as a ring with a smaller inner ring.
func (e *Explosion) Draw(ctx DrawContext) error {
	col := e.Color()
	r := e.Radius()
	ctx.Canvas.DrawCircle(e.X, e.Y, r, col)
	ctx.Canvas.DrawCircle(e.X, e.Y, r*0.6, col)
	return nil
}
