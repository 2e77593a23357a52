package object

import "github.com/tomz197/splitfire/internal/draw"

// Star is a static background point.
type Star struct {
	X, Y       float64
	Size       float64
	Brightness float64 // Opacity in [0.2, 1]
}

// NewStars scatters count stars across the screen.
func NewStars(rng Rand, screen Screen, count int) []*Star {
	stars := make([]*Star, 0, count)
	for i := 0; i < count; i++ {
		stars = append(stars, &Star{
			X:          rng.Float64() * screen.Width,
			Y:          rng.Float64() * screen.Height,
			Size:       1 + rng.Float64(),
			Brightness: 0.2 + rng.Float64()*0.8,
		})
	}
	return stars
}

// Draw renders the star as a dim pixel.
func (s *Star) Draw(ctx DrawContext) error {
	ctx.Canvas.SetFloat(s.X, s.Y, draw.Fade(colorStar, s.Brightness))
	return nil
}
