package loop

import (
	"fmt"

	"github.com/tomz197/splitfire/internal/object"
)

// render draws the current game to the display. Entities are drawn in a fixed
// order with the camera shake applied; the HUD is drawn without it.
func (r *runner) render() error {
	cols, rows, err := r.display.Size()
	if err != nil {
		return err
	}
	r.canvas.Resize(cols, rows)

	g := r.game
	r.display.Clear()
	r.canvas.Clear()

	shake := g.Shake()
	r.canvas.Translate(shake.OffsetX, shake.OffsetY)

	ctx := object.DrawContext{Canvas: r.canvas}
	layers := []error{
		drawAll(ctx, g.Stars()),
		g.Vehicle().Draw(ctx),
		drawAll(ctx, g.Projectiles()),
		drawAll(ctx, g.Enemies()),
		drawAll(ctx, g.Explosions()),
		drawAll(ctx, g.Sparks()),
	}
	r.canvas.ResetTranslate()
	for _, err := range layers {
		if err != nil {
			return fmt.Errorf("draw: %w", err)
		}
	}

	if err := r.display.Present(r.canvas); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	r.display.SetScore(fmt.Sprintf("Score: %d", g.Score()))
	r.display.ShowGameOver(g.GameOver())
	r.display.ShowNotice(r.notice)

	if err := r.display.Flush(); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	return nil
}

// drawAll draws items in order and stops at the first error.
func drawAll[T object.Drawable](ctx object.DrawContext, items []T) error {
	for _, item := range items {
		if err := item.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}
