// Package game holds the single-player simulation: the entity collections,
// the per-tick update, collisions, score, screen shake and the game-over state.
package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/splitfire/internal/config"
	"github.com/tomz197/splitfire/internal/input"
	"github.com/tomz197/splitfire/internal/object"
)

// Options configures a new Game. Zero values select the defaults.
type Options struct {
	Width  float64     // World width, defaults to config.WorldWidth
	Height float64     // World height, defaults to config.WorldHeight
	Rand   object.Rand // Random source, defaults to a time-seeded *rand.Rand
	Logger *log.Logger // Run events, defaults to a discarding logger
}

// Shake is the camera shake state.
type Shake struct {
	Intensity float64
	OffsetX   float64
	OffsetY   float64
}

// Stats counts what happened in the current run.
type Stats struct {
	Kills int
	Shots int
	Ticks int
}

// Game owns every entity collection and advances them one tick at a time.
// It is not safe for concurrent use.
type Game struct {
	screen object.Screen
	rng    object.Rand
	logger *log.Logger

	vehicle     *object.Vehicle
	projectiles []*object.Projectile
	enemies     []*object.Enemy
	stars       []*object.Star
	explosions  []*object.Explosion
	sparks      []*object.Spark

	score    int
	gameOver bool
	shake    Shake
	stats    Stats

	// Entities created during collision resolution, added after the pass
	spawnedEnemies    []*object.Enemy
	spawnedExplosions []*object.Explosion
	spawnedSparks     []*object.Spark
}

// New creates a game with the vehicle at the center, a star field and the
// initial enemies.
func New(opts Options) *Game {
	if opts.Width <= 0 {
		opts.Width = config.WorldWidth
	}
	if opts.Height <= 0 {
		opts.Height = config.WorldHeight
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	g := &Game{
		screen: object.NewScreen(opts.Width, opts.Height),
		rng:    opts.Rand,
		logger: opts.Logger,
	}
	g.reset()
	return g
}

// reset puts the game into its initial state.
func (g *Game) reset() {
	cx, cy := g.screen.Center()
	g.vehicle = object.NewVehicle(cx, cy)

	g.projectiles = nil
	g.explosions = nil
	g.sparks = nil
	g.stars = object.NewStars(g.rng, g.screen, config.StarCount)

	g.enemies = make([]*object.Enemy, 0, config.EnemyCount)
	for i := 0; i < config.EnemyCount; i++ {
		g.enemies = append(g.enemies, object.NewEnemyAwayFrom(g.rng, g.screen, config.EnemySize, cx, cy, config.SpawnClearance))
	}

	g.score = 0
	g.gameOver = false
	g.shake = Shake{}
	g.stats = Stats{}
}

// Tick advances the simulation by one frame. It does nothing once the game is over.
func (g *Game) Tick(in input.Input) {
	if g.gameOver {
		return
	}
	g.stats.Ticks++

	ctx := object.UpdateContext{
		Input:  in,
		Screen: g.screen,
		Rand:   g.rng,
	}

	g.vehicle.Update(ctx)

	g.projectiles = compact(g.projectiles, func(p *object.Projectile) bool {
		return p.Update(ctx)
	})

	for _, e := range g.enemies {
		e.Update(ctx)
	}

	g.explosions = compact(g.explosions, (*object.Explosion).Update)
	g.sparks = compact(g.sparks, func(s *object.Spark) bool {
		return s.Update(ctx)
	})

	g.resolveCollisions()

	g.updateShake()
}

// Fire launches a projectile from the vehicle along its heading and pushes the
// vehicle back. It does nothing once the game is over.
func (g *Game) Fire() {
	if g.gameOver {
		return
	}
	v := g.vehicle
	g.projectiles = append(g.projectiles, object.NewProjectile(v.X, v.Y, v.Angle))
	v.Recoil(config.RecoilImpulse)
	g.stats.Shots++
}

// Restart begins a new run. It does nothing unless the game is over.
func (g *Game) Restart() {
	if !g.gameOver {
		return
	}
	g.logger.Info("restart", "previous_score", g.score)
	g.reset()
}

// updateShake draws a new camera offset within the current intensity and decays it.
func (g *Game) updateShake() {
	g.shake.OffsetX = (g.rng.Float64() - 0.5) * g.shake.Intensity
	g.shake.OffsetY = (g.rng.Float64() - 0.5) * g.shake.Intensity
	g.shake.Intensity *= config.ShakeDecay
}

// endRun sets the terminal game-over state.
func (g *Game) endRun() {
	g.gameOver = true
	g.logger.Info("game over",
		"score", g.score,
		"kills", g.stats.Kills,
		"shots", g.stats.Shots,
		"ticks", g.stats.Ticks,
	)
}

// Vehicle returns the player vehicle.
func (g *Game) Vehicle() *object.Vehicle { return g.vehicle }

// Projectiles returns the live projectiles. The slice must not be modified.
func (g *Game) Projectiles() []*object.Projectile { return g.projectiles }

// Enemies returns the live enemies. The slice must not be modified.
func (g *Game) Enemies() []*object.Enemy { return g.enemies }

// Stars returns the background star field.
func (g *Game) Stars() []*object.Star { return g.stars }

// Explosions returns the active explosions.
func (g *Game) Explosions() []*object.Explosion { return g.explosions }

// Sparks returns the active sparks.
func (g *Game) Sparks() []*object.Spark { return g.sparks }

// Score returns the current run's score.
func (g *Game) Score() int { return g.score }

// GameOver reports whether the vehicle has been hit.
func (g *Game) GameOver() bool { return g.gameOver }

// Shake returns the camera shake state.
func (g *Game) Shake() Shake { return g.shake }

// Screen returns the world dimensions.
func (g *Game) Screen() object.Screen { return g.screen }

// Stats returns counters for the current run.
func (g *Game) Stats() Stats { return g.stats }

// Clone returns a deep copy of the game. The copy shares the random source and logger.
func (g *Game) Clone() *Game {
	c := *g

	v := *g.vehicle
	c.vehicle = &v
	c.projectiles = cloneAll(g.projectiles)
	c.enemies = cloneAll(g.enemies)
	c.stars = cloneAll(g.stars)
	c.explosions = cloneAll(g.explosions)
	c.sparks = cloneAll(g.sparks)

	c.spawnedEnemies = nil
	c.spawnedExplosions = nil
	c.spawnedSparks = nil

	return &c
}

// cloneAll copies every element of items into a new slice.
func cloneAll[T any](items []*T) []*T {
	if items == nil {
		return nil
	}
	out := make([]*T, len(items))
	for i, item := range items {
		cp := *item
		out[i] = &cp
	}
	return out
}

// compact removes, in place, every item for which remove returns true.
// Order is preserved.
func compact[T any](items []T, remove func(T) bool) []T {
	kept := items[:0]
	for _, item := range items {
		if !remove(item) {
			kept = append(kept, item)
		}
	}
	clear(items[len(kept):])
	return kept
}
