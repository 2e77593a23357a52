package game

import (
	"math"

	"github.com/tomz197/splitfire/internal/config"
	"github.com/tomz197/splitfire/internal/object"
	"github.com/tomz197/splitfire/internal/physics"
)

// resolveCollisions handles projectile hits on enemies, then enemy contact
// with the vehicle.
//
// Hits are marked during the pass and compacted afterwards. Children and
// effects are queued and only added once the pass is over, so nothing created
// by a hit can be hit in the same tick.
func (g *Game) resolveCollisions() {
	projectiles := g.projectiles
	enemies := g.enemies

	for _, p := range projectiles {
		if p.IsDestroyed() {
			continue
		}
		for _, e := range enemies {
			if e.IsDestroyed() {
				continue
			}
			if !physics.Overlap(p, e) {
				continue
			}
			p.MarkDestroyed()
			e.MarkDestroyed()
			g.destroyEnemy(e)
			break // Projectile is spent
		}
	}

	g.projectiles = compact(g.projectiles, (*object.Projectile).IsDestroyed)
	g.enemies = compact(g.enemies, (*object.Enemy).IsDestroyed)
	g.flushSpawned()

	for _, e := range g.enemies {
		if physics.Overlap(g.vehicle, e) {
			g.endRun()
			return
		}
	}
}

// destroyEnemy applies the effects of a kill and queues the enemy's children.
func (g *Game) destroyEnemy(e *object.Enemy) {
	g.score += e.Score()
	g.stats.Kills++

	g.shake.Intensity = math.Max(g.shake.Intensity, e.Size/config.ShakeDivisor)

	g.spawnedExplosions = append(g.spawnedExplosions, object.NewExplosion(e.X, e.Y, e.Size))
	g.spawnedSparks = append(g.spawnedSparks, object.SpawnSparks(g.rng, e.X, e.Y, config.SparkCount)...)
	g.spawnedEnemies = append(g.spawnedEnemies, e.Split(g.rng, g.screen)...)

	g.logger.Debug("enemy destroyed", "size", e.Size, "score", g.score)
}

// flushSpawned adds all queued entities and clears the queues.
func (g *Game) flushSpawned() {
	g.enemies = append(g.enemies, g.spawnedEnemies...)
	g.explosions = append(g.explosions, g.spawnedExplosions...)
	g.sparks = append(g.sparks, g.spawnedSparks...)

	clear(g.spawnedEnemies)
	clear(g.spawnedExplosions)
	clear(g.spawnedSparks)
	g.spawnedEnemies = g.spawnedEnemies[:0]
	g.spawnedExplosions = g.spawnedExplosions[:0]
	g.spawnedSparks = g.spawnedSparks[:0]
}
