package config

import "time"

// Game configuration constants.
// All tunable game parameters are centralized here for easy adjustment.
// Distances are world units, rates are per tick.

// World
const (
	WorldWidth  = 800 // Default logical world width
	WorldHeight = 600 // Default logical world height
	TickRate    = 60
	TickTime    = time.Second / TickRate
)

// Vehicle
const (
	VehicleSize   = 20.0
	TurnRate      = 0.05 // Radians per tick
	ThrustAccel   = 0.1
	Friction      = 0.98 // Velocity factor per tick
	MaxSpeed      = 5.0
	RecoilImpulse = 0.5
)

// Projectiles
const (
	ProjectileSpeed = 5.0
	ProjectileSize  = 5.0
	ProjectileLife  = 100 // Ticks
)

// Enemies
const (
	EnemySize       = 30.0
	EnemyCount      = 5
	EnemySpin       = 0.05 // Radians per tick
	EnemySpeedScale = 30.0 // Velocity component range is EnemySpeedScale/size
	SplitThreshold  = 10.0 // Enemies larger than this split when destroyed
	SplitChildren   = 2
	SplitJitter     = 20.0
	SplitSpeed      = 4.0
	MinEnemySize    = 1.0
	SpawnClearance  = 100.0 // Initial enemies avoid this box around the vehicle
	SpawnAttempts   = 16    // Draws before accepting a position inside the clearance box
)

// Scoring
const (
	ScoreNumerator  = 50.0
	ScoreMultiplier = 3
)

// Effects
const (
	ShakeDivisor  = 5.0
	ShakeDecay    = 0.9
	ExplosionLife = 30 // Ticks
	SparkCount    = 12
	SparkLife     = 25 // Ticks
	SparkSpeed    = 3.0
	SparkDrag     = 0.95
	StarCount     = 80
)

// Inactivity (SSH sessions)
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)
