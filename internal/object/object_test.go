package object

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/splitfire/internal/config"
	"github.com/tomz197/splitfire/internal/draw"
	"github.com/tomz197/splitfire/internal/physics"
)

// fixedRand returns the same value for every draw.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

var testScreen = NewScreen(800, 600)

func onScreen(s Screen, x, y float64) bool {
	return x >= 0 && x <= s.Width && y >= 0 && y <= s.Height
}

func TestEnemyScore(t *testing.T) {
	tests := []struct {
		size float64
		want int
	}{
		{30, 3},
		{15, 9},
		{7.5, 18},
		{50, 3},
		{51, 0},
		{0, 0},
		{-4, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := EnemyScore(tt.size); got != tt.want {
			t.Errorf("EnemyScore(%v) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestEnemySplit(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	tests := []struct {
		size         float64
		wantChildren int
	}{
		{30, 2},
		{15, 2},
		{10.5, 2},
		{10, 0},
		{7.5, 0},
		{1, 0},
	}
	for _, tt := range tests {
		parent := NewEnemy(rng, testScreen, tt.size)
		parent.X, parent.Y = 400, 300

		children := parent.Split(rng, testScreen)
		if len(children) != tt.wantChildren {
			t.Fatalf("size %v: got %d children, want %d", tt.size, len(children), tt.wantChildren)
		}
		for _, c := range children {
			if c.Size != tt.size/2 {
				t.Errorf("size %v: child size %v, want %v", tt.size, c.Size, tt.size/2)
			}
			if math.Abs(c.X-parent.X) > config.SplitJitter/2 || math.Abs(c.Y-parent.Y) > config.SplitJitter/2 {
				t.Errorf("child at (%v,%v) too far from parent", c.X, c.Y)
			}
			if math.Abs(c.VX) > config.SplitSpeed/2 || math.Abs(c.VY) > config.SplitSpeed/2 {
				t.Errorf("child velocity (%v,%v) outside split range", c.VX, c.VY)
			}
		}
	}
}

func TestEnemySplit_ChildrenNeverSplitBelowMinimum(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	queue := []*Enemy{NewEnemy(rng, testScreen, config.EnemySize)}
	destroyed := 0

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		destroyed++
		if e.Size <= 0 {
			t.Fatalf("enemy with non-positive size %v", e.Size)
		}
		queue = append(queue, e.Split(rng, testScreen)...)
		if destroyed > 100 {
			t.Fatal("splitting did not terminate")
		}
	}
	// 30 -> 2x15 -> 4x7.5
	if destroyed != 7 {
		t.Errorf("expected 7 enemies in a full split tree, got %d", destroyed)
	}
}

func TestNewEnemy_GuardsSize(t *testing.T) {
	e := NewEnemy(fixedRand(0.9), testScreen, 0)
	if e.Size != config.MinEnemySize {
		t.Errorf("expected size clamped to %v, got %v", config.MinEnemySize, e.Size)
	}
	if math.IsInf(e.VX, 0) || math.IsNaN(e.VX) {
		t.Errorf("velocity not finite: %v", e.VX)
	}
}

func TestNewEnemy_SmallerIsFaster(t *testing.T) {
	big := NewEnemy(fixedRand(1), testScreen, 30)
	small := NewEnemy(fixedRand(1), testScreen, 15)
	if small.VX <= big.VX {
		t.Errorf("expected smaller enemy to be faster: small %v, big %v", small.VX, big.VX)
	}
	if big.VX != 0.5*(config.EnemySpeedScale/30) {
		t.Errorf("unexpected velocity %v", big.VX)
	}
}

func TestNewEnemyAwayFrom(t *testing.T) {
	// Every draw lands at the center, so the clearance can never be satisfied;
	// the spawner must still terminate.
	e := NewEnemyAwayFrom(fixedRand(0.5), testScreen, 30, 400, 300, 100)
	if e == nil {
		t.Fatal("expected an enemy")
	}

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		e := NewEnemyAwayFrom(rng, testScreen, 30, 400, 300, 100)
		if math.Abs(e.X-400) < 100 && math.Abs(e.Y-300) < 100 {
			t.Errorf("enemy spawned inside clearance at (%v, %v)", e.X, e.Y)
		}
	}
}

func TestProjectile_LifeAndRemoval(t *testing.T) {
	p := NewProjectile(100, 100, 0)
	ctx := UpdateContext{Screen: testScreen}

	for tick := 1; tick <= config.ProjectileLife; tick++ {
		before := p.Life
		remove := p.Update(ctx)
		if p.Life != before-1 {
			t.Fatalf("tick %d: life went from %d to %d", tick, before, p.Life)
		}
		if remove != (p.Life == 0) {
			t.Fatalf("tick %d: remove=%v with life %d", tick, remove, p.Life)
		}
	}
	if !p.IsDestroyed() {
		t.Error("expected projectile destroyed once life is spent")
	}
}

func TestProjectile_VelocityFromAngle(t *testing.T) {
	p := NewProjectile(0, 0, math.Pi/2)
	if math.Abs(p.VX) > 1e-9 || math.Abs(p.VY-config.ProjectileSpeed) > 1e-9 {
		t.Errorf("expected velocity (0, %v), got (%v, %v)", config.ProjectileSpeed, p.VX, p.VY)
	}
}

func TestVehicle_SteeringAndThrust(t *testing.T) {
	v := NewVehicle(400, 300)
	ctx := UpdateContext{Screen: testScreen}

	ctx.Input.Left = true
	ctx.Input.Right = true
	v.Update(ctx)
	if v.Angle != 0 {
		t.Errorf("both turn keys should cancel, angle %v", v.Angle)
	}

	ctx.Input = Input{Right: true}
	v.Update(ctx)
	if math.Abs(v.Angle-config.TurnRate) > 1e-12 {
		t.Errorf("expected angle %v, got %v", config.TurnRate, v.Angle)
	}

	v = NewVehicle(400, 300)
	ctx.Input = Input{Forward: true}
	v.Update(ctx)
	// Thrust, move, then friction.
	if math.Abs(v.X-400.1) > 1e-9 {
		t.Errorf("expected x 400.1 after one tick of thrust, got %v", v.X)
	}
	if math.Abs(v.VX-config.ThrustAccel*config.Friction) > 1e-12 {
		t.Errorf("expected vx %v, got %v", config.ThrustAccel*config.Friction, v.VX)
	}

	ctx.Input = Input{Reverse: true}
	v.Update(ctx)
	if v.VX >= config.ThrustAccel*config.Friction {
		t.Errorf("reverse should reduce forward velocity, got %v", v.VX)
	}
}

func TestVehicle_SpeedNeverExceedsMax(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	v := NewVehicle(400, 300)
	ctx := UpdateContext{Screen: testScreen}

	for i := 0; i < 5000; i++ {
		ctx.Input = Input{
			Left:    rng.Intn(4) == 0,
			Right:   rng.Intn(4) == 0,
			Forward: rng.Intn(2) == 0,
			Reverse: rng.Intn(5) == 0,
		}
		v.Update(ctx)
		if s := v.Speed(); s > config.MaxSpeed+1e-9 {
			t.Fatalf("tick %d: speed %v exceeds max %v", i, s, config.MaxSpeed)
		}
		if !onScreen(testScreen, v.X, v.Y) {
			t.Fatalf("tick %d: vehicle left the screen at (%v, %v)", i, v.X, v.Y)
		}
	}
}

func TestVehicle_Recoil(t *testing.T) {
	v := NewVehicle(400, 300)
	v.Recoil(config.RecoilImpulse)
	if math.Abs(v.VX+config.RecoilImpulse) > 1e-12 || math.Abs(v.VY) > 1e-12 {
		t.Errorf("expected velocity (-%v, 0), got (%v, %v)", config.RecoilImpulse, v.VX, v.VY)
	}
}

func TestEntities_WrapOnUpdate(t *testing.T) {
	ctx := UpdateContext{Screen: testScreen}

	e := &Enemy{X: 799, Y: 1, VX: 3, VY: -3, Size: 30}
	e.Update(ctx)
	if e.X != 0 || e.Y != testScreen.Height {
		t.Errorf("enemy wrapped to (%v, %v), want (0, %v)", e.X, e.Y, testScreen.Height)
	}

	p := NewProjectile(2, 300, math.Pi)
	p.Update(ctx)
	if p.X != testScreen.Width {
		t.Errorf("projectile wrapped to x=%v, want %v", p.X, testScreen.Width)
	}

	s := NewSpark(400, 599, 0, 5, 10)
	s.Update(ctx)
	if s.Y != 0 {
		t.Errorf("spark wrapped to y=%v, want 0", s.Y)
	}
}

func TestSpawnSparks(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	sparks := SpawnSparks(rng, 100, 200, config.SparkCount)
	if len(sparks) != config.SparkCount {
		t.Fatalf("expected %d sparks, got %d", config.SparkCount, len(sparks))
	}
	for _, s := range sparks {
		if s.X != 100 || s.Y != 200 {
			t.Errorf("spark should start at burst origin, got (%v, %v)", s.X, s.Y)
		}
		if s.Life < config.SparkLife/2 || s.Life > config.SparkLife {
			t.Errorf("spark life %d outside [%d, %d]", s.Life, config.SparkLife/2, config.SparkLife)
		}
		speed := physics.Speed(s.VX, s.VY)
		if speed < config.SparkSpeed*0.5-1e-9 || speed > config.SparkSpeed*1.5+1e-9 {
			t.Errorf("spark speed %v outside range", speed)
		}
	}
}

func TestSpark_Expires(t *testing.T) {
	s := NewSpark(10, 10, 1, 0, 3)
	ctx := UpdateContext{Screen: testScreen}
	if s.Update(ctx) || s.Update(ctx) {
		t.Fatal("spark removed too early")
	}
	if !s.Update(ctx) {
		t.Error("spark should be removed when life reaches zero")
	}
}

func TestExplosion_RadiusGrowsAndFades(t *testing.T) {
	e := NewExplosion(0, 0, 30)
	prevRadius := e.Radius()
	prevAlpha := e.Color().R + e.Color().G

	for !e.Update() {
		r := e.Radius()
		if r <= prevRadius {
			t.Fatalf("radius did not grow: %v -> %v", prevRadius, r)
		}
		prevRadius = r

		c := e.Color()
		if c.R+c.G > prevAlpha+1e-9 {
			t.Fatalf("explosion got brighter: %v -> %v", prevAlpha, c.R+c.G)
		}
		prevAlpha = c.R + c.G
	}
	if e.Life != 0 {
		t.Errorf("explosion removed with life %d", e.Life)
	}
}

func TestExplosion_ColorRamp(t *testing.T) {
	e := NewExplosion(0, 0, 30)
	if c := e.Color(); c != colorYellow {
		t.Errorf("new explosion should be yellow, got %v", c)
	}

	e.Life = e.MaxLife / 2
	c := e.Color()
	if c.G <= 0 || c.G >= colorYellow.G*0.5 {
		t.Errorf("half-way explosion should be dim orange, got %v", c)
	}
}

func TestNewStars(t *testing.T) {
	stars := NewStars(rand.New(rand.NewSource(1)), testScreen, config.StarCount)
	if len(stars) != config.StarCount {
		t.Fatalf("expected %d stars, got %d", config.StarCount, len(stars))
	}
	for _, s := range stars {
		if !onScreen(testScreen, s.X, s.Y) {
			t.Errorf("star outside screen at (%v, %v)", s.X, s.Y)
		}
		if s.Brightness < 0.2 || s.Brightness > 1 {
			t.Errorf("brightness %v outside [0.2, 1]", s.Brightness)
		}
	}
}

func TestDraw_AllEntitiesPaintCanvas(t *testing.T) {
	drawables := []Drawable{
		NewVehicle(400, 300),
		NewProjectile(400, 300, 0),
		&Enemy{X: 400, Y: 300, Size: 30},
		&Star{X: 400, Y: 300, Brightness: 1},
		NewExplosion(400, 300, 30),
		NewSpark(400, 300, 0, 0, 10),
	}

	for _, d := range drawables {
		canvas := draw.NewCanvas(80, 30, testScreen.Width, testScreen.Height)
		if err := d.Draw(DrawContext{Canvas: canvas}); err != nil {
			t.Fatalf("%T.Draw: %v", d, err)
		}
		painted := 0
		canvas.Cells(func(draw.Cell) { painted++ })
		if painted == 0 {
			t.Errorf("%T drew nothing", d)
		}
	}
}
