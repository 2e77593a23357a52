package object

import (
	"github.com/tomz197/splitfire/internal/config"
	"github.com/tomz197/splitfire/internal/physics"
)

// Vehicle is the player-controlled tank.
type Vehicle struct {
	X, Y   float64 // Position (center)
	VX, VY float64 // Velocity (momentum)
	Angle  float64 // Heading in radians (0 = pointing right, increases clockwise on screen)
	Size   float64
}

// NewVehicle creates a stationary vehicle at the given position, pointing right.
func NewVehicle(x, y float64) *Vehicle {
	return &Vehicle{
		X:    x,
		Y:    y,
		Size: config.VehicleSize,
	}
}

// Update handles steering, thrust, friction, the speed limit and screen wrapping.
func (v *Vehicle) Update(ctx UpdateContext) {
	if ctx.Input.Left {
		v.Angle -= config.TurnRate
	}
	if ctx.Input.Right {
		v.Angle += config.TurnRate
	}

	if ctx.Input.Forward {
		dx, dy := physics.Thrust(v.Angle, config.ThrustAccel)
		v.VX += dx
		v.VY += dy
	}
	if ctx.Input.Reverse {
		dx, dy := physics.Thrust(v.Angle, config.ThrustAccel)
		v.VX -= dx
		v.VY -= dy
	}

	v.X += v.VX
	v.Y += v.VY

	v.VX *= config.Friction
	v.VY *= config.Friction

	v.VX, v.VY = physics.ClampSpeed(v.VX, v.VY, config.MaxSpeed)

	ctx.Screen.WrapPosition(&v.X, &v.Y)
}

// Recoil pushes the vehicle backwards along its heading.
func (v *Vehicle) Recoil(impulse float64) {
	dx, dy := physics.Thrust(v.Angle, impulse)
	v.VX -= dx
	v.VY -= dy
}

// Speed returns the magnitude of the vehicle's velocity.
func (v *Vehicle) Speed() float64 {
	return physics.Speed(v.VX, v.VY)
}

// Draw renders the hull as a rotated filled square with a nose tab on the front edge.
func (v *Vehicle) Draw(ctx DrawContext) error {
	points := ctx.Canvas.BorrowPoints(4)

	rect(points, v.X, v.Y, 0, 0, v.Size, v.Size, v.Angle)
	ctx.Canvas.DrawPolygon(points, true, colorVehicle)

	const noseLength = 4
	rect(points, v.X, v.Y, v.Size/2+noseLength/2, 0, noseLength, v.Size/2, v.Angle)
	ctx.Canvas.DrawPolygon(points, true, colorVehicleNose)

	return nil
}

// GetPosition returns the vehicle's center position.
func (v *Vehicle) GetPosition() (float64, float64) {
	return v.X, v.Y
}

// GetSize returns the vehicle's collision size.
func (v *Vehicle) GetSize() float64 {
	return v.Size
}

