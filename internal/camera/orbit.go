// Package camera animates the demo's orbiting eye.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Orbit circles Target at Radius while bobbing between ±Height, looking at
// Target with +Y up.
type Orbit struct {
	Speed  float32
	Radius float32
	Height float32
	Target mgl32.Vec3

	eye mgl32.Vec3
}

// NewOrbit returns an orbit positioned for elapsed time zero.
func NewOrbit(speed, radius, height float32) *Orbit {
	o := &Orbit{Speed: speed, Radius: radius, Height: height}
	o.Update(0)
	return o
}

// Update recomputes the eye for the given seconds since start.
func (o *Orbit) Update(elapsed float64) {
	t := float64(o.Speed) * elapsed
	o.eye = mgl32.Vec3{
		o.Target.X() + o.Radius*float32(math.Cos(t)),
		o.Target.Y() + o.Height*float32(math.Sin(2*t)),
		o.Target.Z() + o.Radius*float32(math.Sin(t)),
	}
}

// Eye is the current camera position.
func (o *Orbit) Eye() mgl32.Vec3 { return o.eye }

// View is the world-to-camera matrix.
func (o *Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(o.eye, o.Target, mgl32.Vec3{0, 1, 0})
}

// Transform is the camera-to-world matrix, the inverse of View.
func (o *Orbit) Transform() mgl32.Mat4 {
	return o.View().Inv()
}
