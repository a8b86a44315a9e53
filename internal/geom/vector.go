package geom

import (
	"fmt"
	"math"
	"math/rand"
)

// roundingTolerance is how close a coordinate must be to a whole number
// before RotateBy snaps it.
const roundingTolerance = 1e-12

// Vector2D is a double-precision 2D vector used for positions, velocities
// and directions. Pointer-receiver methods mutate in place; value-receiver
// methods leave the receiver untouched.
type Vector2D struct {
	X, Y float64
}

// Vec is shorthand for Vector2D{X: x, Y: y}.
func Vec(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// FromAngle returns a vector of the given length pointing at angle radians.
func FromAngle(angle, length float64) Vector2D {
	v := Vector2D{X: length}
	v.RotateBy(angle)
	return v
}

// Length returns the magnitude.
func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle is measured counterclockwise from +X, in (-π, π].
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// IsZero reports whether both components are exactly zero.
func (v Vector2D) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v *Vector2D) Add(o Vector2D) {
	v.X += o.X
	v.Y += o.Y
}

func (v *Vector2D) Subtract(o Vector2D) {
	v.X -= o.X
	v.Y -= o.Y
}

func (v Vector2D) Plus(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}

// Minus returns the vector pointing from o to v.
func (v Vector2D) Minus(o Vector2D) Vector2D {
	return Vector2D{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v *Vector2D) ScaleBy(s float64) {
	v.X *= s
	v.Y *= s
}

func (v Vector2D) ScaledBy(s float64) Vector2D {
	return Vector2D{X: v.X * s, Y: v.Y * s}
}

// Normalize scales v to unit length. Panics on a zero vector; callers must
// check Length first.
func (v *Vector2D) Normalize() {
	l := v.Length()
	if l == 0 {
		panic("geom: normalize of zero-length vector")
	}
	v.ScaleBy(1 / l)
	v.fixRounding()
}

// Unit returns the normalized copy of v. Panics on a zero vector.
func (v Vector2D) Unit() Vector2D {
	v.Normalize()
	return v
}

// ScaleTo keeps the direction and sets the length. Panics on a zero vector.
func (v *Vector2D) ScaleTo(length float64) {
	v.Normalize()
	v.ScaleBy(length)
}

// RotateBy rotates counterclockwise about the origin, then snaps any
// coordinate within 1e-12 of a whole number.
func (v *Vector2D) RotateBy(angle float64) {
	sin, cos := math.Sincos(angle)
	x, y := v.X, v.Y
	v.X = cos*x - sin*y
	v.Y = sin*x + cos*y
	v.fixRounding()
}

// RotatedBy returns a rotated copy of v.
func (v Vector2D) RotatedBy(angle float64) Vector2D {
	v.RotateBy(angle)
	return v
}

// RotateTo turns v so that it points at targetAngle, keeping its length.
func (v *Vector2D) RotateTo(targetAngle float64) {
	v.RotateBy(targetAngle - v.Angle())
}

func (v *Vector2D) fixRounding() {
	if r := math.Round(v.X); math.Abs(r-v.X) < roundingTolerance {
		v.X = r
	}
	if r := math.Round(v.Y); math.Abs(r-v.Y) < roundingTolerance {
		v.Y = r
	}
}

func (v Vector2D) String() string {
	return fmt.Sprintf("[%.3f, %.3f]", v.X, v.Y)
}

// Dot returns the dot product of a and b.
func Dot(a, b Vector2D) float64 {
	return a.X*b.X + a.Y*b.Y
}

// MostExtreme returns the vector in vs farthest along direction. Ties keep
// the first one encountered. ok is false when vs is empty or direction is
// zero.
func MostExtreme(vs []Vector2D, direction Vector2D) (best Vector2D, ok bool) {
	if len(vs) == 0 || direction.IsZero() {
		return Vector2D{}, false
	}
	best = vs[0]
	maxVal := Dot(best, direction)
	for _, v := range vs[1:] {
		if d := Dot(v, direction); d > maxVal {
			maxVal = d
			best = v
		}
	}
	return best, true
}

// Dilate scales every vector in vs away from focus by factor, in place.
func Dilate(vs []Vector2D, focus Vector2D, factor float64) {
	for i := range vs {
		vs[i].Subtract(focus)
		vs[i].ScaleBy(factor)
		vs[i].Add(focus)
	}
}

// RandomDirection returns a vector of the given length at a uniformly random
// angle.
func RandomDirection(rng *rand.Rand, length float64) Vector2D {
	return FromAngle(rng.Float64()*2*math.Pi, length)
}

// AngleDiff returns target-current wrapped into [-π, π].
func AngleDiff(target, current float64) float64 {
	d := math.Mod(target-current, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// StepAngle returns the rotation that moves current toward target by at
// most maxStep radians, snapping onto target when within one step.
func StepAngle(current, target, maxStep float64) float64 {
	d := AngleDiff(target, current)
	if math.Abs(d) <= maxStep {
		return d
	}
	return math.Copysign(maxStep, d)
}
