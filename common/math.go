package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// WrapAngle maps a to (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// TurnToward rotates current toward target by at most maxStep radians along
// the shorter arc.
func TurnToward(current, target, maxStep float64) float64 {
	diff := WrapAngle(target - current)
	if maxStep < 0 {
		maxStep = 0
	}
	return WrapAngle(current + cp.Clamp(diff, -maxStep, maxStep))
}

// Bearing returns the angle of the vector from -> to.
func Bearing(from, to cp.Vector) float64 {
	return to.Sub(from).ToAngle()
}

// Direction returns the unit vector from -> to, or fallback when the two
// points coincide.
func Direction(from, to cp.Vector, fallback cp.Vector) cp.Vector {
	d := to.Sub(from)
	if d.LengthSq() == 0 {
		return fallback
	}
	return d.Normalize()
}

// Overlaps is the radius-sum contact test used for every hazard.
func Overlaps(a cp.Vector, ra float64, b cp.Vector, rb float64) bool {
	r := ra + rb
	return a.DistanceSq(b) <= r*r
}

// SegmentDistance returns the distance from p to the segment a-b.
func SegmentDistance(p, a, b cp.Vector) float64 {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := cp.Clamp(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	return p.Distance(a.Add(ab.Mult(t)))
}

// RingPoint returns the i-th of n points evenly spaced on a circle.
func RingPoint(center cp.Vector, radius float64, i, n int, phase float64) cp.Vector {
	if n <= 0 {
		return center
	}
	a := phase + 2*math.Pi*float64(i)/float64(n)
	return center.Add(cp.ForAngle(a).Mult(radius))
}
