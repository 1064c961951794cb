package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Chain is a segmented body. Segments[0] is the head; the rest trail it at
// Spacing, each pulled at most FollowRate units per second.
type Chain struct {
	Segments   []cp.Vector
	Heading    float64
	Speed      float64
	TurnRate   float64
	Spacing    float64
	FollowRate float64
	Radius     float64
}

// NewChain lays out n segments in a straight line behind head.
func NewChain(head cp.Vector, heading float64, cfg ChainConfig, speed, turnRate float64) Chain {
	n := cfg.Segments
	if n < 1 {
		n = 1
	}
	back := cp.ForAngle(heading + math.Pi)
	segs := make([]cp.Vector, n)
	for i := range segs {
		segs[i] = head.Add(back.Mult(cfg.Spacing * float64(i)))
	}
	return Chain{
		Segments:   segs,
		Heading:    heading,
		Speed:      speed,
		TurnRate:   turnRate,
		Spacing:    cfg.Spacing,
		FollowRate: cfg.FollowRate,
		Radius:     cfg.Radius,
	}
}

// Head returns the head position.
func (c *Chain) Head() cp.Vector {
	if len(c.Segments) == 0 {
		return cp.Vector{}
	}
	return c.Segments[0]
}

// Touches reports whether a circle at p with radius r overlaps any segment.
func (c *Chain) Touches(p cp.Vector, r float64) bool {
	reach := c.Radius + r
	for _, s := range c.Segments {
		if s.DistanceSq(p) <= reach*reach {
			return true
		}
	}
	return false
}
