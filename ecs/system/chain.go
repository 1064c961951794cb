package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs/component"
)

// SteerChain turns the head toward target at no more than TurnRate radians
// per second and advances it along the new heading.
func SteerChain(c *component.Chain, target cp.Vector, dt float64) {
	if c == nil || len(c.Segments) == 0 {
		return
	}
	head := c.Segments[0]
	if head.DistanceSq(target) > 0 {
		c.Heading = common.TurnToward(c.Heading, common.Bearing(head, target), c.TurnRate*dt)
	}
	c.Segments[0] = head.Add(cp.ForAngle(c.Heading).Mult(c.Speed * dt))
}

// FollowChain pulls every trailing segment toward the point Spacing behind
// its predecessor, moving at most FollowRate units per second.
func FollowChain(c *component.Chain, dt float64) {
	if c == nil {
		return
	}
	step := c.FollowRate * dt
	forward := cp.ForAngle(c.Heading)
	for i := 1; i < len(c.Segments); i++ {
		prev := c.Segments[i-1]
		dir := common.Direction(c.Segments[i], prev, forward)
		target := prev.Sub(dir.Mult(c.Spacing))
		c.Segments[i] = c.Segments[i].LerpConst(target, step)
		forward = dir
	}
}
