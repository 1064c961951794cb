package component

import "github.com/jakecoffman/cp"

// Mode is the boss's current behavior within a phase. The set is closed;
// callers switch over the concrete types.
type Mode interface {
	Name() string
	mode()
}

// Anchored bosses hold position at the arena center.
type Anchored struct{}

// Melee bosses close to contact range.
type Melee struct{}

// Ranged bosses hold a standoff distance and fire volleys.
type Ranged struct{}

// Chase bosses steer toward the player with a rate-limited turn.
type Chase struct{}

// Orbit bosses circle Center. Inside a circular arena the orbit follows the
// arena edge and Radius is ignored.
type Orbit struct {
	Center cp.Vector
	Radius float64
	Angle  float64
}

// Lunge is a short straight dash that reverts to Resume at Until.
type Lunge struct {
	Direction cp.Vector
	Speed     float64
	Until     float64
	Resume    Mode
}

func (Anchored) Name() string { return "anchored" }
func (Melee) Name() string    { return "melee" }
func (Ranged) Name() string   { return "ranged" }
func (Chase) Name() string    { return "chase" }
func (Orbit) Name() string    { return "orbit" }
func (Lunge) Name() string    { return "lunge" }

func (Anchored) mode() {}
func (Melee) mode()    {}
func (Ranged) mode()   {}
func (Chase) mode()    {}
func (Orbit) mode()    {}
func (Lunge) mode()    {}

// ModeName returns m's name, or "" for nil.
func ModeName(m Mode) string {
	if m == nil {
		return ""
	}
	return m.Name()
}
