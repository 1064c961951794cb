package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
)

type EventType string

const (
	EventHazardSpawned          EventType = "hazard_spawned"
	EventHazardExpired          EventType = "hazard_expired"
	EventPhaseChanged           EventType = "phase_changed"
	EventModeChanged            EventType = "mode_changed"
	EventPlayerDamaged          EventType = "player_damaged"
	EventContactDamage          EventType = "contact_damage"
	EventInvulnerabilityChanged EventType = "invulnerability_changed"
	EventPylonDestroyed         EventType = "pylon_destroyed"
	EventBossDefeated           EventType = "boss_defeated"
	EventBossFled               EventType = "boss_fled"
)

// Event is a notification for the host. Fields not relevant to Type are
// left zero.
type Event struct {
	Type     EventType  `json:"type"`
	Time     float64    `json:"time"`
	Hazard   ecs.Entity `json:"hazard,omitempty"`
	Kind     HazardKind `json:"kind,omitempty"`
	Phase    int        `json:"phase,omitempty"`
	Mode     string     `json:"mode,omitempty"`
	Amount   float64    `json:"amount,omitempty"`
	Flag     bool       `json:"flag,omitempty"`
	Position cp.Vector  `json:"position"`
}

// Terminal reports whether e ends the encounter.
func (e Event) Terminal() bool {
	return e.Type == EventBossDefeated || e.Type == EventBossFled
}
