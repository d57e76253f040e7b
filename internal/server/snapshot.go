package server

import (
	"fmt"

	"github.com/zeusync/physics2d/internal/core/physics"
)

// Vec is a vector on the wire, `[x, y]`.
type Vec [2]float32

func vec(v physics.Vector2) Vec { return Vec{v.X, v.Y} }

// BodyState is the public state of one body at snapshot time.
type BodyState struct {
	ID              string  `json:"id"`
	Name            string  `json:"name,omitempty"`
	Type            string  `json:"type"`
	Position        Vec     `json:"position"`
	Rotation        float32 `json:"rotation"`
	Velocity        Vec     `json:"velocity"`
	AngularVelocity float32 `json:"angular_velocity"`
	Asleep          bool    `json:"asleep"`
}

// Snapshot is the world state streamed to clients after a step.
type Snapshot struct {
	Scene    string      `json:"scene"`
	Step     uint64      `json:"step"`
	Digest   string      `json:"digest"`
	Awake    int         `json:"awake"`
	Contacts int         `json:"contacts"`
	Bodies   []BodyState `json:"bodies"`
}

type named interface {
	Name() string
}

// Capture reads the world's current state. Body names come from the
// UserData of their colliders when it has a Name method.
func Capture(scene string, world *physics.World) Snapshot {
	names := make(map[physics.BodyID]string)
	for _, c := range world.Colliders() {
		if n, ok := c.UserData.(named); ok && c.Body().Valid() {
			if _, seen := names[c.Body()]; !seen {
				names[c.Body()] = n.Name()
			}
		}
	}

	stats := world.Stats()
	snap := Snapshot{
		Scene:    scene,
		Step:     world.Steps(),
		Digest:   fmt.Sprintf("%016x", world.Digest()),
		Awake:    stats.Awake,
		Contacts: stats.Contacts,
		Bodies:   make([]BodyState, 0, stats.Bodies),
	}
	for _, rb := range world.Bodies() {
		snap.Bodies = append(snap.Bodies, BodyState{
			ID:              rb.ID().String(),
			Name:            names[rb.ID()],
			Type:            rb.Type().String(),
			Position:        vec(rb.Position()),
			Rotation:        rb.Rotation(),
			Velocity:        vec(rb.Velocity()),
			AngularVelocity: rb.AngularVelocity(),
			Asleep:          rb.IsAsleep(),
		})
	}
	return snap
}
