package config

import (
	"fmt"
	"math/rand"
)

// Pile describes a walled floor with count bodies dropped above it. The same
// seed always yields the same scene.
func Pile(count int, seed int64) *SceneConfig {
	rng := rand.New(rand.NewSource(seed))
	static := &BodyConfig{Type: "static"}

	cfg := &SceneConfig{
		Name: fmt.Sprintf("pile-%d-%d", count, seed),
		Objects: []ObjectConfig{
			{Name: "floor", Position: Vec2{0, 20}, Body: static, Collider: &ColliderConfig{Shape: "box", Width: 40, Height: 1}},
			{Name: "wall-left", Position: Vec2{-20, 10}, Body: static, Collider: &ColliderConfig{Shape: "box", Width: 1, Height: 20}},
			{Name: "wall-right", Position: Vec2{20, 10}, Body: static, Collider: &ColliderConfig{Shape: "box", Width: 1, Height: 20}},
		},
	}

	for i := 0; i < count; i++ {
		restitution := rng.Float32() * 0.5
		obj := ObjectConfig{
			Name:     fmt.Sprintf("body-%03d", i),
			Position: Vec2{rng.Float32()*30 - 15, -rng.Float32() * 20},
			Body:     &BodyConfig{Type: "dynamic", Restitution: &restitution},
		}
		if i%2 == 0 {
			obj.Collider = &ColliderConfig{Shape: "circle", Radius: 0.25 + rng.Float32()*0.5}
		} else {
			obj.Collider = &ColliderConfig{Shape: "box", Width: 0.5 + rng.Float32(), Height: 0.5 + rng.Float32()}
		}
		cfg.Objects = append(cfg.Objects, obj)
	}
	return cfg
}
