package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/physics2d/internal/core/physics"
	physicssys "github.com/zeusync/physics2d/internal/core/systems/physics"
)

// Vec2 is written as a two element list, `[x, y]`, in both formats.
type Vec2 [2]float32

func (v Vec2) Vector() physics.Vector2 { return physics.Vec2(v[0], v[1]) }

// SceneConfig describes a world and the objects populating it.
type SceneConfig struct {
	Name    string         `json:"name" yaml:"name"`
	World   WorldConfig    `json:"world" yaml:"world"`
	Objects []ObjectConfig `json:"objects" yaml:"objects"`
}

// WorldConfig holds simulation settings. Unset fields keep the engine
// defaults.
type WorldConfig struct {
	Gravity        *Vec2   `json:"gravity,omitempty" yaml:"gravity,omitempty"`
	Iterations     int     `json:"iterations,omitempty" yaml:"iterations,omitempty"`
	FixedDeltaTime float64 `json:"fixed_dt,omitempty" yaml:"fixed_dt,omitempty"`
	MaxSubSteps    int     `json:"max_sub_steps,omitempty" yaml:"max_sub_steps,omitempty"`
	Topic          string  `json:"topic,omitempty" yaml:"topic,omitempty"`

	SleepLinearTolerance *float32 `json:"sleep_linear_tolerance,omitempty" yaml:"sleep_linear_tolerance,omitempty"`
	// SleepAngularTolerance is in degrees per second.
	SleepAngularTolerance *float32 `json:"sleep_angular_tolerance,omitempty" yaml:"sleep_angular_tolerance,omitempty"`
	SleepTime             *float32 `json:"sleep_time,omitempty" yaml:"sleep_time,omitempty"`
}

type ObjectConfig struct {
	Name string `json:"name" yaml:"name"`
	// Parent names an object declared earlier in the list. Position and
	// Rotation are then relative to it.
	Parent   string          `json:"parent,omitempty" yaml:"parent,omitempty"`
	Position Vec2            `json:"position" yaml:"position"`
	Rotation float32         `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Body     *BodyConfig     `json:"body,omitempty" yaml:"body,omitempty"`
	Collider *ColliderConfig `json:"collider,omitempty" yaml:"collider,omitempty"`
}

type BodyConfig struct {
	Type              string   `json:"type" yaml:"type"`
	Mass              *float32 `json:"mass,omitempty" yaml:"mass,omitempty"`
	Inertia           *float32 `json:"inertia,omitempty" yaml:"inertia,omitempty"`
	LinearDamping     *float32 `json:"linear_damping,omitempty" yaml:"linear_damping,omitempty"`
	AngularDamping    *float32 `json:"angular_damping,omitempty" yaml:"angular_damping,omitempty"`
	GravityScale      *float32 `json:"gravity_scale,omitempty" yaml:"gravity_scale,omitempty"`
	AffectedByGravity *bool    `json:"affected_by_gravity,omitempty" yaml:"affected_by_gravity,omitempty"`
	FixedRotation     bool     `json:"fixed_rotation,omitempty" yaml:"fixed_rotation,omitempty"`
	Friction          *float32 `json:"friction,omitempty" yaml:"friction,omitempty"`
	Restitution       *float32 `json:"restitution,omitempty" yaml:"restitution,omitempty"`
	Velocity          *Vec2    `json:"velocity,omitempty" yaml:"velocity,omitempty"`
	AngularVelocity   float32  `json:"angular_velocity,omitempty" yaml:"angular_velocity,omitempty"`
	CanSleep          *bool    `json:"can_sleep,omitempty" yaml:"can_sleep,omitempty"`
	Asleep            bool     `json:"asleep,omitempty" yaml:"asleep,omitempty"`
}

type ColliderConfig struct {
	Shape   string  `json:"shape" yaml:"shape"`
	Width   float32 `json:"width,omitempty" yaml:"width,omitempty"`
	Height  float32 `json:"height,omitempty" yaml:"height,omitempty"`
	Radius  float32 `json:"radius,omitempty" yaml:"radius,omitempty"`
	Offset  Vec2    `json:"offset,omitempty" yaml:"offset,omitempty"`
	Trigger bool    `json:"trigger,omitempty" yaml:"trigger,omitempty"`
	Layer   int32   `json:"layer,omitempty" yaml:"layer,omitempty"`
	// Mask defaults to every layer.
	Mask *uint32 `json:"mask,omitempty" yaml:"mask,omitempty"`
}

// Load reads a scene file, picking the decoder from the extension.
func Load(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scene file")
	}

	var cfg *SceneConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		cfg, err = LoadYAML(bytes.NewReader(data))
	case ".json":
		cfg, err = LoadJSON(bytes.NewReader(data))
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err = cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validate %s", path)
	}
	return cfg, nil
}

// LoadJSON decodes a scene from JSON without validating it.
func LoadJSON(r io.Reader) (*SceneConfig, error) {
	var c SceneConfig
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadYAML decodes a scene from YAML without validating it.
func LoadYAML(r io.Reader) (*SceneConfig, error) {
	var c SceneConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// PhysicsConfig converts the world settings into engine configuration.
func (w WorldConfig) PhysicsConfig() physics.Config {
	cfg := physics.DefaultConfig()
	if w.Gravity != nil {
		cfg.Gravity = w.Gravity.Vector()
	}
	if w.Iterations > 0 {
		cfg.Iterations = w.Iterations
	}
	if w.SleepLinearTolerance != nil {
		cfg.SleepLinearTolerance = *w.SleepLinearTolerance
	}
	if w.SleepAngularTolerance != nil {
		cfg.SleepAngularTolerance = *w.SleepAngularTolerance * math32.Pi / 180
	}
	if w.SleepTime != nil {
		cfg.SleepTime = *w.SleepTime
	}
	return cfg
}

// SystemConfig converts the stepping settings for the physics system.
func (w WorldConfig) SystemConfig() physicssys.Config {
	cfg := physicssys.DefaultConfig()
	if w.FixedDeltaTime > 0 {
		cfg.FixedDeltaTime = w.FixedDeltaTime
	}
	if w.MaxSubSteps > 0 {
		cfg.MaxSubSteps = w.MaxSubSteps
	}
	if w.Iterations > 0 {
		cfg.Iterations = w.Iterations
	}
	cfg.Topic = w.Topic
	return cfg
}
