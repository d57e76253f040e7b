package scene

import "errors"

var (
	ErrComponentExists  = errors.New("component slot already taken")
	ErrComponentMissing = errors.New("component not found")
	ErrNilComponent     = errors.New("component is nil")
	ErrObjectDestroyed  = errors.New("object is destroyed")
	ErrTransformCycle   = errors.New("transform parent would create a cycle")
)
