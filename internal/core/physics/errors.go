package physics

import "errors"

var (
	ErrInvalidDimension = errors.New("shape dimension must be positive")
	ErrShapeMismatch    = errors.New("operation does not apply to this shape kind")
	ErrUnsupportedShape = errors.New("shape kind is not supported")
	ErrInvalidLayer     = errors.New("layer must be in range 0..31")
	ErrInvalidMass      = errors.New("mass must be positive")
	ErrInvalidDamping   = errors.New("damping must not be negative")
	ErrInvalidInertia   = errors.New("inertia must be positive")
)
