package config

import "errors"

var (
	ErrUnknownFormat   = errors.New("unknown scene file format")
	ErrInvalidWorld    = errors.New("invalid world settings")
	ErrInvalidObject   = errors.New("invalid object")
	ErrDuplicateObject = errors.New("duplicate object name")
	ErrUnknownParent   = errors.New("parent must name an earlier object")
)
