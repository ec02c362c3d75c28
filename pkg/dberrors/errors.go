package dberrors

import "errors"

var (
	ErrNotFound        = errors.New("mocktable: not found")
	ErrCorruption      = errors.New("mocktable: corruption")
	ErrInvalidState    = errors.New("mocktable: invalid state")
	ErrInvalidArgument = errors.New("mocktable: invalid argument")
	ErrClosed          = errors.New("mocktable: closed")
)
