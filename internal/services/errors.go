package services

import "errors"

var (
	// ErrNotFound is returned when no contract has the requested number.
	ErrNotFound = errors.New("services: contract not found")
	// ErrEmptyDocument is returned when the layout engine produced no bytes.
	ErrEmptyDocument = errors.New("services: document render produced no output")
	// ErrNumberExhausted is returned when number assignment keeps colliding.
	ErrNumberExhausted = errors.New("services: could not assign a unique contract number")
)
