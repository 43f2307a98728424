package models

import "errors"

// ErrImmutable is returned by hooks when a stored contract would be changed.
var ErrImmutable = errors.New("contracts are immutable once created")

// All returns every persisted model, in migration order.
func All() []any {
	return []any{&Contract{}, &Setting{}}
}
