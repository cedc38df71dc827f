// Package dao defines the storage boundary allocations are handed to.
package dao

import (
	"context"
)

// Service stores entities of type T keyed by K.
type Service[K comparable, T any] interface {
	// Save inserts or replaces t; a nil t fails with ErrNilEntity.
	Save(ctx context.Context, t *T) error

	// Load returns the entity stored under id or ErrNotFound.
	Load(ctx context.Context, id K) (*T, error)

	// Delete removes id; deleting a missing id fails with ErrNotFound.
	Delete(ctx context.Context, id K) error

	// List returns entities matching every parameter, in insertion order.
	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}
