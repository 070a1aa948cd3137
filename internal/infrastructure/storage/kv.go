// Package storage provides the key-value persistence adapter: durable,
// string-keyed slots holding JSON-encoded values. Keys are independent;
// no cross-key consistency is guaranteed.
package storage

import "context"

// Store is the key-value persistence port.
//
// Save serializes value into the slot named by key, overwriting prior
// contents. Load deserializes the slot into out and reports whether a
// usable value was found: a missing slot or one whose contents fail to
// parse yields (false, nil), leaving out untouched so the caller's
// pre-filled fallback survives. Parse failures are deliberately swallowed
// (availability over correctness).
type Store interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, out any) (bool, error)
	Delete(ctx context.Context, key string) error
}
