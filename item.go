package dirstore

import (
	"fmt"
	"sync"
)

// Item is a typed, cached handle bound to one key inside a Directory.
//
// The cache holds the last known decoded value and is private to the
// handle: two Items for the same key can transiently disagree until
// one refreshes. Copies of one Item share the same cache cell, so they
// behave as the same handle. Construction is cheap and performs no
// disk access.
type Item[T any] struct {
	dir      *Directory
	key      string
	ser      Serializer[T]
	deferred bool
	cache    *itemCache[T]
}

// itemCache is the shared mutable cell behind an Item and its copies.
type itemCache[T any] struct {
	mu      sync.Mutex
	value   T
	present bool
	valid   bool
}

// NewItem returns an Item with synchronous writes: Set and Remove block
// until the disk write completes and return its error.
func NewItem[T any](dir *Directory, key string, ser Serializer[T]) Item[T] {
	return Item[T]{
		dir:   dir,
		key:   key,
		ser:   ser,
		cache: &itemCache[T]{},
	}
}

// NewDeferredItem returns an Item whose disk writes run on the
// directory's background queue. Set and Remove return immediately
// after updating the cache; write failures cannot reach a caller and
// are reported through the diagnostics hook only. Use
// [Directory.Flush] when durability must be confirmed.
func NewDeferredItem[T any](dir *Directory, key string, ser Serializer[T]) Item[T] {
	item := NewItem(dir, key, ser)
	item.deferred = true

	return item
}

// Key returns the logical key this Item is bound to.
func (i Item[T]) Key() string {
	return i.key
}

// Get returns the stored value. ok is false when no value is stored
// under the key.
//
// A valid cache is returned without touching disk; otherwise exactly
// one disk read runs, its outcome (present or absent) is cached, and
// the cache is marked valid. A decode failure leaves the cache invalid.
func (i Item[T]) Get() (value T, ok bool, err error) {
	i.cache.mu.Lock()
	defer i.cache.mu.Unlock()

	if i.cache.valid {
		return i.cache.value, i.cache.present, nil
	}

	data, readErr := i.dir.Data(i.key)
	if readErr != nil {
		var zero T

		return zero, false, readErr
	}

	if data == nil {
		var zero T

		i.cache.value = zero
		i.cache.present = false
		i.cache.valid = true

		return zero, false, nil
	}

	decoded, decErr := i.ser.Decode(data)
	if decErr != nil {
		var zero T

		return zero, false, fmt.Errorf("reading %q: %w", i.key, decErr)
	}

	i.cache.value = decoded
	i.cache.present = true
	i.cache.valid = true

	return decoded, true, nil
}

// Set stores value under the Item's key.
//
// The cache is updated and marked valid before the disk write in both
// write modes, so readers of this handle observe the new value even
// while a deferred write is still pending.
func (i Item[T]) Set(value T) error {
	i.cache.mu.Lock()
	i.cache.value = value
	i.cache.present = true
	i.cache.valid = true
	i.cache.mu.Unlock()

	if i.deferred {
		i.dir.queue.enqueue(func() error {
			data, err := i.encode(value)
			if err != nil {
				return fmt.Errorf("deferred write %q: %w", i.key, err)
			}

			writeErr := i.dir.WriteData(data, i.key)
			if writeErr != nil {
				return fmt.Errorf("deferred write %q: %w", i.key, writeErr)
			}

			return nil
		})

		return nil
	}

	data, err := i.encode(value)
	if err != nil {
		return fmt.Errorf("writing %q: %w", i.key, err)
	}

	return i.dir.WriteData(data, i.key)
}

// encode runs the serializer and normalizes nil output to an empty
// byte slice. Nil bytes mean "delete" at the Directory layer, but a
// Set always stores a value; without this a serializer that encodes
// to nil (Bytes on a nil slice) would silently delete the key while
// the cache claims it exists.
func (i Item[T]) encode(value T) ([]byte, error) {
	data, err := i.ser.Encode(value)
	if err != nil {
		return nil, err
	}

	if data == nil {
		data = []byte{}
	}

	return data, nil
}

// Remove deletes the stored value. Deleting an absent key is a no-op.
// The cache is updated to absent immediately in both write modes.
func (i Item[T]) Remove() error {
	i.cache.mu.Lock()

	var zero T

	i.cache.value = zero
	i.cache.present = false
	i.cache.valid = true
	i.cache.mu.Unlock()

	if i.deferred {
		i.dir.queue.enqueue(func() error {
			err := i.dir.WriteData(nil, i.key)
			if err != nil {
				return fmt.Errorf("deferred remove %q: %w", i.key, err)
			}

			return nil
		})

		return nil
	}

	return i.dir.WriteData(nil, i.key)
}

// ClearCache invalidates the cache without touching disk. The next Get
// re-reads from disk. Used to verify durability independent of the
// in-process cache.
func (i Item[T]) ClearCache() {
	i.cache.mu.Lock()
	defer i.cache.mu.Unlock()

	var zero T

	i.cache.value = zero
	i.cache.present = false
	i.cache.valid = false
}

// Value is the lossy convenience accessor: it returns the stored value
// or T's zero value when absent or on failure. Failures are reported
// through the diagnostics hook instead of returned, so Value cannot
// distinguish "absent" from "broken". Unsuitable for code that must
// act on errors; use [Item.Get] there.
func (i Item[T]) Value() T {
	value, _, err := i.Get()
	if err != nil {
		report(err)
	}

	return value
}

// SetValue is the lossy convenience mutator: encode and write failures
// are reported through the diagnostics hook and otherwise dropped.
// Unsuitable for code that must act on errors; use [Item.Set] there.
func (i Item[T]) SetValue(value T) {
	err := i.Set(value)
	if err != nil {
		report(err)
	}
}
