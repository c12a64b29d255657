// Package lazy provides values that are initialized at most once, on
// first access.
package lazy

import (
	"context"
	"sync"
	"sync/atomic"
)

// Of is a lazy value that is initialized at most once.
type Of[T any] struct {
	create      func() T
	once        sync.Once
	value       T
	initialized atomic.Bool
}

// New creates a new lazy value. The callback will be called later, when the
// value is first accessed.
func New[T any](f func() T) *Of[T] {
	return &Of[T]{create: f}
}

// Get returns the value (and initializes it if necessary).
func (t *Of[T]) Get() T { //nolint:ireturn
	defer func() {
		if err := recover(); err != nil {
			// Reset the once state on panic so initialization can be retried
			t.once = sync.Once{}

			panic(err)
		}
	}()

	t.once.Do(func() {
		if t.create != nil {
			t.value = t.create()
			t.initialized.Store(true)
			t.create = nil
		}
	})

	return t.value
}

// Set lets you mutate the value. This is useful in some cases,
// but you should prefer the Get + callback pattern.
func (t *Of[T]) Set(value T) {
	t.create = nil
	t.value = value
	t.initialized.Store(true)
}

// Initialized returns true if the value has been initialized.
// This is useful for testing and debugging, but should never
// be part of the normal code flow.
func (t *Of[T]) Initialized() bool {
	return t.initialized.Load()
}

// OfCtx is a lazy value whose initializer receives a context. The context
// passed to the initializer is detached from the caller's cancellation, so
// a short-lived caller cannot poison a long-lived singleton.
type OfCtx[T any] struct {
	create      atomic.Pointer[func(context.Context) T]
	once        atomic.Pointer[sync.Once]
	value       atomic.Pointer[T]
	initialized atomic.Bool
}

// NewCtx creates a new lazy value. The callback will be called later, when
// the value is first accessed. The callback includes a context parameter.
func NewCtx[T any](f func(ctx context.Context) T) *OfCtx[T] {
	lzy := &OfCtx[T]{}
	lzy.create.Store(&f)

	return lzy
}

// Get returns the value (and initializes it if necessary).
func (t *OfCtx[T]) Get(ctx context.Context) T { //nolint:ireturn
	once := t.once.Load()
	if once == nil {
		newOnce := &sync.Once{}
		if t.once.CompareAndSwap(nil, newOnce) {
			once = newOnce
		} else {
			once = t.once.Load()
		}
	}

	defer func() {
		if err := recover(); err != nil {
			// Reset the once state on panic so initialization can be retried
			t.once.Store(&sync.Once{})

			panic(err)
		}
	}()

	once.Do(func() {
		createFn := t.create.Load()
		if createFn != nil {
			result := (*createFn)(context.WithoutCancel(ctx))
			t.value.Store(&result)
			t.initialized.Store(true)
			t.create.Store(nil)
		}
	})

	valPtr := t.value.Load()
	if valPtr != nil {
		return *valPtr
	}

	var zero T

	return zero
}

// Set lets you mutate the value directly, bypassing lazy initialization.
func (t *OfCtx[T]) Set(value T) {
	t.create.Store(nil)
	t.value.Store(&value)
	t.initialized.Store(true)
}

// Initialized returns true if the value has been initialized.
func (t *OfCtx[T]) Initialized() bool {
	return t.initialized.Load()
}
