package scopeguard

import "fmt"

// guardState tracks where a guard is in its lifecycle.
type guardState uint8

const (
	// armed is the initial state: the guard owns the value and the cleanup
	// has not run.
	armed guardState = iota
	// exited means Exit has run; whether the cleanup actually fired depends
	// on the strategy. The guard no longer owns the value.
	exited
	// released means Release returned the value to the caller without
	// running the cleanup.
	released
)

// Guard owns a value and a cleanup function. While the guard is armed the
// value is read and written only through the guard's accessors; when Exit
// runs as a deferred call, the cleanup receives the value in its final state.
//
// The zero Guard is armed over the zero value with a nil cleanup and is not
// useful; construct guards with [New], [WithStrategy], [OnSuccess],
// [OnPanic], or the [Defer] helpers.
type Guard[T any] struct {
	value    T
	cleanup  func(T)
	strategy Strategy
	state    guardState
}

// New returns an armed guard owning value. When the guard's Exit runs as a
// deferred call, cleanup is invoked exactly once with the value's final
// state. Construction never invokes cleanup and cannot fail.
//
// Use it as:
//
//	g := scopeguard.New(value, cleanup)
//	defer g.Exit()
func New[T any](value T, cleanup func(T)) *Guard[T] {
	return WithStrategy(value, cleanup, Always)
}

// OnSuccess returns a guard whose cleanup runs only when the enclosing
// function exits without a panic in flight. See [Strategy] for the deferral
// requirement conditional guards impose on Exit.
func OnSuccess[T any](value T, cleanup func(T)) *Guard[T] {
	return WithStrategy(value, cleanup, SuccessOnly)
}

// OnPanic returns a guard whose cleanup runs only while a panic is unwinding
// through the enclosing function. See [Strategy] for the deferral requirement
// conditional guards impose on Exit.
func OnPanic[T any](value T, cleanup func(T)) *Guard[T] {
	return WithStrategy(value, cleanup, PanicOnly)
}

// WithStrategy returns an armed guard owning value whose cleanup runs on the
// exits selected by s.
func WithStrategy[T any](value T, cleanup func(T), s Strategy) *Guard[T] {
	return &Guard[T]{value: value, cleanup: cleanup, strategy: s}
}

// Exit is the guard's scope-exit trigger. Defer it immediately after
// construction:
//
//	g := scopeguard.New(value, cleanup)
//	defer g.Exit()
//
// If the guard is still armed and the strategy selects this exit, Exit runs
// cleanup(value) and consumes the guard. Exit is idempotent: on an exited or
// released guard it does nothing, so an explicit early Exit followed by the
// deferred one never double-invokes the cleanup.
//
// For [Always] guards, Exit fires on every exit path alike; it does not need
// to know whether a panic is unwinding, and a panic in flight propagates
// past it untouched. For [SuccessOnly] and [PanicOnly] guards, Exit calls
// recover to observe unwinding and re-raises the recovered value, so it must
// be the deferred call itself. A plain (non-deferred) Exit on a conditional
// guard observes no panic and counts as a normal exit.
func (g *Guard[T]) Exit() {
	if g.state != armed {
		return
	}
	g.state = exited

	if g.strategy == Always {
		g.cleanup(g.value)
		return
	}

	if r := recover(); r != nil {
		if g.strategy == PanicOnly {
			g.cleanup(g.value)
		}
		panic(r)
	}

	if g.strategy == SuccessOnly {
		g.cleanup(g.value)
	}
}

// Value returns the guarded value. It panics if the guard is consumed.
func (g *Guard[T]) Value() T {
	g.mustArmed("Value")
	return g.value
}

// Ptr returns a pointer to the guarded value, valid until the guard is
// consumed. Mutations through the pointer are visible to the cleanup.
// It panics if the guard is consumed.
func (g *Guard[T]) Ptr() *T {
	g.mustArmed("Ptr")
	return &g.value
}

// Set replaces the guarded value. The cleanup will receive the new value.
// It panics if the guard is consumed.
func (g *Guard[T]) Set(v T) {
	g.mustArmed("Set")
	g.value = v
}

// Release defuses the guard and returns ownership of the value: the deferred
// Exit becomes a no-op and the cleanup never runs. Release consumes the
// guard; it panics on a second Release or after Exit has run. Call it when
// the guarded operation succeeded and the cleanup must not apply:
//
//	g := scopeguard.New(conn, closeConn)
//	defer g.Exit()
//	// ... work that may fail ...
//	return g.Release(), nil
func (g *Guard[T]) Release() T {
	g.mustArmed("Release")
	g.state = released

	v := g.value
	var zero T
	g.value = zero
	g.cleanup = nil

	return v
}

// String reports the guard's state and, while armed, its value. Unlike the
// accessors it is safe to call in any state.
func (g *Guard[T]) String() string {
	switch g.state {
	case released:
		return "scopeguard.Guard(released)"
	case exited:
		return "scopeguard.Guard(exited)"
	default:
		return fmt.Sprintf("scopeguard.Guard(%v)", g.value)
	}
}

func (g *Guard[T]) mustArmed(op string) {
	switch g.state {
	case released:
		panic("scopeguard: " + op + " on released guard")
	case exited:
		panic("scopeguard: " + op + " on exited guard")
	}
}
