// Package guardfactory contains test fixtures for the -guard-factory flag:
// results of the configured external factories are treated like guards from
// the scopeguard constructors themselves.
package guardfactory

import (
	"fmt"

	"github.com/example/fileguard"
)

var tracker fileguard.Tracker

// ===== SHOULD REPORT =====

// [BAD]: external factory result discarded
func badDiscarded() {
	fileguard.Open("a.txt") // want `result of fileguard\.Open is discarded; its cleanup can never run`
}

// [BAD]: external factory result never exited
func badNeverExited() {
	g := fileguard.Open("a.txt") // want `guard "g" is never exited or released; defer g\.Exit\(\) after constructing it`
	fmt.Println(g.Value().Name)
}

// [BAD]: method-form factory discarded
func badMethodDiscarded() {
	tracker.Acquire("b.txt") // want `result of fileguard\.Tracker\.Acquire is discarded; its cleanup can never run`
}

// [BAD]: method-form factory never exited
func badMethodNeverExited() {
	g := tracker.Acquire("b.txt") // want `guard "g" is never exited or released; defer g\.Exit\(\) after constructing it`
	g.Set(nil)
}

// [BAD]: use after Release applies to external factories too
func badUseAfterRelease() {
	g := fileguard.Open("c.txt")
	defer g.Exit()
	_ = g.Release()
	_ = g.Value() // want `guard "g" used after Release`
}

// ===== SHOULD NOT REPORT =====

// [GOOD]: canonical handling of an external factory result
func goodDeferredExit() {
	g := fileguard.Open("a.txt")
	defer g.Exit()
	fmt.Println(g.Value().Name)
}

// [GOOD]: released ownership
func goodReleased() *fileguard.File {
	g := tracker.Acquire("b.txt")
	return g.Release()
}
