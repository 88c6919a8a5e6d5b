// Package exit contains test fixtures for the exit checker.
// This file covers basic/daily patterns - discarded results, forgotten
// guards, the defer g.Exit() discipline, and ignore directives.
// See advanced.go for escape patterns and evil.go for adversarial tests.
package exit

import (
	"fmt"

	"github.com/mpyw/scopeguard"
)

// ===== SHOULD REPORT =====

// [BAD]: result discarded as a statement
//
// The guard exists only as a temporary; nothing can ever exit it, so the
// cleanup is silently lost.
func badDiscardedResult() {
	scopeguard.New(1, func(int) {}) // want `result of scopeguard\.New is discarded; its cleanup can never run`
}

// [BAD]: result assigned to blank
func badBlankAssign() {
	_ = scopeguard.New(1, func(int) {}) // want `result of scopeguard\.New is discarded; its cleanup can never run`
}

// [BAD]: blank var declaration
func badBlankVarDecl() {
	var _ = scopeguard.Defer(func() {}) // want `result of scopeguard\.Defer is discarded; its cleanup can never run`
}

// [BAD]: guard variable never exited or released
//
// Accessor calls keep the guard armed; only Exit or Release consume it.
func badNeverExited() {
	g := scopeguard.New(1, func(int) {}) // want `guard "g" is never exited or released; defer g\.Exit\(\) after constructing it`
	g.Set(2)
}

// [BAD]: accessor chained on the temporary
//
// Value returns the guarded int but the guard itself is gone after the
// expression.
func badChainedAccessor() {
	v := scopeguard.New(3, func(int) {}).Value() // want `result of scopeguard\.New is discarded; its cleanup can never run`
	fmt.Println(v)
}

// [BAD]: read-only usage is not enough
func badOnlyRead() {
	g := scopeguard.New("res", func(string) {}) // want `guard "g" is never exited or released; defer g\.Exit\(\) after constructing it`
	fmt.Println(g.Value(), g.String())
}

// [BAD]: multiple forgotten guards
func badMultipleForgotten() {
	a := scopeguard.New(1, func(int) {}) // want `guard "a" is never exited or released; defer a\.Exit\(\) after constructing it`
	b := scopeguard.New(2, func(int) {}) // want `guard "b" is never exited or released; defer b\.Exit\(\) after constructing it`
	a.Set(b.Value())
}

// ===== SHOULD NOT REPORT =====

// [GOOD]: the canonical pattern
func goodDeferredExit() {
	g := scopeguard.New(1, func(int) {})
	defer g.Exit()
	g.Set(2)
}

// [GOOD]: released guard
//
// Release consumes the guard and returns ownership of the value; no Exit
// needed afterwards.
func goodReleased() int {
	g := scopeguard.New(1, func(int) {})
	return g.Release()
}

// [GOOD]: release with the deferred Exit in place
//
// The documented defuse pattern: Exit is idempotent, so the deferred call
// after a Release is a harmless no-op.
func goodReleaseUnderDeferredExit() int {
	g := scopeguard.New(1, func(int) {})
	defer g.Exit()
	g.Set(2)
	return g.Release()
}

// [GOOD]: inline sugar form
func goodInlineDefer() {
	defer scopeguard.Defer(func() { fmt.Println("done") }).Exit()
}

// [GOOD]: explicit early exit
//
// A plain Exit consumes the guard just as well; whether it should have been
// deferred is not this checker's concern.
func goodExplicitExit() {
	g := scopeguard.New(1, func(int) {})
	g.Set(2)
	g.Exit()
}

// [GOOD]: conditional exit paths
//
// The checker does not do path analysis; one Exit anywhere counts.
func goodConditionalExit(cond bool) {
	g := scopeguard.New(1, func(int) {})
	if cond {
		g.Exit()
		return
	}
	defer g.Exit()
}

// ===== IGNORE DIRECTIVES =====

// [GOOD]: suppressed with a checker-specific directive
func goodIgnoredLeak() {
	//scopeguard:ignore exit - fixture intentionally leaks the guard
	scopeguard.New(1, func(int) {})
}

// [GOOD]: suppressed with an ignore-all directive on the same line
func goodIgnoredSameLine() {
	scopeguard.New(1, func(int) {}) //scopeguard:ignore - intentional
}

// [BAD]: directive for an unrelated checker does not suppress
func badIgnoredWrongChecker() {
	//scopeguard:ignore release // want `unused scopeguard:ignore directive for checker\(s\): release`
	scopeguard.New(1, func(int) {}) // want `result of scopeguard\.New is discarded; its cleanup can never run`
}
