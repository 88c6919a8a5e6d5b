// Package checkers implements the individual scopeguard checkers.
//
// # Checker Overview
//
//	┌───────────┬──────────────────────────────────────────────────────────┐
//	│ exit      │ Guards that can never fire: discarded constructor        │
//	│           │ results and variables never exited or released.          │
//	│ release   │ Straight-line use of a guard after Release consumed it.  │
//	│ deferral  │ Conditional guards whose Exit is wrapped in a closure or │
//	│           │ called outside a defer, hiding panics from recover.      │
//	└───────────┴──────────────────────────────────────────────────────────┘
//
// All three checkers work from the same collected [Guard] records: one per
// guard-constructing call, produced by [Collect], carrying the factory, the
// strategy kind, and how the result was bound at the call site.
//
// # Conservatism
//
// The analysis is AST-level and deliberately one-sided. A guard the checkers
// cannot trace (returned, stored in a struct, passed to another function,
// reassigned) is assumed to be handled by whoever receives it. The goal is
// zero false positives on reasonable code; the runtime panics in the
// scopeguard package itself remain the backstop for what escapes the static
// net.
//
// Example detections:
//
//	func bad() {
//	    scopeguard.New(f, cleanup)        // exit: result is discarded
//	}
//
//	func alsoBad() {
//	    g := scopeguard.New(f, cleanup)   // exit: never exited or released
//	    g.Set(other)
//	}
//
//	func useAfterRelease() {
//	    g := scopeguard.New(f, cleanup)
//	    defer g.Exit()
//	    v := g.Release()
//	    g.Set(v)                          // release: used after Release
//	}
//
//	func hiddenPanic() {
//	    g := scopeguard.OnPanic(tx, rollback)
//	    defer func() { g.Exit() }()       // deferral: closure hides the panic
//	}
package checkers
