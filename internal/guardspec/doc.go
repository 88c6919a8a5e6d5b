// Package guardspec decides which function calls produce guards.
//
// # Built-in factories
//
// Calls to the scopeguard constructors are recognized without configuration:
//
//	New, Defer                                   -> KindAlways
//	OnSuccess, OnPanic,
//	DeferOnSuccess, DeferOnPanic, WithStrategy   -> KindConditional
//
// WithStrategy is special-cased: when its strategy argument is literally
// scopeguard.Always the call is classified as KindAlways, since such a guard
// never needs to observe panics. Any other strategy expression, including a
// variable, is treated conservatively as conditional.
//
// # External factories
//
// The -guard-factory flag extends recognition to helpers that wrap the
// constructors, using the specification format shared with the flag parser:
//
//	pkg/path.FuncName           # Package-level function
//	pkg/path.TypeName.Method    # Method on type
//
// Use [Parse] or [ParseList] to build [Spec] values and [Spec.Matches] to
// test a types.Func against one. [Set.Classify] combines the built-in table
// and the configured specs into a single lookup over a call expression.
package guardspec
