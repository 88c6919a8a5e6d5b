package checkers

import (
	"go/ast"

	"github.com/mpyw/scopeguard/internal/directives/ignore"
)

// Exit reports guards whose cleanup can never run: constructor results
// dropped on the floor, and guard variables that are never exited, released,
// or handed off. Go has no destructor to back a forgotten guard up, so a
// guard nobody exits is a cleanup that silently never happens.
//
// The check is conservative: as soon as the guard variable escapes the
// function in a way it does not trace (returned, passed along, stored,
// reassigned), the guard is assumed to be handled elsewhere.
type Exit struct{}

// Name returns the checker name for ignore directive matching.
func (*Exit) Name() ignore.CheckerName {
	return ignore.Exit
}

// Check examines every collected guard.
func (c *Exit) Check(cctx *Context, guards []*Guard) {
	for _, g := range guards {
		switch {
		case g.Chained:
			// Exit/Release chained directly on the constructor.

		case g.Discarded:
			cctx.Reportf(ignore.Exit, g.Call.Pos(),
				"result of %s is discarded; its cleanup can never run", g.FactoryName)

		case g.Obj == nil:
			// Escaped at the construction site; assume handled.

		case !c.handled(cctx, g):
			cctx.Reportf(ignore.Exit, g.Call.Pos(),
				"guard %q is never exited or released; defer %s.Exit() after constructing it",
				g.Obj.Name(), g.Obj.Name())
		}
	}
}

// handled reports whether the guard variable is consumed somewhere in the
// enclosing function, or escapes it. Accessor calls (Value, Ptr, Set,
// String) keep the guard armed and do not count.
func (c *Exit) handled(cctx *Context, g *Guard) bool {
	consumed := false
	escaped := false
	covered := make(map[*ast.Ident]bool)

	// First pass: method calls on the guard variable.
	ast.Inspect(g.Body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		ident, method, ok := guardMethodCall(call)
		if !ok || !usesObject(cctx.Pass, ident, g.Obj) {
			return true
		}

		covered[ident] = true
		if method == "Exit" || method == "Release" {
			consumed = true
		}

		return true
	})

	if consumed {
		return true
	}

	// Second pass: any remaining mention of the variable is an escape.
	ast.Inspect(g.Body, func(n ast.Node) bool {
		ident, ok := n.(*ast.Ident)
		if !ok || ident == g.Bind || covered[ident] {
			return true
		}
		if usesObject(cctx.Pass, ident, g.Obj) {
			escaped = true
		}

		return true
	})

	return escaped
}
