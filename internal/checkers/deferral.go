package checkers

import (
	"go/ast"

	"github.com/mpyw/scopeguard/internal/directives/ignore"
	"github.com/mpyw/scopeguard/internal/guardspec"
)

// Deferral reports conditional guards (on-success / on-panic strategies)
// whose Exit is not the deferred call itself. Those strategies observe
// unwinding by calling recover inside Exit, and recover only sees a panic
// from the function the runtime deferred. Both of these break detection:
//
//	defer func() { g.Exit() }() // the closure swallows nothing but hides all
//	scopeguard.OnPanic(v, f).Exit() // runs inline; there is no panic yet
//
// Always-fire guards never look at recover, so wrapping their Exit is
// harmless and not reported.
type Deferral struct{}

// Name returns the checker name for ignore directive matching.
func (*Deferral) Name() ignore.CheckerName {
	return ignore.Deferral
}

// Check examines every collected conditional guard.
func (c *Deferral) Check(cctx *Context, guards []*Guard) {
	for _, g := range guards {
		if g.Kind != guardspec.KindConditional {
			continue
		}

		if g.Chained {
			if g.ChainedSel == "Exit" && !g.ChainedDeferred {
				cctx.Reportf(ignore.Deferral, g.Call.Pos(),
					"Exit of conditional guard must be deferred; a plain call cannot observe panics")
			}

			continue
		}

		if g.Obj != nil {
			c.checkWrapped(cctx, g)
		}
	}
}

// checkWrapped looks for "defer func() { ... g.Exit() ... }()" patterns in
// the guard's enclosing function.
func (c *Deferral) checkWrapped(cctx *Context, g *Guard) {
	ast.Inspect(g.Body, func(n ast.Node) bool {
		def, ok := n.(*ast.DeferStmt)
		if !ok {
			return true
		}
		lit, ok := def.Call.Fun.(*ast.FuncLit)
		if !ok {
			return true
		}

		ast.Inspect(lit.Body, func(m ast.Node) bool {
			call, ok := m.(*ast.CallExpr)
			if !ok {
				return true
			}
			ident, method, ok := guardMethodCall(call)
			if !ok || method != "Exit" || !usesObject(cctx.Pass, ident, g.Obj) {
				return true
			}

			name := g.Obj.Name()
			cctx.Reportf(ignore.Deferral, call.Pos(),
				"Exit of conditional guard %q must be deferred directly (defer %s.Exit()); a wrapping closure hides the panic",
				name, name)

			return true
		})

		return true
	})
}
