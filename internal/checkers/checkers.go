package checkers

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/mpyw/scopeguard/internal/directives/ignore"
	"github.com/mpyw/scopeguard/internal/guardspec"
)

// Context carries what every checker needs: the pass plus the ignore and
// skip bookkeeping shared across checkers.
type Context struct {
	Pass       *analysis.Pass
	IgnoreMaps map[string]ignore.Map
	SkipFiles  map[string]bool
}

// Reportf reports a diagnostic unless an ignore directive on the same or the
// previous line covers it for the given checker.
func (c *Context) Reportf(checker ignore.CheckerName, pos token.Pos, format string, args ...any) {
	position := c.Pass.Fset.Position(pos)
	if m, ok := c.IgnoreMaps[position.Filename]; ok && m.ShouldIgnore(position.Line, checker) {
		return
	}

	c.Pass.Reportf(pos, format, args...)
}

// Guard records one guard-constructing call and how its result is bound.
type Guard struct {
	Call        *ast.CallExpr
	FactoryName string         // e.g. "scopeguard.New", for diagnostics
	Kind        guardspec.Kind // always vs conditional strategy
	Obj         types.Object   // the variable holding the guard; nil if none
	Bind        *ast.Ident     // the ident the result is bound to; nil if none
	Body        *ast.BlockStmt // enclosing function body

	// Discarded means the result never lands anywhere: an expression
	// statement, a blank assign, or an accessor chained on the temporary.
	Discarded bool

	// Chained means Exit or Release is called directly on the constructor
	// result; ChainedDeferred tells whether that call sits under a defer.
	Chained         bool
	ChainedSel      string
	ChainedDeferred bool
}

// Collect finds every guard-constructing call in the pass. Calls in skipped
// files and outside function bodies are not collected.
func Collect(pass *analysis.Pass, insp *inspector.Inspector, factories *guardspec.Set, skipFiles map[string]bool) []*Guard {
	var guards []*Guard

	insp.WithStack([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}

		call := n.(*ast.CallExpr)
		if skipFiles[pass.Fset.Position(call.Pos()).Filename] {
			return true
		}

		fn, kind, ok := factories.Classify(pass, call)
		if !ok {
			return true
		}

		body := enclosingBody(stack)
		if body == nil {
			// Package-level initializer; nothing to trace.
			return true
		}

		g := &Guard{
			Call:        call,
			FactoryName: guardspec.FullName(fn),
			Kind:        kind,
			Body:        body,
		}
		bindGuard(pass, g, stack)
		guards = append(guards, g)

		return true
	})

	return guards
}

// enclosingBody returns the body of the innermost function containing the
// call, or nil for calls outside any function.
func enclosingBody(stack []ast.Node) *ast.BlockStmt {
	for i := len(stack) - 1; i >= 0; i-- {
		switch fn := stack[i].(type) {
		case *ast.FuncLit:
			return fn.Body
		case *ast.FuncDecl:
			return fn.Body
		}
	}

	return nil
}

// bindGuard classifies where the factory call's result goes, based on the
// call's parent node. Anything it cannot trace is left unbound and assumed
// handled elsewhere.
func bindGuard(pass *analysis.Pass, g *Guard, stack []ast.Node) {
	if len(stack) < 2 {
		return
	}

	switch parent := stack[len(stack)-2].(type) {
	case *ast.ExprStmt:
		g.Discarded = true

	case *ast.DeferStmt, *ast.GoStmt:
		// The factory call itself is the deferred/spawned call; its result
		// vanishes.
		g.Discarded = true

	case *ast.AssignStmt:
		bindAssign(pass, g, parent)

	case *ast.ValueSpec:
		bindValueSpec(pass, g, parent)

	case *ast.SelectorExpr:
		bindChained(g, parent, stack)

	default:
		// The guard escapes into an expression we do not trace: a call
		// argument, return value, composite literal, channel send, and so
		// on. Assume the receiver handles it.
	}
}

func bindAssign(pass *analysis.Pass, g *Guard, stmt *ast.AssignStmt) {
	for i, rhs := range stmt.Rhs {
		if rhs != ast.Expr(g.Call) {
			continue
		}
		if len(stmt.Lhs) != len(stmt.Rhs) {
			return // not a 1:1 binding; assume handled
		}

		ident, ok := stmt.Lhs[i].(*ast.Ident)
		if !ok {
			return // stored into a field or element; escapes
		}
		if ident.Name == "_" {
			g.Discarded = true
			return
		}

		g.Bind = ident
		g.Obj = pass.TypesInfo.ObjectOf(ident)

		return
	}
}

func bindValueSpec(pass *analysis.Pass, g *Guard, spec *ast.ValueSpec) {
	for i, v := range spec.Values {
		if v != ast.Expr(g.Call) {
			continue
		}
		if len(spec.Names) != len(spec.Values) {
			return
		}

		ident := spec.Names[i]
		if ident.Name == "_" {
			g.Discarded = true
			return
		}

		g.Bind = ident
		g.Obj = pass.TypesInfo.ObjectOf(ident)

		return
	}
}

func bindChained(g *Guard, sel *ast.SelectorExpr, stack []ast.Node) {
	switch sel.Sel.Name {
	case "Exit", "Release":
		g.Chained = true
		g.ChainedSel = sel.Sel.Name
		if len(stack) >= 4 {
			if _, ok := stack[len(stack)-4].(*ast.DeferStmt); ok {
				g.ChainedDeferred = true
			}
		}

	case "String":
		// String does not consume the guard, but a chained String on a
		// temporary loses it just like any other accessor.
		g.Discarded = true

	default:
		// Value/Ptr/Set chained on the temporary: the guard itself is gone
		// after the expression.
		g.Discarded = true
	}
}

// usesObject reports whether ident resolves to obj.
func usesObject(pass *analysis.Pass, ident *ast.Ident, obj types.Object) bool {
	if obj == nil {
		return false
	}

	return pass.TypesInfo.Uses[ident] == obj || pass.TypesInfo.Defs[ident] == obj
}

// guardMethodCall unpacks a call of the form <ident>.<method>(...), returning
// the receiver ident and method name.
func guardMethodCall(call *ast.CallExpr) (*ast.Ident, string, bool) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return nil, "", false
	}

	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return nil, "", false
	}

	return ident, sel.Sel.Name, true
}
