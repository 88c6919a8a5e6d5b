package checkers

import (
	"go/ast"
	"go/types"
	"maps"

	"golang.org/x/tools/go/analysis"

	"github.com/mpyw/scopeguard/internal/directives/ignore"
)

// Release reports straight-line use of a guard after Release has consumed
// it. Release returns ownership of the value and permanently disarms the
// guard; every later accessor call on it panics at runtime, so touching the
// variable again on the same path is always a bug.
//
// Two method calls are exempt:
//
//   - Exit, which is idempotent by contract: "defer g.Exit()" followed by a
//     Release is the documented defuse pattern.
//   - String, which is documented to be safe in every state.
//
// The tracking is per straight line: a Release inside a branch does not mark
// the guard for the code following the branch, since the other path may
// still own it. Uses inside a branch after an unconditional Release are
// still caught, because released state flows into nested blocks.
type Release struct{}

// Name returns the checker name for ignore directive matching.
func (*Release) Name() ignore.CheckerName {
	return ignore.Release
}

// Check examines the bodies of all functions that construct guards.
func (c *Release) Check(cctx *Context, guards []*Guard) {
	objs := make(map[types.Object]bool)
	seen := make(map[*ast.BlockStmt]bool)

	var bodies []*ast.BlockStmt

	for _, g := range guards {
		if g.Obj != nil {
			objs[g.Obj] = true
		}
		if g.Body != nil && !seen[g.Body] {
			seen[g.Body] = true
			bodies = append(bodies, g.Body)
		}
	}

	if len(objs) == 0 {
		return
	}

	for _, body := range bodies {
		c.walkStmts(cctx, body.List, objs, make(map[types.Object]bool))
	}
}

// walkStmts processes a statement list in order, reporting uses of released
// guards and recording releases as it goes.
func (c *Release) walkStmts(cctx *Context, stmts []ast.Stmt, objs, released map[types.Object]bool) {
	for _, stmt := range stmts {
		if lbl, ok := stmt.(*ast.LabeledStmt); ok {
			stmt = lbl.Stmt
		}

		c.checkUses(cctx, stmt, released)

		// A release inside a branch is conditional: nested blocks get a
		// copy of the released set so they cannot poison this line.
		for _, nested := range nestedStmtLists(stmt) {
			c.walkStmts(cctx, nested, objs, maps.Clone(released))
		}

		for _, obj := range directReleases(cctx.Pass, stmt, objs) {
			released[obj] = true
		}
	}
}

// checkUses reports accessor calls on released guards within the statement,
// without descending into nested blocks or function literals (those are
// handled by walkStmts recursion and out of straight-line scope,
// respectively).
func (c *Release) checkUses(cctx *Context, stmt ast.Stmt, released map[types.Object]bool) {
	if len(released) == 0 {
		return
	}

	ast.Inspect(stmt, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.BlockStmt, *ast.FuncLit, *ast.CaseClause, *ast.CommClause:
			return false
		case *ast.IfStmt:
			// An else-if chained off the root statement; the recursion
			// visits it as its own statement.
			if n != ast.Node(stmt) {
				return false
			}
		}

		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		ident, method, ok := guardMethodCall(call)
		if !ok {
			return true
		}
		obj := cctx.Pass.TypesInfo.Uses[ident]
		if obj == nil || !released[obj] {
			return true
		}

		switch method {
		case "Value", "Ptr", "Set", "Release":
			cctx.Reportf(ignore.Release, call.Pos(), "guard %q used after Release", ident.Name)
		}

		return true
	})
}

// directReleases returns the guard objects unconditionally released by the
// statement itself. Releases under nested blocks, function literals, or
// defers do not count: the former are conditional, the latter run at scope
// exit.
func directReleases(pass *analysis.Pass, stmt ast.Stmt, objs map[types.Object]bool) []types.Object {
	var out []types.Object

	ast.Inspect(stmt, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.BlockStmt, *ast.FuncLit, *ast.CaseClause, *ast.CommClause, *ast.DeferStmt:
			return false
		case *ast.IfStmt:
			// An else-if condition only runs when the first one fails;
			// releases there are conditional.
			if n != ast.Node(stmt) {
				return false
			}
		}

		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		ident, method, ok := guardMethodCall(call)
		if !ok || method != "Release" {
			return true
		}
		if obj := pass.TypesInfo.Uses[ident]; obj != nil && objs[obj] {
			out = append(out, obj)
		}

		return true
	})

	return out
}

// nestedStmtLists returns the statement lists directly nested in stmt.
func nestedStmtLists(stmt ast.Stmt) [][]ast.Stmt {
	var lists [][]ast.Stmt

	switch s := stmt.(type) {
	case *ast.BlockStmt:
		lists = append(lists, s.List)

	case *ast.IfStmt:
		lists = append(lists, s.Body.List)
		switch e := s.Else.(type) {
		case *ast.BlockStmt:
			lists = append(lists, e.List)
		case *ast.IfStmt:
			// else-if: process it as a single-statement list.
			lists = append(lists, []ast.Stmt{e})
		}

	case *ast.ForStmt:
		lists = append(lists, s.Body.List)

	case *ast.RangeStmt:
		lists = append(lists, s.Body.List)

	case *ast.SwitchStmt:
		lists = append(lists, caseBodies(s.Body)...)

	case *ast.TypeSwitchStmt:
		lists = append(lists, caseBodies(s.Body)...)

	case *ast.SelectStmt:
		for _, clause := range s.Body.List {
			if comm, ok := clause.(*ast.CommClause); ok {
				lists = append(lists, comm.Body)
			}
		}
	}

	return lists
}

func caseBodies(body *ast.BlockStmt) [][]ast.Stmt {
	var lists [][]ast.Stmt

	for _, clause := range body.List {
		if c, ok := clause.(*ast.CaseClause); ok {
			lists = append(lists, c.Body)
		}
	}

	return lists
}
