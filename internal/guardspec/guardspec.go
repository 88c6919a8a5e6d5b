// Package guardspec identifies guard-constructing functions.
package guardspec

import (
	"go/ast"
	"go/types"
	"strings"
	"unicode"

	"golang.org/x/tools/go/analysis"
)

// GuardPkgPath is the import path of the scopeguard runtime library whose
// constructors are recognized out of the box.
const GuardPkgPath = "github.com/mpyw/scopeguard"

// Kind classifies a factory by the strategy of the guards it returns.
type Kind int

const (
	// KindAlways marks factories returning guards that fire on every exit.
	KindAlways Kind = iota

	// KindConditional marks factories returning guards whose Exit observes
	// panics through recover and therefore must be the deferred call itself.
	KindConditional
)

// builtin maps the scopeguard constructors to their kind. WithStrategy is
// conditional here; Set.Classify downgrades it to KindAlways when the
// strategy argument is literally scopeguard.Always.
var builtin = map[string]Kind{
	"New":            KindAlways,
	"Defer":          KindAlways,
	"WithStrategy":   KindConditional,
	"OnSuccess":      KindConditional,
	"OnPanic":        KindConditional,
	"DeferOnSuccess": KindConditional,
	"DeferOnPanic":   KindConditional,
}

// Spec holds parsed components of a factory specification.
// Format: "pkg/path.Func" or "pkg/path.Type.Method".
type Spec struct {
	PkgPath  string
	TypeName string // empty for package-level functions
	FuncName string
}

// Parse parses a single factory specification string into components.
// Format: "pkg/path.Func" or "pkg/path.Type.Method".
func Parse(s string) Spec {
	spec := Spec{}

	lastDot := strings.LastIndex(s, ".")
	if lastDot == -1 {
		spec.FuncName = s

		return spec
	}

	spec.FuncName = s[lastDot+1:]
	prefix := s[:lastDot]

	// A second dot may separate a type name from the package path.
	// Type names start with uppercase in Go.
	secondLastDot := strings.LastIndex(prefix, ".")
	if secondLastDot != -1 {
		possibleType := prefix[secondLastDot+1:]
		if len(possibleType) > 0 && unicode.IsUpper(rune(possibleType[0])) {
			spec.TypeName = possibleType
			spec.PkgPath = prefix[:secondLastDot]

			return spec
		}
	}

	spec.PkgPath = prefix

	return spec
}

// ParseList parses a comma-separated list of factory specifications.
func ParseList(s string) []Spec {
	if s == "" {
		return nil
	}

	var specs []Spec

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		specs = append(specs, Parse(part))
	}

	return specs
}

// Matches checks if a types.Func matches this specification.
func (s Spec) Matches(fn *types.Func) bool {
	if fn.Name() != s.FuncName {
		return false
	}

	pkg := fn.Pkg()
	if pkg == nil || pkg.Path() != s.PkgPath {
		return false
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return false
	}
	recv := sig.Recv()

	if s.TypeName == "" {
		// Package-level function: should have no receiver.
		return recv == nil
	}

	if recv == nil {
		return false
	}

	recvType := recv.Type()
	if ptr, ok := recvType.(*types.Pointer); ok {
		recvType = ptr.Elem()
	}

	named, ok := recvType.(*types.Named)
	if !ok {
		return false
	}

	return named.Obj().Name() == s.TypeName
}

// ExtractFunc extracts the types.Func from a call expression.
// Returns nil if the callee cannot be determined statically.
func ExtractFunc(pass *analysis.Pass, call *ast.CallExpr) *types.Func {
	switch fun := call.Fun.(type) {
	case *ast.Ident:
		if f, ok := pass.TypesInfo.ObjectOf(fun).(*types.Func); ok {
			return f
		}

	case *ast.SelectorExpr:
		if sel := pass.TypesInfo.Selections[fun]; sel != nil {
			if f, ok := sel.Obj().(*types.Func); ok {
				return f
			}
		} else if f, ok := pass.TypesInfo.ObjectOf(fun.Sel).(*types.Func); ok {
			return f
		}

	case *ast.IndexExpr:
		// Explicit instantiation: pkg.New[int](...)
		if sel, ok := fun.X.(*ast.SelectorExpr); ok {
			if f, ok := pass.TypesInfo.ObjectOf(sel.Sel).(*types.Func); ok {
				return f
			}
		}
		if id, ok := fun.X.(*ast.Ident); ok {
			if f, ok := pass.TypesInfo.ObjectOf(id).(*types.Func); ok {
				return f
			}
		}
	}

	return nil
}

// FullName formats fn as "pkg.Func" or "pkg.Type.Method" for diagnostics.
func FullName(fn *types.Func) string {
	name := fn.Name()

	if sig, ok := fn.Type().(*types.Signature); ok && sig.Recv() != nil {
		recvType := sig.Recv().Type()
		if ptr, ok := recvType.(*types.Pointer); ok {
			recvType = ptr.Elem()
		}
		if named, ok := recvType.(*types.Named); ok {
			name = named.Obj().Name() + "." + name
		}
	}

	if pkg := fn.Pkg(); pkg != nil {
		return pkg.Name() + "." + name
	}

	return name
}

// Set resolves calls to guard factories: the scopeguard constructors plus
// any extra factories configured through the -guard-factory flag.
type Set struct {
	extra []Spec
}

// NewSet builds a Set from the -guard-factory flag value.
func NewSet(extraFactories string) *Set {
	return &Set{extra: ParseList(extraFactories)}
}

// Classify reports whether call constructs a guard, returning the factory
// function and the kind of guard it produces.
func (s *Set) Classify(pass *analysis.Pass, call *ast.CallExpr) (*types.Func, Kind, bool) {
	fn := ExtractFunc(pass, call)
	if fn == nil {
		return nil, 0, false
	}

	if pkg := fn.Pkg(); pkg != nil && pkg.Path() == GuardPkgPath {
		if sig, ok := fn.Type().(*types.Signature); ok && sig.Recv() == nil {
			if kind, ok := builtin[fn.Name()]; ok {
				if fn.Name() == "WithStrategy" && strategyArgIsAlways(pass, call) {
					kind = KindAlways
				}

				return fn, kind, true
			}
		}
	}

	for _, spec := range s.extra {
		if spec.Matches(fn) {
			// External factories wrap the always-fire constructors; flag
			// syntax has no way to declare a conditional one.
			return fn, KindAlways, true
		}
	}

	return nil, 0, false
}

// strategyArgIsAlways reports whether the third argument of a WithStrategy
// call is literally the scopeguard.Always constant.
func strategyArgIsAlways(pass *analysis.Pass, call *ast.CallExpr) bool {
	if len(call.Args) != 3 {
		return false
	}

	var ident *ast.Ident

	switch arg := call.Args[2].(type) {
	case *ast.SelectorExpr:
		ident = arg.Sel
	case *ast.Ident:
		ident = arg
	default:
		return false
	}

	obj, ok := pass.TypesInfo.ObjectOf(ident).(*types.Const)
	if !ok || obj.Name() != "Always" {
		return false
	}

	pkg := obj.Pkg()

	return pkg != nil && pkg.Path() == GuardPkgPath
}
