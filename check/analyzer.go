// Package check provides a go/analysis based analyzer for detecting misuse
// of scopeguard guards at their call sites.
package check

import (
	"errors"
	"flag"
	"go/ast"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/mpyw/scopeguard/internal/checkers"
	"github.com/mpyw/scopeguard/internal/directives/ignore"
	"github.com/mpyw/scopeguard/internal/guardspec"
)

// Flags for the analyzer.
var (
	guardFactories string

	// Checker enable/disable flags (all enabled by default).
	enableExit     bool
	enableRelease  bool
	enableDeferral bool
)

func init() {
	Analyzer.Flags.StringVar(&guardFactories, "guard-factory", "",
		"comma-separated list of extra guard-constructing functions (e.g., pkg.Func or pkg.Type.Method)")

	// Checker flags (default: all enabled)
	Analyzer.Flags.BoolVar(&enableExit, "exit", true, "enable exit checker")
	Analyzer.Flags.BoolVar(&enableRelease, "release", true, "enable release checker")
	Analyzer.Flags.BoolVar(&enableDeferral, "deferral", true, "enable deferral checker")
}

// Analyzer is the main analyzer for scopeguard call-site discipline.
var Analyzer = &analysis.Analyzer{
	Name:     "scopeguard",
	Doc:      "checks that scopeguard guards are exited, not used after Release, and deferred directly",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
	Flags:    flag.FlagSet{},
}

var ErrNoInspector = errors.New("inspector analyzer result not found")

func run(pass *analysis.Pass) (any, error) {
	insp, ok := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, ErrNoInspector
	}

	// Build set of files to skip
	skipFiles := buildSkipFiles(pass)

	// Build ignore maps for each file (excluding skipped files)
	ignoreMaps := buildIgnoreMaps(pass, skipFiles)

	// Resolve guard factories: built-in constructors plus the -guard-factory flag
	factories := guardspec.NewSet(guardFactories)

	// Collect every guard-constructing call once; all checkers share the result
	guards := checkers.Collect(pass, insp, factories, skipFiles)

	cctx := &checkers.Context{
		Pass:       pass,
		IgnoreMaps: ignoreMaps,
		SkipFiles:  skipFiles,
	}

	if enableExit {
		(&checkers.Exit{}).Check(cctx, guards)
	}

	if enableRelease {
		(&checkers.Release{}).Check(cctx, guards)
	}

	if enableDeferral {
		(&checkers.Deferral{}).Check(cctx, guards)
	}

	// Report unused ignore directives
	reportUnusedIgnores(pass, ignoreMaps, buildEnabledCheckers())

	return nil, nil
}

// buildSkipFiles creates a set of filenames to skip.
// Generated files are always skipped.
// Test files can be skipped via the driver's built-in -test flag.
func buildSkipFiles(pass *analysis.Pass) map[string]bool {
	skipFiles := make(map[string]bool)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename

		// Always skip generated files
		if ast.IsGenerated(file) {
			skipFiles[filename] = true
		}
	}

	return skipFiles
}

// buildIgnoreMaps creates ignore maps for each file in the pass.
func buildIgnoreMaps(pass *analysis.Pass, skipFiles map[string]bool) map[string]ignore.Map {
	ignoreMaps := make(map[string]ignore.Map)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename
		if skipFiles[filename] {
			continue
		}
		ignoreMaps[filename] = ignore.Build(pass.Fset, file)
	}

	return ignoreMaps
}

// buildEnabledCheckers creates a map of which checkers are enabled.
func buildEnabledCheckers() ignore.EnabledCheckers {
	enabled := make(ignore.EnabledCheckers)

	if enableExit {
		enabled[ignore.Exit] = true
	}

	if enableRelease {
		enabled[ignore.Release] = true
	}

	if enableDeferral {
		enabled[ignore.Deferral] = true
	}

	return enabled
}

// reportUnusedIgnores reports any ignore directives that were not used.
func reportUnusedIgnores(pass *analysis.Pass, ignoreMaps map[string]ignore.Map, enabled ignore.EnabledCheckers) {
	for _, ignoreMap := range ignoreMaps {
		for _, unused := range ignoreMap.GetUnusedIgnores(enabled) {
			if len(unused.Checkers) == 0 {
				pass.Reportf(unused.Pos, "unused scopeguard:ignore directive")
			} else {
				checkerNames := make([]string, len(unused.Checkers))
				for i, c := range unused.Checkers {
					checkerNames[i] = string(c)
				}
				pass.Reportf(unused.Pos, "unused scopeguard:ignore directive for checker(s): %s", strings.Join(checkerNames, ", "))
			}
		}
	}
}
