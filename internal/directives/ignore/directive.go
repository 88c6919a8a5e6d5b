// Package ignore handles //scopeguard:ignore directives.
package ignore

import (
	"go/ast"
	"go/token"
	"strings"
)

// CheckerName represents a checker that can be ignored.
type CheckerName string

// Valid checker names.
const (
	Exit     CheckerName = "exit"
	Release  CheckerName = "release"
	Deferral CheckerName = "deferral"
)

// AllCheckerNames returns all valid checker names.
func AllCheckerNames() []CheckerName {
	return []CheckerName{Exit, Release, Deferral}
}

// Entry tracks an ignore directive and its usage.
type Entry struct {
	pos      token.Pos            // Position of the ignore comment
	checkers []CheckerName        // List of checker names (empty = all)
	used     map[CheckerName]bool // Track usage per checker
}

// Map tracks ignore entries by line number.
type Map map[int]*Entry

// EnabledCheckers tracks which checkers are currently enabled.
type EnabledCheckers map[CheckerName]bool

// Build scans a file for ignore comments and returns a map.
func Build(fset *token.FileSet, file *ast.File) Map {
	m := make(Map)

	for _, cg := range file.Comments {
		for _, c := range cg.List {
			if checkers, ok := parseIgnoreComment(c.Text); ok {
				line := fset.Position(c.Pos()).Line
				m[line] = &Entry{
					pos:      c.Pos(),
					checkers: checkers,
					used:     make(map[CheckerName]bool),
				}
			}
		}
	}

	return m
}

// parseIgnoreComment parses an ignore directive and returns the checker names.
// Returns a nil slice if no specific checkers are specified (ignore all).
// Returns false if not an ignore comment.
//
// Supported formats:
//   - //scopeguard:ignore                       -> ignore all checkers
//   - //scopeguard:ignore exit                  -> ignore specific checker
//   - //scopeguard:ignore exit,release          -> ignore multiple checkers
//   - //scopeguard:ignore - reason              -> ignore all with comment
//   - //scopeguard:ignore exit - reason         -> ignore specific with comment
func parseIgnoreComment(text string) ([]CheckerName, bool) {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "scopeguard:ignore") {
		return nil, false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(text, "scopeguard:ignore"))
	if rest == "" {
		return nil, true // No specific checkers = ignore all
	}

	// Everything after a comment marker is human-readable explanation:
	// " - ", " //", or a rest that itself starts a // comment.
	if idx := strings.Index(rest, " - "); idx >= 0 {
		rest = rest[:idx]
	}
	if idx := strings.Index(rest, " //"); idx >= 0 {
		rest = rest[:idx]
	}
	if strings.HasPrefix(rest, "- ") || rest == "-" || strings.HasPrefix(rest, "//") {
		return nil, true
	}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, true
	}

	parts := strings.Split(rest, ",")
	checkers := make([]CheckerName, 0, len(parts))

	for _, part := range parts {
		if name := CheckerName(strings.TrimSpace(part)); name != "" {
			checkers = append(checkers, name)
		}
	}

	return checkers, true
}

// ShouldIgnore returns true if the given line should be ignored for the
// specified checker. It checks the same line and the previous line for an
// ignore comment, marking a matching entry as used.
func (m Map) ShouldIgnore(line int, checker CheckerName) bool {
	if m.shouldIgnoreEntry(m[line], checker) {
		return true
	}

	return m.shouldIgnoreEntry(m[line-1], checker)
}

func (m Map) shouldIgnoreEntry(entry *Entry, checker CheckerName) bool {
	if entry == nil {
		return false
	}

	// Empty checkers list means ignore all.
	if len(entry.checkers) == 0 {
		entry.used[checker] = true
		return true
	}

	for _, c := range entry.checkers {
		if c == checker {
			entry.used[checker] = true
			return true
		}
	}

	return false
}

// UnusedIgnore represents an unused ignore directive.
type UnusedIgnore struct {
	Pos      token.Pos
	Checkers []CheckerName // Unused checker names (empty if entire directive is unused)
}

// GetUnusedIgnores returns ignore directives that were not used. It takes the
// enabled checkers to determine which unused specifications are valid to
// report: a directive naming only disabled checkers is reported in full.
func (m Map) GetUnusedIgnores(enabled EnabledCheckers) []UnusedIgnore {
	var unused []UnusedIgnore

	for _, entry := range m {
		if len(entry.checkers) == 0 {
			anyUsed := false
			for checker := range enabled {
				if entry.used[checker] {
					anyUsed = true
					break
				}
			}
			if !anyUsed {
				unused = append(unused, UnusedIgnore{Pos: entry.pos})
			}

			continue
		}

		var unusedCheckers []CheckerName
		for _, checker := range entry.checkers {
			if !enabled[checker] || !entry.used[checker] {
				unusedCheckers = append(unusedCheckers, checker)
			}
		}
		if len(unusedCheckers) > 0 {
			unused = append(unused, UnusedIgnore{
				Pos:      entry.pos,
				Checkers: unusedCheckers,
			})
		}
	}

	return unused
}
