// Package exit - advanced fixtures: guards that escape the constructing
// function. The checker assumes whoever receives the guard handles it.
package exit

import (
	"fmt"

	"github.com/mpyw/scopeguard"
)

type holder struct {
	g *scopeguard.Guard[int]
}

// ===== SHOULD NOT REPORT (escapes) =====

// [GOOD]: returned to the caller
func goodReturned() *scopeguard.Guard[int] {
	return scopeguard.New(1, func(int) {})
}

// [GOOD]: returned via a variable
func goodReturnedVariable() *scopeguard.Guard[int] {
	g := scopeguard.New(1, func(int) {})
	g.Set(2)
	return g
}

// [GOOD]: passed to another function
func goodPassedAlong() {
	consume(scopeguard.New(1, func(int) {}))
}

// [GOOD]: passed via a variable
func goodPassedVariable() {
	g := scopeguard.New(1, func(int) {})
	consume(g)
}

// [GOOD]: stored in a struct field
func goodStoredInField(h *holder) {
	h.g = scopeguard.New(1, func(int) {})
}

// [GOOD]: stored via composite literal
func goodCompositeLiteral() *holder {
	return &holder{g: scopeguard.New(1, func(int) {})}
}

// [GOOD]: stored in a map
func goodStoredInMap(m map[string]*scopeguard.Guard[int]) {
	m["a"] = scopeguard.New(1, func(int) {})
}

// [GOOD]: appended to a slice
func goodAppended(gs []*scopeguard.Guard[int]) []*scopeguard.Guard[int] {
	g := scopeguard.New(1, func(int) {})
	return append(gs, g)
}

// [GOOD]: exited inside a closure
//
// The exit checker accepts an Exit anywhere in the constructing function,
// including nested function literals.
func goodExitedInClosure() func() {
	g := scopeguard.New(1, func(int) {})
	return func() { g.Exit() }
}

// [GOOD]: sent over a channel
func goodSentOverChannel(ch chan<- *scopeguard.Guard[int]) {
	g := scopeguard.New(1, func(int) {})
	ch <- g
}

// [GOOD]: reassigned variable
//
// Reassignment is an untraced use; the checker gives up rather than guess.
func goodReassigned(other *scopeguard.Guard[int]) {
	g := scopeguard.New(1, func(int) {})
	g = other
	defer g.Exit()
}

func consume(g *scopeguard.Guard[int]) {
	defer g.Exit()
	fmt.Println(g.Value())
}
