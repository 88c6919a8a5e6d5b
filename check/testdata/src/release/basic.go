// Package release contains test fixtures for the release checker.
// Release consumes the guard; any later accessor call on the same straight
// line is a guaranteed runtime panic.
package release

import (
	"fmt"

	"github.com/mpyw/scopeguard"
)

// ===== SHOULD REPORT =====

// [BAD]: Value after Release
func badValueAfterRelease() {
	g := scopeguard.New(1, func(int) {})
	defer g.Exit()
	v := g.Release()
	fmt.Println(v)
	fmt.Println(g.Value()) // want `guard "g" used after Release`
}

// [BAD]: Set after Release
func badSetAfterRelease() {
	g := scopeguard.New(1, func(int) {})
	defer g.Exit()
	_ = g.Release()
	g.Set(2) // want `guard "g" used after Release`
}

// [BAD]: Ptr after Release
func badPtrAfterRelease() {
	g := scopeguard.New(1, func(int) {})
	defer g.Exit()
	_ = g.Release()
	_ = g.Ptr() // want `guard "g" used after Release`
}

// [BAD]: double Release
func badDoubleRelease() {
	g := scopeguard.New(1, func(int) {})
	defer g.Exit()
	_ = g.Release()
	_ = g.Release() // want `guard "g" used after Release`
}

// [BAD]: use inside a branch after an unconditional Release
//
// Released state flows into nested blocks.
func badUseInBranchAfterRelease(cond bool) {
	g := scopeguard.New(1, func(int) {})
	defer g.Exit()
	_ = g.Release()
	if cond {
		g.Set(2) // want `guard "g" used after Release`
	}
}

// [BAD]: use in a loop after Release
func badUseInLoopAfterRelease(n int) {
	g := scopeguard.New(1, func(int) {})
	defer g.Exit()
	_ = g.Release()
	for i := 0; i < n; i++ {
		_ = g.Value() // want `guard "g" used after Release`
	}
}

// [BAD]: release discarded, then used
//
// Dropping the released value is legal (if wasteful); the use afterwards is
// still a panic.
func badReleaseInExpressionStatement() {
	g := scopeguard.New(1, func(int) {})
	defer g.Exit()
	g.Release()
	_ = g.Value() // want `guard "g" used after Release`
}

// ===== SHOULD NOT REPORT =====

// [GOOD]: the canonical defuse pattern
//
// Exit is idempotent, so the deferred Exit after a Release is a no-op by
// contract, not a misuse.
func goodDeferredExitAfterRelease() int {
	g := scopeguard.New(1, func(int) {})
	defer g.Exit()
	g.Set(2)
	return g.Release()
}

// [GOOD]: String is safe in every state
func goodStringAfterRelease() {
	g := scopeguard.New(1, func(int) {})
	defer g.Exit()
	_ = g.Release()
	fmt.Println(g.String())
}

// [GOOD]: accessors before the Release
func goodAccessBeforeRelease() int {
	g := scopeguard.New(1, func(int) {})
	defer g.Exit()
	g.Set(g.Value() + 1)
	return g.Release()
}

// [GOOD]: conditional Release does not poison the main line
//
// The other path may still own the guard, so uses after the branch are not
// reported.
func goodConditionalRelease(cond bool) {
	g := scopeguard.New(1, func(int) {})
	defer g.Exit()
	if cond {
		_ = g.Release()
		return
	}
	g.Set(2)
}

// [GOOD]: releases on both switch arms stay local to their arm
func goodReleasePerArm(which int) int {
	g := scopeguard.New(1, func(int) {})
	defer g.Exit()
	switch which {
	case 0:
		return g.Release()
	default:
		return g.Release() + 1
	}
}

// [GOOD]: suppressed with an ignore directive
func goodIgnoredUseAfterRelease() {
	g := scopeguard.New(1, func(int) {})
	defer g.Exit()
	_ = g.Release()
	//scopeguard:ignore release - fixture exercises the runtime panic
	_ = g.Value()
}
