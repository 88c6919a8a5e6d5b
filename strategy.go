package scopeguard

// Strategy selects the exits on which a guard's cleanup runs.
//
// [Always] needs no knowledge of how the scope is exiting. The conditional
// strategies, [SuccessOnly] and [PanicOnly], distinguish normal completion
// from unwinding by calling recover inside [Guard.Exit] and immediately
// re-raising the recovered value. recover only observes a panic when called
// directly from the deferred function, which imposes a call-site rule on
// conditional guards:
//
//	defer g.Exit()            // correct
//	defer func() { g.Exit() }() // wrong: the closure hides the panic
//
// Two consequences of the recover/re-panic scheme, both inherited from the
// runtime rather than chosen here:
//
//   - The panic value is preserved across Exit, but the runtime records the
//     re-raise, so stack traces show an extra frame per conditional guard
//     the panic unwound through.
//   - runtime.Goexit runs deferred calls with no panic in flight, so a
//     goroutine exiting that way counts as a normal completion: SuccessOnly
//     guards fire, PanicOnly guards do not.
type Strategy uint8

const (
	// Always runs the cleanup on every exit path. This is the default
	// strategy and the one [New] uses.
	Always Strategy = iota

	// SuccessOnly runs the cleanup only when the scope completes without a
	// panic unwinding through it.
	SuccessOnly

	// PanicOnly runs the cleanup only while a panic is unwinding through
	// the scope.
	PanicOnly
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case Always:
		return "Always"
	case SuccessOnly:
		return "SuccessOnly"
	case PanicOnly:
		return "PanicOnly"
	default:
		return "Strategy(invalid)"
	}
}
