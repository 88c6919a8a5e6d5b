package scopeguard

// Defer returns an [Always] guard over no value whose cleanup runs fn. It
// covers the common "run this code on scope exit" case where there is
// nothing to guard:
//
//	defer scopeguard.Defer(func() { log.Println("done") }).Exit()
//
// This is plain sugar over [New] with a placeholder value; Release works on
// the result like on any other guard.
func Defer(fn func()) *Guard[struct{}] {
	return New(struct{}{}, func(struct{}) { fn() })
}

// DeferOnSuccess is [Defer] with the [SuccessOnly] strategy. The conditional
// deferral rule applies: the returned guard's Exit must be the deferred call
// itself, as in the example above.
func DeferOnSuccess(fn func()) *Guard[struct{}] {
	return OnSuccess(struct{}{}, func(struct{}) { fn() })
}

// DeferOnPanic is [Defer] with the [PanicOnly] strategy. The conditional
// deferral rule applies.
func DeferOnPanic(fn func()) *Guard[struct{}] {
	return OnPanic(struct{}{}, func(struct{}) { fn() })
}
