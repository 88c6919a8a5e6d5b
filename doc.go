// Package scopeguard provides a generic scope-exit guard: a value paired with
// a cleanup function that is guaranteed to run exactly once when control
// leaves the enclosing function, whether by normal return, early return, or a
// propagating panic.
//
// # Basic usage
//
// Construct a guard with [New] and defer its [Guard.Exit] immediately:
//
//	f, err := os.CreateTemp(dir, "upload-*")
//	if err != nil {
//		return err
//	}
//	g := scopeguard.New(f, func(f *os.File) {
//		f.Close()
//		os.Remove(f.Name())
//	})
//	defer g.Exit()
//
// The cleanup receives the guarded value as it stands at exit time; mutations
// made through [Guard.Ptr] or [Guard.Set] are visible to it. Guards deferred
// in the same function fire in reverse construction order, following Go's
// LIFO defer semantics.
//
// When the guarded operation succeeds and ownership of the value moves
// elsewhere, call [Guard.Release] to defuse the guard and take the value
// back; the deferred Exit then does nothing:
//
//	g := scopeguard.New(conn, func(c net.Conn) { c.Close() })
//	defer g.Exit()
//	if err := handshake(g.Value()); err != nil {
//		return nil, err // Exit closes conn
//	}
//	return pool.Adopt(g.Release()), nil // conn survives
//
// For the common "run this on exit, no value involved" case, [Defer] wraps a
// zero-argument function:
//
//	defer scopeguard.Defer(mu.Unlock).Exit()
//
// # Conditional guards
//
// [OnSuccess] and [OnPanic] construct guards whose cleanup runs only on one
// kind of exit: OnSuccess fires only when the function completes without
// panicking, OnPanic only while a panic is unwinding through it. Exit detects
// unwinding with recover and re-raises the original panic value, so for
// conditional guards Exit must be the deferred call itself:
//
//	g := scopeguard.OnPanic(tx, func(tx *sql.Tx) { tx.Rollback() })
//	defer g.Exit() // NOT: defer func() { g.Exit() }()
//
// A wrapping closure would become the deferred function and hide the panic
// from Exit's recover, silently turning every exit into a "success". The
// scopeguard analyzer (see below) reports that mistake.
//
// # Misuse
//
// Accessing a guard after its cleanup has run, or after Release, panics with
// a scopeguard-prefixed message: the guard is consumed and no longer owns the
// value. Exit itself is idempotent and never panics for state reasons. If the
// cleanup function panics while another panic is already unwinding, Go's
// usual rule applies: the new panic supersedes the one in flight. That
// behavior is inherited from the runtime, not altered here.
//
// A Guard is not safe for concurrent use. If the guarded value is shared
// across goroutines, synchronizing access to it is the caller's concern.
//
// # Static analysis
//
// The companion analyzer in package check (binary: cmd/scopeguardcheck)
// verifies call-site discipline: every constructed guard is exited or
// released, no guard is used after Release, and conditional guards defer
// Exit directly.
package scopeguard
