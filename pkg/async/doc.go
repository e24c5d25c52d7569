// Package async provides a small Future implementation built on generics.
//
// A Future represents the result of work running in its own goroutine. Callers
// start the work with Async and collect the result with Await:
//
//	future := async.Async(ctx, userID, fetchUser)
//
//	// Do other work...
//
//	user, err := future.Await()
//
// AwaitWithTimeout bounds the wait and returns ErrTimeout when it expires.
// IsComplete checks the state without blocking.
//
// WaitAll collects the results of several futures and fails on the first error
// in argument order. WaitAny returns the first future to complete.
//
// Exec, ExecAll and ExecAny are the error-only counterparts used for work that
// produces no value, such as dependency health checks.
//
// If the context is already cancelled when a future is started, the function is
// not invoked and the future resolves with the context's error.
package async
