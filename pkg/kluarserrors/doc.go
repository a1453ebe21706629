// Package kluarserrors provides the error taxonomy shared by the kluars
// pipeline.
//
// Each sentinel names one class of failure. Packages wrap these with
// additional context, and callers classify failures with [errors.Is]. Only
// [ErrUnresolvedType] is recoverable during an apply run; everything else
// aborts the run.
package kluarserrors
