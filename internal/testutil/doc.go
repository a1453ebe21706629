// Package testutil holds helpers shared by tests that read back rendered
// manifest streams.
package testutil
