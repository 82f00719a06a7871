// Package testingx provides testing helpers and fakes for nest-combo packages.
//
// # Overview
//
// testingx contains small utilities to speed up unit tests: a mock logger
// with capture and assertions, and a recording generator invoker that
// stands in for the nest CLI.
//
// # Usage
//
//	logger := testingx.NewMockLogger(t)
//	inv := testingx.NewRecordingInvoker()
//	inv.FailOn("core/user", errors.New("boom"))
//
// # Layer
//
// testingx is used by tests only.
package testingx
