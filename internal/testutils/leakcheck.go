// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package testutils

import (
	"testing"

	"go.uber.org/goleak"
)

// VerifyGoLeaks verifies that the tests in the package do not leak any
// goroutines. It should be called from TestMain.
func VerifyGoLeaks(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// VerifyGoLeaksOnce verifies at the end of an individual test that it did not
// leak goroutines. Prefer VerifyGoLeaks in TestMain when possible.
func VerifyGoLeaksOnce(t *testing.T) {
	t.Cleanup(func() {
		goleak.VerifyNone(t)
	})
}
