// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package safeexpvar

import (
	"expvar"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usvtext/usvtext/internal/testutils"
)

func TestSetExpvarInt(t *testing.T) {
	// Test with a new variable
	name := "metrics-test-1"
	value := int64(42)

	SetExpvarInt(name, value)

	// Retrieve the variable and check its value
	v := expvar.Get(name)
	assert.NotNil(t, v, "expected variable %s to be created", name)
	expInt, ok := v.(*expvar.Int)
	assert.True(t, ok, "expected variable %s to be of type *expvar.Int", name)
	assert.Equal(t, value, expInt.Value(), "expected variable %s value to be %d", name, value)
}

func TestSetExpvarIntExisting(t *testing.T) {
	name := "metrics-test-2"

	SetExpvarInt(name, 1)
	SetExpvarInt(name, 2)

	expInt, ok := expvar.Get(name).(*expvar.Int)
	assert.True(t, ok)
	assert.Equal(t, int64(2), expInt.Value())
}

func TestMain(m *testing.M) {
	testutils.VerifyGoLeaks(m)
}
