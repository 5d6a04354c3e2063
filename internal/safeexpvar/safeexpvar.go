// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

// Package safeexpvar provides a way to interact with expvar variables
// without causing panics when a variable is already published.
package safeexpvar

import (
	"expvar"
)

// SetExpvarInt sets the value of an expvar.Int variable with the given name,
// creating it first if it is not already published.
func SetExpvarInt(name string, value int64) {
	v := expvar.Get(name)
	if v == nil {
		v = expvar.NewInt(name)
	}
	if i, ok := v.(*expvar.Int); ok {
		i.Set(value)
	}
}
