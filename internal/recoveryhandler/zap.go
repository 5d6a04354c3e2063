// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

// Package recoveryhandler adapts a zap logger to the gorilla panic
// recovery middleware.
package recoveryhandler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"
)

// zapRecoveryWrapper wraps a zap logger into a gorilla RecoveryLogger.
type zapRecoveryWrapper struct {
	logger *zap.Logger
}

// Println logs an error message with the given fields.
func (z zapRecoveryWrapper) Println(fields ...any) {
	z.logger.Error(fmt.Sprint(fields...))
}

// NewRecoveryHandler returns an http.Handler that recovers on panics.
func NewRecoveryHandler(logger *zap.Logger, printStack bool) func(h http.Handler) http.Handler {
	zWrapper := zapRecoveryWrapper{logger}
	return handlers.RecoveryHandler(handlers.RecoveryLogger(zWrapper), handlers.PrintRecoveryStack(printStack))
}
