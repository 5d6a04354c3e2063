// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

// Package healthcheck provides the health status of the service over HTTP.
package healthcheck

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Status represents the state of the service.
type Status int

const (
	// Unavailable indicates the service is not able to handle requests.
	Unavailable Status = iota
	// Ready indicates the service is ready to handle requests.
	Ready
	// Broken indicates that the service is not expected to recover.
	Broken
)

func (s Status) String() string {
	switch s {
	case Unavailable:
		return "unavailable"
	case Ready:
		return "ready"
	case Broken:
		return "broken"
	default:
		return "unknown"
	}
}

type healthCheckResponse struct {
	statusCode int
	StatusMsg  string    `json:"status"`
	UpSince    time.Time `json:"upSince,omitempty"`
	Uptime     string    `json:"uptime,omitempty"`
}

type state struct {
	status  Status
	upSince time.Time
}

// HealthCheck provides an HTTP handler that returns the health status of
// the service.
type HealthCheck struct {
	state     atomic.Value // stores state
	logger    *zap.Logger
	responses map[Status]healthCheckResponse
}

// New creates a HealthCheck. The initial status is Unavailable.
func New() *HealthCheck {
	hc := &HealthCheck{
		logger: zap.NewNop(),
		responses: map[Status]healthCheckResponse{
			Unavailable: {
				statusCode: http.StatusServiceUnavailable,
				StatusMsg:  "Server not available",
			},
			Ready: {
				statusCode: http.StatusOK,
				StatusMsg:  "Server available",
			},
			Broken: {
				statusCode: http.StatusInternalServerError,
				StatusMsg:  "Server failed",
			},
		},
	}
	hc.state.Store(state{status: Unavailable})
	return hc
}

// SetLogger initializes a logger.
func (hc *HealthCheck) SetLogger(logger *zap.Logger) {
	hc.logger = logger
}

// Handler creates a new HTTP handler, returning the current status.
func (hc *HealthCheck) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		state := hc.getState()
		template := hc.responses[state.status]
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(template.statusCode)
		w.Write(hc.createRespBody(state, template))
	})
}

func (hc *HealthCheck) createRespBody(state state, template healthCheckResponse) []byte {
	resp := template
	if state.status == Ready {
		resp.UpSince = state.upSince
		resp.Uptime = fmt.Sprintf("%v", time.Since(state.upSince))
	}
	body, _ := json.Marshal(resp)
	return body
}

func (hc *HealthCheck) getState() state {
	return hc.state.Load().(state)
}

// Set a new health check status.
func (hc *HealthCheck) Set(status Status) {
	oldState := hc.getState()
	newState := state{status: status}
	if status == Ready {
		if oldState.status != Ready {
			newState.upSince = time.Now()
		} else {
			newState.upSince = oldState.upSince
		}
	}
	hc.state.Store(newState)
	hc.logger.Info("Health Check state change", zap.Stringer("status", status))
}

// Get the current status of this health check.
func (hc *HealthCheck) Get() Status {
	return hc.getState().status
}

// Ready is a shortcut for Set(Ready).
func (hc *HealthCheck) Ready() {
	hc.Set(Ready)
}
