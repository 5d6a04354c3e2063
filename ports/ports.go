// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package ports

import (
	"strconv"
)

const (
	// ScannerHTTP is the default port for the scan API (/api/* endpoints).
	ScannerHTTP = 16160
	// ScannerAdminHTTP is the default admin HTTP port (health check,
	// metrics, version).
	ScannerAdminHTTP = 16161
)

// PortToHostPort converts the port into a host:port address string.
func PortToHostPort(port int) string {
	return ":" + strconv.Itoa(port)
}
