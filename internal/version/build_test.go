// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usvtext/usvtext/internal/metricstest"
)

func TestNewInfoMetrics(t *testing.T) {
	factory := metricstest.NewFactory(0)
	defer factory.Stop()

	origCommitSHA := commitSHA
	origLatestVersion := latestVersion
	origDate := date
	defer func() {
		commitSHA = origCommitSHA
		latestVersion = origLatestVersion
		date = origDate
	}()

	commitSHA = "foobar"
	latestVersion = "v1.2.3"
	date = "2026-02-18"

	info := NewInfoMetrics(factory)

	require.NotNil(t, info)
	assert.NotNil(t, info.BuildInfo)

	_, gauges := factory.Snapshot()

	expectedKey := "build_info|build_date=2026-02-18|revision=foobar|version=v1.2.3"

	val, ok := gauges[expectedKey]
	assert.True(t, ok, "Metric not found in snapshot. Found keys: %v", gauges)
	assert.Equal(t, int64(1), val, "The build_info gauge should be set to 1")
}

func TestGet(t *testing.T) {
	commitSHA = "foobar"
	latestVersion = "v1.2.3"
	date = "2024-01-04"

	info := Get()

	assert.Equal(t, commitSHA, info.GitCommit)
	assert.Equal(t, latestVersion, info.GitVersion)
	assert.Equal(t, date, info.BuildDate)
}

func TestString(t *testing.T) {
	test := Info{
		GitCommit:  "foobar",
		GitVersion: "v1.2.3",
		BuildDate:  "2024-01-04",
	}
	expectedOutput := "git-commit=foobar, git-version=v1.2.3, build-date=2024-01-04"
	assert.Equal(t, expectedOutput, test.String())
}
