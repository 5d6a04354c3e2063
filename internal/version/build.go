// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"

	"github.com/usvtext/usvtext/internal/metrics"
)

var (
	// commitSHA is the source revision that generated this build. It is
	// expected to be set during build via -ldflags.
	commitSHA string
	// latestVersion is the version tag that generated this build. It is
	// expected to be set during build via -ldflags.
	latestVersion string
	// date is the build date in ISO8601 format, the output of
	// $(date -u +'%Y-%m-%dT%H:%M:%SZ'). It is expected to be set during
	// build via -ldflags.
	date string
)

// Info holds build information.
type Info struct {
	GitCommit  string `json:"gitCommit"`
	GitVersion string `json:"gitVersion"`
	BuildDate  string `json:"buildDate"`
}

// InfoMetrics hold metrics about build information.
type InfoMetrics struct {
	BuildInfo metrics.Gauge `metric:"build_info"`
}

// Get creates an initialized Info object.
func Get() Info {
	return Info{
		GitCommit:  commitSHA,
		GitVersion: latestVersion,
		BuildDate:  date,
	}
}

// NewInfoMetrics returns a InfoMetrics.
func NewInfoMetrics(metricsFactory metrics.Factory) *InfoMetrics {
	var info InfoMetrics

	buildTags := map[string]string{
		"revision":   commitSHA,
		"version":    latestVersion,
		"build_date": date,
	}
	metrics.MustInit(&info, metricsFactory, buildTags)
	info.BuildInfo.Update(1)

	return &info
}

func (i Info) String() string {
	return fmt.Sprintf(
		"git-commit=%s, git-version=%s, build-date=%s",
		i.GitCommit, i.GitVersion, i.BuildDate,
	)
}
