// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"flag"
	"time"

	"github.com/spf13/viper"

	"github.com/usvtext/usvtext/internal/flags"
	"github.com/usvtext/usvtext/internal/scanservice"
	"github.com/usvtext/usvtext/ports"
)

const (
	scannerHTTPHostPort = "scanner.http-server.host-port"
	scannerBasePath     = "scanner.base-path"
	scannerCacheSize    = "scanner.cache.size"
	scannerCacheTTL     = "scanner.cache.ttl"
	scannerQueueSize    = "scanner.queue-size"
	scannerNumWorkers   = "scanner.num-workers"
	scannerMaxJobs      = "scanner.jobs.max"
	scannerJobTTL       = "scanner.jobs.ttl"
	scannerTags         = "scanner.tags"

	defaultCacheSize = 1000
)

// ServerOptions holds configuration for the scanner server.
type ServerOptions struct {
	// HTTPHostPort is the host:port address that the scanner service listens on for http requests
	HTTPHostPort string
	// BasePath is the prefix path for all HTTP routes
	BasePath string
	// CacheSize is the maximum number of memoized scan results, zero disables the cache
	CacheSize int
	// CacheTTL is the time to live of memoized scan results
	CacheTTL time.Duration
	// QueueSize is the size of the batch processor's queue
	QueueSize int
	// NumWorkers is the number of workers pulling jobs from the batch queue
	NumWorkers int
	// MaxJobs is the maximum number of finished batch jobs retained for retrieval
	MaxJobs int
	// JobTTL is the time to live of finished batch jobs
	JobTTL time.Duration
	// Tags is the map of tags attached to all metrics reported by this instance
	Tags map[string]string
}

// AddFlags adds flags for ServerOptions.
func AddFlags(flagSet *flag.FlagSet) {
	flagSet.String(scannerHTTPHostPort, ports.PortToHostPort(ports.ScannerHTTP), "The host:port (e.g. 127.0.0.1:16160 or :16160) of the scanner's HTTP server")
	flagSet.String(scannerBasePath, "/", "The base path for all HTTP routes, e.g. /usvtext. Useful when running behind a reverse proxy.")
	flagSet.Int(scannerCacheSize, defaultCacheSize, "The maximum number of scan results memoized by the scanner, 0 disables the cache")
	flagSet.Duration(scannerCacheTTL, 0, "The time to live of memoized scan results, 0 keeps results until they are evicted")
	flagSet.Int(scannerQueueSize, scanservice.DefaultQueueSize, "The queue size of the batch processor")
	flagSet.Int(scannerNumWorkers, scanservice.DefaultNumWorkers, "The number of workers pulling jobs from the batch queue")
	flagSet.Int(scannerMaxJobs, scanservice.DefaultMaxJobs, "The maximum number of finished batch jobs retained for retrieval")
	flagSet.Duration(scannerJobTTL, scanservice.DefaultJobTTL, "The time to live of finished batch jobs")
	flagSet.String(scannerTags, "", "One or more tags to be added to all metrics reported by this instance. Ex: key1=value1,key2=${envVar:defaultValue}")
}

// InitFromViper initializes ServerOptions with properties from viper.
func (sOpts *ServerOptions) InitFromViper(v *viper.Viper) *ServerOptions {
	sOpts.HTTPHostPort = v.GetString(scannerHTTPHostPort)
	sOpts.BasePath = v.GetString(scannerBasePath)
	sOpts.CacheSize = v.GetInt(scannerCacheSize)
	sOpts.CacheTTL = v.GetDuration(scannerCacheTTL)
	sOpts.QueueSize = v.GetInt(scannerQueueSize)
	sOpts.NumWorkers = v.GetInt(scannerNumWorkers)
	sOpts.MaxJobs = v.GetInt(scannerMaxJobs)
	sOpts.JobTTL = v.GetDuration(scannerJobTTL)
	sOpts.Tags = flags.ParseTags(v.GetString(scannerTags))
	return sOpts
}
