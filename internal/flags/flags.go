// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

// Package flags defines command line flags that are shared by several
// executables, and provides the shared service bootstrap with an admin
// HTTP server.
package flags

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevel    = "log-level"
	logEncoding = "log-encoding" // json or console
	configFile  = "config-file"
)

// AddConfigFileFlag adds the flag for the external configuration file.
func AddConfigFileFlag(flagSet *flag.FlagSet) {
	flagSet.String(configFile, "", "Configuration file in JSON, TOML, YAML, HCL, or Java properties formats (default none). See spf13/viper for precedence.")
}

// TryLoadConfigFile initializes viper with the config file specified as a flag.
func TryLoadConfigFile(v *viper.Viper) error {
	if file := v.GetString(configFile); file != "" {
		v.SetConfigFile(file)
		err := v.ReadInConfig()
		if err != nil {
			return fmt.Errorf("cannot load config file %s: %w", file, err)
		}
	}
	return nil
}

// ParseTags parses a comma separated key=value list into a map. Values of
// the form ${ENV_VAR:default} are resolved from the environment.
func ParseTags(tags string) map[string]string {
	if tags == "" {
		return nil
	}
	tagPairs := strings.Split(tags, ",")
	tagMap := make(map[string]string)
	for _, p := range tagPairs {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			panic(fmt.Sprintf("invalid tag pair %q, expected key=value", p))
		}
		k, v := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])

		if strings.HasPrefix(v, "${") && strings.HasSuffix(v, "}") {
			skipWhenEmpty := false

			ed := strings.SplitN(v[2:len(v)-1], ":", 2)
			if len(ed) == 1 {
				// no default value specified, skip the tag if the
				// environment variable is also absent
				skipWhenEmpty = true
				ed = append(ed, "")
			}

			e, d := ed[0], ed[1]
			v = os.Getenv(e)
			if v == "" && d != "" {
				v = d
			}

			if v == "" && skipWhenEmpty {
				continue
			}
		}

		tagMap[k] = v
	}

	return tagMap
}

// SharedFlags holds flag configuration shared by all executables.
type SharedFlags struct {
	// Logging holds logging configuration
	Logging logging
}

type logging struct {
	Level    string
	Encoding string
}

// AddFlags adds flags for SharedFlags.
func AddFlags(flagSet *flag.FlagSet) {
	AddLoggingFlags(flagSet)
}

// AddLoggingFlags adds only the logging flags for SharedFlags.
func AddLoggingFlags(flagSet *flag.FlagSet) {
	flagSet.String(logLevel, "info", "Minimal allowed log Level. For more levels see https://github.com/uber-go/zap")
	flagSet.String(logEncoding, "json", "Log encoding. Supported values are 'json' and 'console'.")
}

// InitFromViper initializes SharedFlags with properties from viper.
func (flags *SharedFlags) InitFromViper(v *viper.Viper) *SharedFlags {
	flags.Logging.Level = v.GetString(logLevel)
	flags.Logging.Encoding = v.GetString(logEncoding)
	return flags
}

// NewLogger returns a logger based on the configuration in SharedFlags.
func (flags *SharedFlags) NewLogger(conf zap.Config, options ...zap.Option) (*zap.Logger, error) {
	var level zapcore.Level
	err := (&level).UnmarshalText([]byte(flags.Logging.Level))
	if err != nil {
		return nil, err
	}
	conf.Level = zap.NewAtomicLevelAt(level)
	conf.Encoding = flags.Logging.Encoding
	if flags.Logging.Encoding == "console" {
		conf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	return conf.Build(options...)
}
