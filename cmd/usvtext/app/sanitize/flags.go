// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package sanitize

import (
	"flag"

	"github.com/spf13/viper"

	"github.com/usvtext/usvtext/cmd/usvtext/app"
)

const outputFlag = "output"

// Config holds configuration for the sanitize command.
type Config struct {
	app.InputOptions
	Output string
}

// AddFlags adds flags for Config.
func (c *Config) AddFlags(flags *flag.FlagSet) {
	c.InputOptions.AddFlags(flags)
	flags.String(outputFlag, "", "Write the sanitized bytes to this file instead of stdout")
}

// InitFromViper initializes config from viper.Viper.
func (c *Config) InitFromViper(v *viper.Viper) {
	c.InputOptions.InitFromViper(v)
	c.Output = v.GetString(outputFlag)
}
