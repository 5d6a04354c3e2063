// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package check

import (
	"flag"

	"github.com/spf13/viper"

	"github.com/usvtext/usvtext/cmd/usvtext/app"
)

const verboseFlag = "verbose"

// Config holds configuration for the check command.
type Config struct {
	app.InputOptions
	Verbose bool
}

// AddFlags adds flags for Config.
func (c *Config) AddFlags(flags *flag.FlagSet) {
	c.InputOptions.AddFlags(flags)
	flags.Bool(verboseFlag, false, "Report the offset and kind of every unpaired surrogate")
}

// InitFromViper initializes config from viper.Viper.
func (c *Config) InitFromViper(v *viper.Viper) {
	c.InputOptions.InitFromViper(v)
	c.Verbose = v.GetBool(verboseFlag)
}
