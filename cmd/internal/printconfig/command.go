// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package printconfig

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Command creates the `print-config` command.
func Command(v *viper.Viper) *cobra.Command {
	c := &cobra.Command{
		Use:   "print-config",
		Short: "Print configurations",
		Long:  `Iterates through the resolved scanner configuration and prints it out`,
		RunE: func(cmd *cobra.Command, _ /* args */ []string) error {
			keys := v.AllKeys()
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%v\n", key, v.Get(key))
			}
			return nil
		},
	}
	return c
}
