// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package env

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	longTemplate = `
All command line options can be provided via environment variables by converting
their names to upper case and replacing punctuation with underscores. For example:

command line option                 environment variable
------------------------------------------------------------------
--scanner.http-server.host-port     SCANNER_HTTP_SERVER_HOST_PORT
--metrics-backend                   METRICS_BACKEND

The following options additionally resolve environment variables inside their
values, using the ${ENV_VAR:default} syntax:
%s
`
	tagsDescription = `A comma separated list of key=value metric tags. A value of the form
${ENV_VAR:default} is replaced with the named environment variable, falling back
to the default; without a default the tag is dropped when the variable is unset.
`
)

// Command creates `env` command
func Command() *cobra.Command {
	fs := new(pflag.FlagSet)
	fs.String(
		"scanner.tags",
		"",
		strings.ReplaceAll(tagsDescription, "\n", " "),
	)
	long := fmt.Sprintf(longTemplate, strings.ReplaceAll(fs.FlagUsagesWrapped(0), "      --", "\n"))
	return &cobra.Command{
		Use:   "env",
		Short: "Help about environment variables.",
		Long:  long,
		Run: func(cmd *cobra.Command, _ /* args */ []string) {
			fmt.Fprint(cmd.OutOrStdout(), long)
		},
	}
}
