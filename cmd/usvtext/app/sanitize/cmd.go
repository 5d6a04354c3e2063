// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package sanitize

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/usvtext/usvtext/internal/codeunits"
	"github.com/usvtext/usvtext/internal/config"
	"github.com/usvtext/usvtext/internal/scanservice"
)

// Command creates the `sanitize` command.
func Command(v *viper.Viper, logger *zap.Logger) *cobra.Command {
	cfg := &Config{}
	command := &cobra.Command{
		Use:   "sanitize [file]",
		Short: "Replace unpaired surrogates with U+FFFD",
		Long: `Sanitize reads one UTF-16 encoded file (or stdin, or a --hex literal) and
writes the sequence with every unpaired surrogate replaced by U+FFFD, encoded
in the byte order of the input. A hex literal is written back as hex. A byte
order mark consumed by --encoding=auto is not repeated in the output.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.InitFromViper(v)
			action := SanitizeAction{
				Config:  *cfg,
				Scanner: scanservice.NewScanner(scanservice.ScannerParams{Logger: logger}),
				Logger:  logger,
				Out:     cmd.OutOrStdout(),
				Stdin:   cmd.InOrStdin(),
			}
			return action.Do(args)
		},
	}
	config.AddFlags(
		v,
		command,
		cfg.AddFlags,
	)
	return command
}

// SanitizeAction sanitizes one input and writes the result.
type SanitizeAction struct {
	Config
	Scanner *scanservice.Scanner
	Logger  *zap.Logger
	Out     io.Writer
	Stdin   io.Reader
}

// Do reads the input, replaces unpaired surrogates, and writes the sanitized
// sequence to the configured output. The replacement count goes to the log,
// keeping stdout clean for the sanitized bytes.
func (a *SanitizeAction) Do(args []string) error {
	inputs, err := a.ReadInputs(args, a.Stdin)
	if err != nil {
		return err
	}
	input := inputs[0]
	result := a.Scanner.Sanitize(input.Units)
	a.Logger.Info("Sanitized input",
		zap.String("input", input.Name),
		zap.Int("code-units", len(input.Units)),
		zap.Int("replaced", result.Replaced))

	if a.Hex != "" {
		_, err = fmt.Fprintln(a.Out, codeunits.FormatHex(result.Units))
		return err
	}
	data := codeunits.ToBytes(result.Units, input.Order)
	if a.Output != "" {
		return os.WriteFile(a.Output, data, 0o644)
	}
	_, err = a.Out.Write(data)
	return err
}
