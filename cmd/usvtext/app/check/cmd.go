// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package check

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/usvtext/usvtext/internal/config"
	"github.com/usvtext/usvtext/internal/scanservice"
	"github.com/usvtext/usvtext/wellformed"
)

// Command creates the `check` command.
func Command(v *viper.Viper, logger *zap.Logger) *cobra.Command {
	cfg := &Config{}
	command := &cobra.Command{
		Use:   "check [file...]",
		Short: "Check UTF-16 inputs for well-formedness",
		Long: `Check reads UTF-16 encoded files (or stdin, or a --hex literal) and reports
unpaired surrogates. The exit code is non-zero when any input is ill-formed.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.InitFromViper(v)
			action := CheckAction{
				Config:  *cfg,
				Scanner: scanservice.NewScanner(scanservice.ScannerParams{Logger: logger}),
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

// CheckAction scans inputs and reports a verdict per input.
type CheckAction struct {
	Config
	Scanner *scanservice.Scanner
	Out     io.Writer
	Stdin   io.Reader
}

// Do reads every input and writes one verdict line per input. It returns an
// error when any input is ill-formed, so the process exits non-zero.
func (a *CheckAction) Do(args []string) error {
	inputs, err := a.ReadInputs(args, a.Stdin)
	if err != nil {
		return err
	}
	illFormed := 0
	for _, input := range inputs {
		result := a.Scanner.Check(input.Units)
		if result.WellFormed {
			fmt.Fprintf(a.Out, "%s: well-formed (%d code units)\n", input.Name, result.Scanned)
			continue
		}
		illFormed++
		fmt.Fprintf(a.Out, "%s: ill-formed (%d unpaired surrogates in %d code units)\n",
			input.Name, len(result.Unpaired), result.Scanned)
		if a.Verbose {
			for _, offset := range result.Unpaired {
				unit := input.Units[offset]
				fmt.Fprintf(a.Out, "  offset %d: unpaired %s surrogate %04X\n", offset, surrogateKind(unit), unit)
			}
		}
	}
	if illFormed > 0 {
		return fmt.Errorf("%d of %d inputs are ill-formed", illFormed, len(inputs))
	}
	return nil
}

func surrogateKind(u uint16) string {
	if wellformed.IsTrailingSurrogate(u) {
		return "trailing"
	}
	return "leading"
}
