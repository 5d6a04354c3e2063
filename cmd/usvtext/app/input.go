// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/usvtext/usvtext/internal/codeunits"
)

const (
	encodingFlag = "encoding"
	hexFlag      = "hex"
)

// Supported values for the --encoding flag.
const (
	EncodingAuto    = "auto"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
)

// InputOptions holds configuration shared by the commands that read UTF-16
// inputs from files, stdin, or a hex literal.
type InputOptions struct {
	// Encoding is the byte order of the input, one of the Encoding constants.
	Encoding string
	// Hex is a literal sequence of hex code units scanned instead of files.
	Hex string
}

// Input is one decoded UTF-16 input.
type Input struct {
	// Name identifies the input in reports: a file path, "stdin", or "hex".
	Name string
	// Units is the decoded code unit sequence.
	Units []uint16
	// Order is the byte order the input was decoded with.
	Order binary.ByteOrder
}

// AddFlags adds flags for InputOptions.
func (*InputOptions) AddFlags(flags *flag.FlagSet) {
	flags.String(encodingFlag, EncodingAuto, "The byte order of the input: utf-16le, utf-16be, or auto to sniff a leading byte order mark (without one, auto reads little-endian)")
	flags.String(hexFlag, "", `A literal sequence of hex code units to scan instead of reading files, e.g. "0041 D800 0042"`)
}

// InitFromViper initializes InputOptions with properties from viper.
func (c *InputOptions) InitFromViper(v *viper.Viper) {
	c.Encoding = v.GetString(encodingFlag)
	c.Hex = v.GetString(hexFlag)
}

// ReadInputs decodes the configured inputs: the hex literal when one is
// given, otherwise each named file, otherwise stdin.
func (c *InputOptions) ReadInputs(args []string, stdin io.Reader) ([]Input, error) {
	if c.Hex != "" {
		units, err := codeunits.ParseHex(c.Hex)
		if err != nil {
			return nil, err
		}
		return []Input{{Name: "hex", Units: units, Order: binary.LittleEndian}}, nil
	}
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("cannot read stdin: %w", err)
		}
		input, err := c.decode("stdin", data)
		if err != nil {
			return nil, err
		}
		return []Input{input}, nil
	}
	inputs := make([]Input, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		input, err := c.decode(path, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func (c *InputOptions) decode(name string, data []byte) (Input, error) {
	var order binary.ByteOrder
	switch c.Encoding {
	case EncodingUTF16LE:
		order = binary.LittleEndian
	case EncodingUTF16BE:
		order = binary.BigEndian
	case EncodingAuto, "":
		detected, bomLen := codeunits.DetectByteOrder(data)
		order = detected
		data = data[bomLen:]
	default:
		return Input{}, fmt.Errorf("unknown encoding %q, expected utf-16le, utf-16be, or auto", c.Encoding)
	}
	units, err := codeunits.FromBytes(data, order)
	if err != nil {
		return Input{}, err
	}
	return Input{Name: name, Units: units, Order: order}, nil
}
