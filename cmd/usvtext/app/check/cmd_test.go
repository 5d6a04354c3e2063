// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package check

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/usvtext/usvtext/cmd/usvtext/app"
	"github.com/usvtext/usvtext/internal/scanservice"
	"github.com/usvtext/usvtext/internal/testutils"
)

func newCheckAction(cfg Config, out *bytes.Buffer, stdin *bytes.Reader) *CheckAction {
	action := &CheckAction{
		Config:  cfg,
		Scanner: scanservice.NewScanner(scanservice.ScannerParams{}),
		Out:     out,
	}
	if stdin != nil {
		action.Stdin = stdin
	}
	return action
}

func TestCheckActionWellFormed(t *testing.T) {
	out := &bytes.Buffer{}
	action := newCheckAction(Config{
		InputOptions: app.InputOptions{Hex: "0041 D83D DE00"},
	}, out, nil)
	require.NoError(t, action.Do(nil))
	assert.Equal(t, "hex: well-formed (3 code units)\n", out.String())
}

func TestCheckActionIllFormed(t *testing.T) {
	out := &bytes.Buffer{}
	action := newCheckAction(Config{
		InputOptions: app.InputOptions{Hex: "D800 0041 DC00"},
	}, out, nil)
	err := action.Do(nil)
	require.EqualError(t, err, "1 of 1 inputs are ill-formed")
	assert.Equal(t, "hex: ill-formed (2 unpaired surrogates in 3 code units)\n", out.String())
}

func TestCheckActionVerbose(t *testing.T) {
	out := &bytes.Buffer{}
	action := newCheckAction(Config{
		InputOptions: app.InputOptions{Hex: "D800 0041 DC00"},
		Verbose:      true,
	}, out, nil)
	require.Error(t, action.Do(nil))
	assert.Contains(t, out.String(), "  offset 0: unpaired leading surrogate D800\n")
	assert.Contains(t, out.String(), "  offset 2: unpaired trailing surrogate DC00\n")
}

func TestCheckActionStdin(t *testing.T) {
	out := &bytes.Buffer{}
	action := newCheckAction(Config{
		InputOptions: app.InputOptions{Encoding: app.EncodingAuto},
	}, out, bytes.NewReader([]byte{0x41, 0x00}))
	require.NoError(t, action.Do(nil))
	assert.Equal(t, "stdin: well-formed (1 code units)\n", out.String())
}

func TestCheckActionBadInput(t *testing.T) {
	out := &bytes.Buffer{}
	action := newCheckAction(Config{
		InputOptions: app.InputOptions{Encoding: "utf-8"},
	}, out, bytes.NewReader(nil))
	require.ErrorContains(t, action.Do(nil), "unknown encoding")
}

func TestCheckCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.utf16")
	require.NoError(t, os.WriteFile(path, []byte{0x41, 0x00, 0x42, 0x00}, 0o600))

	v := viper.New()
	cmd := Command(v, zap.NewNop())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, path+": well-formed (2 code units)\n", out.String())
}

func TestCheckCommandIllFormed(t *testing.T) {
	v := viper.New()
	cmd := Command(v, zap.NewNop())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"--hex=DC00"})
	require.Error(t, cmd.Execute())
	assert.Contains(t, out.String(), "hex: ill-formed (1 unpaired surrogates in 1 code units)\n")
}

func TestMain(m *testing.M) {
	testutils.VerifyGoLeaks(m)
}
