// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package printconfig

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintConfigCommand(t *testing.T) {
	v := viper.New()
	v.Set("scanner.queue-size", 500)
	v.Set("scanner.base-path", "/usvtext")

	cmd := Command(v)
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "scanner.base-path=/usvtext\nscanner.queue-size=500\n", out.String())
}

func TestPrintConfigCommandEmpty(t *testing.T) {
	cmd := Command(viper.New())
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	require.NoError(t, cmd.Execute())

	assert.Empty(t, out.String())
}
