/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package cmd

import (
	"bytes"
	"testing"

	"isokml/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertCmd_FlagDefaults(t *testing.T) {
	def := domain.DefaultOptions()
	f := convertCmd.Flags()
	for name, want := range map[string]string{
		"levels":         "400",
		"variable":       def.Variable,
		"zone":           def.Zone,
		"proj-in":        def.ProjIn,
		"proj-out":       def.ProjOut,
		"max-scale":      "130",
		"min-scale":      "0",
		"x-col":          def.XCol,
		"multiplier":     "1",
		"y-scale-factor": "1",
		"depth":          "-1",
	} {
		flag := f.Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, want, flag.DefValue, name)
	}
}

func TestAboutCmd(t *testing.T) {
	var buf bytes.Buffer
	aboutCmd.SetOut(&buf)
	aboutCmd.Run(aboutCmd, nil)
	assert.Contains(t, buf.String(), "ISOKML")
}
