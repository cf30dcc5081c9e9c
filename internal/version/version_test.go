/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAbout(t *testing.T) {
	old := Commit
	Commit = "0123456789abcdef0123"
	t.Cleanup(func() { Commit = old })

	about := GetAbout()
	assert.Contains(t, about, "ISOKML")
	assert.Contains(t, about, "0123456789ab\n")
	assert.NotContains(t, about, "0123456789abc")
}
