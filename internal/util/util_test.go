/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package util

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntDigits(t *testing.T) {
	assert.Equal(t, 1, IntDigits(0))
	assert.Equal(t, 1, IntDigits(9))
	assert.Equal(t, 3, IntDigits(120))
	assert.Equal(t, 4, IntDigits(-1000))
}

func TestRandomString(t *testing.T) {
	s := RandomString(12)
	assert.Len(t, s, 12)
	assert.Regexp(t, `^[a-zA-Z0-9]+$`, s)
}

func TestNewUUID(t *testing.T) {
	id, err := uuid.Parse(NewUUID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), id.Version())
}
