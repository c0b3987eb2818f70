package welcome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	s, err := NewState("m1", "u1", "g1")
	require.NoError(t, err)
	assert.Equal(t, "m1", s.MessageID())
	assert.False(t, s.CreatedAt().IsZero())

	_, err = NewState("", "u1", "g1")
	assert.Error(t, err)
	_, err = NewState("m1", "", "g1")
	assert.Error(t, err)
	_, err = NewState("m1", "u1", "")
	assert.Error(t, err)
}

func TestState_CanBeVerifiedBy(t *testing.T) {
	s, err := NewState("m1", "u1", "g1")
	require.NoError(t, err)

	assert.True(t, s.CanBeVerifiedBy("u1"))
	assert.False(t, s.CanBeVerifiedBy("u2"))
	assert.False(t, s.CanBeVerifiedBy(""))
}
