package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceValidate(t *testing.T) {
	assert.NoError(t, Sequence{}.Validate())
	assert.NoError(t, Sequence{0}.Validate())
	assert.NoError(t, Sequence{100, 500}.Validate())

	assert.Error(t, Sequence{-1}.Validate())
	assert.Error(t, Sequence{100, 0}.Validate())
	assert.Error(t, Sequence{0, 100}.Validate())
}

func TestSequenceFirst(t *testing.T) {
	assert.Equal(t, SentinelNone, Sequence{}.First())
	assert.Equal(t, SentinelNone, Sequence{0}.First())
	assert.Equal(t, int64(100), Sequence{100, 500}.First())
}

func TestSequenceContains(t *testing.T) {
	seq := Sequence{100, 500}
	assert.True(t, seq.Contains(100))
	assert.True(t, seq.Contains(500))
	assert.False(t, seq.Contains(999))
	// the sentinel is never a member, even if stored
	assert.False(t, Sequence{0}.Contains(0))
}

func TestSequenceAfter(t *testing.T) {
	seq := Sequence{100, 500, 700}

	next, ok := seq.After(100)
	assert.True(t, ok)
	assert.Equal(t, int64(500), next)

	next, ok = seq.After(700)
	assert.True(t, ok)
	assert.Equal(t, SentinelNone, next)

	_, ok = seq.After(999)
	assert.False(t, ok)
}

func TestSequenceCloneIsIndependent(t *testing.T) {
	original := Sequence{100, 500}
	copied := original.Clone()
	copied[0] = 1

	assert.Equal(t, int64(100), original[0])
	assert.Nil(t, Sequence(nil).Clone())
}
