package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyProgressBounds(t *testing.T) {
	e := &Enrollment{}

	require.Error(t, e.ApplyProgress(-1))
	require.Error(t, e.ApplyProgress(101))
	assert.Equal(t, 0, e.Progress)
	assert.False(t, e.IsCompleted)

	require.NoError(t, e.ApplyProgress(0))
	require.NoError(t, e.ApplyProgress(100))
}

func TestApplyProgressCompletion(t *testing.T) {
	e := &Enrollment{}

	require.NoError(t, e.ApplyProgress(99))
	assert.False(t, e.IsCompleted)

	require.NoError(t, e.ApplyProgress(100))
	assert.True(t, e.IsCompleted)

	// Dropping back below 100 clears completion
	require.NoError(t, e.ApplyProgress(50))
	assert.False(t, e.IsCompleted)
	assert.Equal(t, 50, e.Progress)
}

func TestMarkResourceCompletedDedupes(t *testing.T) {
	e := &Enrollment{}

	e.MarkResourceCompleted(7)
	e.MarkResourceCompleted(3)
	e.MarkResourceCompleted(7)

	assert.Len(t, e.CompletedResourceIDs, 2)
	assert.Contains(t, e.CompletedResourceIDs, uint(7))
	assert.Contains(t, e.CompletedResourceIDs, uint(3))
}
