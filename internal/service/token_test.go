package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func neverExists(ctx context.Context, token string) (bool, error) {
	return false, nil
}

func TestIssueToken_Format(t *testing.T) {
	// Act
	token, err := issueToken(context.Background(), neverExists)

	// Assert: 36-character uuid string, safe to embed in a URL
	assert.NoError(t, err)
	assert.Len(t, token, 36)
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "=")
}

func TestIssueToken_DistinctAcrossCalls(t *testing.T) {
	// Act
	first, err1 := issueToken(context.Background(), neverExists)
	second, err2 := issueToken(context.Background(), neverExists)

	// Assert
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.NotEqual(t, first, second)
}

func TestIssueToken_RetriesUntilUnique(t *testing.T) {
	// Arrange: the first two candidates are already taken
	var candidates []string
	exists := func(ctx context.Context, token string) (bool, error) {
		candidates = append(candidates, token)
		return len(candidates) <= 2, nil
	}

	// Act
	token, err := issueToken(context.Background(), exists)

	// Assert: the third candidate wins
	assert.NoError(t, err)
	assert.Len(t, candidates, 3)
	assert.Equal(t, candidates[2], token)
	assert.NotEqual(t, candidates[0], token)
	assert.NotEqual(t, candidates[1], token)
}

func TestIssueToken_LookupError(t *testing.T) {
	// Arrange
	exists := func(ctx context.Context, token string) (bool, error) {
		return false, assert.AnError
	}

	// Act
	token, err := issueToken(context.Background(), exists)

	// Assert
	assert.Error(t, err)
	assert.Empty(t, token)
}
