package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDateSet(t *testing.T) {
	set, err := ParseDateSet("2025-02-10, 2025-03-01")
	require.NoError(t, err)
	require.Len(t, set, 2)
	require.True(t, set.Contains(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)))
	require.True(t, set.Contains(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.False(t, set.Contains(time.Date(2025, 2, 11, 0, 0, 0, 0, time.UTC)))
}

func TestParseDateSetEmpty(t *testing.T) {
	set, err := ParseDateSet("  ")
	require.NoError(t, err)
	require.Empty(t, set)
}

func TestParseDateSetInvalid(t *testing.T) {
	_, err := ParseDateSet("2025-02-10,10/02/2025")
	require.Error(t, err)

	var validationErr *InputValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Equal(t, "10/02/2025", validationErr.Value)
}
