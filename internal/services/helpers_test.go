package services

import (
	"testing"
	"time"

	"freelink_backend/pkg/apperrors"

	"github.com/stretchr/testify/require"
)

// requireAppError asserts err is an AppError rendered with status.
func requireAppError(t *testing.T, err error, status int) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected *apperrors.AppError, got %T: %v", err, err)
	require.Equal(t, status, appErr.HTTPCode, "unexpected status for %v", appErr)
	return appErr
}

// fixedClock returns a clock stuck at t that tests can move forward.
func fixedClock(t time.Time) (func() time.Time, func(time.Duration)) {
	now := t
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}
