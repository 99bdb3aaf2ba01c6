package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToasterPushAndDismiss(t *testing.T) {
	toaster := NewToaster()

	first := toaster.Success("Meetup created!")
	second := toaster.Error("Could not load meetups.")
	assert.Greater(t, second, first)

	toasts := toaster.Toasts.Get()
	require.Len(t, toasts, 2)
	assert.Equal(t, ToastSuccess, toasts[0].Kind)
	assert.Equal(t, "Meetup created!", toasts[0].Message)
	assert.Equal(t, ToastError, toasts[1].Kind)

	toaster.Dismiss(first)
	toasts = toaster.Toasts.Get()
	require.Len(t, toasts, 1)
	assert.Equal(t, second, toasts[0].ID)

	// Dismissing an id that is gone is a no-op.
	toaster.Dismiss(first)
	assert.Len(t, toaster.Toasts.Get(), 1)
}

func TestDismissLeavesPriorSnapshotIntact(t *testing.T) {
	toaster := NewToaster()
	first := toaster.Success("one")
	toaster.Error("two")

	snapshot := toaster.Toasts.Get()
	toaster.Dismiss(first)

	require.Len(t, snapshot, 2)
	assert.Equal(t, "one", snapshot[0].Message)
	assert.Equal(t, "two", snapshot[1].Message)
}

func TestToasterAutoDismiss(t *testing.T) {
	toaster := NewToasterWithTTL(10 * time.Millisecond)
	toaster.Error("transient")

	require.Len(t, toaster.Toasts.Get(), 1)

	assert.Eventually(t, func() bool {
		return len(toaster.Toasts.Get()) == 0
	}, time.Second, 5*time.Millisecond)
}
