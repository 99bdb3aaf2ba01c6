package client

import (
	"sync"
	"time"
)

// DefaultToastTTL is how long a notification stays up before self-dismissing.
const DefaultToastTTL = 4 * time.Second

// ToastKind tags a notification as a success or an error.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is one short-lived dismissible notification.
type Toast struct {
	ID      int       `json:"id"`
	Kind    ToastKind `json:"kind"`
	Message string    `json:"message"`
}

// Toaster is the in-memory notification queue. Entries self-remove after the
// TTL unless dismissed earlier.
type Toaster struct {
	mu     sync.Mutex
	nextID int
	ttl    time.Duration

	// Toasts holds the currently visible notifications.
	Toasts *Signal[[]Toast]
}

// NewToaster returns a Toaster with the default TTL.
func NewToaster() *Toaster {
	return NewToasterWithTTL(DefaultToastTTL)
}

// NewToasterWithTTL returns a Toaster whose entries expire after ttl.
func NewToasterWithTTL(ttl time.Duration) *Toaster {
	return &Toaster{ttl: ttl, Toasts: NewSignal([]Toast(nil))}
}

// Success enqueues a success notification and returns its id.
func (t *Toaster) Success(msg string) int {
	return t.push(ToastSuccess, msg)
}

// Error enqueues an error notification and returns its id.
func (t *Toaster) Error(msg string) int {
	return t.push(ToastError, msg)
}

// Dismiss removes the notification with the given id, if still present.
func (t *Toaster) Dismiss(id int) {
	t.Toasts.Update(func(toasts []Toast) []Toast {
		// Fresh slice: callers may still hold the previous value.
		out := make([]Toast, 0, len(toasts))
		for _, toast := range toasts {
			if toast.ID != id {
				out = append(out, toast)
			}
		}
		return out
	})
}

func (t *Toaster) push(kind ToastKind, msg string) int {
	t.mu.Lock()
	t.nextID++
	id := t.nextID
	t.mu.Unlock()

	t.Toasts.Update(func(toasts []Toast) []Toast {
		return append(toasts, Toast{ID: id, Kind: kind, Message: msg})
	})

	time.AfterFunc(t.ttl, func() { t.Dismiss(id) })
	return id
}
