package client

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalGetSet(t *testing.T) {
	s := NewSignal(10)
	assert.Equal(t, 10, s.Get())

	s.Set(42)
	assert.Equal(t, 42, s.Get())
}

func TestSignalSubscribe(t *testing.T) {
	s := NewSignal("initial")

	var seen []string
	unsubscribe := s.Subscribe(func(v string) { seen = append(seen, v) })

	// No replay of the current value on subscribe.
	assert.Empty(t, seen)

	s.Set("first")
	s.Set("second")
	require.Equal(t, []string{"first", "second"}, seen)

	unsubscribe()
	s.Set("third")
	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestSignalUpdateIsAtomic(t *testing.T) {
	s := NewSignal(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(func(v int) int { return v + 1 })
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Get())
}

func TestSignalSubscriberMayReadSignal(t *testing.T) {
	s := NewSignal(1)

	var observed int
	s.Subscribe(func(int) {
		// Reading back inside the callback must not deadlock.
		observed = s.Get()
	})

	s.Set(7)
	assert.Equal(t, 7, observed)
}
