package notifier

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Subscribe_Unsubscribe(t *testing.T) {
	n := New()

	ch := n.Subscribe()
	require.NotNil(t, ch)
	assert.Equal(t, 1, n.Listeners())

	n.Unsubscribe(ch)
	assert.Equal(t, 0, n.Listeners())

	_, open := <-ch
	assert.False(t, open, "unsubscribe closes the channel")
}

func TestNotifier_Broadcast(t *testing.T) {
	n := New()

	ch1 := n.Subscribe()
	ch2 := n.Subscribe()
	defer n.Unsubscribe(ch1)
	defer n.Unsubscribe(ch2)

	n.Broadcast(Event{Version: 2, Rows: 311})

	for i, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, uint64(2), ev.Version)
			assert.Equal(t, 311, ev.Rows)
		case <-time.After(100 * time.Millisecond):
			t.Errorf("listener %d did not receive broadcast", i)
		}
	}
}

func TestNotifier_Broadcast_KeepsLatest(t *testing.T) {
	n := New()

	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	done := make(chan struct{})
	go func() {
		n.Broadcast(Event{Version: 2})
		n.Broadcast(Event{Version: 3})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Broadcast blocked on full channel")
	}

	ev := <-ch
	assert.Equal(t, uint64(3), ev.Version)
	select {
	case extra := <-ch:
		t.Errorf("unexpected extra event %+v", extra)
	default:
	}
}

func TestNotifier_Concurrent(t *testing.T) {
	n := New()

	var wg sync.WaitGroup
	const numGoroutines = 10

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(v uint64) {
			defer wg.Done()
			ch := n.Subscribe()
			n.Broadcast(Event{Version: v})
			n.Unsubscribe(ch)
		}(uint64(i))
	}

	wg.Wait()
	assert.Equal(t, 0, n.Listeners())
}
