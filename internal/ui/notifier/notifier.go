// Package notifier provides a simple broadcast mechanism for SSE updates.
package notifier

import (
	"sync"
	"time"
)

// Event announces that a new dataset version is being served.
type Event struct {
	Version uint64
	Rows    int
	At      time.Time
}

// Notifier broadcasts reload events to all subscribed listeners.
// Listeners only ever see the latest event: a pending one is replaced.
type Notifier struct {
	mu        sync.Mutex
	listeners map[chan Event]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan Event]struct{}),
	}
}

// Subscribe returns a channel that receives reload events.
// The caller must call Unsubscribe when done to prevent goroutine leaks.
func (n *Notifier) Subscribe() chan Event {
	ch := make(chan Event, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan Event) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast sends ev to all listeners without blocking.
func (n *Notifier) Broadcast(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.listeners {
		select {
		case <-ch:
		default:
		}
		ch <- ev
	}
}

// Listeners returns the number of subscribed listeners.
func (n *Notifier) Listeners() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}
