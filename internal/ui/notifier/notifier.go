// Package notifier tells open SSE streams that the preset catalogue changed.
package notifier

import "sync"

// Notifier broadcasts catalogue revisions to subscribed listeners.
// Listeners receive the revision number and should re-read the catalogue.
type Notifier struct {
	mu        sync.RWMutex
	revision  uint64
	listeners map[chan uint64]struct{}
}

// New creates a Notifier at revision 0.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan uint64]struct{}),
	}
}

// Subscribe returns a channel that receives each new revision.
// The caller must call Unsubscribe when done.
func (n *Notifier) Subscribe() chan uint64 {
	ch := make(chan uint64, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan uint64) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Revision returns the number of broadcasts so far.
func (n *Notifier) Revision() uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.revision
}

// Broadcast bumps the revision and sends it to all listeners.
// A listener that has not consumed the previous revision gets the newer
// one in its place.
func (n *Notifier) Broadcast() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.revision++
	for ch := range n.listeners {
		select {
		case <-ch:
		default:
		}
		ch <- n.revision
	}
	return n.revision
}

// Listeners returns the number of subscribed channels.
func (n *Notifier) Listeners() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
