package preview

import "sync"

// Notifier broadcasts reload signals to connected browsers.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]struct{}
}

// NewNotifier creates a Notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		listeners: make(map[chan struct{}]struct{}),
	}
}

// Subscribe returns a channel that receives a ping after every successful
// regeneration. Call Unsubscribe when done.
func (n *Notifier) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast pings all listeners without blocking.
func (n *Notifier) Broadcast() {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- struct{}{}:
		default:
			// a ping is already pending
		}
	}
}

// Len returns the number of listeners.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
