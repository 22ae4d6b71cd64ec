// Package notifier provides a broadcast mechanism for SSE updates,
// keyed by session so a state change in one browser tab re-renders
// every open tab of the same session.
package notifier

import "sync"

// Notifier broadcasts update pings to listeners subscribed to a
// session. Listeners receive an empty struct and should re-render from
// the session state.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[string]map[chan struct{}]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[string]map[chan struct{}]struct{}),
	}
}

// Subscribe returns a channel receiving pings for sessionID. The caller
// must call Unsubscribe when done to prevent goroutine leaks.
func (n *Notifier) Subscribe(sessionID string) chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	if n.listeners[sessionID] == nil {
		n.listeners[sessionID] = make(map[chan struct{}]struct{})
	}
	n.listeners[sessionID][ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(sessionID string, ch chan struct{}) {
	n.mu.Lock()
	if set, ok := n.listeners[sessionID]; ok {
		delete(set, ch)
		if len(set) == 0 {
			delete(n.listeners, sessionID)
		}
	}
	n.mu.Unlock()
	close(ch)
}

// Broadcast pings every listener on sessionID. Non-blocking: a full
// channel is skipped, the listener catches up on the next ping.
func (n *Notifier) Broadcast(sessionID string) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners[sessionID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// BroadcastAll pings every listener of every session. Used when a
// server-wide change, such as an edited asset in dev mode, should
// re-render all connected clients.
func (n *Notifier) BroadcastAll() {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, set := range n.listeners {
		for ch := range set {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}
}
