package notifier

import (
	"sync"
)

// Notifier tells subscribers the sequence number of the latest registry
// event. Each subscriber holds at most one pending value and it is always
// the newest, so a slow reader catches up by reading from its own cursor
// up to that sequence.
type Notifier struct {
	subscribers map[chan int64]struct{}
	mu          sync.Mutex
}

func New() *Notifier {
	return &Notifier{
		subscribers: make(map[chan int64]struct{}),
	}
}

func (n *Notifier) Subscribe() chan int64 {
	ch := make(chan int64, 1)
	n.mu.Lock()
	n.subscribers[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe closes ch. Unknown or already removed channels are ignored.
func (n *Notifier) Unsubscribe(ch chan int64) {
	n.mu.Lock()
	if _, ok := n.subscribers[ch]; ok {
		delete(n.subscribers, ch)
		close(ch)
	}
	n.mu.Unlock()
}

func (n *Notifier) Subscribers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subscribers)
}

// Notify publishes seq to every subscriber without blocking, replacing a
// value the subscriber has not read yet.
func (n *Notifier) Notify(seq int64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- seq
	}
}
