package app

import (
	"sync"

	"github.com/eventhub/eventhub/internal/domain"
)

// FlashNotifier queues the notifications of one client until the next response drains them.
type FlashNotifier struct {
	mu    sync.Mutex
	queue []domain.Notification
}

func (n *FlashNotifier) Success(title, description string) {
	n.push(domain.Notification{Level: domain.LevelSuccess, Title: title, Description: description})
}

func (n *FlashNotifier) Error(title, description string) {
	n.push(domain.Notification{Level: domain.LevelError, Title: title, Description: description})
}

func (n *FlashNotifier) push(note domain.Notification) {
	n.mu.Lock()
	n.queue = append(n.queue, note)
	n.mu.Unlock()
}

// Drain returns the queued notifications in order and empties the queue.
func (n *FlashNotifier) Drain() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.queue
	n.queue = nil
	return out
}

// Navigator records the last route a flow asked the client to go to.
type Navigator struct {
	mu      sync.Mutex
	pending string
}

func (n *Navigator) Navigate(route string) {
	n.mu.Lock()
	n.pending = route
	n.mu.Unlock()
}

// Take returns the pending route and clears it.
func (n *Navigator) Take() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	route := n.pending
	n.pending = ""
	return route, route != ""
}
