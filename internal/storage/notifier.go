package storage

import "sync"

// Table identifies a persisted collection in change notifications.
type Table string

const (
	// TableReceipts is the receipt collection.
	TableReceipts Table = "receipts"
	// TableCabInfo is the singleton operator profile.
	TableCabInfo Table = "cab_info"
)

// Notifier is a broadcast hub for table-change events. It replaces the
// framework-level reactive query bindings of the original workflow: a
// subscriber registers interest, receives the name of each table that
// changed, and re-runs its query against the store for a fresh snapshot.
//
// Publish never blocks: a subscriber that is not draining its channel
// misses events rather than stalling writers. Subscribers treat an event
// as "something changed", not as a complete change log, so a missed event
// is recovered by the next one.
type Notifier struct {
	mu   sync.Mutex
	subs map[int]chan Table
	next int
}

// NewNotifier creates an empty notification hub.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan Table)}
}

// Subscribe registers a new subscriber. The returned cancel function must
// be called when the subscriber is done; it closes the channel.
func (n *Notifier) Subscribe() (<-chan Table, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan Table, 16)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if c, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish notifies all subscribers that a table changed.
func (n *Notifier) Publish(table Table) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- table:
		default:
			// Subscriber is behind; it will refresh on the next event.
		}
	}
}
