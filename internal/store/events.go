package store

import "github.com/desertthunder/pbin/internal/models"

// EventKind identifies the mutation an [Event] reports.
type EventKind int

const (
	Created EventKind = iota
	Updated
	Removed
)

func (k EventKind) String() string {
	switch k {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Removed:
		return "removed"
	default:
		return ""
	}
}

// Event describes one successful mutation. Paste is the record after the change, or the
// removed record for [Removed].
type Event struct {
	Kind  EventKind
	Paste models.Paste
}

// subscriberBuffer is the per-subscriber event buffer depth.
const subscriberBuffer = 16

// Subscribe registers a listener for change events.
//
// The returned function unsubscribes and closes the channel; it is safe to call more than once.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subsMu.Unlock()

	cancel := func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// publish fans e out to every subscriber without blocking.
func (s *Store) publish(e Event) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for id, ch := range s.subs {
		select {
		case ch <- e:
		default:
			s.logger.Warn("dropping store event for slow subscriber", "subscriber", id, "kind", e.Kind)
		}
	}
}
