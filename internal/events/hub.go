package events

import (
	"sort"
	"sync"
)

// Type identifies what changed in the registry.
type Type string

const (
	TaskCreated    Type = "task_created"
	TaskUpdated    Type = "task_updated"
	TaskDeleted    Type = "task_deleted"
	ProjectCreated Type = "project_created"
	ProjectUpdated Type = "project_updated"
	ProjectDeleted Type = "project_deleted"
)

// Event describes a single committed registry mutation.
type Event struct {
	Type    Type   `json:"type"`
	TaskID  int    `json:"taskId,omitempty"`
	Project string `json:"project,omitempty"`
	// Partial marks an event that is followed by more events of the same operation,
	// such as the task deletions of a cascading project delete.
	Partial bool `json:"partial,omitempty"`
}

// Subscriber receives events. Notify returns false when the subscriber could not handle it.
type Subscriber interface {
	Notify(evt Event) bool
}

// SubscriberFunc adapts a plain function to Subscriber.
type SubscriberFunc func(evt Event) bool

func (f SubscriberFunc) Notify(evt Event) bool { return f(evt) }

// Hub fans registry events out to in-process subscribers.
// A nil *Hub accepts every call and does nothing.
type Hub struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[int]Subscriber
	failures    int
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[int]Subscriber)}
}

// Subscribe adds a subscriber and returns the function that removes it again.
func (h *Hub) Subscribe(s Subscriber) (unsubscribe func()) {
	if h == nil || s == nil {
		return func() {}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.subscribers[id] = s
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers, id)
	}
}

// Publish delivers evt to every subscriber in subscription order.
func (h *Hub) Publish(evt Event) {
	if h == nil {
		return
	}
	h.mu.RLock()
	ids := make([]int, 0, len(h.subscribers))
	for id := range h.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subs := make([]Subscriber, 0, len(ids))
	for _, id := range ids {
		subs = append(subs, h.subscribers[id])
	}
	h.mu.RUnlock()

	failed := 0
	for _, s := range subs {
		if ok := s.Notify(evt); !ok {
			failed++
		}
	}
	if failed > 0 {
		h.mu.Lock()
		h.failures += failed
		h.mu.Unlock()
	}
}

// Failures returns how many deliveries were reported as failed.
func (h *Hub) Failures() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.failures
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
