package calendar

import (
	"sync"
	"time"
)

// EventTTL bounds how long a normalized snapshot may be served before the
// next sync has to repopulate it.
const EventTTL = 3600 * time.Second

type cacheSlot struct {
	events     []NormalizedEvent
	capturedAt time.Time
}

// EventCache holds the last normalized event list per calendar. A store
// replaces the previous snapshot wholesale; reads evict lazily once the
// snapshot exceeds EventTTL. There is no background sweeper. Concurrent
// writers are last-writer-wins.
type EventCache struct {
	mu    sync.Mutex
	slots map[string]cacheSlot
	now   func() time.Time
}

func NewEventCache() *EventCache {
	return &EventCache{
		slots: make(map[string]cacheSlot),
		now:   time.Now,
	}
}

// Store replaces any previous snapshot for the calendar and stamps it with
// the current time.
func (c *EventCache) Store(name string, events []NormalizedEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.slots[name] = cacheSlot{events: events, capturedAt: c.now()}
}

// Read returns the stored snapshot while it is younger than EventTTL. A
// stale snapshot is discarded as a side effect of the read, so a follow-up
// read misses even if the clock were to move backwards.
func (c *EventCache) Read(name string) ([]NormalizedEvent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	slot, ok := c.slots[name]
	if !ok {
		return nil, false
	}

	if c.now().Sub(slot.capturedAt) >= EventTTL {
		delete(c.slots, name)
		return nil, false
	}

	return slot.events, true
}

// Size returns the number of calendars with a live snapshot. Stale slots
// not yet touched by a read are still counted.
func (c *EventCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slots)
}
