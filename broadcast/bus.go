package broadcast

import "sync"

// SubscriberID identifies a registered subscriber (e.g. a renderer session
// or a networked participant's view).
type SubscriberID int64

// Bus fans out chunk-level change notifications. Subscribers register for
// a set of chunks; a Publish call marks every subscriber whose registered
// set overlaps the published chunks as dirty. Subscribers drain their own
// dirty set once per tick (mirrors the teacher's Prepare-then-Update
// staging: changes accumulate during mutation, are consumed in the next
// prepare phase).
type Bus struct {
	mu          sync.Mutex
	subscribers map[SubscriberID]map[ChunkID]struct{} // interest set
	dirty       map[SubscriberID]map[ChunkID]struct{} // accumulated since last Drain
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[SubscriberID]map[ChunkID]struct{}),
		dirty:       make(map[SubscriberID]map[ChunkID]struct{}),
	}
}

// Subscribe registers sub's interest in the given chunks, replacing any
// prior registration.
func (b *Bus) Subscribe(sub SubscriberID, chunks []ChunkID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	set := make(map[ChunkID]struct{}, len(chunks))
	for _, c := range chunks {
		set[c] = struct{}{}
	}
	b.subscribers[sub] = set
}

// Unsubscribe removes a subscriber entirely.
func (b *Bus) Unsubscribe(sub SubscriberID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subscribers, sub)
	delete(b.dirty, sub)
}

// Publish marks every subscriber interested in any of the given chunks as
// dirty for those chunks. Called by the map facade after every mutation
// (spec §4.1 step (d)).
func (b *Bus) Publish(chunks []ChunkID) {
	if len(chunks) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub, interest := range b.subscribers {
		for _, c := range chunks {
			if _, ok := interest[c]; !ok {
				continue
			}
			set, ok := b.dirty[sub]
			if !ok {
				set = make(map[ChunkID]struct{})
				b.dirty[sub] = set
			}
			set[c] = struct{}{}
		}
	}
}

// Drain returns and clears the chunks marked dirty for sub since the last
// Drain call.
func (b *Bus) Drain(sub SubscriberID) []ChunkID {
	b.mu.Lock()
	defer b.mu.Unlock()
	set, ok := b.dirty[sub]
	if !ok {
		return nil
	}
	out := make([]ChunkID, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	delete(b.dirty, sub)
	return out
}
