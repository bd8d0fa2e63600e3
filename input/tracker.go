package input

import (
	"slices"
	"time"
)

// DefaultHold outlasts the usual terminal auto-repeat delay so a held key stays down
const DefaultHold = 550 * time.Millisecond

// KeyTracker synthesizes key releases
// Terminals report presses and auto-repeats only, so a key counts as released
// once no repeat arrives within the hold window
type KeyTracker struct {
	hold time.Duration
	seen map[string]time.Time
}

func NewKeyTracker(hold time.Duration) *KeyTracker {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &KeyTracker{hold: hold, seen: make(map[string]time.Time)}
}

// Press records key at now; returns true on the initial press, false on a repeat
func (k *KeyTracker) Press(key string, now time.Time) bool {
	_, held := k.seen[key]
	k.seen[key] = now
	return !held
}

// Expire returns keys whose hold window elapsed at now, sorted, and forgets them
func (k *KeyTracker) Expire(now time.Time) []string {
	var released []string
	for key, at := range k.seen {
		if now.Sub(at) >= k.hold {
			released = append(released, key)
		}
	}
	for _, key := range released {
		delete(k.seen, key)
	}
	slices.Sort(released)
	return released
}

// ReleaseAll forgets every held key and returns them sorted
func (k *KeyTracker) ReleaseAll() []string {
	released := make([]string, 0, len(k.seen))
	for key := range k.seen {
		released = append(released, key)
	}
	clear(k.seen)
	slices.Sort(released)
	return released
}

// Held reports whether key is currently considered down
func (k *KeyTracker) Held(key string) bool {
	_, ok := k.seen[key]
	return ok
}
