package preview

import (
	"sync"
	"time"
)

// DoubleClickThreshold is the longest gap between two clicks on the same
// path that still counts as a double click.
const DoubleClickThreshold = 500 * time.Millisecond

// Action is what a click should do.
type Action int

const (
	// ActionOpen runs the document's default command.
	ActionOpen Action = iota
	// ActionEdit opens the document in the editor.
	ActionEdit
)

func (a Action) String() string {
	if a == ActionEdit {
		return "edit"
	}
	return "open"
}

// ClickTracker turns clicks into open or edit actions. Each caller owns its
// own tracker; entries expire shortly after the threshold so the map only
// holds recent clicks.
type ClickTracker struct {
	mu        sync.Mutex
	threshold time.Duration
	last      map[string]time.Time
}

// NewClickTracker returns a tracker using threshold, or
// DoubleClickThreshold when threshold is not positive.
func NewClickTracker(threshold time.Duration) *ClickTracker {
	if threshold <= 0 {
		threshold = DoubleClickThreshold
	}
	return &ClickTracker{
		threshold: threshold,
		last:      make(map[string]time.Time),
	}
}

// Threshold returns the double-click window.
func (c *ClickTracker) Threshold() time.Duration {
	return c.threshold
}

// TTL returns how long a click is remembered.
func (c *ClickTracker) TTL() time.Duration {
	return c.threshold + 100*time.Millisecond
}

// Click records a click on path at now. A second click inside the
// threshold is an edit and clears the entry so a third click starts over.
func (c *ClickTracker) Click(path string, now time.Time) Action {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictLocked(now)

	if last, ok := c.last[path]; ok {
		if gap := now.Sub(last); gap >= 0 && gap < c.threshold {
			delete(c.last, path)
			return ActionEdit
		}
	}
	c.last[path] = now
	return ActionOpen
}

// Evict drops clicks older than TTL and reports how many were removed.
func (c *ClickTracker) Evict(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictLocked(now)
}

// Len returns the number of remembered clicks.
func (c *ClickTracker) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.last)
}

// Reset forgets every click.
func (c *ClickTracker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.last)
}

func (c *ClickTracker) evictLocked(now time.Time) int {
	removed := 0
	for path, at := range c.last {
		if now.Sub(at) >= c.TTL() {
			delete(c.last, path)
			removed++
		}
	}
	return removed
}
