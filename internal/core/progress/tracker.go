// Package progress accumulates per-section completion counts reported by
// independently loading profile sections and derives one overall percentage.
package progress

import (
	"sync"
	"time"

	"gad-officerhub/internal/core/domain"
)

// Tracker is the per-session completion state. Sections report in any order
// and any number of times; reads always see a consistent snapshot. All
// operations are infallible state transitions, there is no I/O here.
type Tracker struct {
	mu       sync.RWMutex
	required []string
	sections map[string]domain.SectionProgress
	loaded   map[string]bool
}

// NewTracker creates a tracker over the given required-section list.
func NewTracker(required []string) *Tracker {
	req := make([]string, len(required))
	copy(req, required)
	return &Tracker{
		required: req,
		sections: make(map[string]domain.SectionProgress),
		loaded:   make(map[string]bool),
	}
}

// Report upserts a section's counts and marks the section loaded. It returns
// false without touching stored state when both numbers are unchanged, so
// callers can skip redundant persistence and re-renders.
func (t *Tracker) Report(section string, completed, total int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.loaded[section] = true
	if cur, ok := t.sections[section]; ok && cur.Completed == completed && cur.Total == total {
		return false
	}
	t.sections[section] = domain.SectionProgress{
		Completed: completed,
		Total:     total,
		UpdatedAt: time.Now(),
	}
	return true
}

// MarkLoaded flags a section as loaded without supplying counts, for
// sections that determine "empty" asynchronously. A loaded section with zero
// items counts as complete rather than missing.
func (t *Tracker) MarkLoaded(section string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loaded[section] = true
}

// Reset clears all reported state.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sections = make(map[string]domain.SectionProgress)
	t.loaded = make(map[string]bool)
}

// Loaded reports whether the section has reported at least once.
func (t *Tracker) Loaded(section string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loaded[section]
}

// AllLoaded reports whether every required section has reported.
func (t *Tracker) AllLoaded() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.allLoadedLocked()
}

func (t *Tracker) allLoadedLocked() bool {
	for _, s := range t.required {
		if !t.loaded[s] {
			return false
		}
	}
	return true
}

// StrictPercentage returns 0 until every required section has reported at
// least once, then the rounded aggregate completion across the required
// sections. A section with zero items contributes nothing to either sum.
func (t *Tracker) StrictPercentage() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.allLoadedLocked() {
		return 0
	}
	return t.aggregateLocked(false)
}

// StabilizedPercentage defaults every not-yet-loaded required section to
// 0 of 1 instead of excluding it, trading short-term accuracy for a progress
// bar that never jumps backwards while sections stream in. This is the
// variant exposed externally.
func (t *Tracker) StabilizedPercentage() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.aggregateLocked(true)
}

func (t *Tracker) aggregateLocked(defaultPending bool) int {
	var completed, total int
	for _, s := range t.required {
		if !t.loaded[s] {
			if defaultPending {
				total++
			}
			continue
		}
		p := t.sections[s]
		completed += p.Completed
		total += p.Total
	}
	if total == 0 {
		return 0
	}
	return int(float64(completed)/float64(total)*100 + 0.5)
}

// Snapshot returns copies of both maps for persistence or rendering.
func (t *Tracker) Snapshot() (map[string]domain.SectionProgress, map[string]bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	sections := make(map[string]domain.SectionProgress, len(t.sections))
	for k, v := range t.sections {
		sections[k] = v
	}
	loaded := make(map[string]bool, len(t.loaded))
	for k, v := range t.loaded {
		loaded[k] = v
	}
	return sections, loaded
}

// Restore replaces the tracker state from a persisted snapshot.
func (t *Tracker) Restore(sections map[string]domain.SectionProgress, loaded map[string]bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sections = make(map[string]domain.SectionProgress, len(sections))
	for k, v := range sections {
		t.sections[k] = v
	}
	t.loaded = make(map[string]bool, len(loaded))
	for k, v := range loaded {
		t.loaded[k] = v
	}
}
