package services

import (
	"sync"

	"gad-officerhub/internal/adapters/persistence/session"
	"gad-officerhub/internal/core/domain"
	"gad-officerhub/internal/core/progress"
)

// completionSnapshot is the JSON document persisted per session under the
// profile-completion key.
type completionSnapshot struct {
	Sections map[string]domain.SectionProgress `json:"sections"`
	Loaded   map[string]bool                   `json:"loaded"`
}

// ProgressOverview is what the overall-progress endpoint returns. Percentage
// is the stabilized figure; Strict only becomes non-zero once every required
// section has reported.
type ProgressOverview struct {
	Percentage int  `json:"percentage"`
	Strict     int  `json:"strict_percentage"`
	AllLoaded  bool `json:"all_loaded"`
}

// ProgressService keeps one completion tracker per session, persisting every
// state change back to the session store so a reopened tab resumes where the
// profile load left off.
type ProgressService struct {
	mu       sync.Mutex
	trackers map[string]*progress.Tracker
	required []string
	sessions *session.Store
}

// NewProgressService creates the service over the configured required-section
// list.
func NewProgressService(required []string, sessions *session.Store) *ProgressService {
	return &ProgressService{
		trackers: make(map[string]*progress.Tracker),
		required: required,
		sessions: sessions,
	}
}

// Sections returns the required-section list the service tracks against.
func (s *ProgressService) Sections() []string {
	out := make([]string, len(s.required))
	copy(out, s.required)
	return out
}

// Report records one section's counts. It returns false when the report was
// a no-op (identical counts), in which case nothing was persisted.
func (s *ProgressService) Report(sessionID, section string, completed, total int) (bool, error) {
	t := s.trackerFor(sessionID)
	changed := t.Report(section, completed, total)
	// A first-time report with unchanged zero counts still flips the loaded
	// flag, so persist whenever the section was not loaded before too.
	return changed, s.persist(sessionID, t)
}

// MarkLoaded flags a section loaded without counts.
func (s *ProgressService) MarkLoaded(sessionID, section string) error {
	t := s.trackerFor(sessionID)
	t.MarkLoaded(section)
	return s.persist(sessionID, t)
}

// Overview returns the session's overall completion figures.
func (s *ProgressService) Overview(sessionID string) ProgressOverview {
	t := s.trackerFor(sessionID)
	return ProgressOverview{
		Percentage: t.StabilizedPercentage(),
		Strict:     t.StrictPercentage(),
		AllLoaded:  t.AllLoaded(),
	}
}

// Detail returns the per-section state for the progress breakdown endpoint.
func (s *ProgressService) Detail(sessionID string) (map[string]domain.SectionProgress, map[string]bool) {
	return s.trackerFor(sessionID).Snapshot()
}

// Reset drops the session's completion state, both live and persisted.
func (s *ProgressService) Reset(sessionID string) {
	s.mu.Lock()
	delete(s.trackers, sessionID)
	s.mu.Unlock()
	s.sessions.Delete(sessionID, session.KeyProfileCompletion)
}

// trackerFor returns the session's tracker, restoring persisted state the
// first time a session shows up after a restart or eviction.
func (s *ProgressService) trackerFor(sessionID string) *progress.Tracker {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.trackers[sessionID]; ok {
		return t
	}
	t := progress.NewTracker(s.required)
	var snap completionSnapshot
	if ok, err := s.sessions.GetJSON(sessionID, session.KeyProfileCompletion, &snap); ok && err == nil {
		t.Restore(snap.Sections, snap.Loaded)
	}
	s.trackers[sessionID] = t
	return t
}

func (s *ProgressService) persist(sessionID string, t *progress.Tracker) error {
	sections, loaded := t.Snapshot()
	return s.sessions.SetJSON(sessionID, session.KeyProfileCompletion, completionSnapshot{
		Sections: sections,
		Loaded:   loaded,
	})
}
