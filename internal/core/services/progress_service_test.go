package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gad-officerhub/internal/adapters/persistence/session"
	"gad-officerhub/internal/core/domain"
)

func TestProgressReportAndOverview(t *testing.T) {
	sessions := session.NewStore()
	svc := NewProgressService([]string{"personal", "education", "service"}, sessions)

	changed, err := svc.Report("s1", "personal", 2, 2)
	require.NoError(t, err)
	assert.True(t, changed)

	ov := svc.Overview("s1")
	assert.Equal(t, 50, ov.Percentage, "2 done of 2+1+1 with pending sections defaulted")
	assert.Equal(t, 0, ov.Strict, "strict stays zero until every section reports")
	assert.False(t, ov.AllLoaded)

	_, err = svc.Report("s1", "education", 1, 2)
	require.NoError(t, err)
	_, err = svc.Report("s1", "service", 0, 0)
	require.NoError(t, err)

	ov = svc.Overview("s1")
	assert.True(t, ov.AllLoaded)
	assert.Equal(t, 75, ov.Strict)
	assert.Equal(t, 75, ov.Percentage)
}

func TestProgressRepeatReportIsNoOp(t *testing.T) {
	svc := NewProgressService([]string{"personal"}, session.NewStore())

	changed, err := svc.Report("s1", "personal", 1, 3)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = svc.Report("s1", "personal", 1, 3)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestProgressSurvivesTrackerEviction(t *testing.T) {
	sessions := session.NewStore()
	svc := NewProgressService([]string{"personal", "education"}, sessions)

	_, err := svc.Report("s1", "personal", 3, 4)
	require.NoError(t, err)
	require.NoError(t, svc.MarkLoaded("s1", "education"))

	// A fresh service over the same session store restores from the
	// persisted snapshot, like a new process picking up a live session.
	restored := NewProgressService([]string{"personal", "education"}, sessions)
	sections, loaded := restored.Detail("s1")
	assert.Equal(t, 3, sections["personal"].Completed)
	assert.Equal(t, 4, sections["personal"].Total)
	assert.True(t, loaded["education"])
	assert.True(t, restored.Overview("s1").AllLoaded)
}

func TestProgressReset(t *testing.T) {
	sessions := session.NewStore()
	svc := NewProgressService([]string{"personal"}, sessions)

	_, err := svc.Report("s1", "personal", 1, 1)
	require.NoError(t, err)
	svc.Reset("s1")

	ov := svc.Overview("s1")
	assert.False(t, ov.AllLoaded)
	assert.Equal(t, 0, ov.Strict)

	var snap completionSnapshot
	ok, err := sessions.GetJSON("s1", session.KeyProfileCompletion, &snap)
	require.NoError(t, err)
	assert.False(t, ok, "persisted snapshot removed on reset")
}

func TestProgressSectionsCopy(t *testing.T) {
	svc := NewProgressService(domain.DefaultProfileSections, session.NewStore())
	got := svc.Sections()
	got[0] = "mutated"
	assert.Equal(t, "personal", svc.Sections()[0])
}
