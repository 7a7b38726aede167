package progress

import (
	"testing"

	"gad-officerhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrictPercentageZeroUntilAllSectionsReport(t *testing.T) {
	tr := NewTracker(domain.DefaultProfileSections)

	tr.Report("personal", 2, 2)
	tr.Report("education", 3, 3)
	assert.Equal(t, 0, tr.StrictPercentage(), "missing sections force 0")

	for _, s := range domain.DefaultProfileSections {
		tr.MarkLoaded(s)
	}
	assert.NotEqual(t, 0, tr.StrictPercentage())
}

func TestStrictPercentageAggregate(t *testing.T) {
	tr := NewTracker(domain.DefaultProfileSections)

	counts := [][2]int{{2, 2}, {0, 0}, {1, 3}, {5, 5}, {0, 2}, {1, 1}, {0, 0}, {0, 0}, {0, 1}}
	for i, s := range domain.DefaultProfileSections {
		tr.Report(s, counts[i][0], counts[i][1])
	}

	// round(100 * 9 / 14)
	assert.Equal(t, 64, tr.StrictPercentage())
}

func TestSectionThatNeverReportsForcesZero(t *testing.T) {
	tr := NewTracker(domain.DefaultProfileSections)

	for _, s := range domain.DefaultProfileSections[:len(domain.DefaultProfileSections)-1] {
		tr.Report(s, 5, 5)
	}

	assert.Equal(t, 0, tr.StrictPercentage())
}

func TestReportIsReferenceStableNoOp(t *testing.T) {
	tr := NewTracker(domain.DefaultProfileSections)

	assert.True(t, tr.Report("personal", 3, 3))
	sectionsBefore, _ := tr.Snapshot()

	assert.False(t, tr.Report("personal", 3, 3), "unchanged counts must not mutate state")
	sectionsAfter, _ := tr.Snapshot()
	assert.Equal(t, sectionsBefore, sectionsAfter)

	assert.True(t, tr.Report("personal", 3, 4))
}

func TestReportAlwaysMarksLoaded(t *testing.T) {
	tr := NewTracker(domain.DefaultProfileSections)

	tr.Report("training", 0, 0)
	assert.True(t, tr.Loaded("training"))

	tr.Report("training", 0, 0)
	assert.True(t, tr.Loaded("training"), "no-op report still marks loaded")
}

func TestStabilizedPercentageIsMonotonic(t *testing.T) {
	tr := NewTracker(domain.DefaultProfileSections)

	last := tr.StabilizedPercentage()
	assert.Equal(t, 0, last)

	for _, s := range domain.DefaultProfileSections {
		tr.Report(s, 1, 1)
		cur := tr.StabilizedPercentage()
		assert.GreaterOrEqual(t, cur, last, "stabilized bar never moves backwards as sections load")
		last = cur
	}
	assert.Equal(t, 100, last)
}

func TestStabilizedDefaultsPendingSectionsToOneTotal(t *testing.T) {
	tr := NewTracker([]string{"personal", "education"})

	tr.Report("personal", 1, 1)

	// personal 1/1 plus pending education defaulted to 0/1.
	assert.Equal(t, 50, tr.StabilizedPercentage())
}

func TestZeroTotalsEverywhere(t *testing.T) {
	tr := NewTracker([]string{"disability", "disciplinary"})

	tr.Report("disability", 0, 0)
	tr.Report("disciplinary", 0, 0)

	assert.Equal(t, 0, tr.StrictPercentage())
	assert.Equal(t, 0, tr.StabilizedPercentage())
}

func TestResetClearsEverything(t *testing.T) {
	tr := NewTracker(domain.DefaultProfileSections)
	for _, s := range domain.DefaultProfileSections {
		tr.Report(s, 2, 2)
	}
	require.Equal(t, 100, tr.StrictPercentage())

	tr.Reset()

	assert.Equal(t, 0, tr.StrictPercentage())
	assert.False(t, tr.Loaded("personal"))
	sections, loaded := tr.Snapshot()
	assert.Empty(t, sections)
	assert.Empty(t, loaded)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	tr := NewTracker(domain.DefaultProfileSections)
	for _, s := range domain.DefaultProfileSections {
		tr.Report(s, 1, 2)
	}
	sections, loaded := tr.Snapshot()

	restored := NewTracker(domain.DefaultProfileSections)
	restored.Restore(sections, loaded)

	assert.Equal(t, tr.StrictPercentage(), restored.StrictPercentage())
	assert.Equal(t, tr.StabilizedPercentage(), restored.StabilizedPercentage())
}
