package reconcile

import (
	"testing"

	"gad-officerhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestReclassifyEditedFieldsAdoptEditingRole(t *testing.T) {
	prior := map[string]domain.ValueSource{
		domain.FieldDesignation: domain.SourceSpark,
		domain.FieldPhoneNumber: domain.SourceReviewer,
	}
	edited := map[string]*string{
		domain.FieldDesignation: strPtr("Joint Secretary"),
	}
	saved := map[string]string{
		domain.FieldDesignation: "Joint Secretary",
		domain.FieldPhoneNumber: "9400000000",
	}

	prov, overall := Reclassify(prior, edited, saved, domain.SourceOfficer)

	assert.Equal(t, domain.SourceOfficer, prov[domain.FieldDesignation])
	assert.Equal(t, domain.SourceReviewer, prov[domain.FieldPhoneNumber], "untouched field keeps prior source")
	assert.Equal(t, domain.SourceMixed, overall)
}

func TestReclassifyNilEditedValueDoesNotReassign(t *testing.T) {
	prior := map[string]domain.ValueSource{domain.FieldDesignation: domain.SourceSpark}
	edited := map[string]*string{domain.FieldDesignation: nil}
	saved := map[string]string{domain.FieldDesignation: "Director"}

	prov, overall := Reclassify(prior, edited, saved, domain.SourceReviewer)

	assert.Equal(t, domain.SourceSpark, prov[domain.FieldDesignation])
	assert.Equal(t, domain.SourceSpark, overall)
}

func TestReclassifyFallsBackToFeedForUnattributedValues(t *testing.T) {
	// New record: no prior provenance, the save response still returned a
	// value the user never explicitly edited.
	saved := map[string]string{domain.FieldStateID: "2"}

	prov, overall := Reclassify(nil, nil, saved, domain.SourceOfficer)

	assert.Equal(t, domain.SourceSpark, prov[domain.FieldStateID])
	assert.Equal(t, domain.SourceUnknown, prov[domain.FieldDesignation])
	assert.Equal(t, domain.SourceSpark, overall)
}

func TestReclassifyUniformEditsYieldSingleOverallSource(t *testing.T) {
	edited := map[string]*string{
		domain.FieldDesignation: strPtr("Director"),
		domain.FieldPhoneNumber: strPtr("9400000000"),
	}
	saved := map[string]string{
		domain.FieldDesignation: "Director",
		domain.FieldPhoneNumber: "9400000000",
	}

	_, overall := Reclassify(nil, edited, saved, domain.SourceReviewer)

	assert.Equal(t, domain.SourceReviewer, overall)
}
