package reconcile

import (
	"fmt"
	"testing"

	"gad-officerhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLookups() domain.LookupTables {
	return domain.LookupTables{
		States:          []domain.LookupOption{{ID: 1, Name: "Kerala"}, {ID: 2, Name: "Delhi"}},
		TenureTypes:     []domain.LookupOption{{ID: 1, Name: "Fixed"}, {ID: 2, Name: "Extendable"}},
		Ministries:      []domain.LookupOption{{ID: 1, Name: "Ministry of Finance"}},
		Departments:     []domain.LookupOption{{ID: 1, Name: "Department of Expenditure"}},
		Organisations:   []domain.LookupOption{{ID: 7, Name: "Cabinet Secretariat"}},
		DeputationTypes: []domain.LookupOption{{ID: 1, Name: "Central"}},
	}
}

func feedEntry(designation, fromDate, org string) domain.SparkRecord {
	return domain.SparkRecord{
		Designation:  designation,
		FromDate:     fromDate,
		Organisation: org,
	}
}

func TestMergeMatchedPairAdoptsBackendID(t *testing.T) {
	feed := []domain.SparkRecord{
		feedEntry("Joint Secretary", "2020-01-01", "Cabinet Secretariat"),
	}
	stored := []domain.StoredDeputation{
		{
			ID:       42,
			UserData: map[string]string{domain.FieldDesignation: "Joint Secretary", domain.FieldPhoneNumber: "9400000000"},
			Data:     map[string]string{domain.FieldFromDate: "2020-01-01", domain.FieldOrganisationID: "7"},
		},
	}

	result := Merge(feed, stored, testLookups())

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "42", rec.ID)
	assert.True(t, rec.Persisted)
	assert.Equal(t, "9400000000", rec.Fields[domain.FieldPhoneNumber], "backend-defined field wins")
	assert.Equal(t, domain.SourceOfficer, rec.Provenance[domain.FieldDesignation])
	assert.Equal(t, domain.SourceSpark, rec.Provenance[domain.FieldFromDate])
	assert.Equal(t, domain.SourceSpark, rec.Provenance[domain.FieldStateID], "field no sub-map defined stays feed-sourced")
}

func TestMergeUnmatchedRecordsSurviveUnmodified(t *testing.T) {
	feed := []domain.SparkRecord{
		feedEntry("Deputy Secretary", "2018-05-01", "Cabinet Secretariat"),
	}
	stored := []domain.StoredDeputation{
		{
			ID:       9,
			UserData: map[string]string{domain.FieldDesignation: "Director", domain.FieldFromDate: "2021-02-01"},
		},
	}

	result := Merge(feed, stored, testLookups())

	require.Len(t, result.Records, 2)
	byID := map[string]domain.DeputationRecord{}
	for _, r := range result.Records {
		byID[r.ID] = r
	}

	feedRec, ok := byID["external_0"]
	require.True(t, ok, "unmatched feed record kept with synthetic id")
	assert.False(t, feedRec.Persisted)
	assert.Equal(t, domain.SourceSpark, feedRec.OverallSource)

	backendRec, ok := byID["9"]
	require.True(t, ok, "unmatched backend record kept")
	assert.True(t, backendRec.Persisted)
	assert.Equal(t, "Director", backendRec.Fields[domain.FieldDesignation])
}

func TestMergeIsPureAndIdempotent(t *testing.T) {
	feed := []domain.SparkRecord{
		feedEntry("Joint Secretary", "2020-01-01", "Cabinet Secretariat"),
		feedEntry("Director", "", "Unknown Body"),
	}
	stored := []domain.StoredDeputation{
		{
			ID:      3,
			GADData: map[string]string{domain.FieldFromDate: "2020-01-01"},
			UserData: map[string]string{
				domain.FieldDesignation:    "Joint Secretary",
				domain.FieldOrganisationID: "7",
			},
		},
	}

	first := Merge(feed, stored, testLookups())
	second := Merge(feed, stored, testLookups())

	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, first.FeedFieldKeys, second.FeedFieldKeys)

	// Inputs untouched.
	assert.Equal(t, "Joint Secretary", feed[0].Designation)
	assert.Equal(t, map[string]string{domain.FieldFromDate: "2020-01-01"}, stored[0].GADData)
}

func TestMergeSortsByStartDateDescending(t *testing.T) {
	feed := []domain.SparkRecord{
		feedEntry("A", "2019-03-01", "Cabinet Secretariat"),
		feedEntry("B", "2023-07-15", "Cabinet Secretariat"),
		feedEntry("C", "not-a-date", "Cabinet Secretariat"),
		feedEntry("D", "2021-01-01", "Cabinet Secretariat"),
	}

	result := Merge(feed, nil, testLookups())

	require.Len(t, result.Records, 4)
	var order []string
	for _, r := range result.Records {
		order = append(order, r.Fields[domain.FieldDesignation])
	}
	assert.Equal(t, []string{"B", "D", "A", "C"}, order, "unparseable date sorts last")
}

func TestMergeEmptyDateMatching(t *testing.T) {
	lookups := testLookups()

	// One side empty: never a match.
	feed := []domain.SparkRecord{feedEntry("Director", "", "Cabinet Secretariat")}
	stored := []domain.StoredDeputation{
		{
			ID: 5,
			UserData: map[string]string{
				domain.FieldDesignation:    "Director",
				domain.FieldFromDate:       "2020-01-01",
				domain.FieldOrganisationID: "7",
			},
		},
	}
	result := Merge(feed, stored, lookups)
	assert.Len(t, result.Records, 2, "empty vs non-empty start date must not match")

	// Both sides empty: treated as date-equal and merged.
	stored[0].UserData[domain.FieldFromDate] = ""
	result = Merge(feed, stored, lookups)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "5", result.Records[0].ID)
}

func TestMergeReconciliationScenario(t *testing.T) {
	// Feed entry plus a stored record holding a reviewer-sourced start date
	// and an officer-sourced designation against the same organisation.
	feed := []domain.SparkRecord{
		feedEntry("Joint Secretary", "2020-01-01", "Cabinet Secretariat"),
	}
	stored := []domain.StoredDeputation{
		{
			ID:      11,
			GADData: map[string]string{domain.FieldFromDate: "2020-01-01"},
			UserData: map[string]string{
				domain.FieldDesignation:    "Joint Secretary",
				domain.FieldOrganisationID: "7",
			},
		},
	}

	result := Merge(feed, stored, testLookups())

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.True(t, rec.Persisted)
	assert.Equal(t, domain.SourceOfficer, rec.Provenance[domain.FieldDesignation])
	assert.Equal(t, domain.SourceReviewer, rec.Provenance[domain.FieldFromDate])
	assert.Equal(t, domain.SourceMixed, rec.OverallSource)
}

func TestMergeUnresolvableOrganisationKeptForDisplay(t *testing.T) {
	feed := []domain.SparkRecord{
		feedEntry("Director", "2020-01-01", "Directorate of Obscure Affairs"),
	}

	result := Merge(feed, nil, testLookups())

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Empty(t, rec.Fields[domain.FieldOrganisationID])
	assert.Equal(t, "Directorate of Obscure Affairs", rec.Display[domain.FieldOrganisationID])
	assert.Equal(t, "Directorate of Obscure Affairs", rec.DisplayValue(domain.FieldOrganisationID))
	assert.Equal(t, "N/A", rec.DisplayValue(domain.FieldStateID))
}

func TestMergeFeedFieldKeys(t *testing.T) {
	feed := []domain.SparkRecord{
		{Designation: "Director", FromDate: "2020-01-01"},
		{Organisation: "Cabinet Secretariat"},
	}

	result := Merge(feed, nil, testLookups())

	_, ok := result.FeedFieldKeys[fmt.Sprintf("%s_0", domain.FieldDesignation)]
	assert.True(t, ok)
	_, ok = result.FeedFieldKeys[fmt.Sprintf("%s_1", domain.FieldOrganisationID)]
	assert.True(t, ok)
	_, ok = result.FeedFieldKeys[fmt.Sprintf("%s_0", domain.FieldPhoneNumber)]
	assert.False(t, ok, "empty raw values produce no key")
}

func TestMergeFirstFeedRecordWinsAndDedupes(t *testing.T) {
	// Two identical feed entries qualify for the same backend record; only
	// the first merges, the second survives as a plain feed record.
	feed := []domain.SparkRecord{
		feedEntry("Joint Secretary", "2020-01-01", "Cabinet Secretariat"),
		feedEntry("Joint Secretary", "2020-01-01", "Cabinet Secretariat"),
	}
	stored := []domain.StoredDeputation{
		{
			ID: 4,
			UserData: map[string]string{
				domain.FieldDesignation:    "Joint Secretary",
				domain.FieldFromDate:       "2020-01-01",
				domain.FieldOrganisationID: "7",
			},
		},
	}

	result := Merge(feed, stored, testLookups())

	require.Len(t, result.Records, 2)
	ids := map[string]int{}
	for _, r := range result.Records {
		ids[r.ID]++
	}
	assert.Equal(t, 1, ids["4"])
	assert.Equal(t, 1, ids["external_1"])
}

func TestMergeProvenanceKeysMatchDomainFields(t *testing.T) {
	feed := []domain.SparkRecord{feedEntry("Director", "2020-01-01", "Cabinet Secretariat")}
	stored := []domain.StoredDeputation{{ID: 2}}

	result := Merge(feed, stored, testLookups())

	for _, rec := range result.Records {
		assert.Len(t, rec.Provenance, len(domain.DeputationFields))
		for _, f := range domain.DeputationFields {
			_, ok := rec.Provenance[f]
			assert.True(t, ok, "provenance must carry %s", f)
		}
	}
}
