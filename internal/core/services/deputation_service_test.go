package services

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gad-officerhub/internal/adapters/persistence/models"
	"gad-officerhub/internal/adapters/persistence/session"
	"gad-officerhub/internal/core/domain"
)

type fakeDeputationStore struct {
	rows   map[uint]*models.CentralDeputation
	nextID uint
}

func newFakeDeputationStore() *fakeDeputationStore {
	return &fakeDeputationStore{rows: make(map[uint]*models.CentralDeputation), nextID: 1}
}

func (f *fakeDeputationStore) Create(_ context.Context, d *models.CentralDeputation) error {
	d.ID = f.nextID
	f.nextID++
	cp := *d
	f.rows[d.ID] = &cp
	return nil
}

func (f *fakeDeputationStore) GetByID(_ context.Context, id uint) (*models.CentralDeputation, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeDeputationStore) ListByOfficer(_ context.Context, officerID uint) ([]*models.CentralDeputation, error) {
	var out []*models.CentralDeputation
	for _, r := range f.rows {
		if r.OfficerID == officerID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDeputationStore) Update(_ context.Context, d *models.CentralDeputation) error {
	if _, ok := f.rows[d.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *d
	f.rows[d.ID] = &cp
	return nil
}

func (f *fakeDeputationStore) Delete(_ context.Context, id uint) error {
	delete(f.rows, id)
	return nil
}

type fakeFeed struct {
	rows []*models.SparkDeputation
}

func (f *fakeFeed) ListByOfficer(_ context.Context, officerID uint) ([]*models.SparkDeputation, error) {
	var out []*models.SparkDeputation
	for _, r := range f.rows {
		if r.OfficerID == officerID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeLookups struct {
	tables domain.LookupTables
}

func (f *fakeLookups) Tables(_ context.Context) (domain.LookupTables, error) {
	return f.tables, nil
}

func serviceUnderTest(store *fakeDeputationStore, feed *fakeFeed) (*DeputationService, *session.Store) {
	sessions := session.NewStore()
	lookups := &fakeLookups{tables: domain.LookupTables{
		Organisations: []domain.LookupOption{{ID: 7, Name: "Cabinet Secretariat"}},
		Ministries:    []domain.LookupOption{{ID: 3, Name: "Ministry of Home Affairs"}},
	}}
	return NewDeputationService(store, feed, lookups, sessions), sessions
}

func officerSession() domain.SessionContext {
	return domain.SessionContext{SessionID: "sess-1", UserID: 7, OfficerUserID: 7, Role: domain.RoleOfficer}
}

func clerkSession() domain.SessionContext {
	return domain.SessionContext{SessionID: "sess-2", UserID: 11, OfficerUserID: 7, Role: domain.RoleClerk}
}

func strPtr(s string) *string { return &s }

func TestSaveCreatesOfficerRecord(t *testing.T) {
	store := newFakeDeputationStore()
	svc, _ := serviceUnderTest(store, &fakeFeed{})

	rec, err := svc.Save(context.Background(), officerSession(), 7, "", SaveDeputationInput{
		UserData: map[string]*string{
			domain.FieldDesignation: strPtr("Director"),
			domain.FieldFromDate:    strPtr("2023-01-01"),
		},
	})
	require.NoError(t, err)

	assert.True(t, rec.Persisted)
	assert.Equal(t, "1", rec.ID)
	assert.Equal(t, "Director", rec.Fields[domain.FieldDesignation])
	assert.Equal(t, domain.SourceOfficer, rec.Provenance[domain.FieldDesignation])
	assert.Equal(t, domain.SourceOfficer, rec.Provenance[domain.FieldFromDate])

	row := store.rows[1]
	require.NotNil(t, row)
	assert.Equal(t, uint(7), row.OfficerID)
	assert.Equal(t, "Director", row.UserData[domain.FieldDesignation])
	assert.Empty(t, row.GADData)
}

func TestSaveClerkEditsLandInReviewerSubMap(t *testing.T) {
	store := newFakeDeputationStore()
	svc, _ := serviceUnderTest(store, &fakeFeed{})

	rec, err := svc.Save(context.Background(), clerkSession(), 7, "", SaveDeputationInput{
		UserData: map[string]*string{domain.FieldPhoneNumber: strPtr("9876543210")},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SourceReviewer, rec.Provenance[domain.FieldPhoneNumber])
	row := store.rows[1]
	assert.Equal(t, "9876543210", row.GADData[domain.FieldPhoneNumber])
	assert.Empty(t, row.UserData)
}

func TestSaveNullClearsField(t *testing.T) {
	store := newFakeDeputationStore()
	store.rows[4] = &models.CentralDeputation{
		ID:        4,
		OfficerID: 7,
		UserData:  datatypes.JSONMap{domain.FieldDesignation: "Old Title"},
		SparkData: datatypes.JSONMap{domain.FieldDesignation: "Feed Title"},
	}
	store.nextID = 5
	svc, _ := serviceUnderTest(store, &fakeFeed{})

	rec, err := svc.Save(context.Background(), officerSession(), 7, "4", SaveDeputationInput{
		UserData: map[string]*string{domain.FieldDesignation: nil},
	})
	require.NoError(t, err)

	row := store.rows[4]
	_, hasKey := row.UserData[domain.FieldDesignation]
	assert.False(t, hasKey, "cleared key must leave the officer sub-map")
	// The feed snapshot becomes visible again once the override is gone.
	assert.Equal(t, "Feed Title", rec.Fields[domain.FieldDesignation])
	assert.Equal(t, domain.SourceSpark, rec.Provenance[domain.FieldDesignation])
}

func TestSaveRejectsUnknownField(t *testing.T) {
	svc, _ := serviceUnderTest(newFakeDeputationStore(), &fakeFeed{})

	_, err := svc.Save(context.Background(), officerSession(), 7, "", SaveDeputationInput{
		UserData: map[string]*string{"shoe_size": strPtr("44")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveRejectsForeignRecord(t *testing.T) {
	store := newFakeDeputationStore()
	store.rows[9] = &models.CentralDeputation{ID: 9, OfficerID: 99}
	svc, _ := serviceUnderTest(store, &fakeFeed{})

	_, err := svc.Save(context.Background(), officerSession(), 7, "9", SaveDeputationInput{
		UserData: map[string]*string{domain.FieldDesignation: strPtr("X")},
	})
	assert.ErrorIs(t, err, domain.ErrDeputationNotFound)
}

func TestListMergesFeedAndRefreshesCache(t *testing.T) {
	store := newFakeDeputationStore()
	store.rows[2] = &models.CentralDeputation{
		ID:        2,
		OfficerID: 7,
		UserData: datatypes.JSONMap{
			domain.FieldDesignation: "Deputy Secretary",
			domain.FieldFromDate:    "2022-04-01",
		},
	}
	store.nextID = 3
	feed := &fakeFeed{rows: []*models.SparkDeputation{
		{
			ID: 100, OfficerID: 7,
			Designation:  "deputy secretary",
			FromDate:     "2022-04-01",
			Organisation: "Cabinet Secretariat",
		},
		{
			ID: 101, OfficerID: 7,
			Designation: "Under Secretary",
			FromDate:    "2019-06-15",
		},
	}}
	svc, sessions := serviceUnderTest(store, feed)
	sess := officerSession()

	result, err := svc.List(context.Background(), sess, 7)
	require.NoError(t, err)
	require.Len(t, result.Records, 2, "matched pair must collapse into one record")

	// Matched record adopts the backend id and the backend value wins.
	var merged *domain.DeputationRecord
	for i := range result.Records {
		if result.Records[i].ID == "2" {
			merged = &result.Records[i]
		}
	}
	require.NotNil(t, merged)
	assert.Equal(t, "Deputy Secretary", merged.Fields[domain.FieldDesignation])
	assert.Equal(t, domain.SourceOfficer, merged.Provenance[domain.FieldDesignation])

	var cached []domain.DeputationRecord
	ok, err := sessions.GetJSON(sess.SessionID, session.KeyDeputationDetails, &cached)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, cached, 2)

	var profile map[string][]domain.DeputationRecord
	ok, err = sessions.GetJSON(sess.SessionID, session.KeyProfileData, &profile)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, profile["central_deputation"], 2, "derived view must mirror the list")
}

func TestDeleteExternalRecordOnlyTouchesCache(t *testing.T) {
	store := newFakeDeputationStore()
	feed := &fakeFeed{rows: []*models.SparkDeputation{
		{ID: 100, OfficerID: 7, Designation: "Under Secretary", FromDate: "2019-06-15"},
	}}
	svc, sessions := serviceUnderTest(store, feed)
	sess := officerSession()

	_, err := svc.List(context.Background(), sess, 7)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), sess, 7, "external_0"))

	var cached []domain.DeputationRecord
	ok, err := sessions.GetJSON(sess.SessionID, session.KeyDeputationDetails, &cached)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, cached)
	assert.Empty(t, store.rows, "feed-only deletes never reach the database")
}

func TestDeleteStoredRecord(t *testing.T) {
	store := newFakeDeputationStore()
	store.rows[5] = &models.CentralDeputation{
		ID: 5, OfficerID: 7,
		UserData: datatypes.JSONMap{domain.FieldDesignation: "Director"},
	}
	store.nextID = 6
	svc, sessions := serviceUnderTest(store, &fakeFeed{})
	sess := officerSession()

	require.NoError(t, svc.Delete(context.Background(), sess, 7, "5"))

	assert.NotContains(t, store.rows, uint(5))
	var cached []domain.DeputationRecord
	ok, err := sessions.GetJSON(sess.SessionID, session.KeyDeputationDetails, &cached)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, cached)
}

func TestDeleteMissingStoredRecord(t *testing.T) {
	svc, _ := serviceUnderTest(newFakeDeputationStore(), &fakeFeed{})
	err := svc.Delete(context.Background(), officerSession(), 7, "42")
	assert.ErrorIs(t, err, domain.ErrDeputationNotFound)
}
