package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gad-officerhub/internal/adapters/persistence/models"
	"gad-officerhub/internal/adapters/persistence/session"
	"gad-officerhub/internal/core/domain"
	"gad-officerhub/internal/core/reconcile"
)

// SaveDeputationInput is the create/update payload. UserData carries the
// editor's field changes; a present key with a null value clears that field
// from the editor's sub-map. SparkData, when present, replaces the feed
// snapshot captured on the record.
type SaveDeputationInput struct {
	SparkData map[string]interface{} `json:"spark_data"`
	UserData  map[string]*string     `json:"user_data"`
}

// DeputationService owns the central-deputation flows: listing the merged
// feed+stored view, role-split saves and deletes. It keeps the session cache
// (the deputation list and the derived profile view) refreshed from the same
// merge result, so the two can never disagree.
type DeputationService struct {
	deputations DeputationStore
	feed        SparkFeed
	lookups     LookupProvider
	sessions    *session.Store
}

// NewDeputationService creates the deputation service.
func NewDeputationService(deputations DeputationStore, feed SparkFeed, lookups LookupProvider, sessions *session.Store) *DeputationService {
	return &DeputationService{
		deputations: deputations,
		feed:        feed,
		lookups:     lookups,
		sessions:    sessions,
	}
}

// List merges the officer's SPARK feed entries with their stored records and
// refreshes the session cache from the result.
func (s *DeputationService) List(ctx context.Context, sess domain.SessionContext, officerID uint) (domain.MergeResult, error) {
	result, err := s.merged(ctx, officerID)
	if err != nil {
		return domain.MergeResult{}, err
	}
	if err := s.cacheResult(sess, result); err != nil {
		return domain.MergeResult{}, err
	}
	return result, nil
}

// Save creates or updates one deputation record. Edits land in the sub-map
// of the editing role: user_data for officers, gad_data for clerks and
// admins. Saving a feed-only record (external id or no id) persists it as a
// new row.
func (s *DeputationService) Save(ctx context.Context, sess domain.SessionContext, officerID uint, recordID string, in SaveDeputationInput) (domain.DeputationRecord, error) {
	for field := range in.UserData {
		if !knownField(field) {
			return domain.DeputationRecord{}, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidInput, field)
		}
	}

	lookups, err := s.lookups.Tables(ctx)
	if err != nil {
		return domain.DeputationRecord{}, err
	}

	var model *models.CentralDeputation
	prior := map[string]domain.ValueSource{}
	switch {
	case recordID == "" || strings.HasPrefix(recordID, "external_"):
		model = &models.CentralDeputation{OfficerID: officerID}
	default:
		id, convErr := strconv.ParseUint(recordID, 10, 32)
		if convErr != nil {
			return domain.DeputationRecord{}, fmt.Errorf("%w: bad record id %q", domain.ErrInvalidInput, recordID)
		}
		model, err = s.deputations.GetByID(ctx, uint(id))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DeputationRecord{}, domain.ErrDeputationNotFound
		}
		if err != nil {
			return domain.DeputationRecord{}, err
		}
		if model.OfficerID != officerID {
			return domain.DeputationRecord{}, domain.ErrDeputationNotFound
		}
		prior = reconcile.Normalize(model.ToStored(), lookups).Provenance
	}

	if in.SparkData != nil {
		model.SparkData = datatypes.JSONMap(in.SparkData)
	}
	applyEdits(model, sess.EditingSource(), in.UserData)

	if model.ID == 0 {
		err = s.deputations.Create(ctx, model)
	} else {
		err = s.deputations.Update(ctx, model)
	}
	if err != nil {
		return domain.DeputationRecord{}, err
	}

	saved := reconcile.Normalize(model.ToStored(), lookups)
	prov, overall := reconcile.Reclassify(prior, in.UserData, saved.Fields, sess.EditingSource())
	saved.Provenance = prov
	saved.OverallSource = overall

	if err := s.refreshCache(ctx, sess, officerID); err != nil {
		return domain.DeputationRecord{}, err
	}
	return saved, nil
}

// Delete removes one record. Feed-only records (external ids) exist nowhere
// but the merged view, so deleting one only drops it from the session cache;
// stored records are removed from the database.
func (s *DeputationService) Delete(ctx context.Context, sess domain.SessionContext, officerID uint, recordID string) error {
	if strings.HasPrefix(recordID, "external_") {
		s.dropCached(sess, recordID)
		return nil
	}

	id, err := strconv.ParseUint(recordID, 10, 32)
	if err != nil {
		return fmt.Errorf("%w: bad record id %q", domain.ErrInvalidInput, recordID)
	}
	model, err := s.deputations.GetByID(ctx, uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrDeputationNotFound
	}
	if err != nil {
		return err
	}
	if model.OfficerID != officerID {
		return domain.ErrDeputationNotFound
	}
	if err := s.deputations.Delete(ctx, model.ID); err != nil {
		return err
	}
	return s.refreshCache(ctx, sess, officerID)
}

// merged loads both sides and runs the merge.
func (s *DeputationService) merged(ctx context.Context, officerID uint) (domain.MergeResult, error) {
	lookups, err := s.lookups.Tables(ctx)
	if err != nil {
		return domain.MergeResult{}, err
	}

	feedRows, err := s.feed.ListByOfficer(ctx, officerID)
	if err != nil {
		return domain.MergeResult{}, fmt.Errorf("load spark feed: %w", err)
	}
	feed := make([]domain.SparkRecord, 0, len(feedRows))
	for _, row := range feedRows {
		feed = append(feed, row.ToRecord())
	}

	storedRows, err := s.deputations.ListByOfficer(ctx, officerID)
	if err != nil {
		return domain.MergeResult{}, fmt.Errorf("load deputations: %w", err)
	}
	stored := make([]domain.StoredDeputation, 0, len(storedRows))
	for _, row := range storedRows {
		stored = append(stored, row.ToStored())
	}

	return reconcile.Merge(feed, stored, lookups), nil
}

func (s *DeputationService) refreshCache(ctx context.Context, sess domain.SessionContext, officerID uint) error {
	result, err := s.merged(ctx, officerID)
	if err != nil {
		return err
	}
	return s.cacheResult(sess, result)
}

// cacheResult writes the deputation list and the derived profile view from
// one merge result. Both keys always come from the same result.
func (s *DeputationService) cacheResult(sess domain.SessionContext, result domain.MergeResult) error {
	if err := s.sessions.SetJSON(sess.SessionID, session.KeyDeputationDetails, result.Records); err != nil {
		return err
	}
	profileData := map[string]interface{}{
		"central_deputation": result.Records,
	}
	return s.sessions.SetJSON(sess.SessionID, session.KeyProfileData, profileData)
}

// dropCached removes a feed-only record from both cached documents.
func (s *DeputationService) dropCached(sess domain.SessionContext, recordID string) {
	var cached []domain.DeputationRecord
	ok, err := s.sessions.GetJSON(sess.SessionID, session.KeyDeputationDetails, &cached)
	if !ok || err != nil {
		return
	}
	kept := cached[:0]
	for _, rec := range cached {
		if rec.ID != recordID {
			kept = append(kept, rec)
		}
	}
	// Errors here only mean a stale cache; the next List rebuilds it.
	_ = s.sessions.SetJSON(sess.SessionID, session.KeyDeputationDetails, kept)
	_ = s.sessions.SetJSON(sess.SessionID, session.KeyProfileData, map[string]interface{}{
		"central_deputation": kept,
	})
}

// applyEdits writes the editor's changes into the sub-map their role owns.
func applyEdits(model *models.CentralDeputation, role domain.ValueSource, edits map[string]*string) {
	var target datatypes.JSONMap
	if role == domain.SourceOfficer {
		if model.UserData == nil {
			model.UserData = datatypes.JSONMap{}
		}
		target = model.UserData
	} else {
		if model.GADData == nil {
			model.GADData = datatypes.JSONMap{}
		}
		target = model.GADData
	}
	for field, value := range edits {
		if value == nil {
			delete(target, field)
			continue
		}
		target[field] = *value
	}
}

func knownField(field string) bool {
	for _, f := range domain.DeputationFields {
		if f == field {
			return true
		}
	}
	return false
}
