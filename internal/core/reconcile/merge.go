// Package reconcile merges central-deputation records arriving from the
// SPARK feed with records already held in storage, tracking per field which
// source supplied the current value.
package reconcile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gad-officerhub/internal/core/domain"
)

// Merge combines the raw SPARK feed with the stored records of the same
// officer into one deduplicated list. Stored field values take precedence
// over a matched feed entry's values; unmatched records on either side
// survive untouched. Merge is pure: it never mutates its inputs and is
// deterministic for identical inputs.
func Merge(feed []domain.SparkRecord, stored []domain.StoredDeputation, lookups domain.LookupTables) domain.MergeResult {
	feedRecs := make([]domain.DeputationRecord, 0, len(feed))
	feedKeys := make(map[string]struct{})

	for i, f := range feed {
		rec := normalizeFeed(f, i, lookups)
		for _, field := range domain.DeputationFields {
			if rawFeedValue(f, field) != "" {
				feedKeys[fmt.Sprintf("%s_%d", field, i)] = struct{}{}
			}
		}
		feedRecs = append(feedRecs, rec)
	}

	backendRecs := make([]domain.DeputationRecord, 0, len(stored))
	for _, s := range stored {
		backendRecs = append(backendRecs, normalizeStored(s, lookups))
	}

	// Pair each backend record with at most one feed record. First
	// qualifying feed entry wins, in feed order.
	matchedFeed := make([]bool, len(feedRecs))
	matchedBackend := make([]bool, len(backendRecs))
	for bi := range backendRecs {
		for fi := range feedRecs {
			if matchedFeed[fi] {
				continue
			}
			if !matches(&feedRecs[fi], &backendRecs[bi]) {
				continue
			}
			mergeInto(&feedRecs[fi], stored[bi], &backendRecs[bi], lookups)
			matchedFeed[fi] = true
			matchedBackend[bi] = true
			break
		}
	}

	// Unmatched feed, then matched (merged) feed, then unmatched backend.
	out := make([]domain.DeputationRecord, 0, len(feedRecs)+len(backendRecs))
	for fi, rec := range feedRecs {
		if !matchedFeed[fi] {
			out = append(out, rec)
		}
	}
	for fi, rec := range feedRecs {
		if matchedFeed[fi] {
			out = append(out, rec)
		}
	}
	for bi, rec := range backendRecs {
		if !matchedBackend[bi] {
			out = append(out, rec)
		}
	}

	out = dedupeByID(out)

	// Most recent deputation first; unparseable dates sort as the epoch.
	sort.SliceStable(out, func(i, j int) bool {
		return parseDate(out[i].Fields[domain.FieldFromDate]).After(parseDate(out[j].Fields[domain.FieldFromDate]))
	})

	return domain.MergeResult{Records: out, FeedFieldKeys: feedKeys}
}

// Normalize resolves a single stored record into its domain form without
// running the full merge. Save paths use it to re-derive field values after
// a sub-map update.
func Normalize(s domain.StoredDeputation, lookups domain.LookupTables) domain.DeputationRecord {
	return normalizeStored(s, lookups)
}

// normalizeFeed resolves a raw feed entry's free-text lookup values to
// internal ids, keeping the raw text as display fallback when no lookup row
// matches. The record starts out wholly SPARK-sourced and unpersisted.
func normalizeFeed(f domain.SparkRecord, index int, lookups domain.LookupTables) domain.DeputationRecord {
	rec := domain.DeputationRecord{
		ID:         fmt.Sprintf("external_%d", index),
		Persisted:  false,
		Fields:     make(map[string]string, len(domain.DeputationFields)),
		Display:    make(map[string]string),
		Provenance: make(map[string]domain.ValueSource, len(domain.DeputationFields)),
	}

	rec.Fields[domain.FieldDesignation] = strings.TrimSpace(f.Designation)
	rec.Fields[domain.FieldPhoneNumber] = strings.TrimSpace(f.PhoneNumber)
	rec.Fields[domain.FieldFromDate] = strings.TrimSpace(f.FromDate)
	rec.Fields[domain.FieldToDate] = strings.TrimSpace(f.ToDate)

	resolveInto(&rec, domain.FieldStateID, f.StateName, lookups.States)
	resolveInto(&rec, domain.FieldTenureTypeID, f.TenureName, lookups.TenureTypes)
	resolveInto(&rec, domain.FieldMinistryID, f.MinistryName, lookups.Ministries)
	resolveInto(&rec, domain.FieldDepartmentID, f.DepartmentName, lookups.Departments)
	resolveInto(&rec, domain.FieldOrganisationID, f.Organisation, lookups.Organisations)
	resolveInto(&rec, domain.FieldDeputationTypeID, f.DeputationType, lookups.DeputationTypes)

	for _, field := range domain.DeputationFields {
		rec.Provenance[field] = domain.SourceSpark
	}
	rec.OverallSource = domain.SourceSpark
	return rec
}

// normalizeStored resolves a stored record's per-field value by sub-map
// priority: reviewer (gad_data), then officer (user_data), then the
// unclassified SPARK snapshot; the first hit fixes both value and tag.
func normalizeStored(s domain.StoredDeputation, lookups domain.LookupTables) domain.DeputationRecord {
	rec := domain.DeputationRecord{
		ID:         strconv.FormatUint(uint64(s.ID), 10),
		Persisted:  true,
		Fields:     make(map[string]string, len(domain.DeputationFields)),
		Display:    make(map[string]string),
		Provenance: make(map[string]domain.ValueSource, len(domain.DeputationFields)),
	}

	for _, field := range domain.DeputationFields {
		value, src, ok := storedField(s, field)
		if !ok {
			rec.Fields[field] = ""
			rec.Provenance[field] = domain.SourceUnknown
			continue
		}
		rec.Fields[field] = value
		rec.Provenance[field] = src
		if name, ok := lookupNameForField(field, value, lookups); ok {
			rec.Display[field] = name
		}
	}

	rec.OverallSource = domain.OverallSourceOf(rec.Fields, rec.Provenance)
	return rec
}

// storedField returns the stored value and provenance tag for one field,
// honoring the reviewer > officer > unclassified priority.
func storedField(s domain.StoredDeputation, field string) (string, domain.ValueSource, bool) {
	if v, ok := s.GADData[field]; ok {
		return v, domain.SourceReviewer, true
	}
	if v, ok := s.UserData[field]; ok {
		return v, domain.SourceOfficer, true
	}
	if v, ok := s.Data[field]; ok {
		return v, domain.SourceSpark, true
	}
	return "", domain.SourceUnknown, false
}

// matches reports whether a feed record and a backend record describe the
// same deputation: case-insensitive designation, equal start-date text and
// equal resolved-or-raw organisation text. Two records both lacking a start
// date are considered date-equal; a single empty side never matches.
func matches(feed, backend *domain.DeputationRecord) bool {
	if !strings.EqualFold(feed.Fields[domain.FieldDesignation], backend.Fields[domain.FieldDesignation]) {
		return false
	}
	if !dateTextEqual(feed.Fields[domain.FieldFromDate], backend.Fields[domain.FieldFromDate]) {
		return false
	}
	return strings.EqualFold(orgText(feed), orgText(backend))
}

func dateTextEqual(a, b string) bool {
	if a == "" && b == "" {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	return a == b
}

// orgText is the organisation as text: the resolved display name when known,
// the raw value otherwise.
func orgText(r *domain.DeputationRecord) string {
	if v := r.Display[domain.FieldOrganisationID]; v != "" {
		return v
	}
	return r.Fields[domain.FieldOrganisationID]
}

// mergeInto overlays the backend record onto a matched feed record in the
// output copy: every field the backend defines wins, the feed record adopts
// the backend id and its provenance map is rebuilt so that a field stays
// SPARK-tagged only when no backend sub-map defined it.
func mergeInto(feedRec *domain.DeputationRecord, s domain.StoredDeputation, backendRec *domain.DeputationRecord, lookups domain.LookupTables) {
	feedRec.ID = backendRec.ID
	feedRec.Persisted = true
	for _, field := range domain.DeputationFields {
		value, src, ok := storedField(s, field)
		if !ok {
			feedRec.Provenance[field] = domain.SourceSpark
			continue
		}
		feedRec.Fields[field] = value
		feedRec.Provenance[field] = src
		if name, ok := lookupNameForField(field, value, lookups); ok {
			feedRec.Display[field] = name
		}
	}
	feedRec.OverallSource = domain.OverallSourceOf(feedRec.Fields, feedRec.Provenance)
}

// resolveInto resolves free text against a lookup table by case-insensitive
// exact match. On a miss the id stays empty and the raw text is kept for
// display fallback; misses never error.
func resolveInto(rec *domain.DeputationRecord, field, raw string, table []domain.LookupOption) {
	raw = strings.TrimSpace(raw)
	rec.Display[field] = raw
	for _, opt := range table {
		if strings.EqualFold(opt.Name, raw) && raw != "" {
			rec.Fields[field] = strconv.FormatUint(uint64(opt.ID), 10)
			rec.Display[field] = opt.Name
			return
		}
	}
	rec.Fields[field] = ""
}

// lookupNameForField resolves a lookup id back to its display name.
func lookupNameForField(field, id string, lookups domain.LookupTables) (string, bool) {
	var table []domain.LookupOption
	switch field {
	case domain.FieldStateID:
		table = lookups.States
	case domain.FieldTenureTypeID:
		table = lookups.TenureTypes
	case domain.FieldMinistryID:
		table = lookups.Ministries
	case domain.FieldDepartmentID:
		table = lookups.Departments
	case domain.FieldOrganisationID:
		table = lookups.Organisations
	case domain.FieldDeputationTypeID:
		table = lookups.DeputationTypes
	default:
		return "", false
	}
	for _, opt := range table {
		if strconv.FormatUint(uint64(opt.ID), 10) == id {
			return opt.Name, true
		}
	}
	return "", false
}

func rawFeedValue(f domain.SparkRecord, field string) string {
	switch field {
	case domain.FieldDesignation:
		return strings.TrimSpace(f.Designation)
	case domain.FieldPhoneNumber:
		return strings.TrimSpace(f.PhoneNumber)
	case domain.FieldStateID:
		return strings.TrimSpace(f.StateName)
	case domain.FieldFromDate:
		return strings.TrimSpace(f.FromDate)
	case domain.FieldToDate:
		return strings.TrimSpace(f.ToDate)
	case domain.FieldTenureTypeID:
		return strings.TrimSpace(f.TenureName)
	case domain.FieldMinistryID:
		return strings.TrimSpace(f.MinistryName)
	case domain.FieldDepartmentID:
		return strings.TrimSpace(f.DepartmentName)
	case domain.FieldOrganisationID:
		return strings.TrimSpace(f.Organisation)
	case domain.FieldDeputationTypeID:
		return strings.TrimSpace(f.DeputationType)
	}
	return ""
}

func dedupeByID(recs []domain.DeputationRecord) []domain.DeputationRecord {
	seen := make(map[string]struct{}, len(recs))
	out := recs[:0:0]
	for _, r := range recs {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

var dateLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006"}

// parseDate turns a start-date string into a sort key; empty or unparseable
// dates behave as the epoch, i.e. the smallest value.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}
