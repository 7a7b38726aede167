package domain

import "time"

// ============================================================
// Field provenance
// ============================================================

// ValueSource identifies which actor last supplied a field value.
type ValueSource string

const (
	SourceSpark    ValueSource = "SPARK"       // external feed
	SourceOfficer  ValueSource = "OFFICER"     // the officer editing their own profile
	SourceReviewer ValueSource = "GAD_OFFICER" // administrative reviewer override
	SourceUnknown  ValueSource = "UNKNOWN"
	SourceMixed    ValueSource = "MIXED"
)

// Domain field keys of a central-deputation record. The provenance map of
// every record carries exactly these keys.
const (
	FieldDesignation      = "designation"
	FieldPhoneNumber      = "phone_number"
	FieldStateID          = "state_id"
	FieldFromDate         = "from_date"
	FieldToDate           = "to_date"
	FieldTenureTypeID     = "tenure_type_id"
	FieldMinistryID       = "ministry_id"
	FieldDepartmentID     = "department_id"
	FieldOrganisationID   = "organisation_id"
	FieldDeputationTypeID = "deputation_type_id"
)

// DeputationFields lists all domain fields in canonical order.
var DeputationFields = []string{
	FieldDesignation,
	FieldPhoneNumber,
	FieldStateID,
	FieldFromDate,
	FieldToDate,
	FieldTenureTypeID,
	FieldMinistryID,
	FieldDepartmentID,
	FieldOrganisationID,
	FieldDeputationTypeID,
}

// LookupFields are the fields whose values reference a lookup table and need
// free-text resolution when they arrive from the SPARK feed.
var LookupFields = []string{
	FieldStateID,
	FieldTenureTypeID,
	FieldMinistryID,
	FieldDepartmentID,
	FieldOrganisationID,
	FieldDeputationTypeID,
}

// DeputationRecord is the reconciled central-deputation entity. Fields holds
// the current value per domain field (lookup ids for reference fields, raw
// text otherwise). Display holds the free-text fallback for lookup fields
// whose id could not be resolved. OverallSource is always derived from the
// provenance map, never stored.
type DeputationRecord struct {
	ID            string                 `json:"id"`
	Persisted     bool                   `json:"persisted"`
	Fields        map[string]string      `json:"fields"`
	Display       map[string]string      `json:"display"`
	Provenance    map[string]ValueSource `json:"provenance"`
	OverallSource ValueSource            `json:"overall_source"`
}

// DisplayValue returns the human-readable fallback for a lookup field,
// degrading to "N/A" when neither an id nor raw text is known.
func (r *DeputationRecord) DisplayValue(field string) string {
	if v := r.Display[field]; v != "" {
		return v
	}
	if v := r.Fields[field]; v != "" {
		return v
	}
	return "N/A"
}

// OverallSourceOf derives the overall source from a provenance map: the
// shared tag when every populated field agrees, MIXED otherwise and UNKNOWN
// when nothing is populated.
func OverallSourceOf(fields map[string]string, prov map[string]ValueSource) ValueSource {
	overall := SourceUnknown
	for _, f := range DeputationFields {
		if fields[f] == "" {
			continue
		}
		src := prov[f]
		if src == "" || src == SourceUnknown {
			continue
		}
		if overall == SourceUnknown {
			overall = src
		} else if overall != src {
			return SourceMixed
		}
	}
	return overall
}

// SparkRecord is one raw entry of the external SPARK feed, all values
// free text exactly as supplied upstream.
type SparkRecord struct {
	Designation    string `json:"designation"`
	PhoneNumber    string `json:"phone_number"`
	StateName      string `json:"state_name"`
	FromDate       string `json:"from_date"`
	ToDate         string `json:"to_date"`
	TenureName     string `json:"tenure_name"`
	MinistryName   string `json:"ministry_name"`
	DepartmentName string `json:"department_name"`
	Organisation   string `json:"organisation"`
	DeputationType string `json:"deputation_type"`
}

// StoredDeputation is a durably saved record split into its three source
// sub-maps: reviewer overrides, officer entries and the unclassified SPARK
// snapshot taken at save time.
type StoredDeputation struct {
	ID       uint
	GADData  map[string]string
	UserData map[string]string
	Data     map[string]string
}

// LookupOption is one row of a lookup table.
type LookupOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// LookupTables carries the six reference tables the merger resolves
// free-text feed values against.
type LookupTables struct {
	States          []LookupOption
	TenureTypes     []LookupOption
	Ministries      []LookupOption
	Departments     []LookupOption
	Organisations   []LookupOption
	DeputationTypes []LookupOption
}

// MergeResult is the output of the field-provenance merger. FeedFieldKeys
// holds "<field>_<index>" for every feed entry field that carried a
// non-empty raw value; it only drives the "synced from SPARK" badge and is
// not authoritative provenance.
type MergeResult struct {
	Records       []DeputationRecord  `json:"records"`
	FeedFieldKeys map[string]struct{} `json:"-"`
}

// ============================================================
// Profile completion
// ============================================================

// SectionProgress is one UI section's reported item counts. completed <= total
// is assumed from callers, not enforced.
type SectionProgress struct {
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Percentage returns the section's own completion, 0 when it has no items.
func (p SectionProgress) Percentage() int {
	if p.Total == 0 {
		return 0
	}
	return int(float64(p.Completed)/float64(p.Total)*100 + 0.5)
}

// DefaultProfileSections are the nine sections a profile must load before the
// strict overall percentage is meaningful. The effective list is configuration
// (PROFILE_SECTIONS), this is only its default.
var DefaultProfileSections = []string{
	"personal",
	"profile_photo",
	"education",
	"service",
	"central_deputation",
	"training",
	"awards",
	"disability",
	"disciplinary",
}

// ============================================================
// Session context
// ============================================================

// Role codes carried in JWT claims.
const (
	RoleOfficer = "OFFICER"
	RoleClerk   = "CLERK"
	RoleAdmin   = "ADMIN"
)

// SessionContext carries the ambient session facts explicitly instead of
// reading them ad hoc from shared storage.
type SessionContext struct {
	SessionID      string
	UserID         uint
	OfficerUserID  uint
	Role           string
	ProfileStatus  string
	AllotmentYear  string
	RetirementDate string
	DOB            string
}

// EditingSource maps the session role to the provenance tag its edits carry.
func (s SessionContext) EditingSource() ValueSource {
	if s.Role == RoleOfficer {
		return SourceOfficer
	}
	return SourceReviewer
}

// ============================================================
// Master-data delete capability
// ============================================================

// DeleteMode says how a master entity leaves the system.
type DeleteMode int

const (
	// SoftDeactivate flips is_active off and keeps the row.
	SoftDeactivate DeleteMode = iota
	// HardDelete removes the row.
	HardDelete
)

// DeleteModes is the per-entity capability table. Office, country, district
// and state hard-delete while every other master deactivates; the split is
// inherited behavior kept explicit here rather than re-derived in handlers.
var DeleteModes = map[string]DeleteMode{
	"cadre":           SoftDeactivate,
	"category":        SoftDeactivate,
	"district":        HardDelete,
	"designation":     SoftDeactivate,
	"ministry":        SoftDeactivate,
	"department":      SoftDeactivate,
	"organisation":    SoftDeactivate,
	"tenure_type":     SoftDeactivate,
	"deputation_type": SoftDeactivate,
	"state":           HardDelete,
	"office":          HardDelete,
	"country":         HardDelete,
}

// DeleteModeFor returns the entity's delete mode, defaulting to soft
// deactivation for anything not listed.
func DeleteModeFor(entity string) DeleteMode {
	if m, ok := DeleteModes[entity]; ok {
		return m
	}
	return SoftDeactivate
}
