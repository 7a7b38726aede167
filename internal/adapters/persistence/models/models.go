package models

import (
	"strconv"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gad-officerhub/internal/core/domain"
)

// ============================================================
// Users
// ============================================================

// User represents users table. OfficerID links clerks and officers to the
// officer profile they act on; for OFFICER accounts it is their own id.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;default:'OFFICER'" json:"role"`
	OfficerID uint      `gorm:"index" json:"officer_id"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// ============================================================
// Master tables
// ============================================================

// Master is the shape every master entity shares; the generic repository
// works through it.
type Master interface {
	GetID() uint
	GetName() string
	SetName(name string)
	Active() bool
	SetActive(active bool)
}

// MasterBase carries the columns all master tables share.
type MasterBase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *MasterBase) GetID() uint           { return m.ID }
func (m *MasterBase) GetName() string       { return m.Name }
func (m *MasterBase) SetName(name string)   { m.Name = name }
func (m *MasterBase) Active() bool          { return m.IsActive }
func (m *MasterBase) SetActive(active bool) { m.IsActive = active }

// Cadre service cadre (Master)
type Cadre struct {
	MasterBase
}

func (Cadre) TableName() string { return "cadres" }

// Category reservation category (Master)
type Category struct {
	MasterBase
}

func (Category) TableName() string { return "categories" }

// District revenue district (Master, belongs to a state)
type District struct {
	MasterBase
	StateID uint `gorm:"index" json:"state_id"`
}

func (District) TableName() string { return "districts" }

// Designation post designation (Master)
type Designation struct {
	MasterBase
}

func (Designation) TableName() string { return "designations" }

// Ministry central ministry (Master, deputation lookup)
type Ministry struct {
	MasterBase
}

func (Ministry) TableName() string { return "ministries" }

// Department department under a ministry (Master, deputation lookup)
type Department struct {
	MasterBase
}

func (Department) TableName() string { return "departments" }

// Organisation organisation/agency (Master, deputation lookup)
type Organisation struct {
	MasterBase
}

func (Organisation) TableName() string { return "organisations" }

// TenureType deputation tenure type (Master, deputation lookup)
type TenureType struct {
	MasterBase
}

func (TenureType) TableName() string { return "tenure_types" }

// DeputationType deputation type (Master, deputation lookup)
type DeputationType struct {
	MasterBase
}

func (DeputationType) TableName() string { return "deputation_types" }

// State state/UT (Master, deputation lookup)
type State struct {
	MasterBase
}

func (State) TableName() string { return "states" }

// Office office location (Master)
type Office struct {
	MasterBase
	Address string `gorm:"size:200" json:"address"`
}

func (Office) TableName() string { return "offices" }

// Country country (Master)
type Country struct {
	MasterBase
}

func (Country) TableName() string { return "countries" }

// ============================================================
// Central deputation
// ============================================================

// CentralDeputation is an officer's durably saved deputation record. The
// three JSON sub-maps split field values by the source that supplied them:
// gad_data holds reviewer overrides, user_data the officer's own entries and
// spark_data the feed snapshot captured at save time.
type CentralDeputation struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	OfficerID uint              `gorm:"index;not null" json:"officer_id"`
	SparkData datatypes.JSONMap `gorm:"type:json" json:"spark_data"`
	UserData  datatypes.JSONMap `gorm:"type:json" json:"user_data"`
	GADData   datatypes.JSONMap `gorm:"column:gad_data;type:json" json:"gad_data"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CentralDeputation) TableName() string {
	return "central_deputations"
}

// ToStored converts the row into the domain shape the merger consumes.
func (d *CentralDeputation) ToStored() domain.StoredDeputation {
	return domain.StoredDeputation{
		ID:       d.ID,
		GADData:  jsonToStringMap(d.GADData),
		UserData: jsonToStringMap(d.UserData),
		Data:     jsonToStringMap(d.SparkData),
	}
}

// jsonToStringMap flattens a JSON sub-map to the string values the domain
// works with; non-string scalars keep their JSON text form.
func jsonToStringMap(m datatypes.JSONMap) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = t
		case float64:
			// JSON numbers arrive as float64; ids are integral.
			out[k] = trimFloat(t)
		case bool:
			if t {
				out[k] = "true"
			} else {
				out[k] = "false"
			}
		}
	}
	return out
}

func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ============================================================
// SPARK feed (read only!)
// ============================================================

// SparkDeputation mirrors the legacy SPARK feed table. Never migrated,
// never written.
type SparkDeputation struct {
	ID             uint   `gorm:"column:ID;primaryKey" json:"id"`
	OfficerID      uint   `gorm:"column:OFFICER_ID" json:"officer_id"`
	Designation    string `gorm:"column:DESIGNATION" json:"designation"`
	PhoneNumber    string `gorm:"column:PHONE_NUMBER" json:"phone_number"`
	StateName      string `gorm:"column:STATE_NAME" json:"state_name"`
	FromDate       string `gorm:"column:FROM_DATE" json:"from_date"`
	ToDate         string `gorm:"column:TO_DATE" json:"to_date"`
	TenureName     string `gorm:"column:TENURE_NAME" json:"tenure_name"`
	MinistryName   string `gorm:"column:MINISTRY_NAME" json:"ministry_name"`
	DepartmentName string `gorm:"column:DEPARTMENT_NAME" json:"department_name"`
	Organisation   string `gorm:"column:ORGANISATION" json:"organisation"`
	DeputationType string `gorm:"column:DEPUTATION_TYPE" json:"deputation_type"`
}

func (SparkDeputation) TableName() string {
	return "spark_deputations"
}

// ToRecord converts a feed row into the domain shape the merger consumes.
func (s *SparkDeputation) ToRecord() domain.SparkRecord {
	return domain.SparkRecord{
		Designation:    s.Designation,
		PhoneNumber:    s.PhoneNumber,
		StateName:      s.StateName,
		FromDate:       s.FromDate,
		ToDate:         s.ToDate,
		TenureName:     s.TenureName,
		MinistryName:   s.MinistryName,
		DepartmentName: s.DepartmentName,
		Organisation:   s.Organisation,
		DeputationType: s.DeputationType,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for owned tables only.
// Never migrate the spark_deputations feed table!
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		// Master tables
		&Cadre{},
		&Category{},
		&District{},
		&Designation{},
		&Ministry{},
		&Department{},
		&Organisation{},
		&TenureType{},
		&DeputationType{},
		&State{},
		&Office{},
		&Country{},
		// Profile tables
		&CentralDeputation{},
	)
}
