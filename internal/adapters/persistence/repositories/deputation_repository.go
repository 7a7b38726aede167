package repositories

import (
	"context"

	"gad-officerhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// CentralDeputationRepository handles stored central-deputation records.
type CentralDeputationRepository struct {
	db *gorm.DB
}

// NewCentralDeputationRepository creates a new central deputation repository.
func NewCentralDeputationRepository(db *gorm.DB) *CentralDeputationRepository {
	return &CentralDeputationRepository{db: db}
}

// Create inserts a new record.
func (r *CentralDeputationRepository) Create(ctx context.Context, d *models.CentralDeputation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

// GetByID gets a record by ID.
func (r *CentralDeputationRepository) GetByID(ctx context.Context, id uint) (*models.CentralDeputation, error) {
	var d models.CentralDeputation
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

// ListByOfficer lists an officer's stored records, oldest first so the merge
// sees them in insertion order.
func (r *CentralDeputationRepository) ListByOfficer(ctx context.Context, officerID uint) ([]*models.CentralDeputation, error) {
	var items []*models.CentralDeputation
	err := r.db.WithContext(ctx).
		Where("officer_id = ?", officerID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// Update saves changes to a record.
func (r *CentralDeputationRepository) Update(ctx context.Context, d *models.CentralDeputation) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// Delete removes a record.
func (r *CentralDeputationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.CentralDeputation{}, id).Error
}

// SparkDeputationRepository reads the legacy SPARK feed table (Read Only!).
type SparkDeputationRepository struct {
	db *gorm.DB
}

// NewSparkDeputationRepository creates a new SPARK feed repository.
func NewSparkDeputationRepository(db *gorm.DB) *SparkDeputationRepository {
	return &SparkDeputationRepository{db: db}
}

// ListByOfficer lists the feed entries for one officer in feed order.
func (r *SparkDeputationRepository) ListByOfficer(ctx context.Context, officerID uint) ([]*models.SparkDeputation, error) {
	var items []*models.SparkDeputation
	err := r.db.WithContext(ctx).
		Where("OFFICER_ID = ?", officerID).
		Order("ID ASC").
		Find(&items).Error
	return items, err
}

// Count returns the total number of feed rows.
func (r *SparkDeputationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.SparkDeputation{}).Count(&n).Error
	return n, err
}
