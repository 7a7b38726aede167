package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// MasterRepository handles data access for one master table. All twelve
// master entities share the same access pattern, so the repository is
// generic over the model type.
type MasterRepository[T any] struct {
	db *gorm.DB
}

// NewMasterRepository creates a repository for one master model.
func NewMasterRepository[T any](db *gorm.DB) *MasterRepository[T] {
	return &MasterRepository[T]{db: db}
}

// Create inserts a new master row.
func (r *MasterRepository[T]) Create(ctx context.Context, m *T) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a master row by ID.
func (r *MasterRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var m T
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

// GetByName gets a master row by case-insensitive exact name, regardless of
// its active flag. Backs the duplicate-and-reactivate check.
func (r *MasterRepository[T]) GetByName(ctx context.Context, name string) (*T, error) {
	var m T
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&m).Error
	return &m, err
}

// List lists all active rows.
func (r *MasterRepository[T]) List(ctx context.Context) ([]*T, error) {
	var items []*T
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&items).Error
	return items, err
}

// ListAll lists all rows including deactivated ones.
func (r *MasterRepository[T]) ListAll(ctx context.Context) ([]*T, error) {
	var items []*T
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

// Update saves changes to a master row.
func (r *MasterRepository[T]) Update(ctx context.Context, m *T) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// Delete removes a master row. Only entities the capability table marks
// hard-delete reach this; everything else flips is_active via Update.
func (r *MasterRepository[T]) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(new(T), id).Error
}
