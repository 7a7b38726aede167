package services

import (
	"context"

	"gad-officerhub/internal/adapters/persistence/models"
	"gad-officerhub/internal/core/domain"
)

// DeputationStore is the persistence surface DeputationService needs.
type DeputationStore interface {
	Create(ctx context.Context, d *models.CentralDeputation) error
	GetByID(ctx context.Context, id uint) (*models.CentralDeputation, error)
	ListByOfficer(ctx context.Context, officerID uint) ([]*models.CentralDeputation, error)
	Update(ctx context.Context, d *models.CentralDeputation) error
	Delete(ctx context.Context, id uint) error
}

// SparkFeed reads the external SPARK feed.
type SparkFeed interface {
	ListByOfficer(ctx context.Context, officerID uint) ([]*models.SparkDeputation, error)
}

// LookupProvider assembles the lookup tables the merger resolves against.
type LookupProvider interface {
	Tables(ctx context.Context) (domain.LookupTables, error)
}
