package services

import (
	"context"
	"fmt"

	"gad-officerhub/internal/adapters/persistence/models"
	"gad-officerhub/internal/adapters/persistence/repositories"
	"gad-officerhub/internal/core/domain"
)

// LookupService assembles the six reference tables the deputation merger
// resolves SPARK free-text values against. Only active rows participate,
// matching what the master list endpoints serve.
type LookupService struct {
	states          *repositories.MasterRepository[models.State]
	tenureTypes     *repositories.MasterRepository[models.TenureType]
	ministries      *repositories.MasterRepository[models.Ministry]
	departments     *repositories.MasterRepository[models.Department]
	organisations   *repositories.MasterRepository[models.Organisation]
	deputationTypes *repositories.MasterRepository[models.DeputationType]
}

// NewLookupService wires the lookup service to its six master repositories.
func NewLookupService(
	states *repositories.MasterRepository[models.State],
	tenureTypes *repositories.MasterRepository[models.TenureType],
	ministries *repositories.MasterRepository[models.Ministry],
	departments *repositories.MasterRepository[models.Department],
	organisations *repositories.MasterRepository[models.Organisation],
	deputationTypes *repositories.MasterRepository[models.DeputationType],
) *LookupService {
	return &LookupService{
		states:          states,
		tenureTypes:     tenureTypes,
		ministries:      ministries,
		departments:     departments,
		organisations:   organisations,
		deputationTypes: deputationTypes,
	}
}

// Tables loads all six lookup tables.
func (s *LookupService) Tables(ctx context.Context) (domain.LookupTables, error) {
	var tables domain.LookupTables

	states, err := s.states.List(ctx)
	if err != nil {
		return tables, fmt.Errorf("load states: %w", err)
	}
	for _, m := range states {
		tables.States = append(tables.States, domain.LookupOption{ID: m.ID, Name: m.Name})
	}

	tenureTypes, err := s.tenureTypes.List(ctx)
	if err != nil {
		return tables, fmt.Errorf("load tenure types: %w", err)
	}
	for _, m := range tenureTypes {
		tables.TenureTypes = append(tables.TenureTypes, domain.LookupOption{ID: m.ID, Name: m.Name})
	}

	ministries, err := s.ministries.List(ctx)
	if err != nil {
		return tables, fmt.Errorf("load ministries: %w", err)
	}
	for _, m := range ministries {
		tables.Ministries = append(tables.Ministries, domain.LookupOption{ID: m.ID, Name: m.Name})
	}

	departments, err := s.departments.List(ctx)
	if err != nil {
		return tables, fmt.Errorf("load departments: %w", err)
	}
	for _, m := range departments {
		tables.Departments = append(tables.Departments, domain.LookupOption{ID: m.ID, Name: m.Name})
	}

	organisations, err := s.organisations.List(ctx)
	if err != nil {
		return tables, fmt.Errorf("load organisations: %w", err)
	}
	for _, m := range organisations {
		tables.Organisations = append(tables.Organisations, domain.LookupOption{ID: m.ID, Name: m.Name})
	}

	deputationTypes, err := s.deputationTypes.List(ctx)
	if err != nil {
		return tables, fmt.Errorf("load deputation types: %w", err)
	}
	for _, m := range deputationTypes {
		tables.DeputationTypes = append(tables.DeputationTypes, domain.LookupOption{ID: m.ID, Name: m.Name})
	}

	return tables, nil
}
