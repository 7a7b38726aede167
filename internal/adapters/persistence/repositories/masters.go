package repositories

import (
	"gorm.io/gorm"

	"gad-officerhub/internal/adapters/persistence/models"
)

// Masters bundles the twelve master-table repositories so wiring code can
// pass them around as one unit.
type Masters struct {
	Cadres          *MasterRepository[models.Cadre]
	Categories      *MasterRepository[models.Category]
	Districts       *MasterRepository[models.District]
	Designations    *MasterRepository[models.Designation]
	Ministries      *MasterRepository[models.Ministry]
	Departments     *MasterRepository[models.Department]
	Organisations   *MasterRepository[models.Organisation]
	TenureTypes     *MasterRepository[models.TenureType]
	DeputationTypes *MasterRepository[models.DeputationType]
	States          *MasterRepository[models.State]
	Offices         *MasterRepository[models.Office]
	Countries       *MasterRepository[models.Country]
}

// NewMasters creates repositories for all master tables.
func NewMasters(db *gorm.DB) *Masters {
	return &Masters{
		Cadres:          NewMasterRepository[models.Cadre](db),
		Categories:      NewMasterRepository[models.Category](db),
		Districts:       NewMasterRepository[models.District](db),
		Designations:    NewMasterRepository[models.Designation](db),
		Ministries:      NewMasterRepository[models.Ministry](db),
		Departments:     NewMasterRepository[models.Department](db),
		Organisations:   NewMasterRepository[models.Organisation](db),
		TenureTypes:     NewMasterRepository[models.TenureType](db),
		DeputationTypes: NewMasterRepository[models.DeputationType](db),
		States:          NewMasterRepository[models.State](db),
		Offices:         NewMasterRepository[models.Office](db),
		Countries:       NewMasterRepository[models.Country](db),
	}
}
