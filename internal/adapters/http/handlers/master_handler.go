package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gad-officerhub/internal/adapters/persistence/models"
	"gad-officerhub/internal/adapters/persistence/repositories"
	"gad-officerhub/internal/core/domain"
	"gad-officerhub/internal/core/services"
	"gad-officerhub/internal/pkg/pagination"
	"gad-officerhub/internal/pkg/response"
	"gad-officerhub/internal/pkg/validate"
)

// MasterRequest is the create/update payload shared by all master entities.
// StateID is only meaningful for districts, Address only for offices; the
// other entities ignore both.
type MasterRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100,alphaspace"`
	StateID uint   `json:"state_id,omitempty"`
	Address string `json:"address,omitempty"`
}

// masterPtr ties a master model's pointer type to the shared column
// accessors.
type masterPtr[T any] interface {
	*T
	models.Master
}

// masterResource binds one master table's repository to its route behavior:
// list with optional pagination, duplicate-aware create with reactivation,
// capability-table-driven delete and tabular export. The twelve entities
// differ only in their extra columns, captured by the apply and row hooks.
type masterResource[T any, PT masterPtr[T]] struct {
	repo    *repositories.MasterRepository[T]
	exports *services.ExportService
	entity  string // capability-table key, e.g. "tenure_type"
	label   string // human label for messages, e.g. "Tenure type"
	plural  string // JSON key for list payloads, e.g. "tenure_types"
	headers []string
	apply   func(m PT, req MasterRequest) // copies extra columns, nil for plain entities
	row     func(m PT) []string           // extra export cells, nil for plain entities
}

// List lists rows, active only by default. ?all=true includes deactivated
// rows; ?page=N returns one page with metadata.
func (r *masterResource[T, PT]) List(c *fiber.Ctx) error {
	includeInactive := c.Query("all") == "true"

	var items []*T
	var err error
	if includeInactive {
		items, err = r.repo.ListAll(c.Context())
	} else {
		items, err = r.repo.List(c.Context())
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to list "+r.plural)
	}

	if c.Query("page") != "" {
		page, meta := pagination.Paginate(items, pagination.GetParams(c))
		return response.Success(c, r.label+" list retrieved successfully", fiber.Map{
			r.plural: page,
			"meta":   meta,
		})
	}

	return response.Success(c, r.label+" list retrieved successfully", fiber.Map{
		r.plural: items,
	})
}

// ListAll serves the -all alias routes, which always include deactivated
// rows.
func (r *masterResource[T, PT]) ListAll(c *fiber.Ctx) error {
	items, err := r.repo.ListAll(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list "+r.plural)
	}
	return response.Success(c, r.label+" list retrieved successfully", fiber.Map{
		r.plural: items,
	})
}

// Get gets one row by id.
func (r *masterResource[T, PT]) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	item, err := r.repo.GetByID(c.Context(), id)
	if err != nil {
		return response.NotFound(c, r.label+" not found")
	}

	return response.Success(c, r.label+" retrieved successfully", fiber.Map{
		r.entity: item,
	})
}

// Create creates a row. A name collision with an active row is a conflict;
// a collision with a deactivated row reactivates it instead of inserting a
// duplicate.
func (r *masterResource[T, PT]) Create(c *fiber.Ctx) error {
	req, err := r.parseRequest(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	existing, err := r.repo.GetByName(c.Context(), req.Name)
	switch {
	case err == nil:
		pe := PT(existing)
		if pe.Active() {
			return response.Conflict(c, domain.ErrMasterNameTaken.Error())
		}
		pe.SetActive(true)
		r.applyRequest(pe, req)
		if err := r.repo.Update(c.Context(), existing); err != nil {
			return response.InternalServerError(c, "Failed to reactivate "+strings.ToLower(r.label))
		}
		return response.Success(c, r.label+" reactivated successfully", fiber.Map{
			r.entity: existing,
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		// New name, fall through to insert.
	default:
		return response.InternalServerError(c, "Failed to check for duplicates")
	}

	item := new(T)
	pi := PT(item)
	pi.SetActive(true)
	r.applyRequest(pi, req)
	if err := r.repo.Create(c.Context(), item); err != nil {
		return response.InternalServerError(c, "Failed to create "+strings.ToLower(r.label))
	}

	return response.Created(c, r.label+" created successfully", fiber.Map{
		r.entity: item,
	})
}

// Update updates a row's name and extra columns.
func (r *masterResource[T, PT]) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}
	req, err := r.parseRequest(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	item, err := r.repo.GetByID(c.Context(), id)
	if err != nil {
		return response.NotFound(c, r.label+" not found")
	}

	// The new name must not belong to a different row.
	if existing, err := r.repo.GetByName(c.Context(), req.Name); err == nil && PT(existing).GetID() != id {
		return response.Conflict(c, domain.ErrMasterNameTaken.Error())
	}

	r.applyRequest(PT(item), req)
	if err := r.repo.Update(c.Context(), item); err != nil {
		return response.InternalServerError(c, "Failed to update "+strings.ToLower(r.label))
	}

	return response.Success(c, r.label+" updated successfully", fiber.Map{
		r.entity: item,
	})
}

// Delete removes a row the way the capability table says this entity is
// removed: hard rows are deleted, everything else is deactivated in place.
func (r *masterResource[T, PT]) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	item, err := r.repo.GetByID(c.Context(), id)
	if err != nil {
		return response.NotFound(c, r.label+" not found")
	}

	if domain.DeleteModeFor(r.entity) == domain.HardDelete {
		if err := r.repo.Delete(c.Context(), id); err != nil {
			return response.InternalServerError(c, "Failed to delete "+strings.ToLower(r.label))
		}
		return response.Success(c, r.label+" deleted successfully", nil)
	}

	pi := PT(item)
	if !pi.Active() {
		return response.Success(c, r.label+" is already inactive", nil)
	}
	pi.SetActive(false)
	if err := r.repo.Update(c.Context(), item); err != nil {
		return response.InternalServerError(c, "Failed to deactivate "+strings.ToLower(r.label))
	}
	return response.Success(c, r.label+" deactivated successfully", nil)
}

// Export downloads the active row set as CSV, XLSX or PDF (?format=).
func (r *masterResource[T, PT]) Export(c *fiber.Ctx) error {
	format, err := services.ParseExportFormat(c.Query("format"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	items, err := r.repo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list "+r.plural)
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		pi := PT(item)
		cells := []string{
			strconv.FormatUint(uint64(pi.GetID()), 10),
			pi.GetName(),
			strconv.FormatBool(pi.Active()),
		}
		if r.row != nil {
			cells = append(cells, r.row(pi)...)
		}
		rows = append(rows, cells)
	}

	doc, err := r.exports.Render(format, r.label, r.headers, rows)
	if err != nil {
		return response.InternalServerError(c, "Failed to render export")
	}

	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s.%s", r.plural, format))
	return c.Send(doc)
}

func (r *masterResource[T, PT]) parseRequest(c *fiber.Ctx) (MasterRequest, error) {
	var req MasterRequest
	if err := c.BodyParser(&req); err != nil {
		return req, errors.New("invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return req, err
	}
	return req, nil
}

func (r *masterResource[T, PT]) applyRequest(m PT, req MasterRequest) {
	m.SetName(req.Name)
	if r.apply != nil {
		r.apply(m, req)
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

// masterRoutes is the assembled handler set for one entity's route group.
type masterRoutes struct {
	path                                       string
	list, listAll, get, create, update, remove fiber.Handler
	export                                     fiber.Handler
}

// MasterHandler serves the CRUD and export endpoints of all twelve master
// tables.
type MasterHandler struct {
	routes []masterRoutes
}

// NewMasterHandler assembles per-entity resources over the master
// repositories.
func NewMasterHandler(masters *repositories.Masters, exports *services.ExportService) *MasterHandler {
	baseHeaders := []string{"ID", "Name", "Active"}

	h := &MasterHandler{}
	add := func(path string, routes masterRoutes) {
		routes.path = path
		h.routes = append(h.routes, routes)
	}

	add("cadres", routesFor(&masterResource[models.Cadre, *models.Cadre]{
		repo: masters.Cadres, exports: exports,
		entity: "cadre", label: "Cadre", plural: "cadres", headers: baseHeaders,
	}))
	add("categories", routesFor(&masterResource[models.Category, *models.Category]{
		repo: masters.Categories, exports: exports,
		entity: "category", label: "Category", plural: "categories", headers: baseHeaders,
	}))
	add("districts", routesFor(&masterResource[models.District, *models.District]{
		repo: masters.Districts, exports: exports,
		entity: "district", label: "District", plural: "districts",
		headers: append(append([]string{}, baseHeaders...), "State ID"),
		apply: func(m *models.District, req MasterRequest) {
			m.StateID = req.StateID
		},
		row: func(m *models.District) []string {
			return []string{strconv.FormatUint(uint64(m.StateID), 10)}
		},
	}))
	add("designations", routesFor(&masterResource[models.Designation, *models.Designation]{
		repo: masters.Designations, exports: exports,
		entity: "designation", label: "Designation", plural: "designations", headers: baseHeaders,
	}))
	add("ministries", routesFor(&masterResource[models.Ministry, *models.Ministry]{
		repo: masters.Ministries, exports: exports,
		entity: "ministry", label: "Ministry", plural: "ministries", headers: baseHeaders,
	}))
	add("departments", routesFor(&masterResource[models.Department, *models.Department]{
		repo: masters.Departments, exports: exports,
		entity: "department", label: "Department", plural: "departments", headers: baseHeaders,
	}))
	add("organisations", routesFor(&masterResource[models.Organisation, *models.Organisation]{
		repo: masters.Organisations, exports: exports,
		entity: "organisation", label: "Organisation", plural: "organisations", headers: baseHeaders,
	}))
	add("tenure-types", routesFor(&masterResource[models.TenureType, *models.TenureType]{
		repo: masters.TenureTypes, exports: exports,
		entity: "tenure_type", label: "Tenure type", plural: "tenure_types", headers: baseHeaders,
	}))
	add("deputation-types", routesFor(&masterResource[models.DeputationType, *models.DeputationType]{
		repo: masters.DeputationTypes, exports: exports,
		entity: "deputation_type", label: "Deputation type", plural: "deputation_types", headers: baseHeaders,
	}))
	add("states", routesFor(&masterResource[models.State, *models.State]{
		repo: masters.States, exports: exports,
		entity: "state", label: "State", plural: "states", headers: baseHeaders,
	}))
	add("offices", routesFor(&masterResource[models.Office, *models.Office]{
		repo: masters.Offices, exports: exports,
		entity: "office", label: "Office", plural: "offices",
		headers: append(append([]string{}, baseHeaders...), "Address"),
		apply: func(m *models.Office, req MasterRequest) {
			m.Address = strings.TrimSpace(req.Address)
		},
		row: func(m *models.Office) []string {
			return []string{m.Address}
		},
	}))
	add("countries", routesFor(&masterResource[models.Country, *models.Country]{
		repo: masters.Countries, exports: exports,
		entity: "country", label: "Country", plural: "countries", headers: baseHeaders,
	}))

	return h
}

func routesFor[T any, PT masterPtr[T]](r *masterResource[T, PT]) masterRoutes {
	return masterRoutes{
		list:    r.List,
		listAll: r.ListAll,
		get:     r.Get,
		create:  r.Create,
		update:  r.Update,
		remove:  r.Delete,
		export:  r.Export,
	}
}

// Register mounts every entity's route group under the given router.
// Listing and export are open to any authenticated role; mutations need the
// given guard (admin).
func (h *MasterHandler) Register(r fiber.Router, mutationGuard fiber.Handler) {
	for _, routes := range h.routes {
		grp := r.Group("/" + routes.path)
		grp.Get("/", routes.list)
		grp.Get("/export", routes.export)
		grp.Get("/:id", routes.get)
		grp.Post("/", mutationGuard, routes.create)
		grp.Put("/:id", mutationGuard, routes.update)
		grp.Delete("/:id", mutationGuard, routes.remove)

		// Legacy alias the profile screens call for full dropdown lists.
		r.Get("/"+routes.path+"-all", routes.listAll)
	}
}
