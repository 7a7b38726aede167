package handlers

import (
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"gad-officerhub/internal/adapters/http/middleware"
	"gad-officerhub/internal/core/services"
	"gad-officerhub/internal/pkg/response"
)

// DeputationHandler serves the central-deputation endpoints. Officers work
// on their own profile; clerks and admins address a target officer by id.
type DeputationHandler struct {
	svc *services.DeputationService
}

// NewDeputationHandler creates a new deputation handler
func NewDeputationHandler(svc *services.DeputationService) *DeputationHandler {
	return &DeputationHandler{svc: svc}
}

// List returns the officer's merged deputation list
// @Summary List central deputations
// @Description Merged view of SPARK feed entries and saved records with per-field provenance
// @Tags Deputation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /officer/central-deputation [get]
func (h *DeputationHandler) List(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	return h.list(c, sess.OfficerUserID)
}

// ListFor returns another officer's merged deputation list
// @Summary List central deputations of an officer
// @Description Merged view for a target officer, for administrative review
// @Tags Deputation
// @Produce json
// @Security BearerAuth
// @Param officerId path int true "Officer ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /clerk/central_deputation/{officerId} [get]
func (h *DeputationHandler) ListFor(c *fiber.Ctx) error {
	officerID, err := h.targetOfficer(c)
	if err != nil {
		return response.BadRequest(c, "Invalid officer ID")
	}
	return h.list(c, officerID)
}

func (h *DeputationHandler) list(c *fiber.Ctx, officerID uint) error {
	sess := middleware.SessionFromCtx(c)

	result, err := h.svc.List(c.Context(), sess, officerID)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	// The badge keys come sorted so responses stay byte-stable.
	sparkKeys := make([]string, 0, len(result.FeedFieldKeys))
	for k := range result.FeedFieldKeys {
		sparkKeys = append(sparkKeys, k)
	}
	sort.Strings(sparkKeys)

	return response.Success(c, "Central deputation details retrieved successfully", fiber.Map{
		"central_deputation_details": result.Records,
		"spark_field_keys":           sparkKeys,
	})
}

// Create saves a new deputation record for the officer
// @Summary Create central deputation
// @Description Save a new record; a feed-only entry submitted here becomes a stored record
// @Tags Deputation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SaveDeputationInput true "Record data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /officer/central-deputation [post]
func (h *DeputationHandler) Create(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	return h.save(c, sess.OfficerUserID, "")
}

// Update updates one of the officer's records
// @Summary Update central deputation
// @Description Update a record; null field values clear the editor's override
// @Tags Deputation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Param body body services.SaveDeputationInput true "Record data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /officer/central-deputation/{id} [put]
func (h *DeputationHandler) Update(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	return h.save(c, sess.OfficerUserID, c.Params("id"))
}

// CreateFor saves a new record for a target officer
// @Summary Create central deputation for an officer
// @Tags Deputation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param officerId path int true "Officer ID"
// @Param body body services.SaveDeputationInput true "Record data"
// @Success 201 {object} response.Response
// @Router /clerk/central_deputation/{officerId} [post]
func (h *DeputationHandler) CreateFor(c *fiber.Ctx) error {
	officerID, err := h.targetOfficer(c)
	if err != nil {
		return response.BadRequest(c, "Invalid officer ID")
	}
	return h.save(c, officerID, "")
}

// UpdateFor updates a target officer's record
// @Summary Update central deputation of an officer
// @Tags Deputation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param officerId path int true "Officer ID"
// @Param id path string true "Record ID"
// @Param body body services.SaveDeputationInput true "Record data"
// @Success 200 {object} response.Response
// @Router /clerk/central_deputation/{officerId}/{id} [put]
func (h *DeputationHandler) UpdateFor(c *fiber.Ctx) error {
	officerID, err := h.targetOfficer(c)
	if err != nil {
		return response.BadRequest(c, "Invalid officer ID")
	}
	return h.save(c, officerID, c.Params("id"))
}

func (h *DeputationHandler) save(c *fiber.Ctx, officerID uint, recordID string) error {
	var input services.SaveDeputationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	sess := middleware.SessionFromCtx(c)
	rec, err := h.svc.Save(c.Context(), sess, officerID, recordID, input)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	payload := fiber.Map{"central_deputation": rec}
	if recordID == "" {
		return response.Created(c, "Central deputation saved successfully", payload)
	}
	return response.Success(c, "Central deputation updated successfully", payload)
}

// Delete removes one of the officer's records
// @Summary Delete central deputation
// @Description Stored records are removed from the database; feed-only entries only leave the session view
// @Tags Deputation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /officer/central-deputation/{id} [delete]
func (h *DeputationHandler) Delete(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	return h.remove(c, sess.OfficerUserID)
}

// DeleteFor removes a target officer's record
// @Summary Delete central deputation of an officer
// @Tags Deputation
// @Produce json
// @Security BearerAuth
// @Param officerId path int true "Officer ID"
// @Param id path string true "Record ID"
// @Success 200 {object} response.Response
// @Router /clerk/central_deputation/{officerId}/{id} [delete]
func (h *DeputationHandler) DeleteFor(c *fiber.Ctx) error {
	officerID, err := h.targetOfficer(c)
	if err != nil {
		return response.BadRequest(c, "Invalid officer ID")
	}
	return h.remove(c, officerID)
}

func (h *DeputationHandler) remove(c *fiber.Ctx, officerID uint) error {
	sess := middleware.SessionFromCtx(c)
	if err := h.svc.Delete(c.Context(), sess, officerID, c.Params("id")); err != nil {
		return response.FromDomainError(c, err)
	}
	return response.Success(c, "Central deputation deleted successfully", nil)
}

func (h *DeputationHandler) targetOfficer(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("officerId"), 10, 32)
	return uint(id), err
}
