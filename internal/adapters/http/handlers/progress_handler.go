package handlers

import (
	"github.com/gofiber/fiber/v2"

	"gad-officerhub/internal/adapters/http/middleware"
	"gad-officerhub/internal/core/services"
	"gad-officerhub/internal/pkg/response"
)

// ProgressHandler serves the profile-completion endpoints.
type ProgressHandler struct {
	svc *services.ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

// ReportRequest is one section's count report.
type ReportRequest struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Report records one profile section's completion counts
// @Summary Report section progress
// @Description Sections report their item counts as they load; repeat reports with identical counts are no-ops
// @Tags Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param section path string true "Section name"
// @Param body body ReportRequest true "Section counts"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /profile/progress/{section} [put]
func (h *ProgressHandler) Report(c *fiber.Ctx) error {
	section := c.Params("section")
	if section == "" {
		return response.BadRequest(c, "Section is required")
	}

	var req ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Completed < 0 || req.Total < 0 || req.Completed > req.Total {
		return response.BadRequest(c, "Counts must satisfy 0 <= completed <= total")
	}

	sess := middleware.SessionFromCtx(c)
	changed, err := h.svc.Report(sess.SessionID, section, req.Completed, req.Total)
	if err != nil {
		return response.InternalServerError(c, "Failed to record progress")
	}

	return response.Success(c, "Progress recorded", fiber.Map{
		"changed":  changed,
		"progress": h.svc.Overview(sess.SessionID),
	})
}

// MarkLoaded flags a section loaded without counts
// @Summary Mark section loaded
// @Description Sections that determine emptiness asynchronously flag themselves loaded here
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Param section path string true "Section name"
// @Success 200 {object} response.Response
// @Router /profile/progress/{section}/loaded [post]
func (h *ProgressHandler) MarkLoaded(c *fiber.Ctx) error {
	section := c.Params("section")
	if section == "" {
		return response.BadRequest(c, "Section is required")
	}

	sess := middleware.SessionFromCtx(c)
	if err := h.svc.MarkLoaded(sess.SessionID, section); err != nil {
		return response.InternalServerError(c, "Failed to record progress")
	}

	return response.Success(c, "Section marked loaded", fiber.Map{
		"progress": h.svc.Overview(sess.SessionID),
	})
}

// Overview returns the overall completion with per-section detail
// @Summary Profile completion
// @Description Stabilized percentage for display plus the strict variant, load state and per-section breakdown
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /profile/progress [get]
func (h *ProgressHandler) Overview(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	sections, loaded := h.svc.Detail(sess.SessionID)
	return response.Success(c, "Progress retrieved successfully", fiber.Map{
		"progress": h.svc.Overview(sess.SessionID),
		"required": h.svc.Sections(),
		"sections": sections,
		"loaded":   loaded,
	})
}

// Reset clears the session's completion state
// @Summary Reset profile completion
// @Description Drops all reported counts for this session, e.g. on profile switch
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /profile/progress [delete]
func (h *ProgressHandler) Reset(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	h.svc.Reset(sess.SessionID)
	return response.Success(c, "Progress reset", nil)
}
