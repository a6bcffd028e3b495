package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/skycater/gsc/internal/gsc/service"
)

// PlanHandler accommodation plan endpoints. Plans hang off a flight.
type PlanHandler struct {
	svc *service.PlanService
}

func NewPlanHandler(svc *service.PlanService) *PlanHandler {
	return &PlanHandler{svc: svc}
}

// Get
// GET /api/v1/plans/:id
func (h *PlanHandler) Get(c *gin.Context) {
	plan, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "get plan")
		return
	}
	Success(c, plan)
}

// GetByVol
// GET /api/v1/vols/:id/plan
func (h *PlanHandler) GetByVol(c *gin.Context) {
	plan, err := h.svc.GetByVol(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "get plan for vol")
		return
	}
	Success(c, plan)
}

// Generate
// POST /api/v1/vols/:id/plan
func (h *PlanHandler) Generate(c *gin.Context) {
	plan, err := h.svc.GenerateForVol(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "generate plan")
		return
	}
	Created(c, plan)
}

type assignMenuRequest struct {
	MenuID string `json:"menu_id" binding:"required"`
}

// AssignMenu
// POST /api/v1/plans/:id/menus
func (h *PlanHandler) AssignMenu(c *gin.Context) {
	var req assignMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := h.svc.AssignMenu(c.Request.Context(), c.Param("id"), req.MenuID); err != nil {
		HandleError(c, err, "assign menu")
		return
	}
	Success(c, nil)
}

// UnassignMenu
// DELETE /api/v1/plans/:id/menus/:menuId
func (h *PlanHandler) UnassignMenu(c *gin.Context) {
	if err := h.svc.UnassignMenu(c.Request.Context(), c.Param("id"), c.Param("menuId")); err != nil {
		HandleError(c, err, "unassign menu")
		return
	}
	Success(c, nil)
}

// Delete
// DELETE /api/v1/plans/:id
func (h *PlanHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err, "delete plan")
		return
	}
	Success(c, nil)
}
