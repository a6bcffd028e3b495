package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/skycater/gsc/internal/gsc/service"
)

// CommandeHandler BCP endpoints.
type CommandeHandler struct {
	svc *service.CommandeService
}

func NewCommandeHandler(svc *service.CommandeService) *CommandeHandler {
	return &CommandeHandler{svc: svc}
}

// List
// GET /api/v1/bcps?vol_id=xxx&status=xxx&search=xxx
func (h *CommandeHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"vol_id": c.Query("vol_id"),
		"status": c.Query("status"),
		"search": c.Query("search"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err, "list bcps")
		return
	}
	paginate(c, items, total, page, pageSize)
}

// Get
// GET /api/v1/bcps/:id
func (h *CommandeHandler) Get(c *gin.Context) {
	bcp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "get bcp")
		return
	}
	Success(c, bcp)
}

// ListByVol
// GET /api/v1/vols/:id/bcps
func (h *CommandeHandler) ListByVol(c *gin.Context) {
	bcps, err := h.svc.ListByVol(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "list bcps for vol")
		return
	}
	Success(c, bcps)
}

// Create
// POST /api/v1/bcps
func (h *CommandeHandler) Create(c *gin.Context) {
	var req service.CreateBCPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	bcp, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err, "create bcp")
		return
	}
	Created(c, bcp)
}

// GenerateFromVol builds a draft order from the flight's plan and menus.
// POST /api/v1/vols/:id/bcps/generate
func (h *CommandeHandler) GenerateFromVol(c *gin.Context) {
	bcp, err := h.svc.GenerateFromVol(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		HandleError(c, err, "generate bcp")
		return
	}
	Created(c, bcp)
}

// Update
// PUT /api/v1/bcps/:id
func (h *CommandeHandler) Update(c *gin.Context) {
	var req service.UpdateBCPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	bcp, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err, "update bcp")
		return
	}
	Success(c, bcp)
}

// Envoyer
// POST /api/v1/bcps/:id/envoyer
func (h *CommandeHandler) Envoyer(c *gin.Context) {
	bcp, err := h.svc.Envoyer(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "send bcp")
		return
	}
	Success(c, bcp)
}

// Confirmer
// POST /api/v1/bcps/:id/confirmer
func (h *CommandeHandler) Confirmer(c *gin.Context) {
	bcp, err := h.svc.Confirmer(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "confirm bcp")
		return
	}
	Success(c, bcp)
}

// Annuler
// POST /api/v1/bcps/:id/annuler
func (h *CommandeHandler) Annuler(c *gin.Context) {
	bcp, err := h.svc.Annuler(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "cancel bcp")
		return
	}
	Success(c, bcp)
}

// Delete
// DELETE /api/v1/bcps/:id
func (h *CommandeHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err, "delete bcp")
		return
	}
	Success(c, nil)
}
