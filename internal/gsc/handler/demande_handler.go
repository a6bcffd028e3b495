package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/skycater/gsc/internal/gsc/service"
)

// DemandeHandler menu request endpoints.
type DemandeHandler struct {
	svc *service.DemandeService
}

func NewDemandeHandler(svc *service.DemandeService) *DemandeHandler {
	return &DemandeHandler{svc: svc}
}

// List
// GET /api/v1/demandes?status=xxx&vol_id=xxx
func (h *DemandeHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status": c.Query("status"),
		"vol_id": c.Query("vol_id"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err, "list demandes")
		return
	}
	paginate(c, items, total, page, pageSize)
}

// Get
// GET /api/v1/demandes/:id
func (h *DemandeHandler) Get(c *gin.Context) {
	d, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "get demande")
		return
	}
	Success(c, d)
}

// Create
// POST /api/v1/demandes
func (h *DemandeHandler) Create(c *gin.Context) {
	var req service.CreateDemandeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.CreatedBy == "" {
		req.CreatedBy = GetUserID(c)
	}

	d, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err, "create demande")
		return
	}
	Created(c, d)
}

// Update
// PUT /api/v1/demandes/:id
func (h *DemandeHandler) Update(c *gin.Context) {
	var req service.UpdateDemandeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	d, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err, "update demande")
		return
	}
	Success(c, d)
}

// Accepter answers the demande and returns the spawned delivery note.
// POST /api/v1/demandes/:id/accepter
func (h *DemandeHandler) Accepter(c *gin.Context) {
	var req service.AccepterDemandeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	d, bl, err := h.svc.Accepter(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err, "accept demande")
		return
	}

	Success(c, gin.H{
		"demande": d,
		"bl":      bl,
	})
}

// Rejeter
// POST /api/v1/demandes/:id/rejeter
func (h *DemandeHandler) Rejeter(c *gin.Context) {
	d, err := h.svc.Rejeter(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "reject demande")
		return
	}
	Success(c, d)
}

// Delete
// DELETE /api/v1/demandes/:id
func (h *DemandeHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err, "delete demande")
		return
	}
	Success(c, nil)
}
