package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/skycater/gsc/internal/gsc/service"
)

// LivraisonHandler BL endpoints. Validation returns the écarts the
// reconciliation produced alongside the note.
type LivraisonHandler struct {
	svc *service.LivraisonService
}

func NewLivraisonHandler(svc *service.LivraisonService) *LivraisonHandler {
	return &LivraisonHandler{svc: svc}
}

// List
// GET /api/v1/bls?vol_id=xxx&bcp_id=xxx&status=xxx&fournisseur=xxx&search=xxx
func (h *LivraisonHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"vol_id":      c.Query("vol_id"),
		"bcp_id":      c.Query("bcp_id"),
		"status":      c.Query("status"),
		"fournisseur": c.Query("fournisseur"),
		"search":      c.Query("search"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err, "list bls")
		return
	}
	paginate(c, items, total, page, pageSize)
}

// Get
// GET /api/v1/bls/:id
func (h *LivraisonHandler) Get(c *gin.Context) {
	bl, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "get bl")
		return
	}
	Success(c, bl)
}

// Create
// POST /api/v1/bls
func (h *LivraisonHandler) Create(c *gin.Context) {
	var req service.CreateBLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	bl, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err, "create bl")
		return
	}
	Created(c, bl)
}

// Update
// PUT /api/v1/bls/:id
func (h *LivraisonHandler) Update(c *gin.Context) {
	var req service.UpdateBLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	bl, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err, "update bl")
		return
	}
	Success(c, bl)
}

// Recevoir
// POST /api/v1/bls/:id/recevoir
func (h *LivraisonHandler) Recevoir(c *gin.Context) {
	bl, err := h.svc.Recevoir(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "receive bl")
		return
	}
	Success(c, bl)
}

// Valider
// POST /api/v1/bls/:id/valider
func (h *LivraisonHandler) Valider(c *gin.Context) {
	bl, ecarts, err := h.svc.Valider(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		HandleError(c, err, "validate bl")
		return
	}

	Success(c, gin.H{
		"bl":     bl,
		"ecarts": ecarts,
	})
}

// Rejeter
// POST /api/v1/bls/:id/rejeter
func (h *LivraisonHandler) Rejeter(c *gin.Context) {
	bl, err := h.svc.Rejeter(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "reject bl")
		return
	}
	Success(c, bl)
}

// Delete
// DELETE /api/v1/bls/:id
func (h *LivraisonHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err, "delete bl")
		return
	}
	Success(c, nil)
}
