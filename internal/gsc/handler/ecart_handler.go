package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/skycater/gsc/internal/gsc/service"
)

// EcartHandler variance endpoints.
type EcartHandler struct {
	svc *service.EcartService
}

func NewEcartHandler(svc *service.EcartService) *EcartHandler {
	return &EcartHandler{svc: svc}
}

// List
// GET /api/v1/ecarts?vol_id=xxx&bl_id=xxx&status=xxx&type_ecart=xxx
func (h *EcartHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"vol_id":     c.Query("vol_id"),
		"bl_id":      c.Query("bl_id"),
		"status":     c.Query("status"),
		"type_ecart": c.Query("type_ecart"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err, "list ecarts")
		return
	}
	paginate(c, items, total, page, pageSize)
}

// Get
// GET /api/v1/ecarts/:id
func (h *EcartHandler) Get(c *gin.Context) {
	ecart, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "get ecart")
		return
	}
	Success(c, ecart)
}

// ListByVol
// GET /api/v1/vols/:id/ecarts
func (h *EcartHandler) ListByVol(c *gin.Context) {
	ecarts, err := h.svc.ListByVol(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "list ecarts for vol")
		return
	}
	Success(c, ecarts)
}

// Create records a manually spotted variance.
// POST /api/v1/ecarts
func (h *EcartHandler) Create(c *gin.Context) {
	var req service.CreateEcartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	ecart, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err, "create ecart")
		return
	}
	Created(c, ecart)
}

// Traiter
// POST /api/v1/ecarts/:id/traiter
func (h *EcartHandler) Traiter(c *gin.Context) {
	ecart, err := h.svc.Traiter(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		HandleError(c, err, "process ecart")
		return
	}
	Success(c, ecart)
}

type resolveEcartRequest struct {
	ActionCorrective string `json:"action_corrective"`
}

// Resoudre
// POST /api/v1/ecarts/:id/resoudre
func (h *EcartHandler) Resoudre(c *gin.Context) {
	var req resolveEcartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	ecart, err := h.svc.Resoudre(c.Request.Context(), c.Param("id"), GetUserID(c), req.ActionCorrective)
	if err != nil {
		HandleError(c, err, "resolve ecart")
		return
	}
	Success(c, ecart)
}

// Accepter
// POST /api/v1/ecarts/:id/accepter
func (h *EcartHandler) Accepter(c *gin.Context) {
	var req resolveEcartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	ecart, err := h.svc.Accepter(c.Request.Context(), c.Param("id"), GetUserID(c), req.ActionCorrective)
	if err != nil {
		HandleError(c, err, "accept ecart")
		return
	}
	Success(c, ecart)
}

// Rejeter
// POST /api/v1/ecarts/:id/rejeter
func (h *EcartHandler) Rejeter(c *gin.Context) {
	var req resolveEcartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	ecart, err := h.svc.Rejeter(c.Request.Context(), c.Param("id"), GetUserID(c), req.ActionCorrective)
	if err != nil {
		HandleError(c, err, "reject ecart")
		return
	}
	Success(c, ecart)
}

// Delete
// DELETE /api/v1/ecarts/:id
func (h *EcartHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err, "delete ecart")
		return
	}
	Success(c, nil)
}

// StatisticsForVol
// GET /api/v1/vols/:id/ecarts/statistics
func (h *EcartHandler) StatisticsForVol(c *gin.Context) {
	stats, err := h.svc.StatisticsForVol(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "ecart statistics")
		return
	}
	Success(c, stats)
}
