package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/skycater/gsc/internal/gsc/service"
)

// BoiteHandler medical box endpoints.
type BoiteHandler struct {
	svc *service.BoiteService
}

func NewBoiteHandler(svc *service.BoiteService) *BoiteHandler {
	return &BoiteHandler{svc: svc}
}

// List
// GET /api/v1/boites?type=xxx&status=xxx
func (h *BoiteHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"type":   c.Query("type"),
		"status": c.Query("status"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err, "list boites")
		return
	}
	paginate(c, items, total, page, pageSize)
}

// Get
// GET /api/v1/boites/:id
func (h *BoiteHandler) Get(c *gin.Context) {
	boite, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "get boite")
		return
	}
	Success(c, boite)
}

// Create
// POST /api/v1/boites
func (h *BoiteHandler) Create(c *gin.Context) {
	var req service.CreateBoiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	boite, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err, "create boite")
		return
	}
	Created(c, boite)
}

// Update
// PUT /api/v1/boites/:id
func (h *BoiteHandler) Update(c *gin.Context) {
	var req service.UpdateBoiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	boite, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err, "update boite")
		return
	}
	Success(c, boite)
}

// Delete
// DELETE /api/v1/boites/:id
func (h *BoiteHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err, "delete boite")
		return
	}
	Success(c, nil)
}

// RecommendForVol
// GET /api/v1/vols/:id/boites/recommendations
func (h *BoiteHandler) RecommendForVol(c *gin.Context) {
	boites, err := h.svc.RecommendForVol(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "recommend boites")
		return
	}
	Success(c, boites)
}

type assignBoiteRequest struct {
	BoiteID string `json:"boite_id" binding:"required"`
}

// AssignToVol
// POST /api/v1/vols/:id/boites
func (h *BoiteHandler) AssignToVol(c *gin.Context) {
	var req assignBoiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	link, err := h.svc.AssignToVol(c.Request.Context(), c.Param("id"), req.BoiteID, GetUserID(c))
	if err != nil {
		HandleError(c, err, "assign boite")
		return
	}
	Created(c, link)
}
