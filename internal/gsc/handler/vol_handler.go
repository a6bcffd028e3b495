package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/skycater/gsc/internal/gsc/service"
)

// VolHandler flight endpoints.
type VolHandler struct {
	svc *service.VolService
}

func NewVolHandler(svc *service.VolService) *VolHandler {
	return &VolHandler{svc: svc}
}

// List
// GET /api/v1/vols?zone=xxx&season=xxx&search=xxx
func (h *VolHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"zone":   c.Query("zone"),
		"season": c.Query("season"),
		"search": c.Query("search"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err, "list vols")
		return
	}
	paginate(c, items, total, page, pageSize)
}

// Get
// GET /api/v1/vols/:id
func (h *VolHandler) Get(c *gin.Context) {
	vol, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "get vol")
		return
	}
	Success(c, vol)
}

// Create
// POST /api/v1/vols
func (h *VolHandler) Create(c *gin.Context) {
	var req service.CreateVolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	vol, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err, "create vol")
		return
	}
	Created(c, vol)
}

// Update
// PUT /api/v1/vols/:id
func (h *VolHandler) Update(c *gin.Context) {
	var req service.UpdateVolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	vol, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err, "update vol")
		return
	}
	Success(c, vol)
}

// Delete
// DELETE /api/v1/vols/:id
func (h *VolHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err, "delete vol")
		return
	}
	Success(c, nil)
}
