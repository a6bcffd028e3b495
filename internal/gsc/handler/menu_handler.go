package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/skycater/gsc/internal/gsc/service"
)

// MenuHandler menu catalog endpoints.
type MenuHandler struct {
	svc *service.MenuService
}

func NewMenuHandler(svc *service.MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

// List
// GET /api/v1/menus?type_passager=xxx&zone=xxx&season=xxx&search=xxx
func (h *MenuHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"type_passager": c.Query("type_passager"),
		"zone":          c.Query("zone"),
		"season":        c.Query("season"),
		"search":        c.Query("search"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err, "list menus")
		return
	}
	paginate(c, items, total, page, pageSize)
}

// Get
// GET /api/v1/menus/:id
func (h *MenuHandler) Get(c *gin.Context) {
	menu, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "get menu")
		return
	}
	Success(c, menu)
}

// Create
// POST /api/v1/menus
func (h *MenuHandler) Create(c *gin.Context) {
	var req service.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	menu, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err, "create menu")
		return
	}
	Created(c, menu)
}

// Update
// PUT /api/v1/menus/:id
func (h *MenuHandler) Update(c *gin.Context) {
	var req service.UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	menu, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err, "update menu")
		return
	}
	Success(c, menu)
}

// Delete
// DELETE /api/v1/menus/:id
func (h *MenuHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err, "delete menu")
		return
	}
	Success(c, nil)
}

// AddItem
// POST /api/v1/menus/:id/items
func (h *MenuHandler) AddItem(c *gin.Context) {
	var req service.CreateMenuItem
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	item, err := h.svc.AddItem(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err, "add menu item")
		return
	}
	Created(c, item)
}

// RemoveItem
// DELETE /api/v1/menus/:id/items/:itemId
func (h *MenuHandler) RemoveItem(c *gin.Context) {
	if err := h.svc.RemoveItem(c.Request.Context(), c.Param("itemId")); err != nil {
		HandleError(c, err, "remove menu item")
		return
	}
	Success(c, nil)
}

// Statistics
// GET /api/v1/vols/:id/menus/statistics
func (h *MenuHandler) Statistics(c *gin.Context) {
	stats, err := h.svc.Statistics(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "menu statistics")
		return
	}
	Success(c, stats)
}
