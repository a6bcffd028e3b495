package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/skycater/gsc/internal/gsc/service"
)

// CatalogueHandler article and supplier endpoints.
type CatalogueHandler struct {
	svc *service.CatalogueService
}

func NewCatalogueHandler(svc *service.CatalogueService) *CatalogueHandler {
	return &CatalogueHandler{svc: svc}
}

// ListArticles
// GET /api/v1/articles?type=xxx&active=true&search=xxx
func (h *CatalogueHandler) ListArticles(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"type":   c.Query("type"),
		"active": c.Query("active"),
		"search": c.Query("search"),
	}

	items, total, err := h.svc.ListArticles(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err, "list articles")
		return
	}
	paginate(c, items, total, page, pageSize)
}

// GetArticle
// GET /api/v1/articles/:id
func (h *CatalogueHandler) GetArticle(c *gin.Context) {
	article, err := h.svc.GetArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "get article")
		return
	}
	Success(c, article)
}

// CreateArticle
// POST /api/v1/articles
func (h *CatalogueHandler) CreateArticle(c *gin.Context) {
	var req service.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	article, err := h.svc.CreateArticle(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err, "create article")
		return
	}
	Created(c, article)
}

// UpdateArticle
// PUT /api/v1/articles/:id
func (h *CatalogueHandler) UpdateArticle(c *gin.Context) {
	var req service.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	article, err := h.svc.UpdateArticle(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err, "update article")
		return
	}
	Success(c, article)
}

// DeleteArticle
// DELETE /api/v1/articles/:id
func (h *CatalogueHandler) DeleteArticle(c *gin.Context) {
	if err := h.svc.DeleteArticle(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err, "delete article")
		return
	}
	Success(c, nil)
}

// ListFournisseurs
// GET /api/v1/fournisseurs?search=xxx
func (h *CatalogueHandler) ListFournisseurs(c *gin.Context) {
	page, pageSize := GetPagination(c)

	items, total, err := h.svc.ListFournisseurs(c.Request.Context(), page, pageSize, c.Query("search"))
	if err != nil {
		HandleError(c, err, "list fournisseurs")
		return
	}
	paginate(c, items, total, page, pageSize)
}

// GetFournisseur
// GET /api/v1/fournisseurs/:id
func (h *CatalogueHandler) GetFournisseur(c *gin.Context) {
	f, err := h.svc.GetFournisseur(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "get fournisseur")
		return
	}
	Success(c, f)
}

// CreateFournisseur
// POST /api/v1/fournisseurs
func (h *CatalogueHandler) CreateFournisseur(c *gin.Context) {
	var req service.CreateFournisseurRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	f, err := h.svc.CreateFournisseur(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err, "create fournisseur")
		return
	}
	Created(c, f)
}

// UpdateFournisseur
// PUT /api/v1/fournisseurs/:id
func (h *CatalogueHandler) UpdateFournisseur(c *gin.Context) {
	var req service.UpdateFournisseurRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	f, err := h.svc.UpdateFournisseur(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err, "update fournisseur")
		return
	}
	Success(c, f)
}

// DeleteFournisseur
// DELETE /api/v1/fournisseurs/:id
func (h *CatalogueHandler) DeleteFournisseur(c *gin.Context) {
	if err := h.svc.DeleteFournisseur(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err, "delete fournisseur")
		return
	}
	Success(c, nil)
}
