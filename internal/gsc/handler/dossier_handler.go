package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/skycater/gsc/internal/gsc/service"
)

// DossierHandler flight dossier endpoints, document management included.
type DossierHandler struct {
	svc *service.DossierService
}

func NewDossierHandler(svc *service.DossierService) *DossierHandler {
	return &DossierHandler{svc: svc}
}

// List
// GET /api/v1/dossiers?status=xxx
func (h *DossierHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, c.Query("status"))
	if err != nil {
		HandleError(c, err, "list dossiers")
		return
	}
	paginate(c, items, total, page, pageSize)
}

// Get
// GET /api/v1/dossiers/:id
func (h *DossierHandler) Get(c *gin.Context) {
	dossier, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "get dossier")
		return
	}
	Success(c, dossier)
}

// GetByVol
// GET /api/v1/vols/:id/dossier
func (h *DossierHandler) GetByVol(c *gin.Context) {
	dossier, err := h.svc.GetByVol(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "get dossier for vol")
		return
	}
	Success(c, dossier)
}

// Generate builds the dossier from the flight's orders, deliveries and
// écarts.
// POST /api/v1/vols/:id/dossier
func (h *DossierHandler) Generate(c *gin.Context) {
	dossier, err := h.svc.GenerateFromVol(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "generate dossier")
		return
	}
	Created(c, dossier)
}

// MarquerComplete
// POST /api/v1/dossiers/:id/complete
func (h *DossierHandler) MarquerComplete(c *gin.Context) {
	dossier, err := h.svc.MarquerComplete(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "complete dossier")
		return
	}
	Success(c, dossier)
}

// Valider
// POST /api/v1/dossiers/:id/valider
func (h *DossierHandler) Valider(c *gin.Context) {
	dossier, err := h.svc.Valider(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		HandleError(c, err, "validate dossier")
		return
	}
	Success(c, dossier)
}

// Archiver
// POST /api/v1/dossiers/:id/archiver
func (h *DossierHandler) Archiver(c *gin.Context) {
	dossier, err := h.svc.Archiver(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "archive dossier")
		return
	}
	Success(c, dossier)
}

// Delete
// DELETE /api/v1/dossiers/:id
func (h *DossierHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err, "delete dossier")
		return
	}
	Success(c, nil)
}

// UploadDocument
// POST /api/v1/dossiers/:id/documents
func (h *DossierHandler) UploadDocument(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	nomDocument := c.PostForm("nom_document")
	if nomDocument == "" {
		nomDocument = header.Filename
	}
	typeDocument := c.PostForm("type_document")

	doc, err := h.svc.UploadDocument(c.Request.Context(), c.Param("id"), GetUserID(c),
		nomDocument, typeDocument, file, header.Filename, header.Size,
		header.Header.Get("Content-Type"))
	if err != nil {
		HandleError(c, err, "upload document")
		return
	}
	Created(c, doc)
}

// DownloadDocument
// GET /api/v1/dossiers/:id/documents/:docId/download
func (h *DossierHandler) DownloadDocument(c *gin.Context) {
	reader, doc, err := h.svc.DownloadDocument(c.Request.Context(), c.Param("docId"))
	if err != nil {
		HandleError(c, err, "download document")
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", "attachment; filename=\""+doc.NomDocument+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if _, err := io.Copy(c.Writer, reader); err != nil {
		InternalError(c, "write document: "+err.Error())
	}
}

// DeleteDocument
// DELETE /api/v1/dossiers/:id/documents/:docId
func (h *DossierHandler) DeleteDocument(c *gin.Context) {
	if err := h.svc.DeleteDocument(c.Request.Context(), c.Param("docId")); err != nil {
		HandleError(c, err, "delete document")
		return
	}
	Success(c, nil)
}
