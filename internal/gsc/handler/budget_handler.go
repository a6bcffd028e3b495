package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skycater/gsc/internal/gsc/service"
)

// BudgetHandler budget aggregation endpoints.
type BudgetHandler struct {
	svc *service.BudgetService
}

func NewBudgetHandler(svc *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{svc: svc}
}

func parsePeriod(c *gin.Context) (debut, fin time.Time, ok bool) {
	var err error
	debut, err = time.Parse("2006-01-02", c.Query("debut"))
	if err != nil {
		BadRequest(c, "debut must be YYYY-MM-DD")
		return debut, fin, false
	}
	fin, err = time.Parse("2006-01-02", c.Query("fin"))
	if err != nil {
		BadRequest(c, "fin must be YYYY-MM-DD")
		return debut, fin, false
	}
	if fin.Before(debut) {
		BadRequest(c, "fin must not precede debut")
		return debut, fin, false
	}
	return debut, fin, true
}

// Statistics
// GET /api/v1/budget/statistics?debut=2026-01-01&fin=2026-01-31&zone=xxx
func (h *BudgetHandler) Statistics(c *gin.Context) {
	debut, fin, ok := parsePeriod(c)
	if !ok {
		return
	}

	stats, err := h.svc.Statistics(c.Request.Context(), debut, fin, c.Query("zone"))
	if err != nil {
		HandleError(c, err, "budget statistics")
		return
	}
	Success(c, stats)
}

// Export
// GET /api/v1/budget/export?debut=2026-01-01&fin=2026-01-31&zone=xxx
func (h *BudgetHandler) Export(c *gin.Context) {
	debut, fin, ok := parsePeriod(c)
	if !ok {
		return
	}

	f, filename, err := h.svc.ExportExcel(c.Request.Context(), debut, fin, c.Query("zone"))
	if err != nil {
		HandleError(c, err, "budget export")
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}

// ListRapports
// GET /api/v1/budget/rapports?type_rapport=mensuel&titre=janvier
func (h *BudgetHandler) ListRapports(c *gin.Context) {
	page, pageSize := GetPagination(c)
	rapports, total, err := h.svc.ListRapports(c.Request.Context(), page, pageSize, c.Query("type_rapport"), c.Query("titre"))
	if err != nil {
		HandleError(c, err, "list rapports")
		return
	}
	paginate(c, rapports, total, page, pageSize)
}

// GetRapport
// GET /api/v1/budget/rapports/:id
func (h *BudgetHandler) GetRapport(c *gin.Context) {
	rapport, err := h.svc.GetRapport(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "get rapport")
		return
	}
	Success(c, rapport)
}

// GenerateRapport
// POST /api/v1/budget/rapports
func (h *BudgetHandler) GenerateRapport(c *gin.Context) {
	var req service.GenerateRapportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.DateFin.Before(req.DateDebut) {
		BadRequest(c, "date_fin must not precede date_debut")
		return
	}

	rapport, err := h.svc.GenerateRapport(c.Request.Context(), GetUserName(c), &req)
	if err != nil {
		HandleError(c, err, "generate rapport")
		return
	}
	Created(c, rapport)
}

// DeleteRapport
// DELETE /api/v1/budget/rapports/:id
func (h *BudgetHandler) DeleteRapport(c *gin.Context) {
	if err := h.svc.DeleteRapport(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err, "delete rapport")
		return
	}
	Success(c, nil)
}
