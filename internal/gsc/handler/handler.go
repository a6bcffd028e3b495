package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skycater/gsc/internal/gsc/repository"
	"github.com/skycater/gsc/internal/gsc/service"
)

// Handlers HTTP handler bundle.
type Handlers struct {
	Auth      *AuthHandler
	Vol       *VolHandler
	Catalogue *CatalogueHandler
	Plan      *PlanHandler
	Menu      *MenuHandler
	Commande  *CommandeHandler
	Livraison *LivraisonHandler
	Ecart     *EcartHandler
	Dossier   *DossierHandler
	Budget    *BudgetHandler
	Boite     *BoiteHandler
	Demande   *DemandeHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(svc.Auth),
		Vol:       NewVolHandler(svc.Vol),
		Catalogue: NewCatalogueHandler(svc.Catalogue),
		Plan:      NewPlanHandler(svc.Plan),
		Menu:      NewMenuHandler(svc.Menu),
		Commande:  NewCommandeHandler(svc.Commande),
		Livraison: NewLivraisonHandler(svc.Livraison),
		Ecart:     NewEcartHandler(svc.Ecart),
		Dossier:   NewDossierHandler(svc.Dossier),
		Budget:    NewBudgetHandler(svc.Budget),
		Boite:     NewBoiteHandler(svc.Boite),
		Demande:   NewDemandeHandler(svc.Demande),
	}
}

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// HandleError maps service and repository sentinels to HTTP status codes.
func HandleError(c *gin.Context, err error, action string) {
	message := action + ": " + err.Error()
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, message)
	case errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, repository.ErrConflict),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrPlanExists),
		errors.Is(err, service.ErrDossierExists):
		Conflict(c, message)
	case errors.Is(err, service.ErrMenuIncompatible):
		BadRequest(c, message)
	case errors.Is(err, service.ErrInvalidCredentials):
		Unauthorized(c, message)
	default:
		InternalError(c, message)
	}
}

func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

func GetUserName(c *gin.Context) string {
	userName, _ := c.Get("user_name")
	if name, ok := userName.(string); ok {
		return name
	}
	return ""
}

func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}

func paginate(c *gin.Context, items interface{}, total int64, page, pageSize int) {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	Success(c, ListResponse{
		Items: items,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	})
}
