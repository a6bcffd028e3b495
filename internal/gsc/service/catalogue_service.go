package service

import (
	"context"

	"github.com/skycater/gsc/internal/gsc/entity"
	"github.com/skycater/gsc/internal/gsc/repository"
)

// CatalogueService article and supplier reference data.
type CatalogueService struct {
	articleRepo     *repository.ArticleRepository
	fournisseurRepo *repository.FournisseurRepository
}

func NewCatalogueService(articleRepo *repository.ArticleRepository, fournisseurRepo *repository.FournisseurRepository) *CatalogueService {
	return &CatalogueService{articleRepo: articleRepo, fournisseurRepo: fournisseurRepo}
}

func (s *CatalogueService) ListArticles(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Article, int64, error) {
	return s.articleRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *CatalogueService) GetArticle(ctx context.Context, id string) (*entity.Article, error) {
	return s.articleRepo.FindByID(ctx, id)
}

// CreateArticleRequest creation payload.
type CreateArticleRequest struct {
	Code          string  `json:"code" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Type          string  `json:"type" binding:"required"`
	Unit          string  `json:"unit"`
	UnitPrice     float64 `json:"unit_price"`
	Supplier      string  `json:"supplier"`
	FournisseurID *string `json:"fournisseur_id"`
}

func (s *CatalogueService) CreateArticle(ctx context.Context, req *CreateArticleRequest) (*entity.Article, error) {
	unit := req.Unit
	if unit == "" {
		unit = "piece"
	}

	article := &entity.Article{
		ID:            generateID(),
		Code:          req.Code,
		Name:          req.Name,
		Description:   req.Description,
		Type:          req.Type,
		Unit:          unit,
		UnitPrice:     req.UnitPrice,
		Supplier:      req.Supplier,
		FournisseurID: req.FournisseurID,
		IsActive:      true,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// UpdateArticleRequest partial update payload.
type UpdateArticleRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Type          *string  `json:"type"`
	Unit          *string  `json:"unit"`
	UnitPrice     *float64 `json:"unit_price"`
	Supplier      *string  `json:"supplier"`
	FournisseurID *string  `json:"fournisseur_id"`
	IsActive      *bool    `json:"is_active"`
}

func (s *CatalogueService) UpdateArticle(ctx context.Context, id string, req *UpdateArticleRequest) (*entity.Article, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		article.Name = *req.Name
	}
	if req.Description != nil {
		article.Description = *req.Description
	}
	if req.Type != nil {
		article.Type = *req.Type
	}
	if req.Unit != nil {
		article.Unit = *req.Unit
	}
	if req.UnitPrice != nil {
		article.UnitPrice = *req.UnitPrice
	}
	if req.Supplier != nil {
		article.Supplier = *req.Supplier
	}
	if req.FournisseurID != nil {
		article.FournisseurID = req.FournisseurID
	}
	if req.IsActive != nil {
		article.IsActive = *req.IsActive
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *CatalogueService) DeleteArticle(ctx context.Context, id string) error {
	if _, err := s.articleRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.articleRepo.Delete(ctx, id)
}

func (s *CatalogueService) ListFournisseurs(ctx context.Context, page, pageSize int, search string) ([]entity.Fournisseur, int64, error) {
	return s.fournisseurRepo.FindAll(ctx, page, pageSize, search)
}

func (s *CatalogueService) GetFournisseur(ctx context.Context, id string) (*entity.Fournisseur, error) {
	return s.fournisseurRepo.FindByID(ctx, id)
}

// CreateFournisseurRequest creation payload.
type CreateFournisseurRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (s *CatalogueService) CreateFournisseur(ctx context.Context, req *CreateFournisseurRequest) (*entity.Fournisseur, error) {
	f := &entity.Fournisseur{
		ID:       generateID(),
		Code:     req.Code,
		Name:     req.Name,
		Contact:  req.Contact,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		IsActive: true,
	}
	if err := s.fournisseurRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// UpdateFournisseurRequest partial update payload.
type UpdateFournisseurRequest struct {
	Name     *string `json:"name"`
	Contact  *string `json:"contact"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"is_active"`
}

func (s *CatalogueService) UpdateFournisseur(ctx context.Context, id string, req *UpdateFournisseurRequest) (*entity.Fournisseur, error) {
	f, err := s.fournisseurRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		f.Name = *req.Name
	}
	if req.Contact != nil {
		f.Contact = *req.Contact
	}
	if req.Email != nil {
		f.Email = *req.Email
	}
	if req.Phone != nil {
		f.Phone = *req.Phone
	}
	if req.Address != nil {
		f.Address = *req.Address
	}
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}

	if err := s.fournisseurRepo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *CatalogueService) DeleteFournisseur(ctx context.Context, id string) error {
	if _, err := s.fournisseurRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.fournisseurRepo.Delete(ctx, id)
}
