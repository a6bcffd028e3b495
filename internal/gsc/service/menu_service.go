package service

import (
	"context"

	"github.com/skycater/gsc/internal/gsc/entity"
	"github.com/skycater/gsc/internal/gsc/repository"
)

// MenuService menu catalog and per-flight quantity derivation.
type MenuService struct {
	menuRepo    *repository.MenuRepository
	planRepo    *repository.PlanRepository
	volRepo     *repository.VolRepository
	articleRepo *repository.ArticleRepository
}

func NewMenuService(menuRepo *repository.MenuRepository, planRepo *repository.PlanRepository, volRepo *repository.VolRepository, articleRepo *repository.ArticleRepository) *MenuService {
	return &MenuService{
		menuRepo:    menuRepo,
		planRepo:    planRepo,
		volRepo:     volRepo,
		articleRepo: articleRepo,
	}
}

func (s *MenuService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Menu, int64, error) {
	return s.menuRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *MenuService) Get(ctx context.Context, id string) (*entity.Menu, error) {
	return s.menuRepo.FindByID(ctx, id)
}

// CreateMenuRequest creation payload.
type CreateMenuRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	TypePassager  string           `json:"type_passager" binding:"required"`
	Season        string           `json:"season"`
	Zone          string           `json:"zone"`
	FournisseurID *string          `json:"fournisseur_id"`
	Items         []CreateMenuItem `json:"items"`
}

type CreateMenuItem struct {
	ArticleID    string `json:"article_id" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required"`
	TypePassager string `json:"type_passager"`
}

func (s *MenuService) Create(ctx context.Context, req *CreateMenuRequest) (*entity.Menu, error) {
	menu := &entity.Menu{
		ID:            generateID(),
		Name:          req.Name,
		Description:   req.Description,
		TypePassager:  req.TypePassager,
		Season:        req.Season,
		Zone:          req.Zone,
		FournisseurID: req.FournisseurID,
		IsActive:      true,
	}
	for _, item := range req.Items {
		menu.Items = append(menu.Items, entity.MenuItem{
			ID:           generateID(),
			MenuID:       menu.ID,
			ArticleID:    item.ArticleID,
			Quantity:     item.Quantity,
			TypePassager: item.TypePassager,
		})
	}

	if err := s.menuRepo.Create(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// UpdateMenuRequest partial update payload.
type UpdateMenuRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	TypePassager  *string `json:"type_passager"`
	Season        *string `json:"season"`
	Zone          *string `json:"zone"`
	FournisseurID *string `json:"fournisseur_id"`
	IsActive      *bool   `json:"is_active"`
}

func (s *MenuService) Update(ctx context.Context, id string, req *UpdateMenuRequest) (*entity.Menu, error) {
	menu, err := s.menuRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.TypePassager != nil {
		menu.TypePassager = *req.TypePassager
	}
	if req.Season != nil {
		menu.Season = *req.Season
	}
	if req.Zone != nil {
		menu.Zone = *req.Zone
	}
	if req.FournisseurID != nil {
		menu.FournisseurID = req.FournisseurID
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}

	if err := s.menuRepo.Update(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

func (s *MenuService) Delete(ctx context.Context, id string) error {
	if _, err := s.menuRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.menuRepo.Delete(ctx, id)
}

func (s *MenuService) AddItem(ctx context.Context, menuID string, req *CreateMenuItem) (*entity.MenuItem, error) {
	if _, err := s.menuRepo.FindByID(ctx, menuID); err != nil {
		return nil, err
	}
	if _, err := s.articleRepo.FindByID(ctx, req.ArticleID); err != nil {
		return nil, err
	}

	item := &entity.MenuItem{
		ID:           generateID(),
		MenuID:       menuID,
		ArticleID:    req.ArticleID,
		Quantity:     req.Quantity,
		TypePassager: req.TypePassager,
	}
	if err := s.menuRepo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuService) RemoveItem(ctx context.Context, itemID string) error {
	return s.menuRepo.RemoveItem(ctx, itemID)
}

// QuantitesForVol loads the flight's plan and assigned menus and derives the
// per-article quantity map feeding BCP generation and cost estimates.
func (s *MenuService) QuantitesForVol(ctx context.Context, volID string) (map[string]int, error) {
	vol, err := s.volRepo.FindByID(ctx, volID)
	if err != nil {
		return nil, err
	}

	plan, err := s.planRepo.FindByVolID(ctx, volID)
	if err != nil && err != repository.ErrNotFound {
		return nil, err
	}

	menus, err := s.menuRepo.FindAssignedToVol(ctx, volID)
	if err != nil {
		return nil, err
	}

	return CalculerQuantites(vol, plan, menus), nil
}

// MenuStatistics rollup of the menus assigned to one flight.
type MenuStatistics struct {
	TotalMenusAssigned   int            `json:"total_menus_assigned"`
	TotalArticles        int            `json:"total_articles"`
	MenusByPassengerType map[string]int `json:"menus_by_passenger_type"`
	ArticlesByType       map[string]int `json:"articles_by_type"`
	EstimatedTotalCost   float64        `json:"estimated_total_cost"`
	Quantites            map[string]int `json:"quantites"`
}

// Statistics summarizes assignment, per-type counts and the estimated cost
// of everything the flight's menus and plan require.
func (s *MenuService) Statistics(ctx context.Context, volID string) (*MenuStatistics, error) {
	menus, err := s.menuRepo.FindAssignedToVol(ctx, volID)
	if err != nil {
		return nil, err
	}

	stats := &MenuStatistics{
		MenusByPassengerType: make(map[string]int),
		ArticlesByType:       make(map[string]int),
	}

	distinct := make(map[string]struct{})
	for _, menu := range menus {
		stats.TotalMenusAssigned++
		stats.MenusByPassengerType[menu.TypePassager]++
		for _, item := range menu.Items {
			distinct[item.ArticleID] = struct{}{}
		}
	}
	stats.TotalArticles = len(distinct)

	quantites, err := s.QuantitesForVol(ctx, volID)
	if err != nil {
		return nil, err
	}
	stats.Quantites = quantites

	ids := make([]string, 0, len(quantites))
	for id := range quantites {
		ids = append(ids, id)
	}
	articles, err := s.articleRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for articleID, qty := range quantites {
		article, ok := articles[articleID]
		if !ok {
			continue
		}
		stats.ArticlesByType[article.Type] += qty
	}
	stats.EstimatedTotalCost = CoutEstime(quantites, articles)

	return stats, nil
}
