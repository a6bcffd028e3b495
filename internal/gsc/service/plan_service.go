package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/skycater/gsc/internal/gsc/entity"
	"github.com/skycater/gsc/internal/gsc/repository"
)

// PlanService plan d'hébergement generation and menu assignment.
type PlanService struct {
	planRepo    *repository.PlanRepository
	volRepo     *repository.VolRepository
	menuRepo    *repository.MenuRepository
	articleRepo *repository.ArticleRepository
}

func NewPlanService(planRepo *repository.PlanRepository, volRepo *repository.VolRepository, menuRepo *repository.MenuRepository, articleRepo *repository.ArticleRepository) *PlanService {
	return &PlanService{
		planRepo:    planRepo,
		volRepo:     volRepo,
		menuRepo:    menuRepo,
		articleRepo: articleRepo,
	}
}

func (s *PlanService) Get(ctx context.Context, id string) (*entity.PlanHebergement, error) {
	return s.planRepo.FindByID(ctx, id)
}

func (s *PlanService) GetByVol(ctx context.Context, volID string) (*entity.PlanHebergement, error) {
	return s.planRepo.FindByVolID(ctx, volID)
}

// GenerateForVol creates the plan for a flight, seeding standard cabin
// articles from the catalog. Seeding ratios: one couverture per two
// passengers, one oreiller per three, one serviette each. One plan per vol.
func (s *PlanService) GenerateForVol(ctx context.Context, volID string) (*entity.PlanHebergement, error) {
	vol, err := s.volRepo.FindByID(ctx, volID)
	if err != nil {
		return nil, err
	}

	exists, err := s.planRepo.ExistsForVol(ctx, volID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPlanExists
	}

	plan := &entity.PlanHebergement{
		ID:              generateID(),
		VolID:           vol.ID,
		Name:            fmt.Sprintf("Plan %s %s", vol.FlightNumber, vol.FlightDate.Format("2006-01-02")),
		Season:          vol.Season,
		AircraftType:    vol.Aircraft,
		Zone:            vol.Zone,
		DurationMinutes: vol.DurationMinutes,
		IsActive:        true,
	}

	candidates, err := s.articleRepo.FindStandardCandidates(ctx)
	if err != nil {
		return nil, err
	}

	var articles []entity.PlanHebergementArticle
	for _, article := range candidates {
		qty := standardQuantite(&article, vol)
		if qty == 0 {
			continue
		}
		articles = append(articles, entity.PlanHebergementArticle{
			ID:                generateID(),
			PlanHebergementID: plan.ID,
			ArticleID:         article.ID,
			QuantiteStandard:  qty,
			TypePassager:      "tous",
		})
	}

	if err := s.planRepo.CreateWithArticles(ctx, plan, articles); err != nil {
		return nil, err
	}
	return s.planRepo.FindByID(ctx, plan.ID)
}

// standardQuantite seeded quantity for a standard cabin article: couvertures
// for half the passengers, oreillers for a third, one serviette each.
// Anything else is not a standard article and seeds nothing.
func standardQuantite(article *entity.Article, vol *entity.Vol) int {
	name := strings.ToLower(article.Name)
	switch {
	case article.Type == entity.TypeArticleMaterielDivers && strings.Contains(name, "couverture"):
		return vol.EstimatedPassengers / 2
	case article.Type == entity.TypeArticleMaterielDivers && strings.Contains(name, "oreiller"):
		return vol.EstimatedPassengers / 3
	case article.Type == entity.TypeArticleConsommable && strings.Contains(name, "serviette"):
		return vol.EstimatedPassengers
	}
	return 0
}

// AssignMenu links a menu to a plan after compatibility checks: the menu
// must be active, carry a supplier, and match the vol's zone and season when
// it declares them.
func (s *PlanService) AssignMenu(ctx context.Context, planID, menuID string) error {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return err
	}
	menu, err := s.menuRepo.FindByID(ctx, menuID)
	if err != nil {
		return err
	}

	if !menu.IsActive {
		return fmt.Errorf("menu %s is inactive: %w", menu.Name, ErrMenuIncompatible)
	}
	if menu.FournisseurID == nil {
		return fmt.Errorf("menu %s has no supplier: %w", menu.Name, ErrMenuIncompatible)
	}
	if menu.Zone != "" && plan.Zone != "" && menu.Zone != plan.Zone {
		return fmt.Errorf("menu zone %q does not match vol zone %q: %w", menu.Zone, plan.Zone, ErrMenuIncompatible)
	}
	if menu.Season != "" && plan.Season != "" && menu.Season != plan.Season {
		return fmt.Errorf("menu season %q does not match vol season %q: %w", menu.Season, plan.Season, ErrMenuIncompatible)
	}

	return s.planRepo.AssignMenu(ctx, &entity.MenuPlanHebergement{
		ID:                generateID(),
		MenuID:            menu.ID,
		PlanHebergementID: plan.ID,
	})
}

func (s *PlanService) UnassignMenu(ctx context.Context, planID, menuID string) error {
	return s.planRepo.UnassignMenu(ctx, planID, menuID)
}

func (s *PlanService) Delete(ctx context.Context, id string) error {
	if _, err := s.planRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.planRepo.Delete(ctx, id)
}
