package repository

import (
	"context"

	"github.com/skycater/gsc/internal/gsc/entity"
	"gorm.io/gorm"
)

// PlanRepository plan d'hébergement storage.
type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) FindByID(ctx context.Context, id string) (*entity.PlanHebergement, error) {
	var plan entity.PlanHebergement
	err := r.db.WithContext(ctx).
		Preload("Articles").
		Preload("Articles.Article").
		Preload("Menus").
		Preload("Menus.Menu").
		Preload("Menus.Menu.Items").
		Where("id = ?", id).
		First(&plan).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &plan, nil
}

// FindByVolID the (at most one) plan for a flight, with its standard
// articles and assigned menus down to the menu items.
func (r *PlanRepository) FindByVolID(ctx context.Context, volID string) (*entity.PlanHebergement, error) {
	var plan entity.PlanHebergement
	err := r.db.WithContext(ctx).
		Preload("Articles").
		Preload("Articles.Article").
		Preload("Menus").
		Preload("Menus.Menu").
		Preload("Menus.Menu.Items").
		Where("vol_id = ?", volID).
		First(&plan).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &plan, nil
}

// ExistsForVol pre-check for the one-plan-per-flight constraint; the DB
// unique index on vol_id is the backstop.
func (r *PlanRepository) ExistsForVol(ctx context.Context, volID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entity.PlanHebergement{}).
		Where("vol_id = ?", volID).
		Count(&n).Error
	return n > 0, err
}

// CreateWithArticles plan plus seeded standard articles in one transaction.
func (r *PlanRepository) CreateWithArticles(ctx context.Context, plan *entity.PlanHebergement, articles []entity.PlanHebergementArticle) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plan).Error; err != nil {
			return translateDuplicate(err)
		}
		if len(articles) > 0 {
			if err := tx.Create(&articles).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PlanRepository) Update(ctx context.Context, plan *entity.PlanHebergement) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

// AssignMenu links a menu to a plan.
func (r *PlanRepository) AssignMenu(ctx context.Context, link *entity.MenuPlanHebergement) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// UnassignMenu removes a menu link from a plan.
func (r *PlanRepository) UnassignMenu(ctx context.Context, planID, menuID string) error {
	return r.db.WithContext(ctx).
		Where("plan_hebergement_id = ? AND menu_id = ?", planID, menuID).
		Delete(&entity.MenuPlanHebergement{}).Error
}

func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_hebergement_id = ?", id).Delete(&entity.PlanHebergementArticle{}).Error; err != nil {
			return err
		}
		if err := tx.Where("plan_hebergement_id = ?", id).Delete(&entity.MenuPlanHebergement{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.PlanHebergement{}).Error
	})
}
