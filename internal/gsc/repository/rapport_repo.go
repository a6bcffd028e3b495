package repository

import (
	"context"

	"github.com/skycater/gsc/internal/gsc/entity"
	"gorm.io/gorm"
)

// RapportRepository persisted budget report storage.
type RapportRepository struct {
	db *gorm.DB
}

func NewRapportRepository(db *gorm.DB) *RapportRepository {
	return &RapportRepository{db: db}
}

func (r *RapportRepository) FindAll(ctx context.Context, page, pageSize int, typeRapport, titre string) ([]entity.RapportBudgetaire, int64, error) {
	var items []entity.RapportBudgetaire
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.RapportBudgetaire{})
	if typeRapport != "" {
		query = query.Where("type_rapport = ?", typeRapport)
	}
	if titre != "" {
		query = query.Where("titre ILIKE ?", "%"+titre+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("date_generation DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *RapportRepository) FindByID(ctx context.Context, id string) (*entity.RapportBudgetaire, error) {
	var rapport entity.RapportBudgetaire
	err := r.db.WithContext(ctx).
		Preload("Details").
		Where("id = ?", id).
		First(&rapport).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &rapport, nil
}

// CreateWithDetails persists the report and its breakdown rows atomically.
func (r *RapportRepository) CreateWithDetails(ctx context.Context, rapport *entity.RapportBudgetaire) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(rapport).Error
	})
}

func (r *RapportRepository) Update(ctx context.Context, rapport *entity.RapportBudgetaire) error {
	return r.db.WithContext(ctx).Save(rapport).Error
}

func (r *RapportRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rapport_budgetaire_id = ?", id).Delete(&entity.RapportBudgetaireDetail{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.RapportBudgetaire{}).Error
	})
}
