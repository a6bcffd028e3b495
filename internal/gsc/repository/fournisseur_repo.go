package repository

import (
	"context"

	"github.com/skycater/gsc/internal/gsc/entity"
	"gorm.io/gorm"
)

// FournisseurRepository supplier storage.
type FournisseurRepository struct {
	db *gorm.DB
}

func NewFournisseurRepository(db *gorm.DB) *FournisseurRepository {
	return &FournisseurRepository{db: db}
}

func (r *FournisseurRepository) FindAll(ctx context.Context, page, pageSize int, search string) ([]entity.Fournisseur, int64, error) {
	var items []entity.Fournisseur
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Fournisseur{})
	if search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("name ASC").Offset(offset).Limit(pageSize).Find(&items).Error
	return items, total, err
}

func (r *FournisseurRepository) FindByID(ctx context.Context, id string) (*entity.Fournisseur, error) {
	var f entity.Fournisseur
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &f, nil
}

func (r *FournisseurRepository) Create(ctx context.Context, f *entity.Fournisseur) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(f).Error)
}

func (r *FournisseurRepository) Update(ctx context.Context, f *entity.Fournisseur) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *FournisseurRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Fournisseur{}).Error
}
