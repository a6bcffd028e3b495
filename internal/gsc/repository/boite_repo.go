package repository

import (
	"context"
	"time"

	"github.com/skycater/gsc/internal/gsc/entity"
	"gorm.io/gorm"
)

// BoiteRepository medical box storage.
type BoiteRepository struct {
	db *gorm.DB
}

func NewBoiteRepository(db *gorm.DB) *BoiteRepository {
	return &BoiteRepository{db: db}
}

func (r *BoiteRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.BoiteMedicale, int64, error) {
	var items []entity.BoiteMedicale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.BoiteMedicale{})
	if t := filters["type"]; t != "" {
		query = query.Where("type = ?", t)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("reference ASC").Offset(offset).Limit(pageSize).Find(&items).Error
	return items, total, err
}

func (r *BoiteRepository) FindByID(ctx context.Context, id string) (*entity.BoiteMedicale, error) {
	var b entity.BoiteMedicale
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &b, nil
}

// FindAvailable active, available, unexpired boxes — the recommendation pool.
func (r *BoiteRepository) FindAvailable(ctx context.Context) ([]entity.BoiteMedicale, error) {
	var boxes []entity.BoiteMedicale
	err := r.db.WithContext(ctx).
		Where("is_active = true AND status = ? AND date_expiration > ?",
			entity.BoiteStatusDisponible, time.Now()).
		Find(&boxes).Error
	return boxes, err
}

func (r *BoiteRepository) Create(ctx context.Context, b *entity.BoiteMedicale) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *BoiteRepository) Update(ctx context.Context, b *entity.BoiteMedicale) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BoiteRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.BoiteMedicale{}).Error
}

// Assign marks the box assignee and records the flight link atomically.
func (r *BoiteRepository) Assign(ctx context.Context, link *entity.VolBoiteMedicale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(link).Error; err != nil {
			return err
		}
		return tx.Model(&entity.BoiteMedicale{}).
			Where("id = ?", link.BoiteMedicaleID).
			Update("status", entity.BoiteStatusAssignee).Error
	})
}
