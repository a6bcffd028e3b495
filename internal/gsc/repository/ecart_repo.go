package repository

import (
	"context"
	"time"

	"github.com/skycater/gsc/internal/gsc/entity"
	"gorm.io/gorm"
)

// EcartRepository variance storage.
type EcartRepository struct {
	db *gorm.DB
}

func NewEcartRepository(db *gorm.DB) *EcartRepository {
	return &EcartRepository{db: db}
}

func (r *EcartRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Ecart, int64, error) {
	var items []entity.Ecart
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Ecart{})

	if volID := filters["vol_id"]; volID != "" {
		query = query.Where("vol_id = ?", volID)
	}
	if blID := filters["bl_id"]; blID != "" {
		query = query.Where("bl_id = ?", blID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if typeEcart := filters["type_ecart"]; typeEcart != "" {
		query = query.Where("type_ecart = ?", typeEcart)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Article").
		Order("date_detection DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *EcartRepository) FindByID(ctx context.Context, id string) (*entity.Ecart, error) {
	var ecart entity.Ecart
	err := r.db.WithContext(ctx).
		Preload("Article").
		Where("id = ?", id).
		First(&ecart).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &ecart, nil
}

// FindByVolID every variance of a flight, any status.
func (r *EcartRepository) FindByVolID(ctx context.Context, volID string) ([]entity.Ecart, error) {
	var ecarts []entity.Ecart
	err := r.db.WithContext(ctx).Where("vol_id = ?", volID).Find(&ecarts).Error
	return ecarts, err
}

// FindInPeriod variances whose flight falls in [debut, fin], optionally
// restricted by zone. Read-side input for the budget aggregator.
func (r *EcartRepository) FindInPeriod(ctx context.Context, debut, fin time.Time, zone string) ([]entity.Ecart, error) {
	var ecarts []entity.Ecart
	query := r.db.WithContext(ctx).
		Joins("JOIN gsc_vols v ON v.id = gsc_ecarts.vol_id").
		Where("v.flight_date >= ? AND v.flight_date <= ?", debut, fin)
	if zone != "" {
		query = query.Where("v.zone = ?", zone)
	}
	err := query.Find(&ecarts).Error
	return ecarts, err
}

func (r *EcartRepository) Create(ctx context.Context, ecart *entity.Ecart) error {
	return r.db.WithContext(ctx).Create(ecart).Error
}

func (r *EcartRepository) Update(ctx context.Context, ecart *entity.Ecart) error {
	return r.db.WithContext(ctx).Save(ecart).Error
}

func (r *EcartRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Ecart{}).Error
}
