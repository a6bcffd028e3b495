package repository

import (
	"context"
	"time"

	"github.com/skycater/gsc/internal/gsc/entity"
	"gorm.io/gorm"
)

// VolRepository flight storage.
type VolRepository struct {
	db *gorm.DB
}

func NewVolRepository(db *gorm.DB) *VolRepository {
	return &VolRepository{db: db}
}

// FindAll paginated flight list with optional filters.
func (r *VolRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Vol, int64, error) {
	var items []entity.Vol
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Vol{})

	if zone := filters["zone"]; zone != "" {
		query = query.Where("zone = ?", zone)
	}
	if season := filters["season"]; season != "" {
		query = query.Where("season = ?", season)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("flight_number ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("flight_date DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindByID plain flight lookup, no associations.
func (r *VolRepository) FindByID(ctx context.Context, id string) (*entity.Vol, error) {
	var vol entity.Vol
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vol).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &vol, nil
}

// FindInPeriod flights whose date falls in [debut, fin], optionally filtered
// by zone. Used by the budget aggregator.
func (r *VolRepository) FindInPeriod(ctx context.Context, debut, fin time.Time, zone string) ([]entity.Vol, error) {
	var vols []entity.Vol
	query := r.db.WithContext(ctx).
		Where("flight_date >= ? AND flight_date <= ?", debut, fin)
	if zone != "" {
		query = query.Where("zone = ?", zone)
	}
	err := query.Order("flight_date ASC").Find(&vols).Error
	return vols, err
}

// CountBoitesMedicales assigned medical boxes for a flight.
func (r *VolRepository) CountBoitesMedicales(ctx context.Context, volID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entity.VolBoiteMedicale{}).
		Where("vol_id = ?", volID).
		Count(&n).Error
	return n, err
}

func (r *VolRepository) Create(ctx context.Context, vol *entity.Vol) error {
	return r.db.WithContext(ctx).Create(vol).Error
}

func (r *VolRepository) Update(ctx context.Context, vol *entity.Vol) error {
	return r.db.WithContext(ctx).Save(vol).Error
}

func (r *VolRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Vol{}).Error
}
