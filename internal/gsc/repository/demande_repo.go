package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/skycater/gsc/internal/gsc/entity"
	"gorm.io/gorm"
)

// DemandeRepository menu request storage.
type DemandeRepository struct {
	db *gorm.DB
}

func NewDemandeRepository(db *gorm.DB) *DemandeRepository {
	return &DemandeRepository{db: db}
}

func (r *DemandeRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.DemandeMenu, int64, error) {
	var demandes []entity.DemandeMenu
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.DemandeMenu{})
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if volID := filters["vol_id"]; volID != "" {
		query = query.Where("vol_id = ?", volID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Plats").
		Order("date_demande DESC").Offset(offset).Limit(pageSize).
		Find(&demandes).Error
	return demandes, total, err
}

func (r *DemandeRepository) FindByID(ctx context.Context, id string) (*entity.DemandeMenu, error) {
	var d entity.DemandeMenu
	err := r.db.WithContext(ctx).Preload("Plats").Where("id = ?", id).First(&d).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &d, nil
}

func (r *DemandeRepository) CreateWithPlats(ctx context.Context, d *entity.DemandeMenu, plats []entity.DemandePlat) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return translateDuplicate(err)
		}
		for i := range plats {
			plats[i].DemandeMenuID = d.ID
		}
		if len(plats) > 0 {
			if err := tx.Create(&plats).Error; err != nil {
				return err
			}
		}
		d.Plats = plats
		return nil
	})
}

func (r *DemandeRepository) Update(ctx context.Context, d *entity.DemandeMenu) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// Respond moves a pending demande to its answered status. Returns
// ErrConflict when the demande was already answered.
func (r *DemandeRepository) Respond(ctx context.Context, id, status string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&entity.DemandeMenu{}).
		Where("id = ? AND status = ?", id, entity.DemandeStatusEnAttente).
		Updates(map[string]interface{}{
			"status":       status,
			"date_reponse": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (r *DemandeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("demande_menu_id = ?", id).Delete(&entity.DemandePlat{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.DemandeMenu{}).Error
	})
}

// GenerateNumero builds DEM-{yyyyMMdd}-{seq} from the highest sequence
// issued today.
func (r *DemandeRepository) GenerateNumero(ctx context.Context, date time.Time) (string, error) {
	prefix := fmt.Sprintf("DEM-%s-", date.Format("20060102"))

	var last string
	err := r.db.WithContext(ctx).Model(&entity.DemandeMenu{}).
		Select("COALESCE(MAX(numero), '')").
		Where("numero LIKE ?", prefix+"%").
		Scan(&last).Error
	if err != nil {
		return "", err
	}

	seq := 1
	if last != "" {
		var n int
		if _, err := fmt.Sscanf(last, prefix+"%04d", &n); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}
