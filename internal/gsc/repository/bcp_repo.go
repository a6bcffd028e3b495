package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skycater/gsc/internal/gsc/entity"
	"gorm.io/gorm"
)

// BCPRepository purchase order storage.
type BCPRepository struct {
	db *gorm.DB
}

func NewBCPRepository(db *gorm.DB) *BCPRepository {
	return &BCPRepository{db: db}
}

func (r *BCPRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.BonCommandePrevisionnel, int64, error) {
	var items []entity.BonCommandePrevisionnel
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.BonCommandePrevisionnel{})

	if volID := filters["vol_id"]; volID != "" {
		query = query.Where("vol_id = ?", volID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("numero ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Lignes").
		Order("date_commande DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindByID with lines and their articles.
func (r *BCPRepository) FindByID(ctx context.Context, id string) (*entity.BonCommandePrevisionnel, error) {
	var bcp entity.BonCommandePrevisionnel
	err := r.db.WithContext(ctx).
		Preload("Lignes").
		Preload("Lignes.Article").
		Where("id = ?", id).
		First(&bcp).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &bcp, nil
}

// FindByVolID all purchase orders of a flight, with lines.
func (r *BCPRepository) FindByVolID(ctx context.Context, volID string) ([]entity.BonCommandePrevisionnel, error) {
	var bcps []entity.BonCommandePrevisionnel
	err := r.db.WithContext(ctx).
		Preload("Lignes").
		Where("vol_id = ?", volID).
		Find(&bcps).Error
	return bcps, err
}

// FindInPeriod purchase orders whose flight departs inside [debut, fin],
// optionally narrowed to a zone. Headers only, for budget rollups.
func (r *BCPRepository) FindInPeriod(ctx context.Context, debut, fin time.Time, zone string) ([]entity.BonCommandePrevisionnel, error) {
	var bcps []entity.BonCommandePrevisionnel
	query := r.db.WithContext(ctx).
		Preload("Lignes").
		Preload("Lignes.Article").
		Joins("JOIN gsc_vols ON gsc_vols.id = gsc_bons_commande_previsionnels.vol_id").
		Where("gsc_vols.flight_date BETWEEN ? AND ?", debut, fin)
	if zone != "" {
		query = query.Where("gsc_vols.zone = ?", zone)
	}
	err := query.Find(&bcps).Error
	return bcps, err
}

// CreateWithLignes header plus lines atomically.
func (r *BCPRepository) CreateWithLignes(ctx context.Context, bcp *entity.BonCommandePrevisionnel) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(bcp).Error)
}

func (r *BCPRepository) Update(ctx context.Context, bcp *entity.BonCommandePrevisionnel) error {
	return r.db.WithContext(ctx).Save(bcp).Error
}

// UpdateStatus writes just the status column.
func (r *BCPRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).
		Model(&entity.BonCommandePrevisionnel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceLignes swaps the full line set and recomputes the cached header
// total in the same transaction, so the total can never tear away from the
// lines it summarizes.
func (r *BCPRepository) ReplaceLignes(ctx context.Context, bcpID string, lignes []entity.BCPLigne) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bcp_id = ?", bcpID).Delete(&entity.BCPLigne{}).Error; err != nil {
			return err
		}
		total := decimal.Zero
		if len(lignes) > 0 {
			if err := tx.Create(&lignes).Error; err != nil {
				return err
			}
			for _, l := range lignes {
				total = total.Add(decimal.NewFromFloat(l.MontantLigne))
			}
		}
		return tx.Model(&entity.BonCommandePrevisionnel{}).
			Where("id = ?", bcpID).
			Updates(map[string]interface{}{"montant_total": total.Round(2).InexactFloat64(), "updated_at": time.Now()}).Error
	})
}

// Delete order and lines; callers gate on brouillon status first.
func (r *BCPRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bcp_id = ?", id).Delete(&entity.BCPLigne{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.BonCommandePrevisionnel{}).Error
	})
}

// GenerateNumero BCP-{flightNumber}-{yyyyMMdd}, suffixed -NN on collision.
func (r *BCPRepository) GenerateNumero(ctx context.Context, flightNumber string, flightDate time.Time) (string, error) {
	base := fmt.Sprintf("BCP-%s-%s", flightNumber, flightDate.Format("20060102"))
	numero := base
	for counter := 1; ; counter++ {
		var n int64
		if err := r.db.WithContext(ctx).
			Model(&entity.BonCommandePrevisionnel{}).
			Where("numero = ?", numero).
			Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return numero, nil
		}
		numero = fmt.Sprintf("%s-%02d", base, counter)
	}
}
