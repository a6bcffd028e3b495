package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skycater/gsc/internal/gsc/entity"
	"gorm.io/gorm"
)

// BLRepository delivery note storage.
type BLRepository struct {
	db *gorm.DB
}

func NewBLRepository(db *gorm.DB) *BLRepository {
	return &BLRepository{db: db}
}

func (r *BLRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.BonLivraison, int64, error) {
	var items []entity.BonLivraison
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.BonLivraison{})

	if volID := filters["vol_id"]; volID != "" {
		query = query.Where("vol_id = ?", volID)
	}
	if bcpID := filters["bcp_id"]; bcpID != "" {
		query = query.Where("bcp_id = ?", bcpID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if fournisseur := filters["fournisseur"]; fournisseur != "" {
		query = query.Where("fournisseur ILIKE ?", "%"+fournisseur+"%")
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
		Order("date_livraison DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *BLRepository) FindByID(ctx context.Context, id string) (*entity.BonLivraison, error) {
	var bl entity.BonLivraison
	err := r.db.WithContext(ctx).
		Preload("Lignes").
		Preload("Lignes.Article").
		Where("id = ?", id).
		First(&bl).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &bl, nil
}

// FindValidatedByVolID validated deliveries of a flight, headers only.
func (r *BLRepository) FindValidatedByVolID(ctx context.Context, volID string) ([]entity.BonLivraison, error) {
	var bls []entity.BonLivraison
	err := r.db.WithContext(ctx).
		Where("vol_id = ? AND status = ?", volID, entity.BLStatusValide).
		Find(&bls).Error
	return bls, err
}

// FindValidatedInPeriod validated deliveries whose flight departs inside
// [debut, fin], with lines and articles, for per-type cost breakdowns. The
// flight association rides along for the zone breakdown.
func (r *BLRepository) FindValidatedInPeriod(ctx context.Context, debut, fin time.Time, zone string) ([]entity.BonLivraison, error) {
	var bls []entity.BonLivraison
	query := r.db.WithContext(ctx).
		Preload("Lignes").
		Preload("Lignes.Article").
		Preload("Vol").
		Joins("JOIN gsc_vols ON gsc_vols.id = gsc_bons_livraison.vol_id").
		Where("gsc_bons_livraison.status = ?", entity.BLStatusValide).
		Where("gsc_vols.flight_date BETWEEN ? AND ?", debut, fin)
	if zone != "" {
		query = query.Where("gsc_vols.zone = ?", zone)
	}
	err := query.Find(&bls).Error
	return bls, err
}

// CountByVolID total and validated delivery counts for a flight.
func (r *BLRepository) CountByVolID(ctx context.Context, volID string) (total, validated int64, err error) {
	if err = r.db.WithContext(ctx).
		Model(&entity.BonLivraison{}).
		Where("vol_id = ?", volID).
		Count(&total).Error; err != nil {
		return
	}
	err = r.db.WithContext(ctx).
		Model(&entity.BonLivraison{}).
		Where("vol_id = ? AND status = ?", volID, entity.BLStatusValide).
		Count(&validated).Error
	return
}

// ReconciliationInputs is the flat projection the reconciliation engine
// consumes: the delivery note with its lines and, when an order is linked,
// that order's lines. No deeper graph is loaded.
type ReconciliationInputs struct {
	BL        *entity.BonLivraison
	BCP       *entity.BonCommandePrevisionnel
	BCPLignes []entity.BCPLigne
}

// LoadReconciliationInputs loads exactly what Reconcile needs, replacing the
// original's eager-loaded entity graph with two targeted queries.
func (r *BLRepository) LoadReconciliationInputs(ctx context.Context, blID string) (*ReconciliationInputs, error) {
	bl, err := r.FindByID(ctx, blID)
	if err != nil {
		return nil, err
	}
	inputs := &ReconciliationInputs{BL: bl}
	if bl.BCPID == nil {
		return inputs, nil
	}

	var bcp entity.BonCommandePrevisionnel
	if err := r.db.WithContext(ctx).Where("id = ?", *bl.BCPID).First(&bcp).Error; err != nil {
		return nil, translateNotFound(err)
	}
	var lignes []entity.BCPLigne
	if err := r.db.WithContext(ctx).Where("bcp_id = ?", bcp.ID).Find(&lignes).Error; err != nil {
		return nil, err
	}
	inputs.BCP = &bcp
	inputs.BCPLignes = lignes
	return inputs, nil
}

// CreateWithLignes header plus lines atomically.
func (r *BLRepository) CreateWithLignes(ctx context.Context, bl *entity.BonLivraison) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(bl).Error)
}

// CreateForDemandeAccept answers a pending menu request and records the
// spawned delivery note in one transaction. The status flip is guarded by a
// conditional update: a request already answered loses with ErrConflict and
// the note is never created, so the two writes cannot tear apart.
func (r *BLRepository) CreateForDemandeAccept(ctx context.Context, demandeID string, at time.Time, bl *entity.BonLivraison) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.DemandeMenu{}).
			Where("id = ? AND status = ?", demandeID, entity.DemandeStatusEnAttente).
			Updates(map[string]interface{}{
				"status":       entity.DemandeStatusAcceptee,
				"date_reponse": at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		return translateDuplicate(tx.Create(bl).Error)
	})
}

func (r *BLRepository) Update(ctx context.Context, bl *entity.BonLivraison) error {
	return r.db.WithContext(ctx).Save(bl).Error
}

// ReplaceLignes swaps the line set and recomputes the cached header total in
// one transaction.
func (r *BLRepository) ReplaceLignes(ctx context.Context, blID string, lignes []entity.BLLigne) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bl_id = ?", blID).Delete(&entity.BLLigne{}).Error; err != nil {
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
		return tx.Model(&entity.BonLivraison{}).
			Where("id = ?", blID).
			Updates(map[string]interface{}{"montant_total": total.Round(2).InexactFloat64(), "updated_at": time.Now()}).Error
	})
}

// ValidateWithEcarts flips the delivery note to valide and persists the
// generated écarts in one transaction. The status flip is guarded by a
// conditional update: a concurrent validator that lost the race touches
// zero rows and gets ErrConflict, so the same note can never be
// reconciled twice.
func (r *BLRepository) ValidateWithEcarts(ctx context.Context, blID, validatedBy string, at time.Time, ecarts []entity.Ecart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.BonLivraison{}).
			Where("id = ? AND status <> ?", blID, entity.BLStatusValide).
			Updates(map[string]interface{}{
				"status":          entity.BLStatusValide,
				"validated_by":    validatedBy,
				"validation_date": at,
				"updated_at":      at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		if len(ecarts) > 0 {
			if err := tx.Create(&ecarts).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteWithCompensation removes a non-validated delivery note and, when it
// fulfilled a menu request, reopens that request to en_attente.
func (r *BLRepository) DeleteWithCompensation(ctx context.Context, bl *entity.BonLivraison) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if bl.DemandeMenuID != nil {
			if err := tx.Model(&entity.DemandeMenu{}).
				Where("id = ?", *bl.DemandeMenuID).
				Updates(map[string]interface{}{
					"status":       entity.DemandeStatusEnAttente,
					"date_reponse": nil,
					"updated_at":   time.Now(),
				}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("bl_id = ?", bl.ID).Delete(&entity.BLLigne{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", bl.ID).Delete(&entity.BonLivraison{}).Error
	})
}

// GenerateNumero BL-{yyyyMMdd}-{4 digit sequence}.
func (r *BLRepository) GenerateNumero(ctx context.Context) (string, error) {
	day := time.Now().Format("20060102")
	prefix := fmt.Sprintf("BL-%s-", day)

	var maxNumero string
	err := r.db.WithContext(ctx).
		Model(&entity.BonLivraison{}).
		Select("COALESCE(MAX(numero), '')").
		Where("numero LIKE ?", prefix+"%").
		Scan(&maxNumero).Error
	if err != nil {
		return "", err
	}

	var seq int
	if maxNumero != "" {
		fmt.Sscanf(maxNumero, "BL-"+day+"-%04d", &seq)
	}
	seq++
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}
