package repository

import (
	"context"

	"github.com/skycater/gsc/internal/gsc/entity"
	"gorm.io/gorm"
)

// DossierRepository flight dossier storage.
type DossierRepository struct {
	db *gorm.DB
}

func NewDossierRepository(db *gorm.DB) *DossierRepository {
	return &DossierRepository{db: db}
}

func (r *DossierRepository) FindAll(ctx context.Context, page, pageSize int, status string) ([]entity.DossierVol, int64, error) {
	var items []entity.DossierVol
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.DossierVol{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("date_creation DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *DossierRepository) FindByID(ctx context.Context, id string) (*entity.DossierVol, error) {
	var dossier entity.DossierVol
	err := r.db.WithContext(ctx).
		Preload("Documents").
		Where("id = ?", id).
		First(&dossier).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &dossier, nil
}

func (r *DossierRepository) FindByVolID(ctx context.Context, volID string) (*entity.DossierVol, error) {
	var dossier entity.DossierVol
	err := r.db.WithContext(ctx).
		Preload("Documents").
		Where("vol_id = ?", volID).
		First(&dossier).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &dossier, nil
}

// ExistsForVol pre-check for the one-dossier-per-flight rule; the unique
// index on vol_id is the backstop.
func (r *DossierRepository) ExistsForVol(ctx context.Context, volID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entity.DossierVol{}).
		Where("vol_id = ?", volID).
		Count(&n).Error
	return n > 0, err
}

func (r *DossierRepository) Create(ctx context.Context, dossier *entity.DossierVol) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(dossier).Error)
}

func (r *DossierRepository) Update(ctx context.Context, dossier *entity.DossierVol) error {
	return r.db.WithContext(ctx).Save(dossier).Error
}

func (r *DossierRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dossier_vol_id = ?", id).Delete(&entity.DossierVolDocument{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.DossierVol{}).Error
	})
}

func (r *DossierRepository) AddDocument(ctx context.Context, doc *entity.DossierVolDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *DossierRepository) FindDocumentByID(ctx context.Context, docID string) (*entity.DossierVolDocument, error) {
	var doc entity.DossierVolDocument
	err := r.db.WithContext(ctx).Where("id = ?", docID).First(&doc).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &doc, nil
}

func (r *DossierRepository) DeleteDocument(ctx context.Context, docID string) error {
	return r.db.WithContext(ctx).Where("id = ?", docID).Delete(&entity.DossierVolDocument{}).Error
}
