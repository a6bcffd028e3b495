package repository

import (
	"context"

	"github.com/skycater/gsc/internal/gsc/entity"
	"gorm.io/gorm"
)

// MenuRepository menu storage.
type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Menu, int64, error) {
	var items []entity.Menu
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Menu{})

	if tp := filters["type_passager"]; tp != "" {
		query = query.Where("type_passager = ?", tp)
	}
	if zone := filters["zone"]; zone != "" {
		query = query.Where("zone = ?", zone)
	}
	if season := filters["season"]; season != "" {
		query = query.Where("season = ?", season)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Items").
		Preload("Items.Article").
		Order("name ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *MenuRepository) FindByID(ctx context.Context, id string) (*entity.Menu, error) {
	var menu entity.Menu
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Article").
		Where("id = ?", id).
		First(&menu).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &menu, nil
}

// FindAssignedToVol active menus assigned to a flight's plan, with items.
// This is the calculator's input projection.
func (r *MenuRepository) FindAssignedToVol(ctx context.Context, volID string) ([]entity.Menu, error) {
	var menus []entity.Menu
	err := r.db.WithContext(ctx).
		Joins("JOIN gsc_menus_plan_hebergement mph ON mph.menu_id = gsc_menus.id").
		Joins("JOIN gsc_plans_hebergement ph ON ph.id = mph.plan_hebergement_id").
		Where("ph.vol_id = ? AND gsc_menus.is_active = true", volID).
		Preload("Items").
		Find(&menus).Error
	return menus, err
}

func (r *MenuRepository) Create(ctx context.Context, menu *entity.Menu) error {
	return r.db.WithContext(ctx).Create(menu).Error
}

func (r *MenuRepository) Update(ctx context.Context, menu *entity.Menu) error {
	return r.db.WithContext(ctx).Save(menu).Error
}

func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", id).Delete(&entity.MenuItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("menu_id = ?", id).Delete(&entity.MenuPlanHebergement{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Menu{}).Error
	})
}

func (r *MenuRepository) AddItem(ctx context.Context, item *entity.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *MenuRepository) RemoveItem(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).Where("id = ?", itemID).Delete(&entity.MenuItem{}).Error
}
