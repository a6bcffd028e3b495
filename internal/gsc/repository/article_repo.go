package repository

import (
	"context"

	"github.com/skycater/gsc/internal/gsc/entity"
	"gorm.io/gorm"
)

// ArticleRepository catalog storage.
type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Article, int64, error) {
	var items []entity.Article
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Article{})

	if t := filters["type"]; t != "" {
		query = query.Where("type = ?", t)
	}
	if active := filters["active"]; active == "true" {
		query = query.Where("is_active = true")
	}
	if search := filters["search"]; search != "" {
		query = query.Where("code ILIKE ? OR name ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Fournisseur").
		Order("code ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*entity.Article, error) {
	var article entity.Article
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&article).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &article, nil
}

func (r *ArticleRepository) FindByCode(ctx context.Context, code string) (*entity.Article, error) {
	var article entity.Article
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&article).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &article, nil
}

// FindByIDs bulk lookup keyed by id, for line enrichment without N+1 queries.
func (r *ArticleRepository) FindByIDs(ctx context.Context, ids []string) (map[string]entity.Article, error) {
	var articles []entity.Article
	if len(ids) == 0 {
		return map[string]entity.Article{}, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&articles).Error; err != nil {
		return nil, err
	}
	out := make(map[string]entity.Article, len(articles))
	for _, a := range articles {
		out[a.ID] = a
	}
	return out, nil
}

// FindStandardCandidates active articles eligible for plan seeding.
func (r *ArticleRepository) FindStandardCandidates(ctx context.Context) ([]entity.Article, error) {
	var articles []entity.Article
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Where("type = ? OR (type = ? AND name ILIKE ?)",
			entity.TypeArticleMaterielDivers, entity.TypeArticleConsommable, "%standard%").
		Find(&articles).Error
	return articles, err
}

func (r *ArticleRepository) Create(ctx context.Context, article *entity.Article) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(article).Error)
}

func (r *ArticleRepository) Update(ctx context.Context, article *entity.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Article{}).Error
}
