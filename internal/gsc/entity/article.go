package entity

import "time"

// Article types
const (
	TypeArticleRepas           = "repas"
	TypeArticleBoisson         = "boisson"
	TypeArticleConsommable     = "consommable"
	TypeArticleSemiConsommable = "semi_consommable"
	TypeArticleMaterielDivers  = "materiel_divers"
)

// Article catalog reference data. The unit price is a point-in-time value:
// it is copied onto order and delivery lines at creation and the line keeps
// its copy even if the catalog price changes later.
type Article struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	Code          string    `json:"code" gorm:"size:20;not null;uniqueIndex"`
	Name          string    `json:"name" gorm:"size:200;not null"`
	Description   string    `json:"description" gorm:"size:500"`
	Type          string    `json:"type" gorm:"size:20;not null;index"`
	Unit          string    `json:"unit" gorm:"size:50;not null"`
	UnitPrice     float64   `json:"unit_price" gorm:"type:decimal(12,4);not null;default:0"`
	Supplier      string    `json:"supplier" gorm:"size:100"`
	FournisseurID *string   `json:"fournisseur_id" gorm:"size:32;index"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Fournisseur *Fournisseur `json:"fournisseur,omitempty" gorm:"foreignKey:FournisseurID"`
}

func (Article) TableName() string {
	return "gsc_articles"
}
