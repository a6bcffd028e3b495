package entity

import "time"

// Passenger types declared by menus
const (
	TypePassagerEconomy  = "economy"
	TypePassagerBusiness = "business"
	TypePassagerFirst    = "first"
)

// Menu per-passenger-type article list.
type Menu struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	Name          string    `json:"name" gorm:"size:100;not null"`
	Description   string    `json:"description" gorm:"size:500"`
	TypePassager  string    `json:"type_passager" gorm:"size:50;not null"`
	Season        string    `json:"season" gorm:"size:20"`
	Zone          string    `json:"zone" gorm:"size:50"`
	FournisseurID *string   `json:"fournisseur_id" gorm:"size:32"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Fournisseur *Fournisseur `json:"fournisseur,omitempty" gorm:"foreignKey:FournisseurID"`
	Items       []MenuItem   `json:"items,omitempty" gorm:"foreignKey:MenuID"`
}

func (Menu) TableName() string {
	return "gsc_menus"
}

// MenuItem per-passenger quantity of one article on a menu.
type MenuItem struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	MenuID       string    `json:"menu_id" gorm:"size:32;not null;index"`
	ArticleID    string    `json:"article_id" gorm:"size:32;not null"`
	Quantity     int       `json:"quantity" gorm:"not null"`
	TypePassager string    `json:"type_passager" gorm:"size:50"`
	CreatedAt    time.Time `json:"created_at"`

	Article *Article `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
}

func (MenuItem) TableName() string {
	return "gsc_menu_items"
}
