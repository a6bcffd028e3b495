package entity

import "time"

// Fournisseur supplier registry entry.
type Fournisseur struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Code      string    `json:"code" gorm:"size:20;uniqueIndex"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Contact   string    `json:"contact" gorm:"size:100"`
	Email     string    `json:"email" gorm:"size:100"`
	Phone     string    `json:"phone" gorm:"size:30"`
	Address   string    `json:"address" gorm:"size:500"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Fournisseur) TableName() string {
	return "gsc_fournisseurs"
}
