package entity

import "time"

// Medical box types
const (
	TypeBoiteDoctor       = "boite_doctor"
	TypeBoitePharmacie    = "boite_pharmacie"
	TypeKitPremierSecours = "kit_premier_secours"
)

// Medical box statuses
const (
	BoiteStatusDisponible  = "disponible"
	BoiteStatusAssignee    = "assignee"
	BoiteStatusExpiree     = "expiree"
	BoiteStatusMaintenance = "maintenance"
)

// BoiteMedicale on-board medical equipment unit.
type BoiteMedicale struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	Reference      string    `json:"reference" gorm:"size:50;not null;uniqueIndex"`
	Type           string    `json:"type" gorm:"size:30;not null"`
	Status         string    `json:"status" gorm:"size:20;not null;default:disponible"`
	Description    string    `json:"description" gorm:"size:500"`
	DateExpiration time.Time `json:"date_expiration"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (BoiteMedicale) TableName() string {
	return "gsc_boites_medicales"
}

// VolBoiteMedicale assignment of a box to a flight; the count feeds the
// dossier narrative.
type VolBoiteMedicale struct {
	ID              string    `json:"id" gorm:"primaryKey;size:32"`
	VolID           string    `json:"vol_id" gorm:"size:32;not null;index"`
	BoiteMedicaleID string    `json:"boite_medicale_id" gorm:"size:32;not null;index"`
	DateAssignation time.Time `json:"date_assignation"`
	AssignePar      string    `json:"assigne_par" gorm:"size:100"`

	BoiteMedicale *BoiteMedicale `json:"boite_medicale,omitempty" gorm:"foreignKey:BoiteMedicaleID"`
}

func (VolBoiteMedicale) TableName() string {
	return "gsc_vol_boites_medicales"
}
