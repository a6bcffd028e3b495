package entity

import "time"

// PlanHebergement is the per-flight catalog of standard article quantities
// and assigned menus. One plan per vol.
type PlanHebergement struct {
	ID              string    `json:"id" gorm:"primaryKey;size:32"`
	VolID           string    `json:"vol_id" gorm:"size:32;not null;uniqueIndex"`
	Name            string    `json:"name" gorm:"size:100;not null"`
	Description     string    `json:"description" gorm:"size:500"`
	Season          string    `json:"season" gorm:"size:20"`
	AircraftType    string    `json:"aircraft_type" gorm:"size:10"`
	Zone            string    `json:"zone" gorm:"size:50"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Articles []PlanHebergementArticle `json:"articles,omitempty" gorm:"foreignKey:PlanHebergementID"`
	Menus    []MenuPlanHebergement    `json:"menus,omitempty" gorm:"foreignKey:PlanHebergementID"`
}

func (PlanHebergement) TableName() string {
	return "gsc_plans_hebergement"
}

// PlanHebergementArticle standard per-passenger article quantity on a plan.
type PlanHebergementArticle struct {
	ID                string `json:"id" gorm:"primaryKey;size:32"`
	PlanHebergementID string `json:"plan_hebergement_id" gorm:"size:32;not null;index"`
	ArticleID         string `json:"article_id" gorm:"size:32;not null"`
	QuantiteStandard  int    `json:"quantite_standard" gorm:"not null"`
	TypePassager      string `json:"type_passager" gorm:"size:50"`

	Article *Article `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
}

func (PlanHebergementArticle) TableName() string {
	return "gsc_plan_hebergement_articles"
}

// MenuPlanHebergement links an assigned menu to a plan.
type MenuPlanHebergement struct {
	ID                string `json:"id" gorm:"primaryKey;size:32"`
	MenuID            string `json:"menu_id" gorm:"size:32;not null;index"`
	PlanHebergementID string `json:"plan_hebergement_id" gorm:"size:32;not null;index"`

	Menu *Menu `json:"menu,omitempty" gorm:"foreignKey:MenuID"`
}

func (MenuPlanHebergement) TableName() string {
	return "gsc_menus_plan_hebergement"
}
