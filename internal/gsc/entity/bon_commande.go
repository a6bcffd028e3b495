package entity

import "time"

// BCP statuses
const (
	BCPStatusBrouillon = "brouillon"
	BCPStatusEnvoye    = "envoye"
	BCPStatusConfirme  = "confirme"
	BCPStatusAnnule    = "annule"
)

// BonCommandePrevisionnel (BCP) forecast purchase order for a flight.
// MontantTotal is a cached aggregate: it always equals the sum of the line
// amounts and is recomputed in the same transaction as any line mutation.
type BonCommandePrevisionnel struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	Numero       string    `json:"numero" gorm:"size:50;not null;uniqueIndex"`
	VolID        string    `json:"vol_id" gorm:"size:32;not null;index"`
	DateCommande time.Time `json:"date_commande" gorm:"not null"`
	Status       string    `json:"status" gorm:"size:20;not null;default:brouillon"`
	Fournisseur  string    `json:"fournisseur" gorm:"size:100"`
	MontantTotal float64   `json:"montant_total" gorm:"type:decimal(12,2);default:0"`
	Commentaires string    `json:"commentaires" gorm:"size:500"`
	CreatedBy    string    `json:"created_by" gorm:"size:100"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Vol    *Vol       `json:"vol,omitempty" gorm:"foreignKey:VolID"`
	Lignes []BCPLigne `json:"lignes,omitempty" gorm:"foreignKey:BCPID"`
}

func (BonCommandePrevisionnel) TableName() string {
	return "gsc_bons_commande_previsionnels"
}

// BCPLigne one ordered article line.
type BCPLigne struct {
	ID                string  `json:"id" gorm:"primaryKey;size:32"`
	BCPID             string  `json:"bcp_id" gorm:"size:32;not null;index"`
	ArticleID         string  `json:"article_id" gorm:"size:32;not null"`
	QuantiteCommandee int     `json:"quantite_commandee" gorm:"not null"`
	PrixUnitaire      float64 `json:"prix_unitaire" gorm:"type:decimal(12,4);not null"`
	MontantLigne      float64 `json:"montant_ligne" gorm:"type:decimal(12,2);not null"`
	Commentaires      string  `json:"commentaires" gorm:"size:200"`

	Article *Article `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
}

func (BCPLigne) TableName() string {
	return "gsc_bcp_lignes"
}
