package entity

import "time"

// Écart types
const (
	TypeEcartQuantiteSuperieure = "quantite_superieure"
	TypeEcartQuantiteInferieure = "quantite_inferieure"
	TypeEcartArticleManquant    = "article_manquant"
	TypeEcartArticleEnPlus      = "article_en_plus"
	TypeEcartPrixDifferent      = "prix_different"
)

// Écart statuses. Resolu, Accepte and Rejete are terminal: they require an
// actor and timestamp, forbid deletion and cannot be re-entered.
const (
	EcartStatusEnAttente = "en_attente"
	EcartStatusEnCours   = "en_cours"
	EcartStatusResolu    = "resolu"
	EcartStatusAccepte   = "accepte"
	EcartStatusRejete    = "rejete"
)

// Ecart one discrepancy between an ordered and a delivered line set,
// produced by the reconciliation engine or recorded manually. ArticleID is
// nullable: a free-text delivery line with no catalog article still yields
// an "article_en_plus" écart carrying the item name in Description.
type Ecart struct {
	ID                    string     `json:"id" gorm:"primaryKey;size:32"`
	VolID                 string     `json:"vol_id" gorm:"size:32;not null;index"`
	ArticleID             *string    `json:"article_id" gorm:"size:32;index"`
	BCPID                 *string    `json:"bcp_id" gorm:"size:32;index"`
	BLID                  *string    `json:"bl_id" gorm:"size:32;index"`
	TypeEcart             string     `json:"type_ecart" gorm:"size:30;not null"`
	Status                string     `json:"status" gorm:"size:20;not null;default:en_attente"`
	QuantiteCommandee     int        `json:"quantite_commandee"`
	QuantiteLivree        int        `json:"quantite_livree"`
	EcartQuantite         int        `json:"ecart_quantite"`
	PrixCommande          float64    `json:"prix_commande" gorm:"type:decimal(12,4);default:0"`
	PrixLivraison         float64    `json:"prix_livraison" gorm:"type:decimal(12,4);default:0"`
	EcartMontant          float64    `json:"ecart_montant" gorm:"type:decimal(12,2);default:0"`
	Description           string     `json:"description" gorm:"size:1000"`
	ActionCorrective      string     `json:"action_corrective" gorm:"size:1000"`
	ResponsableTraitement string     `json:"responsable_traitement" gorm:"size:100"`
	DateDetection         time.Time  `json:"date_detection"`
	DateResolution        *time.Time `json:"date_resolution"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`

	Vol     *Vol                     `json:"vol,omitempty" gorm:"foreignKey:VolID"`
	Article *Article                 `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
	BCP     *BonCommandePrevisionnel `json:"bcp,omitempty" gorm:"foreignKey:BCPID"`
	BL      *BonLivraison            `json:"bl,omitempty" gorm:"foreignKey:BLID"`
}

func (Ecart) TableName() string {
	return "gsc_ecarts"
}

// Terminal reports whether the écart has reached a state that forbids
// deletion and further resolution.
func (e *Ecart) Terminal() bool {
	switch e.Status {
	case EcartStatusResolu, EcartStatusAccepte, EcartStatusRejete:
		return true
	}
	return false
}
