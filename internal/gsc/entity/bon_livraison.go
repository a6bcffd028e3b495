package entity

import "time"

// BL statuses
const (
	BLStatusEnAttente = "en_attente"
	BLStatusRecu      = "recu"
	BLStatusValide    = "valide"
	BLStatusRejete    = "rejete"
)

// BonLivraison (BL) records what a supplier actually delivered. It may be
// linked to a vol, to the BCP it fulfils, to a menu request, or any mix;
// validation is the one-time trigger of écart generation.
type BonLivraison struct {
	ID             string     `json:"id" gorm:"primaryKey;size:32"`
	Numero         string     `json:"numero" gorm:"size:50;not null;uniqueIndex"`
	VolID          *string    `json:"vol_id" gorm:"size:32;index"`
	BCPID          *string    `json:"bcp_id" gorm:"size:32;index"`
	DemandeMenuID  *string    `json:"demande_menu_id" gorm:"size:32;index"`
	DateLivraison  time.Time  `json:"date_livraison" gorm:"not null"`
	Status         string     `json:"status" gorm:"size:20;not null;default:en_attente"`
	Fournisseur    string     `json:"fournisseur" gorm:"size:100;not null"`
	Livreur        string     `json:"livreur" gorm:"size:100"`
	Commentaires   string     `json:"commentaires" gorm:"size:500"`
	MontantTotal   float64    `json:"montant_total" gorm:"type:decimal(12,2);default:0"`
	ValidatedBy    *string    `json:"validated_by" gorm:"size:100"`
	ValidationDate *time.Time `json:"validation_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Vol    *Vol                     `json:"vol,omitempty" gorm:"foreignKey:VolID"`
	BCP    *BonCommandePrevisionnel `json:"bcp,omitempty" gorm:"foreignKey:BCPID"`
	Lignes []BLLigne                `json:"lignes,omitempty" gorm:"foreignKey:BLID"`
}

func (BonLivraison) TableName() string {
	return "gsc_bons_livraison"
}

// BLLigne one delivered line. ArticleID is nullable: lines sourced from a
// free-text menu request carry only NomArticle.
type BLLigne struct {
	ID             string  `json:"id" gorm:"primaryKey;size:32"`
	BLID           string  `json:"bl_id" gorm:"size:32;not null;index"`
	ArticleID      *string `json:"article_id" gorm:"size:32"`
	DemandePlatID  *string `json:"demande_plat_id" gorm:"size:32"`
	NomArticle     string  `json:"nom_article" gorm:"size:200"`
	QuantiteLivree int     `json:"quantite_livree" gorm:"not null"`
	PrixUnitaire   float64 `json:"prix_unitaire" gorm:"type:decimal(12,4);default:0"`
	MontantLigne   float64 `json:"montant_ligne" gorm:"type:decimal(12,2);default:0"`
	Commentaires   string  `json:"commentaires" gorm:"size:200"`

	Article *Article `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
}

func (BLLigne) TableName() string {
	return "gsc_bl_lignes"
}
