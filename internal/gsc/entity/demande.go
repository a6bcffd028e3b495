package entity

import "time"

// Menu request statuses
const (
	DemandeStatusEnAttente = "en_attente"
	DemandeStatusAcceptee  = "acceptee"
	DemandeStatusRejetee   = "rejetee"
)

// DemandeMenu free-text menu request. Accepting it creates a BonLivraison
// in "recu" status; deleting that BL reopens the demande to "en_attente".
type DemandeMenu struct {
	ID          string     `json:"id" gorm:"primaryKey;size:32"`
	Numero      string     `json:"numero" gorm:"size:50;not null;uniqueIndex"`
	VolID       *string    `json:"vol_id" gorm:"size:32;index"`
	Description string     `json:"description" gorm:"size:500"`
	Status      string     `json:"status" gorm:"size:20;not null;default:en_attente"`
	DateDemande time.Time  `json:"date_demande"`
	DateReponse *time.Time `json:"date_reponse"`
	CreatedBy   string     `json:"created_by" gorm:"size:100"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Plats []DemandePlat `json:"plats,omitempty" gorm:"foreignKey:DemandeMenuID"`
}

func (DemandeMenu) TableName() string {
	return "gsc_demandes_menu"
}

// DemandePlat one requested dish; may later be matched to a catalog article.
type DemandePlat struct {
	ID              string  `json:"id" gorm:"primaryKey;size:32"`
	DemandeMenuID   string  `json:"demande_menu_id" gorm:"size:32;not null;index"`
	NomPlatSouhaite string  `json:"nom_plat_souhaite" gorm:"size:200;not null"`
	QuantiteEstimee int     `json:"quantite_estimee"`
	ArticleID       *string `json:"article_id" gorm:"size:32"`
	Commentaires    string  `json:"commentaires" gorm:"size:200"`
}

func (DemandePlat) TableName() string {
	return "gsc_demande_plats"
}
