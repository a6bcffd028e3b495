package entity

import "time"

// Report period kinds
const (
	TypeRapportQuotidien    = "quotidien"
	TypeRapportHebdomadaire = "hebdomadaire"
	TypeRapportMensuel      = "mensuel"
	TypeRapportTrimestriel  = "trimestriel"
	TypeRapportAnnuel       = "annuel"
	TypeRapportPersonnalise = "personnalise"
)

// RapportBudgetaire persisted snapshot of a budget rollup for a period. The
// figures are frozen at generation time; regenerating the same period after
// new validations produces a new report, it never rewrites an old one.
type RapportBudgetaire struct {
	ID                   string    `json:"id" gorm:"primaryKey;size:32"`
	Titre                string    `json:"titre" gorm:"size:200;not null"`
	TypeRapport          string    `json:"type_rapport" gorm:"size:20;not null;index"`
	DateDebut            time.Time `json:"date_debut" gorm:"not null"`
	DateFin              time.Time `json:"date_fin" gorm:"not null"`
	DateGeneration       time.Time `json:"date_generation"`
	GenerePar            string    `json:"genere_par" gorm:"size:100"`
	NombreVols           int       `json:"nombre_vols"`
	MontantPrevu         float64   `json:"montant_prevu" gorm:"type:decimal(14,2);default:0"`
	MontantReel          float64   `json:"montant_reel" gorm:"type:decimal(14,2);default:0"`
	EcartMontant         float64   `json:"ecart_montant" gorm:"type:decimal(14,2);default:0"`
	PourcentageEcart     float64   `json:"pourcentage_ecart" gorm:"type:decimal(8,2);default:0"`
	CoutRepas            float64   `json:"cout_repas" gorm:"type:decimal(14,2);default:0"`
	CoutBoissons         float64   `json:"cout_boissons" gorm:"type:decimal(14,2);default:0"`
	CoutConsommables     float64   `json:"cout_consommables" gorm:"type:decimal(14,2);default:0"`
	CoutSemiConsommables float64   `json:"cout_semi_consommables" gorm:"type:decimal(14,2);default:0"`
	CoutMaterielDivers   float64   `json:"cout_materiel_divers" gorm:"type:decimal(14,2);default:0"`
	Commentaires         string    `json:"commentaires" gorm:"size:2000"`
	CreatedAt            time.Time `json:"created_at"`

	Details []RapportBudgetaireDetail `json:"details,omitempty" gorm:"foreignKey:RapportBudgetaireID"`
}

func (RapportBudgetaire) TableName() string {
	return "gsc_rapports_budgetaires"
}

// RapportBudgetaireDetail one breakdown row of a report, grouped by the
// categorie axis (zone or article type).
type RapportBudgetaireDetail struct {
	ID                  string  `json:"id" gorm:"primaryKey;size:32"`
	RapportBudgetaireID string  `json:"rapport_budgetaire_id" gorm:"size:32;not null;index"`
	Categorie           string  `json:"categorie" gorm:"size:100"`
	Libelle             string  `json:"libelle" gorm:"size:200"`
	MontantPrevu        float64 `json:"montant_prevu" gorm:"type:decimal(14,2);default:0"`
	MontantReel         float64 `json:"montant_reel" gorm:"type:decimal(14,2);default:0"`
	Ecart               float64 `json:"ecart" gorm:"type:decimal(14,2);default:0"`
	PourcentageEcart    float64 `json:"pourcentage_ecart" gorm:"type:decimal(8,2);default:0"`
	Quantite            int     `json:"quantite"`
}

func (RapportBudgetaireDetail) TableName() string {
	return "gsc_rapport_budgetaire_details"
}
