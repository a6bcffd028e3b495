package entity

import "time"

// Dossier statuses, strictly forward-only:
// en_preparation → complete → valide → archive.
const (
	DossierStatusEnPreparation = "en_preparation"
	DossierStatusComplete      = "complete"
	DossierStatusValide        = "valide"
	DossierStatusArchive       = "archive"
)

// DossierVol per-flight rollup: total validated delivery cost, écart
// count/amount and a generated narrative summary. One dossier per vol.
type DossierVol struct {
	ID             string     `json:"id" gorm:"primaryKey;size:32"`
	VolID          string     `json:"vol_id" gorm:"size:32;not null;uniqueIndex"`
	Numero         string     `json:"numero" gorm:"size:50;not null;uniqueIndex"`
	Status         string     `json:"status" gorm:"size:20;not null;default:en_preparation"`
	DateCreation   time.Time  `json:"date_creation"`
	DateValidation *time.Time `json:"date_validation"`
	ValidePar      *string    `json:"valide_par" gorm:"size:100"`
	Resume         string     `json:"resume" gorm:"type:text"`
	Commentaires   string     `json:"commentaires" gorm:"size:1000"`
	CoutTotal      float64    `json:"cout_total" gorm:"type:decimal(12,2);default:0"`
	NombreEcarts   int        `json:"nombre_ecarts"`
	MontantEcarts  float64    `json:"montant_ecarts" gorm:"type:decimal(12,2);default:0"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Vol       *Vol                 `json:"vol,omitempty" gorm:"foreignKey:VolID"`
	Documents []DossierVolDocument `json:"documents,omitempty" gorm:"foreignKey:DossierVolID"`
}

func (DossierVol) TableName() string {
	return "gsc_dossiers_vol"
}

// DossierVolDocument attached document, stored in the object store; its
// lifecycle is independent of the dossier status.
type DossierVolDocument struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	DossierVolID  string    `json:"dossier_vol_id" gorm:"size:32;not null;index"`
	NomDocument   string    `json:"nom_document" gorm:"size:200;not null"`
	TypeDocument  string    `json:"type_document" gorm:"size:50;not null"` // bcp/bl/menu/ecart/autre
	CheminFichier string    `json:"chemin_fichier" gorm:"size:500"`
	FormatFichier string    `json:"format_fichier" gorm:"size:100"`
	TailleFichier int64     `json:"taille_fichier"`
	DateAjout     time.Time `json:"date_ajout"`
	AjoutePar     string    `json:"ajoute_par" gorm:"size:100"`
}

func (DossierVolDocument) TableName() string {
	return "gsc_dossier_vol_documents"
}
