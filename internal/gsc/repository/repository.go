package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound the referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate a unique natural key collides with an existing record.
	ErrDuplicate = errors.New("duplicate key")
	// ErrConflict an optimistic status guard lost against a concurrent writer.
	ErrConflict = errors.New("concurrent update conflict")
)

// Repositories GsC repository bundle.
type Repositories struct {
	Vol         *VolRepository
	Article     *ArticleRepository
	Fournisseur *FournisseurRepository
	Plan        *PlanRepository
	Menu        *MenuRepository
	BCP         *BCPRepository
	BL          *BLRepository
	Ecart       *EcartRepository
	Dossier     *DossierRepository
	Boite       *BoiteRepository
	Demande     *DemandeRepository
	User        *UserRepository
	Rapport     *RapportRepository
}

// NewRepositories wires every repository onto one gorm handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Vol:         NewVolRepository(db),
		Article:     NewArticleRepository(db),
		Fournisseur: NewFournisseurRepository(db),
		Plan:        NewPlanRepository(db),
		Menu:        NewMenuRepository(db),
		BCP:         NewBCPRepository(db),
		BL:          NewBLRepository(db),
		Ecart:       NewEcartRepository(db),
		Dossier:     NewDossierRepository(db),
		Boite:       NewBoiteRepository(db),
		Demande:     NewDemandeRepository(db),
		User:        NewUserRepository(db),
		Rapport:     NewRapportRepository(db),
	}
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func translateDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
