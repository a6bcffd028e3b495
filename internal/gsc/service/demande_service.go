package service

import (
	"context"
	"fmt"
	"time"

	"github.com/skycater/gsc/internal/gsc/entity"
	"github.com/skycater/gsc/internal/gsc/repository"
)

// DemandeService free-text menu requests. Accepting one spawns a delivery
// note already in "recu" status carrying the requested dishes as lines.
type DemandeService struct {
	demandeRepo  *repository.DemandeRepository
	volRepo      *repository.VolRepository
	livraisonSvc *LivraisonService
}

func NewDemandeService(demandeRepo *repository.DemandeRepository, volRepo *repository.VolRepository, livraisonSvc *LivraisonService) *DemandeService {
	return &DemandeService{
		demandeRepo:  demandeRepo,
		volRepo:      volRepo,
		livraisonSvc: livraisonSvc,
	}
}

func (s *DemandeService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.DemandeMenu, int64, error) {
	return s.demandeRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *DemandeService) Get(ctx context.Context, id string) (*entity.DemandeMenu, error) {
	return s.demandeRepo.FindByID(ctx, id)
}

// CreateDemandeRequest creation payload.
type CreateDemandeRequest struct {
	VolID       *string             `json:"vol_id"`
	Description string              `json:"description"`
	CreatedBy   string              `json:"created_by"`
	Plats       []CreateDemandePlat `json:"plats" binding:"required,min=1"`
}

type CreateDemandePlat struct {
	NomPlatSouhaite string  `json:"nom_plat_souhaite" binding:"required"`
	QuantiteEstimee int     `json:"quantite_estimee" binding:"required"`
	ArticleID       *string `json:"article_id"`
	Commentaires    string  `json:"commentaires"`
}

func (s *DemandeService) Create(ctx context.Context, req *CreateDemandeRequest) (*entity.DemandeMenu, error) {
	if req.VolID != nil {
		if _, err := s.volRepo.FindByID(ctx, *req.VolID); err != nil {
			return nil, fmt.Errorf("vol %s: %w", *req.VolID, err)
		}
	}

	now := time.Now()
	numero, err := s.demandeRepo.GenerateNumero(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("generate demande numero: %w", err)
	}

	d := &entity.DemandeMenu{
		ID:          generateID(),
		Numero:      numero,
		VolID:       req.VolID,
		Description: req.Description,
		Status:      entity.DemandeStatusEnAttente,
		DateDemande: now,
		CreatedBy:   req.CreatedBy,
	}

	plats := make([]entity.DemandePlat, 0, len(req.Plats))
	for _, p := range req.Plats {
		plats = append(plats, entity.DemandePlat{
			ID:              generateID(),
			NomPlatSouhaite: p.NomPlatSouhaite,
			QuantiteEstimee: p.QuantiteEstimee,
			ArticleID:       p.ArticleID,
			Commentaires:    p.Commentaires,
		})
	}

	if err := s.demandeRepo.CreateWithPlats(ctx, d, plats); err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateDemandeRequest partial update; answered demandes are frozen.
type UpdateDemandeRequest struct {
	Description *string `json:"description"`
}

func (s *DemandeService) Update(ctx context.Context, id string, req *UpdateDemandeRequest) (*entity.DemandeMenu, error) {
	d, err := s.demandeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Status != entity.DemandeStatusEnAttente {
		return nil, fmt.Errorf("demande %s is %s: %w", d.Numero, d.Status, ErrInvalidState)
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if err := s.demandeRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// AccepterDemandeRequest supplies the delivery details needed for the
// spawned note.
type AccepterDemandeRequest struct {
	Fournisseur   string    `json:"fournisseur" binding:"required"`
	DateLivraison time.Time `json:"date_livraison" binding:"required"`
	Livreur       string    `json:"livreur"`
	Commentaires  string    `json:"commentaires"`
}

// Accepter answers the demande and creates the matching BL in "recu"
// status. The status flip and the note commit in one transaction; a
// concurrent answer loses with ErrConflict.
func (s *DemandeService) Accepter(ctx context.Context, id string, req *AccepterDemandeRequest) (*entity.DemandeMenu, *entity.BonLivraison, error) {
	d, err := s.demandeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	lignes := make([]CreateBLLigne, 0, len(d.Plats))
	for i := range d.Plats {
		p := &d.Plats[i]
		lignes = append(lignes, CreateBLLigne{
			ArticleID:      p.ArticleID,
			DemandePlatID:  &p.ID,
			NomArticle:     p.NomPlatSouhaite,
			QuantiteLivree: p.QuantiteEstimee,
			Commentaires:   p.Commentaires,
		})
	}

	now := time.Now()
	bl, err := s.livraisonSvc.CreateForDemande(ctx, d.ID, now, &CreateBLRequest{
		VolID:         d.VolID,
		DateLivraison: req.DateLivraison,
		Fournisseur:   req.Fournisseur,
		Livreur:       req.Livreur,
		Commentaires:  req.Commentaires,
		Lignes:        lignes,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create bl for demande %s: %w", d.Numero, err)
	}

	d.Status = entity.DemandeStatusAcceptee
	d.DateReponse = &now
	return d, bl, nil
}

// Rejeter answers the demande negatively.
func (s *DemandeService) Rejeter(ctx context.Context, id string) (*entity.DemandeMenu, error) {
	d, err := s.demandeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.demandeRepo.Respond(ctx, id, entity.DemandeStatusRejetee, now); err != nil {
		return nil, err
	}
	d.Status = entity.DemandeStatusRejetee
	d.DateReponse = &now
	return d, nil
}

func (s *DemandeService) Delete(ctx context.Context, id string) error {
	d, err := s.demandeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if d.Status == entity.DemandeStatusAcceptee {
		return fmt.Errorf("demande %s is accepted: %w", d.Numero, ErrInvalidState)
	}
	return s.demandeRepo.Delete(ctx, id)
}
