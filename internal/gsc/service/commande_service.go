package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skycater/gsc/internal/gsc/entity"
	"github.com/skycater/gsc/internal/gsc/repository"
	"go.uber.org/zap"
)

// CommandeService BCP lifecycle and generation.
//
// Transitions: brouillon → envoye | annule, envoye → confirme | annule.
// Deletion is only allowed while brouillon.
type CommandeService struct {
	bcpRepo     *repository.BCPRepository
	volRepo     *repository.VolRepository
	articleRepo *repository.ArticleRepository
	menuSvc     *MenuService
	logger      *zap.Logger
}

func NewCommandeService(bcpRepo *repository.BCPRepository, volRepo *repository.VolRepository, articleRepo *repository.ArticleRepository, menuSvc *MenuService, logger *zap.Logger) *CommandeService {
	return &CommandeService{
		bcpRepo:     bcpRepo,
		volRepo:     volRepo,
		articleRepo: articleRepo,
		menuSvc:     menuSvc,
		logger:      logger,
	}
}

func (s *CommandeService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.BonCommandePrevisionnel, int64, error) {
	return s.bcpRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *CommandeService) Get(ctx context.Context, id string) (*entity.BonCommandePrevisionnel, error) {
	return s.bcpRepo.FindByID(ctx, id)
}

func (s *CommandeService) ListByVol(ctx context.Context, volID string) ([]entity.BonCommandePrevisionnel, error) {
	return s.bcpRepo.FindByVolID(ctx, volID)
}

// CreateBCPRequest creation payload.
type CreateBCPRequest struct {
	VolID        string           `json:"vol_id" binding:"required"`
	Fournisseur  string           `json:"fournisseur"`
	Commentaires string           `json:"commentaires"`
	Lignes       []CreateBCPLigne `json:"lignes"`
}

type CreateBCPLigne struct {
	ArticleID         string `json:"article_id" binding:"required"`
	QuantiteCommandee int    `json:"quantite_commandee" binding:"required"`
	Commentaires      string `json:"commentaires"`
}

func (s *CommandeService) Create(ctx context.Context, userID string, req *CreateBCPRequest) (*entity.BonCommandePrevisionnel, error) {
	vol, err := s.volRepo.FindByID(ctx, req.VolID)
	if err != nil {
		return nil, err
	}

	numero, err := s.bcpRepo.GenerateNumero(ctx, vol.FlightNumber, vol.FlightDate)
	if err != nil {
		return nil, fmt.Errorf("generate bcp numero: %w", err)
	}

	bcp := &entity.BonCommandePrevisionnel{
		ID:           generateID(),
		Numero:       numero,
		VolID:        vol.ID,
		DateCommande: time.Now(),
		Status:       entity.BCPStatusBrouillon,
		Fournisseur:  req.Fournisseur,
		Commentaires: req.Commentaires,
		CreatedBy:    userID,
	}

	if err := s.buildLignes(ctx, bcp, req.Lignes); err != nil {
		return nil, err
	}

	if err := s.bcpRepo.CreateWithLignes(ctx, bcp); err != nil {
		return nil, err
	}
	return bcp, nil
}

// buildLignes prices requested lines at the article's current unit price and
// sums the header total.
func (s *CommandeService) buildLignes(ctx context.Context, bcp *entity.BonCommandePrevisionnel, lignes []CreateBCPLigne) error {
	ids := make([]string, 0, len(lignes))
	for _, l := range lignes {
		ids = append(ids, l.ArticleID)
	}
	articles, err := s.articleRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	total := decimal.Zero
	for _, l := range lignes {
		article, ok := articles[l.ArticleID]
		if !ok {
			return fmt.Errorf("article %s: %w", l.ArticleID, repository.ErrNotFound)
		}
		montant := decimal.NewFromFloat(article.UnitPrice).Mul(decimal.NewFromInt(int64(l.QuantiteCommandee))).Round(2)
		bcp.Lignes = append(bcp.Lignes, entity.BCPLigne{
			ID:                generateID(),
			BCPID:             bcp.ID,
			ArticleID:         l.ArticleID,
			QuantiteCommandee: l.QuantiteCommandee,
			PrixUnitaire:      article.UnitPrice,
			MontantLigne:      montant.InexactFloat64(),
			Commentaires:      l.Commentaires,
		})
		total = total.Add(montant)
	}
	bcp.MontantTotal = total.Round(2).InexactFloat64()
	return nil
}

// GenerateFromVol derives a BCP from the flight's plan d'hébergement and
// assigned menus via the quantity calculator.
func (s *CommandeService) GenerateFromVol(ctx context.Context, volID, userID string) (*entity.BonCommandePrevisionnel, error) {
	quantites, err := s.menuSvc.QuantitesForVol(ctx, volID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(quantites))
	for id := range quantites {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	lignes := make([]CreateBCPLigne, 0, len(ids))
	for _, articleID := range ids {
		if quantites[articleID] <= 0 {
			continue
		}
		lignes = append(lignes, CreateBCPLigne{
			ArticleID:         articleID,
			QuantiteCommandee: quantites[articleID],
		})
	}

	bcp, err := s.Create(ctx, userID, &CreateBCPRequest{VolID: volID, Lignes: lignes})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bcp generated from plan",
		zap.String("bcp_id", bcp.ID),
		zap.String("vol_id", volID),
		zap.Int("lignes", len(bcp.Lignes)))
	return bcp, nil
}

// UpdateBCPRequest partial update; only draft orders accept line changes.
type UpdateBCPRequest struct {
	Fournisseur  *string          `json:"fournisseur"`
	Commentaires *string          `json:"commentaires"`
	Lignes       []CreateBCPLigne `json:"lignes"`
}

func (s *CommandeService) Update(ctx context.Context, id string, req *UpdateBCPRequest) (*entity.BonCommandePrevisionnel, error) {
	bcp, err := s.bcpRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bcp.Status != entity.BCPStatusBrouillon {
		return nil, fmt.Errorf("bcp %s is %s: %w", bcp.Numero, bcp.Status, ErrInvalidState)
	}

	if req.Fournisseur != nil {
		bcp.Fournisseur = *req.Fournisseur
	}
	if req.Commentaires != nil {
		bcp.Commentaires = *req.Commentaires
	}
	if err := s.bcpRepo.Update(ctx, bcp); err != nil {
		return nil, err
	}

	if req.Lignes != nil {
		fresh := &entity.BonCommandePrevisionnel{ID: bcp.ID}
		if err := s.buildLignes(ctx, fresh, req.Lignes); err != nil {
			return nil, err
		}
		if err := s.bcpRepo.ReplaceLignes(ctx, bcp.ID, fresh.Lignes); err != nil {
			return nil, err
		}
	}

	return s.bcpRepo.FindByID(ctx, id)
}

// Envoyer brouillon → envoye.
func (s *CommandeService) Envoyer(ctx context.Context, id string) (*entity.BonCommandePrevisionnel, error) {
	return s.transition(ctx, id, entity.BCPStatusEnvoye, entity.BCPStatusBrouillon)
}

// Confirmer envoye → confirme.
func (s *CommandeService) Confirmer(ctx context.Context, id string) (*entity.BonCommandePrevisionnel, error) {
	return s.transition(ctx, id, entity.BCPStatusConfirme, entity.BCPStatusEnvoye)
}

// Annuler brouillon or envoye → annule.
func (s *CommandeService) Annuler(ctx context.Context, id string) (*entity.BonCommandePrevisionnel, error) {
	return s.transition(ctx, id, entity.BCPStatusAnnule, entity.BCPStatusBrouillon, entity.BCPStatusEnvoye)
}

func (s *CommandeService) transition(ctx context.Context, id, target string, allowedFrom ...string) (*entity.BonCommandePrevisionnel, error) {
	bcp, err := s.bcpRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, from := range allowedFrom {
		if bcp.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("bcp %s cannot go from %s to %s: %w", bcp.Numero, bcp.Status, target, ErrInvalidState)
	}

	if err := s.bcpRepo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	s.logger.Info("bcp status changed",
		zap.String("bcp_id", id),
		zap.String("from", bcp.Status),
		zap.String("to", target))
	bcp.Status = target
	return bcp, nil
}

// Delete only while brouillon.
func (s *CommandeService) Delete(ctx context.Context, id string) error {
	bcp, err := s.bcpRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if bcp.Status != entity.BCPStatusBrouillon {
		return fmt.Errorf("bcp %s is %s: %w", bcp.Numero, bcp.Status, ErrInvalidState)
	}
	return s.bcpRepo.Delete(ctx, id)
}
