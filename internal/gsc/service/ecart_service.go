package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skycater/gsc/internal/gsc/entity"
	"github.com/skycater/gsc/internal/gsc/repository"
)

// EcartService variance workflow. Resolu, accepte and rejete are terminal:
// they need an actor, get stamped with a resolution date, and the record can
// neither be deleted nor resolved again.
type EcartService struct {
	ecartRepo *repository.EcartRepository
	volRepo   *repository.VolRepository
}

func NewEcartService(ecartRepo *repository.EcartRepository, volRepo *repository.VolRepository) *EcartService {
	return &EcartService{ecartRepo: ecartRepo, volRepo: volRepo}
}

func (s *EcartService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Ecart, int64, error) {
	return s.ecartRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *EcartService) Get(ctx context.Context, id string) (*entity.Ecart, error) {
	return s.ecartRepo.FindByID(ctx, id)
}

func (s *EcartService) ListByVol(ctx context.Context, volID string) ([]entity.Ecart, error) {
	return s.ecartRepo.FindByVolID(ctx, volID)
}

// CreateEcartRequest manual variance entry, outside the engine.
type CreateEcartRequest struct {
	VolID             string  `json:"vol_id" binding:"required"`
	ArticleID         *string `json:"article_id"`
	BCPID             *string `json:"bcp_id"`
	BLID              *string `json:"bl_id"`
	TypeEcart         string  `json:"type_ecart" binding:"required"`
	QuantiteCommandee int     `json:"quantite_commandee"`
	QuantiteLivree    int     `json:"quantite_livree"`
	PrixCommande      float64 `json:"prix_commande"`
	PrixLivraison     float64 `json:"prix_livraison"`
	Description       string  `json:"description"`
}

func (s *EcartService) Create(ctx context.Context, req *CreateEcartRequest) (*entity.Ecart, error) {
	if _, err := s.volRepo.FindByID(ctx, req.VolID); err != nil {
		return nil, err
	}

	montantCommande := decimal.NewFromFloat(req.PrixCommande).Mul(decimal.NewFromInt(int64(req.QuantiteCommandee)))
	montantLivraison := decimal.NewFromFloat(req.PrixLivraison).Mul(decimal.NewFromInt(int64(req.QuantiteLivree)))

	ecart := &entity.Ecart{
		ID:                generateID(),
		VolID:             req.VolID,
		ArticleID:         req.ArticleID,
		BCPID:             req.BCPID,
		BLID:              req.BLID,
		TypeEcart:         req.TypeEcart,
		Status:            entity.EcartStatusEnAttente,
		QuantiteCommandee: req.QuantiteCommandee,
		QuantiteLivree:    req.QuantiteLivree,
		EcartQuantite:     req.QuantiteLivree - req.QuantiteCommandee,
		PrixCommande:      req.PrixCommande,
		PrixLivraison:     req.PrixLivraison,
		EcartMontant:      montantLivraison.Sub(montantCommande).Round(2).InexactFloat64(),
		Description:       req.Description,
		DateDetection:     time.Now(),
	}
	if err := s.ecartRepo.Create(ctx, ecart); err != nil {
		return nil, err
	}
	return ecart, nil
}

// Traiter en_attente → en_cours, recording who picked it up.
func (s *EcartService) Traiter(ctx context.Context, id, userID string) (*entity.Ecart, error) {
	ecart, err := s.ecartRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ecart.Terminal() {
		return nil, fmt.Errorf("ecart %s is %s: %w", id, ecart.Status, ErrInvalidState)
	}
	ecart.Status = entity.EcartStatusEnCours
	ecart.ResponsableTraitement = userID
	if err := s.ecartRepo.Update(ctx, ecart); err != nil {
		return nil, err
	}
	return ecart, nil
}

// Resoudre closes the écart as resolu with a corrective action.
func (s *EcartService) Resoudre(ctx context.Context, id, userID, actionCorrective string) (*entity.Ecart, error) {
	return s.close(ctx, id, userID, entity.EcartStatusResolu, actionCorrective)
}

// Accepter closes the écart as accepte: the discrepancy stands.
func (s *EcartService) Accepter(ctx context.Context, id, userID, commentaire string) (*entity.Ecart, error) {
	return s.close(ctx, id, userID, entity.EcartStatusAccepte, commentaire)
}

// Rejeter closes the écart as rejete.
func (s *EcartService) Rejeter(ctx context.Context, id, userID, commentaire string) (*entity.Ecart, error) {
	return s.close(ctx, id, userID, entity.EcartStatusRejete, commentaire)
}

func (s *EcartService) close(ctx context.Context, id, userID, status, action string) (*entity.Ecart, error) {
	ecart, err := s.ecartRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ecart.Terminal() {
		return nil, fmt.Errorf("ecart %s already %s: %w", id, ecart.Status, ErrInvalidState)
	}

	now := time.Now()
	ecart.Status = status
	ecart.ResponsableTraitement = userID
	ecart.DateResolution = &now
	if action != "" {
		ecart.ActionCorrective = action
	}

	if err := s.ecartRepo.Update(ctx, ecart); err != nil {
		return nil, err
	}
	return ecart, nil
}

// Delete refuses terminal écarts.
func (s *EcartService) Delete(ctx context.Context, id string) error {
	ecart, err := s.ecartRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if ecart.Terminal() {
		return fmt.Errorf("ecart %s is %s: %w", id, ecart.Status, ErrInvalidState)
	}
	return s.ecartRepo.Delete(ctx, id)
}

// EcartStatistics counts and amounts broken down by status and type.
type EcartStatistics struct {
	Total         int                `json:"total"`
	ByStatus      map[string]int     `json:"by_status"`
	ByType        map[string]int     `json:"by_type"`
	MontantTotal  float64            `json:"montant_total"`
	MontantByType map[string]float64 `json:"montant_by_type"`
}

// StatisticsForVol aggregates a flight's écarts; montants sum |ecart_montant|.
func (s *EcartService) StatisticsForVol(ctx context.Context, volID string) (*EcartStatistics, error) {
	ecarts, err := s.ecartRepo.FindByVolID(ctx, volID)
	if err != nil {
		return nil, err
	}
	return BuildEcartStatistics(ecarts), nil
}

// BuildEcartStatistics pure rollup over a variance set.
func BuildEcartStatistics(ecarts []entity.Ecart) *EcartStatistics {
	stats := &EcartStatistics{
		ByStatus:      make(map[string]int),
		ByType:        make(map[string]int),
		MontantByType: make(map[string]float64),
	}

	total := decimal.Zero
	byType := make(map[string]decimal.Decimal)
	for _, e := range ecarts {
		stats.Total++
		stats.ByStatus[e.Status]++
		stats.ByType[e.TypeEcart]++
		abs := decimal.NewFromFloat(e.EcartMontant).Abs()
		total = total.Add(abs)
		byType[e.TypeEcart] = byType[e.TypeEcart].Add(abs)
	}

	stats.MontantTotal = total.Round(2).InexactFloat64()
	for t, m := range byType {
		stats.MontantByType[t] = m.Round(2).InexactFloat64()
	}
	return stats
}
