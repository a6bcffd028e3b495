package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skycater/gsc/internal/gsc/entity"
	"github.com/skycater/gsc/internal/gsc/repository"
	"go.uber.org/zap"
)

// LivraisonService BL lifecycle. Validation is the one-time trigger of the
// reconciliation engine: the status flip and the écart insertion commit in
// a single transaction.
//
// Transitions: en_attente → recu → valide | rejete. Valide is terminal and
// the note becomes undeletable.
type LivraisonService struct {
	blRepo  *repository.BLRepository
	bcpRepo *repository.BCPRepository
	logger  *zap.Logger
}

func NewLivraisonService(blRepo *repository.BLRepository, bcpRepo *repository.BCPRepository, logger *zap.Logger) *LivraisonService {
	return &LivraisonService{
		blRepo:  blRepo,
		bcpRepo: bcpRepo,
		logger:  logger,
	}
}

func (s *LivraisonService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.BonLivraison, int64, error) {
	return s.blRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *LivraisonService) Get(ctx context.Context, id string) (*entity.BonLivraison, error) {
	return s.blRepo.FindByID(ctx, id)
}

// CreateBLRequest creation payload. Lines may reference a catalog article
// or carry only a free-text name when sourced from a menu request.
type CreateBLRequest struct {
	VolID         *string         `json:"vol_id"`
	BCPID         *string         `json:"bcp_id"`
	DemandeMenuID *string         `json:"demande_menu_id"`
	DateLivraison time.Time       `json:"date_livraison" binding:"required"`
	Fournisseur   string          `json:"fournisseur" binding:"required"`
	Livreur       string          `json:"livreur"`
	Commentaires  string          `json:"commentaires"`
	Status        string          `json:"status"`
	Lignes        []CreateBLLigne `json:"lignes"`
}

type CreateBLLigne struct {
	ArticleID      *string `json:"article_id"`
	DemandePlatID  *string `json:"demande_plat_id"`
	NomArticle     string  `json:"nom_article"`
	QuantiteLivree int     `json:"quantite_livree" binding:"required"`
	PrixUnitaire   float64 `json:"prix_unitaire"`
	Commentaires   string  `json:"commentaires"`
}

func (s *LivraisonService) Create(ctx context.Context, req *CreateBLRequest) (*entity.BonLivraison, error) {
	if req.BCPID != nil {
		if _, err := s.bcpRepo.FindByID(ctx, *req.BCPID); err != nil {
			return nil, fmt.Errorf("bcp %s: %w", *req.BCPID, err)
		}
	}

	numero, err := s.blRepo.GenerateNumero(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate bl numero: %w", err)
	}

	status := req.Status
	if status == "" {
		status = entity.BLStatusEnAttente
	}

	bl := &entity.BonLivraison{
		ID:            generateID(),
		Numero:        numero,
		VolID:         req.VolID,
		BCPID:         req.BCPID,
		DemandeMenuID: req.DemandeMenuID,
		DateLivraison: req.DateLivraison,
		Status:        status,
		Fournisseur:   req.Fournisseur,
		Livreur:       req.Livreur,
		Commentaires:  req.Commentaires,
	}
	bl.Lignes, bl.MontantTotal = buildBLLignes(bl.ID, req.Lignes)

	if err := s.blRepo.CreateWithLignes(ctx, bl); err != nil {
		return nil, err
	}
	return bl, nil
}

// CreateForDemande builds the delivery note spawned by accepting a menu
// request and commits it together with the request's status flip, so a
// failed note never leaves the request answered without its delivery.
func (s *LivraisonService) CreateForDemande(ctx context.Context, demandeID string, at time.Time, req *CreateBLRequest) (*entity.BonLivraison, error) {
	numero, err := s.blRepo.GenerateNumero(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate bl numero: %w", err)
	}

	bl := &entity.BonLivraison{
		ID:            generateID(),
		Numero:        numero,
		VolID:         req.VolID,
		DemandeMenuID: &demandeID,
		DateLivraison: req.DateLivraison,
		Status:        entity.BLStatusRecu,
		Fournisseur:   req.Fournisseur,
		Livreur:       req.Livreur,
		Commentaires:  req.Commentaires,
	}
	bl.Lignes, bl.MontantTotal = buildBLLignes(bl.ID, req.Lignes)

	if err := s.blRepo.CreateForDemandeAccept(ctx, demandeID, at, bl); err != nil {
		return nil, err
	}
	return bl, nil
}

func buildBLLignes(blID string, lignes []CreateBLLigne) ([]entity.BLLigne, float64) {
	out := make([]entity.BLLigne, 0, len(lignes))
	total := decimal.Zero
	for _, l := range lignes {
		montant := decimal.NewFromFloat(l.PrixUnitaire).Mul(decimal.NewFromInt(int64(l.QuantiteLivree))).Round(2)
		out = append(out, entity.BLLigne{
			ID:             generateID(),
			BLID:           blID,
			ArticleID:      l.ArticleID,
			DemandePlatID:  l.DemandePlatID,
			NomArticle:     l.NomArticle,
			QuantiteLivree: l.QuantiteLivree,
			PrixUnitaire:   l.PrixUnitaire,
			MontantLigne:   montant.InexactFloat64(),
			Commentaires:   l.Commentaires,
		})
		total = total.Add(montant)
	}
	return out, total.Round(2).InexactFloat64()
}

// UpdateBLRequest partial update; refused once the note is validated.
type UpdateBLRequest struct {
	VolID         *string         `json:"vol_id"`
	BCPID         *string         `json:"bcp_id"`
	DateLivraison *time.Time      `json:"date_livraison"`
	Fournisseur   *string         `json:"fournisseur"`
	Livreur       *string         `json:"livreur"`
	Commentaires  *string         `json:"commentaires"`
	Lignes        []CreateBLLigne `json:"lignes"`
}

func (s *LivraisonService) Update(ctx context.Context, id string, req *UpdateBLRequest) (*entity.BonLivraison, error) {
	bl, err := s.blRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bl.Status == entity.BLStatusValide {
		return nil, fmt.Errorf("bl %s is validated: %w", bl.Numero, ErrInvalidState)
	}

	if req.VolID != nil {
		bl.VolID = req.VolID
	}
	if req.BCPID != nil {
		bl.BCPID = req.BCPID
	}
	if req.DateLivraison != nil {
		bl.DateLivraison = *req.DateLivraison
	}
	if req.Fournisseur != nil {
		bl.Fournisseur = *req.Fournisseur
	}
	if req.Livreur != nil {
		bl.Livreur = *req.Livreur
	}
	if req.Commentaires != nil {
		bl.Commentaires = *req.Commentaires
	}
	if err := s.blRepo.Update(ctx, bl); err != nil {
		return nil, err
	}

	if req.Lignes != nil {
		lignes, _ := buildBLLignes(bl.ID, req.Lignes)
		if err := s.blRepo.ReplaceLignes(ctx, bl.ID, lignes); err != nil {
			return nil, err
		}
	}

	return s.blRepo.FindByID(ctx, id)
}

// Recevoir en_attente → recu.
func (s *LivraisonService) Recevoir(ctx context.Context, id string) (*entity.BonLivraison, error) {
	bl, err := s.blRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bl.Status != entity.BLStatusEnAttente {
		return nil, fmt.Errorf("bl %s is %s: %w", bl.Numero, bl.Status, ErrInvalidState)
	}
	bl.Status = entity.BLStatusRecu
	if err := s.blRepo.Update(ctx, bl); err != nil {
		return nil, err
	}
	return bl, nil
}

// Rejeter recu or en_attente → rejete.
func (s *LivraisonService) Rejeter(ctx context.Context, id string) (*entity.BonLivraison, error) {
	bl, err := s.blRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bl.Status == entity.BLStatusValide || bl.Status == entity.BLStatusRejete {
		return nil, fmt.Errorf("bl %s is %s: %w", bl.Numero, bl.Status, ErrInvalidState)
	}
	bl.Status = entity.BLStatusRejete
	if err := s.blRepo.Update(ctx, bl); err != nil {
		return nil, err
	}
	return bl, nil
}

// Valider flips a received note to valide and runs the reconciliation
// engine against the linked BCP. The écarts persist in the same transaction
// as the status flip; a concurrent validator loses with ErrConflict.
func (s *LivraisonService) Valider(ctx context.Context, id, validatedBy string) (*entity.BonLivraison, []entity.Ecart, error) {
	inputs, err := s.blRepo.LoadReconciliationInputs(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	bl := inputs.BL

	if bl.Status == entity.BLStatusValide {
		return nil, nil, fmt.Errorf("bl %s already validated: %w", bl.Numero, ErrInvalidState)
	}
	if bl.Status != entity.BLStatusRecu {
		return nil, nil, fmt.Errorf("bl %s is %s, must be %s: %w", bl.Numero, bl.Status, entity.BLStatusRecu, ErrInvalidState)
	}

	now := time.Now()
	ecarts := BuildEcarts(bl, inputs.BCP, inputs.BCPLignes, now)

	if err := s.blRepo.ValidateWithEcarts(ctx, id, validatedBy, now, ecarts); err != nil {
		return nil, nil, err
	}

	s.logger.Info("bl validated",
		zap.String("bl_id", id),
		zap.String("validated_by", validatedBy),
		zap.Int("ecarts", len(ecarts)))

	bl.Status = entity.BLStatusValide
	bl.ValidatedBy = &validatedBy
	bl.ValidationDate = &now
	return bl, ecarts, nil
}

// Delete refuses validated notes; deleting a note linked to a menu request
// reopens that request.
func (s *LivraisonService) Delete(ctx context.Context, id string) error {
	bl, err := s.blRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if bl.Status == entity.BLStatusValide {
		return fmt.Errorf("bl %s is validated: %w", bl.Numero, ErrInvalidState)
	}
	return s.blRepo.DeleteWithCompensation(ctx, bl)
}
