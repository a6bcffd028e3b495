package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/skycater/gsc/internal/config"
	"github.com/skycater/gsc/internal/gsc/entity"
	"github.com/skycater/gsc/internal/gsc/repository"
	"github.com/skycater/gsc/internal/gsc/service"
	"github.com/skycater/gsc/internal/gsc/testutil"
)

func setupServices(t *testing.T) (*service.Services, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return service.NewServices(repos, nil, &config.Config{}, zap.NewNop()), db
}

func TestLivraisonValidationFlow(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	testutil.SeedVol(t, db, "vol-1", "AF123", 200)
	testutil.SeedArticle(t, db, "art-eau", "Bouteille d'eau", entity.TypeArticleConsommable, 0.50)
	testutil.SeedArticle(t, db, "art-plateau", "Plateau repas", entity.TypeArticleConsommable, 6.00)

	bcp, err := svc.Commande.Create(ctx, "user-1", &service.CreateBCPRequest{
		VolID: "vol-1",
		Lignes: []service.CreateBCPLigne{
			{ArticleID: "art-eau", QuantiteCommandee: 200},
			{ArticleID: "art-plateau", QuantiteCommandee: 180},
		},
	})
	if err != nil {
		t.Fatalf("create bcp: %v", err)
	}
	if bcp.MontantTotal != 1180.00 {
		t.Errorf("expected bcp total 1180.00, got %.2f", bcp.MontantTotal)
	}

	if _, err := svc.Commande.Envoyer(ctx, bcp.ID); err != nil {
		t.Fatalf("envoyer bcp: %v", err)
	}

	volID := "vol-1"
	bl, err := svc.Livraison.Create(ctx, &service.CreateBLRequest{
		VolID:         &volID,
		BCPID:         &bcp.ID,
		DateLivraison: time.Now(),
		Fournisseur:   "Servair",
		Lignes: []service.CreateBLLigne{
			{ArticleID: ptr("art-eau"), NomArticle: "Bouteille d'eau", QuantiteLivree: 200, PrixUnitaire: 0.50},
			{ArticleID: ptr("art-plateau"), NomArticle: "Plateau repas", QuantiteLivree: 170, PrixUnitaire: 6.00},
		},
	})
	if err != nil {
		t.Fatalf("create bl: %v", err)
	}
	if bl.Status != entity.BLStatusEnAttente {
		t.Fatalf("new bl must be en_attente, got %s", bl.Status)
	}

	// Cannot validate before reception.
	if _, _, err := svc.Livraison.Valider(ctx, bl.ID, "user-1"); !errors.Is(err, service.ErrInvalidState) {
		t.Fatalf("validating an unreceived bl must fail with ErrInvalidState, got %v", err)
	}

	if _, err := svc.Livraison.Recevoir(ctx, bl.ID); err != nil {
		t.Fatalf("recevoir bl: %v", err)
	}

	validated, ecarts, err := svc.Livraison.Valider(ctx, bl.ID, "user-1")
	if err != nil {
		t.Fatalf("valider bl: %v", err)
	}
	if validated.Status != entity.BLStatusValide {
		t.Errorf("expected valide, got %s", validated.Status)
	}
	if len(ecarts) != 1 {
		t.Fatalf("expected 1 ecart for the short delivery, got %d", len(ecarts))
	}
	if ecarts[0].TypeEcart != entity.TypeEcartQuantiteInferieure {
		t.Errorf("expected quantite_inferieure, got %s", ecarts[0].TypeEcart)
	}
	if ecarts[0].EcartQuantite != -10 {
		t.Errorf("expected delta -10, got %d", ecarts[0].EcartQuantite)
	}

	persisted, err := svc.Ecart.ListByVol(ctx, "vol-1")
	if err != nil {
		t.Fatalf("list ecarts: %v", err)
	}
	if len(persisted) != 1 {
		t.Errorf("ecart must persist with the validation, got %d", len(persisted))
	}

	// Validation is one-time.
	if _, _, err := svc.Livraison.Valider(ctx, bl.ID, "user-2"); !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("re-validating must fail with ErrInvalidState, got %v", err)
	}

	// Validated notes are undeletable.
	if err := svc.Livraison.Delete(ctx, bl.ID); !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("deleting a validated bl must fail with ErrInvalidState, got %v", err)
	}
}

func TestLivraisonRejeter(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	testutil.SeedVol(t, db, "vol-1", "AF456", 150)

	volID := "vol-1"
	bl, err := svc.Livraison.Create(ctx, &service.CreateBLRequest{
		VolID:         &volID,
		DateLivraison: time.Now(),
		Fournisseur:   "Newrest",
	})
	if err != nil {
		t.Fatalf("create bl: %v", err)
	}

	rejected, err := svc.Livraison.Rejeter(ctx, bl.ID)
	if err != nil {
		t.Fatalf("rejeter bl: %v", err)
	}
	if rejected.Status != entity.BLStatusRejete {
		t.Errorf("expected rejete, got %s", rejected.Status)
	}

	// Rejection is terminal too.
	if _, err := svc.Livraison.Recevoir(ctx, bl.ID); !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("receiving a rejected bl must fail with ErrInvalidState, got %v", err)
	}
}

func TestCommandeLifecycle(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	testutil.SeedVol(t, db, "vol-1", "AF789", 100)
	testutil.SeedArticle(t, db, "art-jus", "Jus d'orange", entity.TypeArticleConsommable, 1.20)

	bcp, err := svc.Commande.Create(ctx, "user-1", &service.CreateBCPRequest{
		VolID:  "vol-1",
		Lignes: []service.CreateBCPLigne{{ArticleID: "art-jus", QuantiteCommandee: 100}},
	})
	if err != nil {
		t.Fatalf("create bcp: %v", err)
	}
	if bcp.Status != entity.BCPStatusBrouillon {
		t.Fatalf("new bcp must be brouillon, got %s", bcp.Status)
	}

	// Confirm requires envoye first.
	if _, err := svc.Commande.Confirmer(ctx, bcp.ID); !errors.Is(err, service.ErrInvalidState) {
		t.Fatalf("confirming a draft must fail with ErrInvalidState, got %v", err)
	}

	if _, err := svc.Commande.Envoyer(ctx, bcp.ID); err != nil {
		t.Fatalf("envoyer: %v", err)
	}
	confirmed, err := svc.Commande.Confirmer(ctx, bcp.ID)
	if err != nil {
		t.Fatalf("confirmer: %v", err)
	}
	if confirmed.Status != entity.BCPStatusConfirme {
		t.Errorf("expected confirme, got %s", confirmed.Status)
	}

	// Confirmed orders cannot be cancelled or deleted.
	if _, err := svc.Commande.Annuler(ctx, bcp.ID); !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("cancelling a confirmed bcp must fail with ErrInvalidState, got %v", err)
	}
	if err := svc.Commande.Delete(ctx, bcp.ID); !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("deleting a confirmed bcp must fail with ErrInvalidState, got %v", err)
	}
}

func ptr(s string) *string { return &s }
