package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/skycater/gsc/internal/gsc/entity"
	"github.com/skycater/gsc/internal/gsc/service"
	"github.com/skycater/gsc/internal/gsc/testutil"
	"gorm.io/gorm"
)

func seedFournisseur(t *testing.T, db *gorm.DB, id, name string) *entity.Fournisseur {
	t.Helper()
	f := &entity.Fournisseur{ID: id, Code: "FRN-" + id, Name: name, IsActive: true}
	if err := db.Create(f).Error; err != nil {
		t.Fatalf("seed fournisseur %s: %v", id, err)
	}
	return f
}

func TestPlanGenerationSeedsStandardArticles(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	testutil.SeedVol(t, db, "vol-1", "AF555", 200)
	testutil.SeedArticle(t, db, "art-couv", "Couverture polaire", entity.TypeArticleMaterielDivers, 4.00)
	testutil.SeedArticle(t, db, "art-oreiller", "Oreiller confort", entity.TypeArticleMaterielDivers, 3.00)
	testutil.SeedArticle(t, db, "art-serviette", "Serviette rafraîchissante", entity.TypeArticleConsommable, 0.30)
	testutil.SeedArticle(t, db, "art-plateau", "Plateau repas", entity.TypeArticleConsommable, 6.00)

	plan, err := svc.Plan.GenerateForVol(ctx, "vol-1")
	if err != nil {
		t.Fatalf("generate plan: %v", err)
	}

	quantites := make(map[string]int)
	for _, pa := range plan.Articles {
		quantites[pa.ArticleID] = pa.QuantiteStandard
	}
	if quantites["art-couv"] != 100 {
		t.Errorf("expected 100 couvertures, got %d", quantites["art-couv"])
	}
	if quantites["art-oreiller"] != 66 {
		t.Errorf("expected 66 oreillers, got %d", quantites["art-oreiller"])
	}
	if quantites["art-serviette"] != 200 {
		t.Errorf("expected 200 serviettes, got %d", quantites["art-serviette"])
	}
	if _, seeded := quantites["art-plateau"]; seeded {
		t.Error("plateaux are not standard cabin articles, must not be seeded")
	}

	// One plan per flight.
	if _, err := svc.Plan.GenerateForVol(ctx, "vol-1"); !errors.Is(err, service.ErrPlanExists) {
		t.Errorf("second generation must fail with ErrPlanExists, got %v", err)
	}
}

func TestAssignMenuCompatibility(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	// SeedVol defaults: zone International, season hiver.
	testutil.SeedVol(t, db, "vol-1", "AF777", 150)
	seedFournisseur(t, db, "frn-1", "Servair")

	plan, err := svc.Plan.GenerateForVol(ctx, "vol-1")
	if err != nil {
		t.Fatalf("generate plan: %v", err)
	}

	frnID := "frn-1"
	compatible, err := svc.Menu.Create(ctx, &service.CreateMenuRequest{
		Name:          "Menu hiver international",
		TypePassager:  entity.TypePassagerEconomy,
		Season:        "hiver",
		Zone:          "International",
		FournisseurID: &frnID,
	})
	if err != nil {
		t.Fatalf("create menu: %v", err)
	}
	if err := svc.Plan.AssignMenu(ctx, plan.ID, compatible.ID); err != nil {
		t.Errorf("compatible menu must assign: %v", err)
	}

	noSupplier, err := svc.Menu.Create(ctx, &service.CreateMenuRequest{
		Name:         "Menu sans fournisseur",
		TypePassager: entity.TypePassagerEconomy,
	})
	if err != nil {
		t.Fatalf("create menu: %v", err)
	}
	if err := svc.Plan.AssignMenu(ctx, plan.ID, noSupplier.ID); !errors.Is(err, service.ErrMenuIncompatible) {
		t.Errorf("menu without supplier must be incompatible, got %v", err)
	}

	wrongZone, err := svc.Menu.Create(ctx, &service.CreateMenuRequest{
		Name:          "Menu domestique",
		TypePassager:  entity.TypePassagerEconomy,
		Zone:          "Domestique",
		FournisseurID: &frnID,
	})
	if err != nil {
		t.Fatalf("create menu: %v", err)
	}
	if err := svc.Plan.AssignMenu(ctx, plan.ID, wrongZone.ID); !errors.Is(err, service.ErrMenuIncompatible) {
		t.Errorf("zone mismatch must be incompatible, got %v", err)
	}

	wrongSeason, err := svc.Menu.Create(ctx, &service.CreateMenuRequest{
		Name:          "Menu été",
		TypePassager:  entity.TypePassagerEconomy,
		Season:        "ete",
		FournisseurID: &frnID,
	})
	if err != nil {
		t.Fatalf("create menu: %v", err)
	}
	if err := svc.Plan.AssignMenu(ctx, plan.ID, wrongSeason.ID); !errors.Is(err, service.ErrMenuIncompatible) {
		t.Errorf("season mismatch must be incompatible, got %v", err)
	}
}

func TestDossierGeneration(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	testutil.SeedVol(t, db, "vol-1", "AF888", 120)

	dossier, err := svc.Dossier.GenerateFromVol(ctx, "vol-1")
	if err != nil {
		t.Fatalf("generate dossier: %v", err)
	}
	if dossier.Status != entity.DossierStatusComplete {
		t.Errorf("generated dossier must be complete, got %s", dossier.Status)
	}
	if dossier.Resume == "" {
		t.Error("dossier must carry a generated resume")
	}
	if dossier.Numero == "" {
		t.Error("dossier must carry a numero")
	}

	// One dossier per flight.
	if _, err := svc.Dossier.GenerateFromVol(ctx, "vol-1"); !errors.Is(err, service.ErrDossierExists) {
		t.Errorf("second generation must fail with ErrDossierExists, got %v", err)
	}

	// Generated dossiers are already complete, re-completing fails.
	if _, err := svc.Dossier.MarquerComplete(ctx, dossier.ID); !errors.Is(err, service.ErrInvalidState) {
		t.Fatalf("re-completing must fail with ErrInvalidState, got %v", err)
	}
	if _, err := svc.Dossier.Archiver(ctx, dossier.ID); !errors.Is(err, service.ErrInvalidState) {
		t.Fatalf("archiving before validation must fail with ErrInvalidState, got %v", err)
	}
	validated, err := svc.Dossier.Valider(ctx, dossier.ID, "user-1")
	if err != nil {
		t.Fatalf("valider: %v", err)
	}
	if validated.ValidePar == nil || *validated.ValidePar != "user-1" {
		t.Error("validator must be stamped")
	}
	if _, err := svc.Dossier.Archiver(ctx, dossier.ID); err != nil {
		t.Fatalf("archiver: %v", err)
	}
}
