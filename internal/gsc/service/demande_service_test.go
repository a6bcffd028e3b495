package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skycater/gsc/internal/gsc/entity"
	"github.com/skycater/gsc/internal/gsc/repository"
	"github.com/skycater/gsc/internal/gsc/service"
	"github.com/skycater/gsc/internal/gsc/testutil"
)

func TestDemandeAccepterSpawnsBL(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	testutil.SeedVol(t, db, "vol-1", "AF321", 180)

	volID := "vol-1"
	d, err := svc.Demande.Create(ctx, &service.CreateDemandeRequest{
		VolID:       &volID,
		Description: "Repas spéciaux équipage",
		CreatedBy:   "user-1",
		Plats: []service.CreateDemandePlat{
			{NomPlatSouhaite: "Plateau végétarien", QuantiteEstimee: 12},
			{NomPlatSouhaite: "Repas sans gluten", QuantiteEstimee: 4},
		},
	})
	if err != nil {
		t.Fatalf("create demande: %v", err)
	}
	if d.Status != entity.DemandeStatusEnAttente {
		t.Fatalf("new demande must be en_attente, got %s", d.Status)
	}

	accepted, bl, err := svc.Demande.Accepter(ctx, d.ID, &service.AccepterDemandeRequest{
		Fournisseur:   "Servair",
		DateLivraison: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("accepter demande: %v", err)
	}
	if accepted.Status != entity.DemandeStatusAcceptee {
		t.Errorf("expected acceptee, got %s", accepted.Status)
	}
	if bl.Status != entity.BLStatusRecu {
		t.Errorf("spawned bl must start in recu, got %s", bl.Status)
	}
	if bl.DemandeMenuID == nil || *bl.DemandeMenuID != d.ID {
		t.Error("spawned bl must reference the demande")
	}
	if len(bl.Lignes) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(bl.Lignes))
	}
	if bl.Lignes[0].NomArticle != "Plateau végétarien" {
		t.Errorf("dish name must flow into the line, got %q", bl.Lignes[0].NomArticle)
	}
	if bl.Lignes[0].ArticleID != nil {
		t.Error("free-text dishes carry no article reference")
	}

	// A demande is answered once.
	if _, _, err := svc.Demande.Accepter(ctx, d.ID, &service.AccepterDemandeRequest{
		Fournisseur:   "Newrest",
		DateLivraison: time.Now(),
	}); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("re-accepting must fail with ErrConflict, got %v", err)
	}

	// Accepted demandes are frozen and undeletable.
	if _, err := svc.Demande.Update(ctx, d.ID, &service.UpdateDemandeRequest{Description: ptr("changed")}); !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("updating an accepted demande must fail with ErrInvalidState, got %v", err)
	}
	if err := svc.Demande.Delete(ctx, d.ID); !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("deleting an accepted demande must fail with ErrInvalidState, got %v", err)
	}
}

func TestDemandeNumeroSequence(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	// The first demande of a day starts the sequence on an empty store.
	d1, err := svc.Demande.Create(ctx, &service.CreateDemandeRequest{
		Description: "Première demande du jour",
		CreatedBy:   "user-1",
		Plats:       []service.CreateDemandePlat{{NomPlatSouhaite: "Soupe", QuantiteEstimee: 2}},
	})
	if err != nil {
		t.Fatalf("create first demande of the day: %v", err)
	}
	prefix := "DEM-" + time.Now().Format("20060102") + "-"
	if d1.Numero != prefix+"0001" {
		t.Errorf("expected %s0001, got %s", prefix, d1.Numero)
	}

	d2, err := svc.Demande.Create(ctx, &service.CreateDemandeRequest{
		Description: "Deuxième demande du jour",
		CreatedBy:   "user-1",
		Plats:       []service.CreateDemandePlat{{NomPlatSouhaite: "Salade", QuantiteEstimee: 3}},
	})
	if err != nil {
		t.Fatalf("create second demande: %v", err)
	}
	if d2.Numero != prefix+"0002" {
		t.Errorf("expected %s0002, got %s", prefix, d2.Numero)
	}
}

func TestDemandeAccepterAtomicRollback(t *testing.T) {
	svc, db := setupServices(t)
	ctx := context.Background()

	d, err := svc.Demande.Create(ctx, &service.CreateDemandeRequest{
		Description: "Plateaux fromage",
		CreatedBy:   "user-1",
		Plats:       []service.CreateDemandePlat{{NomPlatSouhaite: "Plateau fromage", QuantiteEstimee: 6}},
	})
	if err != nil {
		t.Fatalf("create demande: %v", err)
	}

	// Occupy a numero so the spawned note collides inside the transaction.
	taken := &entity.BonLivraison{
		ID:            "bl-taken-1",
		Numero:        "BL-CLASH-0001",
		DateLivraison: time.Now(),
		Status:        entity.BLStatusRecu,
		Fournisseur:   "Servair",
	}
	if err := db.Create(taken).Error; err != nil {
		t.Fatalf("seed colliding bl: %v", err)
	}

	repos := repository.NewRepositories(db)
	clash := &entity.BonLivraison{
		ID:            "bl-clash-1",
		Numero:        "BL-CLASH-0001",
		DateLivraison: time.Now(),
		Status:        entity.BLStatusRecu,
		Fournisseur:   "Newrest",
	}
	if err := repos.BL.CreateForDemandeAccept(ctx, d.ID, time.Now(), clash); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate from the colliding numero, got %v", err)
	}

	// A failed note must not leave the demande answered.
	cur, err := svc.Demande.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("reload demande: %v", err)
	}
	if cur.Status != entity.DemandeStatusEnAttente {
		t.Fatalf("demande must stay en_attente after a rolled-back accept, got %s", cur.Status)
	}
	if cur.DateReponse != nil {
		t.Error("no response date may be stamped by a rolled-back accept")
	}

	// A clean accept still goes through afterwards.
	accepted, bl, err := svc.Demande.Accepter(ctx, d.ID, &service.AccepterDemandeRequest{
		Fournisseur:   "Servair",
		DateLivraison: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("accepter after rollback: %v", err)
	}
	if accepted.Status != entity.DemandeStatusAcceptee {
		t.Errorf("expected acceptee, got %s", accepted.Status)
	}
	if bl.DemandeMenuID == nil || *bl.DemandeMenuID != d.ID {
		t.Error("spawned bl must reference the demande")
	}
}

func TestDemandeRejeter(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	d, err := svc.Demande.Create(ctx, &service.CreateDemandeRequest{
		Description: "Gâteau d'anniversaire",
		CreatedBy:   "user-1",
		Plats:       []service.CreateDemandePlat{{NomPlatSouhaite: "Gâteau", QuantiteEstimee: 1}},
	})
	if err != nil {
		t.Fatalf("create demande: %v", err)
	}

	rejected, err := svc.Demande.Rejeter(ctx, d.ID)
	if err != nil {
		t.Fatalf("rejeter demande: %v", err)
	}
	if rejected.Status != entity.DemandeStatusRejetee {
		t.Errorf("expected rejetee, got %s", rejected.Status)
	}
	if rejected.DateReponse == nil {
		t.Error("response date must be stamped")
	}

	// Rejected demandes can still be cleaned up.
	if err := svc.Demande.Delete(ctx, d.ID); err != nil {
		t.Errorf("deleting a rejected demande: %v", err)
	}
}
