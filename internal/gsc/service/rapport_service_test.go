package service

import (
	"testing"
	"time"

	"github.com/skycater/gsc/internal/gsc/entity"
)

func findDetail(details []entity.RapportBudgetaireDetail, categorie, libelle string) *entity.RapportBudgetaireDetail {
	for i := range details {
		if details[i].Categorie == categorie && details[i].Libelle == libelle {
			return &details[i]
		}
	}
	return nil
}

func TestBuildRapport(t *testing.T) {
	req := &GenerateRapportRequest{
		Titre:       "Budget janvier 2026",
		TypeRapport: entity.TypeRapportMensuel,
		DateDebut:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		DateFin:     time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	vols := []entity.Vol{
		{ID: "vol-1", Zone: "Europe"},
		{ID: "vol-2", Zone: "Europe"},
		{ID: "vol-3", Zone: "International"},
		{ID: "vol-4", Zone: "Afrique"},
	}
	bcps := []entity.BonCommandePrevisionnel{
		{
			VolID:        "vol-1",
			MontantTotal: 1000.00,
			Lignes: []entity.BCPLigne{
				{MontantLigne: 700.00, Article: &entity.Article{Type: entity.TypeArticleRepas}},
				{MontantLigne: 300.00, Article: &entity.Article{Type: entity.TypeArticleBoisson}},
			},
		},
		{
			VolID:        "vol-3",
			MontantTotal: 500.00,
			Lignes: []entity.BCPLigne{
				{MontantLigne: 500.00, Article: &entity.Article{Type: entity.TypeArticleRepas}},
			},
		},
	}
	bls := []entity.BonLivraison{
		{
			MontantTotal: 950.00,
			Vol:          &entity.Vol{ID: "vol-1", Zone: "Europe"},
			Lignes: []entity.BLLigne{
				{MontantLigne: 650.00, QuantiteLivree: 130, Article: &entity.Article{Type: entity.TypeArticleRepas}},
				{MontantLigne: 300.00, QuantiteLivree: 200, Article: &entity.Article{Type: entity.TypeArticleBoisson}},
			},
		},
		{
			MontantTotal: 600.00,
			Vol:          &entity.Vol{ID: "vol-3", Zone: "International"},
			Lignes: []entity.BLLigne{
				{MontantLigne: 600.00, QuantiteLivree: 120, Article: &entity.Article{Type: entity.TypeArticleRepas}},
			},
		},
	}

	rapport := BuildRapport(req, "Test Admin", now, vols, bcps, bls)

	if rapport.TypeRapport != entity.TypeRapportMensuel {
		t.Errorf("expected mensuel, got %s", rapport.TypeRapport)
	}
	if rapport.GenerePar != "Test Admin" {
		t.Errorf("expected generator name, got %q", rapport.GenerePar)
	}
	if !rapport.DateGeneration.Equal(now) {
		t.Errorf("expected generation stamp %v, got %v", now, rapport.DateGeneration)
	}
	if rapport.NombreVols != 4 {
		t.Errorf("expected 4 vols, got %d", rapport.NombreVols)
	}
	if rapport.MontantPrevu != 1500.00 {
		t.Errorf("expected forecast 1500.00, got %.2f", rapport.MontantPrevu)
	}
	if rapport.MontantReel != 1550.00 {
		t.Errorf("expected actual 1550.00, got %.2f", rapport.MontantReel)
	}
	if rapport.EcartMontant != 50.00 {
		t.Errorf("expected delta 50.00, got %.2f", rapport.EcartMontant)
	}
	if rapport.PourcentageEcart != 3.33 {
		t.Errorf("expected 3.33%%, got %.2f", rapport.PourcentageEcart)
	}
	if rapport.CoutRepas != 1250.00 {
		t.Errorf("expected 1250.00 repas, got %.2f", rapport.CoutRepas)
	}
	if rapport.CoutBoissons != 300.00 {
		t.Errorf("expected 300.00 boissons, got %.2f", rapport.CoutBoissons)
	}
	if rapport.CoutConsommables != 0 {
		t.Errorf("expected 0 consommables, got %.2f", rapport.CoutConsommables)
	}

	europe := findDetail(rapport.Details, "Zone", "Europe")
	if europe == nil {
		t.Fatal("expected a Europe zone row")
	}
	if europe.MontantPrevu != 1000.00 || europe.MontantReel != 950.00 {
		t.Errorf("expected Europe 1000.00/950.00, got %.2f/%.2f", europe.MontantPrevu, europe.MontantReel)
	}
	if europe.Ecart != -50.00 || europe.PourcentageEcart != -5.00 {
		t.Errorf("expected Europe écart -50.00 at -5%%, got %.2f at %.2f%%", europe.Ecart, europe.PourcentageEcart)
	}
	if europe.Quantite != 2 {
		t.Errorf("zone row carries its flight count, got %d", europe.Quantite)
	}

	afrique := findDetail(rapport.Details, "Zone", "Afrique")
	if afrique == nil {
		t.Fatal("a zone flown without activity still gets a zero row")
	}
	if afrique.MontantPrevu != 0 || afrique.MontantReel != 0 || afrique.Quantite != 1 {
		t.Errorf("expected Afrique 0/0 with 1 flight, got %.2f/%.2f with %d", afrique.MontantPrevu, afrique.MontantReel, afrique.Quantite)
	}

	repas := findDetail(rapport.Details, "Type Article", entity.TypeArticleRepas)
	if repas == nil {
		t.Fatal("expected a repas type row")
	}
	if repas.MontantPrevu != 1200.00 || repas.MontantReel != 1250.00 {
		t.Errorf("expected repas 1200.00/1250.00, got %.2f/%.2f", repas.MontantPrevu, repas.MontantReel)
	}
	if repas.Quantite != 250 {
		t.Errorf("type row carries the delivered quantity, got %d", repas.Quantite)
	}

	for _, d := range rapport.Details {
		if d.RapportBudgetaireID != rapport.ID {
			t.Fatalf("detail %s not linked to its rapport", d.ID)
		}
	}
}

func TestBuildRapportDefaultsAndZeroForecast(t *testing.T) {
	req := &GenerateRapportRequest{
		Titre:     "Période vide",
		DateDebut: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DateFin:   time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
	}

	bls := []entity.BonLivraison{
		{
			MontantTotal: 120.00,
			Vol:          &entity.Vol{ID: "vol-9", Zone: "Europe"},
			Lignes: []entity.BLLigne{
				{MontantLigne: 120.00, QuantiteLivree: 40, Article: &entity.Article{Type: entity.TypeArticleBoisson}},
			},
		},
	}

	rapport := BuildRapport(req, "", time.Now(), nil, nil, bls)

	if rapport.TypeRapport != entity.TypeRapportPersonnalise {
		t.Errorf("missing type must default to personnalise, got %s", rapport.TypeRapport)
	}
	if rapport.PourcentageEcart != 0 {
		t.Errorf("relative écart must be 0 without a forecast, got %.2f", rapport.PourcentageEcart)
	}

	europe := findDetail(rapport.Details, "Zone", "Europe")
	if europe == nil {
		t.Fatal("expected a Europe zone row from deliveries alone")
	}
	if europe.PourcentageEcart != 0 {
		t.Errorf("zone row relative écart must be 0 without a forecast, got %.2f", europe.PourcentageEcart)
	}
	if europe.Quantite != 0 {
		t.Errorf("no flights known for the zone, got %d", europe.Quantite)
	}
}
