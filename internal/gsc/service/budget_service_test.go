package service

import (
	"testing"
	"time"

	"github.com/skycater/gsc/internal/gsc/entity"
)

func TestBuildBudgetStatistics(t *testing.T) {
	debut := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fin := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	bcps := []entity.BonCommandePrevisionnel{
		{MontantTotal: 1000.00},
		{MontantTotal: 500.00},
	}
	bls := []entity.BonLivraison{
		{
			MontantTotal: 900.00,
			Vol:          &entity.Vol{Zone: "Europe"},
			Lignes: []entity.BLLigne{
				{MontantLigne: 600.00, Article: &entity.Article{Type: entity.TypeArticleConsommable}},
				{MontantLigne: 300.00, Article: &entity.Article{Type: entity.TypeArticleMaterielDivers}},
			},
		},
		{
			MontantTotal: 450.00,
			Vol:          &entity.Vol{Zone: "International"},
			Lignes: []entity.BLLigne{
				{MontantLigne: 450.00, Article: &entity.Article{Type: entity.TypeArticleConsommable}},
			},
		},
	}
	ecarts := []entity.Ecart{
		{Status: entity.EcartStatusEnAttente, TypeEcart: entity.TypeEcartQuantiteInferieure, EcartMontant: -150.00},
	}
	vols := []entity.Vol{
		{ID: "vol-1", Zone: "Europe"},
		{ID: "vol-2", Zone: "International"},
		{ID: "vol-3", Zone: "Afrique"},
	}

	stats := BuildBudgetStatistics(debut, fin, "", vols, bcps, bls, ecarts)

	if stats.NombreVols != 3 {
		t.Errorf("expected 3 vols, got %d", stats.NombreVols)
	}
	if stats.MontantPrevu != 1500.00 {
		t.Errorf("expected forecast 1500.00, got %.2f", stats.MontantPrevu)
	}
	if stats.MontantReel != 1350.00 {
		t.Errorf("expected actual 1350.00, got %.2f", stats.MontantReel)
	}
	if stats.Ecart != -150.00 {
		t.Errorf("expected delta -150.00, got %.2f", stats.Ecart)
	}
	if stats.PourcentageEcart != -10.00 {
		t.Errorf("expected -10%%, got %.2f", stats.PourcentageEcart)
	}
	if stats.CoutParType[entity.TypeArticleConsommable] != 1050.00 {
		t.Errorf("expected 1050.00 consommable, got %.2f", stats.CoutParType[entity.TypeArticleConsommable])
	}
	if stats.CoutParZone["Europe"] != 900.00 {
		t.Errorf("expected 900.00 for Europe, got %.2f", stats.CoutParZone["Europe"])
	}
	// A zone flown without any validated delivery still reports a zero bucket.
	if cost, ok := stats.CoutParZone["Afrique"]; !ok || cost != 0 {
		t.Errorf("expected a 0.00 bucket for Afrique, got %v (present %v)", cost, ok)
	}
	if stats.Ecarts == nil || stats.Ecarts.Total != 1 {
		t.Error("ecart rollup must be attached")
	}
}

func TestBuildBudgetStatisticsZeroForecast(t *testing.T) {
	stats := BuildBudgetStatistics(time.Now(), time.Now(), "", nil, nil, []entity.BonLivraison{{MontantTotal: 100.00}}, nil)

	if stats.MontantReel != 100.00 {
		t.Errorf("expected actual 100.00, got %.2f", stats.MontantReel)
	}
	if stats.PourcentageEcart != 0 {
		t.Errorf("relative écart must be 0 without a forecast, got %.2f", stats.PourcentageEcart)
	}
}

func TestBuildBudgetStatisticsSkipsUnpricedLines(t *testing.T) {
	bls := []entity.BonLivraison{
		{
			MontantTotal: 80.00,
			Lignes: []entity.BLLigne{
				{MontantLigne: 50.00, Article: &entity.Article{Type: entity.TypeArticleConsommable}},
				{MontantLigne: 30.00, Article: nil},
			},
		},
	}

	stats := BuildBudgetStatistics(time.Now(), time.Now(), "", []entity.Vol{{ID: "vol-1", Zone: "Europe"}}, nil, bls, nil)
	if stats.CoutParType[entity.TypeArticleConsommable] != 50.00 {
		t.Errorf("expected 50.00 consommable, got %.2f", stats.CoutParType[entity.TypeArticleConsommable])
	}
	if len(stats.CoutParType) != 1 {
		t.Errorf("lines without a catalog article must not create a type bucket, got %v", stats.CoutParType)
	}
	// A delivery with no flight still counts toward a blank zone bucket.
	if stats.CoutParZone[""] != 80.00 {
		t.Errorf("expected 80.00 in the blank zone bucket, got %.2f", stats.CoutParZone[""])
	}
}
