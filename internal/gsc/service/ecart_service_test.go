package service

import (
	"testing"

	"github.com/skycater/gsc/internal/gsc/entity"
)

func TestBuildEcartStatisticsEmpty(t *testing.T) {
	stats := BuildEcartStatistics(nil)
	if stats.Total != 0 {
		t.Errorf("expected total 0, got %d", stats.Total)
	}
	if stats.MontantTotal != 0 {
		t.Errorf("expected montant 0, got %.2f", stats.MontantTotal)
	}
	if stats.ByStatus == nil || stats.ByType == nil || stats.MontantByType == nil {
		t.Error("breakdown maps must be initialized")
	}
}

func TestBuildEcartStatistics(t *testing.T) {
	ecarts := []entity.Ecart{
		{Status: entity.EcartStatusEnAttente, TypeEcart: entity.TypeEcartQuantiteInferieure, EcartMontant: -12.50},
		{Status: entity.EcartStatusEnAttente, TypeEcart: entity.TypeEcartArticleEnPlus, EcartMontant: 30.00},
		{Status: entity.EcartStatusResolu, TypeEcart: entity.TypeEcartQuantiteInferieure, EcartMontant: -7.50},
	}

	stats := BuildEcartStatistics(ecarts)
	if stats.Total != 3 {
		t.Errorf("expected total 3, got %d", stats.Total)
	}
	if stats.ByStatus[entity.EcartStatusEnAttente] != 2 {
		t.Errorf("expected 2 en_attente, got %d", stats.ByStatus[entity.EcartStatusEnAttente])
	}
	if stats.ByType[entity.TypeEcartQuantiteInferieure] != 2 {
		t.Errorf("expected 2 quantite_inferieure, got %d", stats.ByType[entity.TypeEcartQuantiteInferieure])
	}
	// Montants sum as absolute values.
	if stats.MontantTotal != 50.00 {
		t.Errorf("expected montant 50.00, got %.2f", stats.MontantTotal)
	}
	if stats.MontantByType[entity.TypeEcartQuantiteInferieure] != 20.00 {
		t.Errorf("expected 20.00 for quantite_inferieure, got %.2f", stats.MontantByType[entity.TypeEcartQuantiteInferieure])
	}
}
