package service

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skycater/gsc/internal/gsc/entity"
)

func resumeVol() *entity.Vol {
	return &entity.Vol{
		FlightNumber:        "AF123",
		FlightDate:          time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Origin:              "CDG",
		Destination:         "JFK",
		Aircraft:            "A350",
		EstimatedPassengers: 280,
		ActualPassengers:    263,
	}
}

func TestBuildResume(t *testing.T) {
	ecarts := []entity.Ecart{
		{Status: entity.EcartStatusEnAttente},
		{Status: entity.EcartStatusResolu},
		{Status: entity.EcartStatusResolu},
	}

	resume := buildResume(resumeVol(), ecarts, 2, 3, 1, 2, decimal.NewFromFloat(137.5))

	for _, want := range []string{
		"DOSSIER DE VOL - AF123",
		"Date: 15/01/2026",
		"Route: CDG - JFK",
		"Avion: A350",
		"Passagers prévus: 280, Réels: 263",
		"- Nombre de BCP: 2",
		"- Nombre de BL: 3",
		"- BL validés: 1",
		"ÉCARTS DÉTECTÉS:",
		"- Nombre total: 3",
		"- En attente: 1",
		"- Résolus: 2",
		"- Montant total des écarts: 137.50 EUR",
		"- Boîtes médicales assignées: 2",
	} {
		if !strings.Contains(resume, want) {
			t.Errorf("resume missing %q\n%s", want, resume)
		}
	}
}

func TestBuildResumeWithoutEcarts(t *testing.T) {
	resume := buildResume(resumeVol(), nil, 1, 1, 1, 0, decimal.Zero)

	if strings.Contains(resume, "ÉCARTS DÉTECTÉS") {
		t.Error("écart section must not appear for a clean flight")
	}
	if !strings.Contains(resume, "ÉQUIPEMENTS MÉDICAUX:") {
		t.Error("equipment section must always appear")
	}
}
