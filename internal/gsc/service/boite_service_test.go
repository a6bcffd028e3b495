package service

import (
	"testing"

	"github.com/skycater/gsc/internal/gsc/entity"
)

func boitePool() []entity.BoiteMedicale {
	return []entity.BoiteMedicale{
		{ID: "box-doc-1", Type: entity.TypeBoiteDoctor},
		{ID: "box-doc-2", Type: entity.TypeBoiteDoctor},
		{ID: "box-pharma", Type: entity.TypeBoitePharmacie},
		{ID: "box-kit", Type: entity.TypeKitPremierSecours},
	}
}

func TestRecommendBoitesShortDomestic(t *testing.T) {
	vol := &entity.Vol{Zone: "Domestique", Destination: "ORY", DurationMinutes: 85}

	got := RecommendBoites(vol, boitePool())
	if len(got) != 1 {
		t.Fatalf("expected doctor box only, got %d boxes", len(got))
	}
	if got[0].ID != "box-doc-1" {
		t.Errorf("expected first doctor box, got %s", got[0].ID)
	}
}

func TestRecommendBoitesLongInternational(t *testing.T) {
	vol := &entity.Vol{Zone: "International", Destination: "JFK", DurationMinutes: 480}

	got := RecommendBoites(vol, boitePool())
	if len(got) != 3 {
		t.Fatalf("expected all three box types, got %d", len(got))
	}
	types := map[string]bool{}
	for _, b := range got {
		types[b.Type] = true
	}
	for _, want := range []string{entity.TypeBoiteDoctor, entity.TypeBoitePharmacie, entity.TypeKitPremierSecours} {
		if !types[want] {
			t.Errorf("missing %s", want)
		}
	}
}

func TestRecommendBoitesFourHourBoundary(t *testing.T) {
	// Exactly four hours does not trigger the pharmacy box.
	vol := &entity.Vol{Zone: "Europe", Destination: "FCO", DurationMinutes: 240}
	if got := RecommendBoites(vol, boitePool()); len(got) != 1 {
		t.Errorf("240 minutes: expected doctor box only, got %d", len(got))
	}

	vol.DurationMinutes = 241
	if got := RecommendBoites(vol, boitePool()); len(got) != 2 {
		t.Errorf("241 minutes: expected doctor and pharmacy, got %d", len(got))
	}
}

func TestRecommendBoitesFarDestinationName(t *testing.T) {
	vol := &entity.Vol{Zone: "Europe", Destination: "Saint-Denis de la Réunion", DurationMinutes: 60}

	got := RecommendBoites(vol, boitePool())
	types := map[string]bool{}
	for _, b := range got {
		types[b.Type] = true
	}
	if !types[entity.TypeKitPremierSecours] {
		t.Error("long destination names must trigger the first-aid kit")
	}
}

func TestRecommendBoitesEmptyPool(t *testing.T) {
	vol := &entity.Vol{Zone: "International", Destination: "JFK", DurationMinutes: 480}
	if got := RecommendBoites(vol, nil); len(got) != 0 {
		t.Errorf("no available boxes means no recommendations, got %d", len(got))
	}
}
