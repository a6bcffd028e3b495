package service

import (
	"testing"

	"github.com/skycater/gsc/internal/gsc/entity"
)

func TestPassagersPourVol(t *testing.T) {
	vol := &entity.Vol{EstimatedPassengers: 280, ActualPassengers: 263}
	if got := passagersPourVol(vol); got != 280 {
		t.Errorf("estimate must win over actual, got %d", got)
	}

	vol = &entity.Vol{EstimatedPassengers: 0, ActualPassengers: 263}
	if got := passagersPourVol(vol); got != 263 {
		t.Errorf("actual count must apply without an estimate, got %d", got)
	}
}

func TestPassagersPourMenu(t *testing.T) {
	cases := []struct {
		typePassager string
		want         int
	}{
		{entity.TypePassagerEconomy, 160},
		{entity.TypePassagerBusiness, 30},
		{entity.TypePassagerFirst, 10},
		{"equipage", 200},
	}
	for _, tc := range cases {
		if got := passagersPourMenu(tc.typePassager, 200); got != tc.want {
			t.Errorf("%s: expected %d passengers, got %d", tc.typePassager, tc.want, got)
		}
	}
}

func TestCalculerQuantitesFromPlan(t *testing.T) {
	vol := &entity.Vol{EstimatedPassengers: 100}
	plan := &entity.PlanHebergement{
		Articles: []entity.PlanHebergementArticle{
			{ArticleID: "art-couverture", QuantiteStandard: 1},
			{ArticleID: "art-serviette", QuantiteStandard: 2},
		},
	}

	quantites := CalculerQuantites(vol, plan, nil)
	if quantites["art-couverture"] != 100 {
		t.Errorf("expected 100, got %d", quantites["art-couverture"])
	}
	if quantites["art-serviette"] != 200 {
		t.Errorf("expected 200, got %d", quantites["art-serviette"])
	}
}

func TestCalculerQuantitesFromMenus(t *testing.T) {
	vol := &entity.Vol{EstimatedPassengers: 200}
	menus := []entity.Menu{
		{
			TypePassager: entity.TypePassagerEconomy,
			Items:        []entity.MenuItem{{ArticleID: "art-plateau", Quantity: 1}},
		},
		{
			TypePassager: entity.TypePassagerBusiness,
			Items:        []entity.MenuItem{{ArticleID: "art-plateau", Quantity: 2}},
		},
	}

	quantites := CalculerQuantites(vol, nil, menus)
	// 160 economy trays plus 30 business passengers at 2 each.
	if quantites["art-plateau"] != 220 {
		t.Errorf("expected 220 trays, got %d", quantites["art-plateau"])
	}
}

func TestCalculerQuantitesMergesSources(t *testing.T) {
	vol := &entity.Vol{EstimatedPassengers: 100}
	plan := &entity.PlanHebergement{
		Articles: []entity.PlanHebergementArticle{{ArticleID: "art-eau", QuantiteStandard: 1}},
	}
	menus := []entity.Menu{
		{
			TypePassager: entity.TypePassagerEconomy,
			Items:        []entity.MenuItem{{ArticleID: "art-eau", Quantity: 1}},
		},
	}

	quantites := CalculerQuantites(vol, plan, menus)
	if quantites["art-eau"] != 180 {
		t.Errorf("expected plan and menu quantities summed to 180, got %d", quantites["art-eau"])
	}
}

func TestCoutEstime(t *testing.T) {
	quantites := map[string]int{
		"art-1":       10,
		"art-2":       3,
		"art-unknown": 100,
	}
	articles := map[string]entity.Article{
		"art-1": {ID: "art-1", UnitPrice: 2.50},
		"art-2": {ID: "art-2", UnitPrice: 0.10},
	}

	got := CoutEstime(quantites, articles)
	if got != 25.30 {
		t.Errorf("expected 25.30, got %.2f", got)
	}
}

func TestCoutEstimeExactDecimalSum(t *testing.T) {
	// 0.1 added three times is not 0.3 in binary floats.
	quantites := map[string]int{"art-1": 3}
	articles := map[string]entity.Article{"art-1": {ID: "art-1", UnitPrice: 0.10}}

	if got := CoutEstime(quantites, articles); got != 0.30 {
		t.Errorf("expected 0.30, got %v", got)
	}
}
