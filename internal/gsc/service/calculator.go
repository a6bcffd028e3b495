package service

import (
	"github.com/shopspring/decimal"
	"github.com/skycater/gsc/internal/gsc/entity"
)

// Cabin split used to estimate how many passengers eat from a given menu
// when the flight only carries a total count.
const (
	partEconomy  = 0.80
	partBusiness = 0.15
	partFirst    = 0.05
)

// passagersPourVol returns the passenger count quantities are scaled by:
// the estimate when present, otherwise the actual count.
func passagersPourVol(vol *entity.Vol) int {
	if vol.EstimatedPassengers > 0 {
		return vol.EstimatedPassengers
	}
	return vol.ActualPassengers
}

// passagersPourMenu estimates the share of a flight's passengers served by a
// menu of the given passenger type. Unknown or custom labels get the whole
// flight, the safe over-estimate.
func passagersPourMenu(typePassager string, totalPassagers int) int {
	switch typePassager {
	case entity.TypePassagerEconomy:
		return int(float64(totalPassagers) * partEconomy)
	case entity.TypePassagerBusiness:
		return int(float64(totalPassagers) * partBusiness)
	case entity.TypePassagerFirst:
		return int(float64(totalPassagers) * partFirst)
	default:
		return totalPassagers
	}
}

// CalculerQuantites derives the required quantity per article for a flight:
// plan standard quantities scale by the estimated passenger count, menu item
// quantities scale by the cabin share of the menu's passenger type. The same
// article reached from several sources is summed into one total regardless
// of unit.
func CalculerQuantites(vol *entity.Vol, plan *entity.PlanHebergement, menus []entity.Menu) map[string]int {
	quantites := make(map[string]int)

	if plan != nil {
		for _, pa := range plan.Articles {
			quantites[pa.ArticleID] += pa.QuantiteStandard * vol.EstimatedPassengers
		}
	}

	total := passagersPourVol(vol)
	for _, menu := range menus {
		passagers := passagersPourMenu(menu.TypePassager, total)
		for _, item := range menu.Items {
			quantites[item.ArticleID] += item.Quantity * passagers
		}
	}

	return quantites
}

// CoutEstime prices a quantity map against catalog unit prices, summing with
// exact decimal arithmetic then rounding to cents.
func CoutEstime(quantites map[string]int, articles map[string]entity.Article) float64 {
	total := decimal.Zero
	for articleID, qty := range quantites {
		article, ok := articles[articleID]
		if !ok {
			continue
		}
		total = total.Add(decimal.NewFromFloat(article.UnitPrice).Mul(decimal.NewFromInt(int64(qty))))
	}
	return total.Round(2).InexactFloat64()
}
