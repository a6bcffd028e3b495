package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skycater/gsc/internal/gsc/entity"
)

// montantTolerance amount deltas at or under one cent are not écarts.
var montantTolerance = decimal.NewFromFloat(0.01)

// ordered is one article aggregated across the BCP lines that reference it.
type ordered struct {
	quantite int
	prix     float64
	montant  decimal.Decimal
}

// delivered is one article aggregated across the BL lines that reference it.
type delivered struct {
	quantite int
	prix     float64
	montant  decimal.Decimal
}

// BuildEcarts compares a delivery note against the purchase order it fulfils
// and returns one écart per discrepancy. Three passes: matched articles
// (quantity or amount delta), ordered-but-missing articles, delivered-but-
// unordered articles. A delivered line with no article reference cannot be
// matched against the order, so it always lands in the extra pass, one écart
// per line, item name carried in the description.
//
// All returned écarts are "en_attente" and carry now as detection date.
// When bcp is nil there is no basis for comparison and the result is empty.
func BuildEcarts(bl *entity.BonLivraison, bcp *entity.BonCommandePrevisionnel, bcpLignes []entity.BCPLigne, now time.Time) []entity.Ecart {
	if bcp == nil {
		return nil
	}

	volID := ""
	if bl.VolID != nil {
		volID = *bl.VolID
	}
	if volID == "" {
		volID = bcp.VolID
	}

	commandes := make(map[string]*ordered)
	orderedIDs := make([]string, 0, len(bcpLignes))
	for _, l := range bcpLignes {
		c, ok := commandes[l.ArticleID]
		if !ok {
			c = &ordered{prix: l.PrixUnitaire}
			commandes[l.ArticleID] = c
			orderedIDs = append(orderedIDs, l.ArticleID)
		}
		c.quantite += l.QuantiteCommandee
		c.montant = c.montant.Add(decimal.NewFromFloat(l.MontantLigne))
	}

	livraisons := make(map[string]*delivered)
	deliveredIDs := make([]string, 0, len(bl.Lignes))
	var sansArticle []entity.BLLigne
	for _, l := range bl.Lignes {
		if l.ArticleID == nil || *l.ArticleID == "" {
			sansArticle = append(sansArticle, l)
			continue
		}
		d, ok := livraisons[*l.ArticleID]
		if !ok {
			d = &delivered{prix: l.PrixUnitaire}
			livraisons[*l.ArticleID] = d
			deliveredIDs = append(deliveredIDs, *l.ArticleID)
		}
		d.quantite += l.QuantiteLivree
		d.montant = d.montant.Add(decimal.NewFromFloat(l.MontantLigne))
	}

	var ecarts []entity.Ecart

	newEcart := func(articleID *string, typeEcart string) entity.Ecart {
		return entity.Ecart{
			ID:            uuid.New().String()[:32],
			VolID:         volID,
			ArticleID:     articleID,
			BCPID:         &bcp.ID,
			BLID:          &bl.ID,
			TypeEcart:     typeEcart,
			Status:        entity.EcartStatusEnAttente,
			DateDetection: now,
		}
	}

	// Matched pass: articles present on both sides.
	for _, articleID := range orderedIDs {
		c := commandes[articleID]
		d, found := livraisons[articleID]
		if !found {
			continue
		}

		deltaQuantite := d.quantite - c.quantite
		deltaMontant := d.montant.Sub(c.montant)

		if deltaQuantite == 0 && deltaMontant.Abs().LessThanOrEqual(montantTolerance) {
			continue
		}

		typeEcart := entity.TypeEcartPrixDifferent
		if deltaQuantite > 0 {
			typeEcart = entity.TypeEcartQuantiteSuperieure
		} else if deltaQuantite < 0 {
			typeEcart = entity.TypeEcartQuantiteInferieure
		}

		id := articleID
		e := newEcart(&id, typeEcart)
		e.QuantiteCommandee = c.quantite
		e.QuantiteLivree = d.quantite
		e.EcartQuantite = deltaQuantite
		e.PrixCommande = c.prix
		e.PrixLivraison = d.prix
		e.EcartMontant = deltaMontant.Round(2).InexactFloat64()
		e.Description = fmt.Sprintf("Commandé %d, livré %d", c.quantite, d.quantite)
		ecarts = append(ecarts, e)
	}

	// Missing pass: ordered, never delivered.
	for _, articleID := range orderedIDs {
		if _, found := livraisons[articleID]; found {
			continue
		}
		c := commandes[articleID]

		id := articleID
		e := newEcart(&id, entity.TypeEcartArticleManquant)
		e.QuantiteCommandee = c.quantite
		e.QuantiteLivree = 0
		e.EcartQuantite = -c.quantite
		e.PrixCommande = c.prix
		e.EcartMontant = c.montant.Neg().Round(2).InexactFloat64()
		e.Description = fmt.Sprintf("Article commandé (%d) mais absent de la livraison", c.quantite)
		ecarts = append(ecarts, e)
	}

	// Extra pass: delivered, never ordered.
	for _, articleID := range deliveredIDs {
		if _, found := commandes[articleID]; found {
			continue
		}
		d := livraisons[articleID]

		id := articleID
		e := newEcart(&id, entity.TypeEcartArticleEnPlus)
		e.QuantiteCommandee = 0
		e.QuantiteLivree = d.quantite
		e.EcartQuantite = d.quantite
		e.PrixLivraison = d.prix
		e.EcartMontant = d.montant.Round(2).InexactFloat64()
		e.Description = fmt.Sprintf("Article livré (%d) sans ligne de commande", d.quantite)
		ecarts = append(ecarts, e)
	}

	// Article-less delivery lines cannot match any ordered article, each
	// one is an extra by itself.
	for _, l := range sansArticle {
		e := newEcart(nil, entity.TypeEcartArticleEnPlus)
		e.QuantiteCommandee = 0
		e.QuantiteLivree = l.QuantiteLivree
		e.EcartQuantite = l.QuantiteLivree
		e.PrixLivraison = l.PrixUnitaire
		e.EcartMontant = decimal.NewFromFloat(l.MontantLigne).Round(2).InexactFloat64()
		e.Description = fmt.Sprintf("Article livré (%d) sans ligne de commande: %s", l.QuantiteLivree, l.NomArticle)
		ecarts = append(ecarts, e)
	}

	return ecarts
}
