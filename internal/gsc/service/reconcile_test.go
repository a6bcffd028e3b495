package service

import (
	"strings"
	"testing"
	"time"

	"github.com/skycater/gsc/internal/gsc/entity"
)

func strPtr(s string) *string { return &s }

func testBCP(volID string, lignes ...entity.BCPLigne) (*entity.BonCommandePrevisionnel, []entity.BCPLigne) {
	return &entity.BonCommandePrevisionnel{
		ID:     "bcp-1",
		Numero: "BCP-AF123-20260115",
		VolID:  volID,
		Status: entity.BCPStatusEnvoye,
	}, lignes
}

func testBL(volID *string, lignes ...entity.BLLigne) *entity.BonLivraison {
	return &entity.BonLivraison{
		ID:     "bl-1",
		Numero: "BL-20260115-0001",
		VolID:  volID,
		Status: entity.BLStatusRecu,
		Lignes: lignes,
	}
}

func bcpLigne(articleID string, qty int, prix float64) entity.BCPLigne {
	return entity.BCPLigne{
		ArticleID:         articleID,
		QuantiteCommandee: qty,
		PrixUnitaire:      prix,
		MontantLigne:      prix * float64(qty),
	}
}

func blLigne(articleID string, qty int, prix float64) entity.BLLigne {
	return entity.BLLigne{
		ArticleID:      strPtr(articleID),
		QuantiteLivree: qty,
		PrixUnitaire:   prix,
		MontantLigne:   prix * float64(qty),
	}
}

func TestBuildEcartsNilBCP(t *testing.T) {
	bl := testBL(strPtr("vol-1"), blLigne("art-1", 10, 2.50))

	ecarts := BuildEcarts(bl, nil, nil, time.Now())
	if len(ecarts) != 0 {
		t.Fatalf("expected no ecarts without an order, got %d", len(ecarts))
	}
}

func TestBuildEcartsPerfectMatch(t *testing.T) {
	bcp, lignes := testBCP("vol-1", bcpLigne("art-1", 100, 2.50), bcpLigne("art-2", 50, 1.20))
	bl := testBL(strPtr("vol-1"), blLigne("art-1", 100, 2.50), blLigne("art-2", 50, 1.20))

	ecarts := BuildEcarts(bl, bcp, lignes, time.Now())
	if len(ecarts) != 0 {
		t.Fatalf("expected no ecarts for a perfect match, got %d", len(ecarts))
	}
}

func TestBuildEcartsToleranceBoundary(t *testing.T) {
	// Same quantity, amount delta exactly one cent: inside tolerance.
	bcp, lignes := testBCP("vol-1", entity.BCPLigne{
		ArticleID: "art-1", QuantiteCommandee: 10, PrixUnitaire: 2.50, MontantLigne: 25.00,
	})
	bl := testBL(strPtr("vol-1"), entity.BLLigne{
		ArticleID: strPtr("art-1"), QuantiteLivree: 10, PrixUnitaire: 2.501, MontantLigne: 25.01,
	})

	ecarts := BuildEcarts(bl, bcp, lignes, time.Now())
	if len(ecarts) != 0 {
		t.Fatalf("one cent delta must be tolerated, got %d ecarts", len(ecarts))
	}

	// Two cents is past the tolerance.
	bl.Lignes[0].MontantLigne = 25.02
	ecarts = BuildEcarts(bl, bcp, lignes, time.Now())
	if len(ecarts) != 1 {
		t.Fatalf("two cent delta must produce an ecart, got %d", len(ecarts))
	}
	if ecarts[0].TypeEcart != entity.TypeEcartPrixDifferent {
		t.Errorf("expected prix_different, got %s", ecarts[0].TypeEcart)
	}
}

func TestBuildEcartsQuantityClassification(t *testing.T) {
	bcp, lignes := testBCP("vol-1",
		bcpLigne("art-over", 10, 1.00),
		bcpLigne("art-under", 10, 1.00),
	)
	bl := testBL(strPtr("vol-1"),
		blLigne("art-over", 12, 1.00),
		blLigne("art-under", 7, 1.00),
	)

	ecarts := BuildEcarts(bl, bcp, lignes, time.Now())
	if len(ecarts) != 2 {
		t.Fatalf("expected 2 ecarts, got %d", len(ecarts))
	}

	byArticle := make(map[string]entity.Ecart)
	for _, e := range ecarts {
		byArticle[*e.ArticleID] = e
	}

	over := byArticle["art-over"]
	if over.TypeEcart != entity.TypeEcartQuantiteSuperieure {
		t.Errorf("over-delivery: expected quantite_superieure, got %s", over.TypeEcart)
	}
	if over.EcartQuantite != 2 {
		t.Errorf("over-delivery: expected delta +2, got %d", over.EcartQuantite)
	}

	under := byArticle["art-under"]
	if under.TypeEcart != entity.TypeEcartQuantiteInferieure {
		t.Errorf("under-delivery: expected quantite_inferieure, got %s", under.TypeEcart)
	}
	if under.EcartQuantite != -3 {
		t.Errorf("under-delivery: expected delta -3, got %d", under.EcartQuantite)
	}
	if under.EcartMontant != -3.00 {
		t.Errorf("under-delivery: expected montant -3.00, got %.2f", under.EcartMontant)
	}
}

func TestBuildEcartsMissingArticle(t *testing.T) {
	bcp, lignes := testBCP("vol-1", bcpLigne("art-1", 20, 3.00))
	bl := testBL(strPtr("vol-1"))

	ecarts := BuildEcarts(bl, bcp, lignes, time.Now())
	if len(ecarts) != 1 {
		t.Fatalf("expected 1 ecart, got %d", len(ecarts))
	}

	e := ecarts[0]
	if e.TypeEcart != entity.TypeEcartArticleManquant {
		t.Errorf("expected article_manquant, got %s", e.TypeEcart)
	}
	if e.EcartQuantite != -20 {
		t.Errorf("expected quantity delta -20, got %d", e.EcartQuantite)
	}
	if e.EcartMontant != -60.00 {
		t.Errorf("expected montant -60.00, got %.2f", e.EcartMontant)
	}
	if e.QuantiteLivree != 0 {
		t.Errorf("expected delivered 0, got %d", e.QuantiteLivree)
	}
}

func TestBuildEcartsExtraArticle(t *testing.T) {
	bcp, lignes := testBCP("vol-1", bcpLigne("art-1", 10, 1.00))
	bl := testBL(strPtr("vol-1"),
		blLigne("art-1", 10, 1.00),
		blLigne("art-extra", 5, 4.00),
	)

	ecarts := BuildEcarts(bl, bcp, lignes, time.Now())
	if len(ecarts) != 1 {
		t.Fatalf("expected 1 ecart, got %d", len(ecarts))
	}

	e := ecarts[0]
	if e.TypeEcart != entity.TypeEcartArticleEnPlus {
		t.Errorf("expected article_en_plus, got %s", e.TypeEcart)
	}
	if e.ArticleID == nil || *e.ArticleID != "art-extra" {
		t.Errorf("expected article art-extra, got %v", e.ArticleID)
	}
	if e.EcartMontant != 20.00 {
		t.Errorf("expected montant 20.00, got %.2f", e.EcartMontant)
	}
}

func TestBuildEcartsArticleLessLines(t *testing.T) {
	bcp, lignes := testBCP("vol-1", bcpLigne("art-1", 10, 1.00))
	bl := testBL(strPtr("vol-1"),
		blLigne("art-1", 10, 1.00),
		entity.BLLigne{NomArticle: "Plateau végétarien", QuantiteLivree: 8, PrixUnitaire: 6.50, MontantLigne: 52.00},
		entity.BLLigne{NomArticle: "Gâteau anniversaire", QuantiteLivree: 1, PrixUnitaire: 30.00, MontantLigne: 30.00},
	)

	ecarts := BuildEcarts(bl, bcp, lignes, time.Now())
	if len(ecarts) != 2 {
		t.Fatalf("expected one ecart per article-less line, got %d", len(ecarts))
	}

	for _, e := range ecarts {
		if e.TypeEcart != entity.TypeEcartArticleEnPlus {
			t.Errorf("expected article_en_plus, got %s", e.TypeEcart)
		}
		if e.ArticleID != nil {
			t.Errorf("article-less ecart must carry no article reference, got %v", *e.ArticleID)
		}
	}
	if !strings.Contains(ecarts[0].Description, "Plateau végétarien") {
		t.Errorf("description must carry the item name, got %q", ecarts[0].Description)
	}
}

func TestBuildEcartsAggregatesDuplicateLines(t *testing.T) {
	bcp, lignes := testBCP("vol-1",
		bcpLigne("art-1", 6, 2.00),
		bcpLigne("art-1", 4, 2.00),
	)
	bl := testBL(strPtr("vol-1"),
		blLigne("art-1", 5, 2.00),
		blLigne("art-1", 5, 2.00),
	)

	ecarts := BuildEcarts(bl, bcp, lignes, time.Now())
	if len(ecarts) != 0 {
		t.Fatalf("aggregated quantities match, expected no ecarts, got %d", len(ecarts))
	}
}

func TestBuildEcartsVolIDFallback(t *testing.T) {
	bcp, lignes := testBCP("vol-from-bcp", bcpLigne("art-1", 5, 1.00))
	bl := testBL(nil)

	ecarts := BuildEcarts(bl, bcp, lignes, time.Now())
	if len(ecarts) != 1 {
		t.Fatalf("expected 1 ecart, got %d", len(ecarts))
	}
	if ecarts[0].VolID != "vol-from-bcp" {
		t.Errorf("expected vol id from order, got %q", ecarts[0].VolID)
	}
}

func TestBuildEcartsStatusAndLinks(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	bcp, lignes := testBCP("vol-1", bcpLigne("art-1", 5, 1.00))
	bl := testBL(strPtr("vol-1"), blLigne("art-1", 9, 1.00))

	ecarts := BuildEcarts(bl, bcp, lignes, now)
	if len(ecarts) != 1 {
		t.Fatalf("expected 1 ecart, got %d", len(ecarts))
	}

	e := ecarts[0]
	if e.Status != entity.EcartStatusEnAttente {
		t.Errorf("new ecarts must be en_attente, got %s", e.Status)
	}
	if !e.DateDetection.Equal(now) {
		t.Errorf("expected detection date %v, got %v", now, e.DateDetection)
	}
	if e.BCPID == nil || *e.BCPID != bcp.ID {
		t.Errorf("ecart must link back to the order")
	}
	if e.BLID == nil || *e.BLID != bl.ID {
		t.Errorf("ecart must link back to the delivery note")
	}
}
