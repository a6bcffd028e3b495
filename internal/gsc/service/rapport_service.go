package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skycater/gsc/internal/gsc/entity"
	"go.uber.org/zap"
)

type GenerateRapportRequest struct {
	Titre        string    `json:"titre" binding:"required"`
	TypeRapport  string    `json:"type_rapport"`
	DateDebut    time.Time `json:"date_debut" binding:"required"`
	DateFin      time.Time `json:"date_fin" binding:"required"`
	Commentaires string    `json:"commentaires"`
}

// GenerateRapport freezes the budget rollup for the requested period into a
// persisted report with per-zone and per-article-type breakdown rows.
func (s *BudgetService) GenerateRapport(ctx context.Context, userName string, req *GenerateRapportRequest) (*entity.RapportBudgetaire, error) {
	vols, err := s.volRepo.FindInPeriod(ctx, req.DateDebut, req.DateFin, "")
	if err != nil {
		return nil, err
	}
	bcps, err := s.bcpRepo.FindInPeriod(ctx, req.DateDebut, req.DateFin, "")
	if err != nil {
		return nil, err
	}
	bls, err := s.blRepo.FindValidatedInPeriod(ctx, req.DateDebut, req.DateFin, "")
	if err != nil {
		return nil, err
	}

	rapport := BuildRapport(req, userName, time.Now(), vols, bcps, bls)
	if err := s.rapportRepo.CreateWithDetails(ctx, rapport); err != nil {
		return nil, err
	}

	s.logger.Info("rapport budgetaire generated",
		zap.String("rapport_id", rapport.ID),
		zap.String("type", rapport.TypeRapport),
		zap.Int("nombre_vols", rapport.NombreVols))
	return rapport, nil
}

func (s *BudgetService) ListRapports(ctx context.Context, page, pageSize int, typeRapport, titre string) ([]entity.RapportBudgetaire, int64, error) {
	return s.rapportRepo.FindAll(ctx, page, pageSize, typeRapport, titre)
}

func (s *BudgetService) GetRapport(ctx context.Context, id string) (*entity.RapportBudgetaire, error) {
	return s.rapportRepo.FindByID(ctx, id)
}

func (s *BudgetService) DeleteRapport(ctx context.Context, id string) error {
	if _, err := s.rapportRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.rapportRepo.Delete(ctx, id)
}

// BuildRapport pure assembly of a report from period data. Forecast comes
// from purchase orders, actuals from validated deliveries only; relative
// écarts are 0 whenever the forecast side is 0.
func BuildRapport(req *GenerateRapportRequest, userName string, now time.Time, vols []entity.Vol, bcps []entity.BonCommandePrevisionnel, validatedBLs []entity.BonLivraison) *entity.RapportBudgetaire {
	typeRapport := req.TypeRapport
	if typeRapport == "" {
		typeRapport = entity.TypeRapportPersonnalise
	}

	zoneByVol := make(map[string]string, len(vols))
	volsParZone := make(map[string]int)
	prevuParZone := make(map[string]decimal.Decimal)
	for _, v := range vols {
		zoneByVol[v.ID] = v.Zone
		volsParZone[v.Zone]++
		// every zone flown gets a row, zero when nothing moved there
		prevuParZone[v.Zone] = decimal.Zero
	}

	prevu := decimal.Zero
	prevuParType := make(map[string]decimal.Decimal)
	for _, bcp := range bcps {
		prevu = prevu.Add(decimal.NewFromFloat(bcp.MontantTotal))
		zone := zoneByVol[bcp.VolID]
		prevuParZone[zone] = prevuParZone[zone].Add(decimal.NewFromFloat(bcp.MontantTotal))
		for _, l := range bcp.Lignes {
			if l.Article == nil {
				continue
			}
			prevuParType[l.Article.Type] = prevuParType[l.Article.Type].Add(decimal.NewFromFloat(l.MontantLigne))
		}
	}

	reel := decimal.Zero
	reelParZone := make(map[string]decimal.Decimal)
	reelParType := make(map[string]decimal.Decimal)
	quantiteParType := make(map[string]int)
	for _, bl := range validatedBLs {
		reel = reel.Add(decimal.NewFromFloat(bl.MontantTotal))
		zone := ""
		if bl.Vol != nil {
			zone = bl.Vol.Zone
		} else if bl.VolID != nil {
			zone = zoneByVol[*bl.VolID]
		}
		reelParZone[zone] = reelParZone[zone].Add(decimal.NewFromFloat(bl.MontantTotal))
		for _, l := range bl.Lignes {
			if l.Article == nil {
				continue
			}
			reelParType[l.Article.Type] = reelParType[l.Article.Type].Add(decimal.NewFromFloat(l.MontantLigne))
			quantiteParType[l.Article.Type] += l.QuantiteLivree
		}
	}

	delta := reel.Sub(prevu)
	rapport := &entity.RapportBudgetaire{
		ID:                   generateID(),
		Titre:                req.Titre,
		TypeRapport:          typeRapport,
		DateDebut:            req.DateDebut,
		DateFin:              req.DateFin,
		DateGeneration:       now,
		GenerePar:            userName,
		NombreVols:           len(vols),
		MontantPrevu:         prevu.Round(2).InexactFloat64(),
		MontantReel:          reel.Round(2).InexactFloat64(),
		EcartMontant:         delta.Round(2).InexactFloat64(),
		CoutRepas:            reelParType[entity.TypeArticleRepas].Round(2).InexactFloat64(),
		CoutBoissons:         reelParType[entity.TypeArticleBoisson].Round(2).InexactFloat64(),
		CoutConsommables:     reelParType[entity.TypeArticleConsommable].Round(2).InexactFloat64(),
		CoutSemiConsommables: reelParType[entity.TypeArticleSemiConsommable].Round(2).InexactFloat64(),
		CoutMaterielDivers:   reelParType[entity.TypeArticleMaterielDivers].Round(2).InexactFloat64(),
		Commentaires:         req.Commentaires,
	}
	if !prevu.IsZero() {
		rapport.PourcentageEcart = delta.Div(prevu).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}

	for _, zone := range unionKeys(prevuParZone, reelParZone) {
		rapport.Details = append(rapport.Details, buildRapportDetail(rapport.ID, "Zone", zone, prevuParZone[zone], reelParZone[zone], volsParZone[zone]))
	}
	for _, t := range unionKeys(prevuParType, reelParType) {
		rapport.Details = append(rapport.Details, buildRapportDetail(rapport.ID, "Type Article", t, prevuParType[t], reelParType[t], quantiteParType[t]))
	}

	return rapport
}

func buildRapportDetail(rapportID, categorie, libelle string, prevu, reel decimal.Decimal, quantite int) entity.RapportBudgetaireDetail {
	delta := reel.Sub(prevu)
	detail := entity.RapportBudgetaireDetail{
		ID:                  generateID(),
		RapportBudgetaireID: rapportID,
		Categorie:           categorie,
		Libelle:             libelle,
		MontantPrevu:        prevu.Round(2).InexactFloat64(),
		MontantReel:         reel.Round(2).InexactFloat64(),
		Ecart:               delta.Round(2).InexactFloat64(),
		Quantite:            quantite,
	}
	if !prevu.IsZero() {
		detail.PourcentageEcart = delta.Div(prevu).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}
	return detail
}

func unionKeys(ms ...map[string]decimal.Decimal) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, m := range ms {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}
