package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/skycater/gsc/internal/gsc/entity"
	"github.com/skycater/gsc/internal/gsc/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const budgetCacheTTL = 5 * time.Minute

// BudgetService read-side budget rollups over a date range. Pure
// recomputation, so results are cached briefly in redis and freely
// invalidated by expiry.
type BudgetService struct {
	volRepo     *repository.VolRepository
	bcpRepo     *repository.BCPRepository
	blRepo      *repository.BLRepository
	ecartRepo   *repository.EcartRepository
	articleRepo *repository.ArticleRepository
	rapportRepo *repository.RapportRepository
	rdb         *redis.Client
	logger      *zap.Logger
}

func NewBudgetService(volRepo *repository.VolRepository, bcpRepo *repository.BCPRepository, blRepo *repository.BLRepository, ecartRepo *repository.EcartRepository, articleRepo *repository.ArticleRepository, rapportRepo *repository.RapportRepository, rdb *redis.Client, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		volRepo:     volRepo,
		bcpRepo:     bcpRepo,
		blRepo:      blRepo,
		ecartRepo:   ecartRepo,
		articleRepo: articleRepo,
		rapportRepo: rapportRepo,
		rdb:         rdb,
		logger:      logger,
	}
}

// BudgetStatistics forecast vs actual over a period.
type BudgetStatistics struct {
	Debut            time.Time          `json:"debut"`
	Fin              time.Time          `json:"fin"`
	Zone             string             `json:"zone,omitempty"`
	NombreVols       int                `json:"nombre_vols"`
	MontantPrevu     float64            `json:"montant_prevu"`
	MontantReel      float64            `json:"montant_reel"`
	Ecart            float64            `json:"ecart"`
	PourcentageEcart float64            `json:"pourcentage_ecart"`
	CoutParType      map[string]float64 `json:"cout_par_type"`
	CoutParZone      map[string]float64 `json:"cout_par_zone"`
	Ecarts           *EcartStatistics   `json:"ecarts"`
}

// Statistics computes (or serves from cache) the budget rollup for
// [debut, fin], optionally restricted to a zone.
func (s *BudgetService) Statistics(ctx context.Context, debut, fin time.Time, zone string) (*BudgetStatistics, error) {
	cacheKey := fmt.Sprintf("gsc:budget:%s:%s:%s", debut.Format("20060102"), fin.Format("20060102"), zone)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var stats BudgetStatistics
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	vols, err := s.volRepo.FindInPeriod(ctx, debut, fin, zone)
	if err != nil {
		return nil, err
	}
	bcps, err := s.bcpRepo.FindInPeriod(ctx, debut, fin, zone)
	if err != nil {
		return nil, err
	}
	bls, err := s.blRepo.FindValidatedInPeriod(ctx, debut, fin, zone)
	if err != nil {
		return nil, err
	}
	ecarts, err := s.ecartRepo.FindInPeriod(ctx, debut, fin, zone)
	if err != nil {
		return nil, err
	}

	stats := BuildBudgetStatistics(debut, fin, zone, vols, bcps, bls, ecarts)

	if s.rdb != nil {
		if payload, err := json.Marshal(stats); err == nil {
			s.rdb.Set(ctx, cacheKey, payload, budgetCacheTTL)
		}
	}
	return stats, nil
}

// BuildBudgetStatistics pure aggregation: forecast sums purchase order
// totals, actual sums validated delivery totals; the relative écart is 0
// when the forecast is 0. Only validated deliveries count toward actuals
// and breakdowns. Every zone flown in the period gets a bucket, zero when
// nothing was delivered there.
func BuildBudgetStatistics(debut, fin time.Time, zone string, vols []entity.Vol, bcps []entity.BonCommandePrevisionnel, validatedBLs []entity.BonLivraison, ecarts []entity.Ecart) *BudgetStatistics {
	stats := &BudgetStatistics{
		Debut:       debut,
		Fin:         fin,
		Zone:        zone,
		NombreVols:  len(vols),
		CoutParType: make(map[string]float64),
		CoutParZone: make(map[string]float64),
	}

	prevu := decimal.Zero
	for _, bcp := range bcps {
		prevu = prevu.Add(decimal.NewFromFloat(bcp.MontantTotal))
	}

	reel := decimal.Zero
	parType := make(map[string]decimal.Decimal)
	parZone := make(map[string]decimal.Decimal)
	for _, v := range vols {
		parZone[v.Zone] = decimal.Zero
	}
	for _, bl := range validatedBLs {
		reel = reel.Add(decimal.NewFromFloat(bl.MontantTotal))
		volZone := ""
		if bl.Vol != nil {
			volZone = bl.Vol.Zone
		}
		parZone[volZone] = parZone[volZone].Add(decimal.NewFromFloat(bl.MontantTotal))
		for _, l := range bl.Lignes {
			if l.Article == nil {
				continue
			}
			parType[l.Article.Type] = parType[l.Article.Type].Add(decimal.NewFromFloat(l.MontantLigne))
		}
	}

	delta := reel.Sub(prevu)
	stats.MontantPrevu = prevu.Round(2).InexactFloat64()
	stats.MontantReel = reel.Round(2).InexactFloat64()
	stats.Ecart = delta.Round(2).InexactFloat64()
	if !prevu.IsZero() {
		stats.PourcentageEcart = delta.Div(prevu).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}

	for t, m := range parType {
		stats.CoutParType[t] = m.Round(2).InexactFloat64()
	}
	for z, m := range parZone {
		stats.CoutParZone[z] = m.Round(2).InexactFloat64()
	}
	stats.Ecarts = BuildEcartStatistics(ecarts)

	return stats
}

// ExportExcel renders the budget rollup as a one-sheet .xlsx report.
func (s *BudgetService) ExportExcel(ctx context.Context, debut, fin time.Time, zone string) (*excelize.File, string, error) {
	stats, err := s.Statistics(ctx, debut, fin, zone)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Budget"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})

	f.SetCellValue(sheet, "A1", "Rapport budgétaire")
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Période: %s au %s", debut.Format("02/01/2006"), fin.Format("02/01/2006")))
	if zone != "" {
		f.SetCellValue(sheet, "A3", "Zone: "+zone)
	}

	headers := []string{"Indicateur", "Valeur"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "5"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	rows := [][]interface{}{
		{"Nombre de vols", stats.NombreVols},
		{"Montant prévu", stats.MontantPrevu},
		{"Montant réel", stats.MontantReel},
		{"Écart", stats.Ecart},
		{"Écart (%)", stats.PourcentageEcart},
		{"Nombre d'écarts", stats.Ecarts.Total},
		{"Montant des écarts", stats.Ecarts.MontantTotal},
	}
	rowIdx := 6
	for _, row := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIdx), row[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowIdx), row[1])
		rowIdx++
	}

	rowIdx++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIdx), "Coût par type d'article")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowIdx), fmt.Sprintf("A%d", rowIdx), boldStyle)
	rowIdx++
	for _, t := range sortedKeys(stats.CoutParType) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIdx), t)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowIdx), stats.CoutParType[t])
		rowIdx++
	}

	rowIdx++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIdx), "Coût par zone")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowIdx), fmt.Sprintf("A%d", rowIdx), boldStyle)
	rowIdx++
	for _, z := range sortedKeys(stats.CoutParZone) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIdx), z)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowIdx), stats.CoutParZone[z])
		rowIdx++
	}

	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "B", 18)

	fileName := fmt.Sprintf("budget_%s_%s.xlsx", debut.Format("20060102"), fin.Format("20060102"))
	return f, fileName, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
