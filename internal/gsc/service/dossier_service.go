package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/shopspring/decimal"
	"github.com/skycater/gsc/internal/gsc/entity"
	"github.com/skycater/gsc/internal/gsc/repository"
	"go.uber.org/zap"
)

// DossierService per-flight dossier rollup and its strictly forward life
// cycle: en_preparation → complete → valide → archive.
type DossierService struct {
	dossierRepo *repository.DossierRepository
	volRepo     *repository.VolRepository
	blRepo      *repository.BLRepository
	bcpRepo     *repository.BCPRepository
	ecartRepo   *repository.EcartRepository
	minioClient *minio.Client
	bucket      string
	logger      *zap.Logger
}

func NewDossierService(dossierRepo *repository.DossierRepository, volRepo *repository.VolRepository, blRepo *repository.BLRepository, bcpRepo *repository.BCPRepository, ecartRepo *repository.EcartRepository, minioClient *minio.Client, bucket string, logger *zap.Logger) *DossierService {
	return &DossierService{
		dossierRepo: dossierRepo,
		volRepo:     volRepo,
		blRepo:      blRepo,
		bcpRepo:     bcpRepo,
		ecartRepo:   ecartRepo,
		minioClient: minioClient,
		bucket:      bucket,
		logger:      logger,
	}
}

func (s *DossierService) List(ctx context.Context, page, pageSize int, status string) ([]entity.DossierVol, int64, error) {
	return s.dossierRepo.FindAll(ctx, page, pageSize, status)
}

func (s *DossierService) Get(ctx context.Context, id string) (*entity.DossierVol, error) {
	return s.dossierRepo.FindByID(ctx, id)
}

func (s *DossierService) GetByVol(ctx context.Context, volID string) (*entity.DossierVol, error) {
	return s.dossierRepo.FindByVolID(ctx, volID)
}

// GenerateFromVol builds the complete dossier for a flight: total cost of
// validated deliveries, écart count and cumulative |montant|, and a
// deterministic narrative. One dossier per vol.
func (s *DossierService) GenerateFromVol(ctx context.Context, volID string) (*entity.DossierVol, error) {
	vol, err := s.volRepo.FindByID(ctx, volID)
	if err != nil {
		return nil, err
	}

	exists, err := s.dossierRepo.ExistsForVol(ctx, volID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDossierExists
	}

	ecarts, err := s.ecartRepo.FindByVolID(ctx, volID)
	if err != nil {
		return nil, err
	}
	validatedBLs, err := s.blRepo.FindValidatedByVolID(ctx, volID)
	if err != nil {
		return nil, err
	}
	totalBLs, validatedCount, err := s.blRepo.CountByVolID(ctx, volID)
	if err != nil {
		return nil, err
	}
	bcps, err := s.bcpRepo.FindByVolID(ctx, volID)
	if err != nil {
		return nil, err
	}
	boites, err := s.volRepo.CountBoitesMedicales(ctx, volID)
	if err != nil {
		return nil, err
	}

	coutTotal := decimal.Zero
	for _, bl := range validatedBLs {
		coutTotal = coutTotal.Add(decimal.NewFromFloat(bl.MontantTotal))
	}
	montantEcarts := decimal.Zero
	for _, e := range ecarts {
		montantEcarts = montantEcarts.Add(decimal.NewFromFloat(e.EcartMontant).Abs())
	}

	now := time.Now()
	dossier := &entity.DossierVol{
		ID:            generateID(),
		VolID:         vol.ID,
		Numero:        fmt.Sprintf("DV-%s-%s", vol.FlightNumber, vol.FlightDate.Format("20060102")),
		Status:        entity.DossierStatusComplete,
		DateCreation:  now,
		Resume:        buildResume(vol, ecarts, len(bcps), int(totalBLs), int(validatedCount), int(boites), montantEcarts),
		Commentaires:  fmt.Sprintf("Dossier généré automatiquement le %s", now.Format("02/01/2006 à 15:04")),
		CoutTotal:     coutTotal.Round(2).InexactFloat64(),
		NombreEcarts:  len(ecarts),
		MontantEcarts: montantEcarts.Round(2).InexactFloat64(),
	}

	if err := s.dossierRepo.Create(ctx, dossier); err != nil {
		return nil, err
	}

	s.logger.Info("dossier generated",
		zap.String("dossier_id", dossier.ID),
		zap.String("numero", dossier.Numero),
		zap.String("vol_id", volID))
	return dossier, nil
}

// buildResume deterministic narrative: flight identity, document counts,
// écart counts by status, medical box assignments.
func buildResume(vol *entity.Vol, ecarts []entity.Ecart, bcpCount, blCount, blValides, boites int, montantEcarts decimal.Decimal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "DOSSIER DE VOL - %s\n", vol.FlightNumber)
	fmt.Fprintf(&b, "Date: %s\n", vol.FlightDate.Format("02/01/2006"))
	fmt.Fprintf(&b, "Route: %s - %s\n", vol.Origin, vol.Destination)
	fmt.Fprintf(&b, "Avion: %s\n", vol.Aircraft)
	fmt.Fprintf(&b, "Passagers prévus: %d, Réels: %d\n\n", vol.EstimatedPassengers, vol.ActualPassengers)

	b.WriteString("COMMANDES ET LIVRAISONS:\n")
	fmt.Fprintf(&b, "- Nombre de BCP: %d\n", bcpCount)
	fmt.Fprintf(&b, "- Nombre de BL: %d\n", blCount)
	fmt.Fprintf(&b, "- BL validés: %d\n\n", blValides)

	if len(ecarts) > 0 {
		enAttente, resolus := 0, 0
		for _, e := range ecarts {
			switch e.Status {
			case entity.EcartStatusEnAttente:
				enAttente++
			case entity.EcartStatusResolu:
				resolus++
			}
		}
		b.WriteString("ÉCARTS DÉTECTÉS:\n")
		fmt.Fprintf(&b, "- Nombre total: %d\n", len(ecarts))
		fmt.Fprintf(&b, "- En attente: %d\n", enAttente)
		fmt.Fprintf(&b, "- Résolus: %d\n", resolus)
		fmt.Fprintf(&b, "- Montant total des écarts: %s EUR\n\n", montantEcarts.Round(2).StringFixed(2))
	}

	b.WriteString("ÉQUIPEMENTS MÉDICAUX:\n")
	fmt.Fprintf(&b, "- Boîtes médicales assignées: %d\n", boites)

	return b.String()
}

// MarquerComplete en_preparation → complete.
func (s *DossierService) MarquerComplete(ctx context.Context, id string) (*entity.DossierVol, error) {
	return s.transition(ctx, id, entity.DossierStatusComplete, entity.DossierStatusEnPreparation, "")
}

// Valider complete → valide, stamping the validator.
func (s *DossierService) Valider(ctx context.Context, id, userID string) (*entity.DossierVol, error) {
	return s.transition(ctx, id, entity.DossierStatusValide, entity.DossierStatusComplete, userID)
}

// Archiver valide → archive.
func (s *DossierService) Archiver(ctx context.Context, id string) (*entity.DossierVol, error) {
	return s.transition(ctx, id, entity.DossierStatusArchive, entity.DossierStatusValide, "")
}

func (s *DossierService) transition(ctx context.Context, id, target, requiredFrom, userID string) (*entity.DossierVol, error) {
	dossier, err := s.dossierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dossier.Status != requiredFrom {
		return nil, fmt.Errorf("dossier %s cannot go from %s to %s: %w", dossier.Numero, dossier.Status, target, ErrInvalidState)
	}

	dossier.Status = target
	if target == entity.DossierStatusValide {
		now := time.Now()
		dossier.DateValidation = &now
		dossier.ValidePar = &userID
	}

	if err := s.dossierRepo.Update(ctx, dossier); err != nil {
		return nil, err
	}
	return dossier, nil
}

// Delete refuses validated and archived dossiers.
func (s *DossierService) Delete(ctx context.Context, id string) error {
	dossier, err := s.dossierRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if dossier.Status == entity.DossierStatusValide || dossier.Status == entity.DossierStatusArchive {
		return fmt.Errorf("dossier %s is %s: %w", dossier.Numero, dossier.Status, ErrInvalidState)
	}
	return s.dossierRepo.Delete(ctx, id)
}

// UploadDocument stores the file in the object store and records it on the
// dossier. Document lifecycle is independent of the dossier status.
func (s *DossierService) UploadDocument(ctx context.Context, dossierID, userID, nomDocument, typeDocument string, reader io.Reader, fileName string, fileSize int64, contentType string) (*entity.DossierVolDocument, error) {
	dossier, err := s.dossierRepo.FindByID(ctx, dossierID)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("dossiers/%s/%s%s", dossier.Numero, uuid.New().String()[:8], filepath.Ext(fileName))

	if s.minioClient != nil {
		_, err = s.minioClient.PutObject(ctx, s.bucket, objectName, reader, fileSize, minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			return nil, fmt.Errorf("upload file: %w", err)
		}
	}

	doc := &entity.DossierVolDocument{
		ID:            generateID(),
		DossierVolID:  dossier.ID,
		NomDocument:   nomDocument,
		TypeDocument:  typeDocument,
		CheminFichier: objectName,
		FormatFichier: contentType,
		TailleFichier: fileSize,
		DateAjout:     time.Now(),
		AjoutePar:     userID,
	}
	if err := s.dossierRepo.AddDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DownloadDocument streams a stored document back.
func (s *DossierService) DownloadDocument(ctx context.Context, docID string) (io.ReadCloser, *entity.DossierVolDocument, error) {
	doc, err := s.dossierRepo.FindDocumentByID(ctx, docID)
	if err != nil {
		return nil, nil, err
	}

	if s.minioClient == nil {
		return nil, doc, fmt.Errorf("storage not configured")
	}

	object, err := s.minioClient.GetObject(ctx, s.bucket, doc.CheminFichier, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("get object: %w", err)
	}
	return object, doc, nil
}

func (s *DossierService) DeleteDocument(ctx context.Context, docID string) error {
	if _, err := s.dossierRepo.FindDocumentByID(ctx, docID); err != nil {
		return err
	}
	return s.dossierRepo.DeleteDocument(ctx, docID)
}
