package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"github.com/skycater/gsc/internal/config"
	"github.com/skycater/gsc/internal/gsc/repository"
	"go.uber.org/zap"
)

var (
	// ErrInvalidState the operation violates a lifecycle invariant.
	ErrInvalidState = errors.New("invalid state for operation")
	// ErrPlanExists the vol already has a plan d'hébergement.
	ErrPlanExists = errors.New("plan already exists for vol")
	// ErrDossierExists the vol already has a dossier.
	ErrDossierExists = errors.New("dossier already exists for vol")
	// ErrMenuIncompatible the menu fails compatibility checks for the vol.
	ErrMenuIncompatible = errors.New("menu incompatible with vol")
	// ErrInvalidCredentials login failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Services GsC service bundle.
type Services struct {
	Auth      *AuthService
	Vol       *VolService
	Catalogue *CatalogueService
	Plan      *PlanService
	Menu      *MenuService
	Commande  *CommandeService
	Livraison *LivraisonService
	Ecart     *EcartService
	Dossier   *DossierService
	Budget    *BudgetService
	Boite     *BoiteService
	Demande   *DemandeService
}

// NewServices wires the full service graph.
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			logger.Warn("minio unavailable, document storage disabled", zap.Error(err))
			minioClient = nil
		}
	}

	menuSvc := NewMenuService(repos.Menu, repos.Plan, repos.Vol, repos.Article)
	livraisonSvc := NewLivraisonService(repos.BL, repos.BCP, logger)

	return &Services{
		Auth:      NewAuthService(repos.User, cfg),
		Vol:       NewVolService(repos.Vol),
		Catalogue: NewCatalogueService(repos.Article, repos.Fournisseur),
		Plan:      NewPlanService(repos.Plan, repos.Vol, repos.Menu, repos.Article),
		Menu:      menuSvc,
		Commande:  NewCommandeService(repos.BCP, repos.Vol, repos.Article, menuSvc, logger),
		Livraison: livraisonSvc,
		Ecart:     NewEcartService(repos.Ecart, repos.Vol),
		Dossier:   NewDossierService(repos.Dossier, repos.Vol, repos.BL, repos.BCP, repos.Ecart, minioClient, cfg.MinIO.Bucket, logger),
		Budget:    NewBudgetService(repos.Vol, repos.BCP, repos.BL, repos.Ecart, repos.Article, repos.Rapport, rdb, logger),
		Boite:     NewBoiteService(repos.Boite, repos.Vol),
		Demande:   NewDemandeService(repos.Demande, repos.Vol, livraisonSvc),
	}
}

func generateID() string {
	return uuid.New().String()[:32]
}
