package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/skycater/gsc/internal/config"
	"github.com/skycater/gsc/internal/gsc/entity"
	"github.com/skycater/gsc/internal/gsc/handler"
	"github.com/skycater/gsc/internal/gsc/repository"
	"github.com/skycater/gsc/internal/gsc/service"
	"github.com/skycater/gsc/internal/middleware"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting gsc service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Vol{},
		&entity.Article{},
		&entity.Fournisseur{},
		&entity.PlanHebergement{},
		&entity.PlanHebergementArticle{},
		&entity.Menu{},
		&entity.MenuItem{},
		&entity.MenuPlanHebergement{},
		&entity.BonCommandePrevisionnel{},
		&entity.BCPLigne{},
		&entity.BonLivraison{},
		&entity.BLLigne{},
		&entity.Ecart{},
		&entity.DossierVol{},
		&entity.DossierVolDocument{},
		&entity.DemandeMenu{},
		&entity.DemandePlat{},
		&entity.BoiteMedicale{},
		&entity.VolBoiteMedicale{},
		&entity.RapportBudgetaire{},
		&entity.RapportBudgetaireDetail{},
	); err != nil {
		zapLogger.Warn("AutoMigrate warning", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.POST("/auth/password", h.Auth.ChangePassword)

			vols := authorized.Group("/vols")
			{
				vols.GET("", h.Vol.List)
				vols.GET("/:id", h.Vol.Get)
				vols.POST("", h.Vol.Create)
				vols.PUT("/:id", h.Vol.Update)
				vols.DELETE("/:id", h.Vol.Delete)

				vols.GET("/:id/plan", h.Plan.GetByVol)
				vols.POST("/:id/plan", h.Plan.Generate)

				vols.GET("/:id/menus/statistics", h.Menu.Statistics)

				vols.GET("/:id/bcps", h.Commande.ListByVol)
				vols.POST("/:id/bcps/generate", h.Commande.GenerateFromVol)

				vols.GET("/:id/ecarts", h.Ecart.ListByVol)
				vols.GET("/:id/ecarts/statistics", h.Ecart.StatisticsForVol)

				vols.GET("/:id/dossier", h.Dossier.GetByVol)
				vols.POST("/:id/dossier", h.Dossier.Generate)

				vols.GET("/:id/boites/recommendations", h.Boite.RecommendForVol)
				vols.POST("/:id/boites", h.Boite.AssignToVol)
			}

			articles := authorized.Group("/articles")
			{
				articles.GET("", h.Catalogue.ListArticles)
				articles.GET("/:id", h.Catalogue.GetArticle)
				articles.POST("", h.Catalogue.CreateArticle)
				articles.PUT("/:id", h.Catalogue.UpdateArticle)
				articles.DELETE("/:id", h.Catalogue.DeleteArticle)
			}

			fournisseurs := authorized.Group("/fournisseurs")
			{
				fournisseurs.GET("", h.Catalogue.ListFournisseurs)
				fournisseurs.GET("/:id", h.Catalogue.GetFournisseur)
				fournisseurs.POST("", h.Catalogue.CreateFournisseur)
				fournisseurs.PUT("/:id", h.Catalogue.UpdateFournisseur)
				fournisseurs.DELETE("/:id", h.Catalogue.DeleteFournisseur)
			}

			plans := authorized.Group("/plans")
			{
				plans.GET("/:id", h.Plan.Get)
				plans.POST("/:id/menus", h.Plan.AssignMenu)
				plans.DELETE("/:id/menus/:menuId", h.Plan.UnassignMenu)
				plans.DELETE("/:id", h.Plan.Delete)
			}

			menus := authorized.Group("/menus")
			{
				menus.GET("", h.Menu.List)
				menus.GET("/:id", h.Menu.Get)
				menus.POST("", h.Menu.Create)
				menus.PUT("/:id", h.Menu.Update)
				menus.DELETE("/:id", h.Menu.Delete)
				menus.POST("/:id/items", h.Menu.AddItem)
				menus.DELETE("/:id/items/:itemId", h.Menu.RemoveItem)
			}

			bcps := authorized.Group("/bcps")
			{
				bcps.GET("", h.Commande.List)
				bcps.GET("/:id", h.Commande.Get)
				bcps.POST("", h.Commande.Create)
				bcps.PUT("/:id", h.Commande.Update)
				bcps.POST("/:id/envoyer", h.Commande.Envoyer)
				bcps.POST("/:id/confirmer", h.Commande.Confirmer)
				bcps.POST("/:id/annuler", h.Commande.Annuler)
				bcps.DELETE("/:id", h.Commande.Delete)
			}

			bls := authorized.Group("/bls")
			{
				bls.GET("", h.Livraison.List)
				bls.GET("/:id", h.Livraison.Get)
				bls.POST("", h.Livraison.Create)
				bls.PUT("/:id", h.Livraison.Update)
				bls.POST("/:id/recevoir", h.Livraison.Recevoir)
				bls.POST("/:id/valider", h.Livraison.Valider)
				bls.POST("/:id/rejeter", h.Livraison.Rejeter)
				bls.DELETE("/:id", h.Livraison.Delete)
			}

			ecarts := authorized.Group("/ecarts")
			{
				ecarts.GET("", h.Ecart.List)
				ecarts.GET("/:id", h.Ecart.Get)
				ecarts.POST("", h.Ecart.Create)
				ecarts.POST("/:id/traiter", h.Ecart.Traiter)
				ecarts.POST("/:id/resoudre", h.Ecart.Resoudre)
				ecarts.POST("/:id/accepter", h.Ecart.Accepter)
				ecarts.POST("/:id/rejeter", h.Ecart.Rejeter)
				ecarts.DELETE("/:id", h.Ecart.Delete)
			}

			dossiers := authorized.Group("/dossiers")
			{
				dossiers.GET("", h.Dossier.List)
				dossiers.GET("/:id", h.Dossier.Get)
				dossiers.POST("/:id/complete", h.Dossier.MarquerComplete)
				dossiers.POST("/:id/valider", h.Dossier.Valider)
				dossiers.POST("/:id/archiver", h.Dossier.Archiver)
				dossiers.DELETE("/:id", h.Dossier.Delete)

				dossiers.POST("/:id/documents", h.Dossier.UploadDocument)
				dossiers.GET("/:id/documents/:docId/download", h.Dossier.DownloadDocument)
				dossiers.DELETE("/:id/documents/:docId", h.Dossier.DeleteDocument)
			}

			budget := authorized.Group("/budget")
			{
				budget.GET("/statistics", h.Budget.Statistics)
				budget.GET("/export", h.Budget.Export)
				budget.GET("/rapports", h.Budget.ListRapports)
				budget.POST("/rapports", h.Budget.GenerateRapport)
				budget.GET("/rapports/:id", h.Budget.GetRapport)
				budget.DELETE("/rapports/:id", h.Budget.DeleteRapport)
			}

			boites := authorized.Group("/boites")
			{
				boites.GET("", h.Boite.List)
				boites.GET("/:id", h.Boite.Get)
				boites.POST("", h.Boite.Create)
				boites.PUT("/:id", h.Boite.Update)
				boites.DELETE("/:id", h.Boite.Delete)
			}

			demandes := authorized.Group("/demandes")
			{
				demandes.GET("", h.Demande.List)
				demandes.GET("/:id", h.Demande.Get)
				demandes.POST("", h.Demande.Create)
				demandes.PUT("/:id", h.Demande.Update)
				demandes.POST("/:id/accepter", h.Demande.Accepter)
				demandes.POST("/:id/rejeter", h.Demande.Rejeter)
				demandes.DELETE("/:id", h.Demande.Delete)
			}
		}
	}
}
