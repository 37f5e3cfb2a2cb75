package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/legacylearning/intake-api/api/swagger"
	"github.com/legacylearning/intake-api/internal/handler"
	"github.com/legacylearning/intake-api/internal/middleware"
	"github.com/legacylearning/intake-api/internal/repository"
	"github.com/legacylearning/intake-api/internal/service"
	"github.com/legacylearning/intake-api/pkg/config"
	appErrors "github.com/legacylearning/intake-api/pkg/errors"
	"github.com/legacylearning/intake-api/pkg/export"
	"github.com/legacylearning/intake-api/pkg/llm"
	"github.com/legacylearning/intake-api/pkg/logger"
	corsmiddleware "github.com/legacylearning/intake-api/pkg/middleware/cors"
	reqidmiddleware "github.com/legacylearning/intake-api/pkg/middleware/requestid"
	"github.com/legacylearning/intake-api/pkg/response"
	"github.com/legacylearning/intake-api/pkg/storage"
)

// @title Legacy Learning Intake API
// @version 1.0.0
// @description Client brief intake, triage, and strategy document generation
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()

	var store storage.BlobStore
	var fsStore *storage.FilesystemStore
	switch cfg.Blob.Driver {
	case config.BlobDriverFilesystem:
		signer := storage.NewSignedURLSigner(cfg.Blob.SignedURLSecret, cfg.Blob.SignedURLTTL)
		fsStore, err = storage.NewFilesystemStore(cfg.Blob.StorageDir, cfg.Blob.PublicBaseURL, signer)
		if err != nil {
			logr.Sugar().Fatalw("filesystem blob store init failed", "error", err)
		}
		store = fsStore
	case config.BlobDriverVercel:
		vercel, err := storage.NewVercelStore(cfg.Blob.ReadWriteToken, cfg.Blob.APIBaseURL, cfg.Blob.StoreBaseURL)
		if err != nil {
			logr.Sugar().Fatalw("vercel blob store init failed", "error", err)
		}
		store = vercel
	default:
		logr.Sugar().Fatalw("unknown blob driver", "driver", cfg.Blob.Driver)
	}

	repo := repository.NewSubmissionRepository(store, metrics, logr)
	submissions := service.NewSubmissionService(repo, logr)
	exports := service.NewExportService(submissions, export.Branding{
		Name:    cfg.Export.BrandName,
		Tagline: cfg.Export.BrandTagline,
		Domain:  cfg.Export.BrandDomain,
	}, logr)
	uploads := service.NewUploadService(store, logr)
	verifier := service.NewVerifier(cfg.Admin, logr)

	var outlines *service.OutlineService
	outlineClient, err := llm.NewOutlineClient(cfg.Outline.APIKey, cfg.Outline.Model, cfg.Outline.BaseURL, cfg.Outline.Timeout)
	if err != nil {
		logr.Sugar().Warnw("outline drafting disabled", "error", err)
	} else {
		outlines = service.NewOutlineService(outlineClient, nil, logr)
	}

	submissionHandler := handler.NewSubmissionHandler(submissions)
	exportHandler := handler.NewExportHandler(exports, metrics)
	uploadHandler := handler.NewUploadHandler(uploads)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/submissions", submissionHandler.Submit)
	api.POST("/export", exportHandler.RenderPayload)
	api.POST("/uploads/url", uploadHandler.CreateURL)

	if outlines != nil {
		outlineHandler := handler.NewOutlineHandler(outlines, metrics)
		api.POST("/outline/draft", outlineHandler.Draft)
	} else {
		api.POST("/outline/draft", func(c *gin.Context) {
			response.Error(c, appErrors.Clone(appErrors.ErrInternal, "outline provider not configured"))
		})
	}

	admin := api.Group("/admin", middleware.AdminAuth(verifier))
	admin.GET("/submissions", submissionHandler.List)
	admin.GET("/submissions/export.csv", exportHandler.ExportListingCSV)
	admin.POST("/submissions/mark", submissionHandler.MarkStatus)
	admin.GET("/submission", submissionHandler.Get)
	admin.GET("/metrics", metricsHandler.Snapshot)
	api.GET("/export", middleware.AdminAuth(verifier), exportHandler.RenderStored)

	if fsStore != nil {
		blobHandler := handler.NewBlobHandler(fsStore)
		r.PUT("/blob/object", blobHandler.Upload)
		r.GET("/blob/object", blobHandler.Download)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "blob_driver", cfg.Blob.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
