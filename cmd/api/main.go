package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/developia-II/vendor-lifecycle/internal/adapters/repository/mongodb"
	"github.com/developia-II/vendor-lifecycle/internal/config"
	"github.com/developia-II/vendor-lifecycle/internal/core/domain"
	"github.com/developia-II/vendor-lifecycle/internal/handlers"
	"github.com/developia-II/vendor-lifecycle/internal/hours"
	"github.com/developia-II/vendor-lifecycle/internal/middleware"
	"github.com/developia-II/vendor-lifecycle/internal/services/audit"
	"github.com/developia-II/vendor-lifecycle/internal/services/category"
	"github.com/developia-II/vendor-lifecycle/internal/services/product"
	"github.com/developia-II/vendor-lifecycle/internal/services/vendor"
	"github.com/developia-II/vendor-lifecycle/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	logger := logrus.StandardLogger()
	logger.SetLevel(cfg.LogLevel)
	if cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	// storage
	storage, err := mongodb.New(mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		logger.WithError(err).Error("failed to connect to MongoDB")
	} else {
		logger.Info("connected to MongoDB")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := storage.CreateIndexes(ctx); err != nil {
			logger.WithError(err).Warn("failed to create indexes")
		} else {
			logger.Info("MongoDB indexes created successfully")
		}
		cancel()
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	var svcs *handlers.Services
	if storage != nil {
		svcs = buildServices(cfg, storage, logger)
	}
	handlers.SetupRoutes(router, svcs)

	if err := run(cfg, router, storage, logger); err != nil {
		logger.WithError(err).Fatal("server stopped with error")
	}
}

func buildServices(cfg config.Config, storage *mongodb.Storage, logger *logrus.Logger) *handlers.Services {
	db := storage.Database()

	// repos
	vendorRepo := mongodb.NewVendorRepository(db)
	shopRepo := mongodb.NewShopRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	detailRepo := mongodb.NewDetailRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	evaluator := hours.NewEvaluator(
		cfg.BusinessLocation,
		hours.WithOvernightCarryOver(cfg.HoursOvernightCarryOver),
		hours.WithLogger(logger.WithField("component", "hours")),
	)
	auditSvc := audit.NewService(auditRepo, logger.WithField("component", "audit"))

	var blobs domain.BlobStore
	if cfg.Cloudinary.Enabled() {
		store, err := utils.NewCloudinaryStore(utils.CloudinaryConfig{
			CloudName: cfg.Cloudinary.CloudName,
			APIKey:    cfg.Cloudinary.APIKey,
			APISecret: cfg.Cloudinary.APISecret,
			Folder:    cfg.Cloudinary.Folder,
		})
		if err != nil {
			logger.WithError(err).Warn("image storage disabled")
		} else {
			blobs = store
		}
	} else {
		logger.Warn("Cloudinary credentials not provided, image upload and cleanup are disabled")
	}

	repos := product.Repositories{
		Products:   productRepo,
		Details:    detailRepo,
		Categories: categoryRepo,
		Vendors:    vendorRepo,
		Shops:      shopRepo,
	}

	svcs := &handlers.Services{
		Vendors:    vendor.NewService(vendorRepo, shopRepo, storage, auditSvc, evaluator, logger.WithField("component", "vendor")),
		Products:   product.NewService(repos, storage, auditSvc, blobs, evaluator, logger.WithField("component", "product")),
		Categories: category.NewService(categoryRepo, logger.WithField("component", "category")),
		Audit:      auditSvc,
		Blobs:      blobs,
	}
	return svcs
}

func run(cfg config.Config, handler http.Handler, storage *mongodb.Storage, logger *logrus.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.WithField("signal", s.String()).Info("signal caught")

		err := srv.Shutdown(ctx)

		if storage != nil {
			if cerr := storage.Close(ctx); cerr != nil {
				logger.WithError(cerr).Error("error closing MongoDB")
			} else {
				logger.Info("MongoDB connection closed gracefully")
			}
		}

		shutdown <- err
	}()

	logger.WithFields(logrus.Fields{"addr": cfg.Addr, "env": cfg.Env}).Info("server has started")

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdown; err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{"addr": cfg.Addr, "env": cfg.Env}).Info("server has stopped")
	return nil
}
