package handlers

import (
	"net/http"

	"github.com/developia-II/vendor-lifecycle/internal/core/domain"
	"github.com/developia-II/vendor-lifecycle/internal/middleware"
	"github.com/developia-II/vendor-lifecycle/internal/services/audit"
	"github.com/developia-II/vendor-lifecycle/internal/services/category"
	"github.com/developia-II/vendor-lifecycle/internal/services/product"
	"github.com/developia-II/vendor-lifecycle/internal/services/vendor"
	"github.com/developia-II/vendor-lifecycle/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Services is everything the HTTP layer talks to. Blobs may be nil when no
// image store is configured.
type Services struct {
	Vendors    vendor.Service
	Products   product.Service
	Categories category.Service
	Audit      audit.Service
	Blobs      domain.BlobStore
}

func SetupRoutes(router *gin.Engine, svcs *Services) {
	logrus.Info("Setting up routes...")

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Server is running!",
			"status":  "ok",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "vendor-lifecycle",
		})
	})

	if svcs == nil {
		logrus.Warn("Database not connected - running with limited functionality")
		router.Any("/api/*path", func(c *gin.Context) {
			c.JSON(http.StatusServiceUnavailable, utils.ErrorResponse("Database connection not available"))
		})
		return
	}

	vendorHandler := NewVendorHandler(svcs.Vendors, svcs.Audit)
	productHandler := NewProductHandler(svcs.Products, svcs.Audit)
	categoryHandler := NewCategoryHandler(svcs.Categories)
	uploadHandler := NewUploadHandler(svcs.Blobs)

	// Protected Routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware())
	{
		// Admin Routes
		admin := protected.Group("/admin")
		admin.Use(middleware.RoleMiddleware(utils.RoleAdmin))
		{
			vendors := admin.Group("/vendors")
			{
				vendors.GET("", vendorHandler.ListVendors)
				vendors.GET("/deleted", vendorHandler.ListDeletedVendors)
				vendors.GET("/:id", vendorHandler.GetVendor)
				vendors.GET("/:id/audit", vendorHandler.GetVendorAudit)
				vendors.PUT("/:id/approve", vendorHandler.ApproveVendor)
				vendors.PUT("/:id/reject", vendorHandler.RejectVendor)
				vendors.PUT("/:id/block", vendorHandler.BlockVendor)
				vendors.PUT("/:id/unblock", vendorHandler.UnblockVendor)
				vendors.DELETE("/:id", vendorHandler.DeleteVendor)
				vendors.PUT("/:id/restore", vendorHandler.RestoreVendor)
			}

			products := admin.Group("/products")
			{
				products.GET("/pending", productHandler.ListPendingProducts)
				products.GET("/:id/audit", productHandler.GetProductAudit)
				products.PUT("/:id/approve", productHandler.ApproveProduct)
				products.PUT("/:id/reject", productHandler.RejectProduct)
				products.PUT("/:id/restore", productHandler.RestoreProduct)
				products.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		// Vendor Product Routes
		vendorProducts := protected.Group("/products")
		vendorProducts.Use(middleware.RoleMiddleware(utils.RoleVendor, "seller"))
		{
			vendorProducts.DELETE("/:id", productHandler.DeleteProduct)
		}

		// Category Routes
		categories := protected.Group("/categories")
		{
			categories.POST("", middleware.RoleMiddleware(utils.RoleAdmin), categoryHandler.CreateProductCategory)
			categories.GET("", categoryHandler.GetAllProductCategories)
		}

		// Media Routes
		protected.POST("/upload", middleware.RoleMiddleware(utils.RoleVendor, "seller"), uploadHandler.UploadImage)
	}
}
