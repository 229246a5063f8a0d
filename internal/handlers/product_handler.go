package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/developia-II/vendor-lifecycle/internal/core/domain"
	"github.com/developia-II/vendor-lifecycle/internal/middleware"
	"github.com/developia-II/vendor-lifecycle/internal/services/audit"
	"github.com/developia-II/vendor-lifecycle/internal/services/product"
	"github.com/developia-II/vendor-lifecycle/utils"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	products product.Service
	audit    audit.Service
}

func NewProductHandler(products product.Service, auditSvc audit.Service) *ProductHandler {
	return &ProductHandler{products: products, audit: auditSvc}
}

type rejectProductRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}

// GET /admin/products/pending?catalog=STANDARD|RESTRICTED
func (h *ProductHandler) ListPendingProducts(c *gin.Context) {
	catalog := domain.Catalog(strings.ToUpper(c.DefaultQuery("catalog", string(domain.CatalogStandard))))
	if catalog != domain.CatalogStandard && catalog != domain.CatalogRestricted {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("catalog must be STANDARD or RESTRICTED"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	items, err := h.products.ListPending(ctx, catalog)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("pending products fetched successfully", gin.H{
		"products": items,
		"total":    len(items),
	}))
}

func (h *ProductHandler) ApproveProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	p, err := h.products.Approve(ctx, id, middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("product approved", p))
}

// PUT /admin/products/:id/reject with an optional {"reason": "..."} body.
func (h *ProductHandler) RejectProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req rejectProductRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid json payload"))
			return
		}
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	p, err := h.products.Reject(ctx, id, middleware.ActorID(c), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("product rejected", p))
}

func (h *ProductHandler) RestoreProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	p, err := h.products.Restore(ctx, id, middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("product restored", p))
}

// DeleteProduct serves both the admin route and the vendor's own route; the
// service enforces ownership and the approved-listing guard for non-admins.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.products.Delete(ctx, id, middleware.ActorID(c), middleware.IsAdmin(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("product deleted successfully", nil))
}

func (h *ProductHandler) GetProductAudit(c *gin.Context) {
	auditHistory(c, h.audit)
}
