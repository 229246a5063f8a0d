package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/developia-II/vendor-lifecycle/internal/core/domain"
	"github.com/developia-II/vendor-lifecycle/internal/middleware"
	"github.com/developia-II/vendor-lifecycle/internal/services/audit"
	"github.com/developia-II/vendor-lifecycle/internal/services/vendor"
	"github.com/developia-II/vendor-lifecycle/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const requestTimeout = 10 * time.Second

type VendorHandler struct {
	vendors vendor.Service
	audit   audit.Service
}

func NewVendorHandler(vendors vendor.Service, auditSvc audit.Service) *VendorHandler {
	return &VendorHandler{vendors: vendors, audit: auditSvc}
}

type rejectVendorRequest struct {
	Reason       string `json:"reason" validate:"required,oneof=IDENTITY_MISMATCH TAX_MISMATCH REGISTRATION_MISMATCH SHOP_LICENSE_MISMATCH OTHER"`
	CustomReason string `json:"customReason" validate:"max=500"`
}

// GET /admin/vendors?status=&search=&page=&size=
func (h *VendorHandler) ListVendors(c *gin.Context) {
	filter := domain.VendorFilter{
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Size:   queryInt(c, "size", 10),
	}
	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseAccountStatus(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.Status = status
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	page, err := h.vendors.ListVendors(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("vendors fetched successfully", page))
}

// GET /admin/vendors/deleted
func (h *VendorHandler) ListDeletedVendors(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	page, err := h.vendors.ListDeletedVendors(ctx, queryInt(c, "page", 1), queryInt(c, "size", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("deleted vendors fetched successfully", page))
}

func (h *VendorHandler) GetVendor(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	profile, err := h.vendors.GetProfile(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("vendor fetched successfully", profile))
}

// GET /admin/vendors/:id/audit?limit=
func (h *VendorHandler) GetVendorAudit(c *gin.Context) {
	auditHistory(c, h.audit)
}

func (h *VendorHandler) ApproveVendor(c *gin.Context) {
	h.transition(c, "vendor approved", h.vendors.Approve)
}

func (h *VendorHandler) RejectVendor(c *gin.Context) {
	var req rejectVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid json payload"))
		return
	}
	req.Reason = strings.ToUpper(strings.TrimSpace(req.Reason))
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		return
	}

	h.transition(c, "vendor rejected", func(ctx context.Context, vendorID, actorID primitive.ObjectID) (*vendor.Aggregate, error) {
		return h.vendors.Reject(ctx, vendorID, actorID, domain.RejectReason(req.Reason), req.CustomReason)
	})
}

func (h *VendorHandler) BlockVendor(c *gin.Context) {
	h.transition(c, "vendor blocked", h.vendors.Block)
}

func (h *VendorHandler) UnblockVendor(c *gin.Context) {
	h.transition(c, "vendor unblocked", h.vendors.Unblock)
}

func (h *VendorHandler) DeleteVendor(c *gin.Context) {
	h.transition(c, "vendor deleted", h.vendors.SoftDelete)
}

func (h *VendorHandler) RestoreVendor(c *gin.Context) {
	h.transition(c, "vendor restored", h.vendors.Restore)
}

type vendorTransition func(ctx context.Context, vendorID, actorID primitive.ObjectID) (*vendor.Aggregate, error)

func (h *VendorHandler) transition(c *gin.Context, message string, fn vendorTransition) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	agg, err := fn(ctx, id, middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse(message, agg))
}

func auditHistory(c *gin.Context, svc audit.Service) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	entries, err := svc.History(ctx, id, queryInt(c, "limit", 0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("audit history fetched successfully", gin.H{"entries": entries}))
}

func queryInt(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return n
}
