package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/developia-II/vendor-lifecycle/internal/adapters/repository/memory"
	"github.com/developia-II/vendor-lifecycle/internal/core/domain"
	"github.com/developia-II/vendor-lifecycle/internal/hours"
	"github.com/developia-II/vendor-lifecycle/internal/services/audit"
	"github.com/developia-II/vendor-lifecycle/internal/services/category"
	"github.com/developia-II/vendor-lifecycle/internal/services/product"
	"github.com/developia-II/vendor-lifecycle/internal/services/vendor"
	"github.com/developia-II/vendor-lifecycle/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubBlobs struct {
	uploaded []string
	deleted  []string
}

func (b *stubBlobs) Upload(_ context.Context, r io.Reader, filename string) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	b.uploaded = append(b.uploaded, filename)
	return "https://res.cloudinary.com/demo/image/upload/v1/vendora/products/" + filename, nil
}

func (b *stubBlobs) Delete(_ context.Context, url string) error {
	b.deleted = append(b.deleted, url)
	return nil
}

type env struct {
	router      *gin.Engine
	store       *memory.Store
	blobs       *stubBlobs
	adminToken  string
	vendorID    primitive.ObjectID
	vendorToken string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	t.Setenv("JWT_SECRET", "handler-test-secret")
	gin.SetMode(gin.TestMode)

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	store := memory.NewStore()
	evaluator := hours.NewEvaluator(loc, hours.WithLogger(logger))
	auditSvc := audit.NewService(store.Audit(), logger)
	blobs := &stubBlobs{}

	svcs := &Services{
		Vendors: vendor.NewService(store.Vendors(), store.Shops(), store, auditSvc, evaluator, logger),
		Products: product.NewService(product.Repositories{
			Products:   store.Products(),
			Details:    store.Details(),
			Categories: store.Categories(),
			Vendors:    store.Vendors(),
			Shops:      store.Shops(),
		}, store, auditSvc, blobs, evaluator, logger),
		Categories: category.NewService(store.Categories(), logger),
		Audit:      auditSvc,
		Blobs:      blobs,
	}

	router := gin.New()
	SetupRoutes(router, svcs)

	adminToken, err := utils.GenerateToken(primitive.NewObjectID().Hex(), utils.RoleAdmin, time.Hour)
	require.NoError(t, err)
	vendorID := primitive.NewObjectID()
	vendorToken, err := utils.GenerateToken(vendorID.Hex(), utils.RoleVendor, time.Hour)
	require.NoError(t, err)

	return &env{
		router:      router,
		store:       store,
		blobs:       blobs,
		adminToken:  adminToken,
		vendorID:    vendorID,
		vendorToken: vendorToken,
	}
}

func (e *env) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *env) seedVendor(t *testing.T, status domain.AccountStatus, deleted bool, v domain.Vendor) primitive.ObjectID {
	t.Helper()
	ctx := context.Background()
	v.AccountStatus = status
	if deleted {
		v.MarkDeleted(primitive.NewObjectID(), time.Now())
	}
	require.NoError(t, e.store.Vendors().Save(ctx, &v))
	shop := domain.Shop{VendorID: v.ID, Name: "Test Shop"}
	domain.SyncShop(&v, &shop)
	require.NoError(t, e.store.Shops().Save(ctx, &shop))
	return v.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	e := newEnv(t)
	w := e.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLimitedModeWithoutServices(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/vendors", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/v1/admin/vendors", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/api/v1/admin/vendors", e.vendorToken, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/api/v1/admin/vendors", e.adminToken, nil).Code)
}

func TestVendorLifecycleOverHTTP(t *testing.T) {
	e := newEnv(t)
	id := e.seedVendor(t, domain.AccountPending, false, domain.Vendor{Name: "Lakshmi"})
	base := "/api/v1/admin/vendors/" + id.Hex()

	w := e.do(http.MethodPut, base+"/approve", e.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "APPROVED", data["vendor"].(map[string]any)["accountStatus"])
	assert.Equal(t, true, data["shop"].(map[string]any)["active"])

	assert.Equal(t, http.StatusConflict, e.do(http.MethodPut, base+"/approve", e.adminToken, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodPut, base+"/block", e.adminToken, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodPut, base+"/unblock", e.adminToken, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodDelete, base, e.adminToken, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodPut, base+"/restore", e.adminToken, nil).Code)

	w = e.do(http.MethodGet, base+"/audit", e.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decode(t, w)["data"].(map[string]any)["entries"].([]any)
	assert.Len(t, entries, 5)
	assert.Equal(t, "RESTORE", entries[0].(map[string]any)["action"])

	w = e.do(http.MethodGet, base, e.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	docs := decode(t, w)["data"].(map[string]any)["documents"].([]any)
	assert.Len(t, docs, 4)
}

func TestVendorErrorsMapToStatusCodes(t *testing.T) {
	e := newEnv(t)
	pending := e.seedVendor(t, domain.AccountPending, false, domain.Vendor{})
	blocked := e.seedVendor(t, domain.AccountBlocked, true, domain.Vendor{TaxStatus: domain.DocumentRejected})

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown vendor", http.MethodPut, "/api/v1/admin/vendors/" + primitive.NewObjectID().Hex() + "/approve", nil, http.StatusNotFound},
		{"bad id", http.MethodPut, "/api/v1/admin/vendors/not-an-id/approve", nil, http.StatusBadRequest},
		{"unknown reject reason", http.MethodPut, "/api/v1/admin/vendors/" + pending.Hex() + "/reject", gin.H{"reason": "LOOKS_FAKE"}, http.StatusBadRequest},
		{"missing reject body", http.MethodPut, "/api/v1/admin/vendors/" + pending.Hex() + "/reject", nil, http.StatusBadRequest},
		{"restore blocked", http.MethodPut, "/api/v1/admin/vendors/" + blocked.Hex() + "/restore", nil, http.StatusUnprocessableEntity},
		{"unblock deleted", http.MethodPut, "/api/v1/admin/vendors/" + blocked.Hex() + "/unblock", nil, http.StatusConflict},
		{"bad status filter", http.MethodGet, "/api/v1/admin/vendors?status=ARCHIVED", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do(tt.method, tt.path, e.adminToken, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.Equal(t, false, decode(t, w)["success"])
		})
	}
}

func TestRejectVendorOverHTTP(t *testing.T) {
	e := newEnv(t)
	id := e.seedVendor(t, domain.AccountPending, false, domain.Vendor{})

	w := e.do(http.MethodPut, "/api/v1/admin/vendors/"+id.Hex()+"/reject", e.adminToken, gin.H{"reason": "shop_license_mismatch"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	shop, err := e.store.Shops().FindByVendorID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentRejected, shop.LicenseStatus)
	assert.False(t, shop.Active)
}

func TestListVendorsOverHTTP(t *testing.T) {
	e := newEnv(t)
	e.seedVendor(t, domain.AccountPending, false, domain.Vendor{Name: "Pending One"})
	e.seedVendor(t, domain.AccountApproved, false, domain.Vendor{Name: "Approved One"})
	e.seedVendor(t, domain.AccountBlocked, true, domain.Vendor{Name: "Deleted One"})

	w := e.do(http.MethodGet, "/api/v1/admin/vendors?status=pending", e.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(1), data["total"])

	w = e.do(http.MethodGet, "/api/v1/admin/vendors/deleted", e.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w)["data"].(map[string]any)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Deleted One", items[0].(map[string]any)["name"])
}

func (e *env) seedProduct(t *testing.T, status domain.ApprovalStatus) primitive.ObjectID {
	t.Helper()
	p := domain.Product{
		VendorID:       e.vendorID,
		Catalog:        domain.CatalogStandard,
		Name:           "Paneer",
		ApprovalStatus: status,
		Status:         domain.ProductActive,
		Images:         []string{"https://res.cloudinary.com/demo/image/upload/v1/vendora/products/paneer.jpg"},
	}
	require.NoError(t, e.store.Products().Save(context.Background(), &p))
	return p.ID
}

func TestProductModerationOverHTTP(t *testing.T) {
	e := newEnv(t)
	id := e.seedProduct(t, domain.ApprovalPending)
	other := e.seedProduct(t, domain.ApprovalPending)

	w := e.do(http.MethodGet, "/api/v1/admin/products/pending", e.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["data"].(map[string]any)["total"])

	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodGet, "/api/v1/admin/products/pending?catalog=OTHER", e.adminToken, nil).Code)

	w = e.do(http.MethodPut, "/api/v1/admin/products/"+id.Hex()+"/approve", e.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodPut, "/api/v1/admin/products/"+other.Hex()+"/reject", e.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	p, err := e.store.Products().FindByID(context.Background(), other)
	require.NoError(t, err)
	require.NotNil(t, p.RejectionReason)
	assert.Equal(t, "No specific reason provided by admin", *p.RejectionReason)

	assert.Equal(t, http.StatusConflict, e.do(http.MethodPut, "/api/v1/admin/products/"+other.Hex()+"/reject", e.adminToken, gin.H{"reason": "again"}).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodPut, "/api/v1/admin/products/"+other.Hex()+"/restore", e.adminToken, nil).Code)
}

func TestVendorProductDelete(t *testing.T) {
	e := newEnv(t)
	approved := e.seedProduct(t, domain.ApprovalApproved)
	pending := e.seedProduct(t, domain.ApprovalPending)

	w := e.do(http.MethodDelete, "/api/v1/products/"+approved.Hex(), e.vendorToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodDelete, "/api/v1/products/"+pending.Hex(), e.vendorToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodDelete, "/api/v1/admin/products/"+approved.Hex(), e.adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, e.blobs.deleted, 2)

	w = e.do(http.MethodDelete, "/api/v1/admin/products/"+approved.Hex(), e.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoriesOverHTTP(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodPost, "/api/v1/categories", e.vendorToken, gin.H{"name": "Dairy", "slug": "dairy-root"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodPost, "/api/v1/categories", e.adminToken, gin.H{"name": "Dairy", "slug": "dairy-root"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(http.MethodPost, "/api/v1/categories", e.adminToken, gin.H{"name": "Dairy", "slug": "dairy-root"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.do(http.MethodPost, "/api/v1/categories", e.adminToken, gin.H{"name": "D"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodGet, "/api/v1/categories", e.vendorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)["data"].(map[string]any)["categories"].([]any)
	assert.Len(t, list, 1)
}

func multipartImage(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	e := newEnv(t)
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

	body, contentType := multipartImage(t, "photo", png)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+e.vendorToken)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "image/png", data["type"])
	require.Len(t, e.blobs.uploaded, 1)
	assert.True(t, strings.HasSuffix(e.blobs.uploaded[0], ".png"))
	assert.NotContains(t, e.blobs.uploaded[0], "photo")

	body, contentType = multipartImage(t, "notes.txt", []byte("just some text, not an image"))
	req = httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+e.vendorToken)
	w = httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/upload", nil)
	req.Header.Set("Authorization", "Bearer "+e.adminToken)
	w = httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
