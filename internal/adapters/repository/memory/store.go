// Package memory is an in-process implementation of every repository port,
// used by the service and handler tests. WithinTransaction snapshots the whole
// store and restores it when the unit of work fails; writes outside a
// transaction are held until it ends.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/developia-II/vendor-lifecycle/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	vendors    map[primitive.ObjectID]domain.Vendor
	shops      map[primitive.ObjectID]domain.Shop
	products   map[primitive.ObjectID]domain.Product
	categories map[primitive.ObjectID]domain.Category
	details    map[domain.ProductType]map[primitive.ObjectID]domain.ProductDetail
	audit      []domain.AuditEntry
}

func NewStore() *Store {
	return &Store{
		vendors:    make(map[primitive.ObjectID]domain.Vendor),
		shops:      make(map[primitive.ObjectID]domain.Shop),
		products:   make(map[primitive.ObjectID]domain.Product),
		categories: make(map[primitive.ObjectID]domain.Category),
		details:    make(map[domain.ProductType]map[primitive.ObjectID]domain.ProductDetail),
	}
}

type snapshot struct {
	vendors    map[primitive.ObjectID]domain.Vendor
	shops      map[primitive.ObjectID]domain.Shop
	products   map[primitive.ObjectID]domain.Product
	categories map[primitive.ObjectID]domain.Category
	details    map[domain.ProductType]map[primitive.ObjectID]domain.ProductDetail
	audit      []domain.AuditEntry
}

// Stored values are replaced on write, never mutated in place, so copying the
// maps is enough to snapshot them.
func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		vendors:    copyMap(s.vendors),
		shops:      copyMap(s.shops),
		products:   copyMap(s.products),
		categories: copyMap(s.categories),
		details:    make(map[domain.ProductType]map[primitive.ObjectID]domain.ProductDetail, len(s.details)),
		audit:      append([]domain.AuditEntry(nil), s.audit...),
	}
	for t, m := range s.details {
		snap.details[t] = copyMap(m)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vendors = snap.vendors
	s.shops = snap.shops
	s.products = snap.products
	s.categories = snap.categories
	s.details = snap.details
	s.audit = snap.audit
}

type txKey struct{}

// WithinTransaction serializes units of work and rolls the store back when
// fn fails. Writes made with a context that is not inside a transaction wait
// for the running one to finish, so a rollback never discards them.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) lockWrite(ctx context.Context) (unlock func()) {
	if owner, _ := ctx.Value(txKey{}).(*Store); owner == s {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

func (s *Store) Vendors() *VendorRepository { return &VendorRepository{s: s} }
func (s *Store) Shops() *ShopRepository { return &ShopRepository{s: s} }
func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }
func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{s: s} }
func (s *Store) Details() *DetailRepository { return &DetailRepository{s: s} }
func (s *Store) Audit() *AuditRepository { return &AuditRepository{s: s} }

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func ensureID(id *primitive.ObjectID) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
}

// VendorRepository

type VendorRepository struct{ s *Store }

func (r *VendorRepository) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Vendor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.vendors[id]
	if !ok {
		return nil, nil
	}
	out := cloneVendor(v)
	return &out, nil
}

func (r *VendorRepository) Save(ctx context.Context, v *domain.Vendor) error {
	ensureID(&v.ID)
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	defer r.s.lockWrite(ctx)()
	r.s.vendors[v.ID] = cloneVendor(*v)
	return nil
}

func (r *VendorRepository) List(_ context.Context, f domain.VendorFilter) ([]domain.Vendor, int64, error) {
	r.s.mu.RLock()
	matched := make([]domain.Vendor, 0, len(r.s.vendors))
	for _, v := range r.s.vendors {
		if v.Deleted != f.Deleted {
			continue
		}
		if f.Status != "" && v.AccountStatus.OrPending() != f.Status {
			continue
		}
		if f.Search != "" && !matchesSearch(v, f.Search) {
			continue
		}
		matched = append(matched, cloneVendor(v))
	}
	r.s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if f.Deleted {
			return timeOf(matched[i].DeletedAt).After(timeOf(matched[j].DeletedAt))
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start, end := pageBounds(f.Page, f.Size, len(matched))
	return matched[start:end], total, nil
}

func matchesSearch(v domain.Vendor, term string) bool {
	term = strings.ToLower(term)
	for _, field := range []string{v.Name, v.Email, v.Phone, v.BusinessName} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func pageBounds(page, size, n int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	start := (page - 1) * size
	if start > n {
		start = n
	}
	end := start + size
	if end > n {
		end = n
	}
	return start, end
}

func timeOf(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func cloneVendor(v domain.Vendor) domain.Vendor {
	v.StatusUpdatedAt = cloneTime(v.StatusUpdatedAt)
	v.DeletedAt = cloneTime(v.DeletedAt)
	if v.DeletedBy != nil {
		id := *v.DeletedBy
		v.DeletedBy = &id
	}
	return v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// ShopRepository

type ShopRepository struct{ s *Store }

func (r *ShopRepository) FindByVendorID(_ context.Context, vendorID primitive.ObjectID) (*domain.Shop, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sh := range r.s.shops {
		if sh.VendorID == vendorID {
			out := sh
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ShopRepository) Save(ctx context.Context, sh *domain.Shop) error {
	ensureID(&sh.ID)
	defer r.s.lockWrite(ctx)()
	r.s.shops[sh.ID] = *sh
	return nil
}

// ProductRepository

type ProductRepository struct{ s *Store }

func (r *ProductRepository) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	out := cloneProduct(p)
	return &out, nil
}

func (r *ProductRepository) Save(ctx context.Context, p *domain.Product) error {
	ensureID(&p.ID)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	defer r.s.lockWrite(ctx)()
	r.s.products[p.ID] = cloneProduct(*p)
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer r.s.lockWrite(ctx)()
	if _, ok := r.s.products[id]; !ok {
		return fmt.Errorf("%w: product %s", domain.ErrNotFound, id.Hex())
	}
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepository) ListByApprovalStatus(_ context.Context, catalog domain.Catalog, status domain.ApprovalStatus) ([]domain.Product, error) {
	r.s.mu.RLock()
	var out []domain.Product
	for _, p := range r.s.products {
		if p.Catalog == catalog && p.ApprovalStatus == status {
			out = append(out, cloneProduct(p))
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func cloneProduct(p domain.Product) domain.Product {
	p.Images = append([]string(nil), p.Images...)
	if p.CategoryID != nil {
		id := *p.CategoryID
		p.CategoryID = &id
	}
	if p.RejectionReason != nil {
		reason := *p.RejectionReason
		p.RejectionReason = &reason
	}
	return p
}

// CategoryRepository

type CategoryRepository struct{ s *Store }

func (r *CategoryRepository) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepository) FindBySlug(_ context.Context, slug string) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if c.Slug == slug {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	ensureID(&c.ID)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	defer r.s.lockWrite(ctx)()
	for _, existing := range r.s.categories {
		if existing.Slug == c.Slug {
			return fmt.Errorf("%w: category slug %q already exists", domain.ErrConflict, c.Slug)
		}
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepository) List(_ context.Context) ([]domain.Category, error) {
	r.s.mu.RLock()
	out := make([]domain.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DetailRepository

type DetailRepository struct{ s *Store }

func (r *DetailRepository) FindByProductID(_ context.Context, t domain.ProductType, productID primitive.ObjectID) (*domain.ProductDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.details[t] {
		if d.ProductID == productID {
			out := d
			return &out, nil
		}
	}
	return nil, nil
}

func (r *DetailRepository) Save(ctx context.Context, d *domain.ProductDetail) error {
	ensureID(&d.ID)
	defer r.s.lockWrite(ctx)()
	if r.s.details[d.Type] == nil {
		r.s.details[d.Type] = make(map[primitive.ObjectID]domain.ProductDetail)
	}
	r.s.details[d.Type][d.ID] = *d
	return nil
}

func (r *DetailRepository) Delete(ctx context.Context, d *domain.ProductDetail) error {
	defer r.s.lockWrite(ctx)()
	delete(r.s.details[d.Type], d.ID)
	return nil
}

// AuditRepository

type AuditRepository struct{ s *Store }

func (r *AuditRepository) Append(ctx context.Context, e *domain.AuditEntry) error {
	ensureID(&e.ID)
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	defer r.s.lockWrite(ctx)()
	r.s.audit = append(r.s.audit, *e)
	return nil
}

// ListBySubject returns entries newest first; a non-positive limit means all.
func (r *AuditRepository) ListBySubject(_ context.Context, subjectID primitive.ObjectID, limit int) ([]domain.AuditEntry, error) {
	r.s.mu.RLock()
	var out []domain.AuditEntry
	for i := len(r.s.audit) - 1; i >= 0; i-- {
		if r.s.audit[i].SubjectID == subjectID {
			out = append(out, r.s.audit[i])
		}
	}
	r.s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
