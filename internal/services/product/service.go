package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/developia-II/vendor-lifecycle/internal/core/domain"
	"github.com/developia-II/vendor-lifecycle/internal/hours"
	"github.com/developia-II/vendor-lifecycle/internal/services/audit"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultRejectReason = "No specific reason provided by admin"
	statusDeleted       = "DELETED"
)

type Service interface {
	Approve(ctx context.Context, productID, actorID primitive.ObjectID) (*domain.Product, error)
	Reject(ctx context.Context, productID, actorID primitive.ObjectID, reason string) (*domain.Product, error)
	Restore(ctx context.Context, productID, actorID primitive.ObjectID) (*domain.Product, error)
	Delete(ctx context.Context, productID, actorID primitive.ObjectID, isAdmin bool) error
	ListPending(ctx context.Context, catalog domain.Catalog) ([]PendingProduct, error)
}

// Repositories groups the stores the product service reads and writes.
type Repositories struct {
	Products   domain.ProductRepository
	Details    domain.DetailRepository
	Categories domain.CategoryRepository
	Vendors    domain.VendorRepository
	Shops      domain.ShopRepository
}

type service struct {
	repos Repositories
	tx    domain.Transactor
	audit audit.Service
	blobs domain.BlobStore
	hours *hours.Evaluator
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewService(
	repos Repositories,
	tx domain.Transactor,
	auditSvc audit.Service,
	blobs domain.BlobStore,
	evaluator *hours.Evaluator,
	log logrus.FieldLogger,
) Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &service{
		repos: repos,
		tx:    tx,
		audit: auditSvc,
		blobs: blobs,
		hours: evaluator,
		log:   log,
		now:   time.Now,
	}
}

// Approve accepts pending and previously rejected listings.
func (s *service) Approve(ctx context.Context, productID, actorID primitive.ObjectID) (*domain.Product, error) {
	return s.update(ctx, productID, actorID, domain.ActionApprove, func(p *domain.Product) (string, string, string, error) {
		if p.ApprovalStatus == domain.ApprovalApproved {
			return "", "", "", fmt.Errorf("%w: product %s is already approved", domain.ErrConflict, p.ID.Hex())
		}
		from := string(p.ApprovalStatus)
		p.ApprovalStatus = domain.ApprovalApproved
		p.Status = domain.ProductActive
		p.RejectionReason = nil
		return from, string(p.ApprovalStatus), "", nil
	})
}

func (s *service) Reject(ctx context.Context, productID, actorID primitive.ObjectID, reason string) (*domain.Product, error) {
	text := strings.TrimSpace(reason)
	if text == "" {
		text = defaultRejectReason
	}
	return s.update(ctx, productID, actorID, domain.ActionReject, func(p *domain.Product) (string, string, string, error) {
		if p.ApprovalStatus != domain.ApprovalPending {
			return "", "", "", fmt.Errorf("%w: product %s is %s, only pending products can be rejected", domain.ErrConflict, p.ID.Hex(), p.ApprovalStatus)
		}
		from := string(p.ApprovalStatus)
		p.ApprovalStatus = domain.ApprovalRejected
		p.Status = domain.ProductInactive
		p.RejectionReason = &text
		return from, string(p.ApprovalStatus), text, nil
	})
}

// Restore reactivates a listing whatever its approval state.
func (s *service) Restore(ctx context.Context, productID, actorID primitive.ObjectID) (*domain.Product, error) {
	return s.update(ctx, productID, actorID, domain.ActionRestore, func(p *domain.Product) (string, string, string, error) {
		from := string(p.Status)
		p.Status = domain.ProductActive
		return from, string(p.Status), "", nil
	})
}

type mutation func(p *domain.Product) (from, to, reason string, err error)

func (s *service) update(ctx context.Context, productID, actorID primitive.ObjectID, action string, mutate mutation) (*domain.Product, error) {
	logger := s.log.WithFields(logrus.Fields{
		"product_id": productID.Hex(),
		"actor_id":   actorID.Hex(),
		"action":     action,
	})

	var out *domain.Product
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.load(ctx, productID)
		if err != nil {
			return err
		}
		from, to, reason, err := mutate(p)
		if err != nil {
			return err
		}
		now := s.now()
		p.UpdatedAt = now
		if err := s.repos.Products.Save(ctx, p); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, domain.AuditEntry{
			ActorID:    actorID,
			SubjectID:  p.ID,
			Action:     action,
			Reason:     reason,
			FromStatus: from,
			ToStatus:   to,
			Timestamp:  now,
		}); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		logger.WithError(err).Warn("product transition failed")
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"approval_status": out.ApprovalStatus,
		"status":          out.Status,
	}).Info("product updated")
	return out, nil
}

// Delete hard-deletes a product with its detail record. Non-admin actors may
// only delete their own listings and never an approved one. Images are removed
// from the blob store after the transaction commits; failures are logged only.
func (s *service) Delete(ctx context.Context, productID, actorID primitive.ObjectID, isAdmin bool) error {
	logger := s.log.WithFields(logrus.Fields{
		"product_id": productID.Hex(),
		"actor_id":   actorID.Hex(),
		"action":     domain.ActionDelete,
	})

	var images []string
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.load(ctx, productID)
		if err != nil {
			return err
		}
		if !isAdmin {
			if p.VendorID != actorID {
				return fmt.Errorf("%w: product %s belongs to another vendor", domain.ErrForbidden, p.ID.Hex())
			}
			if p.ApprovalStatus == domain.ApprovalApproved {
				return fmt.Errorf("%w: approved products can only be deleted by an admin", domain.ErrForbidden)
			}
		}

		if err := s.deleteDetail(ctx, p); err != nil {
			return err
		}
		if err := s.repos.Products.Delete(ctx, p.ID); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, domain.AuditEntry{
			ActorID:    actorID,
			SubjectID:  p.ID,
			Action:     domain.ActionDelete,
			FromStatus: string(p.ApprovalStatus),
			ToStatus:   statusDeleted,
			Timestamp:  s.now(),
		}); err != nil {
			return err
		}
		images = p.Images
		return nil
	})
	if err != nil {
		logger.WithError(err).Warn("product delete failed")
		return err
	}

	s.deleteImages(ctx, logger, images)
	logger.Info("product deleted")
	return nil
}

func (s *service) deleteDetail(ctx context.Context, p *domain.Product) error {
	if p.Catalog == domain.CatalogRestricted {
		return nil
	}
	t, err := domain.ResolveProductType(ctx, s.repos.Categories, p.CategoryID)
	if err != nil {
		return err
	}
	if !t.HasDetail() {
		return nil
	}
	detail, err := s.repos.Details.FindByProductID(ctx, t, p.ID)
	if err != nil {
		return err
	}
	if detail == nil {
		return nil
	}
	detail.Type = t
	return s.repos.Details.Delete(ctx, detail)
}

func (s *service) deleteImages(ctx context.Context, logger logrus.FieldLogger, images []string) {
	if s.blobs == nil {
		return
	}
	for _, url := range images {
		if strings.TrimSpace(url) == "" {
			continue
		}
		if err := s.blobs.Delete(ctx, url); err != nil {
			logger.WithField("image", url).WithError(err).Warn("failed to delete product image")
		}
	}
}

func (s *service) load(ctx context.Context, productID primitive.ObjectID) (*domain.Product, error) {
	p, err := s.repos.Products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, productID.Hex())
	}
	return p, nil
}
