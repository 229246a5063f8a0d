package category

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/developia-II/vendor-lifecycle/internal/core/domain"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateInput struct {
	Name        string              `json:"name" validate:"required,min=2,max=100"`
	Slug        string              `json:"slug" validate:"required,min=2,max=100"`
	Description string              `json:"description" validate:"max=500"`
	ParentID    *primitive.ObjectID `json:"parentId"`
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

type service struct {
	repo domain.CategoryRepository
	log  logrus.FieldLogger
	now  func() time.Time
}

func NewService(repo domain.CategoryRepository, log logrus.FieldLogger) Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &service{repo: repo, log: log, now: time.Now}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*domain.Category, error) {
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	name := strings.TrimSpace(in.Name)
	if slug == "" || name == "" {
		return nil, fmt.Errorf("%w: name and slug are required", domain.ErrValidation)
	}

	existing, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: category slug %q already exists", domain.ErrConflict, slug)
	}

	if in.ParentID != nil {
		parent, err := s.repo.FindByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("%w: parent category %s", domain.ErrNotFound, in.ParentID.Hex())
		}
	}

	category := &domain.Category{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(in.Description),
		ParentID:    in.ParentID,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"category_id": category.ID.Hex(), "slug": slug}).Info("category created")
	return category, nil
}

func (s *service) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}
