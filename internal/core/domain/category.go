package domain

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name"`
	Slug        string              `json:"slug" bson:"slug"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	ParentID    *primitive.ObjectID `json:"parentId,omitempty" bson:"parentId,omitempty"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
}

// CategoryRepository defines the interface for category data access.
// Lookups return (nil, nil) on a miss.
type CategoryRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	Create(ctx context.Context, category *Category) error
	List(ctx context.Context) ([]Category, error)
}

// RootSlugs marks the top of each category sub-tree that owns a detail type.
var RootSlugs = map[string]ProductType{
	"vegetable-root":   TypeVegetable,
	"dairy-root":       TypeDairy,
	"seafoodmeat-root": TypeMeat,
}

// maxCategoryDepth bounds the parent walk so a corrupted tree with a cycle
// cannot spin forever.
const maxCategoryDepth = 32

// ResolveProductType walks from categoryID up through its parents and returns
// the type of the first recognized root slug, or TypeOther.
func ResolveProductType(ctx context.Context, repo CategoryRepository, categoryID *primitive.ObjectID) (ProductType, error) {
	if categoryID == nil {
		return TypeOther, nil
	}
	next := categoryID
	for depth := 0; next != nil && depth < maxCategoryDepth; depth++ {
		cat, err := repo.FindByID(ctx, *next)
		if err != nil {
			return "", fmt.Errorf("failed to load category %s: %w", next.Hex(), err)
		}
		if cat == nil {
			break
		}
		if t, ok := RootSlugs[cat.Slug]; ok {
			return t, nil
		}
		next = cat.ParentID
	}
	return TypeOther, nil
}
