package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Catalog separates the standard product line from the restricted-category
// line. Both share the approval state machine.
type Catalog string

const (
	CatalogStandard   Catalog = "STANDARD"
	CatalogRestricted Catalog = "RESTRICTED"
)

type Product struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VendorID primitive.ObjectID `json:"vendorId" bson:"vendorId"`
	Catalog  Catalog            `json:"catalog" bson:"catalog"`

	Name             string `json:"name" bson:"name"`
	ShortDescription string `json:"shortDescription,omitempty" bson:"shortDescription,omitempty"`

	// Standard products hang off the category tree; restricted products carry
	// a free-form category label.
	CategoryID    *primitive.ObjectID `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	CategoryLabel string              `json:"categoryLabel,omitempty" bson:"categoryLabel,omitempty"`

	Images   []string `json:"images" bson:"images"` // First image is primary
	MinPrice float64  `json:"minPrice" bson:"minPrice"`

	ApprovalStatus  ApprovalStatus `json:"approvalStatus" bson:"approvalStatus"`
	Status          ProductStatus  `json:"status" bson:"status"`
	RejectionReason *string        `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ProductRepository defines the interface for product data access.
// FindByID returns (nil, nil) on a miss.
type ProductRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByApprovalStatus(ctx context.Context, catalog Catalog, status ApprovalStatus) ([]Product, error)
}

// ProductType is the category-derived kind that decides which detail
// sub-record a product owns.
type ProductType string

const (
	TypeVegetable ProductType = "VEGETABLE"
	TypeDairy     ProductType = "DAIRY"
	TypeMeat      ProductType = "MEAT"
	TypeOther     ProductType = "OTHER"
)

// HasDetail reports whether products of this type own a detail record.
func (t ProductType) HasDetail() bool {
	return t == TypeVegetable || t == TypeDairy || t == TypeMeat
}

// ProductDetail is the type-specific sub-record of a standard product
// (harvest data for vegetables, fat content for dairy, cut for meat...).
type ProductDetail struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProductID  primitive.ObjectID `json:"productId" bson:"productId"`
	Type       ProductType        `json:"type" bson:"type"`
	Attributes map[string]string  `json:"attributes,omitempty" bson:"attributes,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// DetailRepository stores detail records, one collection per ProductType.
// FindByProductID returns (nil, nil) on a miss.
type DetailRepository interface {
	FindByProductID(ctx context.Context, t ProductType, productID primitive.ObjectID) (*ProductDetail, error)
	Save(ctx context.Context, detail *ProductDetail) error
	Delete(ctx context.Context, detail *ProductDetail) error
}
