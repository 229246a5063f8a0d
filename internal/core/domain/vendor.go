package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vendor is a seller account on the marketplace.
// Only the lifecycle service mutates AccountStatus, the document statuses and
// the soft-delete fields.
type Vendor struct {
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// Identity
	Name         string `json:"name" bson:"name"`
	Email        string `json:"email" bson:"email"`
	Phone        string `json:"phone" bson:"phone"`
	BusinessName string `json:"businessName" bson:"businessName"`
	VendorType   string `json:"vendorType" bson:"vendorType"` // e.g. "VEGETABLE", "DAIRY", "SEAFOODMEAT", "WOMEN"
	PhotoURL     string `json:"photoUrl,omitempty" bson:"photoUrl,omitempty"`

	// Account state
	AccountStatus   AccountStatus `json:"accountStatus" bson:"accountStatus"`
	StatusReason    string        `json:"statusReason,omitempty" bson:"statusReason,omitempty"`
	StatusUpdatedAt *time.Time    `json:"statusUpdatedAt,omitempty" bson:"statusUpdatedAt,omitempty"`

	// KYC documents
	IdentityProofURL     string         `json:"identityProofUrl,omitempty" bson:"identityProofUrl,omitempty"`
	IdentityStatus       DocumentStatus `json:"identityStatus" bson:"identityStatus"`
	TaxProofURL          string         `json:"taxProofUrl,omitempty" bson:"taxProofUrl,omitempty"`
	TaxStatus            DocumentStatus `json:"taxStatus" bson:"taxStatus"`
	RegistrationProofURL string         `json:"registrationProofUrl,omitempty" bson:"registrationProofUrl,omitempty"`
	RegistrationStatus   DocumentStatus `json:"registrationStatus" bson:"registrationStatus"`

	// Soft delete
	Deleted   bool                `json:"deleted" bson:"deleted"`
	DeletedAt *time.Time          `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
	DeletedBy *primitive.ObjectID `json:"deletedBy,omitempty" bson:"deletedBy,omitempty"`

	// Metadata
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
	Version   int       `json:"version" bson:"version"`
}

// SetStatus moves the account to status and stamps the reason.
func (v *Vendor) SetStatus(status AccountStatus, reason string, at time.Time) {
	v.AccountStatus = status
	v.StatusReason = reason
	v.StatusUpdatedAt = &at
}

func (v *Vendor) MarkDeleted(actorID primitive.ObjectID, at time.Time) {
	v.Deleted = true
	v.DeletedAt = &at
	v.DeletedBy = &actorID
}

func (v *Vendor) ClearDeleted() {
	v.Deleted = false
	v.DeletedAt = nil
	v.DeletedBy = nil
}

// VendorFilter narrows vendor listings. Deleted selects the soft-deleted set
// instead of the live one.
type VendorFilter struct {
	Status  AccountStatus
	Search  string
	Deleted bool
	Page    int
	Size    int
}

// VendorRepository defines the interface for vendor data access.
// FindByID returns (nil, nil) when the vendor does not exist, the service
// decides what a miss means.
type VendorRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*Vendor, error)
	Save(ctx context.Context, vendor *Vendor) error
	List(ctx context.Context, filter VendorFilter) ([]Vendor, int64, error)
}
