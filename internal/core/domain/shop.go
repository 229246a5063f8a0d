package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shop is the storefront owned by exactly one vendor.
// Approved and Active are derived from the owner's account status by SyncShop
// and must not be written anywhere else.
type Shop struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VendorID primitive.ObjectID `json:"vendorId" bson:"vendorId"`

	Name        string `json:"shopName" bson:"shopName"`
	Type        string `json:"shopType" bson:"shopType"`
	Address     string `json:"shopAddress" bson:"shopAddress"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	PhotoURL    string `json:"shopPhoto,omitempty" bson:"shopPhoto,omitempty"`
	CoverURL    string `json:"shopCoverPhoto,omitempty" bson:"shopCoverPhoto,omitempty"`

	// Licensing
	LicenseNumber   string         `json:"shopLicense,omitempty" bson:"shopLicense,omitempty"`
	LicensePhotoURL string         `json:"shopLicensePhoto,omitempty" bson:"shopLicensePhoto,omitempty"`
	LicenseStatus   DocumentStatus `json:"shopLicensePhotoStatus" bson:"shopLicensePhotoStatus"`

	Approved bool `json:"approved" bson:"approved"`
	Active   bool `json:"active" bson:"active"`

	// Opening hours: a JSON list of {day, open, close} entries, or the legacy
	// single pair applied to every day.
	WorkingHoursJSON string `json:"workingHours,omitempty" bson:"workingHoursJson,omitempty"`
	OpensAt          string `json:"opensAt,omitempty" bson:"opensAt,omitempty"`
	ClosesAt         string `json:"closesAt,omitempty" bson:"closesAt,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ShopRepository defines the interface for shop data access.
// FindByVendorID returns (nil, nil) when the vendor has no shop yet.
type ShopRepository interface {
	FindByVendorID(ctx context.Context, vendorID primitive.ObjectID) (*Shop, error)
	Save(ctx context.Context, shop *Shop) error
}
