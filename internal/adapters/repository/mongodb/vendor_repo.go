package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/developia-II/vendor-lifecycle/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VendorRepository implements domain.VendorRepository using MongoDB.
type VendorRepository struct {
	collection *mongo.Collection
}

func NewVendorRepository(db *mongo.Database) *VendorRepository {
	return &VendorRepository{
		collection: db.Collection(vendorsCollection),
	}
}

// FindByID returns nil if not found, let the service handle 404 logic.
func (r *VendorRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Vendor, error) {
	var vendor domain.Vendor
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vendor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}
	return &vendor, nil
}

// Save upserts the full vendor document.
func (r *VendorRepository) Save(ctx context.Context, vendor *domain.Vendor) error {
	now := time.Now()
	if vendor.ID.IsZero() {
		vendor.ID = primitive.NewObjectID()
	}
	if vendor.CreatedAt.IsZero() {
		vendor.CreatedAt = now
	}
	if vendor.UpdatedAt.IsZero() {
		vendor.UpdatedAt = now
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": vendor.ID}, vendor, opts); err != nil {
		return fmt.Errorf("failed to save vendor: %w", err)
	}
	return nil
}

// List pages through live or soft-deleted vendors. Live vendors come newest
// first by creation, deleted ones by deletion time.
func (r *VendorRepository) List(ctx context.Context, f domain.VendorFilter) ([]domain.Vendor, int64, error) {
	filter := vendorListFilter(f)

	page, size := f.Page, f.Size
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	sortField := "createdAt"
	if f.Deleted {
		sortField = "deletedAt"
	}
	opts := options.Find().
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size)).
		SetSort(bson.D{{Key: sortField, Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer cursor.Close(ctx)

	vendors := []domain.Vendor{}
	if err := cursor.All(ctx, &vendors); err != nil {
		return nil, 0, fmt.Errorf("failed to decode vendors: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count vendors: %w", err)
	}
	return vendors, total, nil
}

func vendorListFilter(f domain.VendorFilter) bson.M {
	filter := bson.M{"deleted": f.Deleted}
	if !f.Deleted {
		// Documents written before the flag existed have no "deleted" field.
		filter["deleted"] = bson.M{"$ne": true}
	}
	switch f.Status {
	case "":
	case domain.AccountPending:
		// An unset status reads as PENDING.
		filter["accountStatus"] = bson.M{"$in": bson.A{domain.AccountPending, "", nil}}
	default:
		filter["accountStatus"] = f.Status
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
			bson.M{"phone": pattern},
			bson.M{"businessName": pattern},
		}
	}
	return filter
}
