package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/developia-II/vendor-lifecycle/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ShopRepository struct {
	collection *mongo.Collection
}

func NewShopRepository(db *mongo.Database) *ShopRepository {
	return &ShopRepository{collection: db.Collection(shopsCollection)}
}

func (r *ShopRepository) FindByVendorID(ctx context.Context, vendorID primitive.ObjectID) (*domain.Shop, error) {
	var shop domain.Shop
	err := r.collection.FindOne(ctx, bson.M{"vendorId": vendorID}).Decode(&shop)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find shop: %w", err)
	}
	return &shop, nil
}

func (r *ShopRepository) Save(ctx context.Context, shop *domain.Shop) error {
	if shop.ID.IsZero() {
		shop.ID = primitive.NewObjectID()
	}
	if shop.CreatedAt.IsZero() {
		shop.CreatedAt = time.Now()
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": shop.ID}, shop, opts); err != nil {
		return fmt.Errorf("failed to save shop: %w", err)
	}
	return nil
}
