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

// detailCollections holds one collection per product type that owns details.
var detailCollections = map[domain.ProductType]string{
	domain.TypeVegetable: "vegetableDetails",
	domain.TypeDairy:     "dairyDetails",
	domain.TypeMeat:      "meatDetails",
}

type DetailRepository struct {
	DB *mongo.Database
}

func NewDetailRepository(db *mongo.Database) *DetailRepository {
	return &DetailRepository{DB: db}
}

func (r *DetailRepository) collection(t domain.ProductType) (*mongo.Collection, error) {
	name, ok := detailCollections[t]
	if !ok {
		return nil, fmt.Errorf("%w: product type %q has no detail records", domain.ErrValidation, t)
	}
	return r.DB.Collection(name), nil
}

func (r *DetailRepository) FindByProductID(ctx context.Context, t domain.ProductType, productID primitive.ObjectID) (*domain.ProductDetail, error) {
	coll, err := r.collection(t)
	if err != nil {
		return nil, err
	}
	var detail domain.ProductDetail
	if err := coll.FindOne(ctx, bson.M{"productId": productID}).Decode(&detail); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find %s detail: %w", t, err)
	}
	detail.Type = t
	return &detail, nil
}

func (r *DetailRepository) Save(ctx context.Context, detail *domain.ProductDetail) error {
	coll, err := r.collection(detail.Type)
	if err != nil {
		return err
	}
	if detail.ID.IsZero() {
		detail.ID = primitive.NewObjectID()
	}
	if detail.CreatedAt.IsZero() {
		detail.CreatedAt = time.Now()
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := coll.ReplaceOne(ctx, bson.M{"_id": detail.ID}, detail, opts); err != nil {
		return fmt.Errorf("failed to save %s detail: %w", detail.Type, err)
	}
	return nil
}

func (r *DetailRepository) Delete(ctx context.Context, detail *domain.ProductDetail) error {
	coll, err := r.collection(detail.Type)
	if err != nil {
		return err
	}
	if _, err := coll.DeleteOne(ctx, bson.M{"_id": detail.ID}); err != nil {
		return fmt.Errorf("failed to delete %s detail: %w", detail.Type, err)
	}
	return nil
}
