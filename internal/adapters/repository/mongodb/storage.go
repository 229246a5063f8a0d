package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	vendorsCollection    = "vendorAccounts"
	shopsCollection      = "shops"
	productsCollection   = "products"
	categoriesCollection = "categories"
	auditCollection      = "adminAuditLogs"
)

type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Storage owns the client and implements domain.Transactor.
type Storage struct {
	client   *mongo.Client
	database *mongo.Database
}

func New(cfg Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.Timeout).
		SetMaxPoolSize(100)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Storage{client: client, database: client.Database(cfg.Database)}, nil
}

func (s *Storage) Database() *mongo.Database {
	return s.database
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// WithinTransaction runs fn in a multi-document transaction. Repository calls
// made with the session context fn receives join the transaction; the driver
// retries fn on transient errors, so fn must reload whatever it mutates.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	callback := func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	}

	_, err = session.WithTransaction(ctx, callback)
	return err
}

// CreateIndexes bootstraps the indexes the repositories rely on. It is safe
// to run on every start.
func (s *Storage) CreateIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		vendorsCollection: {
			{Keys: bson.D{{Key: "accountStatus", Value: 1}}, Options: options.Index().SetName("idx_vendor_status")},
			{Keys: bson.D{{Key: "deleted", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("idx_vendor_deleted_created")},
			{Keys: bson.D{{Key: "deleted", Value: 1}, {Key: "deletedAt", Value: -1}}, Options: options.Index().SetName("idx_vendor_deleted_at")},
		},
		shopsCollection: {
			{Keys: bson.D{{Key: "vendorId", Value: 1}}, Options: options.Index().SetName("idx_shop_vendor").SetUnique(true)},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "vendorId", Value: 1}}, Options: options.Index().SetName("idx_vendorId")},
			{Keys: bson.D{{Key: "catalog", Value: 1}, {Key: "approvalStatus", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("idx_catalog_approval_date")},
		},
		categoriesCollection: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetName("idx_category_slug").SetUnique(true)},
			{Keys: bson.D{{Key: "parentId", Value: 1}}, Options: options.Index().SetName("idx_category_parent")},
		},
		auditCollection: {
			{Keys: bson.D{{Key: "subjectId", Value: 1}, {Key: "timestamp", Value: -1}}, Options: options.Index().SetName("idx_audit_subject_time")},
		},
	}
	for _, name := range detailCollections {
		indexes[name] = []mongo.IndexModel{
			{Keys: bson.D{{Key: "productId", Value: 1}}, Options: options.Index().SetName("idx_detail_product").SetUnique(true)},
		}
	}

	for collection, models := range indexes {
		if _, err := s.database.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
	}
	return nil
}
