package main

import (
	"context"
	"time"

	"github.com/developia-II/vendor-lifecycle/internal/adapters/repository/mongodb"
	"github.com/developia-II/vendor-lifecycle/internal/config"
	"github.com/sirupsen/logrus"
)

// Run this script once to create database indexes
// Usage: go run scripts/create_indexes.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	// Atlas is slower than localhost
	if cfg.Mongo.Timeout < 30*time.Second {
		cfg.Mongo.Timeout = 30 * time.Second
	}

	logrus.WithField("database", cfg.Mongo.Database).Info("connecting to MongoDB")
	storage, err := mongodb.New(mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to MongoDB")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	defer storage.Close(ctx)

	if err := storage.CreateIndexes(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to create indexes")
	}
	logrus.Info("all indexes created successfully")
}
