package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	maxConnectAttempts = 10
	connectRetryDelay  = 2 * time.Second
)

// Connect opens a Mongo client and verifies it with a ping, retrying while the
// database is still coming up.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	var client *mongo.Client
	var err error

	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err == nil {
			if pingErr := client.Ping(ctx, nil); pingErr == nil {
				return client, nil
			} else {
				_ = client.Disconnect(ctx)
				err = pingErr
			}
		}
		if attempt == maxConnectAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("mongo connection aborted: %w", ctx.Err())
		case <-time.After(connectRetryDelay):
		}
	}

	return nil, fmt.Errorf("mongo connection failed after %d attempts: %w", maxConnectAttempts, err)
}

// EnsureIndexes creates the indexes the handlers rely on. The unique email index
// backs the duplicate-registration check; the report pair index backs the
// one-report-per-reporter rule.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users email index: %w", err)
	}

	_, err = db.Collection("queryReports").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "queryId", Value: 1}, {Key: "reporter", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("query report pair index: %w", err)
	}
	return nil
}
