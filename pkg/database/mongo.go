// Package database owns the MongoDB client lifecycle: open and ping on
// startup, disconnect on shutdown. The client is passed down explicitly;
// nothing in the application reaches for a package-level handle.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/prakashraj/godown/config"
)

// Connect opens a MongoDB client using the configured URI and credentials
// and verifies the connection with a ping.
func Connect(ctx context.Context) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	if user := config.MongoUser(); user != "" {
		opts.SetAuth(options.Credential{
			Username: user,
			Password: config.MongoPassword(),
		})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return client, nil
}

// Disconnect closes the client, waiting up to five seconds for in-flight
// operations.
func Disconnect(client *mongo.Client) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = client.Disconnect(ctx)
}
