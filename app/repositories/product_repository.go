// Package repositories implements the product store over MongoDB. The
// collection handle is injected so tests and callers control the client
// lifecycle; there is no package-level connection.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prakashraj/godown/app/models"
	"github.com/prakashraj/godown/pkg/metrics"
)

var (
	// ErrNotFound signals that the requested product id does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrInvalidID signals a malformed (non-ObjectID) product id.
	ErrInvalidID = errors.New("invalid product id")
	// ErrEmptyPatch signals an update carrying no fields.
	ErrEmptyPatch = errors.New("update contains no fields")
)

// ProductRepository handles catalog reads and writes against one
// MongoDB collection.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(col *mongo.Collection) *ProductRepository {
	return &ProductRepository{col: col}
}

// All returns every product in the store's natural return order.
func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	defer metrics.ObserveStoreOp("find", time.Now())

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("repositories: find products: %w", err)
	}

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("repositories: decode products: %w", err)
	}
	return products, nil
}

// StockBelow returns the products with amountInStock strictly below the
// threshold, filtered store-side.
func (r *ProductRepository) StockBelow(ctx context.Context, threshold int) ([]models.Product, error) {
	defer metrics.ObserveStoreOp("find", time.Now())

	cursor, err := r.col.Find(ctx, bson.M{"amountInStock": bson.M{"$lt": threshold}})
	if err != nil {
		return nil, fmt.Errorf("repositories: find stock below %d: %w", threshold, err)
	}

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("repositories: decode products: %w", err)
	}
	return products, nil
}

// FindByID looks up one product. Returns ErrInvalidID for a malformed id
// and ErrNotFound for an absent one.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Product{}, err
	}

	defer metrics.ObserveStoreOp("find", time.Now())

	var p models.Product
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("repositories: find product %s: %w", id, err)
	}
	return p, nil
}

// Create persists one product and returns it with the assigned identity.
func (r *ProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	defer metrics.ObserveStoreOp("insert", time.Now())

	p.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return models.Product{}, fmt.Errorf("repositories: insert product: %w", err)
	}
	return p, nil
}

// CreateMany persists a batch of products in order and returns them with
// their assigned identities.
func (r *ProductRepository) CreateMany(ctx context.Context, products []models.Product) ([]models.Product, error) {
	if len(products) == 0 {
		return []models.Product{}, nil
	}

	defer metrics.ObserveStoreOp("insert", time.Now())

	docs := make([]interface{}, len(products))
	for i := range products {
		products[i].ID = primitive.NewObjectID()
		docs[i] = products[i]
	}

	if _, err := r.col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, fmt.Errorf("repositories: insert products: %w", err)
	}
	return products, nil
}

// Update applies a partial $set and returns the post-update document.
func (r *ProductRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Product{}, err
	}
	if patch.IsEmpty() {
		return models.Product{}, ErrEmptyPatch
	}

	defer metrics.ObserveStoreOp("update", time.Now())

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Product
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": patch}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("repositories: update product %s: %w", id, err)
	}
	return updated, nil
}

// Delete removes one product by id.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	defer metrics.ObserveStoreOp("delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("repositories: delete product %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
