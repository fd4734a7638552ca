// Package seeders loads sample catalog data for local development and
// demos. Run via `godown seed`.
package seeders

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prakashraj/godown/app/models"
)

// Catalog inserts the sample products unless the collection already has
// documents. Returns the number of products inserted.
func Catalog(ctx context.Context, col *mongo.Collection) (int, error) {
	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("seeders: count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	products := SampleProducts()
	docs := make([]interface{}, len(products))
	for i, p := range products {
		docs[i] = p
	}

	if _, err := col.InsertMany(ctx, docs); err != nil {
		return 0, fmt.Errorf("seeders: insert products: %w", err)
	}
	return len(products), nil
}

// SampleProducts is the demo data set. It deliberately includes
// low-stock and critical-stock products so every report has something
// to show.
func SampleProducts() []models.Product {
	acme := models.Manufacturer{
		Name:    "Acme Tools",
		Country: "USA",
		Website: "https://acme-tools.example",
		Address: "12 Forge Street, Pittsburgh",
		Contact: models.Contact{
			Name:  "Wanda Ortiz",
			Email: "wanda@acme-tools.example",
			Phone: "+1-555-0142",
		},
	}
	borg := models.Manufacturer{
		Name:        "Borg Industrial",
		Country:     "Germany",
		Website:     "https://borg-industrial.example",
		Description: "Heavy fasteners and fittings",
		Contact: models.Contact{
			Name:  "Jens Krüger",
			Email: "jens@borg-industrial.example",
			Phone: "+49-555-0190",
		},
	}
	cyberdyne := models.Manufacturer{
		Name:    "Cyberdyne Components",
		Country: "Japan",
		Website: "https://cyberdyne.example",
		Contact: models.Contact{
			Name:  "Aiko Tanaka",
			Email: "aiko@cyberdyne.example",
			Phone: "+81-555-0117",
		},
	}

	return []models.Product{
		{Name: "Claw Hammer", SKU: "ACM-001", Description: "16oz steel claw hammer", Price: 18.5, Category: "hand tools", Manufacturer: acme, AmountInStock: 42},
		{Name: "Anvil 25kg", SKU: "ACM-014", Price: 210, Category: "forging", Manufacturer: acme, AmountInStock: 3},
		{Name: "Wood Chisel Set", SKU: "ACM-032", Price: 36.9, Category: "hand tools", Manufacturer: acme, AmountInStock: 8},
		{Name: "Hex Bolt M8 (100pk)", SKU: "BRG-M8", Price: 9.99, Category: "fasteners", Manufacturer: borg, AmountInStock: 120},
		{Name: "Flange Gasket DN50", SKU: "BRG-G50", Price: 4.25, Category: "fittings", Manufacturer: borg, AmountInStock: 2},
		{Name: "Torque Wrench 40Nm", SKU: "BRG-TW40", Price: 89, Category: "hand tools", Manufacturer: borg, AmountInStock: 9},
		{Name: "Servo Motor 12V", SKU: "CYB-S12", Price: 54.4, Category: "electronics", Manufacturer: cyberdyne, AmountInStock: 17},
		{Name: "Controller Board v4", SKU: "CYB-C4", Price: 132, Category: "electronics", Manufacturer: cyberdyne, AmountInStock: 4},
	}
}
