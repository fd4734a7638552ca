// Package models defines the catalog document types. A Product embeds its
// own Manufacturer copy, which embeds a Contact — manufacturers are not a
// de-duplicated entity, just repeated embedded data.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Contact is the manufacturer's contact person. All fields are optional
// free text.
type Contact struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty" validate:"nullable,email"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Manufacturer is embedded in every product that names it.
type Manufacturer struct {
	Name        string  `bson:"name,omitempty" json:"name,omitempty"`
	Country     string  `bson:"country,omitempty" json:"country,omitempty"`
	Website     string  `bson:"website,omitempty" json:"website,omitempty" validate:"nullable,url"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Address     string  `bson:"address,omitempty" json:"address,omitempty"`
	Contact     Contact `bson:"contact,omitempty" json:"contact,omitempty"`
}

// Product is the root catalog document.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`
	SKU           string             `bson:"sku,omitempty" json:"sku,omitempty"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Price         float64            `bson:"price" json:"price" validate:"gte=0"`
	Category      string             `bson:"category,omitempty" json:"category,omitempty"`
	Manufacturer  Manufacturer       `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	AmountInStock int                `bson:"amountInStock" json:"amountInStock" validate:"gte=0"`
}

// ProductPatch carries a partial update. Nil fields are left untouched;
// a supplied manufacturer replaces the whole embedded sub-document, the
// same way the store's $set on a top-level key behaves.
type ProductPatch struct {
	Name          *string       `bson:"name,omitempty" json:"name,omitempty"`
	SKU           *string       `bson:"sku,omitempty" json:"sku,omitempty"`
	Description   *string       `bson:"description,omitempty" json:"description,omitempty"`
	Price         *float64      `bson:"price,omitempty" json:"price,omitempty" validate:"gte=0"`
	Category      *string       `bson:"category,omitempty" json:"category,omitempty"`
	Manufacturer  *Manufacturer `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	AmountInStock *int          `bson:"amountInStock,omitempty" json:"amountInStock,omitempty" validate:"gte=0"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.SKU == nil && p.Description == nil &&
		p.Price == nil && p.Category == nil && p.Manufacturer == nil &&
		p.AmountInStock == nil
}
