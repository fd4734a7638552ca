// Package graphql defines the catalog's GraphQL schema and HTTP handler.
// Resolvers delegate to the same catalog service the REST controllers
// use, so both surfaces report identical numbers.
package graphql

import (
	"encoding/json"
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/prakashraj/godown/app/models"
	"github.com/prakashraj/godown/app/services"
	gqlschema "github.com/prakashraj/godown/pkg/graphql"
)

var contactType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Contact",
	Fields: graphql.Fields{
		"name":  &graphql.Field{Type: graphql.String},
		"email": &graphql.Field{Type: graphql.String},
		"phone": &graphql.Field{Type: graphql.String},
	},
})

var manufacturerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Manufacturer",
	Fields: graphql.Fields{
		"name":        &graphql.Field{Type: graphql.String},
		"country":     &graphql.Field{Type: graphql.String},
		"website":     &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"address":     &graphql.Field{Type: graphql.String},
		"contact":     &graphql.Field{Type: contactType},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.ID,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if product, ok := p.Source.(models.Product); ok {
					return product.ID.Hex(), nil
				}
				return nil, nil
			},
		},
		"name":          &graphql.Field{Type: graphql.String},
		"sku":           &graphql.Field{Type: graphql.String},
		"description":   &graphql.Field{Type: graphql.String},
		"price":         &graphql.Field{Type: graphql.Float},
		"category":      &graphql.Field{Type: graphql.String},
		"manufacturer":  &graphql.Field{Type: manufacturerType},
		"amountInStock": &graphql.Field{Type: graphql.Int},
	},
})

var stockValueByManufacturerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "StockValueByManufacturer",
	Fields: graphql.Fields{
		"manufacturer": &graphql.Field{Type: graphql.String},
		"totalValue":   &graphql.Field{Type: graphql.Float},
	},
})

var criticalStockProductType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CriticalStockProduct",
	Fields: graphql.Fields{
		"manufacturerName": &graphql.Field{Type: graphql.String},
		"contactName":      &graphql.Field{Type: graphql.String},
		"phone":            &graphql.Field{Type: graphql.String},
		"email":            &graphql.Field{Type: graphql.String},
	},
})

var contactInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ContactInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"email": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var manufacturerInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ManufacturerInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"country":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"website":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"address":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"contact":     &graphql.InputObjectFieldConfig{Type: contactInput},
	},
})

// NewSchema builds the executable schema over the catalog service.
func NewSchema(catalog *services.CatalogService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQueryType",
		Fields: graphql.Fields{
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					return catalog.Product(p.Context, id)
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.Products(p.Context)
				},
			},
			"totalStockValue": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.TotalStockValue(p.Context)
				},
			},
			"totalStockValueByManufacturer": &graphql.Field{
				Type: graphql.NewList(stockValueByManufacturerType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.StockValueByManufacturer(p.Context)
				},
			},
			"lowStockProducts": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.LowStock(p.Context)
				},
			},
			"criticalStockProducts": &graphql.Field{
				Type: graphql.NewList(criticalStockProductType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.CriticalStock(p.Context)
				},
			},
			"manufacturers": &graphql.Field{
				Type: graphql.NewList(manufacturerType),
				Args: graphql.FieldConfigArgument{
					"distinct": &graphql.ArgumentConfig{
						Type:         graphql.Boolean,
						DefaultValue: false,
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					distinct, _ := p.Args["distinct"].(bool)
					return catalog.Manufacturers(p.Context, distinct)
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"name":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"sku":           &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description":   &graphql.ArgumentConfig{Type: graphql.String},
					"price":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"category":      &graphql.ArgumentConfig{Type: graphql.String},
					"manufacturer":  &graphql.ArgumentConfig{Type: manufacturerInput},
					"amountInStock": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var product models.Product
					if err := decodeArgs(p.Args, &product); err != nil {
						return nil, err
					}
					if product.Price < 0 {
						return nil, fmt.Errorf("price must be non-negative")
					}
					if product.AmountInStock < 0 {
						return nil, fmt.Errorf("amountInStock must be non-negative")
					}
					return catalog.Create(p.Context, product)
				},
			},
			"updateProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id":            &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":          &graphql.ArgumentConfig{Type: graphql.String},
					"sku":           &graphql.ArgumentConfig{Type: graphql.String},
					"description":   &graphql.ArgumentConfig{Type: graphql.String},
					"price":         &graphql.ArgumentConfig{Type: graphql.Float},
					"category":      &graphql.ArgumentConfig{Type: graphql.String},
					"manufacturer":  &graphql.ArgumentConfig{Type: manufacturerInput},
					"amountInStock": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					delete(p.Args, "id")

					var patch models.ProductPatch
					if err := decodeArgs(p.Args, &patch); err != nil {
						return nil, err
					}
					if patch.Price != nil && *patch.Price < 0 {
						return nil, fmt.Errorf("price must be non-negative")
					}
					if patch.AmountInStock != nil && *patch.AmountInStock < 0 {
						return nil, fmt.Errorf("amountInStock must be non-negative")
					}
					return catalog.Update(p.Context, id, patch)
				},
			},
			"deleteProduct": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					if err := catalog.Delete(p.Context, id); err != nil {
						return false, err
					}
					return true, nil
				},
			},
		},
	})

	return gqlschema.NewSchema(query, mutation)
}

// decodeArgs maps resolver args onto a tagged struct. Args absent from
// the request stay zero (nil for pointer fields), which is exactly what
// the patch type needs.
func decodeArgs(args map[string]interface{}, dest interface{}) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("graphql: encode args: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("graphql: decode args: %w", err)
	}
	return nil
}
