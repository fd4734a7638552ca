package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema creates a GraphQL schema from a root query and an optional
// mutation object (nil for a read-only schema).
func NewSchema(query, mutation *graphql.Object) (graphql.Schema, error) {
	cfg := graphql.SchemaConfig{Query: query}
	if mutation != nil {
		cfg.Mutation = mutation
	}
	return graphql.NewSchema(cfg)
}
