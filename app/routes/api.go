// Package routes mounts the HTTP surface: the REST API, the GraphQL
// endpoint, the catalog event stream and the operational endpoints.
package routes

import (
	"net/http"

	"github.com/prakashraj/godown/app/controllers"
	"github.com/prakashraj/godown/app/events"
	"github.com/prakashraj/godown/pkg/metrics"
	"github.com/prakashraj/godown/pkg/middleware"
	"github.com/prakashraj/godown/pkg/response"
	"github.com/prakashraj/godown/pkg/router"
	"github.com/prakashraj/godown/pkg/ws"
)

// Deps carries everything the route table needs.
type Deps struct {
	Products *controllers.ProductsController
	GraphQL  http.HandlerFunc
	Hub      *ws.Hub
	Events   *events.Publisher
}

// Register mounts every route on r.
func Register(r *router.Router, deps Deps) {
	RegisterAPI(r, deps.Products)

	if deps.GraphQL != nil {
		r.HandleFunc("/graphql", deps.GraphQL)
	}
	if deps.Hub != nil {
		r.HandleFunc("/ws/catalog", ws.Handler(deps.Hub))
	}
	if deps.Events != nil {
		r.Get("/events/catalog", "events.stream", events.StreamHandler(deps.Events))
	}

	r.HandleFunc("/metrics", metrics.Handler())
	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
}

// RegisterAPI mounts the REST routes. Static report paths are registered
// alongside /products/{id}; chi prefers the static match, so the report
// endpoints are never swallowed by the id route.
func RegisterAPI(r *router.Router, products *controllers.ProductsController) {
	api := r.Group("/api")

	api.Get("/products", "products.index", products.Index)
	api.Get("/products/total-stock-value", "products.total-stock-value", products.TotalStockValue)
	api.Get("/products/total-stock-value-by-manufacturer", "products.total-stock-value-by-manufacturer", products.TotalStockValueByManufacturer)
	api.Get("/products/low-stock", "products.low-stock", products.LowStock)
	api.Get("/products/critical-stock", "products.critical-stock", products.CriticalStock)
	api.Get("/products/{id}", "products.show", products.Show)
	api.Get("/manufacturers", "manufacturers.index", products.Manufacturers)

	// Mutating routes go through the (optional) admin gate.
	mutating := api.Group("", middleware.Auth)
	mutating.Post("/products", "products.store", products.Store)
	mutating.Put("/products/{id}", "products.update", products.Update)
	mutating.Delete("/products/{id}", "products.destroy", products.Destroy)
}
