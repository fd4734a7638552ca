// Package controllers contains the REST handlers. They parse and validate
// the request, delegate to the catalog service, and shape the response;
// all catalog semantics live in the service and reports packages.
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prakashraj/godown/app/models"
	"github.com/prakashraj/godown/app/reports"
	"github.com/prakashraj/godown/app/repositories"
	"github.com/prakashraj/godown/app/services"
	"github.com/prakashraj/godown/pkg/bind"
	"github.com/prakashraj/godown/pkg/logger"
	"github.com/prakashraj/godown/pkg/response"
	"github.com/prakashraj/godown/pkg/router"
	"github.com/prakashraj/godown/pkg/validate"
)

const productNotFound = "Product not found"

// ProductsController serves the /api/products and /api/manufacturers
// routes.
type ProductsController struct {
	catalog *services.CatalogService
}

func NewProductsController(catalog *services.CatalogService) *ProductsController {
	return &ProductsController{catalog: catalog}
}

// Index handles GET /api/products.
func (c *ProductsController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.Products(r.Context())
	if err != nil {
		c.storeError(w, r, err)
		return
	}
	response.Success(w, products)
}

// Show handles GET /api/products/{id}.
func (c *ProductsController) Show(w http.ResponseWriter, r *http.Request) {
	product, err := c.catalog.Product(r.Context(), router.Param(r, "id"))
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		response.NotFound(w, productNotFound)
	case errors.Is(err, repositories.ErrInvalidID):
		response.Error(w, http.StatusBadRequest, err.Error())
	case err != nil:
		c.storeError(w, r, err)
	default:
		response.Success(w, product)
	}
}

// Store handles POST /api/products. The body may be a single product
// document or an array of them; arrays are persisted with one insert.
func (c *ProductsController) Store(w http.ResponseWriter, r *http.Request) {
	body, err := bind.Body(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if isJSONArray(body) {
		var batch []models.Product
		if err := json.Unmarshal(body, &batch); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		for _, p := range batch {
			if errs := validate.Struct(&p); validate.HasErrors(errs) {
				response.ValidationError(w, errs)
				return
			}
		}

		created, err := c.catalog.CreateMany(r.Context(), batch)
		if err != nil {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		response.Created(w, created)
		return
	}

	var p models.Product
	if err := json.Unmarshal(body, &p); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if errs := validate.Struct(&p); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	created, err := c.catalog.Create(r.Context(), p)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	response.Created(w, created)
}

// Update handles PUT /api/products/{id} as a partial merge.
func (c *ProductsController) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.ProductPatch
	errs, err := bind.JSON(r, &patch)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	updated, err := c.catalog.Update(r.Context(), router.Param(r, "id"), patch)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		response.NotFound(w, productNotFound)
	case err != nil:
		// The update contract reports every non-missing failure as
		// client-caused.
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		response.Success(w, updated)
	}
}

// Destroy handles DELETE /api/products/{id}.
func (c *ProductsController) Destroy(w http.ResponseWriter, r *http.Request) {
	err := c.catalog.Delete(r.Context(), router.Param(r, "id"))
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		response.NotFound(w, productNotFound)
	case errors.Is(err, repositories.ErrInvalidID):
		response.Error(w, http.StatusBadRequest, err.Error())
	case err != nil:
		c.storeError(w, r, err)
	default:
		response.Message(w, "Product deleted")
	}
}

// TotalStockValue handles GET /api/products/total-stock-value.
func (c *ProductsController) TotalStockValue(w http.ResponseWriter, r *http.Request) {
	total, err := c.catalog.TotalStockValue(r.Context())
	if err != nil {
		c.storeError(w, r, err)
		return
	}
	response.Success(w, map[string]float64{"totalValue": total})
}

// TotalStockValueByManufacturer handles
// GET /api/products/total-stock-value-by-manufacturer. The body is a
// JSON object keyed by manufacturer name in first-seen order.
func (c *ProductsController) TotalStockValueByManufacturer(w http.ResponseWriter, r *http.Request) {
	grouped, err := c.catalog.StockValueByManufacturer(r.Context())
	if err != nil {
		c.storeError(w, r, err)
		return
	}
	response.Success(w, reports.ValueByManufacturer(grouped))
}

// LowStock handles GET /api/products/low-stock.
func (c *ProductsController) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.LowStock(r.Context())
	if err != nil {
		c.storeError(w, r, err)
		return
	}
	response.Success(w, products)
}

// CriticalStock handles GET /api/products/critical-stock.
func (c *ProductsController) CriticalStock(w http.ResponseWriter, r *http.Request) {
	contacts, err := c.catalog.CriticalStock(r.Context())
	if err != nil {
		c.storeError(w, r, err)
		return
	}
	response.Success(w, contacts)
}

// Manufacturers handles GET /api/manufacturers. Duplicates are kept by
// default; ?distinct=true collapses the roster by exact name.
func (c *ProductsController) Manufacturers(w http.ResponseWriter, r *http.Request) {
	distinct := r.URL.Query().Get("distinct") == "true"

	roster, err := c.catalog.Manufacturers(r.Context(), distinct)
	if err != nil {
		c.storeError(w, r, err)
		return
	}
	response.Success(w, roster)
}

func (c *ProductsController) storeError(w http.ResponseWriter, r *http.Request, err error) {
	logger.WithCtx(r.Context()).Error("store operation failed", "error", err)
	response.Error(w, http.StatusInternalServerError, err.Error())
}

// isJSONArray reports whether the first non-whitespace byte opens an
// array, matching how the create endpoint distinguishes batch bodies.
func isJSONArray(body []byte) bool {
	for _, b := range body {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
