package graphql_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	appgraphql "github.com/prakashraj/godown/app/graphql"
	"github.com/prakashraj/godown/app/models"
	"github.com/prakashraj/godown/app/repositories"
	"github.com/prakashraj/godown/app/services"
)

type memStore struct {
	products []models.Product
}

func (s *memStore) All(_ context.Context) ([]models.Product, error) {
	return append([]models.Product(nil), s.products...), nil
}

func (s *memStore) StockBelow(_ context.Context, threshold int) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		if p.AmountInStock < threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) FindByID(_ context.Context, id string) (models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, repositories.ErrInvalidID
	}
	for _, p := range s.products {
		if p.ID == oid {
			return p, nil
		}
	}
	return models.Product{}, repositories.ErrNotFound
}

func (s *memStore) Create(_ context.Context, p models.Product) (models.Product, error) {
	p.ID = primitive.NewObjectID()
	s.products = append(s.products, p)
	return p, nil
}

func (s *memStore) CreateMany(ctx context.Context, batch []models.Product) ([]models.Product, error) {
	out := make([]models.Product, 0, len(batch))
	for _, p := range batch {
		created, _ := s.Create(ctx, p)
		out = append(out, created)
	}
	return out, nil
}

func (s *memStore) Update(_ context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, repositories.ErrInvalidID
	}
	for i, p := range s.products {
		if p.ID != oid {
			continue
		}
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.AmountInStock != nil {
			p.AmountInStock = *patch.AmountInStock
		}
		s.products[i] = p
		return p, nil
	}
	return models.Product{}, repositories.ErrNotFound
}

func (s *memStore) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repositories.ErrInvalidID
	}
	for i, p := range s.products {
		if p.ID == oid {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type gqlResult struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func newHandler(t *testing.T, store *memStore) http.HandlerFunc {
	t.Helper()
	schema, err := appgraphql.NewSchema(services.NewCatalogService(store, nil))
	require.NoError(t, err)
	return appgraphql.Handler(schema)
}

func exec(t *testing.T, h http.HandlerFunc, query string) gqlResult {
	t.Helper()
	body, err := json.Marshal(map[string]string{"query": query})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result gqlResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func seed(store *memStore, name, manufacturer string, price float64, stock int) models.Product {
	p, _ := store.Create(context.Background(), models.Product{
		Name:          name,
		SKU:           name + "-1",
		Price:         price,
		AmountInStock: stock,
		Manufacturer: models.Manufacturer{
			Name:    manufacturer,
			Contact: models.Contact{Name: manufacturer + " desk", Phone: "555-0100", Email: "desk@example.com"},
		},
	})
	return p
}

func TestProductsQuery(t *testing.T) {
	store := &memStore{}
	seed(store, "hammer", "Acme", 10, 5)
	seed(store, "anvil", "Acme", 20, 2)
	h := newHandler(t, store)

	result := exec(t, h, `{ products { id name price amountInStock manufacturer { name contact { phone } } } }`)
	require.Empty(t, result.Errors)

	var products []map[string]interface{}
	require.NoError(t, json.Unmarshal(result.Data["products"], &products))
	require.Len(t, products, 2)
	assert.Equal(t, "hammer", products[0]["name"])
	assert.NotEmpty(t, products[0]["id"])
}

func TestProductQueryByID(t *testing.T) {
	store := &memStore{}
	p := seed(store, "hammer", "Acme", 10, 5)
	h := newHandler(t, store)

	result := exec(t, h, `{ product(id: "`+p.ID.Hex()+`") { name sku } }`)
	require.Empty(t, result.Errors)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(result.Data["product"], &got))
	assert.Equal(t, "hammer", got["name"])
}

func TestProductQueryMissingReportsError(t *testing.T) {
	h := newHandler(t, &memStore{})

	result := exec(t, h, `{ product(id: "`+primitive.NewObjectID().Hex()+`") { name } }`)
	require.NotEmpty(t, result.Errors)
}

func TestTotalStockValueQuery(t *testing.T) {
	store := &memStore{}
	seed(store, "hammer", "Acme", 10, 5)
	seed(store, "anvil", "Acme", 20, 2)
	h := newHandler(t, store)

	result := exec(t, h, `{ totalStockValue }`)
	require.Empty(t, result.Errors)
	assert.JSONEq(t, `90`, string(result.Data["totalStockValue"]))
}

func TestTotalStockValueByManufacturerQuery(t *testing.T) {
	store := &memStore{}
	seed(store, "hammer", "Acme", 10, 5)
	seed(store, "gear", "Borg", 3, 10)
	h := newHandler(t, store)

	result := exec(t, h, `{ totalStockValueByManufacturer { manufacturer totalValue } }`)
	require.Empty(t, result.Errors)

	var groups []struct {
		Manufacturer string  `json:"manufacturer"`
		TotalValue   float64 `json:"totalValue"`
	}
	require.NoError(t, json.Unmarshal(result.Data["totalStockValueByManufacturer"], &groups))
	require.Len(t, groups, 2)
	assert.Equal(t, "Acme", groups[0].Manufacturer)
	assert.Equal(t, 50.0, groups[0].TotalValue)
}

func TestStockQueries(t *testing.T) {
	store := &memStore{}
	seed(store, "a", "Acme", 1, 2)
	seed(store, "b", "Acme", 1, 7)
	seed(store, "c", "Acme", 1, 40)
	h := newHandler(t, store)

	result := exec(t, h, `{ lowStockProducts { name } criticalStockProducts { manufacturerName contactName phone email } }`)
	require.Empty(t, result.Errors)

	var low []map[string]string
	require.NoError(t, json.Unmarshal(result.Data["lowStockProducts"], &low))
	assert.Len(t, low, 2)

	var critical []map[string]string
	require.NoError(t, json.Unmarshal(result.Data["criticalStockProducts"], &critical))
	require.Len(t, critical, 1)
	assert.Equal(t, "Acme desk", critical[0]["contactName"])
}

func TestManufacturersQueryDistinctArg(t *testing.T) {
	store := &memStore{}
	seed(store, "a", "Acme", 1, 1)
	seed(store, "b", "Acme", 1, 1)
	h := newHandler(t, store)

	result := exec(t, h, `{ manufacturers { name } }`)
	require.Empty(t, result.Errors)
	var roster []map[string]string
	require.NoError(t, json.Unmarshal(result.Data["manufacturers"], &roster))
	assert.Len(t, roster, 2)

	result = exec(t, h, `{ manufacturers(distinct: true) { name } }`)
	require.Empty(t, result.Errors)
	roster = nil
	require.NoError(t, json.Unmarshal(result.Data["manufacturers"], &roster))
	assert.Len(t, roster, 1)
}

func TestAddProductMutation(t *testing.T) {
	store := &memStore{}
	h := newHandler(t, store)

	result := exec(t, h, `mutation {
		addProduct(name: "bolt", sku: "B-1", price: 0.5, amountInStock: 100,
			manufacturer: { name: "Acme", contact: { phone: "555-0100" } }) {
			id name price amountInStock manufacturer { name }
		}
	}`)
	require.Empty(t, result.Errors)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(result.Data["addProduct"], &got))
	assert.NotEmpty(t, got["id"])
	assert.Equal(t, "bolt", got["name"])
	require.Len(t, store.products, 1)
	assert.Equal(t, "Acme", store.products[0].Manufacturer.Name)
}

func TestAddProductMutationRequiresNonNullArgs(t *testing.T) {
	h := newHandler(t, &memStore{})

	result := exec(t, h, `mutation { addProduct(name: "bolt") { id } }`)
	require.NotEmpty(t, result.Errors)
}

func TestUpdateProductMutationIsPartial(t *testing.T) {
	store := &memStore{}
	p := seed(store, "hammer", "Acme", 10, 5)
	h := newHandler(t, store)

	result := exec(t, h, `mutation { updateProduct(id: "`+p.ID.Hex()+`", price: 12.5) { name price amountInStock } }`)
	require.Empty(t, result.Errors)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(result.Data["updateProduct"], &got))
	assert.Equal(t, 12.5, got["price"])
	assert.Equal(t, "hammer", got["name"])
	assert.Equal(t, 5.0, got["amountInStock"])
}

func TestDeleteProductMutation(t *testing.T) {
	store := &memStore{}
	p := seed(store, "hammer", "Acme", 10, 5)
	h := newHandler(t, store)

	result := exec(t, h, `mutation { deleteProduct(id: "`+p.ID.Hex()+`") }`)
	require.Empty(t, result.Errors)
	assert.JSONEq(t, `true`, string(result.Data["deleteProduct"]))
	assert.Empty(t, store.products)
}

func TestGetQueryParamExecution(t *testing.T) {
	store := &memStore{}
	seed(store, "hammer", "Acme", 10, 5)
	h := newHandler(t, store)

	req := httptest.NewRequest(http.MethodGet, "/graphql?query="+url.QueryEscape(`{ totalStockValue }`), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalStockValue":50`)
}
