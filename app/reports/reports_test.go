package reports_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakashraj/godown/app/models"
	"github.com/prakashraj/godown/app/reports"
)

func product(name, manufacturer string, price float64, stock int) models.Product {
	return models.Product{
		Name:          name,
		Price:         price,
		AmountInStock: stock,
		Manufacturer: models.Manufacturer{
			Name: manufacturer,
			Contact: models.Contact{
				Name:  manufacturer + " desk",
				Phone: "555-0100",
				Email: "desk@example.com",
			},
		},
	}
}

func TestTotalStockValue(t *testing.T) {
	products := []models.Product{
		product("hammer", "Acme", 10, 5),
		product("anvil", "Acme", 20, 2),
	}

	assert.Equal(t, 90.0, reports.TotalStockValue(products))
	assert.Zero(t, reports.TotalStockValue(nil))
}

func TestByManufacturerGroupsInFirstSeenOrder(t *testing.T) {
	products := []models.Product{
		product("hammer", "Acme", 10, 5),
		product("gear", "Borg", 3, 10),
		product("anvil", "Acme", 20, 2),
	}

	groups := reports.ByManufacturer(products)
	require.Len(t, groups, 2)
	assert.Equal(t, "Acme", groups[0].Manufacturer)
	assert.Equal(t, 90.0, groups[0].TotalValue)
	assert.Equal(t, "Borg", groups[1].Manufacturer)
	assert.Equal(t, 30.0, groups[1].TotalValue)
}

func TestByManufacturerIsExactMatch(t *testing.T) {
	products := []models.Product{
		product("a", "Acme", 1, 1),
		product("b", "acme", 1, 1),
		product("c", "Acme ", 1, 1),
	}

	// No normalization: case and whitespace variants are distinct groups.
	assert.Len(t, reports.ByManufacturer(products), 3)
}

func TestGroupedValuesPartitionTheTotal(t *testing.T) {
	products := []models.Product{
		product("a", "Acme", 9.99, 3),
		product("b", "Borg", 120, 0),
		product("c", "Cyberdyne", 0.01, 10000),
		product("d", "Acme", 5, 7),
	}

	var sum float64
	for _, g := range reports.ByManufacturer(products) {
		sum += g.TotalValue
	}
	assert.InDelta(t, reports.TotalStockValue(products), sum, 1e-9)
}

func TestValueByManufacturerJSONKeepsOrder(t *testing.T) {
	products := []models.Product{
		product("z", "Zeta", 2, 1),
		product("a", "Alpha", 3, 1),
	}

	data, err := json.Marshal(reports.ValueByManufacturer(reports.ByManufacturer(products)))
	require.NoError(t, err)
	assert.Equal(t, `{"Zeta":2,"Alpha":3}`, string(data))
}

func TestStockBelowThresholds(t *testing.T) {
	products := []models.Product{
		product("a", "Acme", 1, 0),
		product("b", "Acme", 1, 4),
		product("c", "Acme", 1, 5),
		product("d", "Acme", 1, 9),
		product("e", "Acme", 1, 10),
	}

	low := reports.StockBelow(products, reports.LowStockThreshold)
	critical := reports.StockBelow(products, reports.CriticalStockThreshold)

	require.Len(t, low, 4)
	require.Len(t, critical, 2)

	// critical ⊆ low
	inLow := make(map[string]bool)
	for _, p := range low {
		inLow[p.Name] = true
	}
	for _, p := range critical {
		assert.True(t, inLow[p.Name], "critical product %q missing from low-stock", p.Name)
	}
}

func TestCriticalContactsProjection(t *testing.T) {
	products := []models.Product{product("a", "Acme", 1, 2)}

	got := reports.CriticalContacts(products)
	require.Len(t, got, 1)
	assert.Equal(t, reports.CriticalContact{
		ManufacturerName: "Acme",
		ContactName:      "Acme desk",
		Phone:            "555-0100",
		Email:            "desk@example.com",
	}, got[0])
}

func TestCriticalContactsMissingContactYieldsEmptyStrings(t *testing.T) {
	products := []models.Product{{Name: "orphan", AmountInStock: 1}}

	got := reports.CriticalContacts(products)
	require.Len(t, got, 1)
	assert.Equal(t, reports.CriticalContact{}, got[0])
}

func TestManufacturersKeepsDuplicatesByDefault(t *testing.T) {
	products := []models.Product{
		product("a", "Acme", 1, 1),
		product("b", "Acme", 1, 1),
		product("c", "Borg", 1, 1),
	}

	roster := reports.Manufacturers(products, false)
	assert.Len(t, roster, len(products))
}

func TestManufacturersDistinctCollapsesByName(t *testing.T) {
	products := []models.Product{
		product("a", "Acme", 1, 1),
		product("b", "Borg", 1, 1),
		product("c", "Acme", 1, 1),
	}

	roster := reports.Manufacturers(products, true)
	require.Len(t, roster, 2)
	assert.Equal(t, "Acme", roster[0].Name)
	assert.Equal(t, "Borg", roster[1].Name)
}

func TestReportsDoNotMutateInput(t *testing.T) {
	products := []models.Product{
		product("a", "Acme", 10, 5),
		product("b", "Borg", 20, 2),
	}
	before := make([]models.Product, len(products))
	copy(before, products)

	reports.TotalStockValue(products)
	reports.ByManufacturer(products)
	reports.StockBelow(products, reports.LowStockThreshold)
	reports.CriticalContacts(products)
	reports.Manufacturers(products, true)

	assert.Equal(t, before, products)
}
