// Package reports computes derived views over an in-memory product set.
// Every function is pure: no store access, no mutation of the input, and
// deterministic output for a deterministic input order. Both the REST and
// GraphQL layers consume this package, so the two surfaces cannot drift.
package reports

import (
	"encoding/json"
	"strconv"

	"github.com/prakashraj/godown/app/models"
)

// Stock thresholds for the selection reports.
const (
	LowStockThreshold      = 10
	CriticalStockThreshold = 5
)

// TotalStockValue sums price × amountInStock over all products.
// Returns 0 for an empty set.
func TotalStockValue(products []models.Product) float64 {
	var total float64
	for _, p := range products {
		total += p.Price * float64(p.AmountInStock)
	}
	return total
}

// ManufacturerValue is one group in the by-manufacturer breakdown.
type ManufacturerValue struct {
	Manufacturer string  `json:"manufacturer"`
	TotalValue   float64 `json:"totalValue"`
}

// ByManufacturer groups products by the exact manufacturer name (no
// normalization: names differing in case or whitespace are distinct
// groups) and sums price × amountInStock within each group. Groups appear
// in first-seen order of the input sequence.
func ByManufacturer(products []models.Product) []ManufacturerValue {
	index := make(map[string]int)
	var groups []ManufacturerValue

	for _, p := range products {
		name := p.Manufacturer.Name
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, ManufacturerValue{Manufacturer: name})
		}
		groups[i].TotalValue += p.Price * float64(p.AmountInStock)
	}

	return groups
}

// ValueByManufacturer is the REST wire shape: it marshals as a JSON
// object keyed by manufacturer name, preserving first-seen order. The
// GraphQL layer serves the plain slice instead.
type ValueByManufacturer []ManufacturerValue

func (v ValueByManufacturer) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, g := range v {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(g.Manufacturer)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = strconv.AppendFloat(buf, g.TotalValue, 'f', -1, 64)
	}
	return append(buf, '}'), nil
}

// StockBelow selects the products with amountInStock strictly below the
// threshold, preserving input order.
func StockBelow(products []models.Product, threshold int) []models.Product {
	out := make([]models.Product, 0)
	for _, p := range products {
		if p.AmountInStock < threshold {
			out = append(out, p)
		}
	}
	return out
}

// CriticalContact is the compact projection served by the critical-stock
// report.
type CriticalContact struct {
	ManufacturerName string `json:"manufacturerName"`
	ContactName      string `json:"contactName"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
}

// CriticalContacts projects already-selected critical products down to the
// manufacturer and contact fields. Products with a missing manufacturer or
// contact yield empty strings rather than being dropped, so the report
// length always matches the selection length.
func CriticalContacts(products []models.Product) []CriticalContact {
	out := make([]CriticalContact, 0, len(products))
	for _, p := range products {
		out = append(out, CriticalContact{
			ManufacturerName: p.Manufacturer.Name,
			ContactName:      p.Manufacturer.Contact.Name,
			Phone:            p.Manufacturer.Contact.Phone,
			Email:            p.Manufacturer.Contact.Email,
		})
	}
	return out
}

// Manufacturers projects every product's manufacturer sub-document.
// By default duplicates are preserved: five products sharing a
// manufacturer yield five entries. With distinct=true the roster is
// de-duplicated by exact name, keeping the first-seen copy and order.
func Manufacturers(products []models.Product, distinct bool) []models.Manufacturer {
	out := make([]models.Manufacturer, 0, len(products))

	if !distinct {
		for _, p := range products {
			out = append(out, p.Manufacturer)
		}
		return out
	}

	seen := make(map[string]bool)
	for _, p := range products {
		if seen[p.Manufacturer.Name] {
			continue
		}
		seen[p.Manufacturer.Name] = true
		out = append(out, p.Manufacturer)
	}
	return out
}
