package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// The column types below serialize as JSON text so the same models run on
// Postgres (jsonb) and the sqlite driver used by tests.

// StringList stores an ordered list of strings.
type StringList []string

func (l *StringList) Scan(src any) error {
	return scanJSON(src, l, "StringList")
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return marshalJSON(l)
}

// JSONMap stores an opaque JSON object (addresses, shipping and payment
// snapshots, user address blobs).
type JSONMap map[string]any

func (m *JSONMap) Scan(src any) error {
	return scanJSON(src, m, "JSONMap")
}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return marshalJSON(m)
}

// OrderItem is the frozen copy of a product embedded in an order at
// checkout time, independent of later product edits or deletes.
type OrderItem struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

// OrderItemList stores the item snapshots of one order.
type OrderItemList []OrderItem

func (l *OrderItemList) Scan(src any) error {
	return scanJSON(src, l, "OrderItemList")
}

func (l OrderItemList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return marshalJSON(l)
}

// ProductSummary is the denormalized reference a gift set keeps to its
// member products. Not a foreign key: edits to the product do not flow back.
type ProductSummary struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

// ProductSummaryList stores the member products of a gift set.
type ProductSummaryList []ProductSummary

func (l *ProductSummaryList) Scan(src any) error {
	return scanJSON(src, l, "ProductSummaryList")
}

func (l ProductSummaryList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return marshalJSON(l)
}

func scanJSON(src any, dest any, typeName string) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("%s: unsupported Scan type %T", typeName, src)
	}
}

func marshalJSON(v any) (driver.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}
