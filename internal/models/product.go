package models

import "github.com/shopspring/decimal"

// Product represents a product tracked in the inventory.
type Product struct {
	ID            int64           `json:"_id" gorm:"column:_id;primaryKey;autoIncrement"`
	Picture       string          `json:"picture" gorm:"column:picture;not null"`
	Name          string          `json:"name" gorm:"column:name;not null"`
	Price         decimal.Decimal `json:"price" gorm:"column:price;type:float;not null"`
	Quantity      int             `json:"quantity" gorm:"column:quantity;default:0"`
	SupplierName  string          `json:"supplierName" gorm:"column:supplierName;not null"`
	SupplierEmail string          `json:"supplierEmail" gorm:"column:supplierEmail;not null"`
}

// TableName pins the table name instead of GORM's pluralized default.
func (Product) TableName() string {
	return TableName
}

// Values maps column keys to the values of a write. A key present with a nil
// value is an explicit null; a missing key leaves the column untouched.
type Values map[string]any

// Has reports whether key is present, even when its value is nil.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// Selection is a caller-supplied row filter: a SQL condition with positional
// arguments, e.g. {Where: "quantity > ?", Args: []any{0}}.
type Selection struct {
	Where string
	Args  []any
}

// IsEmpty reports whether the selection matches every row.
func (s *Selection) IsEmpty() bool {
	return s == nil || s.Where == ""
}
