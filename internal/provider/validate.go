package provider

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"inventory/internal/models"
)

// requiredFields are the columns that may never be written as null, with the
// message reported when they are.
var requiredFields = []struct {
	column  string
	message string
}{
	{models.ColumnName, "Product name is empty"},
	{models.ColumnPrice, "Product price is empty"},
	{models.ColumnPicture, "No product image is selected"},
	{models.ColumnSupplierName, "Product supplier name is empty"},
	{models.ColumnSupplierEmail, "Product supplier email is empty"},
}

// ValidateFields rejects a write that sets a required column to null or names
// a column the table does not have. Columns absent from values are not checked,
// so partial updates pass. Empty strings are accepted here; rejecting them is
// up to the caller.
func ValidateFields(values models.Values) error {
	for _, f := range requiredFields {
		if v, ok := values[f.column]; ok && v == nil {
			return fieldError(f.column, f.message)
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !models.IsColumn(k) {
			return fieldError(k, fmt.Sprintf("Unknown product column %q", k))
		}
	}
	return nil
}

// normalizeFields converts validated values into the Go types the store
// writes: strings for text columns, decimal.Decimal for price, int for
// quantity and int64 for the identifier. A null quantity becomes the column
// default of 0 and a null identifier is dropped so the store assigns one.
func normalizeFields(values models.Values) (models.Values, error) {
	out := make(models.Values, len(values))
	for key, value := range values {
		switch key {
		case models.ColumnPrice:
			price, err := toPrice(value)
			if err != nil {
				return nil, fieldError(key, fmt.Sprintf("Product price %v is not a number", value))
			}
			out[key] = price
		case models.ColumnQuantity:
			if value == nil {
				out[key] = 0
				continue
			}
			quantity, err := toQuantity(value)
			if err != nil {
				return nil, fieldError(key, fmt.Sprintf("Product quantity %v is not an integer", value))
			}
			out[key] = quantity
		case models.ColumnID:
			if value == nil {
				continue
			}
			id, err := toInteger(value, 64)
			if err != nil || id <= 0 {
				return nil, fieldError(key, fmt.Sprintf("Product identifier %v is not a positive integer", value))
			}
			out[key] = id
		default:
			text, err := cast.ToStringE(value)
			if err != nil {
				return nil, fieldError(key, fmt.Sprintf("Product %s %v is not text", key, value))
			}
			out[key] = text
		}
	}
	return out, nil
}

func toPrice(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(strings.TrimSpace(s))
}

// toQuantity accepts integers, integral floats (JSON numbers) and base-10
// strings.
func toQuantity(value any) (int, error) {
	n, err := toInteger(value, strconv.IntSize)
	return int(n), err
}

// toInteger converts value to an integer that fits in bitSize bits. Strings
// are always read as base 10, so "010" is ten.
func toInteger(value any, bitSize int) (int64, error) {
	switch v := value.(type) {
	case float64:
		return floatToInteger(v, bitSize)
	case float32:
		return floatToInteger(float64(v), bitSize)
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, bitSize)
	case json.Number:
		return strconv.ParseInt(strings.TrimSpace(v.String()), 10, bitSize)
	}
	return cast.ToInt64E(value)
}

func floatToInteger(v float64, bitSize int) (int64, error) {
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%v has a fractional part", v)
	}
	limit := math.Ldexp(1, bitSize-1)
	if v < -limit || v >= limit {
		return 0, fmt.Errorf("%v is out of range", v)
	}
	return int64(v), nil
}
