package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"inventory/internal/provider"
)

func TestMatcher_Match(t *testing.T) {
	m := provider.NewProductMatcher()

	tests := []struct {
		resource string
		want     provider.Match
	}{
		{"products", provider.Match{Code: provider.AllProducts}},
		{"/products/", provider.Match{Code: provider.AllProducts}},
		{"products/42", provider.Match{Code: provider.ProductByID, ID: 42}},
		{"content://com.example.android.inventoryapp/products", provider.Match{Code: provider.AllProducts}},
		{"content://com.example.android.inventoryapp/products/7", provider.Match{Code: provider.ProductByID, ID: 7}},
		{"products/abc", provider.Match{Code: provider.NoMatch}},
		{"products/0", provider.Match{Code: provider.NoMatch}},
		{"products/-3", provider.Match{Code: provider.NoMatch}},
		{"products/+3", provider.Match{Code: provider.NoMatch}},
		{"products/99999999999999999999", provider.Match{Code: provider.NoMatch}},
		{"products/1/2", provider.Match{Code: provider.NoMatch}},
		{"products//1", provider.Match{Code: provider.NoMatch}},
		{"orders", provider.Match{Code: provider.NoMatch}},
		{"", provider.Match{Code: provider.NoMatch}},
		{"content://com.example.other/products", provider.Match{Code: provider.NoMatch}},
		{"https://com.example.android.inventoryapp/products", provider.Match{Code: provider.NoMatch}},
	}

	for _, tt := range tests {
		t.Run(tt.resource, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Match(tt.resource))
		})
	}
}

func TestMatcher_CustomPatterns(t *testing.T) {
	m := provider.NewMatcher("example.test")
	m.Add("shelves/*", 1)
	m.Add("shelves/*/items/#", 2)

	assert.Equal(t, provider.Match{Code: 1}, m.Match("shelves/front"))
	assert.Equal(t, provider.Match{Code: 2, ID: 9}, m.Match("content://example.test/shelves/front/items/9"))
	assert.Equal(t, provider.Match{Code: provider.NoMatch}, m.Match("shelves/front/items/x"))
}
