// Package provider exposes the products table through address-based CRUD
// operations: a collection address ("products") and item addresses
// ("products/<id>"), optionally written as content URIs.
package provider

import (
	"context"
	"fmt"
	"log"
	"strings"

	"inventory/internal/models"
	"inventory/internal/notify"
	"inventory/internal/repositories"
)

// ProductProvider dispatches CRUD calls on product addresses to the store,
// validating writes first and notifying observers after rows changed.
// It is safe for concurrent use; the store serializes statements.
type ProductProvider struct {
	repo     repositories.ProductRepository
	notifier notify.Notifier
	matcher  *Matcher
}

// NewProductProvider creates a ProductProvider. notifier may be nil.
func NewProductProvider(repo repositories.ProductRepository, notifier notify.Notifier) *ProductProvider {
	return &ProductProvider{
		repo:     repo,
		notifier: notifier,
		matcher:  NewProductMatcher(),
	}
}

// Match reports which address shape resource has.
func (p *ProductProvider) Match(resource string) Match {
	return p.matcher.Match(resource)
}

// Type returns the content type of resource.
func (p *ProductProvider) Type(resource string) (string, error) {
	switch p.matcher.Match(resource).Code {
	case AllProducts:
		return models.ContentListType, nil
	case ProductByID:
		return models.ContentItemType, nil
	default:
		return "", fmt.Errorf("%w: unknown URI %s", ErrUnsupportedResource, resource)
	}
}

// Query returns the products at resource. For an item address the selection
// is replaced by the identifier in the address. An empty projection returns
// every column. No match yields an empty slice, never an error.
func (p *ProductProvider) Query(ctx context.Context, resource string, projection []string, selection *models.Selection, sortOrder string) ([]models.Product, error) {
	m := p.matcher.Match(resource)
	switch m.Code {
	case AllProducts:
	case ProductByID:
		selection = idSelection(m.ID)
	default:
		return nil, fmt.Errorf("%w: cannot query unknown URI %s", ErrUnsupportedResource, resource)
	}

	for _, column := range projection {
		if !models.IsColumn(column) {
			return nil, fieldError(column, fmt.Sprintf("Unknown product column %q", column))
		}
	}
	if err := validateSortOrder(sortOrder); err != nil {
		return nil, err
	}

	products, err := p.repo.Query(ctx, projection, selection, sortOrder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return products, nil
}

// Insert adds a product through the collection address and returns its new
// identifier. When the store rejects the row, Insert logs the failure and
// returns NoID with a nil error.
func (p *ProductProvider) Insert(ctx context.Context, resource string, values models.Values) (int64, error) {
	if p.matcher.Match(resource).Code != AllProducts {
		return NoID, fmt.Errorf("%w: insertion is not supported for %s", ErrUnsupportedResource, resource)
	}

	if err := ValidateFields(values); err != nil {
		return NoID, err
	}
	normalized, err := normalizeFields(values)
	if err != nil {
		return NoID, err
	}

	id, err := p.repo.Insert(ctx, normalized)
	if err != nil {
		log.Printf("Failed to insert row for %s: %v", resource, err)
		return NoID, nil
	}

	p.notify(ctx, models.PathProducts)
	return id, nil
}

// Update writes values to the products at resource and returns how many rows
// changed. A collection address applies selection (every row when empty); an
// item address always targets its own identifier.
func (p *ProductProvider) Update(ctx context.Context, resource string, values models.Values, selection *models.Selection) (int64, error) {
	m := p.matcher.Match(resource)
	address := models.PathProducts
	switch m.Code {
	case AllProducts:
	case ProductByID:
		selection = idSelection(m.ID)
		address = models.ItemAddress(m.ID)
	default:
		return 0, fmt.Errorf("%w: update is not supported for %s", ErrUnsupportedResource, resource)
	}

	if err := ValidateFields(values); err != nil {
		return 0, err
	}
	if values.Has(models.ColumnID) {
		return 0, fieldError(models.ColumnID, "Product identifier cannot be changed")
	}
	normalized, err := normalizeFields(values)
	if err != nil {
		return 0, err
	}

	rows, err := p.repo.Update(ctx, normalized, selection)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if rows > 0 {
		p.notify(ctx, address)
	}
	return rows, nil
}

// Delete removes the products at resource and returns how many rows were
// removed. A collection address with an empty selection removes every row.
func (p *ProductProvider) Delete(ctx context.Context, resource string, selection *models.Selection) (int64, error) {
	m := p.matcher.Match(resource)
	address := models.PathProducts
	switch m.Code {
	case AllProducts:
	case ProductByID:
		selection = idSelection(m.ID)
		address = models.ItemAddress(m.ID)
	default:
		return 0, fmt.Errorf("%w: deletion is not supported for %s", ErrUnsupportedResource, resource)
	}

	rows, err := p.repo.Delete(ctx, selection)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if rows > 0 {
		p.notify(ctx, address)
	}
	return rows, nil
}

func (p *ProductProvider) notify(ctx context.Context, address string) {
	if p.notifier != nil {
		p.notifier.NotifyChange(ctx, address)
	}
}

func idSelection(id int64) *models.Selection {
	return &models.Selection{
		Where: models.ColumnID + " = ?",
		Args:  []any{id},
	}
}

// validateSortOrder accepts a comma-separated list of "<column> [ASC|DESC]".
func validateSortOrder(sortOrder string) error {
	if strings.TrimSpace(sortOrder) == "" {
		return nil
	}
	for _, term := range strings.Split(sortOrder, ",") {
		fields := strings.Fields(term)
		if len(fields) == 0 || len(fields) > 2 || !models.IsColumn(fields[0]) {
			return fieldError("sortOrder", fmt.Sprintf("Invalid sort order %q", sortOrder))
		}
		if len(fields) == 2 {
			dir := strings.ToUpper(fields[1])
			if dir != "ASC" && dir != "DESC" {
				return fieldError("sortOrder", fmt.Sprintf("Invalid sort order %q", sortOrder))
			}
		}
	}
	return nil
}
