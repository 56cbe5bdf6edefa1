package repositories

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"inventory/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository backed
// by SQLite.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
// Call Open before issuing statements against a fresh database.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Open creates the products table on first use and runs Upgrade when the
// database carries an older schema version. It is idempotent.
func (r *GORMProductRepository) Open() error {
	version, err := schemaVersion(r.db)
	if err != nil {
		return fmt.Errorf("failed to open product store: %w", err)
	}

	switch {
	case version == 0:
		if err := r.db.Exec(createProductsTable).Error; err != nil {
			return fmt.Errorf("failed to create products table: %w", err)
		}
	case version < DatabaseVersion:
		if err := r.Upgrade(version, DatabaseVersion); err != nil {
			return err
		}
	case version > DatabaseVersion:
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, DatabaseVersion)
	}

	return setSchemaVersion(r.db, DatabaseVersion)
}

// Upgrade migrates the schema from oldVersion to newVersion. Version 1 is the
// only schema, so there is nothing to do yet.
func (r *GORMProductRepository) Upgrade(oldVersion, newVersion int) error {
	log.Printf("Upgrading product store from version %d to %d", oldVersion, newVersion)
	return nil
}

// Close releases the underlying connection pool.
func (r *GORMProductRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Query returns the rows matching selection. Only the requested columns are
// loaded; an empty column list loads all of them.
func (r *GORMProductRepository) Query(ctx context.Context, columns []string, selection *models.Selection, sortOrder string) ([]models.Product, error) {
	tx := r.db.WithContext(ctx).Model(&models.Product{})
	if len(columns) > 0 {
		tx = tx.Select(columns)
	}
	if !selection.IsEmpty() {
		tx = tx.Where(selection.Where, selection.Args...)
	}
	if sortOrder != "" {
		tx = tx.Order(sortOrder)
	}

	products := []models.Product{}
	if err := tx.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return products, nil
}

// Insert adds a row holding values and returns its identifier. Columns absent
// from values are left to their table defaults.
func (r *GORMProductRepository) Insert(ctx context.Context, values models.Values) (int64, error) {
	product, columns, err := productFromValues(values)
	if err != nil {
		return 0, err
	}
	if len(columns) == 0 {
		return 0, fmt.Errorf("failed to create product: no values")
	}
	if err := r.db.WithContext(ctx).Select(columns).Create(&product).Error; err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	return product.ID, nil
}

// Update writes values to every row matching selection and returns the number
// of rows changed. An empty selection updates the whole table.
func (r *GORMProductRepository) Update(ctx context.Context, values models.Values, selection *models.Selection) (int64, error) {
	if len(values) == 0 {
		return 0, nil
	}
	tx := r.scoped(ctx, selection).Model(&models.Product{})
	res := tx.Updates(map[string]any(values))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update products: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes every row matching selection and returns the number of rows
// removed. An empty selection clears the table.
func (r *GORMProductRepository) Delete(ctx context.Context, selection *models.Selection) (int64, error) {
	res := r.scoped(ctx, selection).Delete(&models.Product{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete products: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// scoped applies selection, or allows a table-wide statement when it is empty.
func (r *GORMProductRepository) scoped(ctx context.Context, selection *models.Selection) *gorm.DB {
	tx := r.db.WithContext(ctx)
	if selection.IsEmpty() {
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	}
	return tx.Where(selection.Where, selection.Args...)
}

// productFromValues copies normalized values into a Product and reports which
// columns were supplied.
func productFromValues(values models.Values) (models.Product, []string, error) {
	var p models.Product
	columns := make([]string, 0, len(values))
	for key, value := range values {
		var ok bool
		switch key {
		case models.ColumnID:
			p.ID, ok = value.(int64)
		case models.ColumnPicture:
			p.Picture, ok = value.(string)
		case models.ColumnName:
			p.Name, ok = value.(string)
		case models.ColumnPrice:
			p.Price, ok = value.(decimal.Decimal)
		case models.ColumnQuantity:
			p.Quantity, ok = value.(int)
		case models.ColumnSupplierName:
			p.SupplierName, ok = value.(string)
		case models.ColumnSupplierEmail:
			p.SupplierEmail, ok = value.(string)
		default:
			return p, nil, fmt.Errorf("unknown column %q", key)
		}
		if !ok {
			return p, nil, fmt.Errorf("unexpected value %v (%T) for column %q", value, value, key)
		}
		columns = append(columns, key)
	}
	return p, columns, nil
}
