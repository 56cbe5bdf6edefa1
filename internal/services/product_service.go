package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"inventory/internal/models"
	"inventory/internal/provider"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrInvalidProduct  = errors.New("invalid product")
	// ErrNothingToSave is returned when a new product form is entirely blank.
	ErrNothingToSave = errors.New("nothing to save")
	ErrSaveFailed    = errors.New("error with saving product")
)

// ListProjection is the set of columns the product list shows.
var ListProjection = []string{
	models.ColumnID,
	models.ColumnName,
	models.ColumnPicture,
	models.ColumnPrice,
	models.ColumnQuantity,
}

// ContentProvider is the subset of provider.ProductProvider the service uses.
type ContentProvider interface {
	Query(ctx context.Context, resource string, projection []string, selection *models.Selection, sortOrder string) ([]models.Product, error)
	Insert(ctx context.Context, resource string, values models.Values) (int64, error)
	Update(ctx context.Context, resource string, values models.Values, selection *models.Selection) (int64, error)
	Delete(ctx context.Context, resource string, selection *models.Selection) (int64, error)
}

// ProductForm is the editor's view of a product. Every text field is
// required once trimmed.
type ProductForm struct {
	Name          string `json:"name" validate:"required"`
	Price         string `json:"price" validate:"required,price"`
	Quantity      int    `json:"quantity" validate:"gte=0"`
	SupplierName  string `json:"supplierName" validate:"required"`
	SupplierEmail string `json:"supplierEmail" validate:"required,email"`
	Picture       string `json:"picture" validate:"required"`
}

func (f *ProductForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Price = strings.TrimSpace(f.Price)
	f.SupplierName = strings.TrimSpace(f.SupplierName)
	f.SupplierEmail = strings.TrimSpace(f.SupplierEmail)
	f.Picture = strings.TrimSpace(f.Picture)
}

func (f ProductForm) blank() bool {
	return f.Name == "" && f.Price == "" && f.SupplierName == "" && f.SupplierEmail == "" && f.Picture == ""
}

func (f ProductForm) values() models.Values {
	return models.Values{
		models.ColumnName:          f.Name,
		models.ColumnPrice:         f.Price,
		models.ColumnQuantity:      f.Quantity,
		models.ColumnSupplierName:  f.SupplierName,
		models.ColumnSupplierEmail: f.SupplierEmail,
		models.ColumnPicture:       f.Picture,
	}
}

// FormFromProduct fills a form with the stored values of p.
func FormFromProduct(p models.Product) ProductForm {
	return ProductForm{
		Name:          p.Name,
		Price:         p.Price.String(),
		Quantity:      p.Quantity,
		SupplierName:  p.SupplierName,
		SupplierEmail: p.SupplierEmail,
		Picture:       p.Picture,
	}
}

// ProductService handles the list and editor operations on products.
type ProductService struct {
	provider ContentProvider
	validate *validator.Validate
	// sellMu serializes the read-modify-write in SellOne.
	sellMu sync.Mutex
}

// NewProductService creates a new ProductService.
func NewProductService(provider ContentProvider) *ProductService {
	validate := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = validate.RegisterValidation("price", validatePrice)

	return &ProductService{
		provider: provider,
		validate: validate,
	}
}

// validatePrice accepts a non-negative decimal number.
func validatePrice(fl validator.FieldLevel) bool {
	price, err := decimal.NewFromString(fl.Field().String())
	return err == nil && !price.IsNegative()
}

// ListProducts returns every product with the list projection.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.provider.Query(ctx, models.PathProducts, ListProjection, nil, "")
}

// GetProduct returns the product with the given identifier.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	products, err := s.provider.Query(ctx, models.ItemAddress(id), nil, nil, "")
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return &products[0], nil
}

// SaveProduct stores the editor form. An id of 0 inserts a new product,
// anything else updates that product. It returns the product's identifier.
func (s *ProductService) SaveProduct(ctx context.Context, id int64, form ProductForm) (int64, error) {
	form.trim()
	if id == 0 && form.blank() {
		return 0, ErrNothingToSave
	}
	if err := s.validate.Struct(form); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidProduct, err)
	}

	if id == 0 {
		newID, err := s.provider.Insert(ctx, models.PathProducts, form.values())
		if err != nil {
			return 0, err
		}
		if newID == provider.NoID {
			return 0, ErrSaveFailed
		}
		return newID, nil
	}

	rows, err := s.provider.Update(ctx, models.ItemAddress(id), form.values(), nil)
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return id, nil
}

// SellOne decrements the quantity of a product by one and returns what is
// left. It fails with ErrOutOfStock when nothing is left to sell.
func (s *ProductService) SellOne(ctx context.Context, id int64) (int, error) {
	s.sellMu.Lock()
	defer s.sellMu.Unlock()

	address := models.ItemAddress(id)
	products, err := s.provider.Query(ctx, address, []string{models.ColumnQuantity}, nil, "")
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}

	quantity := products[0].Quantity
	if quantity <= 0 {
		return 0, ErrOutOfStock
	}
	quantity--

	rows, err := s.provider.Update(ctx, address, models.Values{models.ColumnQuantity: quantity}, nil)
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return quantity, nil
}

// DeleteProduct removes a single product.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	rows, err := s.provider.Delete(ctx, models.ItemAddress(id), nil)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return nil
}

// DeleteAllProducts removes every product and returns how many were removed.
func (s *ProductService) DeleteAllProducts(ctx context.Context) (int64, error) {
	return s.provider.Delete(ctx, models.PathProducts, nil)
}

// Dummy product inserted from the list menu.
const (
	DummyPictureURI    = "android.resource://com.example.android.inventoryapp/drawable/galaxy_s8"
	DummySupplierName  = "Samsung"
	DummySupplierEmail = "orders@samsung.example"
)

// InsertDummyProduct adds a sample product and returns its identifier.
func (s *ProductService) InsertDummyProduct(ctx context.Context) (int64, error) {
	id, err := s.provider.Insert(ctx, models.PathProducts, models.Values{
		models.ColumnPicture:       DummyPictureURI,
		models.ColumnName:          "Samsung Galaxy S8",
		models.ColumnPrice:         "650.99",
		models.ColumnQuantity:      7,
		models.ColumnSupplierName:  DummySupplierName,
		models.ColumnSupplierEmail: DummySupplierEmail,
	})
	if err != nil {
		return 0, err
	}
	if id == provider.NoID {
		return 0, ErrSaveFailed
	}
	return id, nil
}

// OrderMoreLink builds the mailto link used to reorder a product from its
// supplier.
func OrderMoreLink(p models.Product) string {
	subject := url.PathEscape("New Order")
	body := url.PathEscape("We want to order n of " + strings.TrimSpace(p.Name))
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", strings.TrimSpace(p.SupplierEmail), subject, body)
}
