package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"inventory/internal/models"
	"inventory/internal/provider"
	"inventory/internal/services"
)

// ProductHandler handles HTTP requests for products. Paths below the API
// root are the product addresses themselves: /products and /products/:id.
type ProductHandler struct {
	service  *services.ProductService
	provider *provider.ProductProvider
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, provider *provider.ProductProvider) *ProductHandler {
	return &ProductHandler{
		service:  service,
		provider: provider,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Delete("/", h.HandleDeleteAllProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleSaveProduct)
	productRoutes.Patch("/:id", h.HandlePatchProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Post("/:id/sale", h.HandleSellProduct)
	productRoutes.Get("/:id/order-link", h.HandleGetOrderLink)

	router.Get("/types/*", h.HandleGetType)
}

// HandleGetProducts lists products. Query parameters named after columns
// filter by equality; "sort" orders the result, e.g. ?sort=name%20DESC.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	var (
		clauses []string
		args    []any
	)
	for _, column := range models.Columns {
		if value := c.Query(column); value != "" {
			clauses = append(clauses, column+" = ?")
			args = append(args, value)
		}
	}
	var selection *models.Selection
	if len(clauses) > 0 {
		selection = &models.Selection{Where: strings.Join(clauses, " AND "), Args: args}
	}

	products, err := h.provider.Query(c.UserContext(), models.PathProducts, nil, selection, c.Query("sort"))
	if err != nil {
		log.Printf("Error getting products: %v", err)
		return errorResponse(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := h.productID(c)
	if err != nil {
		return errorResponse(c, "Unknown product address", err)
	}
	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, fmt.Sprintf("Could not retrieve product %d", id), err)
	}
	return c.JSON(product)
}

// HandleCreateProduct saves a new product from an editor form.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var form services.ProductForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	id, err := h.service.SaveProduct(c.UserContext(), 0, form)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return errorResponse(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"_id":     id,
		"address": models.ItemAddress(id),
	})
}

// HandleSaveProduct replaces a product with an editor form.
func (h *ProductHandler) HandleSaveProduct(c *fiber.Ctx) error {
	id, err := h.productID(c)
	if err != nil {
		return errorResponse(c, "Unknown product address", err)
	}

	var form services.ProductForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := h.service.SaveProduct(c.UserContext(), id, form); err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return errorResponse(c, "Could not update product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product updated",
		"_id":     id,
	})
}

// HandlePatchProduct writes raw column values to one product. Columns left
// out of the body are untouched.
func (h *ProductHandler) HandlePatchProduct(c *fiber.Ctx) error {
	var values models.Values
	if err := c.BodyParser(&values); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	address := models.PathProducts + "/" + c.Params("id")
	rows, err := h.provider.Update(c.UserContext(), address, values, nil)
	if err != nil {
		log.Printf("Error patching %s: %v", address, err)
		return errorResponse(c, "Could not update product", err)
	}
	return c.JSON(fiber.Map{
		"rows": rows,
	})
}

// HandleDeleteProduct removes one product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := h.productID(c)
	if err != nil {
		return errorResponse(c, "Unknown product address", err)
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return errorResponse(c, "Error deleting product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted",
	})
}

// HandleDeleteAllProducts removes every product.
func (h *ProductHandler) HandleDeleteAllProducts(c *fiber.Ctx) error {
	rows, err := h.service.DeleteAllProducts(c.UserContext())
	if err != nil {
		log.Printf("Error deleting all products: %v", err)
		return errorResponse(c, "Could not delete products", err)
	}
	log.Printf("%d rows deleted from products database", rows)
	return c.JSON(fiber.Map{
		"rows": rows,
	})
}

// HandleSellProduct sells one unit of a product.
func (h *ProductHandler) HandleSellProduct(c *fiber.Ctx) error {
	id, err := h.productID(c)
	if err != nil {
		return errorResponse(c, "Unknown product address", err)
	}
	quantity, err := h.service.SellOne(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, "Could not sell product", err)
	}
	return c.JSON(fiber.Map{
		"_id":      id,
		"quantity": quantity,
	})
}

// HandleGetOrderLink returns the mailto link for ordering more of a product.
func (h *ProductHandler) HandleGetOrderLink(c *fiber.Ctx) error {
	id, err := h.productID(c)
	if err != nil {
		return errorResponse(c, "Unknown product address", err)
	}
	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, fmt.Sprintf("Could not retrieve product %d", id), err)
	}
	return c.JSON(fiber.Map{
		"link": services.OrderMoreLink(*product),
	})
}

// HandleGetType resolves the content type of an address, e.g. /types/products/7.
func (h *ProductHandler) HandleGetType(c *fiber.Ctx) error {
	contentType, err := h.provider.Type(c.Params("*"))
	if err != nil {
		return errorResponse(c, "Unknown address", err)
	}
	return c.JSON(fiber.Map{
		"type": contentType,
	})
}

// productID matches the :id parameter as an item address.
func (h *ProductHandler) productID(c *fiber.Ctx) (int64, error) {
	address := models.PathProducts + "/" + c.Params("id")
	m := h.provider.Match(address)
	if m.Code != provider.ProductByID {
		return 0, fmt.Errorf("%w: %s", provider.ErrUnsupportedResource, address)
	}
	return m.ID, nil
}

// errorResponse maps err onto a status code and JSON body.
func errorResponse(c *fiber.Ctx, message string, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	var fieldErr *provider.FieldError
	if errors.As(err, &fieldErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": message,
			"field":   fieldErr.Field,
			"error":   err.Error(),
		})
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, provider.ErrUnsupportedResource), errors.Is(err, services.ErrProductNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrNothingToSave):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrOutOfStock):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
