package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront-service/internal/entity"
	"storefront-service/internal/service"
)

type ProductHandler struct {
	catalogService *service.CatalogService
}

func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// ListProducts serves the collection, or a name search when q is present
// --> GET /products, GET /products?q=&_limit=
func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	if q := c.QueryParam("q"); q != "" {
		limit, _ := strconv.Atoi(c.QueryParam("_limit"))
		products, err := h.catalogService.SearchProducts(ctx, q, limit)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(200, emptyIfNil(products))
	}

	products, err := h.catalogService.ListProducts(ctx)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, emptyIfNil(products))
}

func emptyIfNil(products []*entity.Product) []*entity.Product {
	if products == nil {
		return []*entity.Product{}
	}
	return products
}

// GetProduct retrieves one product --> GET /products/:id
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid ID")
	}

	product, err := h.catalogService.GetProduct(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, product)
}

// HomeSections serves the landing page's brand rows --> GET /products/home
func (h *ProductHandler) HomeSections(c echo.Context) error {
	sections, err := h.catalogService.HomeSections(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, sections)
}

// Browse serves one brand page with filter, sort and pagination
// --> GET /products/brand/:brand?minPrice=&maxPrice=&sort=&page=
func (h *ProductHandler) Browse(c echo.Context) error {
	minPrice, _ := strconv.Atoi(c.QueryParam("minPrice"))
	maxPrice, _ := strconv.Atoi(c.QueryParam("maxPrice"))
	page, _ := strconv.Atoi(c.QueryParam("page"))

	result, err := h.catalogService.Browse(c.Request().Context(), service.BrowseQuery{
		Brand:    c.Param("brand"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Sort:     c.QueryParam("sort"),
		Page:     page,
	})
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, result)
}

// CreateProduct adds a product --> POST /products
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	product := entity.Product{}
	if err := c.Bind(&product); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	created, err := h.catalogService.CreateProduct(c.Request().Context(), &product)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(201, created)
}

// UpdateProduct overwrites a product --> PUT /products/:id
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid ID")
	}

	product := entity.Product{}
	if err := c.Bind(&product); err != nil {
		return badRequest(c, "Invalid request payload")
	}
	product.ID = id

	updated, err := h.catalogService.UpdateProduct(c.Request().Context(), &product)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, updated)
}

// DeleteProduct removes a product --> DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid ID")
	}

	if err := h.catalogService.DeleteProduct(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, map[string]string{"message": "Product deleted"})
}

// PreWarmupCache loads the catalog into the cache --> GET /products/warmup-cache
func (h *ProductHandler) PreWarmupCache(c echo.Context) error {
	if err := h.catalogService.PreWarmCache(c.Request().Context()); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, map[string]string{"message": "Cache warmed up"})
}
