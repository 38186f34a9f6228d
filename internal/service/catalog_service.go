package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"storefront-service/internal/entity"
)

const (
	productCacheTTL = 1 * time.Minute
	// ProductsPerPage is the storefront's fixed page size.
	ProductsPerPage = 8
)

// CatalogService owns the product collection: storefront reads with a
// Redis cache in front, and the admin CRUD operations behind them.
type CatalogService struct {
	productRepo ProductRepo
	rdb         *redis.Client
}

func NewCatalogService(productRepo ProductRepo, rdb *redis.Client) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		rdb:         rdb,
	}
}

func productKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}

// GetProduct reads through the cache. A cache failure falls back to the
// repository rather than failing the request.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, productKey(id)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msgf("Error getting product %d from cache", id)
		}
		if cached != "" {
			var product entity.Product
			if err := json.Unmarshal([]byte(cached), &product); err == nil {
				return &product, nil
			}
		}
	}

	product, err := s.productRepo.GetProductByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting product by ID %d", id)
		return nil, err
	}

	s.cacheProduct(ctx, product)
	return product, nil
}

func (s *CatalogService) cacheProduct(ctx context.Context, product *entity.Product) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, productKey(product.ID), data, productCacheTTL).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error setting product %d in cache", product.ID)
	}
}

func (s *CatalogService) dropCachedProduct(ctx context.Context, id int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, productKey(id)).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error deleting product %d from cache", id)
	}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return s.productRepo.GetProducts(ctx)
}

// SearchProducts matches a name substring, capped at limit rows when
// limit is positive.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, limit int) ([]*entity.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	return s.productRepo.SearchProducts(ctx, q, limit)
}

// ProductsByBrand selects products whose brand matches case-insensitively.
func ProductsByBrand(products []*entity.Product, brand string) []*entity.Product {
	var matched []*entity.Product
	for _, p := range products {
		if p.Brand != "" && strings.EqualFold(p.Brand, brand) {
			matched = append(matched, p)
		}
	}
	return matched
}

// HomeSections splits the catalog into the storefront's fixed brand rows
// of up to ProductsPerPage entries each.
func (s *CatalogService) HomeSections(ctx context.Context) (map[string][]*entity.Product, error) {
	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	sections := map[string][]*entity.Product{
		"nike":   head(ProductsByBrand(products, "NIKE"), ProductsPerPage),
		"adidas": head(ProductsByBrand(products, "ADIDAS"), ProductsPerPage),
		"puma":   head(ProductsByBrand(products, "PUMA"), ProductsPerPage),
	}

	nike := ProductsByBrand(products, "NIKE")
	if len(nike) > ProductsPerPage {
		sections["nike2"] = head(nike[ProductsPerPage:], ProductsPerPage)
	}

	return sections, nil
}

func head(products []*entity.Product, n int) []*entity.Product {
	if len(products) > n {
		return products[:n]
	}
	return products
}

// BrowseQuery carries the brand-page controls: price-range filter, sort
// mode and page number.
type BrowseQuery struct {
	Brand    string
	MinPrice int
	MaxPrice int
	Sort     string // price-asc, price-desc, rating-desc
	Page     int
}

// BrowseResult is one rendered page plus the counts the pager needs.
type BrowseResult struct {
	Products   []*entity.Product `json:"products"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
}

// Browse filters, sorts and paginates one brand's products the way the
// brand page does it client-side.
func (s *CatalogService) Browse(ctx context.Context, query BrowseQuery) (*BrowseResult, error) {
	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterAndSort(ProductsByBrand(products, query.Brand), query)
	page, totalPages := Paginate(filtered, query.Page, ProductsPerPage)

	return &BrowseResult{
		Products:   page,
		Total:      len(filtered),
		Page:       clampPage(query.Page, totalPages),
		TotalPages: totalPages,
	}, nil
}

// FilterAndSort applies the price-range filter on the effective price and
// then the requested sort order.
func FilterAndSort(products []*entity.Product, query BrowseQuery) []*entity.Product {
	maxPrice := query.MaxPrice
	if maxPrice <= 0 {
		maxPrice = math.MaxInt
	}

	var filtered []*entity.Product
	for _, p := range products {
		price := p.EffectivePrice()
		if price >= query.MinPrice && price <= maxPrice {
			filtered = append(filtered, p)
		}
	}

	switch query.Sort {
	case "price-asc":
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].EffectivePrice() < filtered[j].EffectivePrice()
		})
	case "price-desc":
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].EffectivePrice() > filtered[j].EffectivePrice()
		})
	case "rating-desc":
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Rating > filtered[j].Rating
		})
	}

	return filtered
}

// Paginate slices one page out of products. Pages are 1-based; an
// out-of-range page yields an empty slice, never an error.
func Paginate(products []*entity.Product, page, perPage int) ([]*entity.Product, int) {
	if perPage <= 0 {
		perPage = ProductsPerPage
	}
	totalPages := (len(products) + perPage - 1) / perPage
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	if start >= len(products) {
		return nil, totalPages
	}
	end := start + perPage
	if end > len(products) {
		end = len(products)
	}
	return products[start:end], totalPages
}

func clampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}

// CreateProduct rejects a name that already exists after trimming and
// case-folding, then derives the discount percentage from the two prices.
func (s *CatalogService) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	name := strings.TrimSpace(product.Name)
	if name == "" || product.Price <= 0 {
		return nil, ErrInvalidInput
	}
	product.Name = name

	existing, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if strings.EqualFold(strings.TrimSpace(p.Name), name) {
			return nil, ErrDuplicateProduct
		}
	}

	product.Discount = deriveDiscount(product.Price, product.FinalPrice)

	created, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating product")
		return nil, err
	}

	return created, nil
}

// UpdateProduct overwrites the record and writes it through the cache.
func (s *CatalogService) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if strings.TrimSpace(product.Name) == "" || product.Price <= 0 {
		return nil, ErrInvalidInput
	}

	if _, err := s.GetProduct(ctx, product.ID); err != nil {
		return nil, err
	}

	product.Discount = deriveDiscount(product.Price, product.FinalPrice)

	updated, err := s.productRepo.UpdateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating product %d", product.ID)
		return nil, err
	}

	s.cacheProduct(ctx, updated)
	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting product %d", id)
		return err
	}
	s.dropCachedProduct(ctx, id)
	return nil
}

// AdjustStock shifts a product's stock by delta (negative to reserve,
// positive to release) and refreshes the cached copy.
func (s *CatalogService) AdjustStock(ctx context.Context, productID, delta int) error {
	product, err := s.productRepo.GetProductByID(ctx, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	product.Stock += delta
	if product.Stock < 0 {
		product.Stock = 0
	}

	if _, err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		logger.Error().Err(err).Msgf("Error updating stock for product %d", productID)
		return err
	}

	s.cacheProduct(ctx, product)
	return nil
}

// PreWarmCache loads every product into the cache, which the admin calls
// before a sale window.
func (s *CatalogService) PreWarmCache(ctx context.Context) error {
	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting products")
		return err
	}

	for _, product := range products {
		s.cacheProduct(ctx, product)
	}

	return nil
}

// deriveDiscount mirrors how the admin form computes the badge: the
// rounded percentage gap between list and discounted price.
func deriveDiscount(price, finalPrice int) int {
	if price <= 0 || finalPrice <= 0 || finalPrice >= price {
		return 0
	}
	return int(math.Round(float64(price-finalPrice) / float64(price) * 100))
}
