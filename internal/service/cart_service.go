package service

import (
	"context"
	"database/sql"
	"errors"

	"storefront-service/internal/entity"
)

// CartService is the cart aggregator: rows scoped by user, joined against
// the live product collection at read time.
type CartService struct {
	cartRepo    CartRepo
	productRepo ProductRepo
}

func NewCartService(cartRepo CartRepo, productRepo ProductRepo) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItem merges into an existing row when the same user already has the
// same product in the same size and color, otherwise inserts a new row.
func (s *CartService) AddItem(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	existing, err := s.cartRepo.FindItem(ctx, item.UserID, item.ProductID, item.Size, item.Color)
	if err == nil {
		newQty := existing.Quantity + item.Quantity
		if err := s.cartRepo.SetQuantity(ctx, existing.ID, newQty); err != nil {
			return nil, err
		}
		existing.Quantity = newQty
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	created, err := s.cartRepo.CreateItem(ctx, item)
	if err != nil {
		logger.Error().Err(err).Msgf("Error adding product %d to cart", item.ProductID)
		return nil, err
	}

	return created, nil
}

func (s *CartService) GetItems(ctx context.Context, userID int) ([]*entity.CartItem, error) {
	return s.cartRepo.GetItemsByUser(ctx, userID)
}

// CartView is the drawer payload: joined lines plus the grand total.
type CartView struct {
	Lines []entity.CartLine `json:"items"`
	Total int               `json:"total"`
	Count int               `json:"count"`
}

// GetCartView loads a user's rows and the product collection and joins
// them. Rows pointing at deleted products render with placeholder values
// and contribute zero, never an error.
func (s *CartService) GetCartView(ctx context.Context, userID int) (*CartView, error) {
	items, err := s.cartRepo.GetItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	lines := JoinCart(items, products)

	view := &CartView{Lines: lines}
	for _, line := range lines {
		view.Total += line.LineTotal
		view.Count += line.Quantity
	}

	return view, nil
}

// JoinCart annotates each cart row with its product's name, price and
// image. The effective price prefers a per-item stored price, then the
// product's discounted price, then its list price; a missing product
// yields the placeholder image and a zero price.
func JoinCart(items []*entity.CartItem, products []*entity.Product) []entity.CartLine {
	productMap := make(map[int]*entity.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	lines := make([]entity.CartLine, 0, len(items))
	for _, item := range items {
		line := entity.CartLine{CartItem: *item}

		product := productMap[item.ProductID]
		if line.Price == 0 && product != nil {
			line.Price = product.EffectivePrice()
		}
		if line.Name == "" {
			if product != nil {
				line.Name = product.Name
			} else {
				line.Name = "Unknown product"
			}
		}
		if line.Image == "" {
			if product != nil && product.Image != "" {
				line.Image = product.Image
			} else {
				line.Image = entity.PlaceholderImage
			}
		}

		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}
		line.LineTotal = line.Price * qty

		lines = append(lines, line)
	}

	return lines
}

// BadgeCount is the header badge: the sum of quantities across the
// user's rows.
func (s *CartService) BadgeCount(ctx context.Context, userID int) (int, error) {
	items, err := s.cartRepo.GetItemsByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count, nil
}

// SetQuantity applies a quantity change, flooring at 1; removing a row is
// an explicit delete, never a zero quantity.
func (s *CartService) SetQuantity(ctx context.Context, cartID, quantity int) (*entity.CartItem, error) {
	item, err := s.cartRepo.GetItemByID(ctx, cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		quantity = 1
	}

	if err := s.cartRepo.SetQuantity(ctx, cartID, quantity); err != nil {
		return nil, err
	}

	item.Quantity = quantity
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, cartID int) error {
	return s.cartRepo.DeleteItem(ctx, cartID)
}

func (s *CartService) Clear(ctx context.Context, userID int) error {
	return s.cartRepo.ClearByUser(ctx, userID)
}
