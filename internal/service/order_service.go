package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/segmentio/kafka-go"

	"storefront-service/internal/entity"
)

// OrderService serves order history and the admin's status workflow.
type OrderService struct {
	orderRepo   OrderRepo
	productRepo ProductRepo
	kafkaWriter *kafka.Writer
}

func NewOrderService(orderRepo OrderRepo, productRepo ProductRepo, kafkaWriter *kafka.Writer) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		kafkaWriter: kafkaWriter,
	}
}

// OrderFilter narrows a listing. Status "all" or empty means no status
// filter; UserID 0 means every user.
type OrderFilter struct {
	UserID int
	Status entity.OrderStatus
}

// ListOrders returns orders newest-first. An order without a status
// matches the pending filter, which is how every display path treats it.
func (s *OrderService) ListOrders(ctx context.Context, filter OrderFilter) ([]*entity.Order, error) {
	var (
		orders []*entity.Order
		err    error
	)
	if filter.UserID > 0 {
		orders, err = s.orderRepo.GetOrdersByUser(ctx, filter.UserID)
	} else {
		orders, err = s.orderRepo.GetOrders(ctx)
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error loading orders")
		return nil, err
	}

	if filter.Status != "" && filter.Status != "all" {
		filtered := orders[:0]
		for _, order := range orders {
			if order.Status.Normalize() == filter.Status {
				filtered = append(filtered, order)
			}
		}
		orders = filtered
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})

	return orders, nil
}

// GetOrder loads one order and backfills legacy line items that were
// written without a name, image or price from the live product records.
func (s *OrderService) GetOrder(ctx context.Context, id int) (*entity.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting order by ID %d", id)
		return nil, err
	}

	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	EnrichItems(order, products)

	return order, nil
}

// EnrichItems fills the blanks in an order's line items from the product
// map. Items whose product is gone keep their snapshot values, falling
// back to the placeholder image.
func EnrichItems(order *entity.Order, products []*entity.Product) {
	productMap := make(map[int]*entity.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	for i := range order.Items {
		item := &order.Items[i]
		product := productMap[item.ProductID]
		if product != nil {
			if item.Name == "" {
				item.Name = product.Name
			}
			if item.Image == "" {
				item.Image = product.Image
			}
			if item.Price == 0 {
				item.Price = product.EffectivePrice()
			}
		}
		if item.Image == "" {
			item.Image = entity.PlaceholderImage
		}
	}
}

// CreateOrder persists an order given in full, for callers that build the
// payload themselves. Status is normalized to pending and the total is
// recomputed from the line items when absent.
func (s *OrderService) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	order.Status = order.Status.Normalize()
	if !order.Status.Valid() {
		return nil, ErrInvalidInput
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	if order.TotalAmount == 0 {
		for _, item := range order.Items {
			order.TotalAmount += item.Price * item.Quantity
		}
	}

	created, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating order")
		return nil, err
	}

	if err := publishOrderEvent(ctx, s.kafkaWriter, created, "created"); err != nil {
		logger.Error().Err(err).Msgf("Error publishing order event for order %d", created.ID)
	}

	return created, nil
}

// UpdateStatus moves an order along the pending → shipping → delivered
// path. Delivery stamps completedAt; anything off the path is rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, id int, next entity.OrderStatus) (*entity.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	completedAt := sql.NullTime{}
	if order.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *order.CompletedAt, Valid: true}
	}
	if next == entity.StatusDelivered && order.CompletedAt == nil {
		completedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, id, next, completedAt); err != nil {
		logger.Error().Err(err).Msgf("Error updating status for order %d", id)
		return nil, err
	}

	order.Status = next
	if completedAt.Valid {
		t := completedAt.Time
		order.CompletedAt = &t
	}

	if err := publishOrderEvent(ctx, s.kafkaWriter, order, "updated"); err != nil {
		logger.Error().Err(err).Msgf("Error publishing order event for order %d", order.ID)
	}

	return order, nil
}
