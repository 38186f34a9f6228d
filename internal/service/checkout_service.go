package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"storefront-service/internal/entity"
)

const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"

	// ExpressShippingFee is the flat express surcharge in VND; standard
	// shipping is free.
	ExpressShippingFee = 29000
)

// CheckoutService turns a user's cart into an order: join, totals,
// line-item snapshot, cart clear, order event.
type CheckoutService struct {
	cartRepo    CartRepo
	productRepo ProductRepo
	orderRepo   OrderRepo
	kafkaWriter *kafka.Writer
}

func NewCheckoutService(cartRepo CartRepo, productRepo ProductRepo, orderRepo OrderRepo, kafkaWriter *kafka.Writer) *CheckoutService {
	return &CheckoutService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		kafkaWriter: kafkaWriter,
	}
}

type CheckoutForm struct {
	ShippingInfo   entity.ShippingInfo `json:"shippingInfo"`
	ShippingMethod string              `json:"shippingMethod"`
}

func (f CheckoutForm) validate() error {
	info := f.ShippingInfo
	if info.FirstName == "" || info.LastName == "" || info.Email == "" ||
		info.Phone == "" || info.Address == "" || info.City == "" || info.District == "" {
		return ErrInvalidInput
	}
	return nil
}

// ShippingFee returns the surcharge for a shipping method; anything other
// than express ships free.
func ShippingFee(method string) int {
	if method == ShippingExpress {
		return ExpressShippingFee
	}
	return 0
}

// PlaceOrder snapshots the user's joined cart into a pending order,
// persists it and clears the cart. A failed clear leaves orphaned rows
// behind; that is logged and the order still stands.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID int, form CheckoutForm) (*entity.Order, error) {
	if err := form.validate(); err != nil {
		return nil, err
	}

	items, err := s.cartRepo.GetItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	lines := JoinCart(items, products)

	subtotal := 0
	orderItems := make([]entity.OrderItem, 0, len(lines))
	for _, line := range lines {
		subtotal += line.LineTotal
		orderItems = append(orderItems, entity.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Image:     line.Image,
			Size:      line.Size,
			Color:     line.Color,
			Quantity:  line.Quantity,
		})
	}

	method := form.ShippingMethod
	if method != ShippingExpress {
		method = ShippingStandard
	}

	order := &entity.Order{
		UserID:         userID,
		OrderDate:      time.Now(),
		Status:         entity.StatusPending,
		Items:          orderItems,
		ShippingInfo:   form.ShippingInfo,
		ShippingMethod: method,
		PaymentMethod:  "cod",
		TotalAmount:    subtotal + ShippingFee(method),
	}

	created, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating order")
		return nil, err
	}

	if err := s.cartRepo.ClearByUser(ctx, userID); err != nil {
		logger.Error().Err(err).Msgf("Error clearing cart for user %d after order %d", userID, created.ID)
	}

	if err := publishOrderEvent(ctx, s.kafkaWriter, created, "created"); err != nil {
		logger.Error().Err(err).Msgf("Error publishing order event for order %d", created.ID)
	}

	return created, nil
}

// publishOrderEvent emits an order lifecycle event keyed
// "order.<verb>.<id>". A nil writer disables events.
func publishOrderEvent(ctx context.Context, w *kafka.Writer, order *entity.Order, verb string) error {
	if w == nil {
		return nil
	}

	orderJSON, err := json.Marshal(order)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte("order." + verb + "." + strconv.Itoa(order.ID)),
		Value: orderJSON,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order event: %w", err)
	}

	return nil
}
