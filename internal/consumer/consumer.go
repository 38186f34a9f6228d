package consumer

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"storefront-service/internal/entity"
	"storefront-service/internal/service"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Consumer drains the order topic and keeps catalog stock in line with
// what was sold. Event keys look like "order.<verb>.<id>".
type Consumer struct {
	reader         *kafka.Reader
	catalogService *service.CatalogService
}

func NewConsumer(reader *kafka.Reader, catalogService *service.CatalogService) *Consumer {
	return &Consumer{reader: reader, catalogService: catalogService}
}

// Run blocks reading messages until ctx is cancelled or the reader fails.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error().Err(err).Msg("Error reading message")
			return err
		}

		if err := c.handle(ctx, msg); err != nil {
			logger.Error().Err(err).Str("key", string(msg.Key)).Msg("Error handling order event")
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	parts := strings.Split(string(msg.Key), ".")
	if len(parts) != 3 || parts[0] != "order" {
		logger.Warn().Str("key", string(msg.Key)).Msg("Skipping message with unexpected key")
		return nil
	}
	verb := parts[1]

	order := entity.Order{}
	if err := json.Unmarshal(msg.Value, &order); err != nil {
		return err
	}

	switch verb {
	case "created":
		return c.adjustStock(ctx, &order, -1)
	case "cancelled":
		return c.adjustStock(ctx, &order, 1)
	case "updated":
		logger.Info().Int("orderId", order.ID).Str("status", string(order.Status)).Msg("Order status updated")
		return nil
	default:
		logger.Warn().Str("verb", verb).Msg("Skipping unknown order event")
		return nil
	}
}

// adjustStock shifts every line item's stock by direction*quantity:
// -1 reserves on creation, +1 restores on cancellation.
func (c *Consumer) adjustStock(ctx context.Context, order *entity.Order, direction int) error {
	for _, item := range order.Items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		if err := c.catalogService.AdjustStock(ctx, item.ProductID, direction*qty); err != nil {
			logger.Error().Err(err).
				Int("orderId", order.ID).
				Int("productId", item.ProductID).
				Msg("Error adjusting stock")
			continue
		}
	}
	logger.Info().Int("orderId", order.ID).Int("items", len(order.Items)).Msg("Stock adjusted for order")
	return nil
}
