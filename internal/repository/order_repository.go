package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"storefront-service/internal/entity"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db}
}

const orderColumns = `id, user_id, order_date, status, shipping_info, shipping_method, payment_method, total_amount, completed_at`

func (r *OrderRepository) GetOrderByID(ctx context.Context, id int) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`

	order := &entity.Order{}
	var shippingInfo []byte
	var completedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(&order.ID, &order.UserID,
		&order.OrderDate, &order.Status, &shippingInfo, &order.ShippingMethod,
		&order.PaymentMethod, &order.TotalAmount, &completedAt)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		order.CompletedAt = &t
	}
	if err := json.Unmarshal(shippingInfo, &order.ShippingInfo); err != nil {
		return nil, err
	}

	items, err := r.getItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *OrderRepository) GetOrders(ctx context.Context) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	return r.queryOrders(ctx, query)
}

func (r *OrderRepository) GetOrdersByUser(ctx context.Context, userID int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = ?`
	return r.queryOrders(ctx, query, userID)
}

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order := entity.Order{}
		var shippingInfo []byte
		var completedAt sql.NullTime
		err := rows.Scan(&order.ID, &order.UserID, &order.OrderDate, &order.Status,
			&shippingInfo, &order.ShippingMethod, &order.PaymentMethod,
			&order.TotalAmount, &completedAt)
		if err != nil {
			return nil, err
		}
		if completedAt.Valid {
			t := completedAt.Time
			order.CompletedAt = &t
		}
		if err := json.Unmarshal(shippingInfo, &order.ShippingInfo); err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		items, err := r.getItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}

	return orders, nil
}

func (r *OrderRepository) getItems(ctx context.Context, orderID int) ([]entity.OrderItem, error) {
	query := `SELECT product_id, name, price, image, size, color, quantity FROM order_items WHERE order_id = ?`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		item := entity.OrderItem{}
		err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Image,
			&item.Size, &item.Color, &item.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	shippingInfo, err := json.Marshal(order.ShippingInfo)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	orderQuery := `INSERT INTO orders (user_id, order_date, status, shipping_info, shipping_method, payment_method, total_amount, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, orderQuery, order.UserID, order.OrderDate,
		order.Status, shippingInfo, order.ShippingMethod, order.PaymentMethod,
		order.TotalAmount, order.CompletedAt)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if len(order.Items) > 0 {
		itemQuery := `INSERT INTO order_items (order_id, product_id, name, price, image, size, color, quantity) VALUES `

		var values []any
		for _, item := range order.Items {
			itemQuery += "(?, ?, ?, ?, ?, ?, ?, ?),"
			values = append(values, orderID, item.ProductID, item.Name, item.Price,
				item.Image, item.Size, item.Color, item.Quantity)
		}
		itemQuery = itemQuery[:len(itemQuery)-1]

		_, err = tx.ExecContext(ctx, itemQuery, values...)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	order.ID = int(orderID)
	return order, nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id int, status entity.OrderStatus, completedAt sql.NullTime) error {
	query := `UPDATE orders SET status = ?, completed_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, status, completedAt, id)
	return err
}
