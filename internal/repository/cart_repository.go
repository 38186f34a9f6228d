package repository

import (
	"context"
	"database/sql"

	"storefront-service/internal/entity"
)

type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db}
}

const cartColumns = `id, user_id, product_id, size, color, quantity, name, price, image`

func (r *CartRepository) GetItemsByUser(ctx context.Context, userID int) ([]*entity.CartItem, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_items WHERE user_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*entity.CartItem
	for rows.Next() {
		item := entity.CartItem{}
		err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Size,
			&item.Color, &item.Quantity, &item.Name, &item.Price, &item.Image)
		if err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *CartRepository) GetItemByID(ctx context.Context, id int) (*entity.CartItem, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_items WHERE id = ?`
	item := &entity.CartItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.UserID,
		&item.ProductID, &item.Size, &item.Color, &item.Quantity,
		&item.Name, &item.Price, &item.Image)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// FindItem looks up the row for one user/product/size/color combination so
// a second add can merge into it instead of inserting a duplicate.
func (r *CartRepository) FindItem(ctx context.Context, userID, productID int, size, color string) (*entity.CartItem, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_items WHERE user_id = ? AND product_id = ? AND size = ? AND color = ?`
	item := &entity.CartItem{}
	err := r.db.QueryRowContext(ctx, query, userID, productID, size, color).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Size, &item.Color,
		&item.Quantity, &item.Name, &item.Price, &item.Image)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *CartRepository) CreateItem(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	query := `INSERT INTO cart_items (user_id, product_id, size, color, quantity, name, price, image) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, item.UserID, item.ProductID, item.Size,
		item.Color, item.Quantity, item.Name, item.Price, item.Image)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	item.ID = int(id)
	return item, nil
}

func (r *CartRepository) SetQuantity(ctx context.Context, id, quantity int) error {
	query := `UPDATE cart_items SET quantity = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, quantity, id)
	return err
}

func (r *CartRepository) DeleteItem(ctx context.Context, id int) error {
	query := `DELETE FROM cart_items WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *CartRepository) ClearByUser(ctx context.Context, userID int) error {
	query := `DELETE FROM cart_items WHERE user_id = ?`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
