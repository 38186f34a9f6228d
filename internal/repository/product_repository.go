package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"storefront-service/internal/entity"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db}
}

const productColumns = `id, name, price, final_price, discount, stock, brand, image, description, rating, reviews, colors, sizes`

func scanProduct(scan func(dest ...any) error) (*entity.Product, error) {
	product := &entity.Product{}
	var colors, sizes []byte
	err := scan(&product.ID, &product.Name, &product.Price, &product.FinalPrice,
		&product.Discount, &product.Stock, &product.Brand, &product.Image,
		&product.Description, &product.Rating, &product.Reviews, &colors, &sizes)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(colors, &product.Color); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sizes, &product.Size); err != nil {
		return nil, err
	}
	return product, nil
}

func marshalLists(product *entity.Product) (colors, sizes []byte, err error) {
	if product.Color == nil {
		product.Color = []string{}
	}
	if product.Size == nil {
		product.Size = []int{}
	}
	colors, err = json.Marshal(product.Color)
	if err != nil {
		return nil, nil, err
	}
	sizes, err = json.Marshal(product.Size)
	if err != nil {
		return nil, nil, err
	}
	return colors, sizes, nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	return scanProduct(r.db.QueryRowContext(ctx, query, id).Scan)
}

func (r *ProductRepository) GetProducts(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	return r.queryProducts(ctx, query)
}

// SearchProducts matches the name column against a substring. limit <= 0
// means no limit.
func (r *ProductRepository) SearchProducts(ctx context.Context, q string, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name LIKE ?`
	args := []any{"%" + q + "%"}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return r.queryProducts(ctx, query, args...)
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	colors, sizes, err := marshalLists(product)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO products (name, price, final_price, discount, stock, brand, image, description, rating, reviews, colors, sizes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, product.Name, product.Price, product.FinalPrice,
		product.Discount, product.Stock, product.Brand, product.Image,
		product.Description, product.Rating, product.Reviews, colors, sizes)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	product.ID = int(id)
	return product, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	colors, sizes, err := marshalLists(product)
	if err != nil {
		return nil, err
	}

	query := `UPDATE products SET name = ?, price = ?, final_price = ?, discount = ?, stock = ?, brand = ?, image = ?, description = ?, rating = ?, reviews = ?, colors = ?, sizes = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query, product.Name, product.Price, product.FinalPrice,
		product.Discount, product.Stock, product.Brand, product.Image,
		product.Description, product.Rating, product.Reviews, colors, sizes, product.ID)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id int) error {
	query := `DELETE FROM products WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
