package service

import (
	"context"
	"database/sql"

	"storefront-service/internal/entity"
)

// Repository ports. The mysql implementations live in internal/repository;
// tests substitute fakes.

type UserRepo interface {
	GetUserByID(ctx context.Context, id int) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUsers(ctx context.Context) ([]*entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	DeleteUser(ctx context.Context, id int) error
}

type ProductRepo interface {
	GetProductByID(ctx context.Context, id int) (*entity.Product, error)
	GetProducts(ctx context.Context) ([]*entity.Product, error)
	SearchProducts(ctx context.Context, q string, limit int) ([]*entity.Product, error)
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

type CartRepo interface {
	GetItemsByUser(ctx context.Context, userID int) ([]*entity.CartItem, error)
	GetItemByID(ctx context.Context, id int) (*entity.CartItem, error)
	FindItem(ctx context.Context, userID, productID int, size, color string) (*entity.CartItem, error)
	CreateItem(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error)
	SetQuantity(ctx context.Context, id, quantity int) error
	DeleteItem(ctx context.Context, id int) error
	ClearByUser(ctx context.Context, userID int) error
}

type OrderRepo interface {
	GetOrderByID(ctx context.Context, id int) (*entity.Order, error)
	GetOrders(ctx context.Context) ([]*entity.Order, error)
	GetOrdersByUser(ctx context.Context, userID int) ([]*entity.Order, error)
	CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status entity.OrderStatus, completedAt sql.NullTime) error
}
