package service

import (
	"context"
	"database/sql"
	"sort"

	"storefront-service/internal/entity"
)

// In-memory repositories backing the service tests. They mirror the mysql
// implementations' contract: lookups that find nothing return
// sql.ErrNoRows.

type fakeUserRepo struct {
	users  map[int]*entity.User
	nextID int
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int]*entity.User{}, nextID: 1}
	for _, u := range users {
		if u.ID == 0 {
			u.ID = r.nextID
		}
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id int) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) GetUsers(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *entity.User) (*entity.User, error) {
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return user, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user *entity.User) (*entity.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	r.users[user.ID] = &copied
	return user, nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id int) error {
	delete(r.users, id)
	return nil
}

type fakeProductRepo struct {
	products map[int]*entity.Product
	nextID   int
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[int]*entity.Product{}, nextID: 1}
	for _, p := range products {
		if p.ID == 0 {
			p.ID = r.nextID
		}
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) GetProductByID(_ context.Context, id int) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeProductRepo) GetProducts(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		copied := *p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProductRepo) SearchProducts(_ context.Context, q string, limit int) ([]*entity.Product, error) {
	out, _ := r.GetProducts(context.Background())
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeProductRepo) CreateProduct(_ context.Context, product *entity.Product) (*entity.Product, error) {
	product.ID = r.nextID
	r.nextID++
	copied := *product
	r.products[product.ID] = &copied
	return product, nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, product *entity.Product) (*entity.Product, error) {
	if _, ok := r.products[product.ID]; !ok {
		return nil, sql.ErrNoRows
	}
	copied := *product
	r.products[product.ID] = &copied
	return product, nil
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, id int) error {
	delete(r.products, id)
	return nil
}

type fakeCartRepo struct {
	items  map[int]*entity.CartItem
	nextID int
}

func newFakeCartRepo(items ...*entity.CartItem) *fakeCartRepo {
	r := &fakeCartRepo{items: map[int]*entity.CartItem{}, nextID: 1}
	for _, item := range items {
		if item.ID == 0 {
			item.ID = r.nextID
		}
		if item.ID >= r.nextID {
			r.nextID = item.ID + 1
		}
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeCartRepo) GetItemsByUser(_ context.Context, userID int) ([]*entity.CartItem, error) {
	var out []*entity.CartItem
	for _, item := range r.items {
		if item.UserID == userID {
			copied := *item
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCartRepo) GetItemByID(_ context.Context, id int) (*entity.CartItem, error) {
	if item, ok := r.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeCartRepo) FindItem(_ context.Context, userID, productID int, size, color string) (*entity.CartItem, error) {
	for _, item := range r.items {
		if item.UserID == userID && item.ProductID == productID && item.Size == size && item.Color == color {
			copied := *item
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeCartRepo) CreateItem(_ context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	item.ID = r.nextID
	r.nextID++
	copied := *item
	r.items[item.ID] = &copied
	return item, nil
}

func (r *fakeCartRepo) SetQuantity(_ context.Context, id, quantity int) error {
	item, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	item.Quantity = quantity
	return nil
}

func (r *fakeCartRepo) DeleteItem(_ context.Context, id int) error {
	delete(r.items, id)
	return nil
}

func (r *fakeCartRepo) ClearByUser(_ context.Context, userID int) error {
	for id, item := range r.items {
		if item.UserID == userID {
			delete(r.items, id)
		}
	}
	return nil
}

type fakeOrderRepo struct {
	orders map[int]*entity.Order
	nextID int
}

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[int]*entity.Order{}, nextID: 1}
	for _, o := range orders {
		if o.ID == 0 {
			o.ID = r.nextID
		}
		if o.ID >= r.nextID {
			r.nextID = o.ID + 1
		}
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) GetOrderByID(_ context.Context, id int) (*entity.Order, error) {
	if o, ok := r.orders[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeOrderRepo) GetOrders(_ context.Context) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0, len(r.orders))
	for _, o := range r.orders {
		copied := *o
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOrderRepo) GetOrdersByUser(_ context.Context, userID int) ([]*entity.Order, error) {
	all, _ := r.GetOrders(context.Background())
	var out []*entity.Order
	for _, o := range all {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, order *entity.Order) (*entity.Order, error) {
	order.ID = r.nextID
	r.nextID++
	copied := *order
	r.orders[order.ID] = &copied
	return order, nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(_ context.Context, id int, status entity.OrderStatus, completedAt sql.NullTime) error {
	order, ok := r.orders[id]
	if !ok {
		return sql.ErrNoRows
	}
	order.Status = status
	if completedAt.Valid {
		t := completedAt.Time
		order.CompletedAt = &t
	}
	return nil
}
