package entity

import "time"

// OrderStatus is a closed set. The legacy store carried a free-form string
// here; any value outside the three below is rejected on write.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipping  OrderStatus = "shipping"
	StatusDelivered OrderStatus = "delivered"
)

// Normalize maps a missing status to pending, which is how every reader of
// the legacy data treated it for display.
func (s OrderStatus) Normalize() OrderStatus {
	if s == "" {
		return StatusPending
	}
	return s
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusShipping, StatusDelivered:
		return true
	}
	return false
}

// CanTransitionTo validates a status change. Orders only move forward:
// pending may ship or be delivered directly, shipping may be delivered,
// delivered is terminal. Setting the current status again is a no-op and
// allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	cur := s.Normalize()
	if !next.Valid() {
		return false
	}
	if cur == next {
		return true
	}
	switch cur {
	case StatusPending:
		return next == StatusShipping || next == StatusDelivered
	case StatusShipping:
		return next == StatusDelivered
	}
	return false
}

// OrderItem is a line item: the snapshot of a purchased product taken at
// order time, decoupled from the live product record.
type OrderItem struct {
	ProductID int    `json:"productId"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Image     string `json:"image"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

type ShippingInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	District  string `json:"district"`
	City      string `json:"city"`
	Notes     string `json:"notes"`
}

type Order struct {
	ID             int          `json:"id"`
	UserID         int          `json:"userId"`
	OrderDate      time.Time    `json:"orderDate"`
	Status         OrderStatus  `json:"status"`
	Items          []OrderItem  `json:"items"`
	ShippingInfo   ShippingInfo `json:"shippingInfo"`
	ShippingMethod string       `json:"shippingMethod"`
	PaymentMethod  string       `json:"paymentMethod"`
	TotalAmount    int          `json:"totalAmount"`
	CompletedAt    *time.Time   `json:"completedAt,omitempty"`
}

/*
MySQL schema:

CREATE TABLE orders (
	id INT AUTO_INCREMENT PRIMARY KEY,
	user_id INT NOT NULL,
	order_date DATETIME NOT NULL,
	status VARCHAR(20) NOT NULL,
	shipping_info TEXT NOT NULL,
	shipping_method VARCHAR(20) NOT NULL,
	payment_method VARCHAR(20) NOT NULL,
	total_amount INT NOT NULL,
	completed_at DATETIME NULL
);

CREATE TABLE order_items (
	id INT AUTO_INCREMENT PRIMARY KEY,
	order_id INT NOT NULL,
	product_id INT NOT NULL,
	name VARCHAR(255) NOT NULL,
	price INT NOT NULL,
	image VARCHAR(255) NOT NULL,
	size VARCHAR(20) NOT NULL,
	color VARCHAR(50) NOT NULL,
	quantity INT NOT NULL,
	FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
);

shipping_info holds a JSON object; the repository marshals it.
*/
