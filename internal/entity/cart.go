package entity

type CartItem struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	ProductID int    `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`

	// Snapshot fields some legacy writers filled in at add time. They are
	// optional; the canonical values come from the product join at read
	// time, with Price acting as the first fallback in the price chain.
	Name  string `json:"name,omitempty"`
	Price int    `json:"price,omitempty"`
	Image string `json:"image,omitempty"`
}

// CartLine is a cart row joined against its product record.
type CartLine struct {
	CartItem
	LineTotal int `json:"lineTotal"`
}

/*
MySQL schema:

CREATE TABLE cart_items (
	id INT AUTO_INCREMENT PRIMARY KEY,
	user_id INT NOT NULL,
	product_id INT NOT NULL,
	size VARCHAR(20) NOT NULL,
	color VARCHAR(50) NOT NULL,
	quantity INT NOT NULL,
	name VARCHAR(255) NOT NULL,
	price INT NOT NULL,
	image VARCHAR(255) NOT NULL
);
*/
