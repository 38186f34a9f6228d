package entity

// PlaceholderImage is served whenever a product record has no image or a
// cart row points at a product that no longer exists.
const PlaceholderImage = "./assets/img/img2.png"

type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Price       int      `json:"price"`
	FinalPrice  int      `json:"finalPrice"`
	Discount    int      `json:"discount"`
	Stock       int      `json:"stock"`
	Brand       string   `json:"brand"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Color       []string `json:"color"`
	Size        []int    `json:"size"`
}

// EffectivePrice is the price a buyer actually pays: the discounted price
// when one is set, otherwise the list price.
func (p Product) EffectivePrice() int {
	if p.FinalPrice > 0 {
		return p.FinalPrice
	}
	return p.Price
}

/*
MySQL schema:

CREATE TABLE products (
	id INT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	price INT NOT NULL,
	final_price INT NOT NULL,
	discount INT NOT NULL,
	stock INT NOT NULL,
	brand VARCHAR(50) NOT NULL,
	image VARCHAR(255) NOT NULL,
	description TEXT NOT NULL,
	rating DOUBLE NOT NULL,
	reviews INT NOT NULL,
	colors TEXT NOT NULL,
	sizes TEXT NOT NULL
);

colors and sizes hold JSON arrays; the repository marshals them.
*/
