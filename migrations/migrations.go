package migrations

import (
	"database/sql"
	"time"
)

func execWithRetry(db *sql.DB, retries int, query string) error {
	_, err := db.Exec(query)
	if err != nil {
		for i := 0; i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(query)
			if err == nil {
				break
			}
		}
	}
	return err
}

// AutoMigrateUsers creates the users table if it does not exist.
func AutoMigrateUsers(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(50) NOT NULL UNIQUE,
			email VARCHAR(100) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			fullname VARCHAR(100) NOT NULL,
			phone VARCHAR(20) NOT NULL,
			address VARCHAR(255) NOT NULL,
			created_at DATETIME NOT NULL
		);
	`
	return execWithRetry(db, retries, query)
}

// AutoMigrateProducts creates the products table if it does not exist.
func AutoMigrateProducts(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS products (
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
	`
	return execWithRetry(db, retries, query)
}

// AutoMigrateCartItems creates the cart_items table if it does not exist.
func AutoMigrateCartItems(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS cart_items (
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
	`
	return execWithRetry(db, retries, query)
}

// AutoMigrateOrders creates the orders and order_items tables if they do
// not exist.
func AutoMigrateOrders(retries int, db *sql.DB) error {
	ordersQuery := `
		CREATE TABLE IF NOT EXISTS orders (
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
	`
	if err := execWithRetry(db, retries, ordersQuery); err != nil {
		return err
	}

	itemsQuery := `
		CREATE TABLE IF NOT EXISTS order_items (
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
	`
	return execWithRetry(db, retries, itemsQuery)
}
