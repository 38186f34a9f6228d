package entity

import "time"

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"` // stored and compared as plain text, matching the legacy store
	Fullname  string    `json:"fullname"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips the password before a user record leaves the service.
func (u User) Public() User {
	u.Password = ""
	return u
}

/*
MySQL schema:

CREATE TABLE users (
	id INT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(50) NOT NULL,
	email VARCHAR(100) NOT NULL,
	password VARCHAR(255) NOT NULL,
	fullname VARCHAR(100) NOT NULL,
	phone VARCHAR(20) NOT NULL,
	address VARCHAR(255) NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE UNIQUE INDEX email_idx ON users(email);
CREATE UNIQUE INDEX username_idx ON users(username);
*/
