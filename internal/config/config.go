package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTPPort int

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisAddr  string
	KafkaTopic string

	JWTSecret     string
	AdminUsername string
}

func Load() Config {
	return Config{
		HTTPPort:      getEnvInt("HTTP_PORT", 3000),
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "root"),
		DBPass:        getEnv("DB_PASS", ""),
		DBName:        getEnv("DB_NAME", "storefront"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaTopic:    getEnv("KAFKA_ORDER_TOPIC", "order-topic"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
