package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port    string
	Env     string
	BaseURL string

	// CORS
	AllowedOrigins []string

	// Supabase (PostgREST)
	SupabaseURL     string
	SupabaseAnonKey string

	// Direct PostgreSQL access, takes precedence over Supabase when set
	DatabaseURL string

	// Redis
	RedisURL string

	// Tables
	LedgerTable       string
	TransactionsTable string
	ProductsTable     string

	// Admin ledger view
	LedgerSessionTTL time.Duration
	AdminTimezone    string
	AdminUser        string
	AdminPass        string

	// NOWPayments
	NOWPaymentsAPIKey  string
	NOWPaymentsBaseURL string

	// Wallet payment addresses
	WalletAddress     string
	TestWalletAddress string

	ProductCacheTTL time.Duration

	// Export archive
	ExportArchiveEnabled bool
	ExportArchiveDir     string
	S3Endpoint           string
	S3Region             string
	S3Bucket             string
	S3AccessKey          string
	S3SecretKey          string

	// Logging
	LogLevel string
}

func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		// Server
		Port:    getEnv("PORT", "8080"),
		Env:     getEnv("ENV", "development"),
		BaseURL: getEnv("BASE_URL", "http://localhost:3000"),

		// CORS
		AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		// Supabase
		SupabaseURL:     getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey: getEnv("SUPABASE_ANON_KEY", ""),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", ""),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// Tables
		LedgerTable:       getEnv("LEDGER_TABLE", "admin_transactions"),
		TransactionsTable: getEnv("TRANSACTIONS_TABLE", "transactions"),
		ProductsTable:     getEnv("PRODUCTS_TABLE", "products"),

		// Admin
		LedgerSessionTTL: parseDuration(getEnv("LEDGER_SESSION_TTL", "30m"), 30*time.Minute),
		AdminTimezone:    getEnv("ADMIN_TIMEZONE", ""),
		AdminUser:        getEnv("ADMIN_USER", "admin"),
		AdminPass:        getEnv("ADMIN_PASS", "admin123"),

		// NOWPayments
		NOWPaymentsAPIKey:  getEnv("NOWPAYMENTS_API_KEY", ""),
		NOWPaymentsBaseURL: getEnv("NOWPAYMENTS_BASE_URL", "https://api.nowpayments.io"),

		// Wallet
		WalletAddress:     getEnv("WALLET_ADDRESS", "0x0000000000000000000000000000000000000000"),
		TestWalletAddress: getEnv("TEST_WALLET_ADDRESS", "0xTestWalletAddress"),

		ProductCacheTTL: parseDuration(getEnv("PRODUCT_CACHE_TTL", "1m"), time.Minute),

		// Export archive
		ExportArchiveEnabled: parseBool(getEnv("EXPORT_ARCHIVE_ENABLED", "false"), false),
		ExportArchiveDir:     getEnv("EXPORT_ARCHIVE_DIR", "./exports"),
		S3Endpoint:           getEnv("S3_ENDPOINT", ""),
		S3Region:             getEnv("S3_REGION", "auto"),
		S3Bucket:             getEnv("S3_BUCKET", ""),
		S3AccessKey:          getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:          getEnv("S3_SECRET_KEY", ""),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func parseBool(s string, defaultValue bool) bool {
	value, err := strconv.ParseBool(s)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseStringSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	// Simple split by comma
	var result []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if start < i {
				result = append(result, s[start:i])
			}
			start = i + 1
		}
	}
	return result
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UseSQL reports whether stores should talk to PostgreSQL directly
// instead of going through the Supabase REST interface.
func (c *Config) UseSQL() bool {
	return c.DatabaseURL != ""
}

// UseS3 reports whether export archives go to an S3-compatible bucket.
func (c *Config) UseS3() bool {
	return c.S3Bucket != ""
}

// PaymentAddress returns the wallet that receives direct on-chain payments.
func (c *Config) PaymentAddress() string {
	if c.IsDevelopment() {
		return c.TestWalletAddress
	}
	return c.WalletAddress
}
