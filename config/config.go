package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env     string
	Catalog CatalogConfig
	Storage StorageConfig
	Cart    CartConfig
	Mock    MockConfig
	Pricing PricingConfig
}

type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StorageConfig selects the durable key/value backend. Backend is one of
// "file", "memory" or "redis".
type StorageConfig struct {
	Backend       string
	Dir           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type CartConfig struct {
	// FlushDebounce coalesces rapid cart mutations into a single
	// persisted snapshot. Zero means persist on every mutation.
	FlushDebounce time.Duration
}

// MockConfig tunes the mock backend. Latency simulates the round trip a
// real API would have.
type MockConfig struct {
	Latency time.Duration
}

type PricingConfig struct {
	FreeShippingThreshold string
	ShippingFee           string
	TaxRate               string
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	cfg := &Config{
		Env: getEnv("ENV", "development"),
		Catalog: CatalogConfig{
			BaseURL: getEnv("CATALOG_BASE_URL", "https://fakestoreapi.com"),
			Timeout: getDuration("CATALOG_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			Backend:       getEnv("STORAGE_BACKEND", "file"),
			Dir:           getEnv("STORAGE_DIR", ".ministore"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Cart: CartConfig{
			FlushDebounce: getDuration("CART_FLUSH_DEBOUNCE", 400*time.Millisecond),
		},
		Mock: MockConfig{
			Latency: getDuration("MOCK_LATENCY", 0),
		},
		Pricing: PricingConfig{
			FreeShippingThreshold: getEnv("PRICING_FREE_SHIPPING_THRESHOLD", "50"),
			ShippingFee:           getEnv("PRICING_SHIPPING_FEE", "9.99"),
			TaxRate:               getEnv("PRICING_TAX_RATE", "0.08"),
		},
	}

	log.Printf("Config loaded: env=%s, storage=%s", cfg.Env, cfg.Storage.Backend)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
