package config

import (
	"os"
	"strconv"
	"sync"
)

// Config holds deployment settings read from the environment once at startup.
type Config struct {
	CartTitle       string
	BaseURL         string
	CurrencySymbol  string
	ProductsPerPage int64
	MaxQuantity     int

	// TrackStock enables the stock checks on cart mutations and the
	// stock decrement on payment confirmation.
	TrackStock bool

	// DiscountsEnabled toggles the discount-code module.
	DiscountsEnabled bool

	// Flat shipping: ShippingAmount applies below FreeShippingOver.
	ShippingAmount   float64
	FreeShippingOver float64
	DomesticCountry  string
	// Surcharge added for shipping outside DomesticCountry.
	InternationalSurcharge float64

	MongoURI  string
	MongoDB   string
	RedisAddr string

	APIKey         string
	SendgridKey    string
	EmailFrom      string
	UploadDir      string
	SessionTTLDays int
}

var (
	cfg  *Config
	once sync.Once
)

// Load reads the config from environment variables. Safe to call more than
// once; the first call wins.
func Load() *Config {
	once.Do(func() {
		cfg = &Config{
			CartTitle:              getStr("CART_TITLE", "Calyx Store"),
			BaseURL:                getStr("BASE_URL", "http://localhost:8080"),
			CurrencySymbol:         getStr("CURRENCY_SYMBOL", "$"),
			ProductsPerPage:        int64(getInt("PRODUCTS_PER_PAGE", 6)),
			MaxQuantity:            getInt("MAX_QUANTITY", 0),
			TrackStock:             getBool("TRACK_STOCK", false),
			DiscountsEnabled:       getBool("DISCOUNTS_ENABLED", true),
			ShippingAmount:         getFloat("SHIPPING_AMOUNT", 10),
			FreeShippingOver:       getFloat("FREE_SHIPPING_OVER", 100),
			DomesticCountry:        getStr("DOMESTIC_COUNTRY", ""),
			InternationalSurcharge: getFloat("INTERNATIONAL_SURCHARGE", 0),
			MongoURI:               getStr("MONGO_URI", "mongodb://localhost:27017"),
			MongoDB:                getStr("MONGO_DB", "calyxdb"),
			RedisAddr:              getStr("REDIS_ADDR", "localhost:6379"),
			APIKey:                 os.Getenv("API_KEY"),
			SendgridKey:            os.Getenv("SENDGRID_API_KEY"),
			EmailFrom:              getStr("EMAIL_FROM", "noreply@example.com"),
			UploadDir:              getStr("UPLOAD_DIR", "static/uploads"),
			SessionTTLDays:         getInt("SESSION_TTL_DAYS", 14),
		}
	})
	return cfg
}

func getStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return fallback
}
