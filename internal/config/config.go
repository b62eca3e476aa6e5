package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
	"strconv"
)

// Provider names accepted in PAYMENT_PROVIDER.
const (
	ProviderStripe = "stripe"
	ProviderMock   = "mock"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Secrets (session signing key, processor
// key) are strings that must never appear in any client response.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	SessionSecret   string // secret used to sign session cookie tokens
	SessionTTLMin   int    // session time-to-live in minutes
	BcryptCost      int    // bcrypt cost for credential hashing
	PaymentProvider string // "stripe" or "mock"
	StripeSecretKey string // processor secret key (required for stripe)
	StripePublicKey string // processor publishable key, safe for clients
	PaymentMinCents int64  // smallest chargeable amount in minor units
	Currency        string // lowercase ISO currency code
	AMQPURL         string // RabbitMQ URL; empty disables event publication
}

// Load reads configuration from the environment.  Required variables are
// enforced by must() and missing values cause the process to exit with a
// fatal log message.  The payment provider defaults to the in-memory mock
// outside of prod so the service runs without processor credentials.
func Load() Config {
	cfg := Config{
		Env:             must("APP_ENV"),        // environment (dev/test/prod)
		Port:            must("APP_PORT"),       // port to bind the HTTP server
		SessionSecret:   must("SESSION_SECRET"), // secret for signing session tokens
		SessionTTLMin:   envInt("SESSION_TTL_MIN", 60),
		BcryptCost:      envInt("BCRYPT_COST", 10),
		PaymentProvider: envStr("PAYMENT_PROVIDER", ""),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		StripePublicKey: os.Getenv("STRIPE_PUBLIC_KEY"),
		PaymentMinCents: int64(envInt("PAYMENT_MIN_CENTS", 50)),
		Currency:        envStr("CURRENCY", "usd"),
		AMQPURL:         amqpURL(),
	}
	if cfg.PaymentProvider == "" {
		if cfg.Env == "prod" {
			cfg.PaymentProvider = ProviderStripe
		} else {
			cfg.PaymentProvider = ProviderMock
		}
	}
	if cfg.PaymentProvider != ProviderStripe && cfg.PaymentProvider != ProviderMock {
		log.Fatalf("invalid PAYMENT_PROVIDER: %q", cfg.PaymentProvider)
	}
	if cfg.PaymentProvider == ProviderStripe && cfg.StripeSecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY is required when PAYMENT_PROVIDER=stripe")
	}
	return cfg
}

// amqpURL reads the broker URL, accepting either RABBITMQ_URL or the
// generic AMQP_URL.  An empty value disables event publication.
func amqpURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}
