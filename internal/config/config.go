package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingSecretKey = errors.New("STRIPE_SECRET_KEY is not set")
	ErrInvalidSecretKey = errors.New("STRIPE_SECRET_KEY is not a valid secret key")
)

type Config struct {
	Server
	Processor
	Checkout
	CORS
	Log
}

type Server struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Processor struct {
	SecretKey string
	APIURL    string
	Timeout   time.Duration
}

type Checkout struct {
	Currency string
	// SiteURL is the production site hosting success.html and cancel.html.
	SiteURL string
	// LocalOrigins are request origins that get redirected back to themselves
	// instead of SiteURL.
	LocalOrigins []string
}

type CORS struct {
	AllowedOrigins []string
}

type Log struct {
	Level string
}

func NewConfig() *Config {
	return &Config{
		Server: Server{
			Host:            getEnvString("HOST", "0.0.0.0"),
			Port:            getEnvString("PORT", "3000"),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Processor: Processor{
			SecretKey: getEnvString("STRIPE_SECRET_KEY", ""),
			APIURL:    getEnvString("STRIPE_API_URL", "https://api.stripe.com"),
			Timeout:   getEnvDuration("PROCESSOR_TIMEOUT", 10*time.Second),
		},
		Checkout: Checkout{
			Currency:     strings.ToLower(getEnvString("CHECKOUT_CURRENCY", "gbp")),
			SiteURL:      strings.TrimRight(getEnvString("SITE_URL", "https://www.example-travel.com"), "/"),
			LocalOrigins: getEnvList("LOCAL_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:5500"}),
		},
		CORS: CORS{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://127.0.0.1:5500",
				"https://www.example-travel.com",
			}),
		},
		Log: Log{
			Level: getEnvString("LOG_LEVEL", "info"),
		},
	}
}

// Validate reports configuration the service cannot start with.
func (c *Config) Validate() error {
	key := strings.TrimSpace(c.Processor.SecretKey)
	if key == "" {
		return ErrMissingSecretKey
	}

	if !strings.HasPrefix(key, "sk_") && !strings.HasPrefix(key, "rk_") {
		return ErrInvalidSecretKey
	}

	if _, err := strconv.ParseUint(c.Server.Port, 10, 16); err != nil {
		return fmt.Errorf("invalid port %q: %w", c.Server.Port, err)
	}

	if c.Processor.Timeout <= 0 {
		return fmt.Errorf("processor timeout must be positive, got %s", c.Processor.Timeout)
	}

	return nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

func getEnvString(key string, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}

	return list
}
