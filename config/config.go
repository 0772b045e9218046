package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port     string
	MongoURI string
	Database string

	JWTSecret string

	CORSOrigins []string

	// Optional: Cloudinary upload target. When empty, images are stored
	// inline as data URLs.
	CloudinaryURL string

	// Optional: web push keys. Generated on boot when both are empty.
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	PushSubscriber  string

	ReleaseMode bool
}

// Load reads configuration from the environment. A .env file is loaded
// first when present, matching how the server is run in development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getenv("PORT", "8080"),
		MongoURI:        getenv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		Database:        getenv("MONGODB_DATABASE", "GlamURe"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		CloudinaryURL:   os.Getenv("CLOUDINARY_URL"),
		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		PushSubscriber:  getenv("PUSH_SUBSCRIBER", "mailto:admin@glamure.app"),
		ReleaseMode:     os.Getenv("GIN_MODE") == "release",
	}

	origins := getenv("CORS_ORIGINS", "http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields the server cannot run without.
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return errors.New("config: MONGODB_URI is required")
	}
	if c.Database == "" {
		return errors.New("config: MONGODB_DATABASE is required")
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if len(c.CORSOrigins) == 0 {
		return errors.New("config: at least one CORS origin is required")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
