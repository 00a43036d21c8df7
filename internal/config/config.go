package config

import (
	"os"

	"github.com/inkwell-cms/inkwell/blog/domain"
)

const (
	defaultAddr   = ":8080"
	defaultDBPath = "./inkwell.db"
)

// Config holds all process configuration, built once from the environment at
// startup and passed by reference to the components that need it.
type Config struct {
	Addr   string
	DBPath string

	AdminEmail    string
	AdminPassword string
	JWTSecret     string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

// FromEnv builds a Config from environment variables. Missing values do not
// fail here; callers validate the groups they need. Auth settings are checked
// per login attempt, so a misconfigured deployment still serves reads and
// reports a configuration error on login. Image store settings are checked
// once at startup, where the upload client is built.
func FromEnv() *Config {
	return &Config{
		Addr:                envOr("ADDR", defaultAddr),
		DBPath:              envOr("SQLITE_DB_PATH", defaultDBPath),
		AdminEmail:          os.Getenv("ADMIN_EMAIL"),
		AdminPassword:       os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}
}

// ValidateAuth checks that the admin credential and token signing settings
// are present.
func (c *Config) ValidateAuth() error {
	switch {
	case c.AdminEmail == "":
		return &domain.ConfigurationError{Missing: "ADMIN_EMAIL"}
	case c.AdminPassword == "":
		return &domain.ConfigurationError{Missing: "ADMIN_PASSWORD"}
	case c.JWTSecret == "":
		return &domain.ConfigurationError{Missing: "JWT_SECRET"}
	}
	return nil
}

// ValidateImageStore checks that the image store credentials are present.
func (c *Config) ValidateImageStore() error {
	switch {
	case c.CloudinaryCloudName == "":
		return &domain.ConfigurationError{Missing: "CLOUDINARY_CLOUD_NAME"}
	case c.CloudinaryAPIKey == "":
		return &domain.ConfigurationError{Missing: "CLOUDINARY_API_KEY"}
	case c.CloudinaryAPISecret == "":
		return &domain.ConfigurationError{Missing: "CLOUDINARY_API_SECRET"}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
