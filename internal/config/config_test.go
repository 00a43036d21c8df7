package config

import (
	"errors"
	"testing"

	"github.com/inkwell-cms/inkwell/blog/domain"
)

func fullConfig() *Config {
	return &Config{
		Addr:                ":8080",
		DBPath:              "./inkwell.db",
		AdminEmail:          "admin@example.com",
		AdminPassword:       "hunter2",
		JWTSecret:           "secret",
		CloudinaryCloudName: "demo",
		CloudinaryAPIKey:    "key",
		CloudinaryAPISecret: "api-secret",
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("SQLITE_DB_PATH", "")

	cfg := FromEnv()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.DBPath != "./inkwell.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./inkwell.db")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("SQLITE_DB_PATH", "/tmp/posts.db")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("JWT_SECRET", "secret")

	cfg := FromEnv()

	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":9999")
	}
	if cfg.DBPath != "/tmp/posts.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/tmp/posts.db")
	}
	if cfg.AdminEmail != "admin@example.com" {
		t.Errorf("AdminEmail = %q, want %q", cfg.AdminEmail, "admin@example.com")
	}
	if cfg.JWTSecret != "secret" {
		t.Errorf("JWTSecret = %q, want %q", cfg.JWTSecret, "secret")
	}
}

func TestValidateAuth(t *testing.T) {
	if err := fullConfig().ValidateAuth(); err != nil {
		t.Errorf("ValidateAuth on complete config failed: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		missing string
	}{
		{
			name:    "Missing admin email",
			mutate:  func(c *Config) { c.AdminEmail = "" },
			missing: "ADMIN_EMAIL",
		},
		{
			name:    "Missing admin password",
			mutate:  func(c *Config) { c.AdminPassword = "" },
			missing: "ADMIN_PASSWORD",
		},
		{
			name:    "Missing signing secret",
			mutate:  func(c *Config) { c.JWTSecret = "" },
			missing: "JWT_SECRET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fullConfig()
			tt.mutate(cfg)

			err := cfg.ValidateAuth()

			var cfgErr *domain.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("ValidateAuth error = %v, want a ConfigurationError", err)
			}
			if cfgErr.Missing != tt.missing {
				t.Errorf("Missing = %q, want %q", cfgErr.Missing, tt.missing)
			}
		})
	}
}

func TestValidateImageStore(t *testing.T) {
	if err := fullConfig().ValidateImageStore(); err != nil {
		t.Errorf("ValidateImageStore on complete config failed: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		missing string
	}{
		{
			name:    "Missing cloud name",
			mutate:  func(c *Config) { c.CloudinaryCloudName = "" },
			missing: "CLOUDINARY_CLOUD_NAME",
		},
		{
			name:    "Missing API key",
			mutate:  func(c *Config) { c.CloudinaryAPIKey = "" },
			missing: "CLOUDINARY_API_KEY",
		},
		{
			name:    "Missing API secret",
			mutate:  func(c *Config) { c.CloudinaryAPISecret = "" },
			missing: "CLOUDINARY_API_SECRET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fullConfig()
			tt.mutate(cfg)

			err := cfg.ValidateImageStore()

			var cfgErr *domain.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("ValidateImageStore error = %v, want a ConfigurationError", err)
			}
			if cfgErr.Missing != tt.missing {
				t.Errorf("Missing = %q, want %q", cfgErr.Missing, tt.missing)
			}
		})
	}
}
