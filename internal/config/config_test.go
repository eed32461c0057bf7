// internal/config/config_test.go
package config

import (
	"testing"
	"time"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STRING", "hello")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_DURATION", "90s")
	t.Setenv("TEST_SLICE", "a,b,c")

	if got := getEnv("TEST_STRING", "fallback"); got != "hello" {
		t.Errorf("getEnv = %q, want hello", got)
	}
	if got := getEnv("TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("getEnv fallback = %q, want fallback", got)
	}
	if got := getEnvAsInt("TEST_INT", 0); got != 42 {
		t.Errorf("getEnvAsInt = %d, want 42", got)
	}
	if got := getEnvAsInt("TEST_STRING", 7); got != 7 {
		t.Errorf("getEnvAsInt on non-numeric = %d, want fallback 7", got)
	}
	if got := getEnvAsBool("TEST_BOOL", false); !got {
		t.Error("getEnvAsBool = false, want true")
	}
	if got := getEnvAsDuration("TEST_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("getEnvAsDuration = %v, want 90s", got)
	}
	got := getEnvAsSlice("TEST_SLICE", nil)
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Errorf("getEnvAsSlice = %v, want [a b c]", got)
	}
}

func TestValidate_RejectsShortJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = "tooshort"

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation to reject a short JWT secret")
	}
}

func TestValidate_RequiresDatabaseSettings(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Host = ""

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation to require DB_HOST")
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := validConfig()

	want := "host=db.internal port=5432 user=app password=secret dbname=storefront sslmode=require"
	if got := cfg.GetDatabaseDSN(); got != want {
		t.Errorf("GetDatabaseDSN = %q, want %q", got, want)
	}
}

func TestGetRedisAddr(t *testing.T) {
	cfg := validConfig()

	if got := cfg.GetRedisAddr(); got != "cache.internal:6379" {
		t.Errorf("GetRedisAddr = %q, want cache.internal:6379", got)
	}
}

func TestEnvironmentPredicates(t *testing.T) {
	cfg := validConfig()

	cfg.App.Environment = "development"
	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Error("development environment misreported")
	}

	cfg.App.Environment = "production"
	if cfg.IsDevelopment() || !cfg.IsProduction() {
		t.Error("production environment misreported")
	}
}

func validConfig() *Config {
	return &Config{
		App: AppConfig{Environment: "development"},
		Server: ServerConfig{
			Port: "8080",
		},
		Database: DatabaseConfig{
			Host:     "db.internal",
			Port:     "5432",
			Name:     "storefront",
			User:     "app",
			Password: "secret",
			SSLMode:  "require",
		},
		Redis: RedisConfig{
			Host: "cache.internal",
			Port: "6379",
		},
		JWT: JWTConfig{
			Secret: "0123456789abcdef0123456789abcdef",
		},
	}
}
