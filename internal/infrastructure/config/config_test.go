package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SECRET_KEY": "s3cret",
	}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.Port)
	}
	if cfg.StoreDriver != StoreMongo {
		t.Fatalf("expected mongo store, got %q", cfg.StoreDriver)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" || cfg.Mongo.Database != "todos" {
		t.Fatalf("unexpected mongo config: %+v", cfg.Mongo)
	}
	if cfg.TokenTTL != 0 {
		t.Fatalf("expected no token expiry by default, got %s", cfg.TokenTTL)
	}
	if cfg.Redis.Addr != "" || cfg.Redis.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SECRET_KEY":        "s3cret",
		"PORT":              "8080",
		"ENV":               "production",
		"STORE_DRIVER":      "memory",
		"TOKEN_TTL":         "2h",
		"CONNECTION_STRING": "mongodb://db:27017",
		"REDIS_ADDR":        "cache:6379",
		"ACTIVITY_WORKERS":  "2",
	}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8080" || cfg.StoreDriver != StoreMemory || cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Mongo.URI != "mongodb://db:27017" || cfg.Redis.Addr != "cache:6379" || cfg.ActivityWorkers != 2 {
		t.Fatalf("nested overrides not applied: %+v", cfg)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production env")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	_, err := Load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err == nil {
		t.Fatalf("expected error when SECRET_KEY is absent")
	}
	if !strings.Contains(err.Error(), "SECRET_KEY") {
		t.Fatalf("expected error to name SECRET_KEY, got %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver": {"SECRET_KEY": "s", "STORE_DRIVER": "postgres"},
		"zero workers":   {"SECRET_KEY": "s", "ACTIVITY_WORKERS": "0"},
		"zero idem ttl":  {"SECRET_KEY": "s", "REDIS_ADDR": "cache:6379", "IDEMPOTENCY_TTL": "0s"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
