package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"APP_NAME":           "careerpath",
		"APP_ENV":            "development",
		"HTTP_PORT":          "3000",
		"JWT_SECRET":         "access-secret",
		"JWT_REFRESH_SECRET": "refresh-secret",
		"SUPABASE_URL":       "https://project.supabase.co",
		"SUPABASE_KEY":       "key",
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envOf(baseEnv()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.APIPrefix != "/api" || cfg.App.DataBackend != BackendREST {
		t.Fatalf("unexpected app config: %+v", cfg.App)
	}
	if cfg.Auth.AccessTTL != time.Hour || cfg.Auth.RefreshTTL != 7*24*time.Hour {
		t.Fatalf("unexpected ttls: %v %v", cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	}
	if cfg.Redis.TTL != 600*time.Second || cfg.Redis.Addr() != "localhost:6379" {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if len(cfg.App.CORSAllowOrigins) != 1 || cfg.App.CORSAllowOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.App.CORSAllowOrigins)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	env := baseEnv()
	delete(env, "JWT_SECRET")
	delete(env, "SUPABASE_URL")

	_, err := load(envOf(env))
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected missing env error, got %v", err)
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") || !strings.Contains(err.Error(), "SUPABASE_URL") {
		t.Fatalf("error should name every missing key: %v", err)
	}
}

func TestLoad_SecretsMustDiffer(t *testing.T) {
	env := baseEnv()
	env["JWT_REFRESH_SECRET"] = env["JWT_SECRET"]

	if _, err := load(envOf(env)); !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected invalid env error, got %v", err)
	}
}

func TestLoad_PostgresBackendNeedsDatabase(t *testing.T) {
	env := baseEnv()
	env["DATA_BACKEND"] = "postgres"

	_, err := load(envOf(env))
	if !errors.Is(err, errMissingRequiredEnv) || !strings.Contains(err.Error(), "DB_HOST, DB_NAME, DB_USER") {
		t.Fatalf("expected missing db settings, got %v", err)
	}

	env["DB_HOST"], env["DB_NAME"], env["DB_USER"] = "db", "postgres", "postgres"
	env["DB_POOL_MAX_CONNS"] = "8"
	cfg, err := load(envOf(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.PoolMaxConns != 8 || cfg.Database.DBPort != "5432" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	env := baseEnv()
	env["JWT_ACCESS_TTL"] = "soon"
	env["REDIS_TTL"] = "-1"
	env["DATA_BACKEND"] = "mongo"

	_, err := load(envOf(env))
	if !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected invalid env error, got %v", err)
	}
	for _, key := range []string{"JWT_ACCESS_TTL", "REDIS_TTL", "DATA_BACKEND"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("error should name %s: %v", key, err)
		}
	}
}

func TestLoad_APIPrefixNormalised(t *testing.T) {
	env := baseEnv()
	env["API_PREFIX"] = "v2/"
	cfg, err := load(envOf(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.APIPrefix != "/v2" {
		t.Fatalf("expected /v2, got %q", cfg.App.APIPrefix)
	}
}
