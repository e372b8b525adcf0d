package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Auth     AuthConfig
	Supabase SupabaseConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type AppConfig struct {
	AppName          string
	Environment      string
	HTTPPort         string
	APIPrefix        string
	CORSAllowOrigins []string
	DataBackend      string
}

type AuthConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	ResetRedirectURL string
}

type SupabaseConfig struct {
	URL     string
	Key     string
	Timeout time.Duration
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	return load(os.Getenv)
}

// LoadDatabase reads only the Postgres settings, for tooling that never
// serves HTTP.
func LoadDatabase() (DatabaseConfig, error) {
	env := newReader(os.Getenv)
	db := readDatabase(env)
	env.requireSet(map[string]string{"DB_HOST": db.DBHost, "DB_NAME": db.DBName, "DB_USER": db.DBUser})
	if err := env.err(); err != nil {
		return DatabaseConfig{}, err
	}
	return db, nil
}

func load(getenv func(string) string) (Config, error) {
	env := newReader(getenv)
	cfg := Config{}

	cfg.App = AppConfig{
		AppName:          env.req("APP_NAME"),
		Environment:      env.req("APP_ENV"),
		HTTPPort:         env.req("HTTP_PORT"),
		APIPrefix:        "/" + strings.Trim(env.opt("API_PREFIX", "/api"), "/"),
		CORSAllowOrigins: splitList(env.opt("CORS_ALLOW_ORIGINS", "*")),
		DataBackend:      strings.ToLower(env.opt("DATA_BACKEND", BackendREST)),
	}
	if cfg.App.APIPrefix == "/" {
		cfg.App.APIPrefix = ""
	}

	cfg.Auth = AuthConfig{
		AccessSecret:     env.req("JWT_SECRET"),
		RefreshSecret:    env.req("JWT_REFRESH_SECRET"),
		AccessTTL:        env.dur("JWT_ACCESS_TTL", time.Hour),
		RefreshTTL:       env.dur("JWT_REFRESH_TTL", 7*24*time.Hour),
		ResetRedirectURL: env.opt("PASSWORD_RESET_REDIRECT_URL", "http://localhost:3000/reset-password"),
	}

	cfg.Supabase = SupabaseConfig{
		URL:     env.req("SUPABASE_URL"),
		Key:     env.req("SUPABASE_KEY"),
		Timeout: env.dur("SUPABASE_TIMEOUT", 10*time.Second),
	}

	cfg.Database = readDatabase(env)

	cfg.Redis = RedisConfig{
		Host:     env.opt("REDIS_HOST", "localhost"),
		Port:     env.opt("REDIS_PORT", "6379"),
		Password: env.opt("REDIS_PASSWORD", ""),
		TTL:      env.seconds("REDIS_TTL", 600*time.Second),
	}

	switch cfg.App.DataBackend {
	case BackendREST:
	case BackendPostgres:
		env.requireSet(map[string]string{"DB_HOST": cfg.Database.DBHost, "DB_NAME": cfg.Database.DBName, "DB_USER": cfg.Database.DBUser})
	default:
		env.invalid = append(env.invalid, "DATA_BACKEND")
	}

	if cfg.Auth.AccessSecret != "" && cfg.Auth.AccessSecret == cfg.Auth.RefreshSecret {
		env.invalid = append(env.invalid, "JWT_REFRESH_SECRET (must differ from JWT_SECRET)")
	}

	if err := env.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readDatabase(env *reader) DatabaseConfig {
	return DatabaseConfig{
		DBHost:     env.opt("DB_HOST", ""),
		DBPort:     env.opt("DB_PORT", "5432"),
		DBName:     env.opt("DB_NAME", ""),
		DBUser:     env.opt("DB_USER", ""),
		DBPassword: env.opt("DB_PASSWORD", ""),
		DBSSLMode:  env.opt("DB_SSL_MODE", "require"),

		ConnectTimeout:        env.dur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          env.count("DB_POOL_MAX_CONNS"),
		PoolMinConns:          env.count("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   env.dur("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   env.dur("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: env.dur("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
	}
}

// reader collects every missing or malformed variable so one error names
// them all.
type reader struct {
	getenv  func(string) string
	missing []string
	invalid []string
}

func newReader(getenv func(string) string) *reader {
	return &reader{getenv: getenv}
}

func (r *reader) req(key string) string {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		r.missing = append(r.missing, key)
	}
	return v
}

func (r *reader) opt(key, def string) string {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return def
	}
	return v
}

func (r *reader) dur(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(r.getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		r.invalid = append(r.invalid, key)
		return def
	}
	return d
}

func (r *reader) seconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(r.getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		r.invalid = append(r.invalid, key)
		return def
	}
	return time.Duration(v) * time.Second
}

func (r *reader) count(key string) int32 {
	raw := strings.TrimSpace(r.getenv(key))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 0 {
		r.invalid = append(r.invalid, key)
		return 0
	}
	return int32(v)
}

func (r *reader) requireSet(values map[string]string) {
	var keys []string
	for k, v := range values {
		if v == "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	r.missing = append(r.missing, keys...)
}

func (r *reader) err() error {
	if len(r.missing) > 0 {
		return fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(r.missing, ", "))
	}
	if len(r.invalid) > 0 {
		return fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(r.invalid, ", "))
	}
	return nil
}

func (c Config) IsProduction() bool {
	env := strings.ToLower(c.App.Environment)
	return env == "production" || env == "prod"
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

