package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration required by the gateway process.
// All values must come from env (or env-file loaded by the process runner).
// No business logic should depend on raw environment variables.
type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Session  SessionConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
}

type AppConfig struct {
	Env  string
	Port int

	// AllowOrigins feeds the CORS middleware on the JSON API surface.
	AllowOrigins []string
}

type UpstreamConfig struct {
	// BaseURL is the root of the backend REST API, e.g. https://api.example.com
	BaseURL string

	// Timeout bounds every upstream call, including the retried one.
	Timeout time.Duration
}

type SessionConfig struct {
	// Secret signs the session envelope cookie. Never log it.
	Secret string

	// CookieName is the envelope cookie; the token cookies (jwt, refresh_token,
	// user) are a fixed contract with the client and not configurable.
	CookieName string

	CookieSecure bool
}

type AuthConfig struct {
	// SignInLimit caps credential exchanges per client address per window.
	SignInLimit  int
	SignInWindow time.Duration
}

type RedisConfig struct {
	Host string
	Port int
}

type CatalogConfig struct {
	// CacheTTL applies to public catalog reads cached in redis.
	CacheTTL time.Duration
}

func Load() (Config, error) {
	c := Config{}
	var parseErrs []error

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	{
		n, err := mustInt("APP_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.App.Port = n
	}
	c.App.AllowOrigins = splitCSV(os.Getenv("CORS_ALLOW_ORIGINS"))

	c.Upstream.BaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("UPSTREAM_API_URL")), "/")
	c.Upstream.Timeout = mustDuration("UPSTREAM_TIMEOUT")

	c.Session.Secret = os.Getenv("SESSION_SECRET")
	c.Session.CookieName = strings.TrimSpace(os.Getenv("SESSION_COOKIE_NAME"))
	c.Session.CookieSecure = strings.EqualFold(strings.TrimSpace(os.Getenv("SESSION_COOKIE_SECURE")), "true")

	{
		n, err := optInt("SIGNIN_RATE_LIMIT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.Auth.SignInLimit = n
	}
	c.Auth.SignInWindow = mustDuration("SIGNIN_RATE_WINDOW")

	c.Redis.Host = strings.TrimSpace(os.Getenv("REDIS_HOST"))
	{
		n, err := mustInt("REDIS_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.Redis.Port = n
	}

	c.Catalog.CacheTTL = mustDuration("CATALOG_CACHE_TTL")

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	if c.Upstream.BaseURL == "" {
		errs = append(errs, errors.New("UPSTREAM_API_URL is required"))
	} else if u, err := url.Parse(c.Upstream.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("UPSTREAM_API_URL must be an absolute URL, got %q", c.Upstream.BaseURL))
	}
	if c.Upstream.Timeout <= 0 {
		// A hung backend must not pin gateway handlers forever.
		c.Upstream.Timeout = 15 * time.Second
	}

	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "session_token"
	}
	if c.IsProduction() && !c.Session.CookieSecure {
		errs = append(errs, errors.New("SESSION_COOKIE_SECURE must be true in production"))
	}

	if c.Auth.SignInLimit <= 0 {
		c.Auth.SignInLimit = 10
	}
	if c.Auth.SignInWindow <= 0 {
		c.Auth.SignInWindow = time.Minute
	}

	if c.Redis.Host == "" {
		errs = append(errs, errors.New("REDIS_HOST is required"))
	}
	if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
		errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
	}

	if c.Catalog.CacheTTL <= 0 {
		// Catalog data changes rarely; one minute keeps admin edits visible
		// without hitting the upstream on every page view.
		c.Catalog.CacheTTL = time.Minute
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func mustInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

// optInt is like mustInt but treats an unset variable as zero.
func optInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func mustDuration(key string) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func appendParseErr(errs []error, n int, err error) (int, []error) {
	if err != nil {
		errs = append(errs, err)
	}
	return n, errs
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
