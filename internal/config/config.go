package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Firestore
	ProjectID            string        // GCP project hosting the catalog collections
	CredentialsFile      string        // optional service-account key (ADC when empty)
	ToursCollection      string        // collection holding tour documents
	CategoriesCollection string        // collection holding category documents
	QueryTimeout         time.Duration // per-query deadline toward Firestore

	// Catalog caches
	CategoryCacheTTL time.Duration // active category list
	FeaturedCacheTTL time.Duration // featured tour list
	DetailCacheTTL   time.Duration // per slug-or-id tour detail entries

	DefaultPageSize int // tours per page when the caller does not say
	MaxPageSize     int // hard cap on caller-supplied page sizes

	WarmInterval  time.Duration // how often the warmer refreshes the list caches
	SweepInterval time.Duration // how often expired detail entries are dropped

	// HTTP access
	AllowedOrigins []string // CORS allow-list, empty = any origin
	AdminCIDRs     []string // IPs/CIDRs allowed to hit the refresh endpoint
	TrustProxy     bool     // true => trust X-Forwarded-For headers

	// Rate limiting
	RateBurst        int // bucket capacity per client IP
	RateRefillPerMin int // tokens refilled per minute per client IP
}

// Load builds the configuration from three layers: built-in defaults, an
// optional YAML file (CATALOG_CONFIG_FILE), and environment variables.
// Environment variables win over the file, the file wins over defaults.
func Load() *Config {
	src := newSource(os.Getenv("CATALOG_CONFIG_FILE"))

	cfg := &Config{
		// Server settings
		ListenPort:      src.get("CATALOG_LISTEN_PORT", ":8080"),
		ShutdownTimeout: src.duration("CATALOG_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  src.get("CATALOG_LOG_LEVEL", "info"),
		PrettyLog: src.boolean("CATALOG_PRETTY_LOG", false),

		// Firestore
		ProjectID:            src.require("CATALOG_FIRESTORE_PROJECT"),
		CredentialsFile:      src.get("CATALOG_FIRESTORE_CREDENTIALS", ""),
		ToursCollection:      src.get("CATALOG_TOURS_COLLECTION", "tours"),
		CategoriesCollection: src.get("CATALOG_CATEGORIES_COLLECTION", "categories"),
		QueryTimeout:         src.duration("CATALOG_QUERY_TIMEOUT", 5*time.Second),

		// Caches
		CategoryCacheTTL: src.duration("CATALOG_CATEGORY_CACHE_TTL", time.Minute),
		FeaturedCacheTTL: src.duration("CATALOG_FEATURED_CACHE_TTL", time.Minute),
		DetailCacheTTL:   src.duration("CATALOG_DETAIL_CACHE_TTL", time.Minute),

		DefaultPageSize: src.integer("CATALOG_DEFAULT_PAGE_SIZE", 9),
		MaxPageSize:     src.integer("CATALOG_MAX_PAGE_SIZE", 50),

		WarmInterval:  src.duration("CATALOG_WARM_INTERVAL", time.Minute),
		SweepInterval: src.duration("CATALOG_SWEEP_INTERVAL", 10*time.Minute),

		// HTTP access
		AllowedOrigins: splitAndTrim(src.get("CATALOG_ALLOWED_ORIGINS", "")),
		AdminCIDRs:     splitAndTrim(src.get("CATALOG_ADMIN_CIDRS", "")),
		TrustProxy:     src.boolean("CATALOG_TRUST_PROXY", true),

		// Rate limiting
		RateBurst:        src.integer("CATALOG_RATE_BURST", 30),
		RateRefillPerMin: src.integer("CATALOG_RATE_REFILL_PER_MIN", 60),
	}

	return cfg
}

// source resolves a config key against the env first, then the optional
// YAML file, then the supplied default.
type source struct {
	file map[string]string
}

func newSource(path string) *source {
	s := &source{}
	if path == "" {
		return s
	}
	data, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: cannot read config file %s: %v", path, err))
	}
	if err := yaml.Unmarshal(data, &s.file); err != nil {
		panic(fmt.Sprintf("❌ FATAL: cannot parse config file %s: %v", path, err))
	}
	return s
}

func (s *source) lookup(key string) (string, bool) {
	if v := os.Getenv(key); v != "" {
		return v, true
	}
	if v, ok := s.file[key]; ok && v != "" {
		return v, true
	}
	return "", false
}

func (s *source) get(key, def string) string {
	if v, ok := s.lookup(key); ok {
		return v
	}
	return def
}

func (s *source) require(key string) string {
	v, ok := s.lookup(key)
	if !ok {
		panic(fmt.Sprintf("❌ FATAL: Required configuration value %s is not set", key))
	}
	return v
}

func (s *source) integer(key string, def int) int {
	if v, ok := s.lookup(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func (s *source) boolean(key string, def bool) bool {
	if v, ok := s.lookup(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func (s *source) duration(key string, def time.Duration) time.Duration {
	if v, ok := s.lookup(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
