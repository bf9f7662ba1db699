// Package config builds runtime configuration from the environment so main
// stays lean. A .env file is honored when present.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	pstrings "hireflow/pkg/platform/strings"
)

// Store selects the event log backend.
type Store string

const (
	StoreMemory   Store = "memory"
	StoreCSV      Store = "csv"
	StorePostgres Store = "postgres"
)

// Redis captures connection tuning for the optional sequence generator.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Config is the full runtime configuration for the server.
type Config struct {
	Addr        string
	StoreKind   Store
	DatabaseURL string
	StorageDir  string

	Redis Redis

	KafkaBrokers []string
	KafkaTopic   string

	AuditBuffer int

	// UploadActor is recorded as uploaded_by on document events until real
	// authentication replaces the single implicit actor.
	UploadActor string
}

// FromEnv loads .env (best effort) and reads configuration from environment
// variables with development defaults.
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := Config{
		Addr:        getenv("HIREFLOW_ADDR", ":8080"),
		StoreKind:   Store(getenv("HIREFLOW_STORE", string(StoreCSV))),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		StorageDir:  getenv("HIREFLOW_STORAGE_DIR", "storage"),
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getint("REDIS_POOL_SIZE", 10),
			MinIdleConns: getint("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getdur("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getdur("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getdur("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		KafkaTopic:  getenv("KAFKA_AUDIT_TOPIC", "hireflow.audit"),
		AuditBuffer: getint("AUDIT_BUFFER", 256),
		UploadActor: getenv("HIREFLOW_UPLOAD_ACTOR", "HR"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = pstrings.DedupeAndTrim(strings.Split(brokers, ","))
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getdur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
