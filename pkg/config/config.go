// Package config loads and validates searchindex configuration from YAML files
// with environment-variable overrides. It provides typed structs for the index
// builder and for every external system it talks to (Kafka, Redis, Postgres).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is the top-level application configuration.
type Config struct {
	Index    IndexConfig    `yaml:"index"`
	Storage  StorageConfig  `yaml:"storage"`
	Postgres PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// IndexConfig controls the search index builder.
type IndexConfig struct {
	// Language is the html_search_language style code, e.g. "en" or "pt_BR".
	Language   string `yaml:"language" validate:"required"`
	EnvVersion string `yaml:"envVersion" validate:"required"`
	// Format names the structured snapshot encoding.
	Format        string `yaml:"format" validate:"oneof=msgpack pickle"`
	Workers       int    `yaml:"workers" validate:"min=1,max=256"`
	StemCacheSize int    `yaml:"stemCacheSize" validate:"min=1"`
	// ScorerPath points at an optional JavaScript scoring file shipped verbatim.
	ScorerPath string `yaml:"scorerPath"`
	// JSStemmerDir holds base-stemmer.js and <language>-stemmer.js files.
	JSStemmerDir     string `yaml:"jsStemmerDir"`
	SnapshotName     string `yaml:"snapshotName" validate:"required"`
	ArtifactName     string `yaml:"artifactName" validate:"required"`
	LanguageDataName string `yaml:"languageDataName" validate:"required"`
}

// StorageConfig selects where snapshots and artifacts are persisted.
type StorageConfig struct {
	Backend     string        `yaml:"backend" validate:"oneof=file redis"`
	Dir         string        `yaml:"dir" validate:"required_if=Backend file"`
	RedisPrefix string        `yaml:"redisPrefix"`
	RedisTTL    time.Duration `yaml:"redisTTL"`
}

// PostgresConfig holds the connection parameters of the cross-reference
// object registry.
type PostgresConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// KafkaConfig holds Kafka broker and topic settings.
type KafkaConfig struct {
	Enabled       bool        `yaml:"enabled"`
	Brokers       []string    `yaml:"brokers"`
	ConsumerGroup string      `yaml:"consumerGroup"`
	Topics        KafkaTopics `yaml:"topics"`
}

// KafkaTopics maps logical topic names to their Kafka topic strings.
type KafkaTopics struct {
	DocLifecycle  string `yaml:"docLifecycle"`
	IndexComplete string `yaml:"indexComplete"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"poolSize"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port" validate:"min=0,max=65535"`
}

// Load reads a YAML config file (if provided), applies environment-variable
// overrides and validates the result. Missing values keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct-tag constraints on every section.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Default returns a Config suitable for a local documentation build.
func Default() *Config {
	return &Config{
		Index: IndexConfig{
			Language:         "en",
			EnvVersion:       "1",
			Format:           "msgpack",
			Workers:          4,
			StemCacheSize:    65536,
			SnapshotName:     "searchindex.msgpack",
			ArtifactName:     "searchindex.js",
			LanguageDataName: "language_data.js",
		},
		Storage: StorageConfig{
			Backend:     "file",
			Dir:         "_build/search",
			RedisPrefix: "searchindex:",
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "docs",
			User:            "docs",
			Password:        "localdev",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:       []string{"localhost:9092"},
			ConsumerGroup: "searchindex",
			Topics: KafkaTopics{
				DocLifecycle:  "docs-lifecycle",
				IndexComplete: "index.complete",
			},
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Port: 9090,
		},
	}
}

// applyEnvOverrides reads SI_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SI_INDEX_LANGUAGE"); v != "" {
		cfg.Index.Language = v
	}
	if v := os.Getenv("SI_INDEX_ENV_VERSION"); v != "" {
		cfg.Index.EnvVersion = v
	}
	if v := os.Getenv("SI_INDEX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Index.Workers = n
		}
	}
	if v := os.Getenv("SI_INDEX_SCORER_PATH"); v != "" {
		cfg.Index.ScorerPath = v
	}
	if v := os.Getenv("SI_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("SI_STORAGE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("SI_POSTGRES_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Postgres.Enabled = b
		}
	}
	if v := os.Getenv("SI_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("SI_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.Port = port
		}
	}
	if v := os.Getenv("SI_POSTGRES_DATABASE"); v != "" {
		cfg.Postgres.Database = v
	}
	if v := os.Getenv("SI_POSTGRES_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("SI_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("SI_KAFKA_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Kafka.Enabled = b
		}
	}
	if v := os.Getenv("SI_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("SI_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("SI_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("SI_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SI_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
