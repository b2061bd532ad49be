package config

import (
	"errors"
	"os"
	"strings"
)

// Config holds all pipeline settings, populated from environment variables.
type Config struct {
	DataDir   string
	SitesFile string
	Category  string
	// Subperiods restricts the run to the named sub-period directories.
	// Empty means every directory under the category root.
	Subperiods []string
	// CRSFile points at the grid projection descriptor. Empty means locate
	// the single .prj file in the category root.
	CRSFile   string
	SourceCRS string

	OutputDir    string
	OutputPrefix string

	LogLevel  string
	LogFormat string

	// MetricsAddr enables the observability HTTP server when non-empty.
	MetricsAddr string

	// SQLitePath enables the SQLite sink when non-empty.
	SQLitePath string

	// Kafka sink configuration, disabled by default.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		DataDir:    os.Getenv("DATA_DIR"),
		SitesFile:  os.Getenv("SITES_FILE"),
		Category:   envOrDefault("CATEGORY", "precipitation"),
		Subperiods: splitList(os.Getenv("SUBPERIODS")),
		CRSFile:    os.Getenv("CRS_FILE"),
		SourceCRS:  envOrDefault("SOURCE_CRS", "+proj=longlat +datum=WGS84 +no_defs"),

		OutputDir:    envOrDefault("OUTPUT_DIR", "output"),
		OutputPrefix: envOrDefault("OUTPUT_PREFIX", "extraction"),

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),

		MetricsAddr: os.Getenv("METRICS_ADDR"),
		SQLitePath:  os.Getenv("SQLITE_PATH"),

		KafkaBrokers: splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "climate-extractions"),
		KafkaEnabled: kafkaEnabled,
	}

	if cfg.DataDir == "" {
		return nil, errors.New("DATA_DIR is required")
	}
	if cfg.SitesFile == "" {
		return nil, errors.New("SITES_FILE is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
