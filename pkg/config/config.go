package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the engine.
// Configuration comes from YAML file (config.yaml) with environment
// variable overrides. Secrets (API keys, passwords) must only come from
// environment variables.
type Config struct {
	Env     string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version string `yaml:"-"` // Set at load time, not from config

	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Weather  WeatherConfig  `yaml:"weather"`

	// MigrationsPath is the directory containing SQL migration files.
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"lazydrobe"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"lazydrobe"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// LLMConfig holds settings for the embedding and summarization endpoints.
// Provider selects the chat backend ("openai" or "anthropic"); embeddings
// always go through the OpenAI-compatible endpoint.
type LLMConfig struct {
	Provider        string `yaml:"provider" env:"LLM_PROVIDER" env-default:"openai"`
	Endpoint        string `yaml:"endpoint" env:"LLM_ENDPOINT" env-default:"https://api.openai.com/v1"`
	Model           string `yaml:"model" env:"LLM_MODEL" env-default:"gpt-4o-mini"`
	EmbeddingModel  string `yaml:"embedding_model" env:"LLM_EMBEDDING_MODEL" env-default:"text-embedding-3-small"`
	APIKey          string `yaml:"-" env:"LLM_API_KEY"`       // Secret - not in YAML
	AnthropicAPIKey string `yaml:"-" env:"ANTHROPIC_API_KEY"` // Secret - not in YAML
}

// PipelineConfig holds tunables for the trend and outfit pipelines.
type PipelineConfig struct {
	// ChunkSize is the character length of each summarization chunk.
	ChunkSize int `yaml:"chunk_size" env:"PIPELINE_CHUNK_SIZE" env-default:"4000"`
	// MaxClusters bounds the K considered by the text clusterer.
	MaxClusters int `yaml:"max_clusters" env:"PIPELINE_MAX_CLUSTERS" env-default:"5"`
	// ClusterSeed seeds centroid initialization for reproducible runs.
	ClusterSeed int64 `yaml:"cluster_seed" env:"PIPELINE_CLUSTER_SEED" env-default:"42"`
	// DedupThreshold is the cosine similarity above which two trend
	// statements are considered duplicates.
	DedupThreshold float64 `yaml:"dedup_threshold" env:"PIPELINE_DEDUP_THRESHOLD" env-default:"0.7"`
	// MaxOutfits caps the number of outfits per suggestion.
	MaxOutfits int `yaml:"max_outfits" env:"PIPELINE_MAX_OUTFITS" env-default:"5"`
	// ColdThresholdF: outerwear is included at or below this max temp (°F).
	ColdThresholdF float64 `yaml:"cold_threshold_f" env:"PIPELINE_COLD_THRESHOLD_F" env-default:"60"`
	// SimilarLinkLimit is how many similar-product links to attach per component.
	SimilarLinkLimit int `yaml:"similar_link_limit" env:"PIPELINE_SIMILAR_LINK_LIMIT" env-default:"3"`
}

// CatalogConfig holds the product search API settings.
type CatalogConfig struct {
	Endpoint       string `yaml:"endpoint" env:"CATALOG_ENDPOINT" env-default:"https://svcs.ebay.com/services/search/FindingService/v1"`
	AppID          string `yaml:"-" env:"EBAY_APP_ID"` // Secret - not in YAML
	EntriesPerType int    `yaml:"entries_per_type" env:"CATALOG_ENTRIES_PER_TYPE" env-default:"10"`
}

// WeatherConfig holds the forecast API settings.
type WeatherConfig struct {
	Endpoint string `yaml:"endpoint" env:"WEATHER_ENDPOINT" env-default:"https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"`
	APIKey   string `yaml:"-" env:"WEATHER_API_KEY"` // Secret - not in YAML
}

// Load reads configuration from the given YAML file with environment
// variable overrides. The version parameter is injected at build time.
func Load(path, version string) (*Config, error) {
	cfg := &Config{Version: version}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// URL returns a postgres:// URL form of the connection settings, used by
// the migration runner.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}
