// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	APIs          APIsConfig              `mapstructure:"apis"`
	Engine        EngineConfig            `mapstructure:"engine"`
	Catalog       CatalogConfig           `mapstructure:"catalog"`
	Server        ServerConfig            `mapstructure:"server"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Registry      RegistryConfig          `mapstructure:"registry"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses    []string `mapstructure:"addresses"`
	Username     string   `mapstructure:"username"`
	Password     string   `mapstructure:"password"`
	NewsIndex    string   `mapstructure:"news_index"`
	FallbackSize int      `mapstructure:"fallback_size"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds, signal cache lifetime
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

// APIsConfig holds the news and weather collaborators' endpoints and keys.
type APIsConfig struct {
	News struct {
		BaseURL  string `mapstructure:"base_url"`
		APIKey   string `mapstructure:"api_key"`
		PageSize int    `mapstructure:"page_size"`
		Timeout  int    `mapstructure:"timeout"` // milliseconds

		// FallbackFile is a local article snapshot tried after Elasticsearch.
		FallbackFile string `mapstructure:"fallback_file"`
	} `mapstructure:"news"`

	Weather struct {
		BaseURL string  `mapstructure:"base_url"`
		APIKey  string  `mapstructure:"api_key"`
		Lat     float64 `mapstructure:"lat"`
		Lon     float64 `mapstructure:"lon"`
		Timeout int     `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"weather"`

	Breaker BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig tunes the circuit breaker around outbound API calls.
type BreakerConfig struct {
	MaxRequests         uint32 `mapstructure:"max_requests"`
	Interval            int    `mapstructure:"interval"` // milliseconds
	Timeout             int    `mapstructure:"timeout"`  // milliseconds
	ConsecutiveFailures uint32 `mapstructure:"consecutive_failures"`
}

// EngineConfig tunes the substitute search.
type EngineConfig struct {
	SubstituteTopN int     `mapstructure:"substitute_top_n"`
	MinSimilarity  float64 `mapstructure:"min_similarity"`
}

// CatalogConfig selects where products and tariffs come from.
type CatalogConfig struct {
	Source       string `mapstructure:"source"` // postgres or file
	ProductsFile string `mapstructure:"products_file"`
	TariffsFile  string `mapstructure:"tariffs_file"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RateLimit      int      `mapstructure:"rate_limit"` // requests per minute per IP
	RequestTimeout int      `mapstructure:"request_timeout"`
	DebugAddress   string   `mapstructure:"debug_address"` // pprof listener; empty disables it
}

// NotificationConfig holds settings for the send-procurement-alert worker.
type NotificationConfig struct {
	AlertLabels []string `mapstructure:"alert_labels"`
	AWS         struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`
	Email struct {
		Enabled    bool     `mapstructure:"enabled"`
		FromEmail  string   `mapstructure:"from_email"`
		Recipients []string `mapstructure:"recipients"`
	} `mapstructure:"email"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RegistryConfig points at the activity registry.
type RegistryConfig struct {
	Path string `mapstructure:"path"`
}
