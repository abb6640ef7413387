// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml over it
// and applies environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetDefault("engine.min_similarity", 0.10)
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	paths := []string{".env", "../.env", "../../.env", "../../../.env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory to the first go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			if expanded := os.ExpandEnv(strVal); expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills secrets that were left empty in YAML from well-known env vars.
func overrideEmptyConfig(cfg *Config) {
	setIfEmpty(&cfg.APIs.News.APIKey, "NEWS_API_KEY")
	setIfEmpty(&cfg.APIs.Weather.APIKey, "WEATHER_API_KEY")
	setIfEmpty(&cfg.Database.Postgres.User, "DB_USER")
	setIfEmpty(&cfg.Database.Postgres.Password, "DB_PASSWORD")
	setIfEmpty(&cfg.Notifications.SNS.TopicARN, "PROCUREMENT_ALERT_TOPIC_ARN")
}

func setIfEmpty(field *string, envKey string) {
	if *field != "" {
		return
	}
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "procurement-workers"
	}

	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.NewsIndex == "" {
		cfg.Database.Elasticsearch.NewsIndex = "news-articles"
	}
	if cfg.Database.Elasticsearch.FallbackSize == 0 {
		cfg.Database.Elasticsearch.FallbackSize = 20
	}
	if cfg.Database.Redis.TTL == 0 {
		cfg.Database.Redis.TTL = 900
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = 5
		}
		if worker.Timeout == 0 {
			worker.Timeout = 30000
		}
		if worker.MaxRetries == 0 {
			worker.MaxRetries = 3
		}
		cfg.Workers[key] = worker
	}

	if cfg.APIs.News.BaseURL == "" {
		cfg.APIs.News.BaseURL = "https://newsapi.org"
	}
	if cfg.APIs.News.PageSize == 0 {
		cfg.APIs.News.PageSize = 20
	}
	if cfg.APIs.News.Timeout == 0 {
		cfg.APIs.News.Timeout = 5000
	}
	if cfg.APIs.Weather.BaseURL == "" {
		cfg.APIs.Weather.BaseURL = "http://api.openweathermap.org"
	}
	if cfg.APIs.Weather.Lat == 0 && cfg.APIs.Weather.Lon == 0 {
		cfg.APIs.Weather.Lat = 36.3729
		cfg.APIs.Weather.Lon = -94.2088
	}
	if cfg.APIs.Weather.Timeout == 0 {
		cfg.APIs.Weather.Timeout = 5000
	}
	if cfg.APIs.Breaker.MaxRequests == 0 {
		cfg.APIs.Breaker.MaxRequests = 1
	}
	if cfg.APIs.Breaker.Timeout == 0 {
		cfg.APIs.Breaker.Timeout = 30000
	}
	if cfg.APIs.Breaker.ConsecutiveFailures == 0 {
		cfg.APIs.Breaker.ConsecutiveFailures = 5
	}

	if cfg.Engine.SubstituteTopN == 0 {
		cfg.Engine.SubstituteTopN = 3
	}

	if cfg.Catalog.Source == "" {
		cfg.Catalog.Source = "postgres"
	}
	if cfg.Catalog.ProductsFile == "" {
		cfg.Catalog.ProductsFile = "data/products.json"
	}
	if cfg.Catalog.TariffsFile == "" {
		cfg.Catalog.TariffsFile = "data/tariffs.json"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 120
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 15000
	}

	if len(cfg.Notifications.AlertLabels) == 0 {
		cfg.Notifications.AlertLabels = []string{"Use Substitute", "Bulk Order"}
	}
	if cfg.Notifications.AWS.Region == "" {
		cfg.Notifications.AWS.Region = "us-east-1"
	}

	if cfg.Registry.Path == "" {
		cfg.Registry.Path = "configs/activity-registry.json"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required")
	}

	switch cfg.Catalog.Source {
	case "postgres":
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required")
		}
	case "file":
	default:
		return fmt.Errorf("catalog.source must be postgres or file, got %q", cfg.Catalog.Source)
	}

	if cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}
	if cfg.Engine.MinSimilarity < 0 || cfg.Engine.MinSimilarity >= 1 {
		return fmt.Errorf("engine.min_similarity must be in [0, 1)")
	}
	if cfg.Server.DebugAddress != "" && cfg.Server.DebugAddress == cfg.Server.Address {
		return fmt.Errorf("server.debug_address must differ from server.address")
	}
	if cfg.Notifications.SNS.Enabled && cfg.Notifications.SNS.TopicARN == "" {
		return fmt.Errorf("notifications.sns.topic_arn is required when sns is enabled")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig returns the worker's settings, or the defaults when the task type is not configured.
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}
	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30000,
		MaxRetries:    3,
	}
}

// IsWorkerEnabled reports whether a task type should be started. Unlisted workers are enabled.
func IsWorkerEnabled(cfg *Config, workerName string) bool {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker.Enabled
	}
	return true
}
