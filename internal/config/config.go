package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN builds the postgres connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string  `mapstructure:"host_port"`
	Namespace                          string  `mapstructure:"namespace"`
	MailboxTaskQueue                   string  `mapstructure:"mailbox_task_queue"`
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
	MaxConcurrentActivityTaskPollers   int     `mapstructure:"max_concurrent_activity_task_pollers"`
}

// GmailConfig holds Gmail OAuth and push configuration
type GmailConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	// PubSubTopic is the fully qualified topic watches publish to
	// (projects/<project>/topics/<topic>)
	PubSubTopic string `mapstructure:"pubsub_topic"`
	// Credentials maps credential references to refresh tokens
	Credentials map[string]string `mapstructure:"credentials"`
	// RefreshMargin is how close to expiry a cached access token may get
	RefreshMargin time.Duration `mapstructure:"refresh_margin"`
}

// ExtractionConfig holds AI extraction configuration
type ExtractionConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	// ConfidenceThreshold is the inclusive acceptance bound for extractions
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
}

// LifecycleConfig tunes the mailbox lifecycle state machine
type LifecycleConfig struct {
	RenewalBuffer        time.Duration `mapstructure:"renewal_buffer"`
	RenewalRetryInterval time.Duration `mapstructure:"renewal_retry_interval"`
	ProcessedLabel       string        `mapstructure:"processed_label"`
	HistoryEventLimit    int           `mapstructure:"history_event_limit"`
	MaxRunDuration       time.Duration `mapstructure:"max_run_duration"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// WorkerCoreConfig holds configuration for worker-core
type WorkerCoreConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Temporal   TemporalConfig   `mapstructure:"temporal"`
	Gmail      GmailConfig      `mapstructure:"gmail"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Lifecycle  LifecycleConfig  `mapstructure:"lifecycle"`
}

// IngressConfig holds configuration for webhook-ingress
type IngressConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Temporal   TemporalConfig `mapstructure:"temporal"`
	// PushToken authenticates the provider's push delivery
	PushToken string `mapstructure:"push_token"`
}

// LoadWorkerCoreConfig loads configuration for worker-core
func LoadWorkerCoreConfig(configFile string, envPath string) (*WorkerCoreConfig, error) {
	v := configureViper("worker-core", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.mailbox_task_queue", "mailbox-ingestion")
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 50)
	v.SetDefault("temporal.worker_activities_per_second", 50)
	v.SetDefault("temporal.max_concurrent_activity_task_pollers", 10)
	v.SetDefault("gmail.refresh_margin", "5m")
	v.SetDefault("extraction.model", "gpt-4o-mini")
	v.SetDefault("extraction.confidence_threshold", 0.75)
	v.SetDefault("lifecycle.renewal_buffer", "48h")
	v.SetDefault("lifecycle.renewal_retry_interval", "5m")
	v.SetDefault("lifecycle.processed_label", "Processed/Transactions")
	v.SetDefault("lifecycle.history_event_limit", 10000)
	v.SetDefault("lifecycle.max_run_duration", "24h")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config WorkerCoreConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadIngressConfig loads configuration for webhook-ingress
func LoadIngressConfig(configFile string, envPath string) (*IngressConfig, error) {
	v := configureViper("webhook-ingress", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.mailbox_task_queue", "mailbox-ingestion")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config IngressConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("MAIL_INGESTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// This is required for viper to map env vars to config struct fields when no
// config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.mailbox_task_queue",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		"temporal.max_concurrent_activity_task_pollers",
		// Gmail
		"gmail.client_id",
		"gmail.client_secret",
		"gmail.pubsub_topic",
		"gmail.refresh_margin",
		// Extraction
		"extraction.base_url",
		"extraction.api_key",
		"extraction.model",
		"extraction.confidence_threshold",
		// Lifecycle
		"lifecycle.renewal_buffer",
		"lifecycle.renewal_retry_interval",
		"lifecycle.processed_label",
		"lifecycle.history_event_limit",
		"lifecycle.max_run_duration",
		// Ingress
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"push_token",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv layers .env files so later files override earlier ones
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate)
	}
}
