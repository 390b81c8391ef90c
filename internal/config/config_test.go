package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWorkerCoreConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *WorkerCoreConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
temporal:
  host_port: "temporal.example.com:7233"
  namespace: "production"
  mailbox_task_queue: "custom-queue"
  max_concurrent_activity_execution_size: 100
  worker_activities_per_second: 100
gmail:
  client_id: "client-id"
  client_secret: "client-secret"
  pubsub_topic: "projects/p/topics/mailbox-changes"
  refresh_margin: "10m"
  credentials:
    cred-main: "refresh-token-1"
extraction:
  base_url: "https://llm.example.com/v1"
  api_key: "sk-test"
  model: "gpt-4o"
  confidence_threshold: 0.8
lifecycle:
  renewal_buffer: "24h"
  renewal_retry_interval: "10m"
  processed_label: "Custom/Label"
  history_event_limit: 5000
  max_run_duration: "12h"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *WorkerCoreConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "temporal.example.com:7233", cfg.Temporal.HostPort)
				assert.Equal(t, "production", cfg.Temporal.Namespace)
				assert.Equal(t, "custom-queue", cfg.Temporal.MailboxTaskQueue)
				assert.Equal(t, 100, cfg.Temporal.MaxConcurrentActivityExecutionSize)
				assert.Equal(t, 100.0, cfg.Temporal.WorkerActivitiesPerSecond)
				assert.Equal(t, "client-id", cfg.Gmail.ClientID)
				assert.Equal(t, "projects/p/topics/mailbox-changes", cfg.Gmail.PubSubTopic)
				assert.Equal(t, 10*time.Minute, cfg.Gmail.RefreshMargin)
				assert.Equal(t, "refresh-token-1", cfg.Gmail.Credentials["cred-main"])
				assert.Equal(t, "https://llm.example.com/v1", cfg.Extraction.BaseURL)
				assert.Equal(t, "gpt-4o", cfg.Extraction.Model)
				assert.Equal(t, 0.8, cfg.Extraction.ConfidenceThreshold)
				assert.Equal(t, 24*time.Hour, cfg.Lifecycle.RenewalBuffer)
				assert.Equal(t, 10*time.Minute, cfg.Lifecycle.RenewalRetryInterval)
				assert.Equal(t, "Custom/Label", cfg.Lifecycle.ProcessedLabel)
				assert.Equal(t, 5000, cfg.Lifecycle.HistoryEventLimit)
				assert.Equal(t, 12*time.Hour, cfg.Lifecycle.MaxRunDuration)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
gmail:
  client_id: "client-id"
  client_secret: "client-secret"
  pubsub_topic: "projects/p/topics/mailbox-changes"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *WorkerCoreConfig) {
				// Check defaults
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "localhost:7233", cfg.Temporal.HostPort)
				assert.Equal(t, "default", cfg.Temporal.Namespace)
				assert.Equal(t, "mailbox-ingestion", cfg.Temporal.MailboxTaskQueue)
				assert.Equal(t, 50, cfg.Temporal.MaxConcurrentActivityExecutionSize)
				assert.Equal(t, 5*time.Minute, cfg.Gmail.RefreshMargin)
				assert.Equal(t, "gpt-4o-mini", cfg.Extraction.Model)
				assert.Equal(t, 0.75, cfg.Extraction.ConfidenceThreshold)
				assert.Equal(t, 48*time.Hour, cfg.Lifecycle.RenewalBuffer)
				assert.Equal(t, 5*time.Minute, cfg.Lifecycle.RenewalRetryInterval)
				assert.Equal(t, "Processed/Transactions", cfg.Lifecycle.ProcessedLabel)
				assert.Equal(t, 10000, cfg.Lifecycle.HistoryEventLimit)
				assert.Equal(t, 24*time.Hour, cfg.Lifecycle.MaxRunDuration)
			},
		},
		{
			name:        "missing config file",
			configFile:  "",
			expectError: false,
			validate:    nil,
		},
		{
			name: "invalid yaml",
			configFile: `
				database:
				  host: localhost
				  port: invalid
			`,
			expectError: true, // Invalid port should cause unmarshal error
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			var configFile string

			if tt.configFile != "" {
				configFile = filepath.Join(tmpDir, "config.yaml")
				err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
				require.NoError(t, err)
			} else {
				configFile = filepath.Join(tmpDir, "nonexistent.yaml")
			}

			cfg, err := LoadWorkerCoreConfig(configFile, tmpDir)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				if tt.validate != nil {
					require.NoError(t, err)
					require.NotNil(t, cfg)
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadIngressConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *IngressConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 20
  write_timeout: 20
  idle_timeout: 180
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
temporal:
  host_port: "localhost:7233"
  namespace: "production"
push_token: "shared-secret"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *IngressConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 20, cfg.Server.ReadTimeout)
				assert.Equal(t, 180, cfg.Server.IdleTimeout)
				assert.Equal(t, "production", cfg.Temporal.Namespace)
				assert.Equal(t, "shared-secret", cfg.PushToken)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
`,
			expectError: false,
			validate: func(t *testing.T, cfg *IngressConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15, cfg.Server.ReadTimeout)
				assert.Equal(t, 15, cfg.Server.WriteTimeout)
				assert.Equal(t, 60, cfg.Server.IdleTimeout)
				assert.Equal(t, "mailbox-ingestion", cfg.Temporal.MailboxTaskQueue)
			},
		},
		{
			name:        "missing config file",
			configFile:  "",
			expectError: false,
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			var configFile string

			if tt.configFile != "" {
				configFile = filepath.Join(tmpDir, "config.yaml")
				err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
				require.NoError(t, err)
			} else {
				configFile = filepath.Join(tmpDir, "nonexistent.yaml")
			}

			cfg, err := LoadIngressConfig(configFile, tmpDir)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				if tt.validate != nil {
					require.NoError(t, err)
					require.NotNil(t, cfg)
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "testuser",
		Password: "testpass",
		DBName:   "testdb",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		cfg.DSN())
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	err := os.MkdirAll(envDir, 0750)
	require.NoError(t, err)

	// .env values carry the MAIL_INGESTOR_ prefix viper binds against
	envFile := filepath.Join(envDir, ".env")
	envContent := `MAIL_INGESTOR_DEBUG=true
MAIL_INGESTOR_DATABASE_HOST=env-host
MAIL_INGESTOR_DATABASE_PORT=3306
MAIL_INGESTOR_DATABASE_USER=env-user
MAIL_INGESTOR_DATABASE_PASSWORD=env-pass
MAIL_INGESTOR_DATABASE_DBNAME=env-db
MAIL_INGESTOR_DATABASE_SSLMODE=require
`
	err = os.WriteFile(envFile, []byte(envContent), 0600)
	require.NoError(t, err)

	// The config file carries different values to prove env wins
	configPath := filepath.Join(tmpDir, "config.yaml")
	configFile := `
debug: false
database:
  host: file-host
  port: 5432
  user: file-user
  password: file-pass
  dbname: file-db
  sslmode: disable
`
	err = os.WriteFile(configPath, []byte(configFile), 0600)
	require.NoError(t, err)

	cfg, err := LoadIngressConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "env-user", cfg.Database.User)
	assert.Equal(t, "env-pass", cfg.Database.Password)
	assert.Equal(t, "env-db", cfg.Database.DBName)
	assert.Equal(t, "require", cfg.Database.SSLMode)
}
