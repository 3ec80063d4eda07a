package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env       string          `mapstructure:"env"`
	Server    ServerConfig    `mapstructure:"server"`
	Grpc      GrpcConfig      `mapstructure:"grpc"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Messaging MessagingConfig `mapstructure:"messaging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         string   `mapstructure:"port"`
	ReadTimeout  int      `mapstructure:"read_timeout_seconds"`
	WriteTimeout int      `mapstructure:"write_timeout_seconds"`
	IdleTimeout  int      `mapstructure:"idle_timeout_seconds"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

type GrpcConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            string `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time_seconds"`
}

type AuthConfig struct {
	JWTSecret         string `mapstructure:"jwt_secret"`
	TokenTTLMinutes   int    `mapstructure:"token_ttl_minutes"`
	BcryptCost        int    `mapstructure:"bcrypt_cost"`
	SingleRoleSession bool   `mapstructure:"single_role_session"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	JSON       bool   `mapstructure:"json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// MessagingConfig selects where FeedbackSubmitted events go: "nats", "kafka" or "none".
type MessagingConfig struct {
	Driver string      `mapstructure:"driver"`
	NATS   NATSConfig  `mapstructure:"nats"`
	Kafka  KafkaConfig `mapstructure:"kafka"`
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout_seconds", 10)
	v.SetDefault("server.write_timeout_seconds", 15)
	v.SetDefault("server.idle_timeout_seconds", 60)

	v.SetDefault("grpc.port", "9090")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "feedback_system")
	v.SetDefault("database.ssl_mode", "disable")

	v.SetDefault("auth.token_ttl_minutes", 60)
	v.SetDefault("auth.bcrypt_cost", 12)
	v.SetDefault("auth.single_role_session", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "app.log")
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 2)

	v.SetDefault("messaging.driver", "none")
	v.SetDefault("messaging.nats.subject", "feedback.submitted")
	v.SetDefault("messaging.kafka.topic", "feedback-submitted")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "otel-collector.infra.svc.cluster.local:4317")
}

func Load() (*Config, error) {
	env := os.Getenv("ENV")
	if env == "" {
		env = "local"
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	v.SetConfigType("yaml")
	v.AddConfigPath("/configs")   // Kubernetes mount
	v.AddConfigPath("./configs")  // repo root
	v.AddConfigPath("../configs") // IDE from cmd/

	// Config file is optional - ENV variables still apply
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// ENV variables take precedence over the config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"env":                "ENV",
		"database.host":      "DB_HOST",
		"database.port":      "DB_PORT",
		"database.user":      "DB_USER",
		"database.password":  "DB_PASSWORD",
		"database.name":      "DB_NAME",
		"auth.jwt_secret":    "SECRET_KEY",
		"log.file":           "LOG_FILE",
		"telemetry.endpoint": "OTEL_EXPORTER_OTLP_ENDPOINT",
	}
	for key, envName := range bindings {
		if err := v.BindEnv(key, envName); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", envName, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Env = env

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret (SECRET_KEY) must be set")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("auth.token_ttl_minutes must be positive")
	}
	switch c.Messaging.Driver {
	case "none", "nats", "kafka":
	default:
		return fmt.Errorf("messaging.driver must be one of none, nats, kafka; got %q", c.Messaging.Driver)
	}
	return nil
}
