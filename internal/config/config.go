// Package config loads the application configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Conf holds the configuration loaded by Init.
var Conf Config

// Config mirrors configs/config.yaml.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Log           LogConfig           `mapstructure:"log"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Resources     ResourcesConfig     `mapstructure:"resources"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Report        ReportConfig        `mapstructure:"report"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// JWTConfig holds session token settings.
type JWTConfig struct {
	Secret                 string `mapstructure:"secret"`
	AccessTokenExpireHours int    `mapstructure:"access_token_expire_hours"`
	RefreshTokenExpireDays int    `mapstructure:"refresh_token_expire_days"`
}

// ResourcesConfig points at the read-only artifacts loaded once at startup.
type ResourcesConfig struct {
	ModelPath        string `mapstructure:"model_path"`
	CorpusPath       string `mapstructure:"corpus_path"`
	KnowledgeBase    string `mapstructure:"knowledge_base_path"`
	TranslationsPath string `mapstructure:"translations_path"`
	TopK             int    `mapstructure:"top_k"`
}

// AuthConfig selects the credential store.
// Store is "file" (flat JSON keyed by username) or "mysql".
type AuthConfig struct {
	Store     string `mapstructure:"store"`
	UsersFile string `mapstructure:"users_file"`
}

// DatabaseConfig holds MySQL and Redis connection settings.
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

// MySQLConfig is used by the mysql credential store and the audit consumer.
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig backs the token blacklist. An empty Addr keeps revocations in memory.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ElasticsearchConfig enables loading the knowledge base from an index.
type ElasticsearchConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Addresses string `mapstructure:"addresses"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	IndexName string `mapstructure:"index_name"`
	// Seed uploads the file knowledge base into the index on startup.
	Seed bool `mapstructure:"seed"`
}

// MinIOConfig enables archiving generated reports.
type MinIOConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	Endpoint           string `mapstructure:"endpoint"`
	AccessKeyID        string `mapstructure:"access_key_id"`
	SecretAccessKey    string `mapstructure:"secret_access_key"`
	UseSSL             bool   `mapstructure:"use_ssl"`
	BucketName         string `mapstructure:"bucket_name"`
	PresignExpireHours int    `mapstructure:"presign_expire_hours"`
}

// KafkaConfig enables screening audit events.
type KafkaConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// ReportConfig controls the downloadable document.
type ReportConfig struct {
	Title    string `mapstructure:"title"`
	Filename string `mapstructure:"filename"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("jwt.access_token_expire_hours", 24)
	v.SetDefault("jwt.refresh_token_expire_days", 7)
	v.SetDefault("resources.model_path", "data/gramhealth_model.json")
	v.SetDefault("resources.corpus_path", "data/processed_dataset.csv")
	v.SetDefault("resources.knowledge_base_path", "data/knowledge_base.json")
	v.SetDefault("resources.translations_path", "data/symptom.json")
	v.SetDefault("resources.top_k", 3)
	v.SetDefault("auth.store", "file")
	v.SetDefault("auth.users_file", "users.json")
	v.SetDefault("elasticsearch.index_name", "gramhealth_knowledge_base")
	v.SetDefault("minio.bucket_name", "gramhealth-reports")
	v.SetDefault("minio.presign_expire_hours", 1)
	v.SetDefault("kafka.topic", "gramhealth-screenings")
	v.SetDefault("kafka.group_id", "gramhealth-audit-consumer")
	v.SetDefault("report.title", "GramHealth AI - Patient Report")
	v.SetDefault("report.filename", "GramHealth_Report.pdf")
}

// Load reads configPath into a Config. Keys can be overridden with
// GRAMHEALTH_-prefixed environment variables, e.g. GRAMHEALTH_JWT_SECRET.
func Load(configPath string) (Config, error) {
	var cfg Config
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("gramhealth")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Init loads configPath into Conf and panics on failure.
func Init(configPath string) {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	Conf = cfg
}
