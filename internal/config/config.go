// Package config загружает конфигурацию клиента и сервера через viper.
// Источники по возрастанию приоритета: значения по умолчанию, файл chatsync.yaml,
// переменные окружения CHATSYNC_*, флаги командной строки.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/iudanet/chatsync/internal/client/remote/dynamostore"
	"github.com/iudanet/chatsync/internal/client/remote/s3store"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "CHATSYNC"

// FileName имя файла конфигурации без расширения
const FileName = "chatsync"

// Backend удаленное хранилище клиента
type Backend string

const (
	BackendServer   Backend = "server"
	BackendDrive    Backend = "drive"
	BackendS3       Backend = "s3"
	BackendDynamoDB Backend = "dynamodb"
)

// LogConfig настройки логирования
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // text или json
	File       string `mapstructure:"file"`   // пусто: stderr
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// ServerConfig конфигурация сервера документов
type ServerConfig struct {
	Log             LogConfig     `mapstructure:"log"`
	Address         string        `mapstructure:"address"`
	DBPath          string        `mapstructure:"db_path"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	JWTIssuer       string        `mapstructure:"jwt_issuer"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AuthRateWindow  time.Duration `mapstructure:"auth_rate_window"`
	MaxDocumentSize int64         `mapstructure:"max_document_size"`
	AuthRateLimit   int           `mapstructure:"auth_rate_limit"`
}

// DriveConfig параметры OAuth клиента Google Drive
type DriveConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
	Folder       string `mapstructure:"folder"`
}

// EncryptionConfig сквозное шифрование удаленных документов.
// Пустая фраза отключает шифрование.
type EncryptionConfig struct {
	Passphrase string `mapstructure:"passphrase"`
}

// ClientConfig конфигурация CLI клиента
type ClientConfig struct {
	Log        LogConfig          `mapstructure:"log"`
	Drive      DriveConfig        `mapstructure:"drive"`
	S3         s3store.Config     `mapstructure:"s3"`
	DynamoDB   dynamostore.Config `mapstructure:"dynamodb"`
	Encryption EncryptionConfig   `mapstructure:"encryption"`
	Backend    Backend            `mapstructure:"backend"`
	DBPath     string             `mapstructure:"db_path"`
	Server     string             `mapstructure:"server"`
	Debounce   time.Duration      `mapstructure:"debounce"`
	AutoSync   bool               `mapstructure:"auto_sync"`
}

// Длительности задаются строками, чтобы config init записал их в читаемом виде
func setLogDefaults(v *viper.Viper, file string) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", file)
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// NewServerViper создает viper с значениями по умолчанию сервера
func NewServerViper() *viper.Viper {
	v := newViper()
	setLogDefaults(v, "")
	v.SetDefault("address", ":8080")
	v.SetDefault("db_path", "chatsync-server.db")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_issuer", "chatsync")
	v.SetDefault("access_token_ttl", "15m")
	v.SetDefault("refresh_token_ttl", "720h")
	v.SetDefault("session_ttl", "720h")
	v.SetDefault("cleanup_interval", "1h")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("auth_rate_limit", 10)
	v.SetDefault("auth_rate_window", "1m")
	v.SetDefault("max_document_size", 10<<20)
	return v
}

// NewClientViper создает viper с значениями по умолчанию клиента
func NewClientViper() *viper.Viper {
	v := newViper()
	setLogDefaults(v, "chatsync.log")
	v.SetDefault("backend", string(BackendServer))
	v.SetDefault("db_path", "chatsync.db")
	v.SetDefault("server", "http://localhost:8080")
	v.SetDefault("auto_sync", true)
	v.SetDefault("debounce", "2s")
	v.SetDefault("drive.client_id", "")
	v.SetDefault("drive.client_secret", "")
	v.SetDefault("drive.redirect_url", "urn:ietf:wg:oauth:2.0:oob")
	v.SetDefault("drive.folder", "chatsync")
	for _, prefix := range []string{"s3", "dynamodb"} {
		v.SetDefault(prefix+".region", "us-east-1")
		v.SetDefault(prefix+".endpoint", "")
		v.SetDefault(prefix+".access_key", "")
		v.SetDefault(prefix+".secret_key", "")
	}
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.use_path_style", false)
	v.SetDefault("dynamodb.table", "chatsync")
	v.SetDefault("dynamodb.account", "")
	v.SetDefault("encryption.passphrase", "")
	return v
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// readFile читает явно указанный файл либо ищет chatsync.yaml в текущем каталоге
// и в пользовательском каталоге конфигурации. Отсутствие файла не ошибка.
func readFile(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, FileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// LoadServer читает конфигурацию сервера
func LoadServer(v *viper.Viper, file string) (*ServerConfig, error) {
	if err := readFile(v, file); err != nil {
		return nil, err
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет обязательные параметры сервера
func (c *ServerConfig) Validate() error {
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret must be at least 32 characters (set %s_JWT_SECRET)", EnvPrefix)
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 || c.SessionTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	return nil
}

// LoadClient читает конфигурацию клиента
func LoadClient(v *viper.Viper, file string) (*ClientConfig, error) {
	if err := readFile(v, file); err != nil {
		return nil, err
	}

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет параметры выбранного хранилища
func (c *ClientConfig) Validate() error {
	switch c.Backend {
	case BackendServer:
		if c.Server == "" {
			return errors.New("server url is required for server backend")
		}
	case BackendDrive:
		if c.Drive.ClientID == "" {
			return errors.New("drive.client_id is required for drive backend")
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return errors.New("s3.bucket is required for s3 backend")
		}
	case BackendDynamoDB:
		if c.DynamoDB.Table == "" || c.DynamoDB.Account == "" {
			return errors.New("dynamodb.table and dynamodb.account are required for dynamodb backend")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}

// WriteDefaults записывает текущие настройки viper в YAML файл.
// Существующий файл не перезаписывается без force.
func WriteDefaults(v *viper.Viper, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	out, err := yaml.Marshal(v.AllSettings())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	// в файле могут быть секреты
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
