package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Admin    AdminConfig
	PDF      PDFConfig
	CORS     CORSConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	// Для 'single', если не пуст, используется первый адрес из списка.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single' (для обратной совместимости).
	// Используется, если Mode="single" и Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	// MaxRetries: Максимальное количество попыток переподключения (-1 - бесконечно). По умолчанию 0 (без ретраев).
	MaxRetries int `mapstructure:"max_retries"`

	// MinRetryBackoff: Минимальный интервал между попытками (в миллисекундах). По умолчанию 8ms.
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`

	// MaxRetryBackoff: Максимальный интервал между попытками (в миллисекундах). По умолчанию 512ms.
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// StorageConfig содержит настройки объектного хранилища (S3-совместимого)
type StorageConfig struct {
	// Endpoint: Адрес S3-совместимого хранилища (Supabase Storage, MinIO).
	// Пустое значение означает стандартный AWS S3.
	Endpoint string `mapstructure:"endpoint"`

	Region string `mapstructure:"region"`

	// SignaturesBucket: Бакет для PNG-изображений подписей
	SignaturesBucket string `mapstructure:"signatures_bucket"`

	// DocumentsBucket: Бакет для итоговых PDF-документов
	DocumentsBucket string `mapstructure:"documents_bucket"`

	// SignedURLTTLSec: Время жизни подписанных ссылок в секундах. По умолчанию 300.
	SignedURLTTLSec int `mapstructure:"signed_url_ttl_sec"`
}

// AdminConfig содержит настройки доступа к административным эндпоинтам
type AdminConfig struct {
	// APIKey: Ключ в открытом виде, сравнивается за константное время
	APIKey string `mapstructure:"api_key"`

	// APIKeyHash: bcrypt-хеш ключа. Если задан, имеет приоритет над APIKey.
	APIKeyHash string `mapstructure:"api_key_hash"`
}

// PDFConfig содержит настройки рендера документов
type PDFConfig struct {
	OrgName          string `mapstructure:"org_name"`
	OrgTagline       string `mapstructure:"org_tagline"`
	OrgAddress       string `mapstructure:"org_address"`
	DocumentTitle    string `mapstructure:"document_title"`
	TemplatePath     string `mapstructure:"template_path"`
	DefaultLocale    string `mapstructure:"default_locale"`
	ContentVersion   string `mapstructure:"content_version"`
	RenderTimeoutSec int    `mapstructure:"render_timeout_sec"`
	CacheTTLSec      int    `mapstructure:"cache_ttl_sec"`
}

// CORSConfig содержит настройки CORS
type CORSConfig struct {
	// AllowedOrigin: Origin фронтенда. "*" разрешает всех.
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Устанавливаем значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("storage.region", "us-east-1")
	vip.SetDefault("storage.signatures_bucket", "signatures")
	vip.SetDefault("storage.documents_bucket", "signed-waivers")
	vip.SetDefault("storage.signed_url_ttl_sec", 300)
	vip.SetDefault("pdf.org_name", "Temple Underground BJJ")
	vip.SetDefault("pdf.document_title", "Liability Waiver & Release")
	vip.SetDefault("pdf.template_path", "templates/waiver.html")
	vip.SetDefault("pdf.default_locale", "en")
	vip.SetDefault("pdf.content_version", "waiver.v1")
	vip.SetDefault("pdf.render_timeout_sec", 30)
	vip.SetDefault("pdf.cache_ttl_sec", 900)
	vip.SetDefault("cors.allowed_origin", "*")

	// 2. Привязываем переменные окружения ЯВНО
	// Привязка для секции Database
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	// Привязка для секции Redis
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS") // Для массива строк
	vip.BindEnv("redis.addr", "REDIS_ADDR")   // Для одиночной строки
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// Привязка для секции Storage
	vip.BindEnv("storage.endpoint", "STORAGE_ENDPOINT")
	vip.BindEnv("storage.region", "STORAGE_REGION")
	vip.BindEnv("storage.signatures_bucket", "STORAGE_SIGNATURES_BUCKET")
	vip.BindEnv("storage.documents_bucket", "STORAGE_DOCUMENTS_BUCKET")
	vip.BindEnv("storage.signed_url_ttl_sec", "STORAGE_SIGNED_URL_TTL_SEC")

	// Привязка для секции Admin
	vip.BindEnv("admin.api_key", "ADMIN_API_KEY")
	vip.BindEnv("admin.api_key_hash", "ADMIN_API_KEY_HASH")

	// Привязка для секции PDF
	vip.BindEnv("pdf.org_name", "PDF_ORG_NAME")
	vip.BindEnv("pdf.org_tagline", "PDF_ORG_TAGLINE")
	vip.BindEnv("pdf.org_address", "PDF_ORG_ADDRESS")
	vip.BindEnv("pdf.document_title", "PDF_DOCUMENT_TITLE")
	vip.BindEnv("pdf.template_path", "PDF_TEMPLATE_PATH")
	vip.BindEnv("pdf.default_locale", "PDF_DEFAULT_LOCALE")
	vip.BindEnv("pdf.content_version", "PDF_CONTENT_VERSION")
	vip.BindEnv("pdf.render_timeout_sec", "PDF_RENDER_TIMEOUT_SEC")
	vip.BindEnv("pdf.cache_ttl_sec", "PDF_CACHE_TTL_SEC")

	// Привязка для секции CORS
	vip.BindEnv("cors.allowed_origin", "CORS_ALLOWED_ORIGIN")

	// Привязка для Server
	vip.BindEnv("server.port", "SERVER_PORT")

	// 3. Устанавливаем путь к файлу конфигурации
	if configPath != "" {
		vip.SetConfigFile(configPath)
		// 4. Пытаемся прочитать файл конфигурации (не страшно, если его нет, т.к. есть BindEnv)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 5. Анмаршалим конфигурацию (Viper объединит значения из файла и привязанных env vars)
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Логирование конфигурации (только в debug режиме)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Port: %s", cfg.Database.Port)
		log.Printf("Database User: %s", cfg.Database.User)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Database SSLMode: %s", cfg.Database.SSLMode)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("Storage Endpoint: %s", cfg.Storage.Endpoint)
		log.Printf("Storage Buckets: %s, %s", cfg.Storage.SignaturesBucket, cfg.Storage.DocumentsBucket)
		log.Printf("Admin API Key Set: %t", cfg.Admin.APIKey != "" || cfg.Admin.APIKeyHash != "")
		log.Printf("PDF Template Path: %s", cfg.PDF.TemplatePath)
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("-----------------------------------------")
	}

	// 7. Проверка обязательных параметров
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if cfg.Admin.APIKey == "" && cfg.Admin.APIKeyHash == "" {
		return nil, fmt.Errorf("admin API key is required in config (check ADMIN_API_KEY or ADMIN_API_KEY_HASH env vars)")
	}
	// Пароли для БД и Redis обязательны вне debug-режима
	ginMode := vip.GetString("GIN_MODE")
	if ginMode != "debug" {
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("database password is required in production mode (check DATABASE_PASSWORD env var)")
		}
		isRedisConfigured := len(cfg.Redis.Addrs) > 0 || cfg.Redis.Addr != ""
		if isRedisConfigured && cfg.Redis.Password == "" {
			log.Println("Warning: Redis is configured but REDIS_PASSWORD is not set in a non-debug environment.")
		}
	}

	return &cfg, nil
}
