package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	globalConfig Config
	once         sync.Once
)

// Config 扁平化配置结构体
type Config struct {
	// 服务器配置
	ServerHost         string        `mapstructure:"server_host"`
	ServerPort         int           `mapstructure:"server_port"`
	ServerDomain       string        `mapstructure:"server_domain"`
	ServerReadTimeout  time.Duration `mapstructure:"server_read_timeout"`
	ServerWriteTimeout time.Duration `mapstructure:"server_write_timeout"`
	ServerIdleTimeout  time.Duration `mapstructure:"server_idle_timeout"`

	// 数据库配置
	DBType            string `mapstructure:"db_type"`
	DBHost            string `mapstructure:"db_host"`
	DBPort            int    `mapstructure:"db_port"`
	DBUsername        string `mapstructure:"db_username"`
	DBPassword        string `mapstructure:"db_password"`
	DBName            string `mapstructure:"db_name"`
	DBFilePath        string `mapstructure:"db_file_path"`
	DBMaxOpenConns    int    `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns    int    `mapstructure:"db_max_idle_conns"`
	DBConnMaxLifetime int    `mapstructure:"db_conn_max_lifetime"`

	// 管理后台认证配置
	// AdminKeyHash 为 argon2id 哈希；AdminKey 仅用于开发环境明文回退
	AdminKey        string        `mapstructure:"admin_key"`
	AdminKeyHash    string        `mapstructure:"admin_key_hash"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	JWTExpiresIn    time.Duration `mapstructure:"jwt_expires_in"`
	LoginMaxRetries int           `mapstructure:"login_max_retries"`
	LoginLockout    time.Duration `mapstructure:"login_lockout"`

	// 限流配置
	RateLimitApiRPS     float64       `mapstructure:"rate_limit_api_rps"`
	RateLimitApiBurst   int           `mapstructure:"rate_limit_api_burst"`
	RateLimitImageRPS   float64       `mapstructure:"rate_limit_image_rps"`
	RateLimitImageBurst int           `mapstructure:"rate_limit_image_burst"`
	RateLimitExpireTime time.Duration `mapstructure:"rate_limit_expire_time"`

	// 缓存配置
	CacheType          string `mapstructure:"cache_type"`
	CacheMaxSizeMB     int64  `mapstructure:"cache_max_size_mb"`
	CacheImageTTL      int    `mapstructure:"cache_image_ttl"`
	CacheRedisAddr     string `mapstructure:"cache_redis_addr"`
	CacheRedisPassword string `mapstructure:"cache_redis_password"`
	CacheRedisDB       int    `mapstructure:"cache_redis_db"`

	// 图片上传配置
	UploadMaxSizeMB int `mapstructure:"upload_max_size_mb"`

	// 图片代理配置
	ProxyTimeout time.Duration `mapstructure:"proxy_timeout"`

	// 图片迁移配置
	MigrateStaticRoot  string        `mapstructure:"migrate_static_root"`
	MigrateSubdirs     []string      `mapstructure:"migrate_subdirs"`
	MigrateMaxFileMB   int           `mapstructure:"migrate_max_file_mb"`
	MigrateBatchSize   int           `mapstructure:"migrate_batch_size"`
	MigrateBatchPause  time.Duration `mapstructure:"migrate_batch_pause"`
	MigrateDryRun      bool          `mapstructure:"dry_run"`
	MigrateVerboseLogs bool          `mapstructure:"verbose"`

	// 备份存储配置
	BackupStorageType   string `mapstructure:"backup_storage_type"`
	BackupLocalPath     string `mapstructure:"backup_local_path"`
	BackupMinioEndpoint string `mapstructure:"backup_minio_endpoint"`
	BackupMinioAccess   string `mapstructure:"backup_minio_access_key"`
	BackupMinioSecret   string `mapstructure:"backup_minio_secret_key"`
	BackupMinioBucket   string `mapstructure:"backup_minio_bucket"`
	BackupMinioUseSSL   bool   `mapstructure:"backup_minio_use_ssl"`
	BackupWebdavURL     string `mapstructure:"backup_webdav_url"`
	BackupWebdavUser    string `mapstructure:"backup_webdav_username"`
	BackupWebdavPass    string `mapstructure:"backup_webdav_password"`
	BackupWebdavRoot    string `mapstructure:"backup_webdav_root"`
}

// InitConfig Initialize configuration
func InitConfig() {
	once.Do(func() {
		loadConfig()
	})
}

func Get() *Config {
	return &globalConfig
}

// loadConfig Core configuration loading
func loadConfig() {
	setDefaults()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Info: .env file not found, using defaults and environment variables")
	} else {
		fmt.Fprintln(os.Stderr, "Info: Loaded configuration from .env file")
	}

	viper.AutomaticEnv()
	for _, key := range viper.AllKeys() {
		viper.BindEnv(key)
	}

	if err := viper.Unmarshal(&globalConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: Unable to unmarshal config, %v\n", err)
		os.Exit(1)
	}

	// 环境变量 DRY_RUN/VERBOSE 以字符串 "true" 形式传入（运维脚本约定）
	if strings.EqualFold(os.Getenv("DRY_RUN"), "true") {
		globalConfig.MigrateDryRun = true
	}
	if strings.EqualFold(os.Getenv("VERBOSE"), "true") {
		globalConfig.MigrateVerboseLogs = true
	}
}

// setDefaults 设置默认值
func setDefaults() {
	// 服务器配置默认值
	viper.SetDefault("server_host", "127.0.0.1")
	viper.SetDefault("server_port", 8080)
	viper.SetDefault("server_domain", "")
	viper.SetDefault("server_read_timeout", "15s")
	viper.SetDefault("server_write_timeout", "30s")
	viper.SetDefault("server_idle_timeout", "120s")

	// 数据库配置默认值
	viper.SetDefault("db_type", "sqlite")
	viper.SetDefault("db_host", "localhost")
	viper.SetDefault("db_port", 5432)
	viper.SetDefault("db_username", "postgres")
	viper.SetDefault("db_password", "")
	viper.SetDefault("db_name", "firmsite")
	viper.SetDefault("db_file_path", "")
	viper.SetDefault("db_max_open_conns", 100)
	viper.SetDefault("db_max_idle_conns", 25)
	viper.SetDefault("db_conn_max_lifetime", 3600)

	// 管理后台认证默认值
	viper.SetDefault("admin_key", "")
	viper.SetDefault("admin_key_hash", "")
	viper.SetDefault("jwt_secret", "")
	viper.SetDefault("jwt_expires_in", "12h")
	viper.SetDefault("login_max_retries", 5)
	viper.SetDefault("login_lockout", "15m")

	// 限流配置默认值
	viper.SetDefault("rate_limit_api_rps", 30.0)
	viper.SetDefault("rate_limit_api_burst", 60)
	viper.SetDefault("rate_limit_image_rps", 100.0)
	viper.SetDefault("rate_limit_image_burst", 200)
	viper.SetDefault("rate_limit_expire_time", "10m")

	// 缓存配置默认值
	viper.SetDefault("cache_type", "memory")
	viper.SetDefault("cache_max_size_mb", 64)
	viper.SetDefault("cache_image_ttl", 3600)
	viper.SetDefault("cache_redis_addr", "localhost:6379")
	viper.SetDefault("cache_redis_password", "")
	viper.SetDefault("cache_redis_db", 0)

	// 上传与代理默认值
	viper.SetDefault("upload_max_size_mb", 10)
	viper.SetDefault("proxy_timeout", "10s")

	// 迁移默认值
	viper.SetDefault("migrate_static_root", "./public")
	viper.SetDefault("migrate_subdirs", []string{"images/news", "images/team", "images/uploads"})
	viper.SetDefault("migrate_max_file_mb", 5)
	viper.SetDefault("migrate_batch_size", 50)
	viper.SetDefault("migrate_batch_pause", "500ms")
	viper.SetDefault("dry_run", false)
	viper.SetDefault("verbose", false)

	// 备份存储默认值
	viper.SetDefault("backup_storage_type", "local")
	viper.SetDefault("backup_local_path", "./data/backup")
	viper.SetDefault("backup_minio_endpoint", "")
	viper.SetDefault("backup_minio_access_key", "")
	viper.SetDefault("backup_minio_secret_key", "")
	viper.SetDefault("backup_minio_bucket", "firmsite-images")
	viper.SetDefault("backup_minio_use_ssl", true)
	viper.SetDefault("backup_webdav_url", "")
	viper.SetDefault("backup_webdav_username", "")
	viper.SetDefault("backup_webdav_password", "")
	viper.SetDefault("backup_webdav_root", "firmsite")
}

// Addr 返回监听地址，格式为 "host:port"
func (c *Config) Addr() string {
	host := c.ServerHost
	if host == "" {
		host = "0.0.0.0"
	}
	port := c.ServerPort
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// BaseURL 返回基础 URL，用于生成图片链接
func (c *Config) BaseURL() string {
	if c.ServerDomain != "" {
		return c.ServerDomain
	}
	host := c.ServerHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, c.ServerPort)
}
