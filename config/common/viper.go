package common

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/viper"
)

type Config struct {
	Viper *viper.Viper
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	PublicURL string
	KeyPrefix string
}

func NewViper() *Config {
	config := viper.New()
	config.SetConfigFile(".env")
	config.AddConfigPath("../")
	config.AutomaticEnv()
	setDefaults(config)

	log.Trace("Checking file .env ....")
	if err := config.ReadInConfig(); err != nil {
		// a missing .env is fine in containers; anything else is not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			panic("failed read config: " + err.Error())
		}
		log.Warn(".env not found, reading configuration from the environment")
	}
	return &Config{Viper: config}
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("APP_NAME", "dating-chat-api")
	config.SetDefault("APP_PORT", "7720")
	config.SetDefault("DB_PORT", "5432")
	config.SetDefault("REDIS_DB", 0)
	config.SetDefault("S3_REGION", "us-east-1")
	config.SetDefault("S3_KEY_PREFIX", "chat-images")
	config.SetDefault("TYPING_DEBOUNCE_MS", 500)
	config.SetDefault("CORS_ORIGINS", "*")
	config.SetDefault("LOG_DIR", "logs")
	config.SetDefault("LOG_LEVEL", "info")
}

func (c *Config) GetAppConfig() (appName string) {
	return c.Viper.GetString("APP_NAME")
}

func (c *Config) GetAppPort() string {
	return c.Viper.GetString("APP_PORT")
}

func (c *Config) GetDatabaseConfig() (dbHost, dbUser, dbPassword, dbName, dbPort string) {
	dbHost = c.Viper.GetString("DB_HOSTNAME")
	dbUser = c.Viper.GetString("DB_USER")
	dbPassword = c.Viper.GetString("DB_PASSWORD")
	dbName = c.Viper.GetString("DB_NAME")
	dbPort = c.Viper.GetString("DB_PORT")

	return dbHost, dbUser, dbPassword, dbName, dbPort
}

func (c *Config) GetJwtConfig() []byte {
	jwtSecret := c.Viper.GetString("JWT_SECRET")
	return []byte(jwtSecret)
}

// GetRedisConfig returns an empty addr when Redis is not configured.
func (c *Config) GetRedisConfig() (addr, password string, db int) {
	return c.Viper.GetString("REDIS_ADDR"), c.Viper.GetString("REDIS_PASSWORD"), c.Viper.GetInt("REDIS_DB")
}

func (c *Config) GetS3Config() S3Config {
	return S3Config{
		Bucket:    c.Viper.GetString("S3_BUCKET"),
		Region:    c.Viper.GetString("S3_REGION"),
		Endpoint:  c.Viper.GetString("S3_ENDPOINT"),
		PublicURL: c.Viper.GetString("S3_PUBLIC_URL"),
		KeyPrefix: c.Viper.GetString("S3_KEY_PREFIX"),
	}
}

func (c *Config) GetPushURL() string {
	return c.Viper.GetString("PUSH_URL")
}

func (c *Config) GetTypingDebounce() time.Duration {
	return time.Duration(c.Viper.GetInt("TYPING_DEBOUNCE_MS")) * time.Millisecond
}

func (c *Config) GetCorsOrigins() string {
	origins := strings.Split(c.Viper.GetString("CORS_ORIGINS"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return strings.Join(origins, ",")
}

func (c *Config) GetLogConfig() (dir, level string) {
	return c.Viper.GetString("LOG_DIR"), c.Viper.GetString("LOG_LEVEL")
}
