package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	Storage    string
	Addr       string
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	LogLevel   string
	SQLitePath string
	DB         DBConfig
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

// LoadEnv подгружает .env в окружение процесса (если файл есть)
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found")
	}
}

// NewViper возвращает viper с дефолтами и привязкой к переменным окружения
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage", StorageMemory)
	v.SetDefault("addr", ":8080")
	v.SetDefault("token_ttl", "1000h")
	v.SetDefault("bcrypt_cost", 10)
	v.SetDefault("log_level", "info")
	v.SetDefault("sqlite_path", "blogql.db")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_sslmode", "disable")

	return v
}

// Load собирает Config из viper и проверяет обязательные значения
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Storage:    strings.ToLower(v.GetString("storage")),
		Addr:       v.GetString("addr"),
		JWTSecret:  v.GetString("jwt_secret"),
		TokenTTL:   v.GetDuration("token_ttl"),
		BcryptCost: v.GetInt("bcrypt_cost"),
		LogLevel:   v.GetString("log_level"),
		SQLitePath: v.GetString("sqlite_path"),
		DB: DBConfig{
			Host:     v.GetString("db_host"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			Port:     v.GetString("db_port"),
			SSLMode:  v.GetString("db_sslmode"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if c.DB.User == "" || c.DB.Name == "" {
			return errors.New("DB_USER and DB_NAME must be set for postgres storage")
		}
	default:
		return fmt.Errorf("unknown storage type: %s", c.Storage)
	}

	if c.JWTSecret == "" {
		return errors.New("environment variable JWT_SECRET is not set")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}
