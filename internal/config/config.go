package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from files and environment
// variables. It is built once at startup and injected read-only.
type Config struct {
	Env           string `mapstructure:"env"`       // current application environment (local, dev, prod)
	HTTPPort      string `mapstructure:"http_port"` // port the REST server listens on
	MongoURI      string `mapstructure:"-"`         // MongoDB connection string loaded from environment
	MongoDatabase string `mapstructure:"mongo_database"`
	RedisAddr     string `mapstructure:"redis_addr"`
	Admin         Admin  `mapstructure:"admin"` // admin console credentials section
}

// Admin contains admin console credentials and token signing material.
type Admin struct {
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"-"` // loaded from environment only
	JWTSecret string `mapstructure:"-"` // loaded from environment only
}

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("http_port", "8080")
	v.SetDefault("mongo_database", "lyro")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("admin.username", "admin")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("mongo_uri", "MONGO_URI")
	_ = v.BindEnv("admin_password", "ADMIN_PASSWORD")
	_ = v.BindEnv("jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("http_port", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.MongoURI = v.GetString("mongo_uri")
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
	}

	cfg.Admin.Password = v.GetString("admin_password")
	cfg.Admin.JWTSecret = v.GetString("jwt_secret")
	if cfg.Env == "production" && (cfg.Admin.Password == "" || cfg.Admin.JWTSecret == "") {
		return nil, ErrMissingEnvironmentVariables
	}
	if cfg.Admin.Password == "" {
		cfg.Admin.Password = "password123"
	}
	if cfg.Admin.JWTSecret == "" {
		cfg.Admin.JWTSecret = "super-secret-key-change-in-production"
	}

	return &cfg, nil
}
