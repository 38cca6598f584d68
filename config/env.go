package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type (
	AppConfig struct {
		Name           string `mapstructure:"name"`
		Version        string `mapstructure:"version"`
		Port           int    `mapstructure:"port"`
		Environment    string `mapstructure:"environment"`
		PathPrefix     string `mapstructure:"path_prefix"` // Optional, prefix for the swagger route
		RequestTimeout int    `mapstructure:"request_timeout"`
	}

	LoggerConfig struct {
		Level       string `mapstructure:"level"`
		Format      string `mapstructure:"format"`
		FilePath    string `mapstructure:"filepath"`
		MaxSize     int    `mapstructure:"max_size"`
		MaxAge      int    `mapstructure:"max_age"`
		MaxBackups  int    `mapstructure:"max_backups"`
		Compress    bool   `mapstructure:"compress"`
		LocalTime   bool   `mapstructure:"localTime"`
		Environment string
	}

	DatabaseConfig struct {
		Type        string      `mapstructure:"type"` // mongodb | memory
		MongoConfig MongoConfig `mapstructure:"mongo"`
	}

	MongoConfig struct {
		URI            string `mapstructure:"uri"`
		Database       string `mapstructure:"database"`
		ReplicaSet     string `mapstructure:"replicaSet"`
		AuthSource     string `mapstructure:"authSource"`
		Username       string `mapstructure:"username"`
		Password       string `mapstructure:"password"`
		ConnectTimeout int    `mapstructure:"connect_timeout"`
		MaxPoolSize    int    `mapstructure:"max_pool_size"`
		MinPoolSize    int    `mapstructure:"min_pool_size"`
		SocketTimeout  int    `mapstructure:"socket_timeout"`
	}

	RedisConfig struct {
		Enabled    bool   `mapstructure:"enabled"`
		Type       string `mapstructure:"type"` // NORMAL | SENTINEL
		Addrs      string `mapstructure:"addrs"`
		MasterName string `mapstructure:"master_name"`
		Password   string `mapstructure:"password"`
	}

	CacheConfig struct {
		Type           string `mapstructure:"type"`
		Capacity       int    `mapstructure:"capacity"`
		DefaultTTL     int    `mapstructure:"default_ttl"`
		RedisTTL       int    `mapstructure:"redis_ttl"`
		RedisTimeoutMs int    `mapstructure:"redis_timeout_ms"`
	}

	CORSConfig struct {
		Enabled          bool     `mapstructure:"enabled"`
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	}

	MetricsConfig struct {
		Enabled  bool   `mapstructure:"enabled"`
		Path     string `mapstructure:"path"`
		SlowTime int32  `mapstructure:"slow_time"`
	}

	JWTConfig struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
	}

	WeatherAPIConfig struct {
		URL                   string `mapstructure:"url"`
		AppID                 string `mapstructure:"app_id"`
		CountryCode           string `mapstructure:"country_code"`
		TimeoutSeconds        int    `mapstructure:"timeout_seconds"`
		MaxAttempts           int    `mapstructure:"max_attempts"`
		BackoffSeconds        int    `mapstructure:"backoff_seconds"`
		MaxBackoffSeconds     int    `mapstructure:"max_backoff_seconds"`
		MaxIdleConnsPerHost   int    `mapstructure:"max_idle_conns_per_host"`
		BreakerFailures       uint32 `mapstructure:"breaker_failures"`
		BreakerTimeoutSeconds int    `mapstructure:"breaker_timeout_seconds"`
	}
)

type Env struct {
	AppConfig        AppConfig        `mapstructure:"app"`
	LoggerConfig     LoggerConfig     `mapstructure:"logging"`
	DatabaseConfig   DatabaseConfig   `mapstructure:"database"`
	RedisConfig      RedisConfig      `mapstructure:"redis"`
	CacheConfig      CacheConfig      `mapstructure:"cache"`
	CORSConfig       CORSConfig       `mapstructure:"cors"`
	MetricsConfig    MetricsConfig    `mapstructure:"metrics"`
	JWTConfig        JWTConfig        `mapstructure:"jwt"`
	WeatherAPIConfig WeatherAPIConfig `mapstructure:"weather_api"`
}

var env Env
var envLoaded bool

func setDefaults() {
	viper.SetDefault("app.port", 8080)
	viper.SetDefault("app.request_timeout", 30)
	viper.SetDefault("database.type", "mongodb")
	viper.SetDefault("cache.type", "LRU")
	viper.SetDefault("cache.capacity", 1000)
	viper.SetDefault("cache.default_ttl", 3600)
	viper.SetDefault("cache.redis_ttl", 86400)
	viper.SetDefault("cache.redis_timeout_ms", 50)
	viper.SetDefault("metrics.path", "/metrics")
	viper.SetDefault("metrics.slow_time", 1)
	viper.SetDefault("jwt.expiration_hours", 10)
	viper.SetDefault("weather_api.url", "https://api.openweathermap.org")
	viper.SetDefault("weather_api.country_code", "US")
	viper.SetDefault("weather_api.timeout_seconds", 10)
	viper.SetDefault("weather_api.max_attempts", 3)
	viper.SetDefault("weather_api.backoff_seconds", 1)
	viper.SetDefault("weather_api.max_backoff_seconds", 30)
	viper.SetDefault("weather_api.max_idle_conns_per_host", 10)
	viper.SetDefault("weather_api.breaker_timeout_seconds", 30)
}

func loadEnv() Env {
	// Set up viper to read the config.yaml file
	viper.SetConfigName("config")   // Config file name without extension
	viper.SetConfigType("yaml")     // Config file type
	viper.AddConfigPath("./config") // Look for the config file in the current directory

	// ENV_JWT_SECRET overrides jwt.secret, ENV_WEATHER_API_APP_ID overrides weather_api.app_id, ...
	viper.AutomaticEnv()
	viper.SetEnvPrefix("env") // will be uppercased automatically
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults()

	err := viper.ReadInConfig() // Read the config file
	if err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	err = viper.Unmarshal(&env)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
	env.LoggerConfig.Environment = env.AppConfig.Environment // Set the logger environment from app config
	if env.AppConfig.Environment == "production" {
		env.LoggerConfig.Level = "info" // Default to info level in production
	}

	printStartupConfig(&env)

	return env
}

func GetEnv() *Env {
	if envLoaded {
		return &env
	}
	env = loadEnv()
	envLoaded = true
	return &env
}

func printStartupConfig(env *Env) {
	line := strings.Repeat("=", 40)
	fmt.Println(line)
	fmt.Println("🚀 Application Configuration")
	fmt.Println(line)

	fmt.Printf("%-15s: %s\n", "App Name", env.AppConfig.Name)
	fmt.Printf("%-15s: %s\n", "Version", env.AppConfig.Version)
	fmt.Printf("%-15s: %s\n", "Environment", env.AppConfig.Environment)
	fmt.Printf("%-15s: %d\n", "Port", env.AppConfig.Port)
	fmt.Printf("%-15s: %s\n", "Log Level", env.LoggerConfig.Level)
	fmt.Printf("%-15s: %s\n", "Database", env.DatabaseConfig.Type)
	fmt.Printf("%-15s: %s\n", "Weather API", env.WeatherAPIConfig.URL)
	fmt.Printf("%-15s: %d\n", "Max Attempts", env.WeatherAPIConfig.MaxAttempts)

	fmt.Println(line)
}
