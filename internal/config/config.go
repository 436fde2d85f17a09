// Package config предоставляет структуры и функцию для загрузки конфига приложения.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Media                   `yaml:"media"`
	ImageGen                `yaml:"imagegen"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токеном.
// TTL токена по умолчанию 60 суток.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"1440h"`
}

// Media структура для подключения к медиахостингу (MinIO),
// где хранятся картинки объявлений.
type Media struct {
	EndpointMedia string `yaml:"endpoint"`
	PublicURL     string `yaml:"public_url"`
	AccessKey     string `yaml:"access_key" env:"MEDIA_ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key" env:"MEDIA_SECRET_KEY"`
	UseSSL        bool   `yaml:"use_ssl"`
	Bucket        string `yaml:"bucket" env-default:"flyers"`
}

// ImageGen структура для подключения к сервису генерации картинок.
// Если продавец не приложил флаер, картинка генерируется по заголовку объявления.
type ImageGen struct {
	APIURLImageGen string        `yaml:"api_url"`
	APIKeyImageGen string        `yaml:"api_key" env:"IMAGEGEN_API_KEY"`
	TimeoutGen     time.Duration `yaml:"timeout" env-default:"30s"`
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH.
// Завершает процесс, если файл отсутствует или не читается.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
