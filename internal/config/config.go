package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		Enabled      bool   `yaml:"enabled"`
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	App struct {
		BaseURL               string `yaml:"base_url"`
		NotificationListLimit int    `yaml:"notification_list_limit"`
	} `yaml:"app"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		log.Println("Загрузка из config.yaml (режим НЕ-тест)")

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("✅ Загрузка конфигурации из ПЕРЕМЕННЫХ ОКРУЖЕНИЯ (режим теста)")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Email.SMTPHost = "smtp.test.com"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "noreply@portfolia.dev"
	cfg.Email.FromName = "Portfolia"
	cfg.Email.Enabled = false

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.TTL <= 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.App.NotificationListLimit <= 0 {
		// Окно последних уведомлений: без курсора, всегда самые свежие.
		cfg.App.NotificationListLimit = 100
	}
	if cfg.App.BaseURL == "" {
		cfg.App.BaseURL = "http://localhost:3000"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
