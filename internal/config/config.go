package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App          App          `yaml:"app"`
	Contentstack Contentstack `yaml:"contentstack"`
	OpenAI       OpenAI       `yaml:"openai"`
	Auth         Auth         `yaml:"auth"`
	Slack        Slack        `yaml:"slack"`
}

type App struct {
	Port        string `yaml:"port" env:"APP_PORT" env-default:"3001"`
	LogLevel    string `yaml:"log_level" env:"APP_LOG_LEVEL" env-default:"debug"`
	FrontendURL string `yaml:"frontend_url" env:"FRONTEND_URL" env-default:"http://localhost:3000"`
}

type Contentstack struct {
	APIKey          string        `yaml:"api_key" env:"CONTENTSTACK_API_KEY"`
	DeliveryToken   string        `yaml:"delivery_token" env:"CONTENTSTACK_DELIVERY_TOKEN"`
	ManagementToken string        `yaml:"management_token" env:"CONTENTSTACK_MANAGEMENT_TOKEN"`
	Environment     string        `yaml:"environment" env:"CONTENTSTACK_ENVIRONMENT" env-default:"development"`
	DeliveryURL     string        `yaml:"delivery_url" env:"CONTENTSTACK_DELIVERY_URL" env-default:"https://cdn.contentstack.io"`
	ManagementURL   string        `yaml:"management_url" env:"CONTENTSTACK_MANAGEMENT_URL" env-default:"https://api.contentstack.io"`
	Timeout         time.Duration `yaml:"timeout" env:"CONTENTSTACK_TIMEOUT" env-default:"15s"`
}

type OpenAI struct {
	APIKey  string        `yaml:"api_key" env:"OPENAI_API_KEY"`
	Model   string        `yaml:"model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	BaseURL string        `yaml:"base_url" env:"OPENAI_BASE_URL" env-default:"https://api.openai.com"`
	Timeout time.Duration `yaml:"timeout" env:"OPENAI_TIMEOUT" env-default:"45s"`
}

type Auth struct {
	JWTSecret          string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTL           time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"24h"`
	GoogleClientID     string        `yaml:"google_client_id" env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string        `yaml:"google_client_secret" env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string        `yaml:"google_redirect_url" env:"GOOGLE_REDIRECT_URL"`
}

type Slack struct {
	SigningSecret string `yaml:"signing_secret" env:"SLACK_SIGNING_SECRET"`
	BotToken      string `yaml:"bot_token" env:"SLACK_BOT_TOKEN"`
	APIURL        string `yaml:"api_url" env:"SLACK_API_URL" env-default:"https://slack.com/api"`
}

func MustLoad() *Config {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	cfg := &Config{}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
			log.Fatalf("failed to read config file: %v", err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		log.Fatalf("failed to read env config: %v", err)
	}

	return cfg
}
