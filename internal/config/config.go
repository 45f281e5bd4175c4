package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address        string   `yaml:"address"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`
	Payments struct {
		StatusSecret      string `yaml:"status_secret"`
		LavaCreateURL     string `yaml:"lava_create_url"`
		LavaToken         string `yaml:"lava_token"`
		LavaShopID        string `yaml:"lava_shop_id"`
		LavaSuccessURL    string `yaml:"lava_success_url"`
		ProfitableInitURL string `yaml:"profitable_init_url"`
		ProfitablePayURL  string `yaml:"profitable_pay_url"`
	} `yaml:"payments"`
	Steam struct {
		BaseURL string `yaml:"base_url"`
		Token   string `yaml:"token"`
	} `yaml:"steam"`
	Email struct {
		APIBaseURL string `yaml:"api_base_url"`
	} `yaml:"email"`
	Currency struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"currency"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		BotID    string `yaml:"bot_id"`
		Origin   string `yaml:"origin"`
		ChatID   int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
}

// LoadConfig reads the YAML config and overlays secrets from the environment.
func LoadConfig(path string) Config {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}

	overlayEnv(&cfg)
	return cfg
}

func overlayEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("SECRET_DIGI"); v != "" {
		cfg.Payments.StatusSecret = v
	}
	if v := os.Getenv("API_LAVA_CREATE"); v != "" {
		cfg.Payments.LavaCreateURL = v
	}
	if v := os.Getenv("API_LAVA_TOKEN"); v != "" {
		cfg.Payments.LavaToken = v
	}
	if v := os.Getenv("LAVA_SHOP_ID"); v != "" {
		cfg.Payments.LavaShopID = v
	}
	if v := os.Getenv("LAVA_SUCCESS_URL"); v != "" {
		cfg.Payments.LavaSuccessURL = v
	}
	if v := os.Getenv("STEAM_LOGIN_URL"); v != "" {
		cfg.Steam.BaseURL = v
	}
	if v := os.Getenv("STEAM_LOGIN_TOKEN"); v != "" {
		cfg.Steam.Token = v
	}
	if v := os.Getenv("EMAIL_API"); v != "" {
		cfg.Email.APIBaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_BOT_ID"); v != "" {
		cfg.Telegram.BotID = v
	}
	if v := os.Getenv("TELEGRAM_ORIGIN"); v != "" {
		cfg.Telegram.Origin = v
	}
}
