package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samjsmart/gig-int-garden-api/internal/platform/envutil"
)

// Config is the explicit configuration the whole service is wired
// from. An optional YAML file (CONFIG_PATH) provides a base; individual
// environment variables override it. Nothing else reads the
// environment at request time.
type Config struct {
	LogMode string `yaml:"log_mode"`

	HTTPAddr       string   `yaml:"http_addr"`
	ResponseMode   string   `yaml:"response_mode"` // "redirect" or "json"
	SiteOrigin     string   `yaml:"site_origin"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	Postgres PostgresConfig `yaml:"postgres"`

	AdultPrice  float64 `yaml:"adult_price"`
	ChildPrice  float64 `yaml:"child_price"`
	MailSubject string  `yaml:"mail_subject"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

func defaultConfig() Config {
	return Config{
		LogMode:      "development",
		HTTPAddr:     ":8080",
		ResponseMode: "redirect",
		SiteOrigin:   "https://giginthe.garden",
		AllowedOrigins: []string{
			"https://giginthe.garden",
			"http://localhost:3000",
		},
		Postgres: PostgresConfig{
			Host: "localhost",
			Port: "5432",
			User: "postgres",
			Name: "giginthegarden",
		},
		AdultPrice:  25,
		ChildPrice:  10,
		MailSubject: "Your Gig in the Garden booking",
	}
}

func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)
	cfg.HTTPAddr = envutil.String("HTTP_ADDR", cfg.HTTPAddr)
	cfg.ResponseMode = envutil.String("RESPONSE_MODE", cfg.ResponseMode)
	cfg.SiteOrigin = envutil.String("SITE_ORIGIN", cfg.SiteOrigin)
	if origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); origins != "" {
		parts := strings.Split(origins, ",")
		cfg.AllowedOrigins = cfg.AllowedOrigins[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, p)
			}
		}
	}

	cfg.Postgres.Host = envutil.String("POSTGRES_HOST", cfg.Postgres.Host)
	cfg.Postgres.Port = envutil.String("POSTGRES_PORT", cfg.Postgres.Port)
	cfg.Postgres.User = envutil.String("POSTGRES_USER", cfg.Postgres.User)
	cfg.Postgres.Password = envutil.String("POSTGRES_PASSWORD", cfg.Postgres.Password)
	cfg.Postgres.Name = envutil.String("POSTGRES_NAME", cfg.Postgres.Name)

	cfg.AdultPrice = envutil.Float("ADULT_PRICE", cfg.AdultPrice)
	cfg.ChildPrice = envutil.Float("CHILD_PRICE", cfg.ChildPrice)
	cfg.MailSubject = envutil.String("MAIL_SUBJECT", cfg.MailSubject)

	switch cfg.ResponseMode {
	case "redirect", "json":
	default:
		return Config{}, fmt.Errorf("response_mode must be \"redirect\" or \"json\", got %q", cfg.ResponseMode)
	}
	if cfg.AdultPrice < 0 || cfg.ChildPrice < 0 {
		return Config{}, fmt.Errorf("prices must not be negative")
	}

	return cfg, nil
}
