package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	yaml "gopkg.in/yaml.v2"
)

// SysConfig holds general application settings.
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
}

// WebConfig holds the HTTP listener and token settings.
type WebConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port" validate:"gte=1,lte=65535"`
	Secret        string `yaml:"secret" validate:"required"`
	TokenTTLHours int    `yaml:"token_ttl_hours" validate:"gte=0"`
}

// DBConfig holds the document database settings. URL is mandatory.
type DBConfig struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// AmqpConfig holds optional event broker settings. An empty URL disables publishing.
type AmqpConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type MetricsConfig struct {
	Prefix string `yaml:"prefix"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system"`
	Web      WebConfig     `yaml:"web"`
	Database DBConfig      `yaml:"database"`
	Amqp     AmqpConfig    `yaml:"amqp"`
	Logger   LogConfig     `yaml:"logger"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

func DefaultConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "gastropanel",
			Location: "Europe/Warsaw",
			Workdir:  "/var/gastropanel",
		},
		Web: WebConfig{
			Host:          "0.0.0.0",
			Port:          3000,
			Secret:        "gastropanel-secret",
			TokenTTLHours: 24,
		},
		Database: DBConfig{
			Name: "gastropanel",
		},
		Logger: LogConfig{
			Mode:     "development",
			Filename: "gastropanel.log",
		},
		Metrics: MetricsConfig{
			Prefix: "gastropanel",
		},
	}
}

// Load reads the YAML config file when present and applies environment
// overrides on top of it. A missing database URL is a startup error.
func Load(path string) (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	applyEnv(cfg)

	if cfg.Database.URL == "" {
		return nil, errors.New("MONGODB_URL is not configured")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setEnvString(&cfg.Database.URL, "MONGODB_URL")
	setEnvString(&cfg.Database.Name, "MONGODB_NAME")
	setEnvString(&cfg.Web.Host, "WEB_HOST")
	setEnvString(&cfg.Web.Secret, "WEB_SECRET")
	setEnvString(&cfg.Amqp.URL, "AMQP_URL")
	setEnvString(&cfg.Amqp.Exchange, "AMQP_EXCHANGE")
	setEnvString(&cfg.Logger.Mode, "LOGGER_MODE")
	setEnvString(&cfg.Metrics.Prefix, "METRICS_PREFIX")
	if v := os.Getenv("PORT"); v != "" {
		if p := cast.ToInt(v); p > 0 {
			cfg.Web.Port = p
		}
	}
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		if h := cast.ToInt(v); h > 0 {
			cfg.Web.TokenTTLHours = h
		}
	}
}

func setEnvString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
