package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// LinkConfig holds the locale and branding baked into every link.
type LinkConfig struct {
	BaseURL        string `envconfig:"WA_BASE_URL" default:"https://wa.me/"`
	CountryCode    string `envconfig:"DEFAULT_COUNTRY_CODE" default:"91"`
	Region         string `envconfig:"DEFAULT_REGION" default:"IN"` // libphonenumber region for validity checks
	CurrencySymbol string `envconfig:"CURRENCY_SYMBOL" default:"₹"`
	BrandName      string `envconfig:"BRAND_NAME" default:"Tiffinly"`
	SupportPhone   string `envconfig:"SUPPORT_PHONE" default:"+91 1234567890"`
	SupportEmail   string `envconfig:"SUPPORT_EMAIL" default:"support@tiffinly.com"`
}

type APIConfig struct {
	LinkConfig

	DBDSN       string `envconfig:"DB_DSN" required:"true"`
	Port        string `envconfig:"PORT" default:"8080"`
	MetricsPort string `envconfig:"METRICS_PORT" default:"9090"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DBPoolMaxConns          int32         `envconfig:"DB_POOL_MAX_CONNS" default:"10"`
	DBPoolMinConns          int32         `envconfig:"DB_POOL_MIN_CONNS" default:"0"`
	DBPoolMaxConnLifetime   time.Duration `envconfig:"DB_POOL_MAX_CONN_LIFETIME" default:"30m"`
	DBPoolMaxConnIdleTime   time.Duration `envconfig:"DB_POOL_MAX_CONN_IDLE_TIME" default:"5m"`
	DBPoolHealthCheckPeriod time.Duration `envconfig:"DB_POOL_HEALTH_CHECK_PERIOD" default:"1m"`

	// Phone lookup cache; disabled when REDIS_ADDR is empty.
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	PhoneCacheTTL time.Duration `envconfig:"PHONE_CACHE_TTL" default:"10m"`

	// link.issued events; disabled when LINK_EVENTS_QUEUE_URL is empty.
	AWSRegion          string `envconfig:"AWS_REGION" default:"ap-south-1"`
	LinkEventsQueueURL string `envconfig:"LINK_EVENTS_QUEUE_URL"`
	LocalstackEndpoint string `envconfig:"LOCALSTACK_ENDPOINT"`

	// per-pod rate limit for the link endpoints
	APIRPS   float64 `envconfig:"API_RPS" default:"50"`
	APIBurst int     `envconfig:"API_BURST" default:"100"`
}

func LoadAPI() APIConfig {
	var cfg APIConfig
	if err := envconfig.Process("", &cfg); err != nil {
		panic(err)
	}
	return cfg
}

func LoadLink() (LinkConfig, error) {
	var cfg LinkConfig
	err := envconfig.Process("", &cfg)
	return cfg, err
}
