package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"basket-pricer-go/infrastructure/logger"
	"basket-pricer-go/measure"
)

// AppConfig holds the main runtime configuration.
type AppConfig struct {
	Log       logger.Config   `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Valuation ValuationConfig `yaml:"valuation"`
	Feed      FeedConfig      `yaml:"feed"`
	Report    ReportConfig    `yaml:"report"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // 为空则不启动 /metrics
}

type ValuationConfig struct {
	Workers int    `yaml:"workers"` // 0 表示 GOMAXPROCS
	Measure string `yaml:"measure"`
}

// FeedConfig 行情抓取配置
type FeedConfig struct {
	URL            string `yaml:"url"`
	DelaySeconds   int    `yaml:"delaySeconds"`   // 两次抓取之间的间隔
	TimeoutSeconds int    `yaml:"timeoutSeconds"` // 单次 HTTP 请求超时
}

type ReportConfig struct {
	Grouping string `yaml:"grouping"`
	Decimal  string `yaml:"decimal"`
	NaN      string `yaml:"nan"`
	Inf      string `yaml:"inf"`
}

// Default 不提供配置文件时使用的默认值
func Default() AppConfig {
	return AppConfig{
		Log:       logger.DefaultConfig(),
		Valuation: ValuationConfig{Measure: "price"},
		Feed: FeedConfig{
			URL:            "http://finance.yahoo.com/d/quotes.csv",
			DelaySeconds:   60,
			TimeoutSeconds: 10,
		},
		Report: ReportConfig{Grouping: ",", Decimal: ".", NaN: "NaN", Inf: "Inf"},
	}
}

// Load reads YAML config from path on top of Default and applies basic validation.
func Load(path string) (AppConfig, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config (or defaults when path is empty) then
// overrides fields from env vars if present.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return cfg, err
		}
	}
	if v := os.Getenv("BP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("BP_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("BP_FEED_URL"); v != "" {
		cfg.Feed.URL = v
	}
	return cfg, Validate(cfg)
}

// Validate ensures required fields are present.
func Validate(cfg AppConfig) error {
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "console" {
		return fmt.Errorf("log.format must be json or console, got %q", cfg.Log.Format)
	}
	if cfg.Valuation.Workers < 0 {
		return errors.New("valuation.workers must be >= 0")
	}
	if _, err := measure.ByName(cfg.Valuation.Measure); err != nil {
		return fmt.Errorf("valuation.measure: %w", err)
	}
	if cfg.Feed.DelaySeconds <= 0 {
		return errors.New("feed.delaySeconds must be > 0")
	}
	if cfg.Feed.TimeoutSeconds <= 0 {
		return errors.New("feed.timeoutSeconds must be > 0")
	}
	if cfg.Report.Decimal == "" {
		return errors.New("report.decimal is required")
	}
	return nil
}
