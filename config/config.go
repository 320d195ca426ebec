package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig holds general process settings.
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// LogConfig controls the zap logger setup.
type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// ApiConfig describes the remote BrewHub document-store API.
type ApiConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	// Timeout is the per-request timeout in seconds.
	Timeout int `yaml:"timeout" json:"timeout"`
	// CatalogRefresh is the cron spec for the periodic catalog reload.
	CatalogRefresh string `yaml:"catalog_refresh" json:"catalog_refresh"`
	// CheckoutRedirectMs is how long the checkout success message stays
	// visible before the dashboard navigates away.
	CheckoutRedirectMs int `yaml:"checkout_redirect_ms" json:"checkout_redirect_ms"`
}

type AppConfig struct {
	System SysConfig `yaml:"system" json:"system"`
	Logger LogConfig `yaml:"logger" json:"logger"`
	Api    ApiConfig `yaml:"api" json:"api"`
}

func (c *ApiConfig) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

func (c *ApiConfig) CheckoutRedirect() time.Duration {
	if c.CheckoutRedirectMs <= 0 {
		return 2000 * time.Millisecond
	}
	return time.Duration(c.CheckoutRedirectMs) * time.Millisecond
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "BrewHub",
		Location: "Asia/Kolkata",
		Workdir:  "/var/brewhub",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/brewhub/brewhub.log",
	},
	Api: ApiConfig{
		BaseURL:            "https://brewhub-tx1e.onrender.com",
		Timeout:            10,
		CatalogRefresh:     "@every 5m",
		CheckoutRedirectMs: 2000,
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

func setEnvIntValue(name string, f func(v int)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(cast.ToInt(evalue))
	}
}

// LoadConfig reads the yaml config file and applies environment
// overrides. A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("BREWHUB_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("BREWHUB_SYSTEM_LOCATION", func(v string) { cfg.System.Location = v })
	setEnvBoolValue("BREWHUB_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })
	setEnvValue("BREWHUB_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvBoolValue("BREWHUB_LOGGER_FILE_ENABLE", func(v bool) { cfg.Logger.FileEnable = v })
	setEnvValue("BREWHUB_LOGGER_FILENAME", func(v string) { cfg.Logger.Filename = v })
	setEnvValue("BREWHUB_API_BASE_URL", func(v string) { cfg.Api.BaseURL = v })
	setEnvIntValue("BREWHUB_API_TIMEOUT", func(v int) { cfg.Api.Timeout = v })
	setEnvValue("BREWHUB_API_CATALOG_REFRESH", func(v string) { cfg.Api.CatalogRefresh = v })
	setEnvIntValue("BREWHUB_API_CHECKOUT_REDIRECT_MS", func(v int) { cfg.Api.CheckoutRedirectMs = v })

	if cfg.Logger.Filename == DefaultAppConfig.Logger.Filename && cfg.System.Workdir != DefaultAppConfig.System.Workdir {
		cfg.Logger.Filename = filepath.Join(cfg.System.Workdir, "brewhub.log")
	}
	return cfg
}
