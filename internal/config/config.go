package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultBackendURL = "http://localhost:8000"
	DefaultStatusURL  = "/test"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Site    SiteConfig    `yaml:"site"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type BackendConfig struct {
	URL string `yaml:"url"`
	// Zero means no client-side deadline.
	Timeout time.Duration `yaml:"timeout"`
}

type SiteConfig struct {
	Name string `yaml:"name"`
	// StatusURL is the footer "Status" link. Relative by default, so it
	// resolves against whatever origin serves the page.
	StatusURL string `yaml:"status_url"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("BACKEND_URL", DefaultBackendURL)
	v.SetDefault("BACKEND_TIMEOUT", "0s")
	v.SetDefault("SITE_NAME", "Lobster Tawar")
	v.SetDefault("SITE_STATUS_URL", DefaultStatusURL)
	v.SetDefault("LOG_LEVEL", "info")

	timeout, err := time.ParseDuration(v.GetString("BACKEND_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing BACKEND_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
		},
		Backend: BackendConfig{
			URL:     v.GetString("BACKEND_URL"),
			Timeout: timeout,
		},
		Site: SiteConfig{
			Name:      v.GetString("SITE_NAME"),
			StatusURL: v.GetString("SITE_STATUS_URL"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend url must be http or https, got %q", c.Backend.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend url must include a host, got %q", c.Backend.URL)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend timeout must not be negative")
	}
	return nil
}
