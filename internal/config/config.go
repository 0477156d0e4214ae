// Package config reads the server settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	// BasePath serves the site under a sub-directory, e.g. "/portfolio".
	BasePath string `env:"BASE_PATH"`
	// ContentFile replaces the built-in portfolio copy.
	ContentFile string `env:"CONTENT_FILE"`
	MediaDir    string `env:"MEDIA_DIR" envDefault:"./media"`
	// AnalyticsDB enables page-view tracking and the admin area when set.
	AnalyticsDB   string `env:"ANALYTICS_DB"`
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parse(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func (c Config) AnalyticsEnabled() bool {
	return c.AnalyticsDB != ""
}

// DefaultCredentials reports whether either admin credential was left at
// its development default.
func (c Config) DefaultCredentials() bool {
	return c.AdminUsername == DefaultAdminUsername || c.AdminPassword == DefaultAdminPassword
}
