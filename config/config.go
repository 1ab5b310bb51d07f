package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Sitemap struct {
		Path   string
		DryRun bool
	}
	Update struct {
		Timezone string
	}
	History struct {
		Driver string
		URL    string
	}
	Log struct {
		Dir   string
		Debug bool
	}
}

// LoadConfig reads updater.yaml from . or ./config, or configFile when set.
// A missing default config file is not an error: the defaults describe a
// plain run on sitemap.xml next to the executable.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("updater")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Default values
	v.SetDefault("sitemap.path", "")
	v.SetDefault("sitemap.dryrun", false)
	v.SetDefault("update.timezone", "")
	v.SetDefault("history.driver", "")
	v.SetDefault("history.url", "")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.debug", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.History.Driver {
	case "", "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported history driver %q (want sqlite3 or postgres)", c.History.Driver)
	}
	if c.History.Driver != "" && c.History.URL == "" {
		return fmt.Errorf("history.url is required when history.driver is %q", c.History.Driver)
	}
	if _, err := c.GetLocation(); err != nil {
		return err
	}
	return nil
}

// GetLocation returns the time zone used for today's date; nil means the
// process local zone.
func (c *Config) GetLocation() (*time.Location, error) {
	if c.Update.Timezone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(c.Update.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid update.timezone %q: %w", c.Update.Timezone, err)
	}
	return loc, nil
}
