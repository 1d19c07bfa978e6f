package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Data   DataConfig
	Output OutputConfig
	UI     UIConfig
}

// DataConfig locates the input layers.
type DataConfig struct {
	Dir string
}

// OutputConfig controls where and what the chart renderer writes.
type OutputConfig struct {
	Dir  string
	Name string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Tick         time.Duration
	SplitPercent int `mapstructure:"split_percent"`
}

// Load reads configuration from file and env. Env var overrides use prefix GEOMAP_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("data.dir", "geo_data")
	v.SetDefault("output.dir", "plotted_images")
	v.SetDefault("output.name", "plot.png")
	v.SetDefault("ui.tick", 250*time.Millisecond)
	v.SetDefault("ui.split_percent", 60)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("GEOMAP_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "geomap"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GEOMAP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if c.UI.SplitPercent < 10 {
		c.UI.SplitPercent = 10
	}
	if c.UI.SplitPercent > 90 {
		c.UI.SplitPercent = 90
	}

	return c, nil
}
