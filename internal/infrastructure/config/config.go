package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "skybridge/internal/shared/config"
)

type Config struct {
	Server  sharedConfig.ServerConfig  `mapstructure:"server"`
	Logger  sharedConfig.LoggerConfig  `mapstructure:"logger"`
	Gateway sharedConfig.GatewayConfig `mapstructure:"gateway"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("SKYBRIDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// The gateway runs fine on defaults; only a malformed file is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults. The gateway is a loopback-only surface; the real
	// port is base_port + the node id.
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.base_port", 8000)
	viper.SetDefault("server.mode", "release")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Gateway defaults
	viper.SetDefault("gateway.node_id", 1)
	viper.SetDefault("gateway.discovery_grace", "2s")
	viper.SetDefault("gateway.fetch_timeout", "3s")
	viper.SetDefault("gateway.queue_size", 256)
	viper.SetDefault("gateway.static_dir", "./web/static")
}
