package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every automatically bound environment variable,
// e.g. TASKD_SERVER_PORT overrides server.port.
const EnvPrefix = "TASKD"

// Config represents the configuration implementation.
type Config struct {
	AppName     string
	Environment string
	Server      *Server
	Logger      *Logger
	Data        *Data
	Observes    *Observes
	Viper       *viper.Viper

	mu sync.Mutex
}

// IsProd reports whether the service runs in production mode.
func (c *Config) IsProd() bool {
	switch strings.ToLower(c.Environment) {
	case "prod", "production", "release":
		return true
	}
	return false
}

// LoadConfig loads the configuration from the file and the environment.
//
// An empty configPath searches for config.yaml in the working directory,
// /etc/taskd and the executable directory; a missing file is not an error
// because every setting can come from the environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/taskd")
		if ex, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(ex))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppName:     v.GetString("app_name"),
		Environment: v.GetString("environment"),
		Server:      getServerConfig(v),
		Logger:      getLoggerConfig(v),
		Data:        getDataConfig(v),
		Observes:    getObservesConfig(v),
		Viper:       v,
	}
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.Data == nil || c.Data.MongoDB == nil || c.Data.MongoDB.URI == "" {
		return errors.New("config: data.mongodb.uri (MONGO_URL) is required")
	}
	if c.Data.MongoDB.Database == "" {
		return errors.New("config: data.mongodb.database (DB_NAME) is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid server.port %d", c.Server.Port)
	}
	return nil
}

// Watch reloads the configuration when the backing file changes and passes
// the fresh values to callback. Only the logger section is hot-reloadable;
// other sections take effect on restart. It is a no-op when no file was loaded.
func (c *Config) Watch(callback func(*Config)) {
	if c.Viper == nil || c.Viper.ConfigFileUsed() == "" {
		return
	}
	c.Viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		next := fromViper(c.Viper)
		if err := next.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reloading config: %v\n", err)
			return
		}
		c.reload(next)
		callback(next)
	})
	c.Viper.WatchConfig()
}

// reload copies the hot-reloadable sections of next into c.
func (c *Config) reload(next *Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Logger = next.Logger
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "taskd")
	v.SetDefault("environment", "development")
	setServerDefaults(v)
	setLoggerDefaults(v)
	setDataDefaults(v)
	setObservesDefaults(v)
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Variable names shared with the previous deployment.
	_ = v.BindEnv("data.mongodb.uri", EnvPrefix+"_DATA_MONGODB_URI", "MONGO_URL")
	_ = v.BindEnv("data.mongodb.database", EnvPrefix+"_DATA_MONGODB_DATABASE", "DB_NAME")
	_ = v.BindEnv("server.cors_origins", EnvPrefix+"_SERVER_CORS_ORIGINS", "CORS_ORIGINS")
}
