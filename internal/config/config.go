// Package config loads the taskd server configuration with Viper.
// Precedence: explicit --config file > TASKD_* environment variables >
// taskd.yaml in the working directory > built-in defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/taskforge/taskd/pkg/types"
)

const (
	configFileName = "taskd"
	configFileType = "yaml"
	envPrefix      = "TASKD"
)

// Defaults for a zero-configuration local run.
const (
	defaultListenAddr = ":8080"
	defaultDriver     = types.DriverSQLite
	defaultDSN        = "tasks.db"
	defaultLogLevel   = "info"
)

// Load reads configuration from the given file path, or from taskd.yaml
// in the working directory when path is empty. A missing config file is
// not an error; defaults and environment variables still apply.
func Load(path string) (types.Config, error) {
	v := viper.New()
	v.SetDefault("listen_addr", defaultListenAddr)
	v.SetDefault("database.driver", defaultDriver)
	v.SetDefault("database.dsn", defaultDSN)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.file", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return types.Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return types.Config{}, fmt.Errorf("read config: %w", err)
			}
			// Missing taskd.yaml is fine; defaults apply.
		}
	}

	cfg := types.Config{
		ListenAddr: v.GetString("listen_addr"),
		Database: types.DatabaseConfig{
			Driver: v.GetString("database.driver"),
			DSN:    v.GetString("database.dsn"),
		},
		Log: types.LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}
