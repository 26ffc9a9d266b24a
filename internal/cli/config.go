package cli

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/strayware/tabdeck/internal/paths"
	"github.com/strayware/tabdeck/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyDataDir = "data_dir"
	cfgKeyRoutes  = "routes"
)

// configFile is the structure written to config.yaml by init.
type configFile struct {
	DataDir string        `yaml:"data_dir,omitempty"`
	Routes  []types.Route `yaml:"routes"`
}

// defaultRouteTable is the route table written on first init and used when
// config.yaml does not define one.
func defaultRouteTable() []types.Route {
	return []types.Route{
		{ID: "home", Path: "/", Title: "Home", KeepAlive: true},
		{ID: "dashboard", Path: "/dashboard", Title: "Dashboard", KeepAlive: true},
		{ID: "users", Path: "/users", Title: "Users", KeepAlive: true},
		{ID: "user-detail", Path: "/users/:id", Title: "User", KeepAlive: true},
		{ID: "settings", Path: "/settings", Title: "Settings", KeepAlive: true},
		{ID: "login", Path: "/login", Title: "Login", KeepAlive: false},
	}
}

// loadConfig reads config.yaml from the config directory using Viper.
// A missing config.yaml is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// loadRoutes returns the route table from config, falling back to the
// default table when none is configured.
func loadRoutes(v *viper.Viper) ([]types.Route, error) {
	if !v.IsSet(cfgKeyRoutes) {
		return defaultRouteTable(), nil
	}
	var rs []types.Route
	if err := v.UnmarshalKey(cfgKeyRoutes, &rs); err != nil {
		return nil, fmt.Errorf("parse routes: %w", err)
	}
	if len(rs) == 0 {
		return defaultRouteTable(), nil
	}
	return rs, nil
}

// resolveConfigDir follows the flag > env > CWD-default precedence.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flags.configDir)
}

// resolveDataDir follows the flag > config > env > CWD-default precedence.
func resolveDataDir(v *viper.Viper) (string, error) {
	return paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
}
