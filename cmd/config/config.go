// Package config bootstraps viper configuration and constructs the pieces
// commands share: the remote registry, the outline cache, and the HTTP
// client for a chosen remote.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jfarrand/syllabus/pkg/cache"
	"github.com/jfarrand/syllabus/pkg/registry"
	"github.com/jfarrand/syllabus/pkg/service"
	"github.com/jfarrand/syllabus/pkg/sync/httpapi"
)

var cfgFile string

// InitConfig wires viper: config file, env overrides, defaults.
func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "syllabus")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SYLLABUS")

	// Set defaults
	home, _ := os.UserHomeDir()
	viper.SetDefault("data_dir", filepath.Join(home, ".local", "share", "syllabus"))
	viper.SetDefault("config_dir", filepath.Join(home, ".config", "syllabus"))
	viper.SetDefault("remote", "")
	viper.SetDefault("verbose", false)

	_ = viper.ReadInConfig() // missing config file is fine, defaults apply
}

// AddGlobalFlags registers the persistent flags every command shares.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/syllabus/config.yaml)")
	cmd.PersistentFlags().StringP("remote", "r", "", "named remote to use (default from config)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	_ = viper.BindPFlag("remote", cmd.PersistentFlags().Lookup("remote"))
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
}

// NewLogger builds the shared logger. Quiet unless --verbose.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if viper.GetBool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

// LoadRegistry reads the remote registry from the config dir.
func LoadRegistry() (*registry.Registry, error) {
	return registry.Load(viper.GetString("config_dir"))
}

// ResolveRemote picks the remote named on the command line, or the
// configured default, or the sole registered remote.
func ResolveRemote() (registry.Remote, error) {
	reg, err := LoadRegistry()
	if err != nil {
		return registry.Remote{}, err
	}

	name := viper.GetString("remote")
	if name == "" {
		remotes := reg.List()
		switch len(remotes) {
		case 0:
			return registry.Remote{}, fmt.Errorf("no remotes configured; run 'syllabus remote add' first")
		case 1:
			return remotes[0], nil
		default:
			return registry.Remote{}, fmt.Errorf("multiple remotes configured; pick one with --remote")
		}
	}

	rem, ok := reg.Get(name)
	if !ok {
		return registry.Remote{}, fmt.Errorf("unknown remote %q", name)
	}
	return rem, nil
}

// OpenCache opens the outline cache under the data dir.
func OpenCache() (*cache.Store, error) {
	return cache.Open(viper.GetString("data_dir"))
}

// NewCourse builds the course service for a remote.
func NewCourse(rem registry.Remote, opts ...service.Option) (*service.Course, error) {
	client, err := httpapi.New(rem.BaseURL,
		httpapi.WithToken(rem.Token()),
		httpapi.WithLogger(NewLogger()),
	)
	if err != nil {
		return nil, fmt.Errorf("build client for %q: %w", rem.Name, err)
	}
	return service.NewCourse(rem.CourseID, client, opts...)
}
