/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnagro/internal/iofs"
	"github.com/gnames/gnagro/internal/iologger"
	app "github.com/gnames/gnagro/pkg"
	"github.com/gnames/gnagro/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the base command with all subcommands attached.
// Every call builds a new command tree.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gnagro",
		Short:   "GNagro derives agronomic profiles of species",
		Long: `GNagro derives agronomic profiles of species stored in a PostgreSQL
occurrence database.

For every species it samples historical climate at occurrence coordinates,
aggregates the samples into climate requirements, infers a planting
calendar from occurrence months and links companion plants.

Commands:
  - create:  create the database schema
  - migrate: update the database schema
  - enrich:  derive agronomic profiles of species

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNAGRO_*)
  3. Config file (~/.config/gnagro/config.yaml)
  4. Built-in defaults

Environment variables use underscores for nesting, for example
GNAGRO_DATABASE_HOST or GNAGRO_CLIMATE_BATCH_SIZE.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gnagro version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnagro")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getEnrichCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// The bootstrap log file is continued, not truncated.
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNAGRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.host", "GNAGRO_DATABASE_HOST")
	v.BindEnv("database.port", "GNAGRO_DATABASE_PORT")
	v.BindEnv("database.user", "GNAGRO_DATABASE_USER")
	v.BindEnv("database.password", "GNAGRO_DATABASE_PASSWORD")
	v.BindEnv("database.database", "GNAGRO_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "GNAGRO_DATABASE_SSL_MODE")
	v.BindEnv("database.max_connections", "GNAGRO_DATABASE_MAX_CONNECTIONS")

	// Climate archive configuration
	v.BindEnv("climate.archive_url", "GNAGRO_CLIMATE_ARCHIVE_URL")
	v.BindEnv("climate.start_date", "GNAGRO_CLIMATE_START_DATE")
	v.BindEnv("climate.end_date", "GNAGRO_CLIMATE_END_DATE")
	v.BindEnv("climate.timeout_sec", "GNAGRO_CLIMATE_TIMEOUT_SEC")
	v.BindEnv("climate.batch_size", "GNAGRO_CLIMATE_BATCH_SIZE")
	v.BindEnv("climate.rate_limit", "GNAGRO_CLIMATE_RATE_LIMIT")
	v.BindEnv("climate.cache_ttl_min", "GNAGRO_CLIMATE_CACHE_TTL_MIN")

	// Log configuration
	v.BindEnv("log.level", "GNAGRO_LOG_LEVEL")
	v.BindEnv("log.format", "GNAGRO_LOG_FORMAT")
	v.BindEnv("log.destination", "GNAGRO_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "GNAGRO_JOBS_NUMBER")

	v.AutomaticEnv()
}
