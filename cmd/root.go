/*
Copyright © 2026 Dmitry Mozzherin <dmozzherin@gmail.com>

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
	"github.com/gnames/gntree/internal/iofs"
	"github.com/gnames/gntree/internal/iologger"
	app "github.com/gnames/gntree/pkg"
	"github.com/gnames/gntree/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

var rootCmd = getRootCmd()

// getRootCmd creates the base command when called without any
// subcommands.
func getRootCmd() *cobra.Command {
	res := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gntree",
		Short:   "Builds and renders trees of taxa",
		Long: `gntree turns flat taxonomic relations into a tree of taxa.

It reads "parent -> child" pair lists, ColDP NameUsage tables or SFGA
archives, cuts the subtree of a given root taxon, optionally keeps only
ancestors of target taxa, collapses chains of single-child ranks and
renders the result as indented text, collapsible HTML, JSON or YAML.
Taxa are annotated with English common names from Wikispecies. The names
are cached in ~/.cache/gntree, so every name is looked up only once.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNTREE_*)
  3. Config file (~/.config/gntree/config.yaml)
  4. Built-in defaults

Environment Variables:
  GNTREE_VERNACULAR_API_URL       MediaWiki API for common names
  GNTREE_VERNACULAR_TIMEOUT       Lookup timeout in seconds
  GNTREE_VERNACULAR_USER_AGENT    User-Agent of lookups
  GNTREE_LOG_LEVEL                Log level (debug/info/warn/error)
  GNTREE_LOG_FORMAT               Log format (json/text/tint)
  GNTREE_LOG_DESTINATION          Log destination (file/stderr/stdout)
  GNTREE_JOBS_NUMBER              Number of name parsing workers`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gntree version" prefix
	res.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	res.Flags().BoolP("version", "V", false, "version for gntree")

	res.AddCommand(getShowCmd())
	res.AddCommand(getVernacularCmd())
	return res
}

// bootstrap prepares directories, logging and configuration before any
// command runs.
func bootstrap(cmd *cobra.Command, args []string) error {
	err := setup()
	if err != nil {
		gn.PrintErrorMessage(err)
	}
	return err
}

func setup() error {
	var err error
	if homeDir, err = os.UserHomeDir(); err != nil {
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		return err
	}

	// log to file until user settings are known
	startLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), startLog); err != nil {
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		return err
	}

	fileCfg, err := initConfig(homeDir)
	if err != nil {
		return err
	}

	cfg = config.New()
	opts = append(fileCfg.ToOptions(), config.OptHomeDir(homeDir))
	cfg.Update(opts)

	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"version", app.Version,
	)
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
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
	v.SetEnvPrefix("GNTREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Vernacular names service
	v.BindEnv("vernacular.api_url", "GNTREE_VERNACULAR_API_URL")
	v.BindEnv("vernacular.timeout", "GNTREE_VERNACULAR_TIMEOUT")
	v.BindEnv("vernacular.user_agent", "GNTREE_VERNACULAR_USER_AGENT")

	// Log configuration
	v.BindEnv("log.level", "GNTREE_LOG_LEVEL")
	v.BindEnv("log.format", "GNTREE_LOG_FORMAT")
	v.BindEnv("log.destination", "GNTREE_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "GNTREE_JOBS_NUMBER")

	v.AutomaticEnv()
}
