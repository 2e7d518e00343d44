package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Sternrassler/webapi-methods/pkg/logging"
)

var (
	version = "dev"
	commit  = "none"
)

// cli carries the configuration shared by all commands.
type cli struct {
	v *viper.Viper
}

func newRootCommand() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "webapi-methods",
		Short: "Inspect the pagination capabilities of web API operations",
		Long: `webapi-methods lists, validates and serves the pagination catalog of a
web API client: which operations paginate by cursor, by timeline window or
by page number, and which arguments drive each strategy.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.initConfig(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (yaml)")
	rootCmd.PersistentFlags().String("catalog", "", "catalog file (default is the embedded catalog)")
	rootCmd.PersistentFlags().String("output", outputTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().String("log-level", string(logging.LevelInfo), "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("pretty", false, "human-readable log output")

	// Bind flags to viper
	for _, name := range []string{"config", "catalog", "output", "log-level", "pretty"} {
		_ = c.v.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	rootCmd.AddCommand(c.newListCommand())
	rootCmd.AddCommand(c.newShowCommand())
	rootCmd.AddCommand(c.newValidateCommand())
	rootCmd.AddCommand(c.newConvertCommand())
	rootCmd.AddCommand(c.newServeCommand())

	return rootCmd
}

func (c *cli) initConfig(cmd *cobra.Command) error {
	// WEBAPI_LOG_LEVEL, WEBAPI_CATALOG, ...
	c.v.SetEnvPrefix("WEBAPI")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if cfgFile := c.v.GetString("config"); cfgFile != "" {
		c.v.SetConfigFile(cfgFile)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	level, err := logging.ParseLevel(c.v.GetString("log-level"))
	if err != nil {
		return err
	}
	logging.Setup(logging.Config{
		Level:  level,
		Pretty: c.v.GetBool("pretty"),
		Output: cmd.ErrOrStderr(),
	})

	switch c.v.GetString("output") {
	case outputTable, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q", c.v.GetString("output"))
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
