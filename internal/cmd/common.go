package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/filekit/internal/config"
	"github.com/harrison/filekit/internal/logger"
)

// addCommonFlags registers the flags every tool understands
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/filekit/config.yaml)")
	cmd.Flags().String("log-level", "", "Diagnostics on stderr: trace, debug, info, warn, error")
}

// loadConfig reads the config file named by --config (or the default
// location) and applies --log-level on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		cfg.MergeWithFlags(&level, nil, nil, nil, nil)
	}
	return cfg, nil
}

// newLogger returns the diagnostics logger, writing to the command's stderr
func newLogger(cmd *cobra.Command, cfg *config.Config) *logger.ConsoleLogger {
	return logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
}

// usageError prints the usage text and returns err
func usageError(cmd *cobra.Command, err error) error {
	_ = cmd.Usage()
	return err
}

// stringFlag returns a pointer to the flag's value when it was set on the
// command line, nil otherwise
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
