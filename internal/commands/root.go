package commands

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/prepaid/internal/buildinfo"
	"github.com/cleared-dev/prepaid/internal/config"
	"github.com/cleared-dev/prepaid/internal/logging"
)

// rootOptions holds the persistent flags and the logger built from them.
type rootOptions struct {
	configPath string
	envFile    string
	logLevel   string
	logFormat  string

	logger *logrus.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{logger: logging.Discard()}

	rootCmd := &cobra.Command{
		Use:     "prepaid",
		Short:   "Prepaid expense amortization schedules and journal entries",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to "+config.FileName+" (default ./"+config.FileName+")")
	pf.StringVar(&opts.envFile, "env-file", "", "load environment variables from this file (default ./.env if present)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default $"+config.EnvLogLevel+" or info)")
	pf.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newRunCommand(opts),
		newEntriesCommand(opts),
		newScheduleCommand(opts),
	)

	return rootCmd
}

// setup loads the env file and configures logging. The env file is loaded
// first so it can supply the log level.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if err := config.LoadEnvFile(o.envFile); err != nil {
		return err
	}

	level := o.logLevel
	if level == "" {
		level = os.Getenv(config.EnvLogLevel)
	}
	logger, err := logging.New(cmd.ErrOrStderr(), level, o.logFormat)
	if err != nil {
		return err
	}
	o.logger = logger
	return nil
}
