package cmd

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/born-ml/solvers/internal/config"
)

// version is overridden at build time with -ldflags "-X ...cmd.version=...".
var version = "v0.0.1-dev"

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v      *viper.Viper
	logger *logrus.Logger
	out    io.Writer
}

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	a := &app{
		v:      config.New(),
		logger: logrus.New(),
	}
	var configPath string

	cmd := &cobra.Command{
		Use:           "solvers",
		Short:         "solvers minimizes benchmark objectives with first-order methods.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.out = cmd.OutOrStdout()
			a.logger.SetOutput(cmd.ErrOrStderr())
			if err := config.ReadFile(a.v, configPath); err != nil {
				return err
			}
			return config.ConfigureLogger(a.v, a.logger)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML file with solver settings")
	cobra.CheckErr(config.BindLoggingFlags(a.v, flags))
	cobra.CheckErr(config.BindFlags(a.v, flags))

	cmd.AddCommand(
		minimizeCmd(a),
		batchCmd(a),
		versionCmd(),
	)

	return cmd
}
