// Package cmd provides the gst-bank-api command line: the HTTP server and
// a few offline helpers.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// NewRootCmd creates the root command. Each call returns a fresh command
// tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "gst-bank-api",
		Short: "GST and bank details lookup API",
		Long: `gst-bank-api validates GSTINs and IFSC codes and resolves them to taxpayer and
bank branch details through public lookup providers.

Configuration is read from environment variables (SERVER_PORT, GST_API_KEY, ...),
an optional config file (--config) and command line flags.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().String("config", "", "Path to configuration file (YAML, JSON or TOML)")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	mustBind(v, "config", root.PersistentFlags().Lookup("config"))
	mustBind(v, "log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newServeCmd(v))
	root.AddCommand(newVersionCmd())
	root.AddCommand(newCheckCmd(v))

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
