// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrHedmad/panid/cmd/config"
	zerologlib "github.com/MrHedmad/panid/internal/log/zerolog"
	loglib "github.com/MrHedmad/panid/pkg/log"
)

// Version is the panid version
var Version = "development"

func Prepare() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "panid",
		Short:        "Convert between gene IDs quickly!",
		SilenceUsage: true,
		Version:      Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			return nil
		},
	}

	viper.SetEnvPrefix("PANID")
	viper.AutomaticEnv()

	// Flag definition

	// root cmd
	rootCmd.PersistentFlags().StringP("config", "c", "", ".env or .yaml config file to use with panid if any")
	rootCmd.PersistentFlags().String("log-level", "", "log level for the application. One of trace, debug, info, warn, error, fatal, panic")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Increase verbosity, equivalent to --log-level debug")
	rootCmd.PersistentFlags().String("cache-file", "", "Path of the cached reference table (default "+config.DefaultCacheFile+")")
	rootCmd.PersistentFlags().Duration("cache-timeout", 7*24*time.Hour, "How long the cached reference table stays fresh")
	rootCmd.PersistentFlags().String("biomart-url", "", "BioMart martservice endpoint to fetch the reference table from")

	// Flag binding for root cmd
	rootFlagBinding(rootCmd)

	// register subcommands
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(statusCmd)
	return rootCmd
}

// Execute executes the root command.
func Execute() error {
	cmd := Prepare()
	return cmd.Execute()
}

func withSignalWatcher(fn func(ctx context.Context, args []string) error) func(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		<-sigc
		cancel()
	}()

	return func(cmd *cobra.Command, args []string) error {
		defer cancel()
		return fn(ctx, args)
	}
}

func rootFlagBinding(cmd *cobra.Command) {
	viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("cache-file", cmd.PersistentFlags().Lookup("cache-file"))
	viper.BindPFlag("cache-timeout", cmd.PersistentFlags().Lookup("cache-timeout"))
	viper.BindPFlag("biomart-url", cmd.PersistentFlags().Lookup("biomart-url"))

	viper.BindPFlag("input_file", convertCmd.Flags().Lookup("input_file"))
	viper.BindPFlag("output", convertCmd.Flags().Lookup("output"))
	viper.BindPFlag("json", statusCmd.Flags().Lookup("json"))
}

func newLogger() loglib.Logger {
	logger := zerologlib.NewLogger(&zerologlib.Config{
		LogLevel: config.LogLevel(),
	})
	zerologlib.SetGlobalLogger(logger)
	return zerologlib.NewStdLogger(logger)
}
