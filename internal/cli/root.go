// Package cli holds the riskwatch command tree
package cli

import (
	"fmt"
	"os"

	"riskwatch/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configFile is the optional YAML config passed with --config
var configFile string

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:           "riskwatch",
	Short:         "Student dropout-risk and wellbeing screening service",
	Long:          `riskwatch scores students for dropout risk, screens journal text for distress and alerts counselors.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(migrateCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.SetDefaults(viper.GetViper())
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("riskwatch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/riskwatch")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			fmt.Fprintln(os.Stderr, "Warning: config file not loaded:", err)
		}
	}
}

// loadConfig validates the merged flags, file and environment
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}
