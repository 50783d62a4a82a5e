// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the doc-converter CLI. The serve
// subcommand runs the local conversion server with its browser UI; convert
// handles local files without the HTTP layer.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-converter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the doc-converter CLI.
var rootCmd = &cobra.Command{
	Use:   "doc-converter",
	Short: "Local DOCX/PDF conversion server and CLI",
	Long: `doc-converter converts DOCX files to PDF and PDF files to DOCX using an
installed LibreOffice in headless mode.

Run "doc-converter serve" to start the local server with its browser UI, or
"doc-converter convert" to convert files directly from the command line.
"doc-converter doctor" checks whether the conversion engine is installed.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./doc-converter.yaml or ~/.config/doc-converter/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("doc-converter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "doc-converter"))
		}
	}

	viper.SetEnvPrefix("DOC_CONVERTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig assembles engine settings from config and flags. The flag
// wins over the config file.
func engineConfig(cmd *cobra.Command) types.EngineConfig {
	cfg := types.EngineConfig{
		Path:    viper.GetString("engine.path"),
		Timeout: viper.GetDuration("engine.timeout"),
	}
	if p, _ := cmd.Flags().GetString("engine-path"); p != "" {
		cfg.Path = p
	}
	if d, _ := cmd.Flags().GetDuration("timeout"); d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// addEngineFlags registers the engine flags shared by serve, convert, and
// doctor.
func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().String("engine-path", "", "explicit path to the soffice binary")
	cmd.Flags().Duration("timeout", 0*time.Second, "per-file conversion timeout (0 = none)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
