// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rollsheet CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voidhawk/rollsheet/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, otherwise the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the rollsheet CLI.
var rootCmd = &cobra.Command{
	Use:   "rollsheet",
	Short: "Convert the community roll sheet into a DIM wishlist",
	Long: `rollsheet turns a published Google Sheet of Destiny 2 weapon roll
recommendations into a wishlist file for DIM (Destiny Item Manager).

The convert subcommand fetches the sheet and writes the wishlist. The
manifest subcommand rebuilds the weapon and perk name lookup tables from
the Bungie API, both as CSVs for the sheet maintainers and as a local
store used to annotate the wishlist. check validates an existing file
against the wishlist line grammar.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rollsheet.yaml or ~/.config/rollsheet/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rollsheet")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rollsheet"))
		}
	}

	viper.SetEnvPrefix("ROLLSHEET")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
