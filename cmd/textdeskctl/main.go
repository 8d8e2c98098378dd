// Command textdeskctl runs the text features from a terminal and reports
// which engines are installed.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:          "textdeskctl",
	Short:        "Run textdesk features from the command line",
	SilenceUsage: true,
	Long: `textdeskctl exercises the same engines as the textdesk web app: sentiment,
summaries of text and PDF files, keyword extraction and screen capture.

Settings come from flags, TEXTDESK_* environment variables and an optional
textdeskctl.yaml in the working directory or ~/.config/textdesk.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./textdeskctl.yaml or ~/.config/textdesk/textdeskctl.yaml)")
	flags.String("language", "spanish", "language for resource checks and summaries")
	flags.String("data", "", "extra resource roots, path-list separated")
	flags.String("bundled", "./data/textdesk_data_local", "bundled resource directory")
	flags.StringSlice("disable", nil, "engines to treat as not installed")
	flags.String("backend", "desktop", "screenshot backend: desktop or browser")
	flags.String("log-level", "warn", "log level")

	for _, key := range []string{"language", "data", "bundled", "disable", "backend", "log-level"} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("textdeskctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "textdesk"))
		}
	}

	viper.SetEnvPrefix("TEXTDESK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
