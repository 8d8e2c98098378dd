package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kirillkom/textdesk/internal/bootstrap"
	"github.com/kirillkom/textdesk/internal/config"
	"github.com/kirillkom/textdesk/internal/observability/logging"
)

// cliConfig overlays the resolved CLI settings on the service environment.
func cliConfig() config.Config {
	cfg := config.Load()
	cfg.DefaultLanguage = strings.ToLower(viper.GetString("language"))
	if data := viper.GetString("data"); data != "" {
		cfg.DataPath = data
	}
	cfg.BundledDataDir = viper.GetString("bundled")
	if disabled := viper.GetStringSlice("disable"); len(disabled) > 0 {
		cfg.DisabledEngines = disabled
	}
	cfg.ScreenshotBackend = viper.GetString("backend")
	cfg.LogLevel = viper.GetString("log-level")
	return cfg
}

func loadApp(cmd *cobra.Command) (*bootstrap.App, error) {
	cfg := cliConfig()
	logger := logging.New(os.Stderr, "textdeskctl", cfg.LogLevel, "text")
	return bootstrap.New(commandContext(cmd), cfg, logger)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// readInput joins the positional arguments, or reads stdin when there are none
// or the only argument is "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}
