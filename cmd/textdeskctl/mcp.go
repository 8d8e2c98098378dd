package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	mcpadapter "github.com/kirillkom/textdesk/internal/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the text features as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		s := mcpadapter.NewServer(mcpadapter.Services{
			Humanizer:    app.HumanizeUC,
			Sentiment:    app.SentimentUC,
			Summaries:    app.SummarizeUC,
			Keywords:     app.KeywordsUC,
			Capabilities: app.CapabilitiesUC,
		}, version, viper.GetString("language"))
		return server.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
