package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords [text|-]",
	Short: "Rank the key phrases of a text",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("max")
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		res := app.KeywordsUC.ExtractKeywords(commandContext(cmd), text, viper.GetString("language"), limit)
		if res.Failed() {
			return errors.New(res.Error)
		}
		for _, kw := range res.Keywords {
			fmt.Fprintln(cmd.OutOrStdout(), kw)
		}
		return nil
	},
}

func init() {
	keywordsCmd.Flags().Int("max", 10, "maximum number of phrases")
	rootCmd.AddCommand(keywordsCmd)
}
