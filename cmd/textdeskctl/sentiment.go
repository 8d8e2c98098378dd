package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sentimentCmd = &cobra.Command{
	Use:   "sentiment [text|-]",
	Short: "Score the sentiment of a text",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		res := app.SentimentUC.AnalyzeSentiment(commandContext(cmd), text)
		if res.Failed() {
			return errors.New(res.Error)
		}
		if res.Score == nil {
			fmt.Fprintln(cmd.OutOrStdout(), res.Label)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.3f\n", res.Label, *res.Score)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sentimentCmd)
}
