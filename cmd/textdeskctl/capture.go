package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture the screen to a PNG file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		if res := app.CaptureUC.Capture(commandContext(cmd), out); res.Failed() {
			return errors.New(res.Error)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	captureCmd.Flags().String("out", "screenshot.png", "destination PNG file")
	rootCmd.AddCommand(captureCmd)
}
