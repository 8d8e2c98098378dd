package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [text|-]",
	Short: "Summarize a text, a text file or a PDF",
	Long: `summarize selects the most representative sentences with LSA and prints
them in document order. Use --pdf for PDF files and --file for plain text
files; otherwise the text comes from the arguments or stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pdfPath, _ := cmd.Flags().GetString("pdf")
		filePath, _ := cmd.Flags().GetString("file")
		sentences, _ := cmd.Flags().GetInt("sentences")
		if pdfPath != "" && filePath != "" {
			return errors.New("use either --pdf or --file, not both")
		}

		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)
		language := viper.GetString("language")

		var res domain.SummaryResult
		switch {
		case pdfPath != "":
			res = app.SummarizeUC.SummarizePDF(ctx, pdfPath, sentences, language)
		case filePath != "":
			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("read %s: %w", filePath, err)
			}
			res = app.SummarizeUC.SummarizeText(ctx, string(data), sentences, language)
		default:
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			res = app.SummarizeUC.SummarizeText(ctx, text, sentences, language)
		}
		if res.Failed() {
			return errors.New(res.Error)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Summary)
		return nil
	},
}

func init() {
	summarizeCmd.Flags().String("pdf", "", "PDF file to summarize")
	summarizeCmd.Flags().String("file", "", "plain text file to summarize")
	summarizeCmd.Flags().Int("sentences", 5, "number of sentences (1 to 50)")
	rootCmd.AddCommand(summarizeCmd)
}
