package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dealdesk/loi-parser/internal/extract"
	"github.com/dealdesk/loi-parser/pkg/anthropic"
)

var parseNoConfidence bool

var parseCmd = &cobra.Command{
	Use:   "parse <transcript-file>",
	Short: "Extract LOI fields from a call transcript",
	Long: `Reads a call transcript from a file (or stdin when the argument is "-")
and prints the extracted LOI fields as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Anthropic.Key == "" {
			return eris.New("anthropic API key is required (set LOI_ANTHROPIC_KEY)")
		}

		transcript, err := readTranscript(args[0])
		if err != nil {
			return err
		}

		llm := anthropic.NewClient(cfg.Anthropic.Key)
		svc := extract.NewService(llm, cfg.Anthropic)

		var out any
		if parseNoConfidence {
			out, err = svc.Extract(cmd.Context(), transcript)
		} else {
			out, err = svc.ExtractWithConfidence(cmd.Context(), transcript)
		}
		if err != nil {
			return err
		}

		zap.L().Info("extraction complete", zap.String("source", args[0]))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func readTranscript(path string) (string, error) {
	var b []byte
	var err error
	if path == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", eris.Wrap(err, "read transcript")
	}
	return string(b), nil
}

func init() {
	parseCmd.Flags().BoolVar(&parseNoConfidence, "no-confidence", false,
		"skip the confidence pass and print fields only")
	rootCmd.AddCommand(parseCmd)
}
