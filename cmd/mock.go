package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/dealdesk/loi-parser/internal/extract"
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Print a realistic mock LOI for frontend testing",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(extract.CreateMock())
	},
}

func init() {
	rootCmd.AddCommand(mockCmd)
}
