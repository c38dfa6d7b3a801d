package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dealdesk/loi-parser/internal/model"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the LOI field schema as JSON-Schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := model.Schema()
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return err
		}
		fmt.Println(buf.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
