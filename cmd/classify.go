package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/symcheck/internal/diagnosis"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [file|-]",
	Short: "Classify a saved diagnosis service response",
	Long: "Reads a diagnosis response, either a bare [[label, confidence], ...] list or\n" +
		"{\"status\": ..., \"results\": [...]}, and prints the classified result.\n" +
		"Reads stdin when no file or \"-\" is given.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		var r io.Reader = cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open response: %w", err)
			}
			defer f.Close()
			r = f
		}

		body, err := io.ReadAll(io.LimitReader(r, 1<<20))
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		resp, err := diagnosis.DecodeResponse(body)
		if err != nil {
			return err
		}
		rs := diagnosis.Classify(resp.Results)

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), rs)
		}
		writeResultText(cmd.OutOrStdout(), rs)
		return nil
	},
}

func init() {
	classifyCmd.Flags().Bool("json", false, "Print the result as JSON")
}
