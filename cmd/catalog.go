package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/symcheck/internal/symptom"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the symptom checklist",
	RunE: func(cmd *cobra.Command, args []string) error {
		asYAML, _ := cmd.Flags().GetBool("yaml")

		catalog, err := resolveCatalog(cmd)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		w := cmd.OutOrStdout()
		if asYAML {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(catalog)
		}

		for i, cat := range catalog.Categories {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, cat.Name)
			for _, id := range cat.Symptoms {
				fmt.Fprintf(w, "  %-28s %s\n", id, symptom.Label(id))
			}
		}
		return nil
	},
}

func init() {
	catalogCmd.Flags().Bool("yaml", false, "Print as YAML, suitable for --catalog")
}
