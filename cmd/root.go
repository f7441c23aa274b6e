// Package cmd is the symcheck command line.
package cmd

import (
	"github.com/spf13/cobra"
)

const rootLong = `symcheck lets you tick observed symptoms from a categorized checklist and
shows ranked possible conditions, including co-infections, from a diagnosis
service or a language model.

It is not a medical diagnosis. Consult a healthcare professional.

Settings are read from flags, then SYMCHECK_* environment variables, then a
.env file in the working directory.`

var rootCmd = &cobra.Command{
	Use:          "symcheck",
	Short:        "Symptom checker",
	Long:         rootLong,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv(".env")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// Execute runs the command named on the command line.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "SQLite event log path (env SYMCHECK_DB)")
	flags.String("backend", "", "diagnosis backend, http or llm (env SYMCHECK_BACKEND)")
	flags.String("endpoint", "", "diagnosis service URL for the http backend (env SYMCHECK_ENDPOINT)")
	flags.String("catalog", "", "YAML symptom catalog (env SYMCHECK_CATALOG)")

	rootCmd.AddCommand(
		checkCmd,
		diagnoseCmd,
		classifyCmd,
		catalogCmd,
		historyCmd,
		statsCmd,
		llmCmd,
		serveCmd,
		versionCmd,
	)
}
