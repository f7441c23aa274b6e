package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/symcheck/internal/app"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Open the interactive symptom checklist (default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func runTUI(cmd *cobra.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	events := st.EventRepo()
	sess, err := newSession(cmd, events)
	if err != nil {
		return err
	}
	return app.Run(app.Options{Session: sess, EventRepo: events})
}
