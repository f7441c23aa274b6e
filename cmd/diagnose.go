package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/symcheck/internal/diagnosis"
	"github.com/abhisek/symcheck/internal/session"
	"github.com/abhisek/symcheck/internal/symptom"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose [symptom...]",
	Short: "Submit symptoms once and print the classified result",
	Example: "  symcheck diagnose -s high_fever -s chills\n" +
		"  symcheck diagnose high_fever retro_orbital_pain --json",
	RunE: func(cmd *cobra.Command, args []string) error {
		flagged, _ := cmd.Flags().GetStringSlice("symptom")
		asJSON, _ := cmd.Flags().GetBool("json")
		noStore, _ := cmd.Flags().GetBool("no-history")

		ids := symptom.IDs(append(flagged, args...)...)

		var sess *session.Session
		if noStore {
			s, err := newSession(cmd, nil)
			if err != nil {
				return err
			}
			sess = s
		} else {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			s, err := newSession(cmd, st.EventRepo())
			if err != nil {
				return err
			}
			sess = s
		}

		for _, id := range ids {
			if !sess.Catalog.Contains(id) {
				fmt.Fprintf(os.Stderr, "warning: %q is not in the symptom catalog\n", id)
			}
		}

		sub, err := sess.PrepareSymptoms(ids)
		if err != nil {
			return errors.New(session.Notice(err))
		}

		out := sess.Run(cmd.Context(), sub)
		if out.Err != nil {
			fmt.Fprintln(os.Stderr, session.Notice(out.Err))
			return out.Err
		}

		w := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(w, struct {
				RequestID string `json:"request_id"`
				*diagnosis.ResultSet
			}{sub.RequestID, out.Result})
		}
		writeResultText(w, out.Result)
		return nil
	},
}

func init() {
	diagnoseCmd.Flags().StringSliceP("symptom", "s", nil, "Symptom ID to submit (repeatable)")
	diagnoseCmd.Flags().Bool("json", false, "Print the result as JSON")
	diagnoseCmd.Flags().Bool("no-history", false, "Do not record the submission")
}
