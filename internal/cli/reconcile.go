package cli

import (
	"fmt"

	"hotelres/internal/core"

	"github.com/spf13/cobra"
)

func newReconcileCmd(a *app) *cobra.Command {
	var repair, strict bool
	c := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare hotel availability with live reservations",
		Long: "Reports hotels whose held rooms differ from their live reservations and reservations\n" +
			"whose hotel or customer is gone. With --repair, availability is rewritten from the reservations.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				report core.Report
				err    error
			)
			if repair {
				report, err = a.svc.Reconcile.Repair(cmd.Context())
			} else {
				report, err = a.svc.Reconcile.Audit(cmd.Context())
			}
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			if strict && !repair && !report.Consistent() {
				return fmt.Errorf("inconsistencies found: %d drifted hotels, %d orphaned reservations", len(report.Drift), len(report.Orphans))
			}
			return nil
		},
	}
	c.Flags().BoolVar(&repair, "repair", false, "rewrite rooms_available of drifted hotels")
	c.Flags().BoolVar(&strict, "strict", false, "exit non-zero when an audit finds inconsistencies")
	return c
}
