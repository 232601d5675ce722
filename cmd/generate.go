package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/chrisdamba/foodpredict/internal/models"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a session and print the prediction overview",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		sim, err := newSession(cfg, log, nil)
		if err != nil {
			return err
		}
		defer sim.Close()

		preds := sim.Predictions()
		if len(preds) == 0 {
			return fmt.Errorf("no restaurants generated")
		}
		top, _ := cmd.Flags().GetInt("top")
		sum := sim.Summary()
		st := sim.Validator.State("")
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Prediction date:        %s\n", preds[0].Date)
		fmt.Fprintf(out, "Restaurants:            %d\n", sum.Restaurants)
		fmt.Fprintf(out, "Historical records:     %d\n", len(sim.Historical))
		fmt.Fprintf(out, "Total predicted orders: %d\n", sum.TotalPredictedOrders)
		fmt.Fprintf(out, "Expected revenue:       GHS %d\n", sum.TotalExpectedRevenue)
		fmt.Fprintf(out, "Potential loss:         GHS %d\n", sum.PotentialLoss())
		fmt.Fprintf(out, "Risk: low %d, medium %d, high %d\n",
			sum.RiskBreakdown[models.RiskLow], sum.RiskBreakdown[models.RiskMedium], sum.RiskBreakdown[models.RiskHigh])
		fmt.Fprintf(out, "Validation: %d normal, %d unusual\n\n", len(st.Normal), len(st.Unusual))

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RESTAURANT\tPREDICTED\tHISTORICAL\tVARIANCE")
		for _, c := range sim.Comparison(top) {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%+.1f%%\n", c.Name, c.Predicted, c.Historical, c.VariancePercent)
		}
		return tw.Flush()
	},
}

func init() {
	generateCmd.Flags().Int("top", 20, "Number of restaurants in the comparison table")
}
