package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const progressInterval = 100 * time.Millisecond

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Send the stock-out reminder to validated restaurants",
	Long: `deploy generates a session, validates every restaurant inside the variance thresholds
(plus every flagged one with --include-flagged) and simulates sending the SMS template to each.`,
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

		if all, _ := cmd.Flags().GetBool("include-flagged"); all {
			sim.SelectAll("")
		}
		out := cmd.OutOrStdout()
		if preview, _ := cmd.Flags().GetBool("preview"); preview {
			for _, id := range sim.Validator.Validated() {
				msg, err := sim.Preview(cfg.Notification.Template, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s\n", id, msg)
			}
			return nil
		}

		dep, err := sim.Deploy(cfg.Notification.Template)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		recipients := len(dep.Recipients())
		bar := progressbar.NewOptions(recipients,
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("sending"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()

	wait:
		for {
			select {
			case <-dep.Done():
				break wait
			case <-ctx.Done():
				dep.Cancel()
				break wait
			case <-ticker.C:
				sum := dep.Summary()
				_ = bar.Set(sum.Total - sum.Pending)
			}
		}
		_ = bar.Finish()

		sum := dep.Summary()
		if sum.Cancelled {
			fmt.Fprintf(out, "Deployment %s cancelled.\n", dep.ID)
		}
		fmt.Fprintf(out, "Deployment %s: %d recipients, %d delivered.\n", dep.ID, sum.Total, sum.Delivered)
		fmt.Fprintln(out, sum.Message())
		return nil
	},
}

func init() {
	deployCmd.Flags().String("template", "", "Message template, defaults to the configured template")
	deployCmd.Flags().Bool("include-flagged", false, "Also validate every flagged restaurant")
	deployCmd.Flags().Bool("preview", false, "Print the rendered messages without sending")
	deployCmd.Flags().Float64("success-probability", 0.9, "Probability that a send succeeds")

	bindFlag(deployCmd, "notification.template", "template")
	bindFlag(deployCmd, "notification.success_probability", "success-probability")
}
