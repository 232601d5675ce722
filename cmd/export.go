package cmd

import (
	"fmt"

	"github.com/chrisdamba/foodpredict/internal/clock"
	"github.com/chrisdamba/foodpredict/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session datasets as CSV, JSON or Parquet",
	Example: `  foodpredict export --datasets predictions,restaurants --format csv --output ./out
  foodpredict export --datasets flagged --format parquet --destination s3 --bucket my-bucket`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		datasets, err := export.ParseDatasets(cfg.Export.Datasets)
		if err != nil {
			return err
		}
		format, err := export.ParseFormat(cfg.Export.Format)
		if err != nil {
			return err
		}
		sink, err := export.NewSink(cmd.Context(), cfg.Export)
		if err != nil {
			return err
		}

		sim, err := newSession(cfg, log, nil)
		if err != nil {
			return err
		}
		defer sim.Close()

		exporter := export.NewExporter(sink, clock.New(), nil, log)
		res, err := sim.Export(cmd.Context(), exporter, datasets, format)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, f := range res.Files {
			fmt.Fprintf(out, "%s (%d rows, %d bytes)\n", f.Location, f.Rows, f.Bytes)
		}
		for _, d := range res.Skipped {
			fmt.Fprintf(out, "skipped %s: no data\n", d)
		}
		fmt.Fprintln(out, res.Summary())
		return nil
	},
}

func init() {
	exportCmd.Flags().StringSlice("datasets", []string{"predictions", "restaurants"}, "Datasets: predictions, restaurants, historical, flagged")
	exportCmd.Flags().String("format", "csv", "Output format: csv, json or parquet")
	exportCmd.Flags().String("output", "exports", "Output directory for the local destination")
	exportCmd.Flags().String("destination", "local", "Destination: local or s3")
	exportCmd.Flags().String("bucket", "", "S3 bucket for the s3 destination")

	bindFlag(exportCmd, "export.datasets", "datasets")
	bindFlag(exportCmd, "export.format", "format")
	bindFlag(exportCmd, "export.output_path", "output")
	bindFlag(exportCmd, "export.destination", "destination")
	bindFlag(exportCmd, "export.s3_bucket", "bucket")
}
