package cmd

import (
	"fmt"
	"os"

	"github.com/chrisdamba/foodpredict/internal/logger"
	"github.com/chrisdamba/foodpredict/internal/metrics"
	"github.com/chrisdamba/foodpredict/internal/models"
	"github.com/chrisdamba/foodpredict/internal/simulator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "foodpredict",
	Short: "Simulates next-day order predictions for food delivery restaurants",
	Long: `foodpredict generates a synthetic restaurant population with order history, forecasts
next-day demand and cancellation losses, flags unusual forecasts for review and simulates
SMS stock-out reminders to the restaurants an operator validates.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml or json)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed, 0 for a time-based seed")
	rootCmd.PersistentFlags().Int("restaurants", models.DefaultRestaurantCount, "Number of restaurants to generate")
	rootCmd.PersistentFlags().Int("history-days", models.DefaultHistoryDays, "Days of hourly order history to generate")
	rootCmd.PersistentFlags().String("variant", "volatile", "Prediction variant: standard or volatile")
	rootCmd.PersistentFlags().String("log-mode", "development", "Log mode: development or production")

	bindFlag(rootCmd, "seed", "seed")
	bindFlag(rootCmd, "restaurant_count", "restaurants")
	bindFlag(rootCmd, "history_days", "history-days")
	bindFlag(rootCmd, "prediction_variant", "variant")
	bindFlag(rootCmd, "log_mode", "log-mode")

	rootCmd.AddCommand(serveCmd, generateCmd, exportCmd, deployCmd)
}

// bindFlag maps a flag onto a config key. Flags only win when set explicitly.
func bindFlag(c *cobra.Command, key, flag string) {
	f := c.Flags().Lookup(flag)
	if f == nil {
		f = c.PersistentFlags().Lookup(flag)
	}
	cobra.CheckErr(v.BindPFlag(key, f))
}

func loadConfig() (*models.Config, *logger.Logger, error) {
	cfg, err := models.LoadConfig(v, cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating logger: %w", err)
	}
	if cfgFile != "" {
		log.Info("using config file", "path", cfgFile)
	}
	return cfg, log, nil
}

// newSession builds the simulator and its event output from cfg.
func newSession(cfg *models.Config, log *logger.Logger, m *metrics.Metrics) (*simulator.Simulator, error) {
	output, err := simulator.NewOutputDestination(cfg.Events, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create event output: %w", err)
	}
	opts := []simulator.Option{simulator.WithLogger(log), simulator.WithMetrics(m)}
	if output != nil {
		opts = append(opts, simulator.WithOutput(output))
	}
	sim, err := simulator.NewSimulator(cfg, opts...)
	if err != nil {
		if output != nil {
			_ = output.Close()
		}
		return nil, err
	}
	return sim, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
