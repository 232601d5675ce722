package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const envPrefix = "FOODPREDICT"

// DefaultSMSTemplate is the stock-out reminder sent to restaurants.
const DefaultSMSTemplate = "Hello, {restaurantName}! You lost GHS {lostRevenue} in sales yesterday. " +
	"During your peak time around {peakHour}, your {cancelledOrders} orders were canceled due to " +
	"{stockOutItems} being out of stock. We anticipate at least {predictedOrders} orders today. " +
	"Please ensure you have enough stock to avoid cancellation and loss of money. " +
	"Thank you for partnering with Hubtel."

type NotificationConfig struct {
	SuccessProbability float64       `mapstructure:"success_probability"`
	SendDelayMin       time.Duration `mapstructure:"send_delay_min"`
	SendDelayMax       time.Duration `mapstructure:"send_delay_max"`
	DeliveryDelayMin   time.Duration `mapstructure:"delivery_delay_min"`
	DeliveryDelayMax   time.Duration `mapstructure:"delivery_delay_max"`
	Template           string        `mapstructure:"template"`
}

type ExportConfig struct {
	Format      string   `mapstructure:"format"`
	Datasets    []string `mapstructure:"datasets"`
	OutputPath  string   `mapstructure:"output_path"`
	Destination string   `mapstructure:"destination"` // "local" or "s3"
	S3Bucket    string   `mapstructure:"s3_bucket"`
	S3Region    string   `mapstructure:"s3_region"`
	S3Prefix    string   `mapstructure:"s3_prefix"`
}

type EventsConfig struct {
	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
	NATSURL         string `mapstructure:"nats_url"`
	OutputPath      string `mapstructure:"output_path"`
	Console         bool   `mapstructure:"console"`
}

type Config struct {
	Seed                     int64              `mapstructure:"seed"`
	RestaurantCount          int                `mapstructure:"restaurant_count"`
	HistoryDays              int                `mapstructure:"history_days"`
	PredictionVariant        string             `mapstructure:"prediction_variant"`
	RefreshInterval          time.Duration      `mapstructure:"refresh_interval"`
	RefreshLatency           time.Duration      `mapstructure:"refresh_latency"`
	OrderVarianceThreshold   float64            `mapstructure:"order_variance_threshold"`
	RevenueVarianceThreshold float64            `mapstructure:"revenue_variance_threshold"`
	Bounds                   BoundingBox        `mapstructure:"bounds"`
	Notification             NotificationConfig `mapstructure:"notification"`
	Export                   ExportConfig       `mapstructure:"export"`
	Events                   EventsConfig       `mapstructure:"events"`
	HTTPAddr                 string             `mapstructure:"http_addr"`
	LogMode                  string             `mapstructure:"log_mode"`
}

// SetDefaults registers every config key so env overrides resolve even without a file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("seed", 0)
	v.SetDefault("restaurant_count", DefaultRestaurantCount)
	v.SetDefault("history_days", DefaultHistoryDays)
	v.SetDefault("prediction_variant", "volatile")
	v.SetDefault("refresh_interval", "24h")
	v.SetDefault("refresh_latency", "1s")
	v.SetDefault("order_variance_threshold", 10)
	v.SetDefault("revenue_variance_threshold", 100)
	v.SetDefault("bounds.min_lat", GhanaBounds.MinLat)
	v.SetDefault("bounds.max_lat", GhanaBounds.MaxLat)
	v.SetDefault("bounds.min_lon", GhanaBounds.MinLon)
	v.SetDefault("bounds.max_lon", GhanaBounds.MaxLon)

	v.SetDefault("notification.success_probability", 0.9)
	v.SetDefault("notification.send_delay_min", "1s")
	v.SetDefault("notification.send_delay_max", "3s")
	v.SetDefault("notification.delivery_delay_min", "2s")
	v.SetDefault("notification.delivery_delay_max", "5s")
	v.SetDefault("notification.template", DefaultSMSTemplate)

	v.SetDefault("export.format", "csv")
	v.SetDefault("export.datasets", []string{"predictions", "restaurants"})
	v.SetDefault("export.output_path", "exports")
	v.SetDefault("export.destination", "local")
	v.SetDefault("export.s3_region", "eu-west-1")

	v.SetDefault("events.kafka_enabled", false)
	v.SetDefault("events.kafka_broker_list", "localhost:9092")
	v.SetDefault("events.nats_url", "")
	v.SetDefault("events.output_path", "")
	v.SetDefault("events.console", false)

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("log_mode", "development")
}

// LoadConfig reads the optional config file, applies env overrides and decodes
// the result into a Config.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Prediction resolves the configured prediction variant.
func (cfg *Config) Prediction() PredictionParams {
	if p, ok := PredictionVariants[cfg.PredictionVariant]; ok {
		return p
	}
	return VolatilePrediction
}

func (cfg *Config) Validate() error {
	var errs []error
	if cfg.RestaurantCount < 0 {
		errs = append(errs, fmt.Errorf("restaurant_count must not be negative, got %d", cfg.RestaurantCount))
	}
	if cfg.HistoryDays < 0 {
		errs = append(errs, fmt.Errorf("history_days must not be negative, got %d", cfg.HistoryDays))
	}
	if _, ok := PredictionVariants[cfg.PredictionVariant]; !ok {
		errs = append(errs, fmt.Errorf("unknown prediction_variant %q", cfg.PredictionVariant))
	}
	if cfg.RefreshInterval <= 0 {
		errs = append(errs, errors.New("refresh_interval must be positive"))
	}
	if cfg.OrderVarianceThreshold < 0 || cfg.RevenueVarianceThreshold < 0 {
		errs = append(errs, errors.New("variance thresholds must not be negative"))
	}
	n := cfg.Notification
	if n.SuccessProbability < 0 || n.SuccessProbability > 1 {
		errs = append(errs, fmt.Errorf("notification.success_probability must be within [0,1], got %v", n.SuccessProbability))
	}
	if n.SendDelayMin < 0 || n.SendDelayMax < n.SendDelayMin {
		errs = append(errs, errors.New("notification send delay range is invalid"))
	}
	if n.DeliveryDelayMin < 0 || n.DeliveryDelayMax < n.DeliveryDelayMin {
		errs = append(errs, errors.New("notification delivery delay range is invalid"))
	}
	switch cfg.Export.Destination {
	case "local", "":
	case "s3":
		if cfg.Export.S3Bucket == "" {
			errs = append(errs, errors.New("export.s3_bucket is required for the s3 destination"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported export destination: %s", cfg.Export.Destination))
	}
	return errors.Join(errs...)
}
