package models

type ConfidenceInterval struct {
	Lower int `json:"lower"`
	Upper int `json:"upper"`
}

// Prediction is the next-day forecast for one restaurant.
type Prediction struct {
	RestaurantID       string             `json:"restaurant_id"`
	Date               string             `json:"date"`
	PredictedOrders    int                `json:"predicted_orders"`
	ExpectedRevenue    int                `json:"expected_revenue"`
	PotentialRevenue   int                `json:"potential_revenue"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	RiskLevel          RiskLevel          `json:"risk_level"`
	OrderVariance      int                `json:"order_variance"`   // predicted - historical average
	RevenueVariance    int                `json:"revenue_variance"` // expected - historical average
}

// PotentialLoss is the revenue expected to be lost to cancellations.
func (p *Prediction) PotentialLoss() int {
	return p.PotentialRevenue - p.ExpectedRevenue
}

// PredictionParams controls the forecast draw.
type PredictionParams struct {
	MultiplierMin    float64 `mapstructure:"multiplier_min" json:"multiplier_min"`
	MultiplierMax    float64 `mapstructure:"multiplier_max" json:"multiplier_max"`
	VarianceFraction float64 `mapstructure:"variance_fraction" json:"variance_fraction"`
}

var (
	// StandardPrediction keeps forecasts close to the baseline.
	StandardPrediction = PredictionParams{MultiplierMin: 0.9, MultiplierMax: 1.1, VarianceFraction: 0.15}
	// VolatilePrediction widens the draw so risk becomes visible.
	VolatilePrediction = PredictionParams{MultiplierMin: 0.7, MultiplierMax: 1.3, VarianceFraction: 0.25}
)

// PredictionVariants maps config names to parameter presets.
var PredictionVariants = map[string]PredictionParams{
	"standard": StandardPrediction,
	"volatile": VolatilePrediction,
}
