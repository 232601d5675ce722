package simulator

import (
	"strings"

	"github.com/chrisdamba/foodpredict/internal/models"
)

// DefaultComparisonLimit caps the prediction vs history chart.
const DefaultComparisonLimit = 20

type Summary struct {
	Restaurants           int                      `json:"restaurants"`
	TotalPredictedOrders  int                      `json:"total_predicted_orders"`
	TotalExpectedRevenue  int                      `json:"total_expected_revenue"`
	TotalPotentialRevenue int                      `json:"total_potential_revenue"`
	HighRiskCount         int                      `json:"high_risk_count"`
	RiskBreakdown         map[models.RiskLevel]int `json:"risk_breakdown"`
}

// PotentialLoss is the revenue at risk across all predictions.
func (s Summary) PotentialLoss() int {
	return s.TotalPotentialRevenue - s.TotalExpectedRevenue
}

func Summarize(predictions []models.Prediction) Summary {
	s := Summary{
		Restaurants: len(predictions),
		RiskBreakdown: map[models.RiskLevel]int{
			models.RiskLow:    0,
			models.RiskMedium: 0,
			models.RiskHigh:   0,
		},
	}
	for _, p := range predictions {
		s.TotalPredictedOrders += p.PredictedOrders
		s.TotalExpectedRevenue += p.ExpectedRevenue
		s.TotalPotentialRevenue += p.PotentialRevenue
		s.RiskBreakdown[p.RiskLevel]++
	}
	s.HighRiskCount = s.RiskBreakdown[models.RiskHigh]
	return s
}

// Comparison sets a forecast against the restaurant's historical average.
type Comparison struct {
	RestaurantID    string  `json:"restaurant_id"`
	Name            string  `json:"name"`
	Predicted       int     `json:"predicted"`
	Historical      int     `json:"historical"`
	VariancePercent float64 `json:"variance_percent"`
}

// Compare returns the first limit predictions alongside their baselines. The
// chart label is the first word of the restaurant name.
func Compare(predictions []models.Prediction, restaurants map[string]*models.Restaurant, limit int) []Comparison {
	if limit <= 0 || limit > len(predictions) {
		limit = len(predictions)
	}
	out := make([]Comparison, 0, limit)
	for _, p := range predictions[:limit] {
		c := Comparison{RestaurantID: p.RestaurantID, Name: "Unknown", Predicted: p.PredictedOrders}
		divisor := 1
		if r, ok := restaurants[p.RestaurantID]; ok {
			if fields := strings.Fields(r.Name); len(fields) > 0 {
				c.Name = fields[0]
			}
			c.Historical = r.AvgDailyOrders
			if r.AvgDailyOrders > 0 {
				divisor = r.AvgDailyOrders
			}
		}
		c.VariancePercent = float64(p.PredictedOrders-c.Historical) / float64(divisor) * 100
		out = append(out, c)
	}
	return out
}
