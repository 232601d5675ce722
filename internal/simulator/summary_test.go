package simulator

import (
	"testing"

	"github.com/chrisdamba/foodpredict/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]models.Prediction{
		{PredictedOrders: 20, ExpectedRevenue: 300, PotentialRevenue: 400, RiskLevel: models.RiskHigh},
		{PredictedOrders: 10, ExpectedRevenue: 95, PotentialRevenue: 100, RiskLevel: models.RiskLow},
		{PredictedOrders: 5, ExpectedRevenue: 40, PotentialRevenue: 50, RiskLevel: models.RiskMedium},
	})
	assert.Equal(t, 3, s.Restaurants)
	assert.Equal(t, 35, s.TotalPredictedOrders)
	assert.Equal(t, 435, s.TotalExpectedRevenue)
	assert.Equal(t, 550, s.TotalPotentialRevenue)
	assert.Equal(t, 115, s.PotentialLoss())
	assert.Equal(t, 1, s.HighRiskCount)
	assert.Equal(t, map[models.RiskLevel]int{models.RiskLow: 1, models.RiskMedium: 1, models.RiskHigh: 1}, s.RiskBreakdown)

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.Restaurants)
	assert.Equal(t, 0, empty.RiskBreakdown[models.RiskHigh])
}

func TestCompare(t *testing.T) {
	restaurants := map[string]*models.Restaurant{
		"rest_1": {ID: "rest_1", Name: "Papaye Fast Food", AvgDailyOrders: 20},
		"rest_2": {ID: "rest_2", Name: "Buka", AvgDailyOrders: 40},
	}
	preds := []models.Prediction{
		{RestaurantID: "rest_1", PredictedOrders: 25},
		{RestaurantID: "rest_2", PredictedOrders: 30},
		{RestaurantID: "rest_3", PredictedOrders: 7},
	}

	got := Compare(preds, restaurants, 0)
	require.Len(t, got, 3)
	assert.Equal(t, Comparison{RestaurantID: "rest_1", Name: "Papaye", Predicted: 25, Historical: 20, VariancePercent: 25}, got[0])
	assert.Equal(t, -25.0, got[1].VariancePercent)
	assert.Equal(t, Comparison{RestaurantID: "rest_3", Name: "Unknown", Predicted: 7, Historical: 0, VariancePercent: 700}, got[2])

	assert.Len(t, Compare(preds, restaurants, 2), 2)
}
