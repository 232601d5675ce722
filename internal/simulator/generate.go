package simulator

import (
	"math"
	"math/rand"
	"time"

	"github.com/chrisdamba/foodpredict/internal/factories"
	"github.com/chrisdamba/foodpredict/internal/models"
)

// DateLayout is the calendar-date format used by records, predictions and file names.
const DateLayout = "2006-01-02"

// GenerateRestaurants builds count restaurants with sequential ids.
func GenerateRestaurants(rng *rand.Rand, count int, bounds models.BoundingBox) []*models.Restaurant {
	rf := factories.NewRestaurantFactory(rng, bounds)
	restaurants := make([]*models.Restaurant, count)
	for i := range restaurants {
		restaurants[i] = rf.CreateRestaurant(i)
	}
	return restaurants
}

// GenerateHistoricalData produces hourly records for the trailing days ending on
// today, newest day first. Hours with no orders are dropped.
func GenerateHistoricalData(rng *rand.Rand, restaurants []*models.Restaurant, days int, today time.Time) []models.HistoricalRecord {
	var data []models.HistoricalRecord
	for day := 0; day < days; day++ {
		date := today.AddDate(0, 0, -day).UTC().Format(DateLayout)

		for _, r := range restaurants {
			aov := r.AvgOrderValue()
			for hour := models.HistoryStartHour; hour < models.HistoryEndHour; hour++ {
				base := baseHourlyOrders(r.AvgDailyOrders, hour, r.PeakHour)
				orders := int(math.Floor(jitterOrders(rng, base)))
				revenue := float64(orders) * aov * uniform(rng, revenueJitterMin, revenueJitterMax)
				cancellations := int(math.Floor(float64(orders) * r.CancellationRate * rng.Float64()))

				var stockOut []string
				if cancellations > 0 {
					n := rng.Intn(maxStockOutItems) + 1
					stockOut = append([]string(nil), r.TopItems[:n]...)
				}

				if orders <= 0 {
					continue
				}
				data = append(data, models.HistoricalRecord{
					RestaurantID:     r.ID,
					Date:             date,
					Hour:             hour,
					Orders:           orders,
					Revenue:          revenue,
					Cancellations:    cancellations,
					CancelledRevenue: float64(cancellations) * aov,
					StockOutItems:    stockOut,
				})
			}
		}
	}
	return data
}

// GeneratePredictions forecasts the day after now for every restaurant. Each
// call draws fresh multipliers, so repeated calls differ in value only.
func GeneratePredictions(rng *rand.Rand, restaurants []*models.Restaurant, params models.PredictionParams, now time.Time) []models.Prediction {
	date := now.UTC().AddDate(0, 0, 1).Format(DateLayout)

	predictions := make([]models.Prediction, len(restaurants))
	for i, r := range restaurants {
		predictions[i] = predict(r, uniform(rng, params.MultiplierMin, params.MultiplierMax), params.VarianceFraction, date)
	}
	return predictions
}

// predict derives every figure from the unrounded forecast and rounds once at the end.
func predict(r *models.Restaurant, multiplier, varianceFraction float64, date string) models.Prediction {
	predicted := float64(r.AvgDailyOrders) * multiplier
	halfWidth := varianceFraction * predicted
	potential := predicted * r.AvgOrderValue()
	expected := potential * (1 - r.CancellationRate)

	return models.Prediction{
		RestaurantID:     r.ID,
		Date:             date,
		PredictedOrders:  roundInt(predicted),
		ExpectedRevenue:  roundInt(expected),
		PotentialRevenue: roundInt(potential),
		ConfidenceInterval: models.ConfidenceInterval{
			Lower: roundInt(predicted - halfWidth),
			Upper: roundInt(predicted + halfWidth),
		},
		RiskLevel:       r.RiskLevel(),
		OrderVariance:   roundInt(predicted - float64(r.AvgDailyOrders)),
		RevenueVariance: roundInt(expected - r.AvgRevenue),
	}
}

func roundInt(f float64) int {
	return int(math.Round(f))
}
