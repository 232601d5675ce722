package export

import (
	"fmt"
	"strings"

	"github.com/chrisdamba/foodpredict/internal/models"
)

// HistoricalLimit caps the historical dataset to its first records.
const HistoricalLimit = 1000

const listSeparator = "; "

type Dataset string

const (
	DatasetPredictions Dataset = "predictions"
	DatasetRestaurants Dataset = "restaurants"
	DatasetHistorical  Dataset = "historical"
	DatasetFlagged     Dataset = "flagged"
)

// AllDatasets lists datasets in export order.
var AllDatasets = []Dataset{DatasetPredictions, DatasetRestaurants, DatasetHistorical, DatasetFlagged}

func ParseDataset(s string) (Dataset, error) {
	d := Dataset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllDatasets {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dataset %q", s)
}

func ParseDatasets(names []string) ([]Dataset, error) {
	out := make([]Dataset, 0, len(names))
	seen := map[Dataset]bool{}
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		d, err := ParseDataset(n)
		if err != nil {
			return nil, err
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out, nil
}

// FileStem is the file name prefix before the date.
func (d Dataset) FileStem() string {
	switch d {
	case DatasetHistorical:
		return "historical_data"
	case DatasetFlagged:
		return "flagged_restaurants"
	default:
		return string(d)
	}
}

// Source is the session data a dataset is projected from.
type Source struct {
	Restaurants []*models.Restaurant
	Historical  []models.HistoricalRecord
	Predictions []models.Prediction
}

type PredictionRow struct {
	RestaurantName   string `json:"restaurant_name" parquet:"name=restaurant_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Zone             string `json:"zone" parquet:"name=zone, type=BYTE_ARRAY, convertedtype=UTF8"`
	PredictedOrders  int64  `json:"predicted_orders" parquet:"name=predicted_orders, type=INT64"`
	ExpectedRevenue  int64  `json:"expected_revenue" parquet:"name=expected_revenue, type=INT64"`
	PotentialRevenue int64  `json:"potential_revenue" parquet:"name=potential_revenue, type=INT64"`
	ConfidenceLower  int64  `json:"confidence_lower" parquet:"name=confidence_lower, type=INT64"`
	ConfidenceUpper  int64  `json:"confidence_upper" parquet:"name=confidence_upper, type=INT64"`
	RiskLevel        string `json:"risk_level" parquet:"name=risk_level, type=BYTE_ARRAY, convertedtype=UTF8"`
	Date             string `json:"date" parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8"`
}

type RestaurantRow struct {
	ID               string  `json:"id" parquet:"name=id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Name             string  `json:"name" parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Zone             string  `json:"zone" parquet:"name=zone, type=BYTE_ARRAY, convertedtype=UTF8"`
	Contact          string  `json:"contact" parquet:"name=contact, type=BYTE_ARRAY, convertedtype=UTF8"`
	Location         string  `json:"location" parquet:"name=location, type=BYTE_ARRAY, convertedtype=UTF8"`
	AvgDailyOrders   int64   `json:"avg_daily_orders" parquet:"name=avg_daily_orders, type=INT64"`
	AvgRevenue       float64 `json:"avg_revenue" parquet:"name=avg_revenue, type=DOUBLE"`
	CancellationRate float64 `json:"cancellation_rate" parquet:"name=cancellation_rate, type=DOUBLE"`
	PeakHour         int64   `json:"peak_hour" parquet:"name=peak_hour, type=INT64"`
	TopItems         string  `json:"top_items" parquet:"name=top_items, type=BYTE_ARRAY, convertedtype=UTF8"`
}

type HistoricalRow struct {
	RestaurantID     string  `json:"restaurant_id" parquet:"name=restaurant_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Date             string  `json:"date" parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8"`
	Hour             int64   `json:"hour" parquet:"name=hour, type=INT64"`
	Orders           int64   `json:"orders" parquet:"name=orders, type=INT64"`
	Revenue          float64 `json:"revenue" parquet:"name=revenue, type=DOUBLE"`
	Cancellations    int64   `json:"cancellations" parquet:"name=cancellations, type=INT64"`
	CancelledRevenue float64 `json:"cancelled_revenue" parquet:"name=cancelled_revenue, type=DOUBLE"`
	StockOutItems    string  `json:"stock_out_items" parquet:"name=stock_out_items, type=BYTE_ARRAY, convertedtype=UTF8"`
}

type FlaggedRow struct {
	RestaurantName   string  `json:"restaurant_name" parquet:"name=restaurant_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Zone             string  `json:"zone" parquet:"name=zone, type=BYTE_ARRAY, convertedtype=UTF8"`
	Contact          string  `json:"contact" parquet:"name=contact, type=BYTE_ARRAY, convertedtype=UTF8"`
	PredictedOrders  int64   `json:"predicted_orders" parquet:"name=predicted_orders, type=INT64"`
	ExpectedRevenue  int64   `json:"expected_revenue" parquet:"name=expected_revenue, type=INT64"`
	PotentialLoss    int64   `json:"potential_loss" parquet:"name=potential_loss, type=INT64"`
	RiskLevel        string  `json:"risk_level" parquet:"name=risk_level, type=BYTE_ARRAY, convertedtype=UTF8"`
	CancellationRate float64 `json:"cancellation_rate" parquet:"name=cancellation_rate, type=DOUBLE"`
}

func PredictionRows(src Source) []PredictionRow {
	index := models.IndexRestaurants(src.Restaurants)
	rows := make([]PredictionRow, 0, len(src.Predictions))
	for _, p := range src.Predictions {
		name, zone := "Unknown", ""
		if r, ok := index[p.RestaurantID]; ok {
			name, zone = r.Name, r.Zone
		}
		rows = append(rows, PredictionRow{
			RestaurantName:   name,
			Zone:             zone,
			PredictedOrders:  int64(p.PredictedOrders),
			ExpectedRevenue:  int64(p.ExpectedRevenue),
			PotentialRevenue: int64(p.PotentialRevenue),
			ConfidenceLower:  int64(p.ConfidenceInterval.Lower),
			ConfidenceUpper:  int64(p.ConfidenceInterval.Upper),
			RiskLevel:        string(p.RiskLevel),
			Date:             p.Date,
		})
	}
	return rows
}

func RestaurantRows(src Source) []RestaurantRow {
	rows := make([]RestaurantRow, 0, len(src.Restaurants))
	for _, r := range src.Restaurants {
		rows = append(rows, RestaurantRow{
			ID:               r.ID,
			Name:             r.Name,
			Zone:             r.Zone,
			Contact:          r.Contact,
			Location:         r.Location,
			AvgDailyOrders:   int64(r.AvgDailyOrders),
			AvgRevenue:       r.AvgRevenue,
			CancellationRate: r.CancellationRate,
			PeakHour:         int64(r.PeakHour),
			TopItems:         strings.Join(r.TopItems, listSeparator),
		})
	}
	return rows
}

func HistoricalRows(src Source) []HistoricalRow {
	records := src.Historical
	if len(records) > HistoricalLimit {
		records = records[:HistoricalLimit]
	}
	rows := make([]HistoricalRow, 0, len(records))
	for _, h := range records {
		rows = append(rows, HistoricalRow{
			RestaurantID:     h.RestaurantID,
			Date:             h.Date,
			Hour:             int64(h.Hour),
			Orders:           int64(h.Orders),
			Revenue:          h.Revenue,
			Cancellations:    int64(h.Cancellations),
			CancelledRevenue: h.CancelledRevenue,
			StockOutItems:    strings.Join(h.StockOutItems, listSeparator),
		})
	}
	return rows
}

// FlaggedRows keeps high-risk predictions only.
func FlaggedRows(src Source) []FlaggedRow {
	index := models.IndexRestaurants(src.Restaurants)
	var rows []FlaggedRow
	for _, p := range src.Predictions {
		if p.RiskLevel != models.RiskHigh {
			continue
		}
		row := FlaggedRow{
			RestaurantName:  "Unknown",
			PredictedOrders: int64(p.PredictedOrders),
			ExpectedRevenue: int64(p.ExpectedRevenue),
			PotentialLoss:   int64(p.PotentialLoss()),
			RiskLevel:       string(p.RiskLevel),
		}
		if r, ok := index[p.RestaurantID]; ok {
			row.RestaurantName, row.Zone, row.Contact = r.Name, r.Zone, r.Contact
			row.CancellationRate = r.CancellationRate
		}
		rows = append(rows, row)
	}
	return rows
}
