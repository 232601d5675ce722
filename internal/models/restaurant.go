package models

// Restaurant is the behavioural baseline for one vendor. It is created once per
// session and never mutated afterwards.
type Restaurant struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Zone             string      `json:"zone"`
	Contact          string      `json:"contact"`
	Location         string      `json:"location"`
	AvgDailyOrders   int         `json:"avg_daily_orders"`
	AvgRevenue       float64     `json:"avg_revenue"`
	CancellationRate float64     `json:"cancellation_rate"`
	PeakHour         int         `json:"peak_hour"`
	TopItems         []string    `json:"top_items"`
	Coordinates      Coordinates `json:"coordinates"`
}

// AvgOrderValue is the revenue attributed to a single order. AvgDailyOrders is
// always at least one, so the division is safe for factory-built restaurants.
func (r *Restaurant) AvgOrderValue() float64 {
	return r.AvgRevenue / float64(r.AvgDailyOrders)
}

// RiskLevel classifies the restaurant's cancellation exposure. It depends only on
// the restaurant, never on a forecast draw.
func (r *Restaurant) RiskLevel() RiskLevel {
	switch {
	case r.CancellationRate > HighRiskCancellationRate:
		return RiskHigh
	case r.CancellationRate > MediumRiskCancellationRate:
		return RiskMedium
	default:
		return RiskLow
	}
}

// IndexRestaurants builds an id lookup for joins.
func IndexRestaurants(restaurants []*Restaurant) map[string]*Restaurant {
	index := make(map[string]*Restaurant, len(restaurants))
	for _, r := range restaurants {
		index[r.ID] = r
	}
	return index
}
