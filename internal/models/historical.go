package models

// HistoricalRecord is one observed (restaurant, date, hour) bucket. Zero-order
// hours are never recorded.
type HistoricalRecord struct {
	RestaurantID     string   `json:"restaurant_id"`
	Date             string   `json:"date"`
	Hour             int      `json:"hour"`
	Orders           int      `json:"orders"`
	Revenue          float64  `json:"revenue"`
	Cancellations    int      `json:"cancellations"`
	CancelledRevenue float64  `json:"cancelled_revenue"`
	StockOutItems    []string `json:"stock_out_items"`
}
