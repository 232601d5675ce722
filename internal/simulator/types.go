package simulator

import (
	"time"
)

const (
	TopicPredictionRefresh  = "prediction_refresh_events"
	TopicValidationChange   = "validation_events"
	TopicNotificationStatus = "notification_status_events"
	TopicExport             = "export_events"
)

// BaseEvent is the common structure for all events
type BaseEvent struct {
	Timestamp int64  `json:"timestamp"`
	EventType string `json:"eventType"`
}

func NewBaseEvent(eventType string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		Timestamp: timestamp.Unix(),
		EventType: eventType,
	}
}

// PredictionRefreshEvent is emitted after a prediction set replaces the previous one.
type PredictionRefreshEvent struct {
	BaseEvent
	PredictionDate        string `json:"predictionDate"`
	Restaurants           int    `json:"restaurants"`
	TotalPredictedOrders  int    `json:"totalPredictedOrders"`
	TotalExpectedRevenue  int    `json:"totalExpectedRevenue"`
	TotalPotentialRevenue int    `json:"totalPotentialRevenue"`
	HighRisk              int    `json:"highRisk"`
	Validated             int    `json:"validated"`
	Unusual               int    `json:"unusual"`
}

// ValidationChangeEvent records an operator change to thresholds or selection.
type ValidationChangeEvent struct {
	BaseEvent
	Action           string  `json:"action"`
	RestaurantID     string  `json:"restaurantId,omitempty"`
	OrderThreshold   float64 `json:"orderThreshold"`
	RevenueThreshold float64 `json:"revenueThreshold"`
	Validated        int     `json:"validated"`
}

// NotificationStatusEvent is one simulated SMS status transition.
type NotificationStatusEvent struct {
	BaseEvent
	DeploymentID string `json:"deploymentId"`
	RestaurantID string `json:"restaurantId"`
	Status       string `json:"status"`
}

// ExportEvent summarises a finished export job.
type ExportEvent struct {
	BaseEvent
	ExportID string   `json:"exportId"`
	Format   string   `json:"format"`
	Files    []string `json:"files"`
}
