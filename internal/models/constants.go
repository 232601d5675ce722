package models

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"

	HighRiskCancellationRate   = 0.2
	MediumRiskCancellationRate = 0.1
)

// DeliveryStatus is the simulated SMS outcome for one restaurant.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// Terminal reports whether no further transition is possible.
func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryDelivered || s == DeliveryFailed
}

// CanTransition enforces pending -> {sent, failed} and sent -> delivered.
func (s DeliveryStatus) CanTransition(next DeliveryStatus) bool {
	switch s {
	case DeliveryPending:
		return next == DeliverySent || next == DeliveryFailed
	case DeliverySent:
		return next == DeliveryDelivered
	default:
		return false
	}
}

const (
	HistoryStartHour = 6
	HistoryEndHour   = 22 // exclusive

	DefaultRestaurantCount = 280
	DefaultHistoryDays     = 30
)
