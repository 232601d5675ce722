// Package validation splits predictions into auto-approved and operator-reviewed
// sets and tracks which restaurants are cleared to receive notifications.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/chrisdamba/foodpredict/internal/models"
)

var (
	ErrUnknownRestaurant = errors.New("unknown restaurant")
	ErrNotUnusual        = errors.New("restaurant is within thresholds")
)

type Thresholds struct {
	OrderVariance   float64 `json:"order_variance"`
	RevenueVariance float64 `json:"revenue_variance"`
}

func (t Thresholds) Validate() error {
	if t.OrderVariance < 0 || t.RevenueVariance < 0 || math.IsNaN(t.OrderVariance) || math.IsNaN(t.RevenueVariance) {
		return fmt.Errorf("invalid thresholds %+v: must be non-negative numbers", t)
	}
	return nil
}

// IsNormal reports whether both variances are inside the thresholds.
func (t Thresholds) IsNormal(p models.Prediction) bool {
	return math.Abs(float64(p.OrderVariance)) <= t.OrderVariance &&
		math.Abs(float64(p.RevenueVariance)) <= t.RevenueVariance
}

// Result lists restaurant ids in prediction order. Every id lands in exactly one slice.
type Result struct {
	Normal  []string `json:"normal"`
	Unusual []string `json:"unusual"`
}

func Partition(predictions []models.Prediction, t Thresholds) Result {
	var res Result
	for _, p := range predictions {
		if t.IsNormal(p) {
			res.Normal = append(res.Normal, p.RestaurantID)
		} else {
			res.Unusual = append(res.Unusual, p.RestaurantID)
		}
	}
	return res
}

// Flagged is an unusual prediction awaiting an operator decision.
type Flagged struct {
	RestaurantID    string           `json:"restaurant_id"`
	Name            string           `json:"name"`
	Zone            string           `json:"zone"`
	PredictedOrders int              `json:"predicted_orders"`
	ExpectedRevenue int              `json:"expected_revenue"`
	OrderVariance   int              `json:"order_variance"`
	RevenueVariance int              `json:"revenue_variance"`
	RiskLevel       models.RiskLevel `json:"risk_level"`
	Validated       bool             `json:"validated"`
}

type State struct {
	Thresholds Thresholds `json:"thresholds"`
	Normal     []string   `json:"normal"`
	Unusual    []Flagged  `json:"unusual"`
	Validated  []string   `json:"validated"`
}

// Validator owns the validated set. Normal ids are always validated; unusual ids
// are validated only by explicit operator action. Every write swaps in a fresh
// set so snapshots handed to readers never change underneath them.
type Validator struct {
	mu          sync.RWMutex
	thresholds  Thresholds
	restaurants map[string]*models.Restaurant
	predictions []models.Prediction
	byID        map[string]models.Prediction
	unusual     map[string]bool
	validated   map[string]bool
}

func NewValidator(t Thresholds, restaurants map[string]*models.Restaurant) (*Validator, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Validator{
		thresholds:  t,
		restaurants: restaurants,
		byID:        map[string]models.Prediction{},
		unusual:     map[string]bool{},
		validated:   map[string]bool{},
	}, nil
}

// SetPredictions replaces the prediction set and recomputes the partition.
func (v *Validator) SetPredictions(predictions []models.Prediction) {
	byID := make(map[string]models.Prediction, len(predictions))
	for _, p := range predictions {
		byID[p.RestaurantID] = p
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.predictions = predictions
	v.byID = byID
	v.recomputeLocked()
}

// SetThresholds recomputes synchronously. Overrides survive only for ids that
// were unusual before and are still unusual after.
func (v *Validator) SetThresholds(t Thresholds) error {
	if err := t.Validate(); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.thresholds = t
	v.recomputeLocked()
	return nil
}

func (v *Validator) recomputeLocked() {
	unusual := make(map[string]bool)
	validated := make(map[string]bool, len(v.predictions))
	for _, p := range v.predictions {
		id := p.RestaurantID
		if v.thresholds.IsNormal(p) {
			validated[id] = true
			continue
		}
		unusual[id] = true
		if v.unusual[id] && v.validated[id] {
			validated[id] = true
		}
	}
	v.unusual = unusual
	v.validated = validated
}

func (v *Validator) Thresholds() Thresholds {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.thresholds
}

// Toggle flips an unusual restaurant in or out of the validated set and returns
// its new membership.
func (v *Validator) Toggle(id string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.byID[id]; !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownRestaurant, id)
	}
	if !v.unusual[id] {
		return true, fmt.Errorf("%w: %s", ErrNotUnusual, id)
	}
	validated := v.copyValidatedLocked()
	if validated[id] {
		delete(validated, id)
	} else {
		validated[id] = true
	}
	v.validated = validated
	return validated[id], nil
}

// SelectAll validates every normal id plus the unusual ids matching query.
// Unusual ids outside the filter are cleared.
func (v *Validator) SelectAll(query string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	validated := make(map[string]bool, len(v.predictions))
	for _, p := range v.predictions {
		id := p.RestaurantID
		if !v.unusual[id] || v.matchesLocked(id, query) {
			validated[id] = true
		}
	}
	v.validated = validated
}

// OnlyNormal clears every manual override.
func (v *Validator) OnlyNormal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	validated := make(map[string]bool, len(v.predictions))
	for _, p := range v.predictions {
		if !v.unusual[p.RestaurantID] {
			validated[p.RestaurantID] = true
		}
	}
	v.validated = validated
}

func (v *Validator) IsValidated(id string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.validated[id]
}

// Validated returns the validated ids in prediction order.
func (v *Validator) Validated() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	ids := make([]string, 0, len(v.validated))
	for _, p := range v.predictions {
		if v.validated[p.RestaurantID] {
			ids = append(ids, p.RestaurantID)
		}
	}
	return ids
}

// State reports the partition with unusual entries narrowed by query.
func (v *Validator) State(query string) State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	st := State{Thresholds: v.thresholds, Normal: []string{}, Unusual: []Flagged{}, Validated: []string{}}
	for _, p := range v.predictions {
		id := p.RestaurantID
		if v.validated[id] {
			st.Validated = append(st.Validated, id)
		}
		if !v.unusual[id] {
			st.Normal = append(st.Normal, id)
			continue
		}
		if !v.matchesLocked(id, query) {
			continue
		}
		f := Flagged{
			RestaurantID:    id,
			PredictedOrders: p.PredictedOrders,
			ExpectedRevenue: p.ExpectedRevenue,
			OrderVariance:   p.OrderVariance,
			RevenueVariance: p.RevenueVariance,
			RiskLevel:       p.RiskLevel,
			Validated:       v.validated[id],
		}
		if r, ok := v.restaurants[id]; ok {
			f.Name, f.Zone = r.Name, r.Zone
		}
		st.Unusual = append(st.Unusual, f)
	}
	return st
}

// matchesLocked is a case-insensitive substring match on name or zone.
func (v *Validator) matchesLocked(id, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	r, ok := v.restaurants[id]
	if !ok {
		return false
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Zone), q)
}

func (v *Validator) copyValidatedLocked() map[string]bool {
	out := make(map[string]bool, len(v.validated)+1)
	for id := range v.validated {
		out[id] = true
	}
	return out
}
