package simulator

import (
	"fmt"

	"github.com/chrisdamba/foodpredict/internal/notification"
	"github.com/chrisdamba/foodpredict/internal/validation"
)

// UpdateThresholds changes the variance thresholds and recomputes validation.
func (s *Simulator) UpdateThresholds(t validation.Thresholds) error {
	if err := s.Validator.SetThresholds(t); err != nil {
		return err
	}
	s.validationChanged("thresholds", "")
	return nil
}

func (s *Simulator) ToggleValidation(restaurantID string) (bool, error) {
	on, err := s.Validator.Toggle(restaurantID)
	if err != nil {
		return on, err
	}
	s.validationChanged("toggle", restaurantID)
	return on, nil
}

func (s *Simulator) SelectAll(query string) {
	s.Validator.SelectAll(query)
	s.validationChanged("select_all", "")
}

func (s *Simulator) SelectOnlyNormal() {
	s.Validator.OnlyNormal()
	s.validationChanged("only_normal", "")
}

func (s *Simulator) validationChanged(action, restaurantID string) {
	t := s.Validator.Thresholds()
	validated := len(s.Validator.Validated())
	s.metrics.SetValidated(validated)
	s.publish(TopicValidationChange, ValidationChangeEvent{
		BaseEvent:        NewBaseEvent("validation_change", s.clock.Now()),
		Action:           action,
		RestaurantID:     restaurantID,
		OrderThreshold:   t.OrderVariance,
		RevenueThreshold: t.RevenueVariance,
		Validated:        validated,
	})
}

// Targets resolves restaurant ids against the current prediction set. Unknown
// ids are skipped; a missing prediction is left nil for the deployer to reject.
func (s *Simulator) Targets(ids []string) []notification.Target {
	preds := s.Predictions()
	byID := make(map[string]int, len(preds))
	for i, p := range preds {
		byID[p.RestaurantID] = i
	}
	targets := make([]notification.Target, 0, len(ids))
	for _, id := range ids {
		r, ok := s.RestaurantIndex[id]
		if !ok {
			continue
		}
		t := notification.Target{Restaurant: r}
		if i, ok := byID[id]; ok {
			p := preds[i]
			t.Prediction = &p
		}
		targets = append(targets, t)
	}
	return targets
}

// Preview renders the message for one restaurant.
func (s *Simulator) Preview(template, restaurantID string) (string, error) {
	targets := s.Targets([]string{restaurantID})
	if len(targets) == 0 {
		return "", fmt.Errorf("%w: %s", validation.ErrUnknownRestaurant, restaurantID)
	}
	return s.Deployer.Preview(template, targets[0])
}

// Deploy sends template to every validated restaurant.
func (s *Simulator) Deploy(template string) (*notification.Deployment, error) {
	dep, err := s.Deployer.Deploy(template, s.Targets(s.Validator.Validated()))
	if err != nil {
		return nil, err
	}
	s.deployMu.Lock()
	s.deployments[dep.ID] = dep
	s.deployMu.Unlock()
	s.metrics.RecordDeployment()
	return dep, nil
}

func (s *Simulator) Deployment(id string) (*notification.Deployment, error) {
	s.deployMu.RLock()
	defer s.deployMu.RUnlock()
	dep, ok := s.deployments[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDeployment, id)
	}
	return dep, nil
}

func (s *Simulator) onDeliveryUpdate(u notification.Update) {
	s.metrics.RecordDeliveryStatus(string(u.Status))
	s.publish(TopicNotificationStatus, NotificationStatusEvent{
		BaseEvent:    NewBaseEvent("notification_status", u.At),
		DeploymentID: u.DeploymentID,
		RestaurantID: u.RestaurantID,
		Status:       string(u.Status),
	})
}

// Close cancels running deployments and closes the event output.
func (s *Simulator) Close() error {
	s.deployMu.RLock()
	for _, dep := range s.deployments {
		dep.Cancel()
	}
	s.deployMu.RUnlock()
	if s.output != nil {
		return s.output.Close()
	}
	return nil
}
