package notification

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chrisdamba/foodpredict/internal/clock"
	"github.com/chrisdamba/foodpredict/internal/models"
)

// Outcomes is an immutable snapshot of delivery status by restaurant id.
type Outcomes map[string]models.DeliveryStatus

// Summary counts outcomes. Done is set once nothing can change any more.
type Summary struct {
	DeploymentID string `json:"deployment_id"`
	Total        int    `json:"total"`
	Pending      int    `json:"pending"`
	Sent         int    `json:"sent"`
	Delivered    int    `json:"delivered"`
	Failed       int    `json:"failed"`
	Done         bool   `json:"done"`
	Cancelled    bool   `json:"cancelled"`
}

// Succeeded counts messages accepted by the gateway, delivered or not.
func (s Summary) Succeeded() int { return s.Sent + s.Delivered }

func (s Summary) Message() string {
	return fmt.Sprintf("%d messages sent successfully, %d failed.", s.Succeeded(), s.Failed)
}

// Update is one observed status transition.
type Update struct {
	DeploymentID string
	RestaurantID string
	Status       models.DeliveryStatus
	At           time.Time
}

// Deployment tracks one batch of simulated sends. Each status change swaps in a
// new Outcomes map, so readers always see a consistent snapshot.
type Deployment struct {
	ID        string
	StartedAt time.Time

	order    []string
	messages map[string]string
	clock    clock.Clock
	observe  func(Update)
	outcomes atomic.Pointer[Outcomes]

	mu         sync.Mutex
	timers     map[string]clock.Timer
	unresolved int
	cancelled  bool
	done       chan struct{}
}

func newDeployment(id string, clk clock.Clock, order []string, messages map[string]string, observe func(Update)) *Deployment {
	initial := make(Outcomes, len(order))
	for _, rid := range order {
		initial[rid] = models.DeliveryPending
	}
	d := &Deployment{
		ID:         id,
		StartedAt:  clk.Now(),
		order:      order,
		messages:   messages,
		clock:      clk,
		observe:    observe,
		timers:     make(map[string]clock.Timer, len(order)),
		unresolved: len(order),
		done:       make(chan struct{}),
	}
	d.outcomes.Store(&initial)
	if d.unresolved == 0 {
		close(d.done)
	}
	return d
}

// Recipients returns restaurant ids in send order.
func (d *Deployment) Recipients() []string {
	return append([]string(nil), d.order...)
}

// Message returns the rendered text sent to a restaurant.
func (d *Deployment) Message(restaurantID string) (string, bool) {
	m, ok := d.messages[restaurantID]
	return m, ok
}

// Outcomes returns the current snapshot. Callers must not modify it.
func (d *Deployment) Outcomes() Outcomes {
	return *d.outcomes.Load()
}

func (d *Deployment) Status(restaurantID string) (models.DeliveryStatus, bool) {
	s, ok := d.Outcomes()[restaurantID]
	return s, ok
}

// Done is closed when every recipient has reached a terminal state or the
// deployment was cancelled.
func (d *Deployment) Done() <-chan struct{} {
	return d.done
}

func (d *Deployment) Wait(ctx context.Context) (Summary, error) {
	select {
	case <-d.done:
		return d.Summary(), nil
	case <-ctx.Done():
		return d.Summary(), ctx.Err()
	}
}

func (d *Deployment) Summary() Summary {
	s := Summary{DeploymentID: d.ID}
	for _, status := range d.Outcomes() {
		s.Total++
		switch status {
		case models.DeliveryPending:
			s.Pending++
		case models.DeliverySent:
			s.Sent++
		case models.DeliveryDelivered:
			s.Delivered++
		case models.DeliveryFailed:
			s.Failed++
		}
	}
	d.mu.Lock()
	s.Cancelled = d.cancelled
	d.mu.Unlock()
	select {
	case <-d.done:
		s.Done = true
	default:
	}
	return s
}

// Cancel stops outstanding timers. Pending recipients fail; sent ones stay
// sent. It reports false if the deployment had already finished.
func (d *Deployment) Cancel() bool {
	d.mu.Lock()
	select {
	case <-d.done:
		d.mu.Unlock()
		return false
	default:
	}
	d.cancelled = true
	for rid, t := range d.timers {
		t.Stop()
		delete(d.timers, rid)
	}

	var failed []Update
	next := d.copyLocked()
	for _, rid := range d.order {
		if next[rid] == models.DeliveryPending {
			next[rid] = models.DeliveryFailed
			failed = append(failed, Update{DeploymentID: d.ID, RestaurantID: rid, Status: models.DeliveryFailed, At: d.clock.Now()})
		}
	}
	d.outcomes.Store(&next)
	close(d.done)
	d.mu.Unlock()

	for _, u := range failed {
		d.notify(u)
	}
	return true
}

// schedule arms the send timer for one recipient.
func (d *Deployment) schedule(rid string, draw sendDraw) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timers[rid] = d.clock.AfterFunc(draw.sendDelay, func() { d.resolveSend(rid, draw) })
}

func (d *Deployment) resolveSend(rid string, draw sendDraw) {
	next := models.DeliveryFailed
	if draw.success {
		next = models.DeliverySent
	}
	if !d.transition(rid, next) {
		return
	}
	if !draw.success {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancelled {
		return
	}
	d.timers[rid] = d.clock.AfterFunc(draw.deliveryDelay, func() { d.transition(rid, models.DeliveryDelivered) })
}

// transition applies one legal state change and notifies the observer.
func (d *Deployment) transition(rid string, next models.DeliveryStatus) bool {
	d.mu.Lock()
	current := d.Outcomes()[rid]
	if d.cancelled || !current.CanTransition(next) {
		d.mu.Unlock()
		return false
	}
	updated := d.copyLocked()
	updated[rid] = next
	d.outcomes.Store(&updated)
	delete(d.timers, rid)
	if next.Terminal() {
		d.unresolved--
		if d.unresolved == 0 {
			close(d.done)
		}
	}
	u := Update{DeploymentID: d.ID, RestaurantID: rid, Status: next, At: d.clock.Now()}
	d.mu.Unlock()

	d.notify(u)
	return true
}

func (d *Deployment) copyLocked() Outcomes {
	current := d.Outcomes()
	next := make(Outcomes, len(current))
	for k, v := range current {
		next[k] = v
	}
	return next
}

func (d *Deployment) notify(u Update) {
	if d.observe != nil {
		d.observe(u)
	}
}
