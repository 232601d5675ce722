// Package notification renders stock-out reminders and simulates delivering
// them to restaurants over SMS.
package notification

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/chrisdamba/foodpredict/internal/clock"
	"github.com/chrisdamba/foodpredict/internal/logger"
	"github.com/chrisdamba/foodpredict/internal/models"
	"github.com/lucsky/cuid"
)

var ErrNoRecipients = errors.New("no restaurants selected")

// Target pairs a recipient with the prediction its message is rendered from.
type Target struct {
	Restaurant *models.Restaurant
	Prediction *models.Prediction
}

// sendDraw holds every random decision for one recipient, drawn up front so
// timer callbacks never touch the shared random source.
type sendDraw struct {
	sendDelay     time.Duration
	success       bool
	deliveryDelay time.Duration
}

type Deployer struct {
	cfg   models.NotificationConfig
	clock clock.Clock
	log   *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand

	observers []func(Update)
}

func NewDeployer(cfg models.NotificationConfig, clk clock.Clock, rng *rand.Rand, log *logger.Logger) *Deployer {
	return &Deployer{
		cfg:   cfg,
		clock: clk,
		rng:   rng,
		log:   logger.OrNop(log).With("component", "notification"),
	}
}

// OnUpdate registers fn to receive every status change. Register observers
// before the first Deploy; fn runs on timer callbacks and must not block.
func (d *Deployer) OnUpdate(fn func(Update)) {
	d.observers = append(d.observers, fn)
}

// Preview renders the message one restaurant would receive.
func (d *Deployer) Preview(tmpl string, t Target) (string, error) {
	return Render(tmpl, t.Restaurant, t.Prediction)
}

// Deploy renders every message, then starts an independent send sequence per
// recipient. Nothing is scheduled unless every message renders.
func (d *Deployer) Deploy(tmpl string, targets []Target) (*Deployment, error) {
	if err := ValidateTemplate(tmpl); err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, ErrNoRecipients
	}

	order := make([]string, 0, len(targets))
	messages := make(map[string]string, len(targets))
	for _, t := range targets {
		if _, dup := messages[t.Restaurant.ID]; dup {
			continue
		}
		msg, err := Render(tmpl, t.Restaurant, t.Prediction)
		if err != nil {
			return nil, err
		}
		order = append(order, t.Restaurant.ID)
		messages[t.Restaurant.ID] = msg
	}

	draws := d.draw(len(order))
	dep := newDeployment(cuid.New(), d.clock, order, messages, d.fanOut)
	for i, rid := range order {
		dep.schedule(rid, draws[i])
	}

	d.log.Info("deployment started", "deployment_id", dep.ID, "recipients", len(order))
	return dep, nil
}

func (d *Deployer) draw(n int) []sendDraw {
	d.mu.Lock()
	defer d.mu.Unlock()
	draws := make([]sendDraw, n)
	for i := range draws {
		draws[i].sendDelay = d.uniformDuration(d.cfg.SendDelayMin, d.cfg.SendDelayMax)
		draws[i].success = d.rng.Float64() < d.cfg.SuccessProbability
		draws[i].deliveryDelay = d.uniformDuration(d.cfg.DeliveryDelayMin, d.cfg.DeliveryDelayMax)
	}
	return draws
}

func (d *Deployer) uniformDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(d.rng.Int63n(int64(max-min)))
}

func (d *Deployer) fanOut(u Update) {
	d.log.Debug("delivery status", "deployment_id", u.DeploymentID, "restaurant_id", u.RestaurantID, "status", u.Status)
	for _, fn := range d.observers {
		fn(u)
	}
}
