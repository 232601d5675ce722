// Package simulator owns a dashboard session: the synthetic restaurant
// population, its history, the current prediction set and the periodic
// refresh that replaces it.
package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chrisdamba/foodpredict/internal/clock"
	"github.com/chrisdamba/foodpredict/internal/export"
	"github.com/chrisdamba/foodpredict/internal/logger"
	"github.com/chrisdamba/foodpredict/internal/metrics"
	"github.com/chrisdamba/foodpredict/internal/models"
	"github.com/chrisdamba/foodpredict/internal/notification"
	"github.com/chrisdamba/foodpredict/internal/validation"
)

var (
	ErrRefreshInProgress = errors.New("refresh already in progress")
	ErrUnknownDeployment = errors.New("unknown deployment")
)

// Snapshot is an immutable prediction set. Readers must not modify it.
type Snapshot struct {
	Predictions []models.Prediction
	UpdatedAt   time.Time
}

type Option func(*Simulator)

func WithClock(c clock.Clock) Option { return func(s *Simulator) { s.clock = c } }

func WithLogger(l *logger.Logger) Option { return func(s *Simulator) { s.log = l } }

func WithMetrics(m *metrics.Metrics) Option { return func(s *Simulator) { s.metrics = m } }

func WithOutput(o OutputDestination) Option { return func(s *Simulator) { s.output = o } }

type Simulator struct {
	Config          *models.Config
	Restaurants     []*models.Restaurant
	RestaurantIndex map[string]*models.Restaurant
	Historical      []models.HistoricalRecord
	Validator       *validation.Validator
	Deployer        *notification.Deployer

	clock   clock.Clock
	log     *logger.Logger
	metrics *metrics.Metrics
	output  OutputDestination

	rngMu sync.Mutex
	rng   *rand.Rand

	snapshot   atomic.Pointer[Snapshot]
	refreshing atomic.Bool

	deployMu    sync.RWMutex
	deployments map[string]*notification.Deployment
}

// NewSimulator generates the population and the first prediction set. A zero
// seed uses the current time.
func NewSimulator(config *models.Config, opts ...Option) (*Simulator, error) {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim := &Simulator{
		Config:      config,
		clock:       clock.New(),
		rng:         rand.New(rand.NewSource(seed)),
		deployments: make(map[string]*notification.Deployment),
	}
	for _, opt := range opts {
		opt(sim)
	}
	sim.log = logger.OrNop(sim.log).With("component", "simulator")

	if err := sim.initializeData(); err != nil {
		return nil, err
	}
	return sim, nil
}

func (s *Simulator) initializeData() error {
	now := s.clock.Now()
	s.Restaurants = GenerateRestaurants(s.rng, s.Config.RestaurantCount, s.Config.Bounds)
	s.RestaurantIndex = models.IndexRestaurants(s.Restaurants)
	s.Historical = GenerateHistoricalData(s.rng, s.Restaurants, s.Config.HistoryDays, now)

	v, err := validation.NewValidator(validation.Thresholds{
		OrderVariance:   s.Config.OrderVarianceThreshold,
		RevenueVariance: s.Config.RevenueVarianceThreshold,
	}, s.RestaurantIndex)
	if err != nil {
		return fmt.Errorf("failed to create validator: %w", err)
	}
	s.Validator = v

	// The deployer gets its own source so sends never contend with refreshes.
	s.Deployer = notification.NewDeployer(s.Config.Notification, s.clock, rand.New(rand.NewSource(s.rng.Int63())), s.log)
	s.Deployer.OnUpdate(s.onDeliveryUpdate)

	s.log.Info("session initialized",
		"restaurants", len(s.Restaurants),
		"historical_records", len(s.Historical),
		"history_days", s.Config.HistoryDays)
	s.replacePredictions()
	return nil
}

func (s *Simulator) Snapshot() Snapshot {
	return *s.snapshot.Load()
}

func (s *Simulator) Predictions() []models.Prediction {
	return s.Snapshot().Predictions
}

func (s *Simulator) LastUpdated() time.Time {
	return s.Snapshot().UpdatedAt
}

// Now reads the session clock.
func (s *Simulator) Now() time.Time {
	return s.clock.Now()
}

func (s *Simulator) IsRefreshing() bool {
	return s.refreshing.Load()
}

// Refresh waits out the simulated API latency, then replaces the prediction
// set wholesale and recomputes validation. Concurrent calls are rejected.
func (s *Simulator) Refresh(ctx context.Context) error {
	if !s.refreshing.CompareAndSwap(false, true) {
		return ErrRefreshInProgress
	}
	defer s.refreshing.Store(false)

	start := s.clock.Now()
	if err := clock.Sleep(ctx, s.clock, s.Config.RefreshLatency); err != nil {
		s.metrics.RecordRefresh(err, s.clock.Now().Sub(start), 0, 0)
		return err
	}
	summary := s.replacePredictions()
	s.metrics.RecordRefresh(nil, s.clock.Now().Sub(start), summary.TotalPredictedOrders, summary.HighRiskCount)
	return nil
}

func (s *Simulator) replacePredictions() Summary {
	now := s.clock.Now()
	s.rngMu.Lock()
	preds := GeneratePredictions(s.rng, s.Restaurants, s.Config.Prediction(), now)
	s.rngMu.Unlock()

	s.snapshot.Store(&Snapshot{Predictions: preds, UpdatedAt: now})
	s.Validator.SetPredictions(preds)

	summary := Summarize(preds)
	state := s.Validator.State("")
	s.metrics.SetValidated(len(state.Validated))

	event := PredictionRefreshEvent{
		BaseEvent:             NewBaseEvent("prediction_refresh", now),
		Restaurants:           summary.Restaurants,
		TotalPredictedOrders:  summary.TotalPredictedOrders,
		TotalExpectedRevenue:  summary.TotalExpectedRevenue,
		TotalPotentialRevenue: summary.TotalPotentialRevenue,
		HighRisk:              summary.HighRiskCount,
		Validated:             len(state.Validated),
		Unusual:               len(state.Unusual),
	}
	if len(preds) > 0 {
		event.PredictionDate = preds[0].Date
	}
	s.publish(TopicPredictionRefresh, event)
	s.log.Info("predictions refreshed",
		"date", event.PredictionDate,
		"predicted_orders", summary.TotalPredictedOrders,
		"high_risk", summary.HighRiskCount,
		"unusual", event.Unusual)
	return summary
}

// Run refreshes every RefreshInterval until ctx is done.
func (s *Simulator) Run(ctx context.Context) error {
	s.log.Info("refresh loop started", "interval", s.Config.RefreshInterval)
	for {
		if err := clock.Sleep(ctx, s.clock, s.Config.RefreshInterval); err != nil {
			s.log.Info("refresh loop stopped")
			return nil
		}
		if err := s.Refresh(ctx); err != nil {
			if ctx.Err() != nil {
				s.log.Info("refresh loop stopped")
				return nil
			}
			s.log.Warn("scheduled refresh failed", "error", err)
		}
	}
}

func (s *Simulator) Summary() Summary {
	return Summarize(s.Predictions())
}

func (s *Simulator) Comparison(limit int) []Comparison {
	return Compare(s.Predictions(), s.RestaurantIndex, limit)
}

// ExportSource pairs the session data with the current prediction set.
func (s *Simulator) ExportSource() export.Source {
	return export.Source{
		Restaurants: s.Restaurants,
		Historical:  s.Historical,
		Predictions: s.Predictions(),
	}
}

func (s *Simulator) Export(ctx context.Context, e *export.Exporter, datasets []export.Dataset, format export.Format) (*export.Result, error) {
	res, err := e.Export(ctx, s.ExportSource(), datasets, format)
	if err != nil {
		return res, err
	}
	files := make([]string, 0, len(res.Files))
	for _, f := range res.Files {
		files = append(files, f.Location)
	}
	s.publish(TopicExport, ExportEvent{
		BaseEvent: NewBaseEvent("export", s.clock.Now()),
		ExportID:  res.ID,
		Format:    string(format),
		Files:     files,
	})
	return res, nil
}

func (s *Simulator) publish(topic string, event interface{}) {
	if s.output == nil {
		return
	}
	msg, err := json.Marshal(event)
	if err != nil {
		s.log.Error("failed to serialize event", "topic", topic, "error", err)
		return
	}
	if err := s.output.WriteMessage(topic, msg); err != nil {
		s.log.Warn("failed to publish event", "topic", topic, "error", err)
	}
}
