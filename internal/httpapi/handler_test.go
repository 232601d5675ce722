package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chrisdamba/foodpredict/internal/clock"
	"github.com/chrisdamba/foodpredict/internal/metrics"
	"github.com/chrisdamba/foodpredict/internal/models"
	"github.com/chrisdamba/foodpredict/internal/simulator"
	"github.com/chrisdamba/foodpredict/internal/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

type fixture struct {
	sim    *simulator.Simulator
	clock  *clock.Fake
	router http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := clock.NewFake(epoch)
	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	cfg := &models.Config{
		Seed:                     5,
		RestaurantCount:          12,
		HistoryDays:              1,
		PredictionVariant:        "volatile",
		RefreshInterval:          time.Hour,
		OrderVarianceThreshold:   3,
		RevenueVarianceThreshold: 50,
		Bounds:                   models.GhanaBounds,
		Notification: models.NotificationConfig{
			SuccessProbability: 1,
			SendDelayMin:       time.Second,
			SendDelayMax:       2 * time.Second,
			DeliveryDelayMin:   time.Second,
			DeliveryDelayMax:   2 * time.Second,
			Template:           models.DefaultSMSTemplate,
		},
	}
	sim, err := simulator.NewSimulator(cfg, simulator.WithClock(clk), simulator.WithMetrics(m))
	require.NoError(t, err)
	return &fixture{sim: sim, clock: clk, router: NewRouter(NewHandler(sim, m, nil))}
}

func (f *fixture) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadEndpoints(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		target string
		key    string
		length int
	}{
		{name: "restaurants", target: "/api/restaurants", key: "restaurants", length: 12},
		{name: "predictions", target: "/api/predictions", key: "predictions", length: 12},
		{name: "comparisonDefault", target: "/api/comparison", key: "comparison", length: 12},
		{name: "comparisonLimit", target: "/api/comparison?limit=5", key: "comparison", length: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, tt.target, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			var body map[string]json.RawMessage
			decodeBody(t, rec, &body)
			var items []json.RawMessage
			require.NoError(t, json.Unmarshal(body[tt.key], &items))
			assert.Len(t, items, tt.length)
		})
	}

	rec := f.do(t, http.MethodGet, "/api/comparison?limit=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummaryAndRefresh(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var before summaryResponse
	decodeBody(t, rec, &before)
	assert.Equal(t, 12, before.Restaurants)
	assert.Equal(t, before.TotalPotentialRevenue-before.TotalExpectedRevenue, before.PotentialLoss)
	assert.False(t, before.IsRefreshing)

	f.clock.Advance(time.Minute)
	rec = f.do(t, http.MethodPost, "/api/refresh", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var after summaryResponse
	decodeBody(t, rec, &after)
	assert.True(t, after.LastUpdated.Equal(epoch.Add(time.Minute)))
}

func TestValidationEndpoints(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/validation", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var st validation.State
	decodeBody(t, rec, &st)
	require.NotEmpty(t, st.Unusual)
	id := st.Unusual[0].RestaurantID

	rec = f.do(t, http.MethodPost, "/api/validation/"+id+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"restaurant_id":"`+id+`","validated":true}`, rec.Body.String())
	assert.True(t, f.sim.Validator.IsValidated(id))

	rec = f.do(t, http.MethodPost, "/api/validation/rest_999/toggle", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/validation/only-normal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, f.sim.Validator.IsValidated(id))

	rec = f.do(t, http.MethodPost, "/api/validation/select-all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, f.sim.Validator.Validated(), 12)

	rec = f.do(t, http.MethodPut, "/api/validation/thresholds", validation.Thresholds{OrderVariance: -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/validation/thresholds", map[string]float64{"order_variance": 1e6, "revenue_variance": 1e9})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &st)
	assert.Len(t, st.Normal, 12)
	assert.Empty(t, st.Unusual)
}

func TestNotificationEndpoints(t *testing.T) {
	f := newFixture(t)
	r := f.sim.Restaurants[0]

	rec := f.do(t, http.MethodPost, "/api/notifications/preview", notificationRequest{RestaurantID: r.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	var preview map[string]string
	decodeBody(t, rec, &preview)
	assert.True(t, strings.HasPrefix(preview["message"], "Hello, "+r.Name+"!"))

	rec = f.do(t, http.MethodPost, "/api/notifications/preview", notificationRequest{Template: "{restaurantName}", RestaurantID: r.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.do(t, http.MethodPost, "/api/validation/select-all", nil)
	rec = f.do(t, http.MethodPost, "/api/notifications/deploy", notificationRequest{})
	require.Equal(t, http.StatusAccepted, rec.Code)
	var dep deploymentResponse
	decodeBody(t, rec, &dep)
	assert.Len(t, dep.Recipients, 12)
	assert.Equal(t, 12, dep.Summary.Pending)
	assert.Empty(t, dep.Message)

	f.clock.Advance(4 * time.Second)
	rec = f.do(t, http.MethodGet, "/api/notifications/"+dep.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &dep)
	assert.Equal(t, 12, dep.Summary.Delivered)
	assert.Equal(t, "12 messages sent successfully, 0 failed.", dep.Message)

	rec = f.do(t, http.MethodDelete, "/api/notifications/"+dep.ID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/notifications/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelDeployment(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/validation/select-all", nil)

	rec := f.do(t, http.MethodPost, "/api/notifications/deploy", notificationRequest{})
	require.Equal(t, http.StatusAccepted, rec.Code)
	var dep deploymentResponse
	decodeBody(t, rec, &dep)

	rec = f.do(t, http.MethodDelete, "/api/notifications/"+dep.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &dep)
	assert.True(t, dep.Summary.Cancelled)
	assert.Equal(t, 12, dep.Summary.Failed)
	assert.Equal(t, 0, f.clock.Pending())
}

func TestExportFile(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/export/predictions.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="predictions_2025-03-14.csv"`, rec.Header().Get("Content-Disposition"))
	lines := strings.Split(rec.Body.String(), "\n")
	assert.Len(t, lines, 13)

	rec = f.do(t, http.MethodGet, "/api/export/restaurants.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []map[string]interface{}
	decodeBody(t, rec, &rows)
	assert.Len(t, rows, 12)

	tests := []struct {
		target string
		status int
	}{
		{target: "/api/export/predictions", status: http.StatusBadRequest},
		{target: "/api/export/orders.csv", status: http.StatusNotFound},
		{target: "/api/export/predictions.xlsx", status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := f.do(t, http.MethodGet, tt.target, nil)
		assert.Equal(t, tt.status, rec.Code, tt.target)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodGet, "/api/export/predictions.csv", nil)

	rec := f.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "foodpredict_export_files_total")
}
