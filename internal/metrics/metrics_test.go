package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRefresh(t *testing.T) {
	m, err := New(nil)
	require.NoError(t, err)

	m.RecordRefresh(nil, time.Second, 4200, 31)
	m.RecordRefresh(errors.New("cancelled"), time.Millisecond, 0, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RefreshTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RefreshTotal.WithLabelValues("error")))
	assert.Equal(t, 4200.0, testutil.ToFloat64(m.PredictedOrders))
	assert.Equal(t, 31.0, testutil.ToFloat64(m.HighRiskRestaurants))
}

func TestRecordDeliveryAndExport(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RecordDeployment()
	m.RecordDeliveryStatus("sent")
	m.RecordDeliveryStatus("sent")
	m.RecordDeliveryStatus("failed")
	m.RecordExport("predictions", "csv", 512)
	m.SetValidated(12)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DeploymentsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DeliveryStatusTotal.WithLabelValues("sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExportFilesTotal.WithLabelValues("predictions", "csv")))
	assert.Equal(t, 512.0, testutil.ToFloat64(m.ExportBytesTotal))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.ValidatedRestaurants))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRefresh(nil, time.Second, 1, 1)
		m.RecordDeployment()
		m.RecordDeliveryStatus("delivered")
		m.RecordExport("flagged", "json", 10)
		m.SetValidated(3)
	})
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.Error(t, err)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m, err := New(nil)
	require.NoError(t, err)
	m.RecordDeployment()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "foodpredict_notification_deployments_total 1")
}
