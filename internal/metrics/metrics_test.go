package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordLoad("today", false, 20*time.Millisecond)
	m.RecordLoad("today", true, 10*time.Millisecond)
	m.RecordSync("triggered")
	m.RecordSync("triggered")
	m.RecordSync("skipped")
	m.SetActiveViews(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("today", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("today", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Syncs.WithLabelValues("triggered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Syncs.WithLabelValues("skipped")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ActiveViews))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordLoad("last7", false, time.Second)
		m.RecordSync("failed")
		m.ObserveSyncLatency(time.Second)
		m.SetActiveViews(1)
		m.RecordHTTPRequest("GET", "/healthcheck", "200")
	})
}
