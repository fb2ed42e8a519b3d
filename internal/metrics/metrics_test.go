package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithRegistererRegistersDistinctInstances(t *testing.T) {
	m1 := NewWithRegisterer(prometheus.NewRegistry())
	m2 := NewWithRegisterer(prometheus.NewRegistry())
	require.NotNil(t, m1)
	require.NotNil(t, m2)

	m1.MobileQueueDepth.Set(5)
	m2.MobileQueueDepth.Set(9)

	assert.Equal(t, float64(5), readGauge(t, m1.MobileQueueDepth))
	assert.Equal(t, float64(9), readGauge(t, m2.MobileQueueDepth))
}

func TestObserveHandlerRecordsIntoCorrectQueueLabel(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())
	m.ObserveHandler("mobile", 50*time.Millisecond)

	metric := &dto.Metric{}
	require.NoError(t, m.HandlerDuration.WithLabelValues("mobile").(prometheus.Histogram).Write(metric))
	assert.Equal(t, uint64(1), metric.GetHistogram().GetSampleCount())
}

func TestUptimeSecondsIsPositive(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())
	time.Sleep(time.Millisecond)
	assert.Greater(t, m.UptimeSeconds(), float64(0))
}

func readGauge(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, g.Write(metric))
	return metric.GetGauge().GetValue()
}
