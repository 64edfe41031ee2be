package jwkset

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	// Test that NoopMetrics methods don't panic
	metrics := &NoopMetrics{}

	metrics.IncCounter("test_counter", map[string]string{"tag": "value"})
	metrics.ObserveHistogram("test_histogram", 1.5, map[string]string{"tag": "value"})
	metrics.SetGauge("test_gauge", 2.5, map[string]string{"tag": "value"})
}

func TestPrometheusMetrics(t *testing.T) {
	metrics := NewPrometheusMetrics(prometheus.NewRegistry())

	t.Run("IncCounter", func(t *testing.T) {
		tags := map[string]string{"tag1": "value1", "tag2": "value2"}

		metrics.IncCounter("test_counter", tags)
		metrics.IncCounter("test_counter", tags)

		counter, ok := metrics.counters["test_counter"]
		require.True(t, ok, "Counter should be registered")

		metric := &dto.Metric{}
		err := counter.With(prometheus.Labels(tags)).(prometheus.Metric).Write(metric)
		assert.NoError(t, err)
		assert.Equal(t, float64(2), *metric.Counter.Value, "Counter should be incremented to 2")
	})

	t.Run("ObserveHistogram", func(t *testing.T) {
		metrics.ObserveHistogram("test_histogram", 2.5, map[string]string{"tag1": "value1"})

		hist, ok := metrics.histograms["test_histogram"]
		assert.True(t, ok, "Histogram should be registered")
		assert.NotNil(t, hist)
	})

	t.Run("SetGauge", func(t *testing.T) {
		tags := map[string]string{"tag1": "value1"}
		metrics.SetGauge("test_gauge", 4.5, tags)

		gauge, ok := metrics.gauges["test_gauge"]
		require.True(t, ok, "Gauge should be registered")
		assert.Equal(t, 4.5, testutil.ToFloat64(gauge.With(prometheus.Labels(tags))))
	})
}

func TestKeys(t *testing.T) {
	result := keys(map[string]string{"b": "2", "a": "1", "c": "3"})
	assert.Equal(t, []string{"a", "b", "c"}, result)
}

func TestFactory_Metrics(t *testing.T) {
	metrics := NewPrometheusMetrics(prometheus.NewRegistry())
	f, err := NewFactory(WithMetrics(metrics))
	require.NoError(t, err)

	ec, _ := ecEntry(t)
	_, err = f.ParseString(document(t,
		rsaEntry(&testRSAKey(t, 0).PublicKey).with("kid", "a"),
		rsaEntry(&testRSAKey(t, 1).PublicKey).with("kid", "b"),
		ec,
	))
	require.NoError(t, err)

	_, err = f.ParseString(`{"keys":[{"kid":"no-type"}]}`)
	require.Error(t, err)

	parses := metrics.counters[MetricParseTotal]
	require.NotNil(t, parses)
	assert.Equal(t, float64(1), testutil.ToFloat64(parses.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(parses.WithLabelValues(ErrorCodeMissingField)))

	gauge := metrics.gauges[MetricKeys]
	require.NotNil(t, gauge)
	assert.Equal(t, float64(2), testutil.ToFloat64(gauge.WithLabelValues("RSA")))
	assert.Equal(t, float64(1), testutil.ToFloat64(gauge.WithLabelValues("EC")))

	assert.NotNil(t, metrics.histograms[MetricParseKeys])
	assert.Equal(t, float64(0), testutil.ToFloat64(gauge.WithLabelValues("OKP")))

	t.Run("It resets counts of types missing from a later document", func(t *testing.T) {
		_, err := f.ParseString(document(t, rsaEntry(&testRSAKey(t, 0).PublicKey)))
		require.NoError(t, err)

		assert.Equal(t, float64(1), testutil.ToFloat64(gauge.WithLabelValues("RSA")))
		assert.Equal(t, float64(0), testutil.ToFloat64(gauge.WithLabelValues("EC")))
	})
}

func TestPrometheusMetrics_SharedRegisterer(t *testing.T) {
	registry := prometheus.NewRegistry()
	doc := document(t, rsaEntry(&testRSAKey(t, 0).PublicKey))

	first, err := NewFactory(WithMetrics(NewPrometheusMetrics(registry)))
	require.NoError(t, err)
	second, err := NewFactory(WithMetrics(NewPrometheusMetrics(registry)))
	require.NoError(t, err)

	t.Run("It shares collectors instead of panicking", func(t *testing.T) {
		require.NotPanics(t, func() {
			_, err := first.ParseString(doc)
			require.NoError(t, err)
			_, err = second.ParseString(doc)
			require.NoError(t, err)
			_, err = second.ParseString(`{"keys":[{"kid":"no-type"}]}`)
			require.Error(t, err)
		})

		count, err := testutil.GatherAndCount(registry, MetricParseTotal)
		require.NoError(t, err)
		assert.Equal(t, 2, count, "one series per result label")

		families, err := registry.Gather()
		require.NoError(t, err)
		for _, family := range families {
			if family.GetName() != MetricParseTotal {
				continue
			}
			for _, metric := range family.GetMetric() {
				if metric.GetLabel()[0].GetValue() == "ok" {
					assert.Equal(t, float64(2), metric.GetCounter().GetValue())
				}
			}
		}
	})

	t.Run("It keeps recording when a name is taken by another collector", func(t *testing.T) {
		registry := prometheus.NewRegistry()
		registry.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{Name: MetricParseTotal, Help: "taken"}))

		metrics := NewPrometheusMetrics(registry)
		assert.NotPanics(t, func() {
			metrics.IncCounter(MetricParseTotal, map[string]string{"result": "ok"})
		})
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.counters[MetricParseTotal].WithLabelValues("ok")))
	})
}
