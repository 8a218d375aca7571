package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m == nil {
		t.Fatal("New() returned nil")
	}

	// Verify all metric fields are initialized
	assert.NotNil(t, m.SearchRequestsTotal)
	assert.NotNil(t, m.SearchDurationSeconds)
	assert.NotNil(t, m.SearchResultsCount)
	assert.NotNil(t, m.GenerationRequestsTotal)
	assert.NotNil(t, m.GenerationDurationSeconds)
	assert.NotNil(t, m.HTTPErrorsTotal)
	assert.NotNil(t, m.IndexDocuments)
	assert.NotNil(t, m.IndexRebuildsTotal)
}

func TestRecordHelpers(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordSearch("success", 0.02, 7)
	m.RecordSearch("empty", 0.01, 0)
	m.RecordSearch("error", 0.5, 0)
	m.RecordGeneration("openai", "success", 3.5)
	m.RecordGeneration("gemini", "error", 60.0)
	m.RecordHTTPError("bad_request", "retrieve")
	m.RecordIndexRebuild("success", 120)
	m.RecordIndexRebuild("error", 0)

	families, err := registry.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)

	// The index size gauge only tracks successful rebuilds
	value := testGaugeValue(t, registry, "courseplan_index_documents")
	assert.InDelta(t, 120.0, value, 0.0001)
}

func testGaugeValue(t *testing.T, registry *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, family := range families {
		if family.GetName() == name {
			return family.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("Metric %s not found", name)
	return 0
}
