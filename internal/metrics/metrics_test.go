package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gathered returns the value of every sample keyed by family name and label value.
func gathered(t *testing.T, r *Recorder) map[string]float64 {
	t.Helper()
	families, err := r.Registry().Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				key += "/" + lp.GetValue()
			}
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				values[key] = m.GetCounter().GetValue()
			case dto.MetricType_HISTOGRAM:
				values[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return values
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.ObserveRepository(false, 20*time.Millisecond)
	r.ObserveRepository(false, 30*time.Millisecond)
	r.ObserveRepository(true, time.Millisecond)
	r.ObserveRecords(5, 2)
	r.ObserveRecords(1, 0)
	r.ObserveCacheLookup(true)
	r.ObserveCacheLookup(false)
	r.ObserveCacheLookup(false)

	values := gathered(t, r)
	assert.Equal(t, 2.0, values["gitlocalstats_repositories_total/ok"])
	assert.Equal(t, 1.0, values["gitlocalstats_repositories_total/failed"])
	assert.Equal(t, 6.0, values["gitlocalstats_records_total/counted"])
	assert.Equal(t, 2.0, values["gitlocalstats_records_total/out_of_range"])
	assert.Equal(t, 1.0, values["gitlocalstats_cache_lookups_total/hit"])
	assert.Equal(t, 2.0, values["gitlocalstats_cache_lookups_total/miss"])
	assert.Equal(t, 3.0, values["gitlocalstats_extraction_seconds"])
}

func TestRecorder_Options(t *testing.T) {
	r := NewRecorder(WithNamespace("custom"), WithHistogramBuckets([]float64{1, 2}))
	r.ObserveRecords(1, 0)
	values := gathered(t, r)
	assert.Equal(t, 1.0, values["custom_records_total/counted"])
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveRepository(true, time.Second)
		r.ObserveRecords(1, 1)
		r.ObserveCacheLookup(true)
	})
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.WriteTextfile(filepath.Join(t.TempDir(), "m.prom")))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveRepository(false, time.Second)

	path := filepath.Join(t.TempDir(), "gitlocalstats.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `gitlocalstats_repositories_total{status="ok"} 1`)

	assert.NoError(t, r.WriteTextfile(""), "empty path is a no-op")
}
