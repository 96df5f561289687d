package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecordsOperations(t *testing.T) {
	c := NewCollector()

	c.RecordOperation("recommend_friends", "ok", 25*time.Millisecond)
	c.RecordOperation("recommend_friends", "ok", 10*time.Millisecond)
	c.RecordOperation("shortest_path", "error", time.Millisecond)
	c.RecordError("shortest_path", "no_path")

	assert.Equal(t, 2.0, testutil.ToFloat64(
		c.operationsTotal.WithLabelValues("recommend_friends", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		c.operationsTotal.WithLabelValues("shortest_path", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		c.errorsTotal.WithLabelValues("shortest_path", "no_path")))

	require.NotNil(t, c.Registry())
}

func TestNoopCollectorIsSafe(t *testing.T) {
	var c Collector = Noop{}
	c.RecordOperation("recommend_jobs", "ok", time.Second)
	c.RecordError("recommend_jobs", "timeout")
}
