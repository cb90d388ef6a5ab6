package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObserveRender(t *testing.T) {
	c := NewCollector("dash")
	c.ObserveRender("scatter", 3, 0, time.Millisecond)
	c.ObserveRender("scatter", 1, 2, time.Millisecond)
	c.ObserveRender("bar", 3, 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.RenderPasses.WithLabelValues("scatter")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.MarksEntered.WithLabelValues("scatter")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.MarksExited.WithLabelValues("scatter")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RenderPasses.WithLabelValues("bar")))
}

func TestCollector_LoadsAndSelection(t *testing.T) {
	c := NewCollector("dash")
	c.ObserveLoad("ready", 12)
	c.ObserveLoad("error", 0)
	c.ObserveSelection()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.DatasetLoads.WithLabelValues("ready")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.DatasetLoads.WithLabelValues("error")))
	assert.Equal(t, 12.0, testutil.ToFloat64(c.DatasetRecords))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SelectionChanges))
}

func TestCollector_NilIsSafe(t *testing.T) {
	var c *Collector
	c.ObserveRender("bar", 1, 1, time.Millisecond)
	c.ObserveSelection()
	c.ObserveLoad("ready", 1)
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("dash")
	c.ObserveSelection()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "dash_selection_changes_total 1"))
}
