package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFallback(t *testing.T) {
	before := testutil.ToFloat64(FallbacksTotal.WithLabelValues("organize"))
	ObserveFallback("organize")
	ObserveFallback("organize")
	assert.Equal(t, before+2, testutil.ToFloat64(FallbacksTotal.WithLabelValues("organize")))
}

func TestObserveAIRequest(t *testing.T) {
	before := testutil.ToFloat64(AIRequestsTotal.WithLabelValues("instacart", ResultError))
	ObserveAIRequest("instacart", ResultError)
	assert.Equal(t, before+1, testutil.ToFloat64(AIRequestsTotal.WithLabelValues("instacart", ResultError)))
}
