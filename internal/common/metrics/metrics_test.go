package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAnalysis(t *testing.T) {
	before := testutil.ToFloat64(Recommendations.WithLabelValues("Hold"))

	ObserveAnalysis("Hold", 2)

	assert.Equal(t, before+1, testutil.ToFloat64(Recommendations.WithLabelValues("Hold")))
	assert.Equal(t, 1, testutil.CollectAndCount(SubstitutesReturned))
}
