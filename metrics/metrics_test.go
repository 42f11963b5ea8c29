package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCaseTransitions(t *testing.T) {
	before := testutil.ToFloat64(CaseTransitions.WithLabelValues("CERRADO"))
	CaseTransitions.WithLabelValues("CERRADO").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(CaseTransitions.WithLabelValues("CERRADO")))
}

func TestUpstreamRequests(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequests.WithLabelValues("users", "error"))
	UpstreamRequests.WithLabelValues("users", "error").Inc()
	UpstreamRequests.WithLabelValues("users", "error").Inc()
	assert.Equal(t, before+2, testutil.ToFloat64(UpstreamRequests.WithLabelValues("users", "error")))
}
