package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAnalyze(t *testing.T) {
	before := testutil.ToFloat64(AnalyzeRuns.WithLabelValues("success"))
	beforeBuy := testutil.ToFloat64(Recommendations.WithLabelValues("buy"))

	RecordAnalyze("success", time.Second, 3, "buy")
	RecordAnalyze("fetch_error", time.Second, 0, "")

	assert.Equal(t, before+1, testutil.ToFloat64(AnalyzeRuns.WithLabelValues("success")))
	assert.Equal(t, beforeBuy+1, testutil.ToFloat64(Recommendations.WithLabelValues("buy")))
}

func TestRecordClassification(t *testing.T) {
	before := testutil.ToFloat64(Classifications.WithLabelValues("lexicon", "neutral"))
	RecordClassification("lexicon", "neutral")
	assert.Equal(t, before+1, testutil.ToFloat64(Classifications.WithLabelValues("lexicon", "neutral")))

	RecordFetch(10*time.Millisecond, errors.New("boom"))
}

func TestHandlerExposesRegisteredMetrics(t *testing.T) {
	Init()
	Init()

	RecordAnalyze("success", time.Millisecond, 1, "neutral")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stocksentiment_analyze_runs_total")
}
