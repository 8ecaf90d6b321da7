package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawmarket/internal/domain/entity"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector("test")

	c.ExperienceAwarded(entity.ActionLike, false)
	c.ExperienceAwarded(entity.ActionLike, false)
	c.ExperienceAwarded(entity.ActionSolveHelp, true)
	c.ReviewDecided(entity.ReviewTaskShop, entity.DecisionApprove)
	c.CheckoutFinished("completed")
	c.RateLimited("create_post")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.experienceAwards.WithLabelValues("like", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.experienceAwards.WithLabelValues("solve_help", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.reviewDecisions.WithLabelValues("shop", "approve")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.checkouts.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rateLimitRejected.WithLabelValues("create_post")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector("test")
	c.ObserveRequest(http.MethodGet, "/v1/posts", http.StatusOK, 12*time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `test_http_requests_total{method="GET",route="/v1/posts",status="200"} 1`)
}
