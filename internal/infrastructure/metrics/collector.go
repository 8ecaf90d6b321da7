// Package metrics exposes the service's Prometheus counters.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pawmarket/internal/domain/entity"
)

type Collector struct {
	registry *prometheus.Registry

	experienceAwards   *prometheus.CounterVec
	reviewDecisions    *prometheus.CounterVec
	checkouts          *prometheus.CounterVec
	rateLimitRejected  *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpRequestLatency *prometheus.HistogramVec
}

func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "pawmarket"
	}

	c := &Collector{registry: prometheus.NewRegistry()}

	c.experienceAwards = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gamification",
			Name:      "experience_awards_total",
			Help:      "Experience awards applied, by action and whether the user levelled up",
		},
		[]string{"action", "level_up"},
	)

	c.reviewDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "moderation",
			Name:      "review_decisions_total",
			Help:      "Inspector decisions on shops and help posts",
		},
		[]string{"target", "decision"},
	)

	c.checkouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "marketplace",
			Name:      "checkouts_total",
			Help:      "Checkout attempts by outcome (completed, rejected, failed)",
		},
		[]string{"outcome"},
	)

	c.rateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limit_rejections_total",
			Help:      "Requests refused by the rate limiter",
		},
		[]string{"action"},
	)

	c.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	c.httpRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method", "route"},
	)

	c.registry.MustRegister(
		c.experienceAwards,
		c.reviewDecisions,
		c.checkouts,
		c.rateLimitRejected,
		c.httpRequests,
		c.httpRequestLatency,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)

	return c
}

func (c *Collector) ExperienceAwarded(action entity.ActionType, levelUp bool) {
	c.experienceAwards.WithLabelValues(string(action), strconv.FormatBool(levelUp)).Inc()
}

func (c *Collector) ReviewDecided(target entity.ReviewTaskType, decision entity.Decision) {
	c.reviewDecisions.WithLabelValues(string(target), string(decision)).Inc()
}

func (c *Collector) CheckoutFinished(outcome string) {
	c.checkouts.WithLabelValues(outcome).Inc()
}

func (c *Collector) RateLimited(action string) {
	c.rateLimitRejected.WithLabelValues(action).Inc()
}

// ObserveRequest records one served request. route is the matched route
// pattern, not the raw path, to keep label cardinality bounded.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpRequestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
