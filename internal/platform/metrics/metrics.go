// Package metrics exposes the service's Prometheus collectors. A nil *Recorder
// is valid and records nothing, so callers never branch on METRICS_ENABLED.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/football-grid/internal/platform/cache"
	"github.com/riskibarqy/football-grid/internal/platform/resilience"
)

const namespace = "football_grid"

type Recorder struct {
	registry *prometheus.Registry

	verifications     *prometheus.CounterVec
	verifyDuration    prometheus.Histogram
	scores            prometheus.Histogram
	poolSize          prometheus.Histogram
	criteriaErrors    *prometheus.CounterVec
	generations       *prometheus.CounterVec
	generateDuration  prometheus.Histogram
	guessesRecorded   prometheus.Counter
	guessesDropped    prometheus.Counter
	statsRefreshed    *prometheus.CounterVec
	breakerState      *prometheus.GaugeVec
	httpRequests      *prometheus.CounterVec
	httpRequestLength *prometheus.HistogramVec
}

func New() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(registry)

	return &Recorder{
		registry: registry,
		verifications: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Answer verifications by outcome.",
		}, []string{"result"}),
		verifyDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "verify_duration_seconds",
			Help:      "Latency of a full verification including scoring.",
			Buckets:   prometheus.DefBuckets,
		}),
		scores: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "answer_score",
			Help:      "Rarity score of correct answers.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
		poolSize: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cell_pool_size",
			Help:      "Number of valid answers for a scored cell.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		criteriaErrors: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "criteria_errors_total",
			Help:      "Store failures while evaluating a category, by kind.",
		}, []string{"kind"}),
		generations: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grid_generations_total",
			Help:      "Daily grid requests by outcome.",
		}, []string{"outcome"}),
		generateDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grid_generate_duration_seconds",
			Help:      "Latency of generating and persisting a new grid.",
			Buckets:   prometheus.DefBuckets,
		}),
		guessesRecorded: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guesses_recorded_total",
			Help:      "Guess counter increments written.",
		}),
		guessesDropped: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guesses_dropped_total",
			Help:      "Guess counter increments dropped because the pool was saturated or the write failed.",
		}),
		statsRefreshed: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stats_refresh_total",
			Help:      "Player stat refresh attempts by outcome.",
		}, []string{"outcome"}),
		breakerState: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_open",
			Help:      "1 while the named breaker is open or half-open.",
		}, []string{"name"}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpRequestLength: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveVerification records one verify call; score and poolSize are only
// meaningful when correct is true.
func (r *Recorder) ObserveVerification(correct bool, score float64, poolSize int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.verifications.WithLabelValues(strconv.FormatBool(correct)).Inc()
	r.verifyDuration.Observe(elapsed.Seconds())
	if correct {
		r.scores.Observe(score)
		r.poolSize.Observe(float64(poolSize))
	}
}

func (r *Recorder) CriteriaError(kind string) {
	if r == nil {
		return
	}
	r.criteriaErrors.WithLabelValues(kind).Inc()
}

// GridRequest records whether a grid was served from storage, newly created or
// failed to generate.
func (r *Recorder) GridRequest(outcome string) {
	if r == nil {
		return
	}
	r.generations.WithLabelValues(outcome).Inc()
}

func (r *Recorder) ObserveGeneration(elapsed time.Duration) {
	if r == nil {
		return
	}
	r.generateDuration.Observe(elapsed.Seconds())
}

func (r *Recorder) GuessRecorded() {
	if r == nil {
		return
	}
	r.guessesRecorded.Inc()
}

func (r *Recorder) GuessDropped() {
	if r == nil {
		return
	}
	r.guessesDropped.Inc()
}

func (r *Recorder) StatsRefresh(outcome string) {
	if r == nil {
		return
	}
	r.statsRefreshed.WithLabelValues(outcome).Inc()
}

func (r *Recorder) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpRequestLength.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// TrackBreaker mirrors a breaker's state into the circuit_breaker_open gauge.
func (r *Recorder) TrackBreaker(b *resilience.CircuitBreaker) {
	if r == nil || b == nil {
		return
	}
	gauge := r.breakerState.WithLabelValues(b.Name())
	gauge.Set(0)
	b.OnStateChange(func(_ string, _, to resilience.CircuitState) {
		if to == resilience.CircuitStateClosed {
			gauge.Set(0)
			return
		}
		gauge.Set(1)
	})
}

// TrackCache exposes a cache store's counters under the given name.
func (r *Recorder) TrackCache(name string, store *cache.Store) {
	if r == nil || store == nil {
		return
	}
	labels := prometheus.Labels{"cache": name}
	r.registry.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cache", Name: "hits_total",
			Help: "Cache hits.", ConstLabels: labels,
		}, func() float64 { return float64(store.Stats().Hits) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cache", Name: "misses_total",
			Help: "Cache misses.", ConstLabels: labels,
		}, func() float64 { return float64(store.Stats().Misses) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "cache", Name: "entries",
			Help: "Live cache entries.", ConstLabels: labels,
		}, func() float64 { return float64(store.Stats().Entries) }),
	)
}
