package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/logger"
)

// MetricsManager holds custom Prometheus metrics.
type MetricsManager struct {
	Registry           *prometheus.Registry
	AdsCreatedTotal    prometheus.Counter
	AdUpdatesTotal     prometheus.Counter
	AdDeletesTotal     prometheus.Counter
	StatusChangesTotal *prometheus.CounterVec
	AuthFailuresTotal  prometheus.Counter
	HTTPErrorsTotal    *prometheus.CounterVec
	HTTPLatency        *prometheus.HistogramVec
}

// NewMetricsManager initializes and registers custom Prometheus metrics.
func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	adsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "ads_created_total",
		Help:      "Total number of ads created.",
	})
	adUpdatesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "ad_updates_total",
		Help:      "Total number of ads updated.",
	})
	adDeletesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "ad_deletes_total",
		Help:      "Total number of ads deleted.",
	})
	statusChangesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "ad_status_changes_total",
		Help:      "Total number of ad status transitions by target status.",
	}, []string{"to_status"})
	authFailuresTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "auth_failures_total",
		Help:      "Total number of failed authentication attempts.",
	})
	httpErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "http_errors_total",
		Help:      "Total number of HTTP error responses by route and status code.",
	}, []string{"route", "code"})
	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	registry.MustRegister(
		adsCreatedTotal,
		adUpdatesTotal,
		adDeletesTotal,
		statusChangesTotal,
		authFailuresTotal,
		httpErrorsTotal,
		httpLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:           registry,
		AdsCreatedTotal:    adsCreatedTotal,
		AdUpdatesTotal:     adUpdatesTotal,
		AdDeletesTotal:     adDeletesTotal,
		StatusChangesTotal: statusChangesTotal,
		AuthFailuresTotal:  authFailuresTotal,
		HTTPErrorsTotal:    httpErrorsTotal,
		HTTPLatency:        httpLatency,
	}
}

// StartMetricsServer starts an HTTP server to expose Prometheus metrics.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	return server.ListenAndServe()
}
