package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const MetricsPath = "/metrics"

// RegisterMetrics serves the metrics of g in the Prometheus text format.
func RegisterMetrics(r fiber.Router, g prometheus.Gatherer) {
	r.Get(MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
}
