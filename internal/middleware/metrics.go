package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// WarblesCreated counts warbles created since process start.
	WarblesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warbler_messages_created_total",
		Help: "Total number of warbles created",
	})

	// FollowEdgesChanged counts follow/unfollow operations by action.
	FollowEdgesChanged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_follow_edges_changed_total",
		Help: "Total number of follow edge mutations by action",
	}, []string{"action"})

	// LikeEdgesChanged counts like/unlike operations by action.
	LikeEdgesChanged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_like_edges_changed_total",
		Help: "Total number of like edge mutations by action",
	}, []string{"action"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler that records per-request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
