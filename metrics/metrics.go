package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Delivery counters for the detached side-effect paths. Push and broadcast
// failures never reach the triggering request, so these counters are the only
// place they stay visible.
var (
	PushDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mascoticas_push_delivered_total",
		Help: "Push notifications successfully delivered to a device endpoint.",
	})

	PushFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mascoticas_push_failed_total",
		Help: "Push deliveries that failed for a single device endpoint.",
	})

	PushSkippedMuted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mascoticas_push_skipped_muted_total",
		Help: "Push notifications suppressed because the recipient muted the chat.",
	})

	SubscriptionsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mascoticas_push_subscriptions_expired_total",
		Help: "Device subscriptions removed after the endpoint reported them gone.",
	})

	BroadcastsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mascoticas_realtime_broadcasts_total",
		Help: "Realtime events published to socket topics, by event type.",
	}, []string{"event"})

	TasksFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mascoticas_dispatcher_tasks_failed_total",
		Help: "Detached side-effect tasks that returned an error or panicked.",
	})

	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mascoticas_ws_connections_active",
		Help: "Currently open websocket connections.",
	})
)
