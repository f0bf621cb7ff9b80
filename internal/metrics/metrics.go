package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Checkouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nayarn",
		Subsystem: "checkout",
		Name:      "attempts_total",
		Help:      "Checkout submissions by outcome.",
	}, []string{"outcome"})

	NonFatalFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nayarn",
		Subsystem: "checkout",
		Name:      "non_fatal_failures_total",
		Help:      "Failed checkout steps that did not abort the order.",
	}, []string{"step"})

	StatusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nayarn",
		Subsystem: "order",
		Name:      "status_updates_total",
		Help:      "Order status changes by new status.",
	}, []string{"status"})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nayarn",
		Subsystem: "notification",
		Name:      "sent_total",
		Help:      "Emails handed to the mailer by kind and result.",
	}, []string{"kind", "result"})
)
