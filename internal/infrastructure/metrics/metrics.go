package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomePlaced        = "placed"
	OutcomeBelowMinimum  = "below_minimum"
	OutcomeOutOfStock    = "out_of_stock"
	OutcomeStockConflict = "stock_conflict"
	OutcomeFailed        = "failed"
)

var (
	OrderPlacements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bulknest_order_placements_total",
		Help: "Order placement attempts by outcome.",
	}, []string{"outcome"})

	OrderDeletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bulknest_order_deletions_total",
		Help: "Order deletions by type.",
	}, []string{"type"})

	UnitsRestocked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bulknest_units_restocked_total",
		Help: "Units returned to stock by cancellations.",
	})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bulknest_events_published_total",
		Help: "Domain events handed to the broker by event type and result.",
	}, []string{"event_type", "result"})
)
