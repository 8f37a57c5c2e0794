package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HiresCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hires_created_total",
		Help: "Number of hire records created.",
	})
	PaymentsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_confirmed_total",
		Help: "Number of payment callbacks reconciled as successful.",
	})
	PaymentsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_failed_total",
		Help: "Number of payment callbacks reconciled as failed or cancelled.",
	})
	CallbackMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_callback_misses_total",
		Help: "Number of payment callbacks that matched no hire record.",
	})
	HiresExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hires_expired_total",
		Help: "Number of hires closed out by the expiry sweep.",
	})
)
