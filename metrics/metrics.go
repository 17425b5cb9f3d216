package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SchedulesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "loan_ledger",
		Name:      "schedules_generated_total",
		Help:      "Repayment schedules generated, by method.",
	}, []string{"method"})

	InstallmentsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "loan_ledger",
		Name:      "installments_generated_total",
		Help:      "Installment rows written by schedule generation.",
	})

	DueSyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "loan_ledger",
		Name:      "due_sync_total",
		Help:      "Due ledger synchronizations, by change kind and outcome.",
	}, []string{"kind", "outcome"})

	PaymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "loan_ledger",
		Name:      "payments_recorded_total",
		Help:      "Due payments recorded, by payment method.",
	}, []string{"method"})

	RemindersSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "loan_ledger",
		Name:      "due_reminders_total",
		Help:      "Due reminders dispatched, by channel.",
	}, []string{"channel"})
)

// Handler serves the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
