package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the governance module.
type Metrics struct {
	TopicsCreated       prometheus.Counter
	VotesCast           prometheus.Counter
	QuotaPayments       prometheus.Counter
	TransfersExecuted   prometheus.Counter
	VotingsClosed       *prometheus.CounterVec
	CloseVotingDuration prometheus.Histogram
}

// New creates a Metrics instance with all governance metrics registered.
func New() *Metrics {
	return &Metrics{
		TopicsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "condogov_topics_created_total",
			Help: "Total number of topics created",
		}),
		VotesCast: promauto.NewCounter(prometheus.CounterOpts{
			Name: "condogov_votes_cast_total",
			Help: "Total number of votes cast",
		}),
		QuotaPayments: promauto.NewCounter(prometheus.CounterOpts{
			Name: "condogov_quota_payments_total",
			Help: "Total number of monthly quota payments received",
		}),
		TransfersExecuted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "condogov_transfers_executed_total",
			Help: "Total number of treasury transfers executed",
		}),
		VotingsClosed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "condogov_votings_closed_total",
			Help: "Total number of voting rounds closed, by outcome",
		}, []string{"outcome"}),
		CloseVotingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "condogov_close_voting_duration_seconds",
			Help:    "Duration of CloseVoting operations (tally critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementTopicsCreated records a successful topic creation.
func (m *Metrics) IncrementTopicsCreated() {
	if m == nil {
		return
	}
	m.TopicsCreated.Inc()
}

// IncrementVotesCast records a successfully cast vote.
func (m *Metrics) IncrementVotesCast() {
	if m == nil {
		return
	}
	m.VotesCast.Inc()
}

// IncrementQuotaPayments records a received quota payment.
func (m *Metrics) IncrementQuotaPayments() {
	if m == nil {
		return
	}
	m.QuotaPayments.Inc()
}

// IncrementTransfersExecuted records an executed treasury transfer.
func (m *Metrics) IncrementTransfersExecuted() {
	if m == nil {
		return
	}
	m.TransfersExecuted.Inc()
}

// ObserveCloseVoting records a closed voting round and its tally duration.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveCloseVoting(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.VotingsClosed.WithLabelValues(outcome).Inc()
	m.CloseVotingDuration.Observe(time.Since(start).Seconds())
}
