package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
)

// Metrics holds the pairing service's Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	RoundsGenerated prometheus.Counter
	Pairings        prometheus.Counter
	Rematches       prometheus.Counter
	ByesAwarded     prometheus.Counter
	MatchesReported *prometheus.CounterVec
	PairingDuration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RoundsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_rounds_generated_total",
			Help: "Rounds of pairings generated.",
		}),
		Pairings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_pairings_total",
			Help: "Pairings proposed across all rounds.",
		}),
		Rematches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_rematches_total",
			Help: "Pairings that repeat an earlier match.",
		}),
		ByesAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_byes_awarded_total",
			Help: "Byes awarded to unpaired players.",
		}),
		MatchesReported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "swiss_matches_reported_total",
			Help: "Match results recorded, by result.",
		}, []string{"result"}),
		PairingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "swiss_pairing_duration_seconds",
			Help:    "Time spent generating a round, including storage access.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.RoundsGenerated, m.Pairings, m.Rematches, m.ByesAwarded, m.MatchesReported, m.PairingDuration)
	return m
}

func (m *Metrics) observeRound(round *brackets.Round, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RoundsGenerated.Inc()
	m.Pairings.Add(float64(len(round.Pairings)))
	m.Rematches.Add(float64(round.Rematches()))
	if round.Bye != nil {
		m.ByesAwarded.Inc()
	}
	m.PairingDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) observeMatch(match *models.Match) {
	if m == nil {
		return
	}
	m.MatchesReported.WithLabelValues(string(match.Result())).Inc()
}
