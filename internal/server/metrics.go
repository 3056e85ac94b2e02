package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchserver_requests_total",
			Help: "Total requests per match endpoint",
		},
		[]string{"endpoint"},
	)
	LobbiesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "matchserver_lobbies_created_total",
			Help: "Total lobbies created",
		},
	)
	MatchesResolved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "matchserver_matches_resolved_total",
			Help: "Total turns resolved with a winner result",
		},
	)
)

func init() {
	prometheus.MustRegister(Requests)
	prometheus.MustRegister(LobbiesCreated)
	prometheus.MustRegister(MatchesResolved)
}

// CountRequests records per-endpoint traffic.
func CountRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		Requests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
