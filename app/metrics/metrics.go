package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// LedgerOps counts completed ledger operations by name.
var LedgerOps = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "wishlist_ledger_operations_total",
		Help: "Number of completed budget ledger operations",
	},
	[]string{"operation"},
)

// Serve exposes /metrics on its own port in the background.
func Serve(port string, logger *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		logger.Infof("Metrics server listening on :%s", port)
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			logger.Errorf("Metrics server stopped: %v", err)
		}
	}()
}
