package market

import "github.com/prometheus/client_golang/prometheus"

var (
	listingsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "market",
		Name:      "listings_total",
		Help:      "Listing lifecycle events, by kind (listed, updated, delisted).",
	}, []string{"kind"})

	salesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "market",
		Name:      "sales_total",
		Help:      "Completed sales, by settlement policy.",
	}, []string{"policy"})

	volumeCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "market",
		Name:      "sales_volume_total",
		Help:      "Sum of the prices of all completed sales, in base units of the native token.",
	})

	feesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "market",
		Name:      "fees_total",
		Help:      "Sum of the fees paid to the treasury, in base units of the native token.",
	})
)

// Collectors returns all metrics of this extension so that the binary can
// register them.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{listingsCounter, salesCounter, volumeCounter, feesCounter}
}

// RegisterMetrics registers the market metrics with given registerer.
func RegisterMetrics(r prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func observeSale(s *Settlement) {
	salesCounter.WithLabelValues(s.Policy.String()).Inc()
	// Counters are float64 and exact up to 2^53 base units. Above that
	// they round, which is acceptable for monitoring. Balances and
	// receipts keep the exact amounts.
	volumeCounter.Add(float64(s.Price))
	feesCounter.Add(float64(s.Fee))
}
