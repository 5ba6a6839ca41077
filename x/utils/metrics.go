package utils

import (
	"strconv"
	"time"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator counting processed transactions by result code and
// measuring their processing time.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ ledger.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator and registers its collectors with
// the given registerer.
func NewMetrics(reg prometheus.Registerer) (Metrics, error) {
	m := Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vaultd",
			Subsystem: "tx",
			Name:      "processed_total",
			Help:      "Transactions processed, by phase and abci result code.",
		}, []string{"phase", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vaultd",
			Subsystem: "tx",
			Name:      "duration_seconds",
			Help:      "Time spent processing a transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"phase"}),
	}
	if err := reg.Register(m.txs); err != nil {
		return Metrics{}, errors.Wrap(err, "register tx counter")
	}
	if err := reg.Register(m.duration); err != nil {
		return Metrics{}, errors.Wrap(err, "register tx duration")
	}
	return m, nil
}

// Check records the result of the check phase.
func (m Metrics) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", start, err)
	return res, err
}

// Deliver records the result of the deliver phase.
func (m Metrics) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", start, err)
	return res, err
}

func (m Metrics) observe(phase string, start time.Time, err error) {
	code, _ := errors.ABCIInfo(err, false)
	m.txs.WithLabelValues(phase, strconv.FormatUint(uint64(code), 10)).Inc()
	m.duration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}
