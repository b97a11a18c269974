package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Store Metrics
var (
	ItemsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsPurchased,
			Help: HelpTextItemsPurchased,
		},
		[]string{LabelItem},
	)

	MarketPurchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMarketPurchases,
			Help: HelpTextMarketPurchases,
		},
		[]string{LabelItem},
	)

	MarketCancellations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMarketCancellations,
			Help: HelpTextMarketCancellations,
		},
		[]string{LabelItem},
	)

	MarketRefunds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMarketRefunds,
			Help: HelpTextMarketRefunds,
		},
		[]string{LabelItem},
	)

	BalanceCredited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBalanceCredited,
			Help: HelpTextBalanceCredited,
		},
		[]string{LabelItem},
	)

	BalanceDebited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBalanceDebited,
			Help: HelpTextBalanceDebited,
		},
		[]string{LabelItem},
	)

	GoodsEquipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGoodsEquipped,
			Help: HelpTextGoodsEquipped,
		},
		[]string{LabelItem},
	)

	UpgradesApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUpgradesApplied,
			Help: HelpTextUpgradesApplied,
		},
		[]string{LabelGood},
	)

	NonConsumablesChanged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNonConsumablesAssigned,
			Help: HelpTextNonConsumablesAssigned,
		},
		[]string{LabelItem, LabelOwned},
	)

	UnexpectedStoreErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameUnexpectedStoreErrors,
			Help: HelpTextUnexpectedStoreErrors,
		},
	)
)
