package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "store_events_total"
	MetricNameEventHandlerErrors = "store_event_handler_errors_total"
)

// Store metric names
const (
	MetricNameItemsPurchased         = "store_items_purchased_total"
	MetricNameMarketPurchases        = "store_market_purchases_total"
	MetricNameMarketCancellations    = "store_market_cancellations_total"
	MetricNameMarketRefunds          = "store_market_refunds_total"
	MetricNameBalanceCredited        = "store_balance_credited_total"
	MetricNameBalanceDebited         = "store_balance_debited_total"
	MetricNameGoodsEquipped          = "store_goods_equipped_total"
	MetricNameUpgradesApplied        = "store_upgrades_applied_total"
	MetricNameUnexpectedStoreErrors  = "store_unexpected_errors_total"
	MetricNameNonConsumablesAssigned = "store_non_consumables_changed_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of store events delivered"
	HelpTextEventHandlerErrors = "Total number of store event handler failures"
)

// Store metric help text
const (
	HelpTextItemsPurchased         = "Completed purchases per item"
	HelpTextMarketPurchases        = "Market purchases confirmed by the provider"
	HelpTextMarketCancellations    = "Market purchases cancelled by the user"
	HelpTextMarketRefunds          = "Market refunds reported by the provider"
	HelpTextBalanceCredited        = "Units credited to currency and good balances"
	HelpTextBalanceDebited         = "Units debited from currency and good balances"
	HelpTextGoodsEquipped          = "Goods equipped"
	HelpTextUpgradesApplied        = "Upgrades assigned to goods"
	HelpTextUnexpectedStoreErrors  = "Market failures reported to the host"
	HelpTextNonConsumablesAssigned = "Non-consumable ownership changes"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelItem   = "item"
	LabelGood   = "good"
	LabelOwned  = "owned"
)

// UnmatchedRoute labels requests no route matched
const UnmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgUnexpectedPayload = "Store event carries an unexpected payload"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
