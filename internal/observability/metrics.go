package observability

// Metric names shared between wiring (main) and instrumented code. Keep the
// label sets low-cardinality: route templates, use case names, outcomes.
const (
	MHTTPRequests        = "http_requests_total"
	MHTTPRequestDuration = "http_request_duration_seconds"
	MUsecaseRequests     = "usecase_requests_total"
	MUsecaseDuration     = "usecase_duration_seconds"
	MCheckoutLineSkips   = "checkout_lines_skipped_total"
)
