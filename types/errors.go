package types

// Application error types carried across the activity boundary. The retry
// policy keys off these names: Unavailable is retryable, the rest are not.
const (
	ErrTypeUnavailable     = "Unavailable"
	ErrTypeInvalidArgument = "InvalidArgument"
	ErrTypeConflict        = "Conflict"
	ErrTypeStockChanged    = "StockChanged"
)

// NonRetryableErrorTypes is the set handed to every activity retry policy.
// StockChanged is listed so the orchestrator, not the retry policy, decides
// the single refresh pass.
var NonRetryableErrorTypes = []string{
	ErrTypeInvalidArgument,
	ErrTypeConflict,
	ErrTypeStockChanged,
}
