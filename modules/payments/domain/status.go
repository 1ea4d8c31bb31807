package domain

// Status tracks a payment attempt through the gateway round-trip.
// PENDING means an intent exists and the customer may still pay.
// COMPLETED and REFUNDED are final. FAILED is final for the attempt, but
// the order may start a fresh attempt afterwards.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusRefunded  Status = "REFUNDED"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

// IsLive reports whether this attempt still occupies the order's payment
// slot. At most one live payment may exist per order; a FAILED attempt
// frees the slot so the order can be retried.
func (s Status) IsLive() bool {
	return s == StatusPending || s == StatusCompleted
}
