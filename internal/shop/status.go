// internal/shop/status.go
//
// Order status lifecycle as the backend reports it. The backend is the only
// mutator; this package only classifies the current value for display.

package shop

import "strings"

// Status is an order's lifecycle stage. The progression is linear
// (PENDING -> PROCESSED -> SHIPPED -> DELIVERED) with CANCELLED as the one
// absorbing exception state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusProcessed Status = "PROCESSED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
	StatusUnknown   Status = ""
)

// AllStatuses lists the assignable statuses in lifecycle order. Used by the
// admin views to offer status transitions.
var AllStatuses = []Status{
	StatusPending,
	StatusProcessed,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// ParseStatus normalizes a backend status string. Matching is
// case-insensitive; anything unrecognized maps to StatusUnknown.
func ParseStatus(value string) Status {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "PENDING":
		return StatusPending
	case "PROCESSED":
		return StatusProcessed
	case "SHIPPED":
		return StatusShipped
	case "DELIVERED":
		return StatusDelivered
	case "CANCELLED":
		return StatusCancelled
	}
	return StatusUnknown
}

// Class returns the display bucket for a status ("pending", "processed",
// "shipped", "delivered", "cancelled"), or "" for anything unrecognized.
func (s Status) Class() string {
	switch ParseStatus(string(s)) {
	case StatusPending:
		return "pending"
	case StatusProcessed:
		return "processed"
	case StatusShipped:
		return "shipped"
	case StatusDelivered:
		return "delivered"
	case StatusCancelled:
		return "cancelled"
	}
	return ""
}

// Timeline reports which of the four order progress steps are complete.
type Timeline struct {
	Placed    bool
	Processed bool
	Shipped   bool
	Delivered bool
}

// TimelineFor derives the progress steps from the current status. The
// containment table is fixed: PROCESSED, SHIPPED and DELIVERED complete the
// processed step; SHIPPED and DELIVERED complete shipped; only DELIVERED
// completes delivered. CANCELLED leaves every step incomplete, including
// placed.
func TimelineFor(status Status) Timeline {
	s := ParseStatus(string(status))
	if s == StatusCancelled {
		return Timeline{}
	}
	return Timeline{
		Placed:    true,
		Processed: s == StatusProcessed || s == StatusShipped || s == StatusDelivered,
		Shipped:   s == StatusShipped || s == StatusDelivered,
		Delivered: s == StatusDelivered,
	}
}
