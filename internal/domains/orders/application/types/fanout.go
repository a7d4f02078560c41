package types

// BranchFailure captures a failed fan-out branch in a serializable form
// so reports survive a trip through a workflow history.
type BranchFailure struct {
	Message string `json:"message"`
}

func (f *BranchFailure) Error() string {
	if f == nil {
		return ""
	}
	return f.Message
}

// NewBranchFailure wraps a branch error, or returns nil for success.
func NewBranchFailure(err error) *BranchFailure {
	if err == nil {
		return nil
	}
	return &BranchFailure{Message: err.Error()}
}

// FanOutReport records the outcome of each fan-out branch for one order.
// Branches are independent: any mix of nil and non-nil entries is valid.
type FanOutReport struct {
	OrderID         string         `json:"orderId"`
	OrderDetails    *BranchFailure `json:"orderDetails,omitempty"`
	DeliveryDetails *BranchFailure `json:"deliveryDetails,omitempty"`
	Reservation     *BranchFailure `json:"reservation,omitempty"`
}

// Failed reports whether any branch failed.
func (r *FanOutReport) Failed() bool {
	if r == nil {
		return false
	}
	return r.OrderDetails != nil || r.DeliveryDetails != nil || r.Reservation != nil
}

// Failures lists the failed branches by name for logging.
func (r *FanOutReport) Failures() map[string]string {
	if r == nil {
		return nil
	}
	failures := map[string]string{}
	if r.OrderDetails != nil {
		failures["orderDetails"] = r.OrderDetails.Message
	}
	if r.DeliveryDetails != nil {
		failures["deliveryDetails"] = r.DeliveryDetails.Message
	}
	if r.Reservation != nil {
		failures["reservation"] = r.Reservation.Message
	}
	return failures
}
