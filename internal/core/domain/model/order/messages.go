package order

const (
	CreatedMessage         = "New order available in your region!"
	StatusUpdatedMessage   = "Order status updated"
	PaymentRecordedMessage = "Payment recorded successfully"
)

var statusMessages = map[Status]string{
	Pending:    "Order is pending",
	Accepted:   "Order has been accepted by driver",
	OnTheWay:   "Driver is on the way to pickup location",
	PickedUp:   "Driver has picked up the order",
	InProgress: "Order is being delivered",
	Completed:  "Order has been completed",
	Cancelled:  "Order has been cancelled",
}

// StatusMessage returns the human readable text announced when an order enters s.
func StatusMessage(s Status) string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return StatusUpdatedMessage
}
