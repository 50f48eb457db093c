package booking

type CreateBookingRequest struct {
	EventID         int64  `json:"eventId" binding:"required"`
	NumberOfTickets int    `json:"numberOfTickets"`
	IdempotencyKey  string `json:"idempotencyKey,omitempty"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// OrderPublic is the slice of gateway order metadata the client needs to
// complete the payment out-of-band.
type OrderPublic struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key,omitempty"`
}
