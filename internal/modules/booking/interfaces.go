package booking

import (
	"context"
	"time"

	"eventbook/internal/domain"
	"eventbook/internal/gateway/razorpay"
)

// BookingRepository defines the storage operations the lifecycle core uses.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIdempotencyKey(ctx context.Context, userID int64, key string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	SetQRCode(ctx context.Context, bookingID int64, qrCode string) error
	ConfirmPayment(ctx context.Context, orderID, paymentID, signature string, paidAt time.Time) (*domain.Booking, bool, error)
}

// EventReader gives read-only access to events; the inventory decrement happens
// inside the confirm transaction, never through this interface.
type EventReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}

// PaymentGateway is the consumed slice of the gateway client.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*razorpay.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// AvailabilityNotifier receives inventory changes after a confirmed booking.
type AvailabilityNotifier interface {
	PublishAvailability(eventID int64, availableTickets int)
}
