package booking

import (
	"context"
	"errors"
	"strconv"
	"time"

	"eventbook/internal/domain"
	"eventbook/internal/pkg/qr"
	"eventbook/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	events   EventReader
	gateway  PaymentGateway
	live     AvailabilityNotifier
	currency string
	loggerf  func(format string, args ...interface{})
}

func NewService(
	bookings BookingRepository,
	events EventReader,
	gateway PaymentGateway,
	live AvailabilityNotifier,
	currency string,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		bookings: bookings,
		events:   events,
		gateway:  gateway,
		live:     live,
		currency: currency,
		loggerf:  loggerf,
	}
}

// CreateReservation places a payment order for n tickets and persists the
// booking in pending/pending state. Inventory is only checked here, not
// held; the decrement happens at confirmation time.
func (s *Service) CreateReservation(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, *OrderPublic, error) {
	if req.NumberOfTickets < 1 {
		return nil, nil, ErrValidation
	}

	if req.IdempotencyKey != "" {
		if existing, err := s.bookings.GetByIdempotencyKey(ctx, userID, req.IdempotencyKey); err == nil {
			s.loggerf("level=info msg=reservation dedup hit user_id=%d key=%s booking_id=%d", userID, req.IdempotencyKey, existing.ID)
			return existing, orderFromBooking(existing), nil
		}
	}

	event, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrEventNotFound
		}
		return nil, nil, err
	}
	if event.Status != domain.EventApproved {
		return nil, nil, ErrEventNotFound
	}
	if event.AvailableTickets < req.NumberOfTickets {
		return nil, nil, ErrInsufficientTickets
	}

	// integer minor-unit arithmetic throughout, no floats near money
	amount := event.Price * int64(req.NumberOfTickets)

	receipt := "rcpt_" + uuid.NewString()
	order, err := s.gateway.CreateOrder(ctx, amount, s.currency, receipt, map[string]string{
		"eventId": strconv.FormatInt(event.ID, 10),
		"userId":  strconv.FormatInt(userID, 10),
		"tickets": strconv.Itoa(req.NumberOfTickets),
	})
	if err != nil {
		s.loggerf("level=error msg=gateway order creation failed event_id=%d user_id=%d err=%v", event.ID, userID, err)
		return nil, nil, err
	}

	var idemKey *string
	if req.IdempotencyKey != "" {
		k := req.IdempotencyKey
		idemKey = &k
	}

	b := &domain.Booking{
		UserID:          userID,
		EventID:         event.ID,
		NumberOfTickets: req.NumberOfTickets,
		TotalAmount:     amount,
		Status:          domain.BookingPending,
		PaymentStatus:   domain.PaymentPending,
		OrderID:         order.ID,
		OrderAmount:     order.Amount,
		OrderCurrency:   order.Currency,
		GatewayStatus:   domain.OrderCreated,
		IdempotencyKey:  idemKey,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		// a concurrent retry with the same idempotency key can lose the
		// insert race; the unique index turns that into a dedup hit
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && req.IdempotencyKey != "" {
			if existing, lookupErr := s.bookings.GetByIdempotencyKey(ctx, userID, req.IdempotencyKey); lookupErr == nil {
				return existing, orderFromBooking(existing), nil
			}
		}
		return nil, nil, err
	}

	code, err := qr.DataURL(qr.TicketPayload{
		BookingID: b.ID,
		EventID:   event.ID,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		s.loggerf("level=error msg=qr generation failed booking_id=%d err=%v", b.ID, err)
	} else if err := s.bookings.SetQRCode(ctx, b.ID, code); err != nil {
		s.loggerf("level=error msg=qr persist failed booking_id=%d err=%v", b.ID, err)
	} else {
		b.QRCode = code
	}

	return b, orderFromBooking(b), nil
}

// ConfirmPayment verifies the gateway signature and commits the booking.
// The signature check runs before any lookup or mutation; a booking already
// completed is returned unchanged, so gateway webhook redelivery is safe.
func (s *Service) ConfirmPayment(ctx context.Context, req VerifyPaymentRequest) (*domain.Booking, error) {
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return nil, ErrMissingParameters
	}

	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		s.loggerf("level=warn msg=payment signature rejected order_id=%s payment_id=%s", req.OrderID, req.PaymentID)
		return nil, ErrInvalidSignature
	}

	b, changed, err := s.bookings.ConfirmPayment(ctx, req.OrderID, req.PaymentID, req.Signature, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		if errors.Is(err, repository.ErrInventoryConflict) {
			// payment is captured at the gateway but the event sold out
			// between reservation and confirmation; surfaced for manual
			// reconciliation, booking stays pending
			s.loggerf("level=error msg=confirmed payment lost inventory race order_id=%s payment_id=%s", req.OrderID, req.PaymentID)
			return nil, ErrInsufficientTickets
		}
		return nil, err
	}

	if !changed {
		s.loggerf("level=info msg=idempotent confirm order_id=%s booking_id=%d", req.OrderID, b.ID)
		return b, nil
	}

	if s.live != nil {
		if event, err := s.events.GetByID(ctx, b.EventID); err == nil {
			s.live.PublishAvailability(event.ID, event.AvailableTickets)
		}
	}

	return b, nil
}

func (s *Service) GetBooking(ctx context.Context, actorID int64, actorRole string, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if b.UserID != actorID && actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	return b, nil
}

func (s *Service) ListMyBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *Service) ListAllBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListAll(ctx)
}

func orderFromBooking(b *domain.Booking) *OrderPublic {
	return &OrderPublic{
		ID:       b.OrderID,
		Amount:   b.OrderAmount,
		Currency: b.OrderCurrency,
	}
}
