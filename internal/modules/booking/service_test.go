package booking

import (
	"context"
	"testing"
	"time"

	"eventbook/internal/domain"
	"eventbook/internal/gateway/razorpay"
	"eventbook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil {
		b.ID = 101 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByIdempotencyKey(ctx context.Context, userID int64, key string) (*domain.Booking, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) SetQRCode(ctx context.Context, bookingID int64, qrCode string) error {
	args := m.Called(ctx, bookingID, qrCode)
	return args.Error(0)
}

func (m *MockBookingRepository) ConfirmPayment(ctx context.Context, orderID, paymentID, signature string, paidAt time.Time) (*domain.Booking, bool, error) {
	args := m.Called(ctx, orderID, paymentID, signature, paidAt)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Booking), args.Bool(1), args.Error(2)
}

type MockEventReader struct {
	mock.Mock
}

func (m *MockEventReader) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*razorpay.Order, error) {
	args := m.Called(ctx, amount, currency, receipt, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*razorpay.Order), args.Error(1)
}

func (m *MockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	args := m.Called(orderID, paymentID, signature)
	return args.Bool(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishAvailability(eventID int64, availableTickets int) {
	m.Called(eventID, availableTickets)
}

func approvedEvent(id int64, price int64, available int) *domain.Event {
	return &domain.Event{
		ID:               id,
		HostID:           1,
		Name:             "Test Event",
		Price:            price,
		Capacity:         available,
		AvailableTickets: available,
		Status:           domain.EventApproved,
	}
}

func newTestService(bookings *MockBookingRepository, events *MockEventReader, gw *MockGateway, live AvailabilityNotifier) *Service {
	return NewService(bookings, events, gw, live, "INR", nil)
}

func TestCreateReservation_AmountIsExactMinorUnits(t *testing.T) {
	// price 500.00 stored as 50000 minor units; 3 tickets -> 150000
	cases := []struct {
		tickets int
		want    int64
	}{
		{1, 50000},
		{3, 150000},
		{10000, 500000000},
	}

	for _, tc := range cases {
		bookings := new(MockBookingRepository)
		events := new(MockEventReader)
		gw := new(MockGateway)

		events.On("GetByID", mock.Anything, int64(7)).Return(approvedEvent(7, 50000, 20000), nil)
		gw.On("CreateOrder", mock.Anything, tc.want, "INR", mock.AnythingOfType("string"), mock.Anything).
			Return(&razorpay.Order{ID: "order_abc", Amount: tc.want, Currency: "INR", Status: "created"}, nil)
		bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
		bookings.On("SetQRCode", mock.Anything, int64(101), mock.AnythingOfType("string")).Return(nil)

		svc := newTestService(bookings, events, gw, nil)
		b, order, err := svc.CreateReservation(context.Background(), 42, CreateBookingRequest{EventID: 7, NumberOfTickets: tc.tickets})

		assert.NoError(t, err)
		assert.Equal(t, tc.want, b.TotalAmount, "tickets=%d", tc.tickets)
		assert.Equal(t, tc.want, order.Amount)
		assert.Equal(t, domain.BookingPending, b.Status)
		assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
		assert.Equal(t, "order_abc", b.OrderID)
		assert.NotEmpty(t, b.QRCode)
	}
}

func TestCreateReservation_InvalidTicketCount(t *testing.T) {
	bookings := new(MockBookingRepository)
	events := new(MockEventReader)
	gw := new(MockGateway)

	svc := newTestService(bookings, events, gw, nil)
	_, _, err := svc.CreateReservation(context.Background(), 42, CreateBookingRequest{EventID: 7, NumberOfTickets: 0})

	assert.ErrorIs(t, err, ErrValidation)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReservation_EventNotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	events := new(MockEventReader)
	gw := new(MockGateway)

	events.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := newTestService(bookings, events, gw, nil)
	_, _, err := svc.CreateReservation(context.Background(), 42, CreateBookingRequest{EventID: 99, NumberOfTickets: 2})

	assert.ErrorIs(t, err, ErrEventNotFound)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReservation_UnapprovedEventIsInvisible(t *testing.T) {
	bookings := new(MockBookingRepository)
	events := new(MockEventReader)
	gw := new(MockGateway)

	e := approvedEvent(7, 50000, 100)
	e.Status = domain.EventPending
	events.On("GetByID", mock.Anything, int64(7)).Return(e, nil)

	svc := newTestService(bookings, events, gw, nil)
	_, _, err := svc.CreateReservation(context.Background(), 42, CreateBookingRequest{EventID: 7, NumberOfTickets: 2})

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestCreateReservation_InsufficientTickets(t *testing.T) {
	bookings := new(MockBookingRepository)
	events := new(MockEventReader)
	gw := new(MockGateway)

	events.On("GetByID", mock.Anything, int64(7)).Return(approvedEvent(7, 50000, 2), nil)

	svc := newTestService(bookings, events, gw, nil)
	_, _, err := svc.CreateReservation(context.Background(), 42, CreateBookingRequest{EventID: 7, NumberOfTickets: 3})

	assert.ErrorIs(t, err, ErrInsufficientTickets)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReservation_IdempotencyKeyDedupe(t *testing.T) {
	bookings := new(MockBookingRepository)
	events := new(MockEventReader)
	gw := new(MockGateway)

	existing := &domain.Booking{
		ID:            55,
		UserID:        42,
		EventID:       7,
		OrderID:       "order_prev",
		OrderAmount:   100000,
		OrderCurrency: "INR",
	}
	bookings.On("GetByIdempotencyKey", mock.Anything, int64(42), "retry-key-1").Return(existing, nil)

	svc := newTestService(bookings, events, gw, nil)
	b, order, err := svc.CreateReservation(context.Background(), 42, CreateBookingRequest{
		EventID:         7,
		NumberOfTickets: 2,
		IdempotencyKey:  "retry-key-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(55), b.ID)
	assert.Equal(t, "order_prev", order.ID)
	gw.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConfirmPayment_MissingParameters(t *testing.T) {
	svc := newTestService(new(MockBookingRepository), new(MockEventReader), new(MockGateway), nil)

	for _, req := range []VerifyPaymentRequest{
		{PaymentID: "pay_1", Signature: "sig"},
		{OrderID: "order_1", Signature: "sig"},
		{OrderID: "order_1", PaymentID: "pay_1"},
	} {
		_, err := svc.ConfirmPayment(context.Background(), req)
		assert.ErrorIs(t, err, ErrMissingParameters)
	}
}

func TestConfirmPayment_InvalidSignatureNeverMutates(t *testing.T) {
	bookings := new(MockBookingRepository)
	events := new(MockEventReader)
	gw := new(MockGateway)
	live := new(MockNotifier)

	gw.On("VerifySignature", "order_1", "pay_1", "forged").Return(false)

	svc := newTestService(bookings, events, gw, live)
	_, err := svc.ConfirmPayment(context.Background(), VerifyPaymentRequest{
		OrderID: "order_1", PaymentID: "pay_1", Signature: "forged",
	})

	assert.ErrorIs(t, err, ErrInvalidSignature)
	bookings.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	live.AssertNotCalled(t, "PublishAvailability", mock.Anything, mock.Anything)
}

func TestConfirmPayment_Success(t *testing.T) {
	bookings := new(MockBookingRepository)
	events := new(MockEventReader)
	gw := new(MockGateway)
	live := new(MockNotifier)

	confirmed := &domain.Booking{
		ID:              101,
		UserID:          42,
		EventID:         7,
		NumberOfTickets: 3,
		Status:          domain.BookingConfirmed,
		PaymentStatus:   domain.PaymentCompleted,
		OrderID:         "order_1",
	}

	gw.On("VerifySignature", "order_1", "pay_1", "sig").Return(true)
	bookings.On("ConfirmPayment", mock.Anything, "order_1", "pay_1", "sig", mock.AnythingOfType("time.Time")).
		Return(confirmed, true, nil)
	events.On("GetByID", mock.Anything, int64(7)).Return(approvedEvent(7, 50000, 97), nil)
	live.On("PublishAvailability", int64(7), 97).Return()

	svc := newTestService(bookings, events, gw, live)
	b, err := svc.ConfirmPayment(context.Background(), VerifyPaymentRequest{
		OrderID: "order_1", PaymentID: "pay_1", Signature: "sig",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, domain.PaymentCompleted, b.PaymentStatus)
	live.AssertCalled(t, "PublishAvailability", int64(7), 97)
}

func TestConfirmPayment_IdempotentRetry(t *testing.T) {
	bookings := new(MockBookingRepository)
	events := new(MockEventReader)
	gw := new(MockGateway)
	live := new(MockNotifier)

	already := &domain.Booking{
		ID:            101,
		EventID:       7,
		Status:        domain.BookingConfirmed,
		PaymentStatus: domain.PaymentCompleted,
		OrderID:       "order_1",
	}

	gw.On("VerifySignature", "order_1", "pay_1", "sig").Return(true)
	bookings.On("ConfirmPayment", mock.Anything, "order_1", "pay_1", "sig", mock.AnythingOfType("time.Time")).
		Return(already, false, nil)

	svc := newTestService(bookings, events, gw, live)
	b, err := svc.ConfirmPayment(context.Background(), VerifyPaymentRequest{
		OrderID: "order_1", PaymentID: "pay_1", Signature: "sig",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(101), b.ID)
	// no second decrement, so no availability broadcast either
	live.AssertNotCalled(t, "PublishAvailability", mock.Anything, mock.Anything)
}

func TestConfirmPayment_BookingNotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	gw := new(MockGateway)

	gw.On("VerifySignature", "order_x", "pay_1", "sig").Return(true)
	bookings.On("ConfirmPayment", mock.Anything, "order_x", "pay_1", "sig", mock.AnythingOfType("time.Time")).
		Return(nil, false, gorm.ErrRecordNotFound)

	svc := newTestService(bookings, new(MockEventReader), gw, nil)
	_, err := svc.ConfirmPayment(context.Background(), VerifyPaymentRequest{
		OrderID: "order_x", PaymentID: "pay_1", Signature: "sig",
	})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestConfirmPayment_InventoryConflict(t *testing.T) {
	bookings := new(MockBookingRepository)
	gw := new(MockGateway)

	gw.On("VerifySignature", "order_1", "pay_1", "sig").Return(true)
	bookings.On("ConfirmPayment", mock.Anything, "order_1", "pay_1", "sig", mock.AnythingOfType("time.Time")).
		Return(nil, false, repository.ErrInventoryConflict)

	svc := newTestService(bookings, new(MockEventReader), gw, nil)
	_, err := svc.ConfirmPayment(context.Background(), VerifyPaymentRequest{
		OrderID: "order_1", PaymentID: "pay_1", Signature: "sig",
	})

	assert.ErrorIs(t, err, ErrInsufficientTickets)
}

func TestGetBooking_Authorization(t *testing.T) {
	owned := &domain.Booking{ID: 101, UserID: 42, EventID: 7}

	cases := []struct {
		name    string
		actorID int64
		role    string
		wantErr error
	}{
		{"owner", 42, "user", nil},
		{"admin", 1, "admin", nil},
		{"stranger", 43, "user", ErrForbidden},
		{"host is not special", 43, "host", ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bookings := new(MockBookingRepository)
			bookings.On("GetByID", mock.Anything, int64(101)).Return(owned, nil)

			svc := newTestService(bookings, new(MockEventReader), new(MockGateway), nil)
			b, err := svc.GetBooking(context.Background(), tc.actorID, tc.role, 101)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, b)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(101), b.ID)
			}
		})
	}
}

func TestGetBooking_NotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	svc := newTestService(bookings, new(MockEventReader), new(MockGateway), nil)
	_, err := svc.GetBooking(context.Background(), 42, "user", 404)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}
