package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type GatewayOrderStatus string

const (
	OrderCreated  GatewayOrderStatus = "created"
	OrderCaptured GatewayOrderStatus = "captured"
)

// Booking is one user's reservation of N tickets for one event.
// TotalAmount and the payment order amount are minor currency units.
// A booking is created pending/pending and flips exactly once to
// confirmed/completed when the gateway payment is verified.
type Booking struct {
	ID              int64         `json:"id"`
	UserID          int64         `json:"user_id" gorm:"index;not null;index:idx_bookings_user_idem,unique"`
	EventID         int64         `json:"event_id" gorm:"index;not null"`
	NumberOfTickets int           `json:"number_of_tickets" gorm:"not null"`
	TotalAmount     int64         `json:"total_amount" gorm:"not null"`
	Status          BookingStatus `json:"status" gorm:"type:varchar(16);default:'pending';index"`
	PaymentStatus   PaymentStatus `json:"payment_status" gorm:"type:varchar(16);default:'pending';index"`

	OrderID        string             `json:"order_id" gorm:"column:order_id;uniqueIndex;not null"`
	OrderAmount    int64              `json:"order_amount"`
	OrderCurrency  string             `json:"order_currency" gorm:"type:varchar(8)"`
	PaymentID      string             `json:"payment_id,omitempty"`
	Signature      string             `json:"-" gorm:"type:varchar(128)"`
	GatewayStatus  GatewayOrderStatus `json:"gateway_status" gorm:"type:varchar(16);default:'created'"`
	IdempotencyKey *string            `json:"-" gorm:"type:varchar(64);index:idx_bookings_user_idem,unique"`

	QRCode      string     `json:"qr_code,omitempty" gorm:"type:text"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Event *Event `json:"event,omitempty" gorm:"foreignKey:EventID"`
}

func (Booking) TableName() string { return "bookings" }
