package repository

import (
	"context"
	"errors"
	"time"

	"eventbook/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInventoryConflict is returned when a confirmation would take an event's
// available ticket counter below zero.
var ErrInventoryConflict = errors.New("insufficient tickets for inventory decrement")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Event").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByIdempotencyKey(ctx context.Context, userID int64, key string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Event").
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) SetQRCode(ctx context.Context, bookingID int64, qrCode string) error {
	return r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", bookingID).
		Update("qr_code", qrCode).Error
}

func (r *BookingRepository) CountForHost(ctx context.Context, hostID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Joins("JOIN events ON events.id = bookings.event_id").
		Where("events.host_id = ?", hostID).
		Count(&cnt).Error
	return cnt, err
}

// ConfirmPayment flips a pending booking to confirmed/completed and
// decrements the event's ticket inventory in one transaction. The row lock
// plus the conditional update serialize concurrent confirmations for the
// same order: the second caller observes the completed state and gets
// changed=false with the unchanged booking. ErrInventoryConflict rolls the
// whole transaction back, leaving the booking pending.
func (r *BookingRepository) ConfirmPayment(ctx context.Context, orderID, paymentID, signature string, paidAt time.Time) (*domain.Booking, bool, error) {
	var booking domain.Booking
	var changed bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_id = ?", orderID).
			First(&booking).Error; err != nil {
			return err
		}

		if booking.PaymentStatus == domain.PaymentCompleted {
			changed = false
			return nil
		}

		res := tx.Model(&domain.Booking{}).
			Where("order_id = ? AND payment_status <> ?", orderID, domain.PaymentCompleted).
			Updates(map[string]interface{}{
				"status":         domain.BookingConfirmed,
				"payment_status": domain.PaymentCompleted,
				"payment_id":     paymentID,
				"signature":      signature,
				"gateway_status": domain.OrderCaptured,
				"payment_date":   paidAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("booking row not updated")
		}

		ok, err := decrementAvailableTickets(tx, booking.EventID, booking.NumberOfTickets)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInventoryConflict
		}

		if err := creditHostRevenueForEvent(tx, booking.EventID, booking.TotalAmount); err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", orderID).First(&booking).Error; err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &booking, changed, nil
}
