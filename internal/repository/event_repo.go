package repository

import (
	"context"
	"time"

	"eventbook/internal/domain"

	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// EventFilter narrows the public event listing. Zero values mean "no filter".
type EventFilter struct {
	EventType string
	City      string
	MinPrice  int64
	MaxPrice  int64
	DateFrom  time.Time
	DateTo    time.Time
	Status    domain.EventStatus
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var e domain.Event
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) List(ctx context.Context, f EventFilter) ([]domain.Event, error) {
	q := r.db.WithContext(ctx).Model(&domain.Event{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.EventType != "" {
		q = q.Where("event_type = ?", f.EventType)
	}
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.MinPrice > 0 {
		q = q.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}
	if !f.DateFrom.IsZero() {
		q = q.Where("date >= ?", f.DateFrom)
	}
	if !f.DateTo.IsZero() {
		q = q.Where("date <= ?", f.DateTo)
	}

	var events []domain.Event
	if err := q.Order("date ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) ListByHost(ctx context.Context, hostID int64) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

func (r *EventRepository) ListByStatus(ctx context.Context, status domain.EventStatus) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

func (r *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Event{}, id).Error
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id int64, status domain.EventStatus, reason string) error {
	return r.db.WithContext(ctx).Model(&domain.Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           status,
			"rejection_reason": reason,
		}).Error
}

// decrementAvailableTickets issues a store-level conditional decrement: the
// counter never goes below zero, and concurrent confirmations racing for the
// last seats are serialized by the row update itself. Returns false when the
// event is missing or has fewer than n tickets left. Runs on whatever handle
// it is given, so it composes with a surrounding transaction.
func decrementAvailableTickets(db *gorm.DB, eventID int64, n int) (bool, error) {
	res := db.Model(&domain.Event{}).
		Where("id = ? AND available_tickets >= ?", eventID, n).
		Update("available_tickets", gorm.Expr("available_tickets - ?", n))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
