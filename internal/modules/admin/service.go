package admin

import (
	"context"
	"errors"
	"strings"

	"eventbook/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("event not found")
	ErrReasonRequired = errors.New("rejection reason is required")
	ErrNotPending     = errors.New("event is not pending moderation")
)

type EventModerationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	ListByStatus(ctx context.Context, status domain.EventStatus) ([]domain.Event, error)
	UpdateStatus(ctx context.Context, id int64, status domain.EventStatus, reason string) error
}

type Service struct {
	events EventModerationRepository
}

func NewService(events EventModerationRepository) *Service {
	return &Service{events: events}
}

func (s *Service) ListPendingEvents(ctx context.Context) ([]domain.Event, error) {
	return s.events.ListByStatus(ctx, domain.EventPending)
}

func (s *Service) ApproveEvent(ctx context.Context, eventID int64) (*domain.Event, error) {
	e, err := s.pendingEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.events.UpdateStatus(ctx, e.ID, domain.EventApproved, ""); err != nil {
		return nil, err
	}
	e.Status = domain.EventApproved
	e.RejectionReason = ""
	return e, nil
}

func (s *Service) RejectEvent(ctx context.Context, eventID int64, reason string) (*domain.Event, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	e, err := s.pendingEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.events.UpdateStatus(ctx, e.ID, domain.EventRejected, reason); err != nil {
		return nil, err
	}
	e.Status = domain.EventRejected
	e.RejectionReason = reason
	return e, nil
}

func (s *Service) pendingEvent(ctx context.Context, eventID int64) (*domain.Event, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if e.Status != domain.EventPending {
		return nil, ErrNotPending
	}
	return e, nil
}
