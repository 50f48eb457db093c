package event

import (
	"context"
	"errors"
	"time"

	"eventbook/internal/domain"
	"eventbook/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	events EventRepository
	hosts  HostReader
}

func NewService(events EventRepository, hosts HostReader) *Service {
	return &Service{events: events, hosts: hosts}
}

// ListPublic returns approved events only, soonest first.
func (s *Service) ListPublic(ctx context.Context, q ListEventsQuery) ([]domain.Event, error) {
	f := repository.EventFilter{
		EventType: q.EventType,
		City:      q.City,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		Status:    domain.EventApproved,
	}

	if q.DateFrom != "" {
		d, err := time.Parse("2006-01-02", q.DateFrom)
		if err != nil {
			return nil, ErrValidation
		}
		f.DateFrom = d
	}
	if q.DateTo != "" {
		d, err := time.Parse("2006-01-02", q.DateTo)
		if err != nil {
			return nil, ErrValidation
		}
		f.DateTo = d
	}

	return s.events.List(ctx, f)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// CreateEvent creates a host's event in pending state; it becomes bookable
// only after admin approval.
func (s *Service) CreateEvent(ctx context.Context, userID int64, req CreateEventRequest) (*domain.Event, error) {
	host, err := s.hosts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, ErrNotHost
	}

	e := &domain.Event{
		HostID:           host.ID,
		Name:             req.Name,
		Description:      req.Description,
		EventType:        req.EventType,
		Venue:            req.Venue,
		City:             req.City,
		Date:             req.Date,
		Price:            req.Price,
		Capacity:         req.Capacity,
		AvailableTickets: req.Capacity,
		Status:           domain.EventPending,
	}

	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateEvent edits a host's own event; any edit sends it back to pending
// for re-approval.
func (s *Service) UpdateEvent(ctx context.Context, userID, eventID int64, req UpdateEventRequest) (*domain.Event, error) {
	e, _, err := s.getOwnedEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		e.Name = req.Name
	}
	if req.Description != "" {
		e.Description = req.Description
	}
	if req.EventType != "" {
		e.EventType = req.EventType
	}
	if req.Venue != "" {
		e.Venue = req.Venue
	}
	if req.City != "" {
		e.City = req.City
	}
	if req.Date != nil {
		e.Date = *req.Date
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrValidation
		}
		e.Price = *req.Price
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, ErrValidation
		}
		sold := e.Capacity - e.AvailableTickets
		if *req.Capacity < sold {
			return nil, ErrValidation
		}
		e.AvailableTickets = *req.Capacity - sold
		e.Capacity = *req.Capacity
	}

	e.Status = domain.EventPending
	e.RejectionReason = ""

	if err := s.events.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) DeleteEvent(ctx context.Context, userID, eventID int64) error {
	e, _, err := s.getOwnedEvent(ctx, userID, eventID)
	if err != nil {
		return err
	}
	return s.events.Delete(ctx, e.ID)
}

func (s *Service) ListHostEvents(ctx context.Context, userID int64) ([]domain.Event, error) {
	host, err := s.hosts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, ErrNotHost
	}
	return s.events.ListByHost(ctx, host.ID)
}

func (s *Service) getOwnedEvent(ctx context.Context, userID, eventID int64) (*domain.Event, *domain.Host, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	host, err := s.hosts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, ErrNotHost
	}
	if e.HostID != host.ID {
		return nil, nil, ErrForbidden
	}
	return e, host, nil
}
