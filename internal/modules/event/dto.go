package event

import "time"

type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	EventType   string    `json:"event_type" binding:"required"`
	Venue       string    `json:"venue" binding:"required"`
	City        string    `json:"city" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Price       int64     `json:"price" binding:"required"` // minor currency units
	Capacity    int       `json:"capacity" binding:"required,min=1"`
}

type UpdateEventRequest struct {
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	EventType   string     `json:"event_type,omitempty"`
	Venue       string     `json:"venue,omitempty"`
	City        string     `json:"city,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Price       *int64     `json:"price,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
}

type ListEventsQuery struct {
	EventType string `form:"eventType"`
	City      string `form:"city"`
	MinPrice  int64  `form:"minPrice"`
	MaxPrice  int64  `form:"maxPrice"`
	DateFrom  string `form:"dateFrom"`
	DateTo    string `form:"dateTo"`
}
