package domain

import "time"

type EventStatus string

const (
	EventPending  EventStatus = "pending"
	EventApproved EventStatus = "approved"
	EventRejected EventStatus = "rejected"
)

// Event prices and revenue are stored in minor currency units (e.g. paise).
type Event struct {
	ID               int64       `json:"id"`
	HostID           int64       `json:"host_id" gorm:"index;not null"`
	Name             string      `json:"name" gorm:"not null"`
	Description      string      `json:"description,omitempty" gorm:"type:text"`
	EventType        string      `json:"event_type" gorm:"index"`
	Venue            string      `json:"venue"`
	City             string      `json:"city" gorm:"index"`
	Date             time.Time   `json:"date" gorm:"index"`
	Price            int64       `json:"price"`
	Capacity         int         `json:"capacity"`
	AvailableTickets int         `json:"available_tickets"`
	Status           EventStatus `json:"status" gorm:"type:varchar(16);default:'pending';index"`
	RejectionReason  string      `json:"rejection_reason,omitempty" gorm:"type:text"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`

	Host *Host `json:"host,omitempty" gorm:"foreignKey:HostID"`
}

func (Event) TableName() string { return "events" }
