package domain

import "time"

type HostVerificationStatus string

const (
	HostPending  HostVerificationStatus = "pending"
	HostApproved HostVerificationStatus = "approved"
	HostRejected HostVerificationStatus = "rejected"
)

type Host struct {
	ID                 int64                  `json:"id"`
	UserID             int64                  `json:"user_id" gorm:"uniqueIndex;not null"`
	BusinessName       string                 `json:"business_name" gorm:"not null"`
	BusinessType       string                 `json:"business_type"`
	BusinessAddress    string                 `json:"business_address,omitempty"`
	City               string                 `json:"city,omitempty"`
	VerificationStatus HostVerificationStatus `json:"verification_status" gorm:"type:varchar(16);default:'pending'"`
	TotalRevenue       int64                  `json:"total_revenue"` // minor currency units
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Host) TableName() string { return "hosts" }
