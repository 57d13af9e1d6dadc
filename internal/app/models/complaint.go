package models

import (
	"time"
)

// ComplaintStatus represents the handling state of a complaint.
// PROCESSING is an optional administrator-entered intermediate; an admin may
// resolve directly from PENDING.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "PENDING"
	ComplaintStatusProcessing ComplaintStatus = "PROCESSING"
	ComplaintStatusResolved   ComplaintStatus = "RESOLVED"
	ComplaintStatusRejected   ComplaintStatus = "REJECTED"
)

// Open reports whether the complaint still awaits a final decision.
func (s ComplaintStatus) Open() bool {
	return s == ComplaintStatusPending || s == ComplaintStatusProcessing
}

// Complaint defines an order-linked dispute. The accused party is always the
// order's seller, derived at submission time.
type Complaint struct {
	ID            int64           `json:"id" db:"id"`
	OrderID       int64           `json:"orderId" db:"order_id"`
	ComplainantID int64           `json:"complainantId" db:"complainant_id"`
	AccusedID     int64           `json:"accusedId" db:"accused_id"`
	Content       string          `json:"content" db:"content"`
	Status        ComplaintStatus `json:"status" db:"status"`
	Result        *string         `json:"result,omitempty" db:"result"`
	HandledBy     *int64          `json:"handledBy,omitempty" db:"handled_by"`
	HandledAt     *time.Time      `json:"handledAt,omitempty" db:"handled_at"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`

	// Joined fields, no db tag
	ComplainantName string `json:"complainantName,omitempty"`
	AccusedName     string `json:"accusedName,omitempty"`
	PostingTitle    string `json:"postingTitle,omitempty"`
}
