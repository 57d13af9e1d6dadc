package models

import (
	"time"
)

// NoticeType classifies inbox items and announcements. SYSTEM and
// HANDOFF_REMINDER notices are addressed to exactly one receiver;
// ANNOUNCEMENT rows have a NULL receiver and are queried separately.
type NoticeType string

const (
	NoticeTypeSystem          NoticeType = "SYSTEM"
	NoticeTypeHandoffReminder NoticeType = "HANDOFF_REMINDER"
	NoticeTypeAnnouncement    NoticeType = "ANNOUNCEMENT"
)

// NoticeStatus is the read flag of a per-user notice.
type NoticeStatus string

const (
	NoticeStatusUnread NoticeStatus = "UNREAD"
	NoticeStatusRead   NoticeStatus = "READ"
)

// Notice defines a row of the 'notices' table.
type Notice struct {
	ID             int64        `json:"id" db:"id"`
	Type           NoticeType   `json:"type" db:"type"`
	Title          *string      `json:"title,omitempty" db:"title"` // Announcements only
	Content        string       `json:"content" db:"content"`
	ReceiverID     *int64       `json:"receiverId,omitempty" db:"receiver_id"` // NULL for announcements
	RelatedOrderID *int64       `json:"relatedOrderId,omitempty" db:"related_order_id"`
	Status         NoticeStatus `json:"status" db:"status"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
}
