package models

import (
	"time"
)

// Role levels. Fine-grained permission level kept as an integer because the
// legacy data model distinguishes more levels than are in active use;
// level 3 is the administrator gate for all admin screens.
const (
	RoleLevelMember = 1
	RoleLevelAdmin  = 3
)

// UserStatus represents the account status
type UserStatus string

const (
	UserStatusActive UserStatus = "ACTIVE"
	UserStatusBanned UserStatus = "BANNED"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64      `json:"id" db:"id" example:"1"`
	StudentID string     `json:"studentId" db:"student_id" example:"20250042"` // Unique campus identifier, used for login
	Username  string     `json:"username" db:"username" example:"zhangsan"`
	Email     string     `json:"email" db:"email" example:"zhangsan@campus.edu.cn"`
	Password  string     `json:"-" db:"password"` // Bcrypt hash, excluded from JSON
	Wechat    *string    `json:"wechat,omitempty" db:"wechat"`
	RoleLevel int        `json:"roleLevel" db:"role_level" example:"1"`
	Status    UserStatus `json:"status" db:"status" example:"ACTIVE"`
	RoomID    *int64     `json:"roomId,omitempty" db:"room_id"`
	Room      *Room      `json:"room,omitempty"` // Relation, no db tag
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// IsAdmin reports whether the user holds the administrator role level.
func (u *User) IsAdmin() bool {
	return u.RoleLevel == RoleLevelAdmin
}

// IsBanned reports whether the account is banned.
func (u *User) IsBanned() bool {
	return u.Status == UserStatusBanned
}

// Room defines a dormitory room, static reference data.
type Room struct {
	ID       int64  `json:"id" db:"id" example:"12"`
	Building string `json:"building" db:"building" example:"B3"`
	Floor    int    `json:"floor" db:"floor" example:"4"`
	RoomNo   string `json:"roomNo" db:"room_no" example:"412"`
}

// Location is a resolved dormitory position (room, floor, building) of a
// user, used by the visibility rules. A user without a bound room has no
// resolvable location.
type Location struct {
	RoomID   int64
	Floor    int
	Building string
}
