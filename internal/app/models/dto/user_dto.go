package dto

import "github.com/qlin/dormtrade/internal/app/models"

// UserResponse represents basic user information
type UserResponse struct {
	ID        int64         `json:"id"`
	StudentID string        `json:"studentId"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Wechat    *string       `json:"wechat,omitempty"`
	RoleLevel int           `json:"roleLevel"`
	Status    string        `json:"status"`
	Room      *RoomResponse `json:"room,omitempty"`
	CreatedAt string        `json:"createdAt"`
}

// RoomResponse represents a dormitory room
type RoomResponse struct {
	ID       int64  `json:"id"`
	Building string `json:"building"`
	Floor    int    `json:"floor"`
	RoomNo   string `json:"roomNo"`
}

// UpdateProfileRequest represents profile update data. Only the provided
// fields are changed.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty" binding:"omitempty,min=2,max=32"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Wechat   *string `json:"wechat,omitempty"`
	RoomID   *int64  `json:"roomId,omitempty"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// SetUserStatusRequest represents an admin ban/unban request
type SetUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE BANNED"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(u *models.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	resp := UserResponse{
		ID:        u.ID,
		StudentID: u.StudentID,
		Username:  u.Username,
		Email:     u.Email,
		Wechat:    u.Wechat,
		RoleLevel: u.RoleLevel,
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if u.Room != nil {
		resp.Room = &RoomResponse{
			ID:       u.Room.ID,
			Building: u.Room.Building,
			Floor:    u.Room.Floor,
			RoomNo:   u.Room.RoomNo,
		}
	}
	return resp
}
