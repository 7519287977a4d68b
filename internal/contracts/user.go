package contracts

import "time"

type UserResponse struct {
	Id           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	AuthProvider string    `json:"authProvider"`
	CreatedAt    time.Time `json:"createdAt"`
}

type UserUpdateNameRequest struct {
	Name string `json:"name" binding:"required"`
}

type UserUpdatePhoneRequest struct {
	Phone string `json:"phone" binding:"omitempty,e164"`
}

type UserUpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type UserDeletionResponse struct {
	Message string `json:"message"`
}
