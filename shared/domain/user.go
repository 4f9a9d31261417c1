package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id          UserId    `json:"id"`
	Pid         uuid.UUID `json:"pid"`
	Email       Email     `json:"-"`
	PassHash    string    `json:"-"`
	Name        UserName  `json:"name"`
	IsModerator bool      `json:"is_moderator"`
	IsBanned    bool      `json:"is_banned"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserCreationData struct {
	Email       Email
	Name        UserName
	PassHash    string
	IsModerator bool
}
