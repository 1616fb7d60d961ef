package httpdto

import (
	"time"

	"taskboard/internal/domain/user"

	"github.com/google/uuid"
)

type UserRequest struct {
	ID   *uuid.UUID `json:"id"`
	Name string     `json:"name" binding:"required"`
}

func (r UserRequest) ToUser() user.User {
	u := user.User{Name: r.Name}
	if r.ID != nil {
		u.ID = *r.ID
	}
	return u
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
}

func FromUser(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		CreatedAt: u.CreatedAt,
		Name:      u.Name,
	}
}

func FromUserSlice(items []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(items))
	for _, u := range items {
		out = append(out, FromUser(u))
	}
	return out
}
