package dto

import (
	"eventhub/internal/domains/user/model"
)

type UserResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func (u *UserResponse) FromModel(user model.User) {
	u.ID = user.ID
	u.Name = user.Name
	u.Email = user.Email
	u.IsAdmin = user.IsAdmin
}
