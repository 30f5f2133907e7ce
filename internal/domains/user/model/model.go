package model

import (
	"eventhub/shared/constant"
	"eventhub/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldIsAdmin  = "is_admin"
)

type User struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Password string `db:"password"`
	IsAdmin  bool   `db:"is_admin"`
	model.Metadata
}

// Role maps the admin flag onto the role names carried in tokens and
// route permissions.
func (u User) Role() string {
	if u.IsAdmin {
		return constant.RoleAdmin
	}

	return constant.RoleUser
}
