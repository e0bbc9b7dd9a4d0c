package model

import "cohost/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID             = "id"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldRestaurantName = "restaurant_name"
	FieldLastLogin      = "last_login"
	FieldActive         = "active"
)

type User struct {
	ID             string  `db:"id"`
	Email          string  `db:"email"`
	Password       string  `db:"password"`
	RestaurantName string  `db:"restaurant_name"`
	LastLogin      *string `db:"last_login"`
	Active         bool    `db:"active"`
	model.Metadata
}
