package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User описывает зарегистрированного пользователя магазина
type User struct {
	ID           string
	Email        string
	FullName     string
	Role         Role
	PasswordHash []byte
	Profile      Profile
	CreatedAt    time.Time
}

// Profile — данные доставки, которые пользователь хранит в личном кабинете
// и которыми заполняется форма оформления заказа.
type Profile struct {
	ShippingAddress string
	Phone           string
	City            string
	PostalCode      string
}

func NewUser(email, fullName string, role Role, passwordHash []byte) *User {
	return &User{
		Email:        email,
		FullName:     fullName,
		Role:         role,
		PasswordHash: passwordHash,
	}
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
