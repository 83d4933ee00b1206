package model

import "time"

type User struct {
	ID           string    `json:"id"`
	PasswordHash string    `json:"-"`
	Balance      int64     `json:"balance"` // currency minor units
	Token        string    `json:"-"`
	Terminal     string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
