package model

import "time"

type User struct {
	UUID         string    `db:"uuid" json:"uuid"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Tokens       float64   `db:"tokens" json:"tokens"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
