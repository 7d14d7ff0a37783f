package models

import "time"

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile is the editable slice of the user record the mobile profile
// screen works with. Version increments on every write and backs the
// optimistic-concurrency check on saves.
type Profile struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	PhotoURL  string    `json:"photo_url"`
	Points    int64     `json:"points"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

type Address struct {
	ID        string    `json:"id"`
	UserID    int       `json:"-"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
