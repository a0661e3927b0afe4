package auth

import "time"

// Identity is the login record. Its id is the user id used across all
// workout, set and partner rows.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Profile struct {
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Height   *float64 `json:"height,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
}

// User is the application profile row linked to an identity via AuthID.
type User struct {
	ID       string   `json:"id"`
	AuthID   string   `json:"authId"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Height   *float64 `json:"height,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
}
